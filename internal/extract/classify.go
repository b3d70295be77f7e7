package extract

import (
	"strings"

	"github.com/danielsohn/chronica/internal/model"
)

// Lane assignment is derived from book and chapter, never authored per event.
// Genesis splits at chapter 11 between primeval history and the patriarchs.
func LaneTag(book string, chapter int) string {
	switch {
	case book == "창세기":
		if chapter <= 11 {
			return "primeval_history"
		}
		return "patriarchal_era"
	case book == "출애굽기" || book == "민수기" || book == "신명기":
		return "exodus_wilderness"
	case book == "여호수아":
		return "conquest_settlement"
	case book == "사사기" || book == "룻기":
		return "judges_period"
	case book == "사무엘상" || book == "사무엘하":
		return "united_monarchy"
	case book == "열왕기상" || book == "열왕기하" || book == "역대상" || book == "역대하":
		return "monarchy_exile"
	case book == "에스라" || book == "느헤미야" || book == "에스더" || book == "다니엘":
		return "exile_return"
	case book == "요나":
		return "prophetic_mission"
	case GospelBooks[book]:
		return "life_of_jesus"
	case book == "사도행전":
		return "early_church"
	default:
		return "other"
	}
}

type certaintyRule struct {
	keyword string
	level   model.Certainty
}

// certaintyRules flag titles whose dating is contested or weakly anchored.
// Order matters: the first matching keyword wins.
var certaintyRules = []certaintyRule{
	{"출애굽", model.CertaintyDisputed},
	{"성전", model.CertaintyMedium},
	{"재위", model.CertaintyMedium},
	{"통치", model.CertaintyMedium},
	{"탄생", model.CertaintyMedium},
	{"족보", model.CertaintyLow},
	{"계보", model.CertaintyLow},
	{"인구", model.CertaintyMedium},
	{"연대", model.CertaintyMedium},
}

// CertaintyFor classifies an event title; untouched titles are high
func CertaintyFor(title string) model.Certainty {
	for _, rule := range certaintyRules {
		if strings.Contains(title, rule.keyword) {
			return rule.level
		}
	}
	return model.CertaintyHigh
}
