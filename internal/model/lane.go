package model

// Lane is a thematic render row grouping events by biblical period
type Lane struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Order int    `json:"order"`
}

// LaneCatalog is the fixed, ordered set of renderable lanes. The active lane
// list of a payload is always the used subset of this catalog, never an
// independently authored list.
var LaneCatalog = []Lane{
	{ID: "primeval_history", Label: "원역사", Order: 1},
	{ID: "patriarchal_era", Label: "족장시대", Order: 2},
	{ID: "exodus_wilderness", Label: "출애굽·광야", Order: 3},
	{ID: "conquest_settlement", Label: "정복·정착", Order: 4},
	{ID: "judges_period", Label: "사사시대", Order: 5},
	{ID: "united_monarchy", Label: "통일왕국", Order: 6},
	{ID: "monarchy_exile", Label: "분열왕국·포로", Order: 7},
	{ID: "wisdom_poetry", Label: "시가·지혜", Order: 8},
	{ID: "prophetic_books", Label: "예언서", Order: 9},
	{ID: "exile_return", Label: "포로·귀환", Order: 10},
	{ID: "life_of_jesus", Label: "예수 사역", Order: 11},
	{ID: "early_church", Label: "초대교회", Order: 12},
}

// ActiveLanes filters the catalog down to lanes actually referenced by at
// least one event, preserving catalog order. Lane tags outside the catalog
// (e.g. prophetic_mission from the extraction classifier) are dropped.
func ActiveLanes(used map[string]bool) []Lane {
	var lanes []Lane
	for _, lane := range LaneCatalog {
		if used[lane.ID] {
			lanes = append(lanes, lane)
		}
	}
	return lanes
}
