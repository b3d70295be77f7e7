package extract

import "testing"

func TestParseHeading_Basic(t *testing.T) {
	title, body, ok := ParseHeading("<태초의 창조> 태초에 하나님이 천지를 창조하시니라")
	if !ok {
		t.Fatal("Expected heading to parse")
	}
	if title != "태초의 창조" {
		t.Errorf("Expected title '태초의 창조', got '%s'", title)
	}
	if body != "태초에 하나님이 천지를 창조하시니라" {
		t.Errorf("Expected trailing body, got '%s'", body)
	}
}

func TestParseHeading_NestedMarkers(t *testing.T) {
	title, _, ok := ParseHeading("<<노아의 방주> 여호와께서 노아에게 이르시되")
	if !ok {
		t.Fatal("Expected nested heading to parse")
	}
	if title != "노아의 방주" {
		t.Errorf("Expected unwrapped title '노아의 방주', got '%s'", title)
	}
}

func TestParseHeading_PlainVerse(t *testing.T) {
	if _, _, ok := ParseHeading("태초에 하나님이 천지를 창조하시니라"); ok {
		t.Error("Expected plain verse not to parse as heading")
	}
}

func TestParseHeading_EmptyBody(t *testing.T) {
	title, body, ok := ParseHeading("  <아브람의 소명>  ")
	if !ok {
		t.Fatal("Expected heading to parse")
	}
	if title != "아브람의 소명" {
		t.Errorf("Expected title '아브람의 소명', got '%s'", title)
	}
	if body != "" {
		t.Errorf("Expected empty body, got '%s'", body)
	}
}

func TestStripHeadings(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"<홍수 심판> 여호와께서 보시니", "여호와께서 보시니"},
		{"<첫째> <둘째> 본문", "본문"},
		{"표제 없는 구절", "표제 없는 구절"},
	}
	for _, tc := range cases {
		if got := StripHeadings(tc.in); got != tc.want {
			t.Errorf("StripHeadings(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestHeadingKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"예수의 탄생", "예수의탄생"},
		{"오천 명을 먹이시다(1)", "오천명을먹이시다1"},
		{"  예수의   탄생  ", "예수의탄생"},
	}
	for _, tc := range cases {
		if got := HeadingKey(tc.in); got != tc.want {
			t.Errorf("HeadingKey(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
