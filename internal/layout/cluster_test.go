package layout

import (
	"reflect"
	"testing"

	"github.com/labworks/labextract/internal/words"
)

// word places a token centered at (x, y) with a fixed 10x10 box.
func word(text string, x, y float64) words.Token {
	return words.Token{Text: text, Left: x - 5, Right: x + 5, Top: y + 5, Bottom: y - 5}
}

func TestClusterPage_TwoColumns(t *testing.T) {
	page := words.Page{
		Number: 1,
		Width:  600,
		Tokens: []words.Token{
			word("Glucose", 50, 700),
			word("95", 350, 701),
			word("mg/dL", 400, 699),
			word("Sodium", 50, 680),
			word("140", 350, 680),
		},
	}

	got := NewClusterer().ClusterPage(page)
	want := []Row{
		{Left: "Glucose", Right: "95 mg/dL"},
		{Left: "Sodium", Right: "140"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ClusterPage() = %#v, want %#v", got, want)
	}
}

func TestClusterPage_OrdersTopToBottom(t *testing.T) {
	page := words.Page{
		Width: 600,
		Tokens: []words.Token{
			word("Bottom", 50, 100),
			word("Top", 50, 700),
			word("Middle", 50, 400),
		},
	}

	got := NewClusterer().ClusterPage(page)
	want := []Row{{Left: "Top"}, {Left: "Middle"}, {Left: "Bottom"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ClusterPage() = %#v, want %#v", got, want)
	}
}

func TestClusterPage_OrderIndependentOfTokenOrder(t *testing.T) {
	base := []words.Token{
		word("A", 50, 700),
		word("1", 350, 700),
		word("B", 50, 650),
		word("2", 350, 650),
		word("C", 50, 600),
	}
	reversed := make([]words.Token, len(base))
	for i, tok := range base {
		reversed[len(base)-1-i] = tok
	}

	c := NewClusterer()
	a := c.ClusterPage(words.Page{Width: 600, Tokens: base})
	b := c.ClusterPage(words.Page{Width: 600, Tokens: reversed})
	if !reflect.DeepEqual(a, b) {
		t.Errorf("row order depends on token order:\n%#v\n%#v", a, b)
	}
}

func TestClusterPage_ToleranceIsInclusiveAgainstFirstMember(t *testing.T) {
	page := words.Page{
		Width: 600,
		Tokens: []words.Token{
			word("Label", 50, 700),
			word("edge", 100, 695), // exactly 5 away: joins
			word("next", 150, 690), // 10 away from the first member: new row
		},
	}

	got := NewClusterer().ClusterPage(page)
	want := []Row{{Left: "Label edge"}, {Left: "next"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ClusterPage() = %#v, want %#v", got, want)
	}
}

func TestClusterPage_MidpointGoesRight(t *testing.T) {
	page := words.Page{
		Width:  600,
		Tokens: []words.Token{word("left", 299, 500), word("mid", 300, 500)},
	}

	got := NewClusterer().ClusterPage(page)
	want := []Row{{Left: "left", Right: "mid"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ClusterPage() = %#v, want %#v", got, want)
	}
}

func TestClusterPage_DropsBlankRows(t *testing.T) {
	page := words.Page{
		Width:  600,
		Tokens: []words.Token{word(" ", 50, 500), word("kept", 50, 400)},
	}

	got := NewClusterer().ClusterPage(page)
	want := []Row{{Left: "kept"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ClusterPage() = %#v, want %#v", got, want)
	}
}

func TestClusterPage_CustomTolerance(t *testing.T) {
	page := words.Page{
		Width:  600,
		Tokens: []words.Token{word("a", 50, 500), word("b", 100, 492)},
	}

	tight := (&Clusterer{Tolerance: 5}).ClusterPage(page)
	if len(tight) != 2 {
		t.Errorf("expected 2 rows with tolerance 5, got %d", len(tight))
	}
	loose := (&Clusterer{Tolerance: 10}).ClusterPage(page)
	if len(loose) != 1 {
		t.Errorf("expected 1 row with tolerance 10, got %d", len(loose))
	}
}

func TestClusterPage_SortTokens(t *testing.T) {
	// Without sorting, "low" seeds a cluster first and "high" (8 above)
	// cannot join it, while "mid" joins "low". Sorting seeds from the top.
	tokens := []words.Token{
		word("low", 50, 500),
		word("mid", 100, 504),
		word("high", 150, 508),
	}

	unsorted := (&Clusterer{Tolerance: 5}).ClusterPage(words.Page{Width: 600, Tokens: tokens})
	wantUnsorted := []Row{{Left: "high"}, {Left: "low mid"}}
	if !reflect.DeepEqual(unsorted, wantUnsorted) {
		t.Errorf("unsorted = %#v, want %#v", unsorted, wantUnsorted)
	}

	sorted := (&Clusterer{Tolerance: 5, SortTokens: true}).ClusterPage(words.Page{Width: 600, Tokens: tokens})
	wantSorted := []Row{{Left: "mid high"}, {Left: "low"}}
	if !reflect.DeepEqual(sorted, wantSorted) {
		t.Errorf("sorted = %#v, want %#v", sorted, wantSorted)
	}
}

func TestCluster_ConcatenatesPagesWithoutMerging(t *testing.T) {
	pages := []words.Page{
		{Number: 1, Width: 600, Tokens: []words.Token{word("Page1", 50, 100)}},
		{Number: 2, Width: 600, Tokens: []words.Token{word("Page2", 50, 700), word("cont", 350, 100)}},
	}

	got := NewClusterer().Cluster(pages)
	want := []Row{{Left: "Page1"}, {Left: "Page2"}, {Right: "cont"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Cluster() = %#v, want %#v", got, want)
	}
}

func TestCluster_Idempotent(t *testing.T) {
	pages := []words.Page{{Width: 600, Tokens: []words.Token{
		word("Hemoglobin", 50, 700), word("14.2", 350, 700), word("g/dL", 390, 700),
	}}}
	c := NewClusterer()
	first, _ := EncodeRows(c.Cluster(pages))
	second, _ := EncodeRows(c.Cluster(pages))
	if string(first) != string(second) {
		t.Errorf("output differs between runs:\n%s\n%s", first, second)
	}
}
