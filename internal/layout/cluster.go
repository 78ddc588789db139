package layout

import (
	"math"
	"sort"
	"strings"

	"github.com/labworks/labextract/internal/words"
)

// DefaultTolerance is the maximum vertical distance, in PDF units, between a
// token's center and a row's first token for the two to share a row.
const DefaultTolerance = 5.0

// Clusterer groups page tokens into rows.
type Clusterer struct {
	// Tolerance is the vertical join distance. Zero means DefaultTolerance.
	Tolerance float64
	// SortTokens orders tokens by descending y then ascending x before
	// clustering, for sources that do not emit text in reading order.
	SortTokens bool
}

// NewClusterer returns a clusterer with the default tolerance.
func NewClusterer() *Clusterer {
	return &Clusterer{Tolerance: DefaultTolerance}
}

type placed struct {
	text string
	x, y float64
}

// Cluster turns every page into rows and concatenates them in page order.
// Rows never span pages.
func (c *Clusterer) Cluster(pages []words.Page) []Row {
	var rows []Row
	for _, p := range pages {
		rows = append(rows, c.ClusterPage(p)...)
	}
	return rows
}

// ClusterPage groups one page's tokens into rows ordered top to bottom.
//
// Assignment is greedy: a token joins the first cluster whose first member
// lies within Tolerance vertically, otherwise it starts a new cluster.
// Results therefore depend on token order.
func (c *Clusterer) ClusterPage(page words.Page) []Row {
	tol := c.Tolerance
	if tol <= 0 {
		tol = DefaultTolerance
	}

	items := make([]placed, 0, len(page.Tokens))
	for _, tok := range page.Tokens {
		items = append(items, placed{text: tok.Text, x: tok.CenterX(), y: tok.CenterY()})
	}
	if c.SortTokens {
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].y != items[j].y {
				return items[i].y > items[j].y
			}
			return items[i].x < items[j].x
		})
	}

	var clusters [][]placed
	for _, it := range items {
		joined := false
		for i := range clusters {
			if math.Abs(it.y-clusters[i][0].y) <= tol {
				clusters[i] = append(clusters[i], it)
				joined = true
				break
			}
		}
		if !joined {
			clusters = append(clusters, []placed{it})
		}
	}

	// PDF origin is bottom-left, so descending y is top-to-bottom.
	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i][0].y > clusters[j][0].y
	})

	mid := page.Width / 2
	rows := make([]Row, 0, len(clusters))
	for _, cl := range clusters {
		var left, right []placed
		for _, it := range cl {
			if it.x < mid {
				left = append(left, it)
			} else {
				right = append(right, it)
			}
		}
		row := Row{Left: joinByX(left), Right: joinByX(right)}
		if row.Left == "" && row.Right == "" {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

func joinByX(items []placed) string {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].x < items[j].x
	})
	parts := make([]string, 0, len(items))
	for _, it := range items {
		if t := strings.TrimSpace(it.text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}
