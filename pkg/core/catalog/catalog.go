// Package catalog holds the seeded college directory and its query
// helpers. The data is an in-memory snapshot; persistence lives in
// pkg/store.
package catalog

import (
	"strings"

	"github.com/collegegate/collegegate/pkg/core"
)

// College is one directory entry.
type College struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Location            string   `json:"location"`
	Country             string   `json:"country"`
	Ranking             int      `json:"ranking"`
	Fees                string   `json:"fees"`
	Exams               []string `json:"exams"`
	Image               string   `json:"image"`
	Description         string   `json:"description"`
	Tags                []string `json:"tags"`
	Accreditation       string   `json:"accreditation,omitempty"`
	Facilities          []string `json:"facilities,omitempty"`
	Alumni              []string `json:"alumni,omitempty"`
	EstablishedYear     int      `json:"establishedYear,omitempty"`
	PlacementRecord     string   `json:"placementRecord,omitempty"`
	ApplicationDeadline string   `json:"applicationDeadline,omitempty"`
}

// Query narrows the directory. Zero-value fields match everything.
type Query struct {
	Text    string // substring match on name, location, description
	Country string
	Tag     string
	Exam    string
}

// Catalog is a fixed set of colleges supporting lookup and filtering.
type Catalog struct {
	colleges []College
	byID     map[string]*College
}

// New builds a catalog from the given colleges.
func New(colleges []College) *Catalog {
	c := &Catalog{
		colleges: colleges,
		byID:     make(map[string]*College, len(colleges)),
	}
	for i := range c.colleges {
		c.byID[c.colleges[i].ID] = &c.colleges[i]
	}
	return c
}

// Default returns a catalog seeded with the standard directory.
func Default() *Catalog {
	return New(seedColleges())
}

// All returns every college in directory order.
func (c *Catalog) All() []College {
	out := make([]College, len(c.colleges))
	copy(out, c.colleges)
	return out
}

// ByID looks up a single college.
func (c *Catalog) ByID(id string) (*College, error) {
	col, ok := c.byID[id]
	if !ok {
		return nil, core.NewNotFoundError("college not found: " + id)
	}
	return col, nil
}

// Filter returns the colleges matching every set field of q, in
// directory order.
func (c *Catalog) Filter(q Query) []College {
	var out []College
	for _, col := range c.colleges {
		if col.matches(q) {
			out = append(out, col)
		}
	}
	return out
}

// Compare resolves ids in request order. Any unknown id fails the
// whole request.
func (c *Catalog) Compare(ids []string) ([]College, error) {
	if len(ids) < 2 {
		return nil, core.NewInvalidRequestErrorWithParam("at least two college ids are required", "ids")
	}
	out := make([]College, 0, len(ids))
	for _, id := range ids {
		col, err := c.ByID(id)
		if err != nil {
			return nil, err
		}
		out = append(out, *col)
	}
	return out, nil
}

func (col *College) matches(q Query) bool {
	if q.Country != "" && !strings.EqualFold(col.Country, q.Country) {
		return false
	}
	if q.Tag != "" && !containsFold(col.Tags, q.Tag) {
		return false
	}
	if q.Exam != "" && !containsFold(col.Exams, q.Exam) {
		return false
	}
	if q.Text != "" {
		needle := strings.ToLower(q.Text)
		haystack := strings.ToLower(col.Name + " " + col.Location + " " + col.Description)
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}

func containsFold(values []string, want string) bool {
	for _, v := range values {
		if strings.EqualFold(v, want) {
			return true
		}
	}
	return false
}
