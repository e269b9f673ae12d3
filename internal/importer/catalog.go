package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/alexanderramin/csfplan/internal/domain"
)

var (
	functionRef    = regexp.MustCompile(`\(([A-Z]{2})\)`)
	categoryRef    = regexp.MustCompile(`\(([A-Z]{2}\.[A-Z]{2})\)`)
	subcategoryRef = regexp.MustCompile(`^([A-Z]{2}\.[A-Z]{2}-\d{2})`)
)

// Catalog is a parsed framework file. Nodes are ordered functions first,
// then categories, then subcategories, each group by identifier.
type Catalog struct {
	Nodes []domain.TaxonomyNode
}

// Counts returns the number of functions, categories and subcategories.
func (c *Catalog) Counts() (functions, categories, subcategories int) {
	for _, n := range c.Nodes {
		switch n.Type {
		case domain.NodeFunction:
			functions++
		case domain.NodeCategory:
			categories++
		case domain.NodeSubcategory:
			subcategories++
		}
	}
	return
}

// LoadFrameworkCSV reads a framework CSV from disk.
func LoadFrameworkCSV(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseFrameworkCSV(f)
}

// ParseFrameworkCSV reads rows of (function, category, subcategory) text as
// published in the framework spreadsheet, e.g.
//
//	"GOVERN (GV): ...", "Organizational Context (GV.OC): ...", "GV.OC-01: The ..."
//
// An optional fourth column holds the subcategory's criticality weight
// (1-10); blank means the default weight.
//
// The first row is a header. Identifiers are extracted from the text; a
// column without a recognizable identifier is skipped, and later rows
// overwrite earlier ones with the same identifier.
func ParseFrameworkCSV(r io.Reader) (*Catalog, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("framework file is empty")
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}

	nodes := make(map[string]domain.TaxonomyNode)
	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(row) < 3 {
			continue
		}
		fnText := cleanCell(row[0])
		catText := cleanCell(row[1])
		subText := cleanCell(row[2])

		if m := functionRef.FindStringSubmatch(fnText); m != nil {
			nodes[m[1]] = domain.TaxonomyNode{
				ID:          m[1],
				Type:        domain.NodeFunction,
				Title:       titleBefore(fnText, "("),
				Description: fnText,
			}
		}
		if m := categoryRef.FindStringSubmatch(catText); m != nil {
			nodes[m[1]] = domain.TaxonomyNode{
				ID:          m[1],
				Type:        domain.NodeCategory,
				ParentID:    domain.ParentOf(m[1]),
				Title:       titleBefore(catText, "("),
				Description: catText,
			}
		}
		if m := subcategoryRef.FindStringSubmatch(subText); m != nil {
			desc := subText
			if _, after, ok := strings.Cut(subText, ":"); ok {
				desc = strings.TrimSpace(after)
			}
			crit, err := criticalityCell(row)
			if err != nil {
				return nil, fmt.Errorf("line %d: %s: %w", line, m[1], err)
			}
			nodes[m[1]] = domain.TaxonomyNode{
				ID:          m[1],
				Type:        domain.NodeSubcategory,
				ParentID:    domain.ParentOf(m[1]),
				Title:       m[1],
				Description: desc,
				Criticality: crit,
			}
		}
	}

	cat := &Catalog{Nodes: make([]domain.TaxonomyNode, 0, len(nodes))}
	for _, n := range nodes {
		cat.Nodes = append(cat.Nodes, n)
	}
	sort.Slice(cat.Nodes, func(i, j int) bool {
		a, b := cat.Nodes[i], cat.Nodes[j]
		if ra, rb := typeOrder(a.Type), typeOrder(b.Type); ra != rb {
			return ra < rb
		}
		return a.ID < b.ID
	})
	return cat, nil
}

func cleanCell(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	return strings.Trim(strings.TrimSpace(s), `"`)
}

// criticalityCell parses the optional fourth column. Range checks are left
// to CheckCatalogIntegrity so every problem is reported together.
func criticalityCell(row []string) (*int, error) {
	if len(row) < 4 {
		return nil, nil
	}
	text := cleanCell(row[3])
	if text == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(text)
	if err != nil {
		return nil, fmt.Errorf("criticality %q is not a whole number", text)
	}
	return &v, nil
}

func titleBefore(s, sep string) string {
	before, _, _ := strings.Cut(s, sep)
	return strings.TrimSpace(before)
}

func typeOrder(t domain.NodeType) int {
	switch t {
	case domain.NodeFunction:
		return 0
	case domain.NodeCategory:
		return 1
	default:
		return 2
	}
}

// CheckCatalogIntegrity reports every structural problem in a set of
// taxonomy nodes: invalid identifiers, duplicates, and subcategories or
// categories whose parent is missing.
func CheckCatalogIntegrity(nodes []domain.TaxonomyNode) []error {
	var errs []error

	seen := make(map[string]domain.NodeType, len(nodes))
	for i := range nodes {
		n := &nodes[i]
		if _, dup := seen[n.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate element identifier %s", n.ID))
			continue
		}
		seen[n.ID] = n.Type
		if err := n.Validate(); err != nil {
			errs = append(errs, err)
		}
	}

	for _, n := range nodes {
		var want domain.NodeType
		switch n.Type {
		case domain.NodeCategory:
			want = domain.NodeFunction
		case domain.NodeSubcategory:
			want = domain.NodeCategory
		default:
			continue
		}
		parent := domain.ParentOf(n.ID)
		if got, ok := seen[parent]; !ok || got != want {
			errs = append(errs, fmt.Errorf("%s %s references non-existent %s %s", n.Type, n.ID, want, parent))
		}
	}
	return errs
}
