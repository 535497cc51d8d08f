package records

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dgallion1/pinetree/internal/pine"
)

// CSVLoader handles CSV files with a header row naming the id, parent and
// name columns. An empty parent cell means no parent.
type CSVLoader struct{}

var csvColumns = map[string]string{
	"itemid":       "id",
	"id":           "id",
	"itemparentid": "parent",
	"parent_id":    "parent",
	"parentid":     "parent",
	"parent":       "parent",
	"itemname":     "name",
	"name":         "name",
}

func (l *CSVLoader) Load(r io.Reader, filename string) ([]pine.Record, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	// First row is headers.
	idx := map[string]int{}
	for i, h := range rows[0] {
		if col, ok := csvColumns[strings.ToLower(strings.TrimSpace(h))]; ok {
			idx[col] = i
		}
	}
	for _, col := range []string{"id", "parent", "name"} {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("csv header is missing the %s column", col)
		}
	}

	out := make([]pine.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		line := i + 2 // 1-indexed, skip header
		cell := func(col string) string {
			if j := idx[col]; j < len(row) {
				return strings.TrimSpace(row[j])
			}
			return ""
		}

		id, err := strconv.ParseInt(cell("id"), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid id %q", line, cell("id"))
		}
		rec := pine.Record{ItemID: id, ItemName: cell("name")}
		if p := cell("parent"); p != "" {
			parent, err := strconv.ParseInt(p, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid parent id %q", line, p)
			}
			rec.ItemParentID = pine.Parent(parent)
		}
		out = append(out, rec)
	}
	return out, nil
}
