package register

import (
	"fmt"
	"strings"

	"github.com/tadeyemo32/career26-vanguard/internal/core"
)

const maxPreviousNames = 10

// columnAliases maps each field to the headers that may carry it: the
// Companies House bulk product names first, then simple snake_case names.
var columnAliases = map[string][]string{
	"number":    {"CompanyNumber", "company_number", "number"},
	"name":      {"CompanyName", "company_name", "name"},
	"status":    {"CompanyStatus", "company_status", "status"},
	"post_town": {"RegAddress.PostTown", "post_town", "town"},
	"country":   {"RegAddress.Country", "country"},
}

// columns resolves header positions for one table.
type columns struct {
	index    map[string]int
	previous []int
}

func headerKey(h string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
}

func newColumns(header []string) (*columns, error) {
	positions := make(map[string]int, len(header))
	for i, h := range header {
		key := headerKey(h)
		if _, seen := positions[key]; !seen {
			positions[key] = i
		}
	}

	cols := &columns{index: make(map[string]int)}
	for field, aliases := range columnAliases {
		for _, alias := range aliases {
			if pos, ok := positions[headerKey(alias)]; ok {
				cols.index[field] = pos
				break
			}
		}
	}
	for i := 1; i <= maxPreviousNames; i++ {
		if pos, ok := positions[headerKey(fmt.Sprintf("PreviousName_%d.CompanyName", i))]; ok {
			cols.previous = append(cols.previous, pos)
		}
	}

	if _, ok := cols.index["name"]; !ok {
		return nil, fmt.Errorf("register header has no company name column")
	}
	return cols, nil
}

func (c *columns) cell(row []string, field string) string {
	pos, ok := c.index[field]
	if !ok {
		return ""
	}
	return cellAt(row, pos)
}

func cellAt(row []string, pos int) string {
	if pos < 0 || pos >= len(row) {
		return ""
	}
	return collapse(row[pos])
}

// company maps one data row. Rows without a name and number are skipped; a
// missing number is synthesised from the row position.
func (c *columns) company(row []string, rowNum int) (core.Company, bool) {
	company := core.Company{
		Number:   c.cell(row, "number"),
		Name:     c.cell(row, "name"),
		Status:   c.cell(row, "status"),
		PostTown: c.cell(row, "post_town"),
		Country:  c.cell(row, "country"),
	}
	if company.Number == "" && company.Name == "" {
		return core.Company{}, false
	}
	if company.Number == "" {
		company.Number = fmt.Sprintf("row-%d", rowNum)
	}

	seen := make(map[string]struct{})
	for _, pos := range c.previous {
		prev := cellAt(row, pos)
		if prev == "" {
			continue
		}
		if _, dup := seen[prev]; dup {
			continue
		}
		seen[prev] = struct{}{}
		company.PreviousNames = append(company.PreviousNames, prev)
	}
	return company, true
}
