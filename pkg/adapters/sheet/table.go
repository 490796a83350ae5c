// Package sheet reads and writes the tabular sources of ingestion and the
// summary export, as CSV or XLSX files.
package sheet

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
)

// Table is a header row plus data rows. Every row is padded to the header
// width. Name titles the worksheet when the table is written to a workbook.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// NewTable builds a table, padding short rows.
func NewTable(headers []string, rows [][]string) *Table {
	t := &Table{Headers: headers, Rows: make([][]string, 0, len(rows))}
	for _, r := range rows {
		t.Rows = append(t.Rows, pad(r, len(headers)))
	}
	return t
}

func pad(row []string, n int) []string {
	if len(row) >= n {
		return row
	}
	out := make([]string, n)
	copy(out, row)
	return out
}

// Column returns the index of header. Headers compare after trimming spaces.
func (t *Table) Column(header string) (int, error) {
	want := strings.TrimSpace(header)
	for i, h := range t.Headers {
		if strings.TrimSpace(h) == want {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", domain.ErrHeaderNotFound, header)
}

// Values returns the cells of a column.
func (t *Table) Values(header string) ([]string, error) {
	col, err := t.Column(header)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r[col]
	}
	return out, nil
}

// Matching returns the indices of the rows whose header cell matches expr,
// ignoring case.
func (t *Table) Matching(header, expr string) ([]int, error) {
	col, err := t.Column(header)
	if err != nil {
		return nil, err
	}
	re, err := regexp.Compile("(?i)" + expr)
	if err != nil {
		return nil, fmt.Errorf("filter %q: %w", expr, err)
	}
	var out []int
	for i, r := range t.Rows {
		if re.MatchString(r[col]) {
			out = append(out, i)
		}
	}
	return out, nil
}

// Filter keeps only the rows matched by Matching. An empty header keeps
// every row.
func (t *Table) Filter(header, expr string) (*Table, error) {
	if header == "" {
		return t, nil
	}
	idx, err := t.Matching(header, expr)
	if err != nil {
		return nil, err
	}
	out := &Table{Headers: t.Headers, Rows: make([][]string, 0, len(idx))}
	for _, i := range idx {
		out.Rows = append(out.Rows, t.Rows[i])
	}
	return out, nil
}
