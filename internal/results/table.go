// Package results post-processes node results exported from the finite
// element output: node-to-node anchor forces, settlements along a
// horizontal cut and settlement-time curves.
//
// Inputs are CSV files with a header row. Columns are found by name,
// case-insensitively, so extra columns and any column order are accepted.
package results

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// table is a CSV document indexed by header name.
type table struct {
	cols map[string]int
	rows [][]string
	line []int // source line of each row
}

func readTable(r io.Reader, required ...string) (*table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("empty file")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	t := &table{cols: make(map[string]int, len(header))}
	for i, h := range header {
		t.cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, name := range required {
		if _, ok := t.cols[strings.ToLower(name)]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		t.rows = append(t.rows, rec)
		t.line = append(t.line, line)
	}
	return t, nil
}

func (t *table) has(col string) bool {
	_, ok := t.cols[strings.ToLower(col)]
	return ok
}

func (t *table) str(row int, col string) string {
	i, ok := t.cols[strings.ToLower(col)]
	if !ok || i >= len(t.rows[row]) {
		return ""
	}
	return strings.TrimSpace(t.rows[row][i])
}

func (t *table) float(row int, col string) (float64, error) {
	s := t.str(row, col)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: column %s: invalid number %q", t.line[row], col, s)
	}
	return v, nil
}

// floats reads several numeric columns of a row.
func (t *table) floats(row int, cols ...string) ([]float64, error) {
	out := make([]float64, len(cols))
	for i, c := range cols {
		v, err := t.float(row, c)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
