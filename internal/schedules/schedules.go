// Package schedules reads the legacy mission planning schedule pages and
// resolves the planner comment recorded for a load.
//
// Each page holds one table with a header row followed by one row per load
// version, newest first. Only the first version row of a week carries the
// Week label; later rows of the same week leave it blank.
package schedules

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/sot/schedule-view/internal/loads"
	"github.com/sot/schedule-view/internal/logctx"
)

const (
	columnWeek    = "Week"
	columnVersion = "Version"
	columnComment = "Comment"
)

// DefaultDir is where the legacy schedule pages live
const DefaultDir = "/proj/web-icxc/htdocs/mp/html/"

// DefaultPatterns are matched under the schedule directory in this order
var DefaultPatterns = []string{"schedules_ao2?.html", "schedules.html"}

var (
	// ErrMissingColumn is returned when a table lacks the Week or Version column
	ErrMissingColumn = errors.New("schedules: missing required column")
	// ErrNoFiles is returned when no schedule page matches
	ErrNoFiles = errors.New("schedules: no schedule pages found")
)

// Row is the comment recorded for one version of a weekly load
type Row struct {
	Week    string
	Version string
	Comment string
}

// Table is the concatenation of every legacy schedule table
type Table struct {
	Rows []Row
}

// Lookup returns the comment of the first row whose week and version both
// match the load name
func (t *Table) Lookup(id loads.ID) (string, bool) {
	if t == nil {
		return "", false
	}
	week, version := id.Split()
	if version == "" {
		return "", false
	}
	for _, r := range t.Rows {
		if r.Week == week && r.Version == version {
			return r.Comment, true
		}
	}
	return "", false
}

// RowsFromCells converts parsed table cells into rows.
// cells[0] is the header. Blank Week cells take the last non-blank Week
// above them, and a missing Comment column reads as "" for every row.
// The result is reversed so that it runs oldest first.
func RowsFromCells(cells [][]string) ([]Row, error) {
	if len(cells) == 0 {
		return nil, fmt.Errorf("%w: table has no header", ErrMissingColumn)
	}

	header := make(map[string]int, len(cells[0]))
	for i, name := range cells[0] {
		if _, dup := header[name]; !dup {
			header[name] = i
		}
	}
	weekCol, ok := header[columnWeek]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, columnWeek)
	}
	versionCol, ok := header[columnVersion]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, columnVersion)
	}
	commentCol, hasComment := header[columnComment]

	get := func(row []string, i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}

	rows := make([]Row, 0, len(cells)-1)
	lastWeek := ""
	for _, c := range cells[1:] {
		week := get(c, weekCol)
		if week == "" {
			week = lastWeek
		} else {
			lastWeek = week
		}

		row := Row{Week: week, Version: get(c, versionCol)}
		if hasComment {
			row.Comment = get(c, commentCol)
		}
		rows = append(rows, row)
	}

	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows, nil
}

// Files returns the schedule pages under dir, each pattern's matches sorted
// by name and patterns taken in order
func Files(dir string, patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("invalid schedule pattern %q: %w", pattern, err)
		}
		sort.Strings(matches)
		files = append(files, matches...)
	}
	return files, nil
}

// ReadFile parses one schedule page
func ReadFile(path string) ([]Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schedule %s: %w", path, err)
	}

	cells, err := ParseHTMLTable(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse schedule %s: %w", path, err)
	}

	rows, err := RowsFromCells(cells)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schedule %s: %w", path, err)
	}
	return rows, nil
}

// Load reads and concatenates every schedule page
func Load(ctx context.Context, dir string, patterns []string) (*Table, error) {
	logger := logctx.From(ctx)

	files, err := Files(dir, patterns)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoFiles, dir)
	}

	table := &Table{}
	for _, f := range files {
		rows, err := ReadFile(f)
		if err != nil {
			return nil, err
		}
		logger.Debug("Schedule page loaded", "file", f, "rows", len(rows))
		table.Rows = append(table.Rows, rows...)
	}

	logger.Debug("Schedule comments loaded", "files", len(files), "rows", len(table.Rows))
	return table, nil
}
