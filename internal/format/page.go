// Package format renders the schedule page.
package format

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/sot/schedule-view/internal/derive"
	"github.com/sot/schedule-view/internal/report"
)

// PageName is the file written into the output directory
const PageName = "index.html"

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(
	template.New("index.html").Funcs(template.FuncMap{
		"calendar": derive.RenderCalendarDate,
		"comma":    func(n int) string { return humanize.Comma(int64(n)) },
	}).ParseFS(templateFS, "templates/index.html"),
)

// Page is the data handed to the template
type Page struct {
	Entries     []report.Entry
	Summary     report.Summary
	Start       string
	GeneratedAt time.Time
}

// NewPage builds the page data for entries already in display order
func NewPage(entries []report.Entry, start string, now time.Time) Page {
	return Page{
		Entries:     entries,
		Summary:     report.Summarize(entries),
		Start:       start,
		GeneratedAt: now,
	}
}

// countingWriter tracks how many bytes pass through it
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// RenderPage executes the page template into w and returns the bytes written
func RenderPage(w io.Writer, page Page) (int64, error) {
	cw := &countingWriter{w: w}
	if err := pageTemplate.Execute(cw, page); err != nil {
		return cw.n, fmt.Errorf("failed to render page: %w", err)
	}
	return cw.n, nil
}

// WritePage renders the page to outdir/index.html, creating outdir if
// needed. The page is written to a temporary file and renamed into place so
// readers never see a partial page.
func WritePage(outdir string, page Page) (string, int64, error) {
	if err := os.MkdirAll(outdir, 0o755); err != nil {
		return "", 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(outdir, ".index-*.html")
	if err != nil {
		return "", 0, fmt.Errorf("failed to create temporary page: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	n, err := RenderPage(tmp, page)
	if err != nil {
		tmp.Close()
		return "", 0, err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return "", 0, fmt.Errorf("failed to set page permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", 0, fmt.Errorf("failed to write page: %w", err)
	}

	path := filepath.Join(outdir, PageName)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", 0, fmt.Errorf("failed to write page: %w", err)
	}
	return path, n, nil
}
