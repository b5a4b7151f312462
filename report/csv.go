package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bassamadnan/mailtriage/pipeline"
)

var csvHeader = []string{"Sender", "Subject", "Email Summary", "Replied", "Draft Reply"}

const (
	csvSubjectLimit = 100
	csvDraftLimit   = 300
)

// ExportCSV writes one row per record under dir with a timestamped file
// name. A prior export in the same second is never overwritten; a numeric
// suffix is appended instead. Returns the path written.
func ExportCSV(records []pipeline.Record, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("unable to create output directory: %w", err)
	}
	path := exportPath(dir, time.Now())

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("unable to create export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("unable to write CSV header: %w", err)
	}
	for _, rec := range records {
		row := []string{
			cleanSender(rec.Sender),
			ellipsize(strings.TrimSpace(rec.Subject), csvSubjectLimit),
			cleanSummary(rec.Summary),
			rec.Replied.String(),
			cleanDraft(rec.Draft),
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("unable to write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("unable to flush CSV: %w", err)
	}
	return path, nil
}

func exportPath(dir string, now time.Time) string {
	base := "email_analysis_" + now.Format("20060102_150405")
	path := filepath.Join(dir, base+".csv")
	for n := 1; ; n++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path
		}
		path = filepath.Join(dir, fmt.Sprintf("%s_%d.csv", base, n))
	}
}

// cleanSender turns "John Doe <john@example.com>" into
// "John Doe (john@example.com)" for readability.
func cleanSender(sender string) string {
	open := strings.IndexByte(sender, '<')
	if open < 0 {
		return strings.TrimSpace(sender)
	}
	end := strings.IndexByte(sender[open:], '>')
	if end < 0 {
		return strings.TrimSpace(sender)
	}
	name := strings.Trim(strings.TrimSpace(sender[:open]), `"`)
	addr := strings.TrimSpace(sender[open+1 : open+end])
	if name == "" || name == addr {
		return addr
	}
	return fmt.Sprintf("%s (%s)", name, addr)
}

// cleanSummary flattens a bullet summary into a single CSV-friendly line.
func cleanSummary(summary string) string {
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return "No summary available"
	}
	summary = strings.ReplaceAll(summary, "•", "-")
	return strings.ReplaceAll(summary, "\n", " | ")
}

// cleanDraft flattens a draft for its CSV cell; empty stays empty so
// replied rows export a blank draft column.
func cleanDraft(draft string) string {
	if draft == "" {
		return ""
	}
	draft = strings.ReplaceAll(draft, "\n\n", " | ")
	draft = strings.ReplaceAll(draft, "\n", " ")
	return ellipsize(draft, csvDraftLimit)
}
