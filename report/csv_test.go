package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nalgeon/be"

	"github.com/bassamadnan/mailtriage/pipeline"
)

func sampleRecords() []pipeline.Record {
	return []pipeline.Record{
		{
			Sender:     "Jane Doe <jane@example.com>",
			Subject:    "Quarterly review",
			Summary:    "• Numbers attached\n• Review by Friday",
			Replied:    pipeline.ReplyYes,
			ReceivedAt: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			Sender:     "bob@example.com",
			Subject:    "Lunch?",
			Summary:    "• Asking about lunch",
			Replied:    pipeline.ReplyYes,
			ReceivedAt: time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC),
		},
		{
			Sender:     "Carol <carol@example.com>",
			Subject:    "Contract renewal",
			Summary:    "• Renewal due next week",
			Replied:    pipeline.ReplyNo,
			Draft:      "Thanks, will do.",
			ReceivedAt: time.Date(2025, 6, 3, 15, 0, 0, 0, time.UTC),
		},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	be.Err(t, err, nil)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	be.Err(t, err, nil)
	return rows
}

func TestExportCSV(t *testing.T) {
	dir := t.TempDir()
	path, err := ExportCSV(sampleRecords(), dir)
	be.Err(t, err, nil)
	be.True(t, strings.HasPrefix(filepath.Base(path), "email_analysis_"))

	rows := readCSV(t, path)
	be.Equal(t, len(rows), 4)
	be.Equal(t, rows[0], csvHeader)

	be.Equal(t, rows[1][0], "Jane Doe (jane@example.com)")
	be.Equal(t, rows[1][2], "- Numbers attached | - Review by Friday")
	be.Equal(t, rows[1][3], "Yes")
	be.Equal(t, rows[1][4], "")

	be.Equal(t, rows[2][0], "bob@example.com")
	be.Equal(t, rows[2][4], "")

	be.Equal(t, rows[3][3], "No")
	be.Equal(t, rows[3][4], "Thanks, will do.")
}

func TestExportCSVUnknownReplyIsBlank(t *testing.T) {
	dir := t.TempDir()
	records := []pipeline.Record{{Sender: "x@example.com", Subject: "s", Summary: "• s"}}
	path, err := ExportCSV(records, dir)
	be.Err(t, err, nil)

	rows := readCSV(t, path)
	be.Equal(t, rows[1][3], "")
}

func TestExportCSVNeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	first, err := ExportCSV(sampleRecords(), dir)
	be.Err(t, err, nil)
	second, err := ExportCSV(sampleRecords(), dir)
	be.Err(t, err, nil)

	be.True(t, first != second)
	_, err = os.Stat(first)
	be.Err(t, err, nil)
	_, err = os.Stat(second)
	be.Err(t, err, nil)
}

func TestExportCSVCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "output")
	_, err := ExportCSV(sampleRecords(), dir)
	be.Err(t, err, nil)
	info, err := os.Stat(dir)
	be.Err(t, err, nil)
	be.True(t, info.IsDir())
}

func TestExportPathCollisionSuffix(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2025, 6, 3, 15, 4, 5, 0, time.UTC)

	first := exportPath(dir, now)
	be.Equal(t, filepath.Base(first), "email_analysis_20250603_150405.csv")
	be.Err(t, os.WriteFile(first, []byte("x"), 0644), nil)

	second := exportPath(dir, now)
	be.Equal(t, filepath.Base(second), "email_analysis_20250603_150405_1.csv")
}

func TestCleanSender(t *testing.T) {
	be.Equal(t, cleanSender("Jane Doe <jane@example.com>"), "Jane Doe (jane@example.com)")
	be.Equal(t, cleanSender("<jane@example.com>"), "jane@example.com")
	be.Equal(t, cleanSender("jane@example.com <jane@example.com>"), "jane@example.com")
	be.Equal(t, cleanSender("  plain@example.com "), "plain@example.com")
}

func TestCleanSummaryEmpty(t *testing.T) {
	be.Equal(t, cleanSummary("  "), "No summary available")
}

func TestCleanDraft(t *testing.T) {
	be.Equal(t, cleanDraft(""), "")
	be.Equal(t, cleanDraft("Hi,\n\nThanks.\nBest"), "Hi, | Thanks. Best")
	long := strings.Repeat("a", 400)
	be.Equal(t, len(cleanDraft(long)), csvDraftLimit)
	be.True(t, strings.HasSuffix(cleanDraft(long), "..."))
}
