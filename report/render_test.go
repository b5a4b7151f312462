package report

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"github.com/bassamadnan/mailtriage/pipeline"
)

func TestBuildStats(t *testing.T) {
	stats := BuildStats(sampleRecords())
	be.Equal(t, stats.Total, 3)
	be.Equal(t, stats.Replied, 2)
	be.Equal(t, stats.Unreplied, 1)
	be.Equal(t, stats.Unknown, 0)
	be.Equal(t, stats.Drafted, 1)
	be.Equal(t, stats.Senders, 3)
	be.Equal(t, stats.DateRange, "2025-06-01 to 2025-06-03")
	be.Equal(t, stats.ReplyRate(), "66.7%")
}

func TestBuildStatsDeduplicatesSenders(t *testing.T) {
	records := []pipeline.Record{
		{Sender: "Jane Doe <jane@example.com>"},
		{Sender: "jane@example.com"},
		{Sender: "bob@example.com"},
	}
	be.Equal(t, BuildStats(records).Senders, 2)
}

func TestReplyRateUnknownOnly(t *testing.T) {
	stats := BuildStats([]pipeline.Record{{Sender: "a@example.com"}})
	be.Equal(t, stats.Unknown, 1)
	be.Equal(t, stats.ReplyRate(), "n/a")
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(sampleRecords())
	be.True(t, strings.Contains(out, "Sender"))
	be.True(t, strings.Contains(out, "Quarterly review"))
	be.True(t, strings.Contains(out, "Yes"))
	be.True(t, strings.Contains(out, "No"))
}

func TestRenderTableEmpty(t *testing.T) {
	out := RenderTable(nil)
	be.True(t, strings.Contains(out, "No emails to display"))
}

func TestRenderTableCapsRows(t *testing.T) {
	records := make([]pipeline.Record, tableRowLimit+5)
	for i := range records {
		records[i] = pipeline.Record{Sender: "a@example.com", Subject: "s", Summary: "• s"}
	}
	out := RenderTable(records)
	be.True(t, strings.Contains(out, "Showing first 20 of 25 emails"))
}

func TestRenderDrafts(t *testing.T) {
	out := RenderDrafts(sampleRecords())
	be.True(t, strings.Contains(out, "Thanks, will do."))
	be.True(t, strings.Contains(out, "Contract renewal"))
	// replied records get no panel
	be.True(t, !strings.Contains(out, "Quarterly review"))
}

func TestRenderDraftsNoneUnreplied(t *testing.T) {
	records := []pipeline.Record{{Sender: "a@example.com", Replied: pipeline.ReplyYes}}
	out := RenderDrafts(records)
	be.True(t, strings.Contains(out, "All emails have been replied to"))
}

func TestEllipsize(t *testing.T) {
	be.Equal(t, ellipsize("short", 10), "short")
	be.Equal(t, ellipsize("a much longer subject line", 10), "a much ...")
}

func TestFirstBullets(t *testing.T) {
	be.Equal(t, firstBullets("• one\n• two\n• three"), "• one • two")
	be.Equal(t, firstBullets("plain"), "plain")
}
