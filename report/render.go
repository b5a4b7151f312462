package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/bassamadnan/mailtriage/pipeline"
)

const (
	tableRowLimit  = 20
	draftShowLimit = 10
	draftCharLimit = 500
)

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	tableBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	statsBoxStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 2)
	statsTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))

	draftBoxStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("196")).Padding(0, 1)
	draftTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	draftLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))

	noteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// RenderTable renders one row per record, capped for readability; the CSV
// export always carries the full batch.
func RenderTable(records []pipeline.Record) string {
	if len(records) == 0 {
		return noteStyle.Render("No emails to display")
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		}).
		Headers("Sender", "Subject", "Summary", "Replied")

	shown := records
	if len(shown) > tableRowLimit {
		shown = shown[:tableRowLimit]
	}
	for _, rec := range shown {
		t.Row(
			ellipsize(cleanSender(rec.Sender), 25),
			ellipsize(strings.TrimSpace(rec.Subject), 30),
			ellipsize(firstBullets(rec.Summary), 50),
			rec.Replied.String(),
		)
	}

	out := t.Render()
	if len(records) > tableRowLimit {
		out += "\n" + noteStyle.Render(fmt.Sprintf(
			"Showing first %d of %d emails. Full data exported to CSV.", tableRowLimit, len(records)))
	}
	return out
}

// RenderStats renders the trailing summary block.
func RenderStats(stats Stats) string {
	var b strings.Builder
	b.WriteString(statsTitleStyle.Render("Email Analysis Summary"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Total emails analyzed:   %d\n", stats.Total)
	fmt.Fprintf(&b, "Replied emails:          %d\n", stats.Replied)
	fmt.Fprintf(&b, "Unreplied emails:        %d\n", stats.Unreplied)
	if stats.Unknown > 0 {
		fmt.Fprintf(&b, "Reply status unknown:    %d\n", stats.Unknown)
	}
	fmt.Fprintf(&b, "Reply rate:              %s\n", stats.ReplyRate())
	fmt.Fprintf(&b, "Unique senders:          %d\n", stats.Senders)
	fmt.Fprintf(&b, "Date range:              %s\n", stats.DateRange)
	fmt.Fprintf(&b, "Draft replies generated: %d", stats.Drafted)
	if stats.Degraded > 0 {
		fmt.Fprintf(&b, "\nDegraded records:        %d", stats.Degraded)
	}
	return statsBoxStyle.Render(b.String())
}

// RenderDrafts renders a panel per unreplied record that carries a draft.
func RenderDrafts(records []pipeline.Record) string {
	var drafted []pipeline.Record
	for _, rec := range records {
		if rec.Replied == pipeline.ReplyNo && rec.Draft != "" {
			drafted = append(drafted, rec)
		}
	}
	if len(drafted) == 0 {
		return noteStyle.Render("All emails have been replied to, no drafts needed.")
	}

	var panels []string
	shown := drafted
	if len(shown) > draftShowLimit {
		shown = shown[:draftShowLimit]
	}
	for i, rec := range shown {
		draft := rec.Draft
		if len(draft) > draftCharLimit {
			draft = draft[:draftCharLimit] + "..."
		}
		var b strings.Builder
		b.WriteString(draftTitleStyle.Render(fmt.Sprintf("Unreplied email #%d", i+1)))
		b.WriteString("\n")
		b.WriteString(draftLabelStyle.Render("From:    ") + rec.Sender + "\n")
		b.WriteString(draftLabelStyle.Render("Subject: ") + rec.Subject + "\n\n")
		b.WriteString(draftLabelStyle.Render("Suggested reply:") + "\n")
		b.WriteString(strings.ReplaceAll(draft, "\r", ""))
		panels = append(panels, draftBoxStyle.Render(b.String()))
	}

	out := strings.Join(panels, "\n")
	if len(drafted) > draftShowLimit {
		out += "\n" + noteStyle.Render(fmt.Sprintf(
			"Showing first %d of %d unreplied emails.", draftShowLimit, len(drafted)))
	}
	return out
}

// firstBullets keeps at most the first two bullet lines of a summary for
// table display.
func firstBullets(summary string) string {
	lines := strings.Split(summary, "\n")
	var bullets []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		bullets = append(bullets, line)
		if len(bullets) == 2 {
			break
		}
	}
	return strings.Join(bullets, " ")
}

func ellipsize(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
