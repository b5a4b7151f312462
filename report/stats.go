package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/bassamadnan/mailtriage/pipeline"
)

// Stats summarizes one batch of records for the trailing report block.
type Stats struct {
	Total     int
	Replied   int
	Unreplied int
	Unknown   int
	Drafted   int
	Degraded  int
	Senders   int
	DateRange string
}

func BuildStats(records []pipeline.Record) Stats {
	stats := Stats{Total: len(records)}
	senders := make(map[string]struct{})
	var earliest, latest time.Time

	for _, rec := range records {
		switch rec.Replied {
		case pipeline.ReplyYes:
			stats.Replied++
		case pipeline.ReplyNo:
			stats.Unreplied++
		default:
			stats.Unknown++
		}
		if rec.Draft != "" {
			stats.Drafted++
		}
		if rec.Degraded {
			stats.Degraded++
		}
		senders[senderAddress(rec.Sender)] = struct{}{}
		if rec.ReceivedAt.IsZero() {
			continue
		}
		if earliest.IsZero() || rec.ReceivedAt.Before(earliest) {
			earliest = rec.ReceivedAt
		}
		if latest.IsZero() || rec.ReceivedAt.After(latest) {
			latest = rec.ReceivedAt
		}
	}

	stats.Senders = len(senders)
	if !earliest.IsZero() {
		stats.DateRange = earliest.Format("2006-01-02") + " to " + latest.Format("2006-01-02")
	} else {
		stats.DateRange = "Unknown"
	}
	return stats
}

// ReplyRate formats the replied share of checked messages; "n/a" when no
// message had its reply status checked.
func (s Stats) ReplyRate() string {
	checked := s.Replied + s.Unreplied
	if checked == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", float64(s.Replied)/float64(checked)*100)
}

// senderAddress pulls the bare address out of "Name <addr>" forms so
// duplicate senders collapse regardless of display name.
func senderAddress(sender string) string {
	if open := strings.IndexByte(sender, '<'); open >= 0 {
		if end := strings.IndexByte(sender[open:], '>'); end > 0 {
			return strings.TrimSpace(sender[open+1 : open+end])
		}
	}
	return strings.TrimSpace(sender)
}
