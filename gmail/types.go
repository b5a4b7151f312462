package gmail

import "time"

// Detail holds the essential information extracted from a full Gmail message.
type Detail struct {
	ID       string
	ThreadID string
	From     string
	Subject  string
	Snippet  string
	Body     string // plain text body, HTML-stripped fallback
	Date     time.Time
}
