// Package pipeline runs the sequential triage flow: list recent messages,
// fetch each one, check reply status, summarize, and draft replies.
package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bassamadnan/mailtriage/config"
	"github.com/bassamadnan/mailtriage/gmail"
	"github.com/bassamadnan/mailtriage/llm"
)

// MailService is the slice of the Gmail client the pipeline needs.
type MailService interface {
	ListRecent(ctx context.Context, limit int) ([]string, error)
	GetDetail(ctx context.Context, id string) (*gmail.Detail, error)
	CheckReplied(ctx context.Context, threadID string, receivedAt time.Time) (bool, error)
}

// Summarizer is the slice of the LLM client the pipeline needs.
type Summarizer interface {
	Summarize(ctx context.Context, from, subject, body string) (string, error)
	DraftReply(ctx context.Context, from, subject, body string) (string, error)
}

// ReplyStatus is tri-state: unknown when reply detection was skipped or
// failed, otherwise replied or unreplied per thread metadata.
type ReplyStatus int

const (
	ReplyUnknown ReplyStatus = iota
	ReplyYes
	ReplyNo
)

func (s ReplyStatus) String() string {
	switch s {
	case ReplyYes:
		return "Yes"
	case ReplyNo:
		return "No"
	default:
		return ""
	}
}

// Record is one processed message. Created once, never mutated afterwards.
// Draft is populated only for unreplied messages when drafts were requested.
type Record struct {
	Sender     string
	Subject    string
	Summary    string
	Replied    ReplyStatus
	Draft      string
	ReceivedAt time.Time
	Degraded   bool // a non-critical field fell back after a remote error
}

type Pipeline struct {
	mail   MailService
	ai     Summarizer
	logger *log.Logger
}

func New(mail MailService, ai Summarizer, logger *log.Logger) *Pipeline {
	return &Pipeline{mail: mail, ai: ai, logger: logger}
}

// Run executes the pipeline for one batch. A listing failure is returned as
// is (fatal); per-message failures drop or degrade single records. Records
// come back in fetch order, one per successfully fetched message.
func (p *Pipeline) Run(ctx context.Context, settings config.Settings) ([]Record, error) {
	ids, err := p.mail.ListRecent(ctx, settings.MaxEmails)
	if err != nil {
		return nil, err
	}
	p.logger.Info("fetched message list", "count", len(ids))

	records := make([]Record, 0, len(ids))
	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			return records, err
		}

		detail, err := p.mail.GetDetail(ctx, id)
		if err != nil {
			p.logger.Warn("skipping message, detail fetch failed", "id", id, "err", err)
			continue
		}

		rec := Record{
			Sender:     detail.From,
			Subject:    detail.Subject,
			Replied:    ReplyUnknown,
			ReceivedAt: detail.Date,
		}

		if settings.CheckReplies {
			replied, err := p.mail.CheckReplied(ctx, detail.ThreadID, detail.Date)
			switch {
			case err != nil:
				// Unknown rather than a guessed "No": a guess would
				// trigger a draft for a possibly answered message.
				p.logger.Warn("reply check failed", "id", id, "err", err)
				rec.Degraded = true
			case replied:
				rec.Replied = ReplyYes
			default:
				rec.Replied = ReplyNo
			}
		}

		summary, err := p.ai.Summarize(ctx, detail.From, detail.Subject, detail.Body)
		if err != nil {
			p.logger.Warn("summarization failed, using fallback", "id", id, "err", err)
			summary = llm.FallbackSummary(detail.From, detail.Subject, detail.Body)
			rec.Degraded = true
		}
		rec.Summary = summary

		if settings.GenerateDrafts && rec.Replied == ReplyNo {
			draft, err := p.ai.DraftReply(ctx, detail.From, detail.Subject, detail.Body)
			if err != nil {
				p.logger.Warn("draft generation failed, using fallback", "id", id, "err", err)
				draft = llm.FallbackReply(detail.From, detail.Subject)
				rec.Degraded = true
			}
			rec.Draft = draft
		}

		p.logger.Info("processed message", "n", i+1, "of", len(ids), "subject", detail.Subject)
		records = append(records, rec)
	}
	return records, nil
}
