// Package llm wraps Groq's OpenAI-compatible chat completion endpoint for
// email summarization and reply drafting.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

const (
	groqBaseURL = "https://api.groq.com/openai/v1"

	summaryBodyLimit = 1500
	draftBodyLimit   = 800

	summaryMaxTokens = 150
	draftMaxTokens   = 300

	summaryTemperature = 0.3
	draftTemperature   = 0.5
)

type Client struct {
	api   openai.Client
	model string
}

func NewClient(apiKey, model string) *Client {
	return &Client{
		api: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(groqBaseURL),
		),
		model: model,
	}
}

// Summarize asks the model for a short bullet-point summary of one email.
// One round trip, no retries.
func (c *Client) Summarize(ctx context.Context, from, subject, body string) (string, error) {
	prompt := fmt.Sprintf(`Summarize this email in 2-3 short, clear bullet points. Be concise and direct.

Email Details:
From: %s
Subject: %s
Content: %s

Focus only on the main point and any important actions/deadlines.`,
		from, subject, truncate(body, summaryBodyLimit))

	text, err := c.complete(ctx, prompt, summaryTemperature, summaryMaxTokens)
	if err != nil {
		return "", err
	}
	return ensureBullets(text), nil
}

// DraftReply asks the model for a brief professional reply. Very short
// bodies are replaced with the subject so the model has some context.
func (c *Client) DraftReply(ctx context.Context, from, subject, body string) (string, error) {
	if len(strings.TrimSpace(body)) < 10 {
		body = "Email regarding: " + subject
	}
	prompt := fmt.Sprintf(`Write a professional email reply for this message. Be concise, polite, and appropriate to the context.

From: %s
Subject: %s
Body: %s

Write a brief professional reply:`,
		from, subject, truncate(body, draftBodyLimit))

	text, err := c.complete(ctx, prompt, draftTemperature, draftMaxTokens)
	if err != nil {
		return "", err
	}
	return withSubjectLine(text, subject), nil
}

func (c *Client) complete(ctx context.Context, prompt string, temperature float64, maxTokens int64) (string, error) {
	completion, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(prompt),
					},
				},
			},
		},
		Model:       shared.ChatModel(c.model),
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(maxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty response")
	}
	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}

// FallbackSummary builds a deterministic local summary when the API call
// fails, so a degraded record still carries something useful.
func FallbackSummary(from, subject, body string) string {
	clean := strings.Join(strings.Fields(body), " ")
	preview := clean
	if len(preview) > 100 {
		preview = preview[:100] + "..."
	}
	if preview == "" {
		preview = "No content available"
	}
	return fmt.Sprintf("• Email from %s about %s\n• %s", senderName(from), subject, preview)
}

// FallbackReply builds a generic acknowledgment when draft generation fails.
func FallbackReply(from, subject string) string {
	return fmt.Sprintf(`Hi %s,

Thank you for your email regarding %q.

I have received your message and will review it shortly. I'll get back to you with a response as soon as possible.

Best regards`, senderName(from), subject)
}

// senderName extracts a display name from "Name <addr>" or falls back to a
// capitalized mailbox local part.
func senderName(from string) string {
	if i := strings.IndexByte(from, '<'); i >= 0 {
		if name := strings.Trim(strings.TrimSpace(from[:i]), `"`); name != "" {
			return name
		}
		from = strings.TrimSuffix(strings.TrimSpace(from[i+1:]), ">")
	}
	if i := strings.IndexByte(from, '@'); i >= 0 {
		local := from[:i]
		if j := strings.IndexByte(local, '.'); j >= 0 {
			local = local[:j]
		}
		return capitalize(local)
	}
	return from
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	return strings.ToUpper(string(runes[0])) + string(runes[1:])
}

// ensureBullets normalizes a summary so every line reads as a bullet point.
func ensureBullets(s string) string {
	if strings.HasPrefix(s, "•") {
		return s
	}
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "•") && !strings.HasPrefix(line, "-") {
			line = "• " + line
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return s
	}
	return strings.Join(lines, "\n")
}

// withSubjectLine prepends a Subject: header to a draft that lacks one.
func withSubjectLine(reply, subject string) string {
	if strings.HasPrefix(reply, "Subject:") {
		return reply
	}
	if !strings.HasPrefix(subject, "Re:") {
		subject = "Re: " + subject
	}
	return "Subject: " + subject + "\n\n" + reply
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
