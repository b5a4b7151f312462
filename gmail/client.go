package gmail

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/bassamadnan/mailtriage/config"
)

const user = "me"

type Client struct {
	srv         *gmail.Service
	daysBack    int
	profileAddr string // lowercase, set by Profile
}

// NewClient builds an authenticated Gmail service. It reads the client
// secret from credentials.json and reuses token.json when present; otherwise
// it runs the console authorization-code flow and caches the token.
func NewClient(ctx context.Context, cfg config.Config) (*Client, error) {
	b, err := os.ReadFile(config.CredentialsFile)
	if err != nil {
		return nil, &AuthError{Err: fmt.Errorf("unable to read client secret file: %w", err)}
	}
	oauthConfig, err := google.ConfigFromJSON(b, cfg.Scopes...)
	if err != nil {
		return nil, &AuthError{Err: fmt.Errorf("unable to parse client secret file to config: %w", err)}
	}
	httpClient, err := getOAuthClient(ctx, oauthConfig)
	if err != nil {
		return nil, &AuthError{Err: err}
	}
	srv, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, &AuthError{Err: fmt.Errorf("unable to create Gmail service: %w", err)}
	}
	return &Client{srv: srv, daysBack: cfg.FetchDaysBack}, nil
}

func getOAuthClient(ctx context.Context, oauthConfig *oauth2.Config) (*http.Client, error) {
	tok, err := tokenFromFile(config.TokenFile)
	if err != nil {
		tok, err = getTokenFromWeb(ctx, oauthConfig)
		if err != nil {
			return nil, err
		}
		if err := saveToken(config.TokenFile, tok); err != nil {
			return nil, err
		}
	}
	return oauthConfig.Client(ctx, tok), nil
}

func getTokenFromWeb(ctx context.Context, oauthConfig *oauth2.Config) (*oauth2.Token, error) {
	authURL := oauthConfig.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Go to the following link in your browser then type the "+
		"authorization code: \n%v\n", authURL)
	var authCode string
	if _, err := fmt.Scan(&authCode); err != nil {
		return nil, fmt.Errorf("unable to read authorization code: %w", err)
	}
	tok, err := oauthConfig.Exchange(ctx, authCode)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve token from web: %w", err)
	}
	return tok, nil
}

func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

func saveToken(path string, token *oauth2.Token) error {
	fmt.Printf("Saving credential file to: %s\n", path)
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to save oauth token: %w", err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}

// Profile returns the address of the connected account and remembers it for
// reply checks.
func (c *Client) Profile(ctx context.Context) (string, error) {
	prof, err := c.srv.Users.GetProfile(user).Context(ctx).Do()
	if err != nil {
		return "", &RemoteError{Op: "get profile", Err: err}
	}
	c.profileAddr = strings.ToLower(prof.EmailAddress)
	return prof.EmailAddress, nil
}

// ListRecent returns up to limit inbox message ids, most recent first.
func (c *Client) ListRecent(ctx context.Context, limit int) ([]string, error) {
	call := c.srv.Users.Messages.List(user).
		LabelIds("INBOX").
		MaxResults(int64(limit)).
		Context(ctx)
	if c.daysBack > 0 {
		since := time.Now().AddDate(0, 0, -c.daysBack).Format("2006/01/02")
		call = call.Q("after:" + since)
	}
	list, err := call.Do()
	if err != nil {
		return nil, &RemoteError{Op: "list messages", Err: err}
	}
	ids := make([]string, 0, len(list.Messages))
	for _, m := range list.Messages {
		ids = append(ids, m.Id)
	}
	return ids, nil
}

// GetDetail fetches the full message and extracts the fields the pipeline
// needs.
func (c *Client) GetDetail(ctx context.Context, id string) (*Detail, error) {
	msg, err := c.srv.Users.Messages.Get(user, id).Format("full").Context(ctx).Do()
	if err != nil {
		return nil, &RemoteError{Op: "get message", Err: err}
	}
	detail := parseDetail(msg)
	return &detail, nil
}

// CheckReplied reports whether the thread contains a message from the inbox
// owner dated after receivedAt. A single-message thread is never replied.
func (c *Client) CheckReplied(ctx context.Context, threadID string, receivedAt time.Time) (bool, error) {
	if c.profileAddr == "" {
		if _, err := c.Profile(ctx); err != nil {
			return false, err
		}
	}
	thread, err := c.srv.Users.Threads.Get(user, threadID).
		Format("metadata").
		MetadataHeaders("From", "Date").
		Context(ctx).
		Do()
	if err != nil {
		return false, &RemoteError{Op: "get thread", Err: err}
	}
	if len(thread.Messages) <= 1 {
		return false, nil
	}
	for _, msg := range thread.Messages {
		if msg.Payload == nil {
			continue
		}
		from := strings.ToLower(headerValue(msg.Payload.Headers, "From"))
		sent, ok := parseDate(headerValue(msg.Payload.Headers, "Date"))
		if !ok {
			continue
		}
		if strings.Contains(from, c.profileAddr) && sent.After(receivedAt) {
			return true, nil
		}
	}
	return false, nil
}

func parseDetail(msg *gmail.Message) Detail {
	detail := Detail{
		ID:       msg.Id,
		ThreadID: msg.ThreadId,
		Snippet:  msg.Snippet,
	}
	if msg.Payload == nil {
		return detail
	}
	detail.From = headerValue(msg.Payload.Headers, "From")
	detail.Subject = headerValue(msg.Payload.Headers, "Subject")
	if date, ok := parseDate(headerValue(msg.Payload.Headers, "Date")); ok {
		detail.Date = date
	}
	detail.Body = getTextBody(msg.Payload)
	return detail
}

func headerValue(headers []*gmail.MessagePartHeader, name string) string {
	for _, header := range headers {
		if strings.EqualFold(header.Name, name) {
			return header.Value
		}
	}
	return ""
}

var dateFormats = []string{
	time.RFC1123Z,
	"Mon, 2 Jan 2006 15:04:05 -0700 (MST)",
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"2 Jan 2006 15:04:05 -0700",
	time.RFC1123,
	time.RFC822,
}

// parseDate tries the date formats seen in the wild, stripping a trailing
// timezone comment like " (UTC)" before the final attempts.
func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, format := range dateFormats {
		if parsed, err := time.Parse(format, value); err == nil {
			return parsed, true
		}
	}
	stripped := value
	if openParen := strings.LastIndex(stripped, " ("); openParen != -1 {
		if closeParen := strings.LastIndex(stripped, ")"); closeParen > openParen {
			stripped = strings.TrimSpace(stripped[:openParen] + stripped[closeParen+1:])
		}
	}
	if stripped != value {
		for _, format := range dateFormats {
			if parsed, err := time.Parse(format, stripped); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}

var htmlTagPattern = regexp.MustCompile(`<[^>]+>`)

// getTextBody prefers a text/plain part; when only HTML is available the
// tags are stripped.
func getTextBody(payload *gmail.MessagePart) string {
	if body := findBody(payload, "text/plain"); body != "" {
		return cleanBody(body)
	}
	if body := findBody(payload, "text/html"); body != "" {
		return cleanBody(htmlTagPattern.ReplaceAllString(body, ""))
	}
	return ""
}

func findBody(payload *gmail.MessagePart, mimeType string) string {
	if strings.EqualFold(payload.MimeType, mimeType) && payload.Body != nil && payload.Body.Data != "" {
		data, err := base64.URLEncoding.DecodeString(payload.Body.Data)
		if err == nil {
			return string(data)
		}
	}
	for _, part := range payload.Parts {
		lower := strings.ToLower(part.MimeType)
		if strings.HasPrefix(lower, "text/") || strings.HasPrefix(lower, "multipart/") {
			if body := findBody(part, mimeType); body != "" {
				return body
			}
		}
	}
	return ""
}

var blankLinePattern = regexp.MustCompile(`\n\s*\n`)

func cleanBody(body string) string {
	return blankLinePattern.ReplaceAllString(strings.TrimSpace(body), "\n\n")
}
