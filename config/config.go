package config

import (
	"os"
	"strconv"
	"strings"
)

const (
	// CredentialsFile is the OAuth client secret downloaded from Google
	// Cloud Console, expected in the working directory.
	CredentialsFile = "credentials.json"
	// TokenFile caches the OAuth token after the first successful consent.
	TokenFile = "token.json"

	DefaultEmailLimit = 50
	MaxEmailLimit     = 200

	defaultModel     = "llama-3.3-70b-versatile"
	defaultOutputDir = "output"
	defaultDaysBack  = 7

	gmailReadonlyScope = "https://www.googleapis.com/auth/gmail.readonly"
)

// Config holds environment-backed settings, read once at startup.
type Config struct {
	GroqAPIKey    string
	GroqModel     string
	Scopes        []string
	OutputDir     string
	FetchDaysBack int // 0 disables the after: date filter
}

// Settings are the per-run choices gathered from the operator. Immutable
// for the duration of one run.
type Settings struct {
	MaxEmails      int
	CheckReplies   bool
	GenerateDrafts bool
}

// Load reads the environment into a Config. Call godotenv.Load first if a
// .env file should be honored.
func Load() Config {
	return Config{
		GroqAPIKey:    getEnvString("GROQ_API_KEY", ""),
		GroqModel:     getEnvString("GROQ_MODEL", defaultModel),
		Scopes:        getEnvList("GMAIL_SCOPES", []string{gmailReadonlyScope}),
		OutputDir:     getEnvString("OUTPUT_DIR", defaultOutputDir),
		FetchDaysBack: getEnvInt("FETCH_DAYS_BACK", defaultDaysBack),
	}
}

// DefaultSettings returns the run settings offered before prompting.
func DefaultSettings() Settings {
	return Settings{
		MaxEmails:      DefaultEmailLimit,
		CheckReplies:   true,
		GenerateDrafts: true,
	}
}

// PreflightError lists every prerequisite that is missing, so the operator
// can fix all of them in one pass.
type PreflightError struct {
	Missing []string
}

func (e *PreflightError) Error() string {
	return "missing prerequisites: " + strings.Join(e.Missing, "; ")
}

// Preflight verifies the local credential artifact and the LLM API key
// before any network call is attempted.
func Preflight(cfg Config) error {
	var missing []string
	if _, err := os.Stat(CredentialsFile); err != nil {
		missing = append(missing, CredentialsFile+" not found (download OAuth credentials from Google Cloud Console)")
	}
	if cfg.GroqAPIKey == "" {
		missing = append(missing, "GROQ_API_KEY not set (get a key from https://console.groq.com/)")
	}
	if len(missing) > 0 {
		return &PreflightError{Missing: missing}
	}
	return nil
}

func getEnvString(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(value)
		if trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	if len(items) == 0 {
		return fallback
	}
	return items
}
