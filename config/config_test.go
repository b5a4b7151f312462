package config

import (
	"os"
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"GROQ_API_KEY", "GROQ_MODEL", "GMAIL_SCOPES", "OUTPUT_DIR", "FETCH_DAYS_BACK"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	cfg := Load()
	be.Equal(t, cfg.GroqAPIKey, "")
	be.Equal(t, cfg.GroqModel, defaultModel)
	be.Equal(t, cfg.OutputDir, defaultOutputDir)
	be.Equal(t, cfg.FetchDaysBack, defaultDaysBack)
	be.Equal(t, len(cfg.Scopes), 1)
	be.Equal(t, cfg.Scopes[0], gmailReadonlyScope)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("GROQ_MODEL", "llama-3.1-8b-instant")
	t.Setenv("GMAIL_SCOPES", "https://a.example/scope1, https://a.example/scope2")
	t.Setenv("OUTPUT_DIR", "exports")
	t.Setenv("FETCH_DAYS_BACK", "0")

	cfg := Load()
	be.Equal(t, cfg.GroqAPIKey, "gsk_test")
	be.Equal(t, cfg.GroqModel, "llama-3.1-8b-instant")
	be.Equal(t, cfg.Scopes, []string{"https://a.example/scope1", "https://a.example/scope2"})
	be.Equal(t, cfg.OutputDir, "exports")
	be.Equal(t, cfg.FetchDaysBack, 0)
}

func TestLoadIgnoresMalformedInt(t *testing.T) {
	t.Setenv("FETCH_DAYS_BACK", "soon")
	be.Equal(t, Load().FetchDaysBack, defaultDaysBack)
}

func TestPreflightReportsAllMissing(t *testing.T) {
	t.Chdir(t.TempDir())

	err := Preflight(Config{})
	be.True(t, err != nil)
	pf, ok := err.(*PreflightError)
	be.True(t, ok)
	be.Equal(t, len(pf.Missing), 2)
	be.True(t, strings.Contains(pf.Missing[0], CredentialsFile))
	be.True(t, strings.Contains(pf.Missing[1], "GROQ_API_KEY"))
}

func TestPreflightPasses(t *testing.T) {
	t.Chdir(t.TempDir())
	be.Err(t, os.WriteFile(CredentialsFile, []byte(`{"installed":{}}`), 0600), nil)

	be.Err(t, Preflight(Config{GroqAPIKey: "gsk_test"}), nil)
}
