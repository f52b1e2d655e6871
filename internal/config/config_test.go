package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validYAML = `port: "8080"
logLevel: debug
appURL: https://app.example.com
redisAddr: localhost:6379
maxAuditsPerDay: 3
enforceRateLimit: true
anthropicApiKey: sk-test
anthropicModel: claude-sonnet-4-20250514
minioEndpoint: localhost:9000
minioBucket: audit-reports
webhookSecret: whsec_test
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.MaxAuditsPerDay != 3 || !cfg.EnforceRateLimit {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("MAX_AUDITS_PER_DAY", "10")
	t.Setenv("ANTHROPIC_API_KEY", "sk-env")
	t.Setenv("ENFORCE_RATE_LIMIT", "false")

	cfg, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MaxAuditsPerDay != 10 {
		t.Fatalf("maxAuditsPerDay = %d", cfg.MaxAuditsPerDay)
	}
	if cfg.AnthropicAPIKey != "sk-env" {
		t.Fatalf("apiKey = %q", cfg.AnthropicAPIKey)
	}
	if cfg.EnforceRateLimit {
		t.Fatal("enforceRateLimit should be overridden to false")
	}
}

func TestLoadRejectsMissingRequired(t *testing.T) {
	cases := map[string][2]string{
		"port":            {`port: "8080"`, `port: ""`},
		"maxAuditsPerDay": {"maxAuditsPerDay: 3", "maxAuditsPerDay: 0"},
		"webhookSecret":   {"webhookSecret: whsec_test", `webhookSecret: ""`},
	}
	for name, repl := range cases {
		t.Run(name, func(t *testing.T) {
			content := strings.Replace(validYAML, repl[0], repl[1], 1)
			if _, err := Load(writeConfig(t, content)); err == nil {
				t.Fatalf("expected validation error for %s", name)
			}
		})
	}
}
