package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAppliesDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("MONGO_URI", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Parse([]byte("logging:\n  level: debug\n"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "google", cfg.LLM.Provider)
	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.ModelName)
	assert.Equal(t, 12000, cfg.LLM.MaxInputChars)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout())
	assert.Equal(t, "mongo", cfg.Store.Driver)
	assert.Equal(t, "legal_timeline", cfg.Store.MongoDBName)
	assert.Equal(t, "legal-timeline.case.events", cfg.Events.Topic)
	assert.Empty(t, cfg.LLM.APIKey)
}

func TestParseReadsProviderKeyFromEnv(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("GEMINI_API_KEY", "gemini-should-not-be-used")

	cfg, err := Parse([]byte("llm:\n  provider: google\n"))
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.ModelName)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
}

func TestParseNormalizesProviderAliases(t *testing.T) {
	testCases := []struct {
		name      string
		provider  string
		wantName  string
		wantModel string
		wantKey   string
	}{
		{name: "anthropic alias", provider: "anthropic", wantName: "claude", wantModel: "claude-3-5-haiku-latest", wantKey: "ant-key"},
		{name: "mixed case claude", provider: "Claude", wantName: "claude", wantModel: "claude-3-5-haiku-latest", wantKey: "ant-key"},
		{name: "gemini alias upper", provider: "GEMINI", wantName: "google", wantModel: "gemini-2.0-flash", wantKey: "gem-key"},
		{name: "mixed case openai", provider: "OpenAI", wantName: "openai", wantModel: "gpt-4o-mini", wantKey: "oai-key"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Setenv("LLM_PROVIDER", "")
			t.Setenv("ANTHROPIC_API_KEY", "ant-key")
			t.Setenv("GEMINI_API_KEY", "gem-key")
			t.Setenv("OPENAI_API_KEY", "oai-key")

			cfg, err := Parse([]byte("llm:\n  provider: " + testCase.provider + "\n"))
			require.NoError(t, err)

			assert.Equal(t, testCase.wantName, cfg.LLM.Provider)
			assert.Equal(t, testCase.wantModel, cfg.LLM.ModelName)
			assert.Equal(t, testCase.wantKey, cfg.LLM.APIKey)
		})
	}
}

func TestParseEnvOverridesStoreAndBrokers(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://env-host:27017")
	t.Setenv("KAFKA_BOOTSTRAP_SERVERS", "kafka:9092")

	cfg, err := Parse([]byte("store:\n  mongo_uri: mongodb://yaml-host:27017\n"))
	require.NoError(t, err)

	assert.Equal(t, "mongodb://env-host:27017", cfg.Store.MongoURI)
	assert.Equal(t, "kafka:9092", cfg.Events.Brokers)
}

func TestParseRejectsInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("server: [unclosed"))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestGetBasePathFindsConfigInParent(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, CONFIG_FILE), []byte("{}"), 0o600))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	t.Chdir(nested)

	got, err := filepath.EvalSymlinks(GetBasePath())
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
