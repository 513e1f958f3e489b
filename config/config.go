package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	LLM     LLMConfig     `yaml:"llm"`
	Store   StoreConfig   `yaml:"store"`
	Events  EventsConfig  `yaml:"events"`
}

type ServerConfig struct {
	Addr                   string `yaml:"addr"`
	ReadTimeoutSeconds     int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds    int    `yaml:"write_timeout_seconds"`
	ShutdownTimeoutSeconds int    `yaml:"shutdown_timeout_seconds"`
	MaxBodyBytes           int64  `yaml:"max_body_bytes"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// LLMConfig 는 타임라인 추출에 사용하는 생성형 텍스트 API 설정이다.
// API 키는 yaml 에 두지 않고 provider 별 환경변수에서만 읽는다.
type LLMConfig struct {
	Provider       string `yaml:"provider"`
	ModelName      string `yaml:"model_name"`
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	MaxInputChars  int    `yaml:"max_input_chars"`

	APIKey string `yaml:"-"`
}

// StoreConfig 는 케이스 저장소 설정이다.
//   - driver: "mongo" (기본) 또는 "sqlite"
//   - transactional_writes: Mongo 가 replica set 으로 떠 있을 때만 true 로 둔다.
type StoreConfig struct {
	Driver              string `yaml:"driver"`
	MongoURI            string `yaml:"mongo_uri"`
	MongoDBName         string `yaml:"mongo_db_name"`
	TransactionalWrites bool   `yaml:"transactional_writes"`
	SQLitePath          string `yaml:"sqlite_path"`
}

type EventsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Topic   string `yaml:"topic"`
	Brokers string `yaml:"brokers"`
}

func (c LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSeconds) * time.Second
}

func (c ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSeconds) * time.Second
}

func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = filepath.Join(GetBasePath(), CONFIG_FILE)
	}

	c, err := Load(path)
	if err != nil {
		panic(err)
	}
	config = c
}

// Load 는 yaml 파일을 읽어 기본값과 환경변수 오버라이드를 적용한 설정을 돌려준다.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*AppConfig, error) {
	var c AppConfig
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse config yaml: %w", err)
	}
	c.applyEnv()
	c.applyDefaults()
	return &c, nil
}

func (c *AppConfig) applyEnv() {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("MONGO_URI"); v != "" {
		c.Store.MongoURI = v
	}
	if v := os.Getenv("KAFKA_BOOTSTRAP_SERVERS"); v != "" {
		c.Events.Brokers = v
	}
}

func (c *AppConfig) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ReadTimeoutSeconds <= 0 {
		c.Server.ReadTimeoutSeconds = 30
	}
	if c.Server.WriteTimeoutSeconds <= 0 {
		// 파일 업로드 + LLM 호출이 한 요청 안에서 끝나야 한다.
		c.Server.WriteTimeoutSeconds = 120
	}
	if c.Server.ShutdownTimeoutSeconds <= 0 {
		c.Server.ShutdownTimeoutSeconds = 10
	}
	if c.Server.MaxBodyBytes <= 0 {
		c.Server.MaxBodyBytes = 32 << 20
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	c.LLM.Provider = normalizeProvider(c.LLM.Provider)
	if c.LLM.ModelName == "" {
		switch c.LLM.Provider {
		case "openai":
			c.LLM.ModelName = "gpt-4o-mini"
		case "claude":
			c.LLM.ModelName = "claude-3-5-haiku-latest"
		default:
			c.LLM.ModelName = "gemini-2.0-flash"
		}
	}
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = 60
	}
	if c.LLM.MaxInputChars <= 0 {
		c.LLM.MaxInputChars = 12000
	}
	c.LLM.APIKey = apiKeyFor(c.LLM.Provider)

	if c.Store.Driver == "" {
		c.Store.Driver = "mongo"
	}
	if c.Store.MongoDBName == "" {
		c.Store.MongoDBName = "legal_timeline"
	}
	if c.Store.SQLitePath == "" {
		c.Store.SQLitePath = "legal-timeline.db"
	}

	if c.Events.Topic == "" {
		c.Events.Topic = "legal-timeline.case.events"
	}
}

// normalizeProvider 는 대소문자와 별칭(gemini, anthropic)을 정규 이름으로 맞춘다.
// 모델 기본값과 API 키 조회가 같은 이름을 보도록 applyDefaults 에서 한 번만 호출한다.
func normalizeProvider(provider string) string {
	p := strings.ToLower(strings.TrimSpace(provider))
	switch p {
	case "", "gemini":
		return "google"
	case "anthropic":
		return "claude"
	default:
		return p
	}
}

func apiKeyFor(provider string) string {
	switch provider {
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	case "claude":
		return os.Getenv("ANTHROPIC_API_KEY")
	default:
		return os.Getenv("GEMINI_API_KEY")
	}
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
