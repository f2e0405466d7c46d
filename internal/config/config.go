package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Logger    LoggerConfig
	Redis     RedisConfig
	Data      DataConfig
	Embedding EmbeddingConfig
	Scoring   ScoringConfig
	Interview InterviewConfig
	Store     StoreConfig
	Extractor ExtractorConfig
	Facial    FacialConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
}

type LoggerConfig struct {
	Level string
	Env   string
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type DataConfig struct {
	QuestionBankPath string
	TaxonomyPath     string
	ResumeDir        string
	ReportDir        string
}

type EmbeddingConfig struct {
	// Source selects the embedding backend: "local", "ollama" or "openai".
	Source   string
	CacheTTL string
	Ollama   OllamaConfig
	OpenAI   OpenAIConfig
}

type OllamaConfig struct {
	ServerURL string
	Model     string
}

type OpenAIConfig struct {
	APIKey string
	Model  string
}

type ScoringConfig struct {
	// CorrectThreshold is the similarity cutoff for the binary correctness
	// decision. BucketHigh/BucketLow drive the legacy 1/0.5/0 point policy.
	CorrectThreshold float64
	BucketHigh       float64
	BucketLow        float64
}

type InterviewConfig struct {
	QuestionsPerCategory int
	SelectionSeed        int64
}

type StoreConfig struct {
	// Backend selects session persistence: "memory" or "redis".
	Backend    string
	SessionTTL time.Duration
}

type ExtractorConfig struct {
	ServiceURL string
	Timeout    time.Duration
}

type FacialConfig struct {
	MaxAttentionScores int
	MaxEmotions        int
	MaxAlerts          int
}

func setDefaults() {
	viper.SetDefault("server.port", 8000)
	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 20)
	viper.SetDefault("server.body_limit_mb", 10)

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.env", "development")

	viper.SetDefault("redis.address", "")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("data.question_bank", "data/questions.csv")
	viper.SetDefault("data.taxonomy", "data/skills.yaml")
	viper.SetDefault("data.resume_dir", "data/resumes")
	viper.SetDefault("data.report_dir", "data/reports")

	viper.SetDefault("embedding.source", "local")
	viper.SetDefault("embedding.cache_ttl", "168h")
	viper.SetDefault("embedding.ollama.server_url", "http://localhost:11434")
	viper.SetDefault("embedding.ollama.model", "nomic-embed-text")
	viper.SetDefault("embedding.openai.api_key", "")
	viper.SetDefault("embedding.openai.model", "text-embedding-ada-002")

	viper.SetDefault("scoring.correct_threshold", 0.70)
	viper.SetDefault("scoring.bucket_high", 0.80)
	viper.SetDefault("scoring.bucket_low", 0.60)

	viper.SetDefault("interview.questions_per_category", 3)
	viper.SetDefault("interview.selection_seed", 42)

	viper.SetDefault("store.backend", "memory")
	viper.SetDefault("store.session_ttl", "2h")

	viper.SetDefault("extractor.service_url", "")
	viper.SetDefault("extractor.timeout", 60)

	viper.SetDefault("facial.max_attention_scores", 100)
	viper.SetDefault("facial.max_emotions", 200)
	viper.SetDefault("facial.max_alerts", 20)
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// A config file is optional; defaults plus env cover everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  time.Duration(viper.GetInt("server.read_timeout")) * time.Second,
			WriteTimeout: time.Duration(viper.GetInt("server.write_timeout")) * time.Second,
			BodyLimit:    viper.GetInt("server.body_limit_mb") * 1024 * 1024,
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		Data: DataConfig{
			QuestionBankPath: viper.GetString("data.question_bank"),
			TaxonomyPath:     viper.GetString("data.taxonomy"),
			ResumeDir:        viper.GetString("data.resume_dir"),
			ReportDir:        viper.GetString("data.report_dir"),
		},
		Embedding: EmbeddingConfig{
			Source:   viper.GetString("embedding.source"),
			CacheTTL: viper.GetString("embedding.cache_ttl"),
			Ollama: OllamaConfig{
				ServerURL: viper.GetString("embedding.ollama.server_url"),
				Model:     viper.GetString("embedding.ollama.model"),
			},
			OpenAI: OpenAIConfig{
				APIKey: viper.GetString("embedding.openai.api_key"),
				Model:  viper.GetString("embedding.openai.model"),
			},
		},
		Scoring: ScoringConfig{
			CorrectThreshold: viper.GetFloat64("scoring.correct_threshold"),
			BucketHigh:       viper.GetFloat64("scoring.bucket_high"),
			BucketLow:        viper.GetFloat64("scoring.bucket_low"),
		},
		Interview: InterviewConfig{
			QuestionsPerCategory: viper.GetInt("interview.questions_per_category"),
			SelectionSeed:        viper.GetInt64("interview.selection_seed"),
		},
		Store: StoreConfig{
			Backend:    viper.GetString("store.backend"),
			SessionTTL: viper.GetDuration("store.session_ttl"),
		},
		Extractor: ExtractorConfig{
			ServiceURL: viper.GetString("extractor.service_url"),
			Timeout:    time.Duration(viper.GetInt("extractor.timeout")) * time.Second,
		},
		Facial: FacialConfig{
			MaxAttentionScores: viper.GetInt("facial.max_attention_scores"),
			MaxEmotions:        viper.GetInt("facial.max_emotions"),
			MaxAlerts:          viper.GetInt("facial.max_alerts"),
		},
	}

	// Override with environment variables if set
	if addr := os.Getenv("REDIS_ADDRESS"); addr != "" {
		config.Redis.Address = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		config.Redis.Password = password
	}
	if openAIKey := os.Getenv("OPENAI_API_KEY"); openAIKey != "" {
		config.Embedding.OpenAI.APIKey = openAIKey
	}
	if source := os.Getenv("EMBEDDING_SOURCE"); source != "" {
		config.Embedding.Source = source
	}

	return config, nil
}

// ParseTTLStringOrDefault parses a duration string, falling back to def when
// the string is empty or malformed.
func (c *Config) ParseTTLStringOrDefault(ttl string, def time.Duration) time.Duration {
	if ttl == "" {
		return def
	}
	d, err := time.ParseDuration(ttl)
	if err != nil {
		return def
	}
	return d
}
