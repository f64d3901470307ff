package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config 既支持 viper 加载（主程序），也支持 yaml 直接反序列化（脚本），
// 两套 tag 都要维护。
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	JWT       JWTConfig       `yaml:"jwt"`
	Redis     RedisConfig     `yaml:"redis"`
	AI        AIConfig        `mapstructure:"ai" yaml:"ai"`
	Embedding EmbeddingConfig `mapstructure:"embedding" yaml:"embedding"`
	RAG       RAGConfig       `mapstructure:"rag" yaml:"rag"`
	Tracing   TracingConfig   `mapstructure:"tracing" yaml:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors" yaml:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit" yaml:"rate_limit"`

	// 运行时标志（非配置文件，通过命令行参数设置）
	ForceMigrate bool `mapstructure:"-" yaml:"-"` // 强制执行数据库迁移
	MigrateOnly  bool `mapstructure:"-" yaml:"-"` // 仅迁移模式（迁移后退出）
}

type ServerConfig struct {
	Port string `yaml:"port"`
	Mode string `yaml:"mode"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `mapstructure:"sslmode" yaml:"sslmode"`
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret" yaml:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours" yaml:"expire_hours"`
}

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// AIConfig 大模型聊天补全接口（Groq 的 OpenAI 兼容端点）
type AIConfig struct {
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
	APIKey  string `mapstructure:"api_key" yaml:"api_key"`
	Model   string `mapstructure:"model" yaml:"model"`
}

// EmbeddingConfig 向量化接口，默认 all-MiniLM-L6-v2 的 384 维
type EmbeddingConfig struct {
	BaseURL   string `mapstructure:"base_url" yaml:"base_url"`
	APIKey    string `mapstructure:"api_key" yaml:"api_key"`
	Model     string `mapstructure:"model" yaml:"model"`
	Dimension int    `mapstructure:"dimension" yaml:"dimension"`
}

// RAGConfig 知识库检索参数。MinimalMode 用于低内存部署，
// 压缩出题时的检索条数和上下文长度。
type RAGConfig struct {
	TopK            int  `mapstructure:"top_k" yaml:"top_k"`
	QuizTopK        int  `mapstructure:"quiz_top_k" yaml:"quiz_top_k"`
	MaxContextChars int  `mapstructure:"max_context_chars" yaml:"max_context_chars"`
	MinimalMode     bool `mapstructure:"minimal_mode" yaml:"minimal_mode"`
	MinimalTopK     int  `mapstructure:"minimal_top_k" yaml:"minimal_top_k"`
	MinimalMaxChars int  `mapstructure:"minimal_max_chars" yaml:"minimal_max_chars"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled" yaml:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint" yaml:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests" yaml:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes" yaml:"window_minutes"`
}

// QuizTopKEffective 出题检索条数，低内存模式下收缩
func (r RAGConfig) QuizTopKEffective() int {
	if r.MinimalMode {
		return r.MinimalTopK
	}
	return r.QuizTopK
}

// MaxContextCharsEffective 出题上下文长度上限，低内存模式下收缩
func (r RAGConfig) MaxContextCharsEffective() int {
	if r.MinimalMode {
		return r.MinimalMaxChars
	}
	return r.MaxContextChars
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("EDUMATE")
	viper.AutomaticEnv()

	// Database
	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.dbname", "DATABASE_NAME")
	viper.BindEnv("database.sslmode", "DATABASE_SSLMODE")

	// JWT
	viper.BindEnv("jwt.secret", "JWT_SECRET")

	// Redis
	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	viper.BindEnv("server.mode", "SERVER_MODE")

	// AI
	viper.BindEnv("ai.base_url", "AI_BASE_URL")
	viper.BindEnv("ai.api_key", "GROQ_API_KEY")
	viper.BindEnv("ai.model", "AI_MODEL")

	// Embedding
	viper.BindEnv("embedding.base_url", "EMBEDDING_BASE_URL")
	viper.BindEnv("embedding.api_key", "EMBEDDING_API_KEY")
	viper.BindEnv("embedding.model", "EMBEDDING_MODEL")

	// RAG
	viper.BindEnv("rag.minimal_mode", "RAG_MINIMAL_MODE")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour

	// 生产环境校验 JWT Secret 强度
	if cfg.Server.Mode == "release" && len(cfg.JWT.Secret) < 32 {
		return nil, fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(cfg.JWT.Secret))
	}

	applyRAGDefaults(&cfg.RAG)
	if cfg.Embedding.Dimension <= 0 {
		cfg.Embedding.Dimension = 384
	}

	return &cfg, nil
}

func applyRAGDefaults(r *RAGConfig) {
	if r.TopK <= 0 {
		r.TopK = 3
	}
	if r.QuizTopK <= 0 {
		r.QuizTopK = 5
	}
	if r.MaxContextChars <= 0 {
		r.MaxContextChars = 5000
	}
	if r.MinimalTopK <= 0 {
		r.MinimalTopK = 3
	}
	if r.MinimalMaxChars <= 0 {
		r.MinimalMaxChars = 3000
	}
}
