package conf

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"clinictriage/cmd/triage-service/internal/data"
)

// Config is the full triage-service configuration.
type Config struct {
	Server        ServerConfig         `mapstructure:"server"`
	Engine        EngineConfig         `mapstructure:"engine"`
	Redis         data.StoreConfig     `mapstructure:"redis"`
	Persistence   PersistenceConfig    `mapstructure:"persistence"`
	Observability ObservabilityConfig  `mapstructure:"observability"`
	Knowledge     data.KnowledgeConfig `mapstructure:"knowledge"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	HTTPPort        int           `mapstructure:"http_port"`
	MetricsPort     int           `mapstructure:"metrics_port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// EngineConfig holds triage pipeline settings.
type EngineConfig struct {
	MaxResponseTime time.Duration `mapstructure:"max_response_time"`
	CacheEnabled    bool          `mapstructure:"cache_enabled"`
	CacheTTL        time.Duration `mapstructure:"cache_ttl"`
	CacheSize       int           `mapstructure:"cache_size"`
}

// PersistenceConfig controls encrypted triage record storage.
type PersistenceConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// KeyHex is the 32-byte field encryption key, hex encoded. Supplied
	// via CT_PERSISTENCE_KEY_HEX in production.
	KeyHex string `mapstructure:"key_hex"`
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	ServiceName    string `mapstructure:"service_name"`
	ServiceVersion string `mapstructure:"service_version"`
	Environment    string `mapstructure:"environment"`
	LogLevel       string `mapstructure:"log_level"`
	LogFormat      string `mapstructure:"log_format"`
}

// Load reads configuration from the given YAML file with environment
// overrides (CT_ prefix, dots replaced by underscores).
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("CT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.http_port", 8080)
	v.SetDefault("server.metrics_port", 9090)
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.shutdown_timeout", "15s")

	v.SetDefault("engine.max_response_time", "2s")
	v.SetDefault("engine.cache_enabled", true)
	v.SetDefault("engine.cache_ttl", "10m")
	v.SetDefault("engine.cache_size", 1024)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.key_prefix", "triage")
	v.SetDefault("redis.record_ttl", "720h")

	v.SetDefault("persistence.enabled", false)

	v.SetDefault("observability.service_name", "triage-service")
	v.SetDefault("observability.service_version", "dev")
	v.SetDefault("observability.environment", "development")
	v.SetDefault("observability.log_level", "info")
	v.SetDefault("observability.log_format", "json")

	v.SetDefault("knowledge.clinic_name", "My Family Clinic")
	v.SetDefault("knowledge.emergency_number", "995")
}
