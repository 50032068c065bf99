package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config representa a configuração completa da aplicação
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Auth     AuthConfig
	Metrics  MetricsConfig
	Logging  LoggingConfig
	Tracing  TracingConfig
	Seed     SeedConfig
}

// ServerConfig contém configurações do servidor HTTP
type ServerConfig struct {
	Port           int
	Host           string
	Mode           string // debug, release
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int
	TLS            bool
	CertFile       string
	KeyFile        string
	Domains        []string // domínios para Let's Encrypt
}

// DatabaseConfig contém configurações do banco de dados
type DatabaseConfig struct {
	Driver          string
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	LogLevel        string
	SlowThreshold   time.Duration
	SkipMigrations  bool
}

// RedisOptions contém configurações específicas para Redis
type RedisOptions struct {
	Address      string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	DialTimeout  time.Duration
}

// CacheConfig contém configurações do cache de catálogo
type CacheConfig struct {
	Enabled bool
	Type    string // redis, memory
	TTL     time.Duration
	Redis   RedisOptions
}

// AuthConfig contém configurações de autenticação
type AuthConfig struct {
	JWTSecret       string
	TokenExpiration time.Duration
	PasswordMinLen  int
	LoginRateLimit  int           // tentativas de login por período, por IP
	LoginRatePeriod time.Duration // janela do limite de login
}

// MetricsConfig contém configurações de métricas
type MetricsConfig struct {
	Enabled        bool
	PrometheusPath string
}

// LoggingConfig contém configurações de logging
type LoggingConfig struct {
	Level      string
	Format     string // json, console
	OutputPath string // stdout, caminho de arquivo
	ErrorPath  string
	Production bool
}

// TracingConfig contém configurações de rastreamento
type TracingConfig struct {
	Enabled       bool
	Endpoint      string
	ServiceName   string
	SamplingRatio float64
}

// SeedConfig controla a carga inicial de dados do catálogo
type SeedConfig struct {
	Enabled bool
}

// LoadConfig carrega a configuração de diversas fontes (arquivos, env, defaults)
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Definir valores padrão
	setDefaults(v)

	// Configuração de leitura
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Locais para procurar arquivos de configuração
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/produflow")

	// Ler arquivo de configuração
	if err := v.ReadInConfig(); err != nil {
		// Ignorar se o arquivo não for encontrado
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("erro ao ler arquivo de configuração: %w", err)
		}
	}

	// Ler variáveis de ambiente com prefixo PF_
	v.SetEnvPrefix("PF")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Mapear configuração para a estrutura
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("erro ao mapear configuração: %w", err)
	}

	// Validar a configuração
	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults define valores padrão para a configuração
func setDefaults(v *viper.Viper) {
	// Servidor
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.readTimeout", "5s")
	v.SetDefault("server.writeTimeout", "10s")
	v.SetDefault("server.idleTimeout", "30s")
	v.SetDefault("server.maxHeaderBytes", 1<<20) // 1 MB
	v.SetDefault("server.tls", false)

	// Banco de dados
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "./produflow.db")
	v.SetDefault("database.maxIdleConns", 10)
	v.SetDefault("database.maxOpenConns", 50)
	v.SetDefault("database.connMaxLifetime", "1h")
	v.SetDefault("database.logLevel", "warn")
	v.SetDefault("database.slowThreshold", "200ms")
	v.SetDefault("database.skipMigrations", false)

	// Cache do catálogo (tipos de vídeo e tags)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "5m")
	v.SetDefault("cache.redis.address", "localhost:6379")
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("cache.redis.pool_size", 10)
	v.SetDefault("cache.redis.min_idle_conns", 5)
	v.SetDefault("cache.redis.read_timeout", "3s")
	v.SetDefault("cache.redis.write_timeout", "3s")
	v.SetDefault("cache.redis.dial_timeout", "5s")

	// Autenticação
	v.SetDefault("auth.tokenExpiration", "24h")
	v.SetDefault("auth.passwordMinLen", 8)
	v.SetDefault("auth.loginRateLimit", 10)
	v.SetDefault("auth.loginRatePeriod", "1m")

	// Métricas
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.prometheusPath", "/metrics")

	// Logging
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.outputPath", "stdout")
	v.SetDefault("logging.errorPath", "stderr")
	v.SetDefault("logging.production", true)

	// Tracing
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.endpoint", "localhost:4317")
	v.SetDefault("tracing.samplingRatio", 0.1)
	v.SetDefault("tracing.serviceName", "produflow-api")

	// Seed
	v.SetDefault("seed.enabled", true)
}

// validateConfig valida a configuração
func validateConfig(config *Config) error {
	// Validar JWT Secret
	if config.Auth.JWTSecret == "" {
		fmt.Println("AVISO: PF_AUTH_JWTSECRET não está definido. Defina um segredo antes de expor o serviço em produção.")
	}

	// Validar configuração do banco de dados
	validDrivers := map[string]bool{"sqlite": true, "mysql": true, "postgres": true}
	if !validDrivers[config.Database.Driver] {
		return fmt.Errorf("driver de banco de dados inválido: %s", config.Database.Driver)
	}

	// Validar configuração de cache
	if config.Cache.Enabled {
		validTypes := map[string]bool{"memory": true, "redis": true}
		if !validTypes[config.Cache.Type] {
			return fmt.Errorf("tipo de cache inválido: %s", config.Cache.Type)
		}

		if config.Cache.Type == "redis" && config.Cache.Redis.Address == "" {
			return fmt.Errorf("tipo de cache redis requer um endereço")
		}
	}

	return nil
}
