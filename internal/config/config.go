package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
	CORS       CORSConfig       `yaml:"cors"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Anki       AnkiConfig       `yaml:"anki"`
	Prefs      PrefsConfig      `yaml:"prefs"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"127.0.0.1"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// DictionaryConfig holds the online dictionary settings.
// RateLimit is the number of translate requests per minute allowed from one
// client IP; zero disables limiting.
type DictionaryConfig struct {
	BaseURL       string        `yaml:"base_url"       env:"DICT_BASE_URL"       env-default:"https://dict.iciba.com"`
	Client        string        `yaml:"client"         env:"DICT_CLIENT"         env-default:"6"`
	Key           string        `yaml:"key"            env:"DICT_KEY"            env-default:"1000006"`
	Secret        string        `yaml:"secret"         env:"DICT_SECRET"         env-default:"7ece94d9f9c202b0d2ec557dg4r9bc"`
	Timeout       time.Duration `yaml:"timeout"        env:"DICT_TIMEOUT"        env-default:"10s"`
	MaxConcurrent int           `yaml:"max_concurrent" env:"DICT_MAX_CONCURRENT" env-default:"8"`
	RateLimit     int           `yaml:"rate_limit"     env:"DICT_RATE_LIMIT"     env-default:"120"`
}

// AnkiConfig holds AnkiConnect settings.
type AnkiConfig struct {
	URL       string        `yaml:"url"        env:"ANKI_URL"        env-default:"http://127.0.0.1:8765"`
	ModelName string        `yaml:"model_name" env:"ANKI_MODEL_NAME" env-default:"Basic"`
	Timeout   time.Duration `yaml:"timeout"    env:"ANKI_TIMEOUT"    env-default:"10s"`
}

// PrefsConfig holds the local preference store settings.
type PrefsConfig struct {
	Path string `yaml:"path" env:"PREFS_PATH" env-default:"./wordcards.db"`
}
