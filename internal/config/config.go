package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrUnknownBackend = errors.New("unknown storage backend")
	ErrMissingPath    = errors.New("storage path is empty")
	ErrPoolSize       = errors.New("invalid postgres pool size")
)

type Config struct {
	Env      string         `yaml:"env"`      // Env is the current environment: local, development, production.
	HTTP     HTTPConfig     `yaml:"http"`     // HTTP holds the web server configuration.
	Storage  StorageConfig  `yaml:"storage"`  // Storage selects where the employee state is persisted.
	Postgres PostgresConfig `yaml:"postgres"` // Postgres holds the database configuration for the postgres backend.
	Table    TableConfig    `yaml:"table"`    // Table holds the employee table defaults.
}

// HTTPConfig struct holds the configuration of the web and monitoring servers.
type HTTPConfig struct {
	Address        string        `yaml:"address"`         // Address is the listen address of the web server.
	MonitoringPort int           `yaml:"monitoring_port"` // MonitoringPort serves /metrics and /healthz.
	SessionKey     string        `yaml:"session_key"`     // SessionKey signs flash cookies; random per process when empty.
	SaveTimeout    time.Duration `yaml:"save_timeout"`    // SaveTimeout bounds a single state write.
}

// StorageConfig struct holds the persistence backend selection.
type StorageConfig struct {
	Backend   string `yaml:"backend"`    // Backend is one of: file, sqlite, postgres.
	Path      string `yaml:"path"`       // Path is the state file (file) or database file (sqlite).
	KeyPrefix string `yaml:"key_prefix"` // KeyPrefix is prepended to the state name to form the storage key.
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `yaml:"host"`     // Host is the database server address.
	Port     string `yaml:"port"`     // Port is the database server port.
	User     string `yaml:"user"`     // User is the database user.
	Password string `yaml:"password"` // Password is the database user's password.
	Dbname   string `yaml:"db_name"`  // Dbname is the name of the database.

	MinConns       int           `yaml:"min_conns"`       // MinConns is the number of idle connections kept open.
	MaxConns       int           `yaml:"max_conns"`       // MaxConns caps the pool size.
	ConnectTimeout time.Duration `yaml:"connect_timeout"` // ConnectTimeout bounds pool creation and the first ping.
	MigrationsDir  string        `yaml:"migrations_dir"`  // MigrationsDir holds the goose migrations for kv_store.
}

// URL returns the connection string for the database, with credentials escaped.
func (p PostgresConfig) URL() string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     net.JoinHostPort(p.Host, p.Port),
		Path:     "/" + p.Dbname,
		RawQuery: "sslmode=disable",
	}

	return dsn.String()
}

// TableConfig struct holds the defaults of the employee table view.
type TableConfig struct {
	Locale   string `yaml:"locale"`    // Locale drives the collation used for sorting.
	PageSize int    `yaml:"page_size"` // PageSize is the initial number of rows per page.
}

// MustLoad loads the configuration from the YAML file named by CONFIG_PATH and returns a Config struct.
// It panics when the configuration cannot be used.
func MustLoad() *Config {
	cfg, err := Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		panic("config error: " + err.Error())
	}

	return cfg
}

// Load reads configuration from configPath (optional), a .env file in the working directory (optional)
// and HRNET_* environment variables, which take precedence over the file.
func Load(configPath string) (*Config, error) {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	vpr := viper.New()
	setDefaults(vpr)

	vpr.SetEnvPrefix("hrnet")
	vpr.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vpr.AutomaticEnv()

	if configPath != "" {
		// check if file exists
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file does not exist: %s", configPath)
		}

		vpr.SetConfigFile(configPath)
		if err := vpr.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Env: vpr.GetString("env"),
		HTTP: HTTPConfig{
			Address:        vpr.GetString("http.address"),
			MonitoringPort: vpr.GetInt("http.monitoring_port"),
			SessionKey:     vpr.GetString("http.session_key"),
			SaveTimeout:    vpr.GetDuration("http.save_timeout"),
		},
		Storage: StorageConfig{
			Backend:   strings.ToLower(vpr.GetString("storage.backend")),
			Path:      vpr.GetString("storage.path"),
			KeyPrefix: vpr.GetString("storage.key_prefix"),
		},
		Postgres: PostgresConfig{
			Host:     vpr.GetString("postgres.host"),
			Port:     vpr.GetString("postgres.port"),
			User:     vpr.GetString("postgres.user"),
			Password: vpr.GetString("postgres.password"),
			Dbname:   vpr.GetString("postgres.db_name"),

			MinConns:       vpr.GetInt("postgres.min_conns"),
			MaxConns:       vpr.GetInt("postgres.max_conns"),
			ConnectTimeout: vpr.GetDuration("postgres.connect_timeout"),
			MigrationsDir:  vpr.GetString("postgres.migrations_dir"),
		},
		Table: TableConfig{
			Locale:   vpr.GetString("table.locale"),
			PageSize: vpr.GetInt("table.page_size"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(vpr *viper.Viper) {
	defSaveTimeout := 5

	vpr.SetDefault("env", "local")
	vpr.SetDefault("http.address", ":8000")
	vpr.SetDefault("http.monitoring_port", 8080)
	vpr.SetDefault("http.save_timeout", time.Duration(defSaveTimeout)*time.Second)
	vpr.SetDefault("storage.backend", "file")
	vpr.SetDefault("storage.path", "hrnet-state.json")
	vpr.SetDefault("storage.key_prefix", "persist:")
	vpr.SetDefault("postgres.port", "5432")
	vpr.SetDefault("postgres.min_conns", 1)
	vpr.SetDefault("postgres.max_conns", 4)
	vpr.SetDefault("postgres.connect_timeout", time.Duration(defSaveTimeout)*time.Second)
	vpr.SetDefault("postgres.migrations_dir", "migrations")
	vpr.SetDefault("table.locale", "en")
	vpr.SetDefault("table.page_size", 10)
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case "file", "sqlite":
		if c.Storage.Path == "" {
			return fmt.Errorf("%w for backend %q", ErrMissingPath, c.Storage.Backend)
		}
	case "postgres":
		if c.Postgres.MaxConns < 1 || c.Postgres.MinConns < 0 || c.Postgres.MinConns > c.Postgres.MaxConns {
			return fmt.Errorf("%w: min_conns=%d max_conns=%d",
				ErrPoolSize, c.Postgres.MinConns, c.Postgres.MaxConns)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Storage.Backend)
	}

	return nil
}
