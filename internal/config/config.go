package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vfg2006/agent-performance-api/pkg/retry"
)

type Config struct {
	App        App        `mapstructure:",squash"`
	Server     Server     `mapstructure:",squash"`
	Database   Database   `mapstructure:",squash"`
	Auth       Auth       `mapstructure:",squash"`
	Retry      Retry      `mapstructure:",squash"`
	Import     Import     `mapstructure:",squash"`
	Sheets     Sheets     `mapstructure:",squash"`
	SheetsSync SheetsSync `mapstructure:",squash"`
	InboxWatch InboxWatch `mapstructure:",squash"`
	Events     Events     `mapstructure:",squash"`
	Metrics    Metrics    `mapstructure:",squash"`
	SecretKey  string     `mapstructure:"secret_key"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN          string `mapstructure:"-"`
	Driver       string `mapstructure:"database_driver"`
	Password     string `mapstructure:"database_password"`
	URL          string `mapstructure:"database_url"`
	User         string `mapstructure:"database_user"`
	SSLMode      string `mapstructure:"database_sslmode"`
	MaxOpenConns int    `mapstructure:"database_max_open_conns"`
	AutoMigrate  bool   `mapstructure:"database_auto_migrate"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	Env      string `mapstructure:"app_env"`
}

type Auth struct {
	TokenTTL time.Duration `mapstructure:"auth_token_ttl"`
}

type Retry struct {
	MaxAttempts     int           `mapstructure:"retry_max_attempts"`
	InitialInterval time.Duration `mapstructure:"retry_initial_interval"`
	MaxInterval     time.Duration `mapstructure:"retry_max_interval"`
	AttemptTimeout  time.Duration `mapstructure:"retry_attempt_timeout"`
}

type Import struct {
	BatchSize   int    `mapstructure:"import_batch_size"`
	MaxUploadMB int64  `mapstructure:"import_max_upload_mb"`
	SchemaFile  string `mapstructure:"import_schema_file"`
	MaxRows     int    `mapstructure:"import_max_rows"`
}

// Policy converte a configuração na política de retentativa do banco
func (r Retry) Policy() retry.Policy {
	return retry.Policy{
		MaxAttempts:     r.MaxAttempts,
		InitialInterval: r.InitialInterval,
		MaxInterval:     r.MaxInterval,
		AttemptTimeout:  r.AttemptTimeout,
	}
}

type Sheets struct {
	CredentialsJSON string `mapstructure:"google_service_account_json"`
	CredentialsFile string `mapstructure:"google_service_account_file"`
}

type SheetsSync struct {
	CronSchedule  string `mapstructure:"sheets_sync_cron"`
	SpreadsheetID string `mapstructure:"sheets_sync_spreadsheet_id"`
	Range         string `mapstructure:"sheets_sync_range"`
	Enabled       bool   `mapstructure:"sheets_sync_enabled"`
}

type InboxWatch struct {
	Dir     string `mapstructure:"import_inbox_dir"`
	Enabled bool   `mapstructure:"import_inbox_enabled"`
}

type Events struct {
	AMQPURL    string `mapstructure:"amqp_url"`
	Exchange   string `mapstructure:"amqp_exchange"`
	RoutingKey string `mapstructure:"amqp_routing_key"`
}

type Metrics struct {
	Enabled bool `mapstructure:"metrics_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/agent_performance")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	viper.SetDefault("DATABASE_AUTO_MIGRATE", true)

	viper.SetDefault("SECRET_KEY", "your_secret_key")
	viper.SetDefault("AUTH_TOKEN_TTL", "24h")

	// Política única de retentativa para leituras no banco
	viper.SetDefault("RETRY_MAX_ATTEMPTS", 3)
	viper.SetDefault("RETRY_INITIAL_INTERVAL", "200ms")
	viper.SetDefault("RETRY_MAX_INTERVAL", "2s")
	viper.SetDefault("RETRY_ATTEMPT_TIMEOUT", "5s")

	viper.SetDefault("IMPORT_BATCH_SIZE", 50)
	viper.SetDefault("IMPORT_MAX_UPLOAD_MB", 10)
	viper.SetDefault("IMPORT_SCHEMA_FILE", "")
	viper.SetDefault("IMPORT_MAX_ROWS", 100000)

	viper.SetDefault("GOOGLE_SERVICE_ACCOUNT_JSON", "")
	viper.SetDefault("GOOGLE_SERVICE_ACCOUNT_FILE", "")

	viper.SetDefault("SHEETS_SYNC_CRON", "0 2 * * *") // Todos os dias às 2h da manhã
	viper.SetDefault("SHEETS_SYNC_SPREADSHEET_ID", "")
	viper.SetDefault("SHEETS_SYNC_RANGE", "Raporlar!A1:L")
	viper.SetDefault("SHEETS_SYNC_ENABLED", false)

	viper.SetDefault("IMPORT_INBOX_DIR", "./inbox")
	viper.SetDefault("IMPORT_INBOX_ENABLED", false)

	viper.SetDefault("AMQP_URL", "")
	viper.SetDefault("AMQP_EXCHANGE", "agent-performance")
	viper.SetDefault("AMQP_ROUTING_KEY", "reports.imported")

	viper.SetDefault("METRICS_ENABLED", true)

	viper.SetDefault("LOG_LEVEL", "debug")
	viper.SetDefault("APP_ENV", "development")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = BuildDSN(config.Database)

	return config, nil
}

// BuildDSN monta a string de conexão a partir das partes configuradas
func BuildDSN(db Database) string {
	dsn := fmt.Sprintf(
		"%s://%s:%s@%s",
		db.Driver,
		db.User,
		db.Password,
		db.URL,
	)

	if db.SSLMode != "" {
		dsn = fmt.Sprintf("%s?sslmode=%s", dsn, db.SSLMode)
	}

	return dsn
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
