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
	"github.com/vfg2006/ad-monitor-api/internal/domain"
)

type Config struct {
	App           App           `mapstructure:",squash"`
	Server        Server        `mapstructure:",squash"`
	Database      Database      `mapstructure:",squash"`
	OceanEngine   OceanEngine   `mapstructure:",squash"`
	Feishu        Feishu        `mapstructure:",squash"`
	Auth          Auth          `mapstructure:",squash"`
	IngestionSync IngestionSync `mapstructure:",squash"`
	AlertDaily    AlertRuleEnv  `mapstructure:",squash"`
	AlertIntraday AlertRuleEnv  `mapstructure:"-"`
	CommentSync   CommentSync   `mapstructure:",squash"`
	CommentNotify CommentNotify `mapstructure:",squash"`
	Timezone      string        `mapstructure:"timezone"`

	// Location é o fuso da plataforma, resolvido a partir de Timezone.
	Location *time.Location `mapstructure:"-"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type OceanEngine struct {
	BaseURL        string `mapstructure:"oe_base_url"`
	AccessToken    string `mapstructure:"oe_access_token"`
	TimeoutSeconds int    `mapstructure:"oe_timeout_seconds"`
	MaxRetries     int    `mapstructure:"oe_max_retries"`
}

type Feishu struct {
	WebhookURL     string  `mapstructure:"feishu_webhook_url"`
	Secret         string  `mapstructure:"feishu_secret"`
	Keyword        string  `mapstructure:"feishu_keyword"`
	TimeoutSeconds int     `mapstructure:"feishu_timeout_seconds"`
	UnitMult       float64 `mapstructure:"money_to_yuan_mult"`
	Digits         int     `mapstructure:"money_to_yuan_digits"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type IngestionSync struct {
	CronSchedule string `mapstructure:"ingestion_sync_cron"`
	SnapshotPath string `mapstructure:"ingestion_snapshot_path"`
	Enabled      bool   `mapstructure:"ingestion_sync_enabled"`
}

// AlertRuleEnv é a configuração externa de uma instância de regra.
type AlertRuleEnv struct {
	CronSchedule  string `mapstructure:"alert_daily_cron"`
	Thresholds    string `mapstructure:"alert_daily_thresholds"`
	LookbackDays  int    `mapstructure:"alert_daily_lookback_days"`
	BucketMinutes int    `mapstructure:"-"`
	AlwaysNotify  bool   `mapstructure:"alert_daily_always_notify"`
	MaxItems      int    `mapstructure:"alert_daily_max_items"`
	Enabled       bool   `mapstructure:"alert_daily_enabled"`

	// MaxNotifyPerDay limita lembretes por anunciante por dia no fluxo
	// disparado por hit (contado sobre os próprios AlertEvents).
	MaxNotifyPerDay int `mapstructure:"alert_max_notify_per_day"`
}

type CommentSync struct {
	CronSchedule           string `mapstructure:"comment_sync_cron"`
	LookbackDays           int    `mapstructure:"comment_sync_lookback_days"`
	PageSize               int    `mapstructure:"comment_sync_page_size"`
	MaxStartupDelaySeconds int    `mapstructure:"comment_sync_max_startup_delay_seconds"`
	Enabled                bool   `mapstructure:"comment_sync_enabled"`
}

type CommentNotify struct {
	CronSchedule string `mapstructure:"comment_notify_cron"`
	WindowHours  int    `mapstructure:"comment_notify_window_hours"`
	Enabled      bool   `mapstructure:"comment_notify_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/admonitor")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("OE_BASE_URL", "https://api.oceanengine.com")
	viper.SetDefault("OE_ACCESS_TOKEN", "")
	viper.SetDefault("OE_TIMEOUT_SECONDS", 30)
	viper.SetDefault("OE_MAX_RETRIES", 6)

	viper.SetDefault("FEISHU_WEBHOOK_URL", "")
	viper.SetDefault("FEISHU_SECRET", "")
	viper.SetDefault("FEISHU_KEYWORD", "")
	viper.SetDefault("FEISHU_TIMEOUT_SECONDS", 15)
	viper.SetDefault("MONEY_TO_YUAN_MULT", 0.00001)
	viper.SetDefault("MONEY_TO_YUAN_DIGITS", 2)

	viper.SetDefault("AUTH_SECRET", "your_auth_secret")

	viper.SetDefault("TIMEZONE", "Asia/Shanghai")

	// Defaults para ingestão de snapshot
	viper.SetDefault("INGESTION_SYNC_CRON", "*/30 * * * *") // A cada 30 minutos
	viper.SetDefault("INGESTION_SNAPSHOT_PATH", "output/latest.json")
	viper.SetDefault("INGESTION_SYNC_ENABLED", false)

	// Defaults para a regra diária de saldo
	viper.SetDefault("ALERT_DAILY_CRON", "5 0 * * *") // Todos os dias às 00:05
	viper.SetDefault("ALERT_DAILY_THRESHOLDS", "2.0:warn")
	viper.SetDefault("ALERT_DAILY_LOOKBACK_DAYS", 1)
	viper.SetDefault("ALERT_DAILY_ALWAYS_NOTIFY", false)
	viper.SetDefault("ALERT_DAILY_MAX_ITEMS", 80)
	viper.SetDefault("ALERT_DAILY_ENABLED", false)
	viper.SetDefault("ALERT_MAX_NOTIFY_PER_DAY", 3)

	// Defaults para a regra intradiária de saldo
	viper.SetDefault("ALERT_INTRADAY_CRON", "*/30 * * * *") // A cada 30 minutos
	viper.SetDefault("ALERT_INTRADAY_THRESHOLDS", "1.0:crit")
	viper.SetDefault("ALERT_INTRADAY_LOOKBACK_DAYS", 1)
	viper.SetDefault("ALERT_INTRADAY_BUCKET_MINUTES", 30)
	viper.SetDefault("ALERT_INTRADAY_MAX_ITEMS", 30)
	viper.SetDefault("ALERT_INTRADAY_ENABLED", false)

	// Defaults para moderação de comentários
	viper.SetDefault("COMMENT_SYNC_CRON", "*/15 * * * *") // A cada 15 minutos
	viper.SetDefault("COMMENT_SYNC_LOOKBACK_DAYS", 1)
	viper.SetDefault("COMMENT_SYNC_PAGE_SIZE", 100)
	viper.SetDefault("COMMENT_SYNC_MAX_STARTUP_DELAY_SECONDS", 20)
	viper.SetDefault("COMMENT_SYNC_ENABLED", false)

	// Defaults para o rollup de notificação de comentários
	viper.SetDefault("COMMENT_NOTIFY_CRON", "0 9 * * *") // Todos os dias às 9h
	viper.SetDefault("COMMENT_NOTIFY_WINDOW_HOURS", 24)
	viper.SetDefault("COMMENT_NOTIFY_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "info")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis de ambiente (viper não conseguiu ler .env): ", err)
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

	// A regra intradiária compartilha o squash com a diária apenas no tipo;
	// as chaves são lidas diretamente para não colidir no mapstructure.
	config.AlertIntraday = AlertRuleEnv{
		CronSchedule:    viper.GetString("ALERT_INTRADAY_CRON"),
		Thresholds:      viper.GetString("ALERT_INTRADAY_THRESHOLDS"),
		LookbackDays:    viper.GetInt("ALERT_INTRADAY_LOOKBACK_DAYS"),
		BucketMinutes:   viper.GetInt("ALERT_INTRADAY_BUCKET_MINUTES"),
		MaxItems:        viper.GetInt("ALERT_INTRADAY_MAX_ITEMS"),
		Enabled:         viper.GetBool("ALERT_INTRADAY_ENABLED"),
		MaxNotifyPerDay: viper.GetInt("ALERT_MAX_NOTIFY_PER_DAY"),
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	loc, err := time.LoadLocation(config.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone inválido %q: %w", config.Timezone, err)
	}
	config.Location = loc

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate falha rápido em parâmetros obrigatórios ausentes, antes de
// qualquer efeito colateral.
func (c *Config) Validate() error {
	if c.Database.URL == "" || c.Database.User == "" || c.Database.Password == "" {
		return fmt.Errorf("parâmetros de conexão com o banco ausentes (DATABASE_URL/DATABASE_USER/DATABASE_PASSWORD)")
	}

	notifyEnabled := c.CommentNotify.Enabled || c.AlertDaily.Enabled || c.AlertIntraday.Enabled
	if notifyEnabled && c.Feishu.WebhookURL == "" {
		return fmt.Errorf("FEISHU_WEBHOOK_URL obrigatório com notificação habilitada")
	}

	if c.CommentSync.Enabled && c.OceanEngine.AccessToken == "" {
		return fmt.Errorf("OE_ACCESS_TOKEN obrigatório com moderação de comentários habilitada")
	}

	return nil
}

// Rules materializa as instâncias de regra configuradas.
func (c *Config) Rules() ([]domain.AlertRule, error) {
	rules := make([]domain.AlertRule, 0, 2)

	dailyThresholds, err := domain.ParseThresholds(c.AlertDaily.Thresholds)
	if err != nil {
		return nil, fmt.Errorf("limiares inválidos para a regra diária: %w", err)
	}
	rules = append(rules, domain.AlertRule{
		ID:                   "RULE_00",
		Granularity:          domain.GranularityDay,
		BaselineLookbackDays: c.AlertDaily.LookbackDays,
		Thresholds:           dailyThresholds,
		AlwaysNotify:         c.AlertDaily.AlwaysNotify,
		MaxItems:             c.AlertDaily.MaxItems,
		MaxNotifyPerDay:      c.AlertDaily.MaxNotifyPerDay,
		CronSchedule:         c.AlertDaily.CronSchedule,
		Enabled:              c.AlertDaily.Enabled,
	})

	intradayThresholds, err := domain.ParseThresholds(c.AlertIntraday.Thresholds)
	if err != nil {
		return nil, fmt.Errorf("limiares inválidos para a regra intradiária: %w", err)
	}
	rules = append(rules, domain.AlertRule{
		ID:                   "RULE_30M",
		Granularity:          domain.GranularityMinutes,
		BucketMinutes:        c.AlertIntraday.BucketMinutes,
		BaselineLookbackDays: c.AlertIntraday.LookbackDays,
		Thresholds:           intradayThresholds,
		MaxItems:             c.AlertIntraday.MaxItems,
		MaxNotifyPerDay:      c.AlertIntraday.MaxNotifyPerDay,
		CronSchedule:         c.AlertIntraday.CronSchedule,
		Enabled:              c.AlertIntraday.Enabled,
	})

	return rules, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual: ", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado de: ", location)
			return
		}
	}
}
