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
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	Scorer      Scorer      `mapstructure:",squash"`
	Gemini      Gemini      `mapstructure:",squash"`
	LeadRefresh LeadRefresh `mapstructure:",squash"`
	Scoring     Scoring     `mapstructure:",squash"`
	SecretKey   string      `mapstructure:"secret_key"`
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

// Scorer configura o cliente do serviço de modelos de ML que calcula
// propensão por lead e valor esperado por conta.
type Scorer struct {
	URL            string        `mapstructure:"scorer_url"`
	RequestTimeout time.Duration `mapstructure:"scorer_request_timeout"`
}

// Gemini configura o serviço externo de geração de narrativas. Com a chave
// vazia o serviço nem é instanciado e apenas o template determinístico é
// usado.
type Gemini struct {
	APIKey         string        `mapstructure:"gemini_api_key"`
	Model          string        `mapstructure:"gemini_model"`
	RequestTimeout time.Duration `mapstructure:"gemini_request_timeout"`
}

// LeadRefresh configura o cron de atualização do snapshot de leads.
type LeadRefresh struct {
	CronSchedule string `mapstructure:"lead_refresh_cron"`
	Enabled      bool   `mapstructure:"lead_refresh_enabled"`
}

// Scoring concentra os cortes usados nas métricas derivadas das agregações.
type Scoring struct {
	HighPotentialThreshold float64 `mapstructure:"scoring_high_potential_threshold"`
	HighPriorityThreshold  float64 `mapstructure:"scoring_high_priority_threshold"`
	HighQualityThreshold   float64 `mapstructure:"scoring_high_quality_threshold"`
	DefaultQueryLimit      int     `mapstructure:"scoring_default_query_limit"`
	NarrativeSampleSize    int     `mapstructure:"scoring_narrative_sample_size"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/leads?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("SCORER_URL", "http://localhost:8500")
	viper.SetDefault("SCORER_REQUEST_TIMEOUT", "10s")

	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("GEMINI_REQUEST_TIMEOUT", "15s")

	// Defaults do cron de atualização do snapshot
	viper.SetDefault("LEAD_REFRESH_CRON", "0 5 * * *") // Todos os dias às 5h da manhã
	viper.SetDefault("LEAD_REFRESH_ENABLED", false)

	// Cortes de pontuação usados nas agregações
	viper.SetDefault("SCORING_HIGH_POTENTIAL_THRESHOLD", 0.7)
	viper.SetDefault("SCORING_HIGH_PRIORITY_THRESHOLD", 0.8)
	viper.SetDefault("SCORING_HIGH_QUALITY_THRESHOLD", 0.7)
	viper.SetDefault("SCORING_DEFAULT_QUERY_LIMIT", 100)
	viper.SetDefault("SCORING_NARRATIVE_SAMPLE_SIZE", 3)

	viper.SetDefault("SECRET_KEY", "your_secret_key")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Ler o .env com o Viper é opcional, já que o godotenv cuida do local
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
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

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
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
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado de:", location)
			return
		}
	}

	logrus.Info("Nenhum arquivo .env encontrado, usando variáveis de ambiente")
}
