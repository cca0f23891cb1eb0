package config

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Config holds the application's configuration values.
type Config struct {
	AppName string `json:"appname"`
	AppEnv  string `json:"appenv"`
	AppPort uint16 `json:"appport"`
	GinMode string `json:"ginmode"`

	DBDriver string `json:"dbdriver"`
	DBHost   string `json:"dbhost"`
	DBPort   uint16 `json:"dbport"`
	DBName   string `json:"dbname"`
	DBUSER   string `json:"dbuser"`
	DBPass   string `json:"dbpass"`

	JWTSecret   string   `json:"-"`
	GeoIPPath   string   `json:"geoip_path"`
	IPLookupURL string   `json:"ip_lookup_url"`
	CORSOrigins []string `json:"cors_origins"`

	SlotMinutes      int           `json:"slot_minutes"`
	DayStart         string        `json:"day_start"`
	DayEnd           string        `json:"day_end"`
	PageSize         int           `json:"page_size"`
	DashboardRefresh time.Duration `json:"dashboard_refresh"`

	LogLevel      string `json:"log_level"`
	LogFile       string `json:"log_file"`
	LogMaxSizeMB  int    `json:"log_max_size_mb"`
	LogMaxBackups int    `json:"log_max_backups"`
	LogMaxAgeDays int    `json:"log_max_age_days"`
}

// IsTest reports whether the process runs under APPENV=test.
func (c *Config) IsTest() bool {
	return c.AppEnv == "test"
}

var config *Config
var once sync.Once

// envFile is the .env file read by LoadConfig; empty means ./.env.
var envFile string

// SetEnvFile points LoadConfig at another env file. It must be called before
// the first LoadConfig.
func SetEnvFile(path string) {
	envFile = path
}

// v is shared with the cobra commands so flags can override env values.
var v = viper.New()

// Viper exposes the viper instance backing LoadConfig, used by cmd to bind flags.
func Viper() *viper.Viper {
	return v
}

func setDefaults() {
	v.SetDefault("APPNAME", "Dental Clinic")
	v.SetDefault("APPENV", "development")
	v.SetDefault("APPPORT", 8080)
	v.SetDefault("GINMODE", "debug")
	v.SetDefault("DBDRIVER", "mysql")
	v.SetDefault("DBHOST", "localhost")
	v.SetDefault("DBPORT", 3306)
	v.SetDefault("IP_LOOKUP_URL", "https://api.ipify.org")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("SLOT_MINUTES", 30)
	v.SetDefault("DAY_START", "08:00")
	v.SetDefault("DAY_END", "20:00")
	v.SetDefault("PAGE_SIZE", 20)
	v.SetDefault("DASHBOARD_REFRESH", "30s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_MAX_SIZE_MB", 50)
	v.SetDefault("LOG_MAX_BACKUPS", 5)
	v.SetDefault("LOG_MAX_AGE_DAYS", 30)
}

// LoadConfig loads the environment variables from an optional .env file and
// returns a singleton Config instance.
func LoadConfig() *Config {
	once.Do(func() {
		// A missing .env is fine, the process environment still applies.
		if envFile != "" {
			_ = godotenv.Load(envFile)
		} else {
			_ = godotenv.Load()
		}

		setDefaults()
		v.AutomaticEnv()

		origins := []string{}
		for _, o := range strings.Split(v.GetString("CORS_ORIGINS"), ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}

		config = &Config{
			AppName:          v.GetString("APPNAME"),
			AppEnv:           v.GetString("APPENV"),
			AppPort:          uint16(v.GetUint("APPPORT")),
			GinMode:          v.GetString("GINMODE"),
			DBDriver:         strings.ToLower(v.GetString("DBDRIVER")),
			DBHost:           v.GetString("DBHOST"),
			DBPort:           uint16(v.GetUint("DBPORT")),
			DBName:           v.GetString("DBNAME"),
			DBUSER:           v.GetString("DBUSER"),
			DBPass:           v.GetString("DBPASS"),
			JWTSecret:        v.GetString("JWTSECRET"),
			GeoIPPath:        v.GetString("GEOIP_DB_PATH"),
			IPLookupURL:      v.GetString("IP_LOOKUP_URL"),
			CORSOrigins:      origins,
			SlotMinutes:      v.GetInt("SLOT_MINUTES"),
			DayStart:         v.GetString("DAY_START"),
			DayEnd:           v.GetString("DAY_END"),
			PageSize:         v.GetInt("PAGE_SIZE"),
			DashboardRefresh: v.GetDuration("DASHBOARD_REFRESH"),
			LogLevel:         v.GetString("LOG_LEVEL"),
			LogFile:          v.GetString("LOG_FILE"),
			LogMaxSizeMB:     v.GetInt("LOG_MAX_SIZE_MB"),
			LogMaxBackups:    v.GetInt("LOG_MAX_BACKUPS"),
			LogMaxAgeDays:    v.GetInt("LOG_MAX_AGE_DAYS"),
		}
	})
	return config
}

// ResetConfigForTest drops the cached singleton so the next LoadConfig
// re-reads the environment.
func ResetConfigForTest() {
	config = nil
	once = sync.Once{}
	v = viper.New()
}

// ConnectDatabase opens the configured database. Under APPENV=test it opens a
// private in-memory sqlite database instead.
func ConnectDatabase() (*gorm.DB, error) {
	cfg := LoadConfig()
	if cfg.IsTest() || os.Getenv("APPENV") == "test" {
		dsn := fmt.Sprintf("file:dental_%d?mode=memory&cache=shared", time.Now().UnixNano())
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}

	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			cfg.DBHost, cfg.DBPort, cfg.DBUSER, cfg.DBPass, cfg.DBName)
		dialector = postgres.Open(dsn)
	case "mysql", "":
		// Build the Data Source Name (DSN) using the configuration values.
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", cfg.DBUSER, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		dialector = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DBDRIVER %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return db, nil
}
