package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix 是環境變數覆寫設定時使用的前綴，例如 ROOMLOG_DB_HOST
const EnvPrefix = "ROOMLOG"

type Config struct {
	Server ServerConfig
	DB     DBConfig
	Log    LogConfig
	Auth   AuthConfig
}

type ServerConfig struct {
	Address string
	// Mode 對應 gin 的模式：debug、release、test
	Mode string
	// UniformErrors 為 true 時所有失敗都回傳 400
	UniformErrors   bool          `mapstructure:"uniform_errors"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DBConfig struct {
	// Driver 可為 postgres、sqlite 或 mongo
	Driver   string
	Host     string
	User     string
	Password string
	Name     string
	Port     int
	SSLMode  string `mapstructure:"sslmode"`
	// Path 是 sqlite 的檔案路徑
	Path string
	// URI 是 mongo 的連線字串
	URI string
}

type LogConfig struct {
	Level  string
	Format string
	// EnforceRoomAccess 為 true 時只接受用戶 allowedRoom 內的房間
	EnforceRoomAccess bool `mapstructure:"enforce_room_access"`
}

type AuthConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.uniform_errors", false)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "roomlog")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.path", "roomlog.db")
	v.SetDefault("db.uri", "mongodb://localhost:27017")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.enforce_room_access", false)

	v.SetDefault("auth.bcrypt_cost", 10)
}

// Load 讀取設定。path 為空時在 ./pkg/config 與目前目錄尋找 config.yaml，
// 找不到設定檔時只使用預設值與環境變數。
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./pkg/config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
