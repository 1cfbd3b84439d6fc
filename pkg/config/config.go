package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	Stability StabilityConfig
}

type ServerConfig struct {
	Address string
}

type DBConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     int
}

// StabilityConfig 是文生圖服務（Stability AI）的連線設定
type StabilityConfig struct {
	APIKey         string
	Engine         string
	BaseURL        string
	TimeoutSeconds int
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./pkg/config")

	// API 金鑰這類機密走環境變數，其餘設定走配置文件
	viper.SetEnvPrefix("drawguess")
	viper.AutomaticEnv()
	_ = viper.BindEnv("stability.apikey", "STABILITY_API_KEY")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Timeout 回傳生圖請求的逾時時間，未設定時預設 30 秒
func (c StabilityConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
