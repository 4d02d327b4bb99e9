package conf

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	MongoDB MongoConfig
	Auth    AuthConfig
	WRM     WRMConfig
	Refresh RefreshConfig
}

type ServerConfig struct {
	Port string
}

type MongoConfig struct {
	URI      string
	Database string
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

type WRMConfig struct {
	Timeout     time.Duration `mapstructure:"timeout"`      // 單次請求逾時
	MaxRetries  uint          `mapstructure:"max_retries"`  // backoff 重試次數
	Concurrency int           `mapstructure:"concurrency"`  // 同時掃描幾個網站
}

type RefreshConfig struct {
	Interval time.Duration `mapstructure:"interval"`  // 輪詢間隔
	CacheTTL time.Duration `mapstructure:"cache_ttl"` // 統計資料快取多久
}

func LoadConfig() (*Config, error) {
	viper.AddConfigPath("./config") // 設定檔路徑
	viper.SetConfigName("config")   // 檔名
	viper.SetConfigType("yaml")     // 格式

	viper.AutomaticEnv() // 允許讀取環境變數

	// 預設值 (設定檔沒寫就用這些)
	viper.SetDefault("server.port", ":8080")
	viper.SetDefault("wrm.timeout", 10*time.Second)
	viper.SetDefault("wrm.max_retries", 3)
	viper.SetDefault("wrm.concurrency", 10)
	viper.SetDefault("refresh.interval", 5*time.Minute)
	viper.SetDefault("refresh.cache_ttl", 2*time.Minute)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	log.Println("設定檔讀取成功")
	return &cfg, nil
}
