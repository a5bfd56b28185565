package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Game     GameConfig     `mapstructure:"game"`
}

type ServerConfig struct {
	HTTPAddress    string `mapstructure:"http_address"`
	RPCAddress     string `mapstructure:"rpc_address"`
	MonitorAddress string `mapstructure:"monitor_address"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

// GameConfig 游戏默认配置，房间创建时未指定配置则使用这里的值
type GameConfig struct {
	GridSize     int `mapstructure:"grid_size"`
	TimerSeconds int `mapstructure:"timer_seconds"`
	MaxErrors    int `mapstructure:"max_errors"`
	MaxTurns     int `mapstructure:"max_turns"`
	WordPoolSize int `mapstructure:"word_pool_size"`
}

func LoadConfig(path string) (config *Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("game.grid_size", 5)
	viper.SetDefault("game.timer_seconds", 30)
	viper.SetDefault("game.max_errors", 3)
	viper.SetDefault("game.max_turns", 9)
	viper.SetDefault("game.word_pool_size", 100)

	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}
