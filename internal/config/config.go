package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pion/webrtc/v4"
	"github.com/spf13/viper"
)

type Config struct {
	Mode       string        `mapstructure:"mode"`
	Port       int           `mapstructure:"port"`
	StaticPath string        `mapstructure:"static_path"`
	ReadLimit  int64         `mapstructure:"read_limit"`
	PingPeriod time.Duration `mapstructure:"ping_period"`
	Secret     string        `mapstructure:"secret"`

	// Room create/join attempts allowed per connection per window.
	RoomRateLimit    int           `mapstructure:"room_rate_limit"`
	RoomRateInterval time.Duration `mapstructure:"room_rate_interval"`

	// ICEServersJSON is the raw iceServers list handed to clients on
	// /api/ice, same shape RTCPeerConnection accepts.
	ICEServersJSON string `mapstructure:"ice_servers_json"`

	ICEServers []webrtc.ICEServer `mapstructure:"-"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("static_path", "./web")
	v.SetDefault("read_limit", 32768)
	v.SetDefault("ping_period", "54s")
	v.SetDefault("room_rate_limit", 10)
	v.SetDefault("room_rate_interval", "10s")
	v.SetDefault("ice_servers_json", `[{"urls":"stun:stun.l.google.com:19302"}]`)

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("⚠️ Config file not found (%s), using defaults\n", fileName)
	} else {
		fmt.Printf("✅ Loaded config: %s\n", fileName)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	servers, err := ParseICEServersJSON(cfg.ICEServersJSON)
	if err != nil {
		return nil, fmt.Errorf("ice_servers_json: %w", err)
	}
	cfg.ICEServers = servers

	fmt.Printf("🧩 Mode: %s | Port: %d | Static: %s\n", cfg.Mode, cfg.Port, cfg.StaticPath)
	return &cfg, nil
}
