package cache

import "github.com/ceyewan/idforge/xerrors"

const (
	ModeDistributed = "distributed"
	ModeStandalone  = "standalone"
)

// Config 缓存组件配置
type Config struct {
	// Mode 缓存模式: "distributed" | "standalone" (默认 "distributed")
	Mode string `json:"mode" yaml:"mode" mapstructure:"mode"`

	// Prefix 全局 Key 前缀 (e.g., "idforge:")
	Prefix string `json:"prefix" yaml:"prefix" mapstructure:"prefix"`

	// Serializer "json" | "msgpack" (默认 "json")
	Serializer string `json:"serializer" yaml:"serializer" mapstructure:"serializer"`

	// Standalone 单机缓存配置
	Standalone *StandaloneConfig `json:"standalone" yaml:"standalone" mapstructure:"standalone"`
}

// StandaloneConfig 单机缓存配置
type StandaloneConfig struct {
	// Capacity 缓存最大容量（条目数，默认：10000）
	Capacity int `json:"capacity" yaml:"capacity" mapstructure:"capacity"`
}

func (c *Config) setDefaults() {
	if c.Mode == "" {
		c.Mode = ModeDistributed
	}
	if c.Serializer == "" {
		c.Serializer = "json"
	}
	if c.Standalone == nil {
		c.Standalone = &StandaloneConfig{}
	}
	if c.Standalone.Capacity <= 0 {
		c.Standalone.Capacity = 10000
	}
}

func (c *Config) validate() error {
	if c.Mode != ModeDistributed && c.Mode != ModeStandalone {
		return xerrors.WithCode(ErrInvalidConfig, "unsupported_mode")
	}
	return nil
}
