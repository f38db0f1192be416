package clog

import (
	"fmt"
	"strings"
)

const timeFormat = "2006-01-02T15:04:05.000Z07:00"

// Config 日志配置结构
//
//	Level:      日志级别 (debug|info|warn|error|fatal)
//	Format:     输出格式 (json|console)
//	Output:     输出目标 (stdout|stderr|文件路径)
//	AddSource:  是否显示调用位置信息
//	SourceRoot: 源代码路径前缀，用于裁剪显示的文件路径
//	Rotation:   文件输出时的滚动策略，为 nil 时使用默认值
type Config struct {
	Level      string          `json:"level" yaml:"level" mapstructure:"level"`
	Format     string          `json:"format" yaml:"format" mapstructure:"format"`
	Output     string          `json:"output" yaml:"output" mapstructure:"output"`
	AddSource  bool            `json:"add_source" yaml:"add_source" mapstructure:"add_source"`
	SourceRoot string          `json:"source_root" yaml:"source_root" mapstructure:"source_root"`
	Rotation   *RotationConfig `json:"rotation" yaml:"rotation" mapstructure:"rotation"`
}

// RotationConfig 日志文件滚动配置，仅在 Output 为文件路径时生效
type RotationConfig struct {
	MaxSizeMB  int  `json:"max_size_mb" yaml:"max_size_mb" mapstructure:"max_size_mb"`    // 单文件上限，默认 100MB
	MaxBackups int  `json:"max_backups" yaml:"max_backups" mapstructure:"max_backups"`    // 保留旧文件数，默认 7
	MaxAgeDays int  `json:"max_age_days" yaml:"max_age_days" mapstructure:"max_age_days"` // 旧文件保留天数，默认 30
	Compress   bool `json:"compress" yaml:"compress" mapstructure:"compress"`
}

// NewDevDefaultConfig 开发环境默认配置：debug 级别、console 格式、显示调用位置
func NewDevDefaultConfig(sourceRoot string) *Config {
	return &Config{
		Level:      "debug",
		Format:     "console",
		Output:     "stdout",
		AddSource:  true,
		SourceRoot: sourceRoot,
	}
}

// NewProdDefaultConfig 生产环境默认配置：info 级别、json 格式
func NewProdDefaultConfig() *Config {
	return &Config{
		Level:  "info",
		Format: "json",
		Output: "stdout",
	}
}

// validate 设置默认值并检查 Level 和 Format（内部使用）
func (c *Config) validate() error {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "console"
	}
	if c.Output == "" {
		c.Output = "stdout"
	}

	if _, err := ParseLevel(c.Level); err != nil {
		return err
	}
	format := strings.ToLower(c.Format)
	if format != "json" && format != "console" {
		return fmt.Errorf("invalid format: %s, must be json or console", c.Format)
	}

	if c.Rotation == nil {
		c.Rotation = &RotationConfig{}
	}
	if c.Rotation.MaxSizeMB <= 0 {
		c.Rotation.MaxSizeMB = 100
	}
	if c.Rotation.MaxBackups <= 0 {
		c.Rotation.MaxBackups = 7
	}
	if c.Rotation.MaxAgeDays <= 0 {
		c.Rotation.MaxAgeDays = 30
	}
	return nil
}
