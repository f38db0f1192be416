package trace

import "github.com/ceyewan/idforge/xerrors"

const (
	BatcherBatch  = "batch"
	BatcherSimple = "simple"
)

// Config 链路追踪配置
type Config struct {
	ServiceName string `json:"service_name" yaml:"service_name" mapstructure:"service_name"`

	// Endpoint OTLP gRPC 地址（Tempo/Jaeger），为空时不导出，只生成 TraceID
	Endpoint string `json:"endpoint" yaml:"endpoint" mapstructure:"endpoint"`

	// Sampler 采样率 [0, 1]
	Sampler float64 `json:"sampler" yaml:"sampler" mapstructure:"sampler"`

	// Batcher "batch"（默认）| "simple"
	Batcher  string `json:"batcher" yaml:"batcher" mapstructure:"batcher"`
	Insecure bool   `json:"insecure" yaml:"insecure" mapstructure:"insecure"`
}

// DefaultConfig 返回默认配置
func DefaultConfig(serviceName string) *Config {
	return &Config{
		ServiceName: serviceName,
		Endpoint:    "localhost:4317",
		Sampler:     1.0,
		Batcher:     BatcherBatch,
		Insecure:    true,
	}
}

func (c *Config) validate() error {
	if c.ServiceName == "" {
		return xerrors.WithCode(xerrors.Wrap(xerrors.ErrInvalidInput, "trace: service_name is required"), "service_name_required")
	}
	if c.Sampler < 0 || c.Sampler > 1 {
		return xerrors.WithCode(xerrors.Wrapf(xerrors.ErrInvalidInput, "trace: sampler %v", c.Sampler), "sampler_out_of_range")
	}
	if c.Batcher != "" && c.Batcher != BatcherBatch && c.Batcher != BatcherSimple {
		return xerrors.WithCode(xerrors.Wrapf(xerrors.ErrInvalidInput, "trace: batcher %q", c.Batcher), "unsupported_batcher")
	}
	return nil
}
