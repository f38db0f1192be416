package idgen

import (
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"

	"github.com/ceyewan/idforge/config"
	"github.com/ceyewan/idforge/xerrors"
)

// DefaultEpoch 默认纪元 2024-01-01T00:00:00Z
var DefaultEpoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// ========================================
// 配置结构 (Configuration)
// ========================================

// GeneratorConfig Snowflake 生成器配置，New 之后不可变
//
// DatacenterID / WorkerID 为 nil 时由 Resolver 从本机推导，非 nil 时（包括 0）使用显式值。
type GeneratorConfig struct {
	// DatacenterID 数据中心 ID [0, MaxDatacenterID]，可选
	DatacenterID *int64 `mapstructure:"datacenter_id" yaml:"datacenter_id" json:"datacenter_id"`

	// WorkerID 工作节点 ID [0, MaxWorkerID]，可选
	WorkerID *int64 `mapstructure:"worker_id" yaml:"worker_id" json:"worker_id"`

	// Epoch 时间戳基准，零值表示 DefaultEpoch，不能晚于当前时间
	Epoch time.Time `mapstructure:"epoch" yaml:"epoch" json:"epoch"`

	// MaxDatacenterID 数据中心 ID 上限，默认 31，只能调小
	MaxDatacenterID int64 `mapstructure:"max_datacenter_id" yaml:"max_datacenter_id" json:"max_datacenter_id"`

	// MaxWorkerID 工作节点 ID 上限，默认 31，只能调小
	MaxWorkerID int64 `mapstructure:"max_worker_id" yaml:"max_worker_id" json:"max_worker_id"`
}

// Int64 返回 v 的指针，便于填写可选 ID
func Int64(v int64) *int64 {
	return &v
}

func (c *GeneratorConfig) setDefaults() {
	if c.Epoch.IsZero() {
		c.Epoch = DefaultEpoch
	}
	if c.MaxDatacenterID == 0 {
		c.MaxDatacenterID = MaxDatacenterID
	}
	if c.MaxWorkerID == 0 {
		c.MaxWorkerID = MaxWorkerID
	}
}

// validate 校验配置，nowMilli 为当前时钟读数
func (c *GeneratorConfig) validate(nowMilli int64) error {
	if c.MaxDatacenterID < 0 || c.MaxDatacenterID > MaxDatacenterID {
		return xerrors.WithCode(ErrInvalidConfig, CodeMaxDatacenterIDOutOfRange)
	}
	if c.MaxWorkerID < 0 || c.MaxWorkerID > MaxWorkerID {
		return xerrors.WithCode(ErrInvalidConfig, CodeMaxWorkerIDOutOfRange)
	}
	if c.DatacenterID != nil && (*c.DatacenterID < 0 || *c.DatacenterID > c.MaxDatacenterID) {
		return xerrors.WithCode(ErrInvalidConfig, CodeDatacenterIDOutOfRange)
	}
	if c.WorkerID != nil && (*c.WorkerID < 0 || *c.WorkerID > c.MaxWorkerID) {
		return xerrors.WithCode(ErrInvalidConfig, CodeWorkerIDOutOfRange)
	}

	epoch := c.Epoch.UnixMilli()
	if epoch > nowMilli {
		return xerrors.WithCode(ErrInvalidConfig, CodeEpochInFuture)
	}
	if nowMilli-epoch > MaxTimestamp {
		return xerrors.WithCode(ErrInvalidConfig, CodeEpochTooOld)
	}
	return nil
}

// ========================================
// 配置加载 (Loading)
// ========================================

var configKeys = []string{"datacenter_id", "worker_id", "epoch", "max_datacenter_id", "max_worker_id"}

// LoadConfig 从配置加载器读取 key 下的生成器配置
//
// 只有在任一配置源（文件、.env、环境变量）中出现的字段才会被设置，
// 因此未出现的 datacenter_id / worker_id 保持 nil，交给 Resolver 推导。
// epoch 支持 RFC3339 字符串或 Unix 毫秒整数。
//
//	idgen:
//	  datacenter_id: 1
//	  epoch: "2024-01-01T00:00:00Z"
func LoadConfig(loader config.Loader, key string) (*GeneratorConfig, error) {
	if loader == nil {
		return nil, xerrors.WithCode(ErrInvalidConfig, CodeConfigNil)
	}

	raw := make(map[string]any, len(configKeys))
	for _, name := range configKeys {
		full := name
		if key != "" {
			full = key + "." + name
		}
		if loader.IsSet(full) {
			raw[name] = loader.Get(full)
		}
	}

	cfg := &GeneratorConfig{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.DecodeHookFuncType(unixMilliToTimeHook),
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		),
	})
	if err != nil {
		return nil, xerrors.Wrap(err, "create config decoder")
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, xerrors.WithCode(xerrors.Wrapf(ErrInvalidConfig, "decode %q: %v", key, err), CodeConfigDecode)
	}
	return cfg, nil
}

// unixMilliToTimeHook 把整数形式的 epoch 解释为 Unix 毫秒
//
// 环境变量中的值总是字符串，纯数字字符串同样按 Unix 毫秒处理，其余交给 RFC3339 解析。
func unixMilliToTimeHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(time.Time{}) {
		return data, nil
	}
	switch v := data.(type) {
	case int:
		return time.UnixMilli(int64(v)).UTC(), nil
	case int64:
		return time.UnixMilli(v).UTC(), nil
	case uint64:
		return time.UnixMilli(int64(v)).UTC(), nil
	case string:
		if ms, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			return time.UnixMilli(ms).UTC(), nil
		}
	}
	return data, nil
}
