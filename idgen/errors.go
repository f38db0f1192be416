package idgen

import "github.com/ceyewan/idforge/xerrors"

var (
	// ErrInvalidConfig 生成器配置非法，在 New 时同步返回
	// 具体原因通过 xerrors.GetCode 获取
	ErrInvalidConfig = xerrors.Wrap(xerrors.ErrInvalidInput, "idgen: invalid config")

	// ErrClockMovedBackwards 时钟回拨，按次返回给调用方
	ErrClockMovedBackwards = xerrors.Wrap(xerrors.ErrUnavailable, "idgen: clock moved backwards")

	// ErrIdentityUnavailable 无法读取本机硬件地址
	// 仅用于日志，推导会回退到固定值，不会返回给 New 的调用方
	ErrIdentityUnavailable = xerrors.New("idgen: hardware address unavailable")

	// ErrTimestampOverflow 当前时间相对 Epoch 超出 41 位范围
	ErrTimestampOverflow = xerrors.Wrap(xerrors.ErrUnavailable, "idgen: timestamp out of range")
)

// 配置错误码
const (
	CodeConfigNil                 = "config_nil"
	CodeDatacenterIDOutOfRange    = "datacenter_id_out_of_range"
	CodeWorkerIDOutOfRange        = "worker_id_out_of_range"
	CodeMaxDatacenterIDOutOfRange = "max_datacenter_id_out_of_range"
	CodeMaxWorkerIDOutOfRange     = "max_worker_id_out_of_range"
	CodeEpochInFuture             = "epoch_in_future"
	CodeEpochTooOld               = "epoch_too_old"
	CodeConfigDecode              = "config_decode_failed"
)
