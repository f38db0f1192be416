package idgen

import "time"

const (
	timestampBits    = 41
	datacenterIDBits = 5
	workerIDBits     = 5
	sequenceBits     = 12

	workerIDShift     = sequenceBits
	datacenterIDShift = sequenceBits + workerIDBits
	timestampShift    = sequenceBits + workerIDBits + datacenterIDBits

	// MaxTimestamp 41 位时间戳能表示的最大毫秒偏移
	MaxTimestamp int64 = 1<<timestampBits - 1
	// MaxDatacenterID 5 位数据中心 ID 上限
	MaxDatacenterID int64 = 1<<datacenterIDBits - 1
	// MaxWorkerID 5 位工作节点 ID 上限
	MaxWorkerID int64 = 1<<workerIDBits - 1
	// MaxSequence 12 位序列号上限
	MaxSequence int64 = 1<<sequenceBits - 1
)

// Parts ID 的各组成部分
type Parts struct {
	// Timestamp 相对 Epoch 的毫秒数
	Timestamp    int64
	DatacenterID int64
	WorkerID     int64
	Sequence     int64
}

// Time 返回以 epoch 为基准的绝对时间
func (p Parts) Time(epoch time.Time) time.Time {
	return time.UnixMilli(epoch.UnixMilli() + p.Timestamp)
}

// Encode 将各部分按位打包为 ID，超出位宽的部分会被截断
func Encode(p Parts) int64 {
	return (p.Timestamp&MaxTimestamp)<<timestampShift |
		(p.DatacenterID&MaxDatacenterID)<<datacenterIDShift |
		(p.WorkerID&MaxWorkerID)<<workerIDShift |
		p.Sequence&MaxSequence
}

// Decode 拆解 ID
func Decode(id int64) Parts {
	return Parts{
		Timestamp:    id >> timestampShift & MaxTimestamp,
		DatacenterID: id >> datacenterIDShift & MaxDatacenterID,
		WorkerID:     id >> workerIDShift & MaxWorkerID,
		Sequence:     id & MaxSequence,
	}
}
