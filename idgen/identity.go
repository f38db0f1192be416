package idgen

import (
	"net"
	"os"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
	psnet "github.com/shirou/gopsutil/v4/net"

	"github.com/ceyewan/idforge/clog"
	"github.com/ceyewan/idforge/xerrors"
)

// FallbackDatacenterID 无法读取硬件地址时使用的数据中心 ID
const FallbackDatacenterID int64 = 1

// ========================================
// 身份来源 (Identity Sources)
// ========================================

// NetworkSource 提供本机硬件网络地址
type NetworkSource interface {
	HardwareAddr() ([]byte, error)
}

// ProcessSource 提供当前进程号
type ProcessSource interface {
	PID() int
}

// SystemNetworkSource 返回第一个非回环、非全零的网卡硬件地址
type SystemNetworkSource struct{}

func (SystemNetworkSource) HardwareAddr() ([]byte, error) {
	ifaces, err := psnet.Interfaces()
	if err != nil {
		return nil, xerrors.Wrap(ErrIdentityUnavailable, err.Error())
	}
	for _, iface := range ifaces {
		if iface.HardwareAddr == "" || slices.Contains(iface.Flags, "loopback") {
			continue
		}
		mac, err := net.ParseMAC(iface.HardwareAddr)
		if err != nil || isZeroAddr(mac) {
			continue
		}
		return mac, nil
	}
	return nil, ErrIdentityUnavailable
}

func isZeroAddr(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

// SystemProcessSource 返回 os.Getpid()
type SystemProcessSource struct{}

func (SystemProcessSource) PID() int {
	return os.Getpid()
}

// ========================================
// 身份推导 (Identity Resolver)
// ========================================

// Resolver 从本机信号推导 (datacenterID, workerID)
//
// 推导结果对同一主机、同一进程是确定的，但不保证集群范围内无冲突。
type Resolver struct {
	Network NetworkSource
	Process ProcessSource
	Logger  clog.Logger
}

// NewResolver 使用系统身份来源创建 Resolver
func NewResolver(logger clog.Logger) *Resolver {
	return &Resolver{
		Network: SystemNetworkSource{},
		Process: SystemProcessSource{},
		Logger:  logger,
	}
}

// DatacenterID 取硬件地址最后两个字节组成 16 位值，右移 6 位后对 (max+1) 取模
//
// 硬件地址不可用或 max <= 0 时返回 FallbackDatacenterID，前者会记录一条 WARN 日志。
func (r *Resolver) DatacenterID(maxDatacenterID int64) int64 {
	if maxDatacenterID <= 0 {
		return FallbackDatacenterID
	}

	mac, err := r.Network.HardwareAddr()
	if err == nil && len(mac) < 2 {
		err = xerrors.Wrapf(ErrIdentityUnavailable, "hardware address too short: %d bytes", len(mac))
	}
	if err != nil {
		r.logger().Warn("hardware address unavailable, using fallback datacenter id",
			clog.Error(err),
			clog.Int64("datacenter_id", FallbackDatacenterID),
		)
		return FallbackDatacenterID
	}

	n := len(mac)
	id := (int64(mac[n-2]) | int64(mac[n-1])<<8) >> 6
	return id % (maxDatacenterID + 1)
}

// WorkerID 对 "<datacenterID><pid>" 做 xxhash，取低 16 位后对 (max+1) 取模
//
// 用于区分同一数据中心内共存的多个进程。
func (r *Resolver) WorkerID(datacenterID, maxWorkerID int64) int64 {
	if maxWorkerID <= 0 {
		return 0
	}
	key := strconv.FormatInt(datacenterID, 10) + strconv.Itoa(r.Process.PID())
	h := int64(xxhash.Sum64String(key) & 0xFFFF)
	return h % (maxWorkerID + 1)
}

// Resolve 依次推导数据中心 ID 与工作节点 ID
func (r *Resolver) Resolve(maxDatacenterID, maxWorkerID int64) (datacenterID, workerID int64) {
	datacenterID = r.DatacenterID(maxDatacenterID)
	workerID = r.WorkerID(datacenterID, maxWorkerID)
	return datacenterID, workerID
}

func (r *Resolver) logger() clog.Logger {
	if r.Logger == nil {
		return clog.Discard()
	}
	return r.Logger
}
