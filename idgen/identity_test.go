package idgen

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/cespare/xxhash/v2"

	"github.com/ceyewan/idforge/clog"
)

type fakeNetwork struct {
	mac []byte
	err error
}

func (f fakeNetwork) HardwareAddr() ([]byte, error) { return f.mac, f.err }

type fakeProcess int

func (p fakeProcess) PID() int { return int(p) }

func TestResolver_DatacenterID(t *testing.T) {
	tests := []struct {
		name    string
		network NetworkSource
		max     int64
		want    int64
	}{
		{
			name:    "derived from last two bytes",
			network: fakeNetwork{mac: []byte{0x00, 0x11, 0x22, 0x33, 0xAB, 0xCD}},
			max:     31,
			want:    ((0xAB | 0xCD<<8) >> 6) % 32, // 22
		},
		{
			name:    "smaller max",
			network: fakeNetwork{mac: []byte{0x00, 0x11, 0x22, 0x33, 0xAB, 0xCD}},
			max:     7,
			want:    ((0xAB | 0xCD<<8) >> 6) % 8,
		},
		{
			name:    "lookup error falls back",
			network: fakeNetwork{err: errors.New("no interfaces")},
			max:     31,
			want:    FallbackDatacenterID,
		},
		{
			name:    "nil address falls back",
			network: fakeNetwork{},
			max:     31,
			want:    FallbackDatacenterID,
		},
		{
			name:    "short address falls back",
			network: fakeNetwork{mac: []byte{0xFF}},
			max:     31,
			want:    FallbackDatacenterID,
		},
		{
			name:    "non-positive max falls back",
			network: fakeNetwork{mac: []byte{0x00, 0x11, 0x22, 0x33, 0xAB, 0xCD}},
			max:     0,
			want:    FallbackDatacenterID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Resolver{Network: tt.network, Process: fakeProcess(1)}
			for i := 0; i < 3; i++ {
				if got := r.DatacenterID(tt.max); got != tt.want {
					t.Fatalf("DatacenterID(%d) = %d, want %d", tt.max, got, tt.want)
				}
			}
		})
	}
}

func TestResolver_FallbackIsLogged(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := clog.New(&clog.Config{Level: "debug", Format: "json"}, clog.WithWriter(buf))
	if err != nil {
		t.Fatalf("clog.New() error = %v", err)
	}

	r := &Resolver{Network: fakeNetwork{err: errors.New("boom")}, Process: fakeProcess(1), Logger: logger}
	if got := r.DatacenterID(31); got != FallbackDatacenterID {
		t.Fatalf("DatacenterID() = %d, want %d", got, FallbackDatacenterID)
	}

	out := buf.String()
	if !strings.Contains(out, `"level":"WARN"`) || !strings.Contains(out, "hardware address unavailable") {
		t.Errorf("expected WARN fallback log, got: %s", out)
	}
}

func TestResolver_WorkerID(t *testing.T) {
	r := &Resolver{Network: fakeNetwork{}, Process: fakeProcess(4242)}

	want := int64(xxhash.Sum64String("1"+strconv.Itoa(4242))&0xFFFF) % 32
	for i := 0; i < 3; i++ {
		if got := r.WorkerID(1, 31); got != want {
			t.Fatalf("WorkerID() = %d, want %d", got, want)
		}
	}

	for pid := 1; pid < 500; pid++ {
		r.Process = fakeProcess(pid)
		if got := r.WorkerID(3, 15); got < 0 || got > 15 {
			t.Fatalf("WorkerID(pid=%d) = %d, out of [0, 15]", pid, got)
		}
	}

	if got := r.WorkerID(1, 0); got != 0 {
		t.Errorf("WorkerID(max=0) = %d, want 0", got)
	}
}

func TestResolver_Resolve(t *testing.T) {
	r := &Resolver{Network: fakeNetwork{err: ErrIdentityUnavailable}, Process: fakeProcess(77)}
	dc, wk := r.Resolve(31, 31)
	if dc != FallbackDatacenterID {
		t.Errorf("datacenter = %d, want %d", dc, FallbackDatacenterID)
	}
	if want := r.WorkerID(FallbackDatacenterID, 31); wk != want {
		t.Errorf("worker = %d, want %d", wk, want)
	}
}

func TestSystemSources(t *testing.T) {
	if pid := (SystemProcessSource{}).PID(); pid <= 0 {
		t.Errorf("PID() = %d, want > 0", pid)
	}

	// 容器或 CI 环境可能没有可用网卡，只校验返回值的一致性
	mac, err := SystemNetworkSource{}.HardwareAddr()
	if err != nil {
		if !errors.Is(err, ErrIdentityUnavailable) {
			t.Errorf("HardwareAddr() error = %v, want ErrIdentityUnavailable", err)
		}
		return
	}
	if len(mac) < 2 {
		t.Errorf("HardwareAddr() = %x, want at least 2 bytes", mac)
	}

	got := NewResolver(nil).DatacenterID(31)
	if got < 0 || got > 31 {
		t.Errorf("DatacenterID() = %d, out of range", got)
	}
}
