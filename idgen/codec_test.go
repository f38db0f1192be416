package idgen

import (
	"testing"
	"time"
)

func TestEncode_WorkedExample(t *testing.T) {
	got := Encode(Parts{Timestamp: 1700000000000, DatacenterID: 1, WorkerID: 2, Sequence: 0})
	want := int64(1700000000000<<22) | (1 << 17) | (2 << 12)
	if got != want {
		t.Fatalf("Encode() = %d, want %d", got, want)
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		parts Parts
	}{
		{"zero", Parts{}},
		{"max", Parts{Timestamp: MaxTimestamp, DatacenterID: MaxDatacenterID, WorkerID: MaxWorkerID, Sequence: MaxSequence}},
		{"mixed", Parts{Timestamp: 1700000000000, DatacenterID: 17, WorkerID: 3, Sequence: 4000}},
		{"only sequence", Parts{Sequence: 1}},
		{"only worker", Parts{WorkerID: 31}},
		{"only datacenter", Parts{DatacenterID: 31}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := Encode(tt.parts)
			if id < 0 {
				t.Fatalf("sign bit set: %d", id)
			}
			if got := Decode(id); got != tt.parts {
				t.Errorf("Decode(Encode(%+v)) = %+v", tt.parts, got)
			}
		})
	}
}

func TestEncode_FieldsDoNotOverlap(t *testing.T) {
	// 超出位宽的值被截断，不会污染相邻字段
	id := Encode(Parts{Timestamp: 1, DatacenterID: 32, WorkerID: 33, Sequence: 4096 + 7})
	got := Decode(id)
	want := Parts{Timestamp: 1, DatacenterID: 0, WorkerID: 1, Sequence: 7}
	if got != want {
		t.Errorf("Decode() = %+v, want %+v", got, want)
	}
}

func TestParts_Time(t *testing.T) {
	p := Parts{Timestamp: 1500}
	got := p.Time(DefaultEpoch)
	if want := DefaultEpoch.Add(1500 * time.Millisecond); !got.Equal(want) {
		t.Errorf("Time() = %v, want %v", got, want)
	}
}
