package tzblob

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/tzclock/go-tzclock/tzrule"
)

var (
	usEDT = tzrule.Rule{Abbrev: "EDT", Week: tzrule.Second, Day: time.Sunday, Month: time.March, Hour: 2, Offset: -240}
	usEST = tzrule.Rule{Abbrev: "EST", Week: tzrule.First, Day: time.Sunday, Month: time.November, Hour: 2, Offset: -300}
)

func TestEncodeGolden(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, usEDT, usEST); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	want := []byte{
		'T', 'Z', 'C', 'R', // magic
		1, 0, 0, 0, // version, reserved
		'E', 'D', 'T', 0, 0, 0, 2, 0, 3, 2, 0xFF, 0x10, // EDT, week 2, Sunday, March, 02:00, -240
		'E', 'S', 'T', 0, 0, 0, 1, 0, 11, 2, 0xFE, 0xD4, // EST, week 1, Sunday, November, 02:00, -300
	}
	if diff := cmp.Diff(want, buf.Bytes()); diff != "" {
		t.Errorf("Encode() mismatch (-want +got):\n%s", diff)
	}
	if buf.Len() != Size {
		t.Errorf("Encode() wrote %d bytes, want Size = %d", buf.Len(), Size)
	}
}

func TestDecode(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, usEDT, usEST); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	dst, std, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if diff := cmp.Diff(usEDT, dst); diff != "" {
		t.Errorf("Decode() daylight rule mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(usEST, std); diff != "" {
		t.Errorf("Decode() standard rule mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeTruncatesLongAbbrev(t *testing.T) {
	long := usEDT
	long.Abbrev = "DAYLIGHT"

	var buf bytes.Buffer
	if err := Encode(&buf, long, usEST); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	dst, _, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if got, want := dst.Abbrev, "DAYLI"; got != want {
		t.Errorf("decoded designation = %q, want %q", got, want)
	}
}

func TestDecodeErrors(t *testing.T) {
	encode := func(mutate func([]byte)) []byte {
		var buf bytes.Buffer
		if err := Encode(&buf, usEDT, usEST); err != nil {
			t.Fatalf("Encode() error: %v", err)
		}
		b := buf.Bytes()
		mutate(b)
		return b
	}

	cases := []struct {
		name string
		blob []byte
	}{
		{"empty", nil},
		{"truncated", encode(func(b []byte) {})[:Size-4]},
		{"bad magic", encode(func(b []byte) { b[0] = 'X' })},
		{"unsupported version", encode(func(b []byte) { b[4] = 9 })},
		{"week out of range", encode(func(b []byte) { b[14] = 5 })},
		{"month out of range", encode(func(b []byte) { b[16] = 13 })},
		{"erased memory", bytes.Repeat([]byte{0xFF}, Size)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, _, err := Decode(bytes.NewReader(c.blob)); err == nil {
				t.Error("Decode(): want error, got nil")
			}
		})
	}
}
