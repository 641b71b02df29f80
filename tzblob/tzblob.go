// Package tzblob persists a pair of time change rules as a fixed-size
// binary blob, suitable for a raw non-volatile memory region on an
// embedded target or a plain file on a host.
//
// The layout is fixed at Size bytes: a four-octet magic, a version octet,
// three reserved octets, then two twelve-octet rule records, daylight rule
// first. Multi-octet values are stored big-endian.
//
// Decoding only checks the blob format. It never touches a converter's
// cached transition instants; callers hand the decoded rules to
// tzconv.New or Reconfigure, which leaves the cache stale until the next
// query recomputes it.
package tzblob

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/tzclock/go-tzclock/tzrule"
)

var order = binary.BigEndian

// Magic identifies a blob as a time change rule pair.
var Magic = [4]byte{'T', 'Z', 'C', 'R'}

// Version is the only format version this package reads and writes.
const Version byte = 1

// Size is the encoded size of a rule pair in bytes.
const Size = 4 + 1 + 3 + 2*12

// abbrevLen is the record space for a zone designation, including the
// terminating NUL. Longer designations are truncated on encode.
const abbrevLen = 6

// record is the wire form of one rule.
type record struct {
	Abbrev [abbrevLen]byte // NUL-padded zone designation
	Week   uint8
	Day    uint8
	Month  uint8
	Hour   uint8
	Offset int16 // minutes east of UTC
}

// Encode writes the rule pair to w, daylight rule first.
func Encode(w io.Writer, dst, std tzrule.Rule) error {
	if _, err := w.Write(Magic[:]); err != nil {
		return fmt.Errorf("write magic: %w", err)
	}
	if err := binary.Write(w, order, [4]byte{Version}); err != nil {
		return fmt.Errorf("write version: %w", err)
	}
	if err := binary.Write(w, order, newRecord(dst)); err != nil {
		return fmt.Errorf("write daylight rule: %w", err)
	}
	if err := binary.Write(w, order, newRecord(std)); err != nil {
		return fmt.Errorf("write standard rule: %w", err)
	}
	return nil
}

// Decode reads a rule pair from r.
func Decode(r io.Reader) (dst, std tzrule.Rule, err error) {
	magic := make([]byte, len(Magic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return dst, std, fmt.Errorf("read magic: %w", err)
	}
	if !bytes.Equal(magic, Magic[:]) {
		return dst, std, fmt.Errorf("invalid magic: %v", magic)
	}
	var header [4]byte
	if err := binary.Read(r, order, &header); err != nil {
		return dst, std, fmt.Errorf("read version: %w", err)
	}
	if header[0] != Version {
		return dst, std, fmt.Errorf("unsupported version: %d", header[0])
	}

	var dstRec, stdRec record
	if err := binary.Read(r, order, &dstRec); err != nil {
		return dst, std, fmt.Errorf("read daylight rule: %w", err)
	}
	if err := binary.Read(r, order, &stdRec); err != nil {
		return dst, std, fmt.Errorf("read standard rule: %w", err)
	}

	if err := errors.Join(validate("daylight", dstRec), validate("standard", stdRec)); err != nil {
		return dst, std, err
	}
	return dstRec.rule(), stdRec.rule(), nil
}

// validate checks the field ranges of a decoded record. A blob read from
// worn or uninitialized non-volatile memory should fail here rather than
// configure a converter with garbage.
func validate(which string, rec record) error {
	var errs []error
	if rec.Week > uint8(tzrule.Fourth) {
		errs = append(errs, fmt.Errorf("invalid %s week: %d", which, rec.Week))
	}
	if rec.Day > uint8(time.Saturday) {
		errs = append(errs, fmt.Errorf("invalid %s day: %d", which, rec.Day))
	}
	if rec.Month < 1 || rec.Month > 12 {
		errs = append(errs, fmt.Errorf("invalid %s month: %d", which, rec.Month))
	}
	if rec.Hour > 23 {
		errs = append(errs, fmt.Errorf("invalid %s hour: %d", which, rec.Hour))
	}
	return errors.Join(errs...)
}

func newRecord(r tzrule.Rule) record {
	rec := record{
		Week:   uint8(r.Week),
		Day:    uint8(r.Day),
		Month:  uint8(r.Month),
		Hour:   uint8(r.Hour),
		Offset: int16(r.Offset),
	}
	// Keep the trailing NUL even for long designations.
	copy(rec.Abbrev[:abbrevLen-1], r.Abbrev)
	return rec
}

func (rec record) rule() tzrule.Rule {
	abbrev := rec.Abbrev[:]
	if i := bytes.IndexByte(abbrev, 0); i >= 0 {
		abbrev = abbrev[:i]
	}
	return tzrule.Rule{
		Abbrev: string(abbrev),
		Week:   tzrule.Week(rec.Week),
		Day:    time.Weekday(rec.Day),
		Month:  time.Month(rec.Month),
		Hour:   int(rec.Hour),
		Offset: int(rec.Offset),
	}
}
