// Package timestamp resolves the createdAt encodings found in stored records into one instant.
//
// Records written by the Go client hold native timestamps, but older writers stored
// serialized {_seconds, _nanoseconds} maps or ISO strings. A record's value is classified once,
// when it is decoded, and every consumer reads the instant through Stored.Time.
package timestamp

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/GregMSThompson/budget-backend/internal/errs"
)

type Kind int

const (
	Absent Kind = iota
	Instant
	EpochSeconds
	ISOString
	Unrecognized
)

func (k Kind) String() string {
	switch k {
	case Absent:
		return "absent"
	case Instant:
		return "instant"
	case EpochSeconds:
		return "epochSeconds"
	case ISOString:
		return "isoString"
	default:
		return "unrecognized"
	}
}

// Stored is a tagged union over the encodings. Only the fields for its Kind are set.
type Stored struct {
	kind    Kind
	instant time.Time
	seconds int64
	nanos   int64
	text    string
	raw     any
}

func FromTime(t time.Time) Stored {
	return Stored{kind: Instant, instant: t, raw: t}
}

// FromValue classifies a raw document value.
func FromValue(v any) Stored {
	switch val := v.(type) {
	case nil:
		return Stored{kind: Absent}
	case time.Time:
		return FromTime(val)
	case *time.Time:
		if val == nil {
			return Stored{kind: Absent}
		}
		return FromTime(*val)
	case string:
		if strings.TrimSpace(val) == "" {
			return Stored{kind: Absent, raw: val}
		}
		return Stored{kind: ISOString, text: strings.TrimSpace(val), raw: val}
	case map[string]any:
		return fromEpochRecord(val)
	}
	return Stored{kind: Unrecognized, raw: v}
}

func fromEpochRecord(m map[string]any) Stored {
	secRaw, ok := firstPresent(m, "_seconds", "seconds")
	if !ok {
		return Stored{kind: Unrecognized, raw: m}
	}
	sec, ok := wholeNumber(secRaw)
	if !ok {
		return Stored{kind: Unrecognized, raw: m}
	}
	var nanos int64
	if nRaw, present := firstPresent(m, "_nanoseconds", "nanoseconds", "nanos"); present {
		n, ok := wholeNumber(nRaw)
		if !ok || n < 0 || n >= int64(time.Second) {
			return Stored{kind: Unrecognized, raw: m}
		}
		nanos = n
	}
	return Stored{kind: EpochSeconds, seconds: sec, nanos: nanos, raw: m}
}

func (s Stored) Kind() Kind { return s.kind }

// Raw returns the value the record was classified from, for logging.
func (s Stored) Raw() any { return s.raw }

// Time returns the canonical instant, or a *errs.MalformedTimestampError when the value is
// absent or cannot be decoded. Strings without a zone are read as UTC.
func (s Stored) Time() (time.Time, error) {
	return s.TimeIn(time.UTC)
}

// TimeIn is Time with zoneless strings read as wall time in loc.
func (s Stored) TimeIn(loc *time.Location) (time.Time, error) {
	switch s.kind {
	case Instant:
		if s.instant.IsZero() {
			return time.Time{}, errs.NewMalformedTimestampError(s.raw)
		}
		return s.instant, nil
	case EpochSeconds:
		return time.Unix(s.seconds, s.nanos), nil
	case ISOString:
		if t, err := time.Parse(time.RFC3339Nano, s.text); err == nil {
			return t, nil
		}
		for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02"} {
			if t, err := time.ParseInLocation(layout, s.text, loc); err == nil {
				return t, nil
			}
		}
	}
	return time.Time{}, errs.NewMalformedTimestampError(s.raw)
}

// MarshalJSON renders the canonical instant, or null when it cannot be decoded.
func (s Stored) MarshalJSON() ([]byte, error) {
	t, err := s.Time()
	if err != nil {
		return []byte("null"), nil
	}
	return json.Marshal(t)
}

func firstPresent(m map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v, true
		}
	}
	return nil, false
}

func wholeNumber(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	}
	return 0, false
}
