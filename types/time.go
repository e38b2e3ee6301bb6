package types

import (
	"fmt"
	"time"
)

// The node renders timestamps as ISO-8601 with no zone suffix, always
// UTC. Full-resolution points carry milliseconds; expiration-style
// points carry whole seconds.
const (
	timePointFormat    = "2006-01-02T15:04:05.000"
	timePointSecFormat = "2006-01-02T15:04:05"
)

// TimePoint is a point in time with microsecond resolution, stored as
// microseconds since the Unix epoch. Block and account timestamps use
// this form.
type TimePoint int64

// TimeToPoint converts a time.Time to a TimePoint.
func TimeToPoint(t time.Time) TimePoint {
	return TimePoint(t.UnixMicro())
}

// Time converts a TimePoint to a time.Time (UTC).
func (tp TimePoint) Time() time.Time {
	return time.UnixMicro(int64(tp)).UTC()
}

func (tp TimePoint) String() string {
	return tp.Time().Format(timePointFormat)
}

func (tp TimePoint) MarshalJSON() ([]byte, error) {
	return []byte(`"` + tp.String() + `"`), nil
}

func (tp *TimePoint) UnmarshalJSON(data []byte) error {
	t, err := parseNodeTime(data)
	if err != nil {
		return err
	}
	*tp = TimeToPoint(t)
	return nil
}

// TimePointSec is a point in time with whole-second resolution, stored
// as seconds since the Unix epoch. Transaction expirations use this
// form.
type TimePointSec uint32

// TimeToPointSec converts a time.Time to a TimePointSec, truncating
// to whole seconds.
func TimeToPointSec(t time.Time) TimePointSec {
	return TimePointSec(t.Unix())
}

// Time converts a TimePointSec to a time.Time (UTC).
func (tp TimePointSec) Time() time.Time {
	return time.Unix(int64(tp), 0).UTC()
}

func (tp TimePointSec) String() string {
	return tp.Time().Format(timePointSecFormat)
}

func (tp TimePointSec) MarshalJSON() ([]byte, error) {
	return []byte(`"` + tp.String() + `"`), nil
}

func (tp *TimePointSec) UnmarshalJSON(data []byte) error {
	t, err := parseNodeTime(data)
	if err != nil {
		return err
	}
	*tp = TimeToPointSec(t)
	return nil
}

// parseNodeTime accepts the node's timestamp strings with or without
// a fractional part.
func parseNodeTime(data []byte) (time.Time, error) {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return time.Time{}, fmt.Errorf("timestamp must be a JSON string, got %s", data)
	}
	s := string(data[1 : len(data)-1])
	for _, layout := range []string{timePointFormat, timePointSecFormat} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
