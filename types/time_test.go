package types_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/blockberries/capi/types"
)

func TestTimePointJSON(t *testing.T) {
	tp := types.TimeToPoint(time.Date(2025, 6, 1, 12, 30, 45, 250_000_000, time.UTC))
	data, err := json.Marshal(tp)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"2025-06-01T12:30:45.250"` {
		t.Errorf("marshaled to %s", data)
	}
	var out types.TimePoint
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out != tp {
		t.Errorf("round trip gave %v, want %v", out, tp)
	}
}

func TestTimePointAcceptsSecondsForm(t *testing.T) {
	var tp types.TimePoint
	if err := json.Unmarshal([]byte(`"2025-06-01T12:30:45"`), &tp); err != nil {
		t.Fatal(err)
	}
	want := time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC)
	if !tp.Time().Equal(want) {
		t.Errorf("parsed %v", tp.Time())
	}
}

func TestTimePointSecJSON(t *testing.T) {
	tp := types.TimeToPointSec(time.Date(2025, 6, 1, 12, 30, 45, 999_000_000, time.UTC))
	if got := tp.Time(); got.Nanosecond() != 0 {
		t.Errorf("sub-second survived truncation: %v", got)
	}
	data, err := json.Marshal(tp)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"2025-06-01T12:30:45"` {
		t.Errorf("marshaled to %s", data)
	}
	var out types.TimePointSec
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out != tp {
		t.Errorf("round trip gave %v", out)
	}
}

func TestTimeRejectsMalformed(t *testing.T) {
	var tp types.TimePoint
	for _, bad := range []string{`"2025-06-01 12:30:45"`, `"not a time"`, `12345`} {
		if err := json.Unmarshal([]byte(bad), &tp); err == nil {
			t.Errorf("accepted %s", bad)
		}
	}
}
