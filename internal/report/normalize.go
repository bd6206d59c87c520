package report

import (
	"encoding/json"
	"time"
)

// Date layouts accepted by NormalizeDate, tried in order.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// NormalizeDate canonicalizes the loose date representations that reach the
// report layer into a concrete time. Absent, zero or unparseable input falls
// back to now; normalization never fails.
func NormalizeDate(v any, now time.Time) time.Time {
	switch d := v.(type) {
	case nil:
		return now
	case time.Time:
		if d.IsZero() {
			return now
		}

		return d
	case *time.Time:
		if d == nil || d.IsZero() {
			return now
		}

		return *d
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, d); err == nil {
				return t
			}
		}

		return now
	case int64:
		return time.Unix(d, 0).UTC()
	case float64:
		return time.Unix(int64(d), 0).UTC()
	case json.Number:
		if sec, err := d.Int64(); err == nil {
			return time.Unix(sec, 0).UTC()
		}

		return now
	default:
		return now
	}
}
