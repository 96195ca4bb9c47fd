package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Timestamp 接受 RFC 3339 字串、YYYY-MM-DD 日期或毫秒時間戳
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] != '"' {
		var ms json.Number
		if err := json.Unmarshal(data, &ms); err != nil {
			return fmt.Errorf("invalid timestamp: %s", data)
		}
		n, err := ms.Int64()
		if err != nil {
			return fmt.Errorf("invalid timestamp: %s", data)
		}
		t.Time = time.UnixMilli(n).UTC()
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp: %q", s)
}

// Ptr 回傳時間指標，未提供時回傳 nil
func (t *Timestamp) Ptr() *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	ts := t.Time
	return &ts
}
