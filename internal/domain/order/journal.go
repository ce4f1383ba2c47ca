package order

import (
	"encoding/json"
	"time"
)

// historyKey is where the audit journal lives inside the extension bag
const historyKey = "history"

// Record is one entry of the order's audit journal. Records are immutable
// once appended and are persisted in chronological (append-only) order;
// display order is reverse-chronological.
type Record struct {
	Step      string         `json:"step"`
	StepLabel string         `json:"stepLabel"`
	Timestamp time.Time      `json:"timestamp"`
	Notes     string         `json:"notes,omitempty"`
	Status    Status         `json:"status,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
}

// History decodes the audit journal from the extension bag, oldest first.
// Entries that arrived through a JSON round-trip (generic maps) and entries
// appended locally are both accepted; malformed entries are skipped.
func (o *Order) History() []Record {
	raw := o.Extension.GetSlice(historyKey)
	if len(raw) == 0 {
		return nil
	}
	records := make([]Record, 0, len(raw))
	for _, entry := range raw {
		b, err := json.Marshal(entry)
		if err != nil {
			continue
		}
		var rec Record
		if err := json.Unmarshal(b, &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records
}

// AppendHistory appends one record to the journal. The existing sequence is
// never mutated or reordered; the bag is cloned so prior snapshots of the
// order remain untouched.
func (o *Order) AppendHistory(rec Record) {
	ext := o.Extension.Clone()
	if ext == nil {
		ext = make(map[string]any)
	}

	existing := ext.GetSlice(historyKey)
	history := make([]any, 0, len(existing)+1)
	history = append(history, existing...)
	history = append(history, toGeneric(rec))

	ext[historyKey] = history
	o.Extension = ext
}

// toGeneric converts a record to the map form used in the persisted bag, so
// locally appended records and server-decoded ones share one representation.
func toGeneric(rec Record) any {
	b, err := json.Marshal(rec)
	if err != nil {
		return rec
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return rec
	}
	return m
}
