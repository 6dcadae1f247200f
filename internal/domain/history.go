package domain

import "time"

// MaxHistoryItems bounds every history log.
const MaxHistoryItems = 10

// SelectionRecord captures one generated texture prompt. Records are never
// mutated after creation.
type SelectionRecord struct {
	ID string `json:"id"`
	Parameters
	PromptText string   `json:"promptText"`
	Timestamp  int64    `json:"timestamp"`
	Title      string   `json:"title,omitempty"`
	Keywords   []string `json:"keywords,omitempty"`
}

// Time converts the millisecond timestamp.
func (r SelectionRecord) Time() time.Time {
	return time.UnixMilli(r.Timestamp)
}

// HasMetadata reports whether the record was enriched.
func (r SelectionRecord) HasMetadata() bool {
	return r.Title != "" || len(r.Keywords) > 0
}

// CustomRecord captures a free-text prompt with its generated metadata.
type CustomRecord struct {
	ID         string   `json:"id"`
	PromptText string   `json:"promptText"`
	Timestamp  int64    `json:"timestamp"`
	Title      string   `json:"title"`
	Keywords   []string `json:"keywords"`
}

// Time converts the millisecond timestamp.
func (r CustomRecord) Time() time.Time {
	return time.UnixMilli(r.Timestamp)
}

// HistoryLog is a newest-first list of selections bounded by MaxHistoryItems.
type HistoryLog []SelectionRecord

// Prepend returns a new log with rec at the front, dropping the oldest
// entries beyond MaxHistoryItems. The receiver is left untouched.
func (h HistoryLog) Prepend(rec SelectionRecord) HistoryLog {
	return prependBounded(h, rec)
}

// Values lists the value stored for key in each record, newest first.
func (h HistoryLog) Values(key ParameterKey) []string {
	out := make([]string, 0, len(h))
	for _, rec := range h {
		out = append(out, rec.Get(key))
	}
	return out
}

// CustomLog is the newest-first custom prompt history.
type CustomLog []CustomRecord

// Prepend returns a new log with rec at the front.
func (h CustomLog) Prepend(rec CustomRecord) CustomLog {
	return prependBounded(h, rec)
}

func prependBounded[S ~[]E, E any](log S, rec E) S {
	n := len(log) + 1
	if n > MaxHistoryItems {
		n = MaxHistoryItems
	}
	out := make(S, 0, n)
	out = append(out, rec)
	out = append(out, log[:n-1]...)
	return out
}
