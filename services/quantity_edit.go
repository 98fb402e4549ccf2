package services

import (
	"strconv"
	"strings"
)

// QuantityEditor buffers free-text quantity entry per line and commits
// it to the line store only when the edit finishes. While a line is in
// the Editing state the store is untouched, so cost aggregation never
// sees a partially-typed value.
//
// Each line edits independently; there is no cross-line state.
type QuantityEditor struct {
	store  *LineStore
	drafts map[string]string
}

// NewQuantityEditor wraps a line store.
func NewQuantityEditor(store *LineStore) *QuantityEditor {
	return &QuantityEditor{
		store:  store,
		drafts: make(map[string]string),
	}
}

// Input records the current raw text for a line, moving it to the
// Editing state. Called on every keystroke; the store is not mutated.
func (q *QuantityEditor) Input(lineID, raw string) {
	q.drafts[lineID] = raw
}

// Draft returns the buffered text for a line and whether the line is in
// the Editing state.
func (q *QuantityEditor) Draft(lineID string) (string, bool) {
	raw, ok := q.drafts[lineID]
	return raw, ok
}

// Commit parses the buffered text, writes the result to the store and
// returns the line to the Clean state. Input that does not parse, or
// parses negative, commits as 0 rather than failing the edit, so the
// operator sees the coerced value instead of a rejected form. A line
// with no buffered edit commits its stored quantity unchanged.
func (q *QuantityEditor) Commit(lineID string) (float64, error) {
	raw, ok := q.drafts[lineID]
	if !ok {
		line, found := q.store.Line(lineID)
		if !found {
			return 0, ErrLineNotFound
		}
		return line.Quantity, nil
	}

	qty := ParseQuantity(raw)
	if err := q.store.SetQuantity(lineID, qty); err != nil {
		return 0, err
	}
	delete(q.drafts, lineID)
	return qty, nil
}

// Discard drops the buffered text of a line without touching the
// store. Called when the line is removed mid-edit.
func (q *QuantityEditor) Discard(lineID string) {
	delete(q.drafts, lineID)
}

// ParseQuantity interprets free-text numeric entry. Comma and period
// both act as the decimal separator, any other characters are
// stripped, and only the first separator counts. Unparseable or
// negative input coerces to 0.
func ParseQuantity(raw string) float64 {
	var b strings.Builder
	sawSeparator := false
	for i, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' && i == 0:
			b.WriteRune(r)
		case (r == ',' || r == '.') && !sawSeparator:
			b.WriteByte('.')
			sawSeparator = true
		}
	}

	qty, err := strconv.ParseFloat(b.String(), 64)
	if err != nil || qty < 0 {
		return 0
	}
	return qty
}
