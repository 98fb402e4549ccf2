package services

import (
	"fmt"
	"math"
)

// TechCardLine is one bill-of-materials row of a product's tech card.
// MaterialID may reference a material that has since been deleted; such
// lines stay on the card and degrade to zero cost.
type TechCardLine struct {
	LineID     string
	MaterialID string
	Quantity   float64
}

// ValidationError rejects a mutation before it reaches the store.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ErrLineNotFound is returned by SetQuantity for an unknown line ID.
var ErrLineNotFound = fmt.Errorf("tech card line not found")

// LineStore owns the ordered line collection of one tech card. It is
// the single writer path for line mutations; everything else consumes
// read-only snapshots. Line order is insertion order and no operation
// reorders it.
type LineStore struct {
	lines  []TechCardLine
	nextID int
}

// NewLineStore returns an empty store.
func NewLineStore() *LineStore {
	return &LineStore{}
}

// HydrateLineStore builds a store from already-persisted lines, e.g.
// database records, keeping their IDs and order.
func HydrateLineStore(lines []TechCardLine) *LineStore {
	s := &LineStore{lines: make([]TechCardLine, len(lines))}
	copy(s.lines, lines)
	return s
}

// AddLine appends a new line with quantity 0 for the given material and
// returns its freshly generated line ID.
func (s *LineStore) AddLine(materialID string) string {
	id := s.generateID()
	s.lines = append(s.lines, TechCardLine{
		LineID:     id,
		MaterialID: materialID,
	})
	return id
}

// RemoveLine removes the line if present. Removing an already-removed
// line is a no-op so duplicate delete events stay harmless.
func (s *LineStore) RemoveLine(lineID string) {
	for i, line := range s.lines {
		if line.LineID == lineID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return
		}
	}
}

// SetQuantity replaces the quantity of a line in place. Negative or
// non-finite values are rejected with a ValidationError and the store
// is left untouched.
func (s *LineStore) SetQuantity(lineID string, quantity float64) error {
	if quantity < 0 {
		return &ValidationError{Field: "quantity", Message: "must not be negative"}
	}
	if math.IsNaN(quantity) || math.IsInf(quantity, 0) {
		return &ValidationError{Field: "quantity", Message: "must be a finite number"}
	}
	for i := range s.lines {
		if s.lines[i].LineID == lineID {
			s.lines[i].Quantity = quantity
			return nil
		}
	}
	return ErrLineNotFound
}

// Line returns the line with the given ID.
func (s *LineStore) Line(lineID string) (TechCardLine, bool) {
	for _, line := range s.lines {
		if line.LineID == lineID {
			return line, true
		}
	}
	return TechCardLine{}, false
}

// LineForMaterial returns the first line referencing the material.
func (s *LineStore) LineForMaterial(materialID string) (TechCardLine, bool) {
	for _, line := range s.lines {
		if line.MaterialID == materialID {
			return line, true
		}
	}
	return TechCardLine{}, false
}

// Snapshot returns a copy of the lines in insertion order for read-only
// consumption, e.g. by SummarizeTechCard.
func (s *LineStore) Snapshot() []TechCardLine {
	out := make([]TechCardLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Len returns the number of lines.
func (s *LineStore) Len() int {
	return len(s.lines)
}

// generateID produces a line ID unique within this store. Hydrated
// record IDs never collide with the "L" prefix followed by a counter
// because record IDs are 15-char alphanumerics, but the existence check
// keeps the invariant independent of that detail.
func (s *LineStore) generateID() string {
	for {
		s.nextID++
		id := fmt.Sprintf("L%d", s.nextID)
		if _, exists := s.Line(id); !exists {
			return id
		}
	}
}
