package services

import (
	"errors"
	"math"
	"testing"
)

func TestLineStore_AddLine(t *testing.T) {
	store := NewLineStore()

	id1 := store.AddLine("M1")
	id2 := store.AddLine("M2")

	if id1 == id2 {
		t.Fatalf("expected unique line IDs, got %q twice", id1)
	}

	lines := store.Snapshot()
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].MaterialID != "M1" || lines[1].MaterialID != "M2" {
		t.Errorf("lines out of insertion order: %+v", lines)
	}
	if lines[0].Quantity != 0 {
		t.Errorf("new line quantity = %v, want 0", lines[0].Quantity)
	}
}

func TestLineStore_RemoveLineIdempotent(t *testing.T) {
	store := NewLineStore()
	id := store.AddLine("M1")
	store.AddLine("M2")

	store.RemoveLine(id)
	// Duplicate delete events must stay harmless.
	store.RemoveLine(id)

	if store.Len() != 1 {
		t.Fatalf("expected 1 line after removals, got %d", store.Len())
	}
	if _, ok := store.Line(id); ok {
		t.Errorf("removed line %q still present", id)
	}
}

func TestLineStore_SetQuantity(t *testing.T) {
	tests := []struct {
		name    string
		qty     float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"positive", 2.5, false},
		{"negative", -3, true},
		{"nan", math.NaN(), true},
		{"positive infinity", math.Inf(1), true},
		{"negative infinity", math.Inf(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewLineStore()
			id := store.AddLine("M1")

			err := store.SetQuantity(id, tt.qty)
			if tt.wantErr {
				var ve *ValidationError
				if !errors.As(err, &ve) {
					t.Fatalf("SetQuantity(%v) error = %v, want ValidationError", tt.qty, err)
				}
				if line, _ := store.Line(id); line.Quantity != 0 {
					t.Errorf("rejected quantity leaked into store: %v", line.Quantity)
				}
				return
			}
			if err != nil {
				t.Fatalf("SetQuantity(%v) unexpected error: %v", tt.qty, err)
			}
			if line, _ := store.Line(id); line.Quantity != tt.qty {
				t.Errorf("stored quantity = %v, want %v", line.Quantity, tt.qty)
			}
		})
	}
}

func TestLineStore_SetQuantityUnknownLine(t *testing.T) {
	store := NewLineStore()
	if err := store.SetQuantity("nope", 1); !errors.Is(err, ErrLineNotFound) {
		t.Errorf("error = %v, want ErrLineNotFound", err)
	}
}

func TestLineStore_SetQuantityPreservesOrder(t *testing.T) {
	store := NewLineStore()
	ids := []string{
		store.AddLine("M1"),
		store.AddLine("M2"),
		store.AddLine("M3"),
	}

	if err := store.SetQuantity(ids[1], 7); err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}

	lines := store.Snapshot()
	for i, id := range ids {
		if lines[i].LineID != id {
			t.Fatalf("line order changed after edit: %+v", lines)
		}
	}
	if lines[1].Quantity != 7 {
		t.Errorf("edited quantity = %v, want 7", lines[1].Quantity)
	}
}

func TestLineStore_SnapshotIsACopy(t *testing.T) {
	store := NewLineStore()
	id := store.AddLine("M1")

	snap := store.Snapshot()
	snap[0].Quantity = 999

	if line, _ := store.Line(id); line.Quantity != 0 {
		t.Errorf("mutating a snapshot changed the store: %v", line.Quantity)
	}
}

func TestHydrateLineStore(t *testing.T) {
	seed := []TechCardLine{
		{LineID: "rec_a", MaterialID: "M1", Quantity: 3},
		{LineID: "rec_b", MaterialID: "M2", Quantity: 1},
	}
	store := HydrateLineStore(seed)

	if store.Len() != 2 {
		t.Fatalf("expected 2 lines, got %d", store.Len())
	}

	// New lines must not collide with hydrated IDs.
	newID := store.AddLine("M3")
	if newID == "rec_a" || newID == "rec_b" {
		t.Errorf("generated ID collides with hydrated ID: %q", newID)
	}

	lines := store.Snapshot()
	if lines[0].LineID != "rec_a" || lines[1].LineID != "rec_b" || lines[2].LineID != newID {
		t.Errorf("hydrated order not preserved: %+v", lines)
	}
}

func TestLineStore_LineForMaterial(t *testing.T) {
	store := NewLineStore()
	first := store.AddLine("M1")
	store.AddLine("M2")

	line, ok := store.LineForMaterial("M1")
	if !ok || line.LineID != first {
		t.Errorf("LineForMaterial(M1) = %+v, %v; want line %q", line, ok, first)
	}
	if _, ok := store.LineForMaterial("M9"); ok {
		t.Error("LineForMaterial(M9) found a line, want none")
	}
}
