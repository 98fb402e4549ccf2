package services

// UnitOptions returns the list of measurement units selectable for a
// material. Units are display-only; all costing happens per unit price.
var UnitOptions = []string{
	"pcs",
	"m",
	"m2",
	"m3",
	"sheet",
	"kg",
	"l",
	"set",
	"pair",
	"roll",
}

// DefaultUnit is applied when a material is created without a unit.
const DefaultUnit = "pcs"

// ValidUnit reports whether the unit is one of the selectable options.
func ValidUnit(unit string) bool {
	for _, u := range UnitOptions {
		if u == unit {
			return true
		}
	}
	return false
}
