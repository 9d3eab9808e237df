package models

import "time"

// ShoeType is the fixed set of shoe categories. Lookups by type match
// these names exactly, case-sensitive.
type ShoeType string

const (
	ShoeTypeMan      ShoeType = "Man"
	ShoeTypeWoman    ShoeType = "Woman"
	ShoeTypeChildren ShoeType = "Children"
)

// ValidShoeType reports whether s names one of the ShoeType variants.
func ValidShoeType(s string) bool {
	switch ShoeType(s) {
	case ShoeTypeMan, ShoeTypeWoman, ShoeTypeChildren:
		return true
	}
	return false
}

// Shoe is a stored shoe record. Code is the unique SKU-like primary key
// and never changes after creation. Image holds the raw decoded bytes.
type Shoe struct {
	Code      string
	Loc       *int64
	Name      *string
	Type      *string
	Image     []byte
	CreatedAt time.Time
}
