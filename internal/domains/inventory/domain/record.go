package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMissingSKU        = errors.New("inventory record is missing a SKU")
	ErrNegativeAvailable = errors.New("inventory available quantity must not be negative")
)

// Record is the one persisted entity in the system: how many units of a SKU
// the in-house warehouse can still ship. The JSON field names match the
// backing file format consumed by the classifier.
type Record struct {
	SKU       string `json:"SKU"`
	Name      string `json:"Name,omitempty"`
	Available int    `json:"Available"`
	Location  string `json:"Location,omitempty"`
}

// Validate enforces the record invariants.
func (r Record) Validate() error {
	if r.SKU == "" {
		return ErrMissingSKU
	}
	if r.Available < 0 {
		return fmt.Errorf("sku %s: %w", r.SKU, ErrNegativeAvailable)
	}
	return nil
}

// CanCover reports whether the record has enough stock for a quantity.
func (r Record) CanCover(quantity int) bool {
	return quantity > 0 && r.Available >= quantity
}
