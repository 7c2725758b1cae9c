package domain

import (
	"fmt"
	"strings"
)

// Warehouse labels a fulfillment location that can ship an order item.
type Warehouse string

const (
	// WarehouseEmmaus is the in-house warehouse, used when reserved stock covers the item.
	WarehouseEmmaus Warehouse = "Emmaus"
	// WarehouseAMC is the AMC dropship program.
	WarehouseAMC Warehouse = "AMC"
	// WarehouseAMCGeneric is the generic AMC dropship program.
	WarehouseAMCGeneric Warehouse = "AMC-Generic"
	// WarehouseImpact is the Impact dropship program.
	WarehouseImpact Warehouse = "Impact"
	// WarehouseTrevco is the Trevco dropship program.
	WarehouseTrevco Warehouse = "Trevco"
	// WarehouseManual marks items no rule could place; they are queued for human review.
	WarehouseManual Warehouse = "Manual"
)

// Assignment carries the ShipStation tag ids and warehouse id applied to an
// order routed to a given warehouse.
type Assignment struct {
	TagIDs      []int64
	WarehouseID int64
}

// PrefixRule maps a SKU prefix onto a dropship warehouse.
type PrefixRule struct {
	Prefix    string
	Warehouse Warehouse
}

// AssignmentTable is the declarative routing table: warehouse label to the tag
// ids and ShipStation warehouse id stamped onto outgoing payloads, plus the
// ordered SKU-prefix rules used when in-house stock cannot cover an item.
type AssignmentTable struct {
	assignments map[Warehouse]Assignment
	prefixRules []PrefixRule
}

// DefaultAssignmentTable returns the production routing table. Rule order
// matters: prefixes are evaluated top to bottom, first match wins.
func DefaultAssignmentTable() AssignmentTable {
	return AssignmentTable{
		assignments: map[Warehouse]Assignment{
			WarehouseEmmaus:     {TagIDs: []int64{34317}, WarehouseID: 310205},
			WarehouseAMC:        {TagIDs: []int64{34550}, WarehouseID: 310206},
			WarehouseAMCGeneric: {TagIDs: []int64{34316}, WarehouseID: 310207},
			WarehouseImpact:     {TagIDs: []int64{34318}, WarehouseID: 310208},
			WarehouseTrevco:     {TagIDs: []int64{34546}, WarehouseID: 310209},
			// Manual-review orders stay at the in-house warehouse until triaged.
			WarehouseManual: {TagIDs: []int64{34560}, WarehouseID: 310205},
		},
		prefixRules: []PrefixRule{
			{Prefix: "DRA", Warehouse: WarehouseAMC},
			{Prefix: "DR2", Warehouse: WarehouseAMCGeneric},
			{Prefix: "DRI", Warehouse: WarehouseImpact},
			{Prefix: "DRT", Warehouse: WarehouseTrevco},
		},
	}
}

// Validate checks the table is complete enough to route any classifiable item.
// Run at startup so a misconfigured table fails the process, not an order.
func (t AssignmentTable) Validate() error {
	required := []Warehouse{
		WarehouseEmmaus,
		WarehouseAMC,
		WarehouseAMCGeneric,
		WarehouseImpact,
		WarehouseTrevco,
		WarehouseManual,
	}
	for _, label := range required {
		assignment, ok := t.assignments[label]
		if !ok {
			return fmt.Errorf("assignment table missing warehouse %q", label)
		}
		if len(assignment.TagIDs) == 0 {
			return fmt.Errorf("assignment table warehouse %q has no tag ids", label)
		}
		if assignment.WarehouseID <= 0 {
			return fmt.Errorf("assignment table warehouse %q has invalid warehouse id %d", label, assignment.WarehouseID)
		}
	}
	for _, rule := range t.prefixRules {
		if strings.TrimSpace(rule.Prefix) == "" {
			return fmt.Errorf("prefix rule for warehouse %q has empty prefix", rule.Warehouse)
		}
		if _, ok := t.assignments[rule.Warehouse]; !ok {
			return fmt.Errorf("prefix rule %q targets unknown warehouse %q", rule.Prefix, rule.Warehouse)
		}
	}
	return nil
}

// Lookup returns the assignment for a warehouse label.
func (t AssignmentTable) Lookup(label Warehouse) (Assignment, bool) {
	assignment, ok := t.assignments[label]
	return assignment, ok
}

// MatchPrefix resolves a SKU through the ordered prefix rules. The second
// return is false when no rule matches and the item needs manual review.
func (t AssignmentTable) MatchPrefix(sku string) (Warehouse, bool) {
	for _, rule := range t.prefixRules {
		if strings.HasPrefix(sku, rule.Prefix) {
			return rule.Warehouse, true
		}
	}
	return WarehouseManual, false
}
