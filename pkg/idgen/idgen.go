// Package idgen issues unique, monotonically increasing identifiers per
// entity type, formatted as a short prefix plus a zero-padded sequence
// number (P001, MR001, RX001, ...).
package idgen

import (
	"fmt"
	"sync"
)

// Entity type prefixes
const (
	PrefixPatient       = "P"
	PrefixAppointment   = "A"
	PrefixMedicalRecord = "MR"
	PrefixPrescription  = "RX"
	PrefixStaff         = "S"
	PrefixDepartment    = "D"
	PrefixBill          = "B"
	PrefixInventory     = "INV"
)

// Generator hands out sequential IDs per prefix. Safe for concurrent use.
type Generator struct {
	mu       sync.Mutex
	counters map[string]uint64
}

func New() *Generator {
	return &Generator{counters: make(map[string]uint64)}
}

// Next returns the next ID for the given prefix.
func (g *Generator) Next(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counters[prefix]++
	return fmt.Sprintf("%s%03d", prefix, g.counters[prefix])
}

// Seed advances the counter for prefix to at least n. Used when loading an
// existing dataset so newly issued IDs never collide with stored ones.
func (g *Generator) Seed(prefix string, n uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.counters[prefix] < n {
		g.counters[prefix] = n
	}
}
