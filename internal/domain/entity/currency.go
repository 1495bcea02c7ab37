// Package entity defines the core business entities for the domain layer.
package entity

// Currency is immutable reference data seeded once from the ISO currency
// list. Not owner-scoped.
type Currency struct {
	Code   string // 3-letter ISO code, unique
	Name   string
	Symbol string
}
