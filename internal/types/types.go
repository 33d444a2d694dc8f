// Package types implements the TIP type-term grammar
// τ ::= int | ↑τ | (τ,…,τ) → τ | {ℓ:τ,…} | absence | α
// (with an equi-recursive μ-binder as a solver output): a Type interface
// with one struct per constructor.
//
// Key() is defined on every variant so the union-find solver in
// internal/unify can key its parent map by full structural identity
// rather than by variable name alone — makeSet installs an entry for
// every term, proper types included.
package types

import (
	"fmt"
	"sort"
	"strings"
)

// Type is the interface implemented by every type term.
type Type interface {
	String() string
	// Key returns a canonical structural identity string: two structurally
	// equal terms produce the same Key.
	Key() string
}

// IntType is the type of integers.
type IntType struct{}

func (IntType) String() string { return "int" }
func (IntType) Key() string    { return "int" }

// PointerType is ↑τ: a pointer to cells of type Base.
type PointerType struct {
	Base Type
}

func (t PointerType) String() string { return "&" + t.Base.String() }
func (t PointerType) Key() string    { return "ptr(" + t.Base.Key() + ")" }

// FunctionType is (τ1,…,τn) → τ.
type FunctionType struct {
	Params []Type
	Result Type
}

func (t FunctionType) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.String()
	}
	return "(" + strings.Join(parts, ", ") + ") -> " + t.Result.String()
}
func (t FunctionType) Key() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.Key()
	}
	return "fun(" + strings.Join(parts, ",") + ";" + t.Result.Key() + ")"
}

// RecordType is {ℓ1:τ1,…,ℓn:τn}: an ordered map field -> Type. Order is
// preserved for display; Key() sorts fields so that structural equality
// respects the unordered field set.
type RecordType struct {
	Order  []string
	Fields map[string]Type
}

// NewRecordType builds a RecordType preserving the given field order.
func NewRecordType(order []string, fields map[string]Type) RecordType {
	return RecordType{Order: order, Fields: fields}
}

func (t RecordType) String() string {
	parts := make([]string, 0, len(t.Order))
	for _, name := range t.Order {
		parts = append(parts, name+":"+t.Fields[name].String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (t RecordType) Key() string {
	keys := make([]string, 0, len(t.Fields))
	for k := range t.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+":"+t.Fields[k].Key())
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// AbsenceType marks that a field is not present in a record row (the
// padding value used when a row is completed against the global field
// set).
type AbsenceType struct{}

func (AbsenceType) String() string { return "absence" }
func (AbsenceType) Key() string    { return "absence" }

// ExprTypeVar is "the type of expression e", keyed by e's structural Key()
// so that two occurrences of an identical sub-expression share a type
// variable. Label is kept only for display.
type ExprTypeVar struct {
	ExprKey string
	Label   string
}

func (t ExprTypeVar) String() string {
	if t.Label != "" {
		return "[" + t.Label + "]"
	}
	return "[" + t.ExprKey + "]"
}
func (t ExprTypeVar) Key() string { return "expr(" + t.ExprKey + ")" }

// FreshVar is an α introduced by the solver for unconstrained positions,
// e.g. record-row padding of a field access.
type FreshVar struct {
	ID int
}

func (t FreshVar) String() string { return fmt.Sprintf("a%d", t.ID) }
func (t FreshVar) Key() string    { return fmt.Sprintf("fresh(%d)", t.ID) }

// RecursiveType is μα.τ: an output-only printer artifact naming a cycle
// in the solved parent map. It never appears as solver input.
type RecursiveType struct {
	Alpha string
	Body  Type
}

func (t RecursiveType) String() string { return "mu " + t.Alpha + "." + t.Body.String() }
func (t RecursiveType) Key() string    { return "mu(" + t.Alpha + ";" + t.Body.Key() + ")" }

// IsVariable reports whether t is a "type variable": anything that is not
// one of Int/Pointer/Function/Record. ExprTypeVar, FreshVar, and
// AbsenceType all count as variables for unify's var/proper dispatch —
// Absence unifies with a present record field only through the
// record-field rule, never through the generic var/proper binding rule,
// so callers must check for Absence before relying on IsVariable in that
// context.
func IsVariable(t Type) bool {
	switch t.(type) {
	case IntType, PointerType, FunctionType, RecordType:
		return false
	default:
		return true
	}
}

// Generator mints fresh type variables with unique, deterministic IDs.
type Generator struct {
	counter int
}

func (g *Generator) Fresh() FreshVar {
	g.counter++
	return FreshVar{ID: g.counter}
}

// Reset zeroes the counter, so the next Fresh returns ID 1 again.
func (g *Generator) Reset() { g.counter = 0 }
