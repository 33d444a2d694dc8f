// Package unify implements a Tarjan-style union-find unification solver:
// a parent map from a term's canonical Key() to another term,
// path-compressed on Find, with no rank/size heuristic on union — union
// is always unconditional here, never weighted by set size.
package unify

import "github.com/chopinballadeno4/static-program-analysis/internal/types"

// UnionFind is the disjoint-set structure over type terms.
type UnionFind struct {
	parent map[string]types.Type
	// orig holds the literal term first registered under each key,
	// untouched by union/path-compression, so Terms() can print "term ->
	// representative" lines using the original (not yet unioned) shape.
	orig map[string]types.Type
}

// New returns an empty union-find store.
func New() *UnionFind {
	return &UnionFind{parent: make(map[string]types.Type), orig: make(map[string]types.Type)}
}

// MakeSet installs parent(t) := t if t is not already present, then
// recurses into t's sub-terms so every nested term is also tracked.
func (u *UnionFind) MakeSet(t types.Type) {
	if t == nil {
		return
	}
	k := t.Key()
	if _, ok := u.parent[k]; ok {
		return
	}
	u.parent[k] = t
	u.orig[k] = t
	for _, sub := range subterms(t) {
		u.MakeSet(sub)
	}
}

// subterms enumerates the direct sub-terms of t that makeSet must reach:
// PointerType.Base, FunctionType.Params ∪ {Result}, RecursiveType.Body,
// and non-absence, non-variable RecordType field values.
func subterms(t types.Type) []types.Type {
	switch v := t.(type) {
	case types.PointerType:
		return []types.Type{v.Base}
	case types.FunctionType:
		subs := make([]types.Type, 0, len(v.Params)+1)
		subs = append(subs, v.Params...)
		subs = append(subs, v.Result)
		return subs
	case types.RecursiveType:
		return []types.Type{v.Body}
	case types.RecordType:
		var subs []types.Type
		for _, name := range v.Order {
			f := v.Fields[name]
			if _, isAbsence := f.(types.AbsenceType); isAbsence {
				continue
			}
			if types.IsVariable(f) {
				continue
			}
			subs = append(subs, f)
		}
		return subs
	default:
		return nil
	}
}

// Find returns the canonical representative of t, path-compressing along
// the way. A term never passed to MakeSet is treated as already canonical.
func (u *UnionFind) Find(t types.Type) types.Type {
	k := t.Key()
	p, ok := u.parent[k]
	if !ok {
		return t
	}
	if p.Key() == k {
		return p
	}
	root := u.Find(p)
	u.parent[k] = root
	return root
}

// union sets parent(find(a)) := find(b) unconditionally: no rank/size
// heuristic decides the direction.
func (u *UnionFind) union(a, b types.Type) {
	ra, rb := u.Find(a), u.Find(b)
	if ra.Key() == rb.Key() {
		return
	}
	u.parent[ra.Key()] = rb
}

// Representatives returns every key currently tracked, for printing the
// solved type relation.
func (u *UnionFind) Representatives() map[string]types.Type {
	out := make(map[string]types.Type, len(u.parent))
	for k, t := range u.parent {
		out[k] = u.Find(t)
	}
	return out
}

// Terms returns the original (pre-Find) term registered for each key, for
// pretty-printing "term -> representative" lines.
func (u *UnionFind) Terms() map[string]types.Type {
	seen := make(map[string]types.Type, len(u.orig))
	for k, t := range u.orig {
		seen[k] = t
	}
	return seen
}
