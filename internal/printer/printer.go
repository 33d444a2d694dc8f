// Package printer renders the two analyzer outputs — the solved type
// relation and the per-CFG-node sign stores — as human-readable text,
// following the buffered, line-oriented style of a source-code pretty
// printer rather than a structured encoder: callers read plain lines, not
// a serialized tree.
package printer

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/chopinballadeno4/static-program-analysis/internal/cfg"
	"github.com/chopinballadeno4/static-program-analysis/internal/fixpoint"
	"github.com/chopinballadeno4/static-program-analysis/internal/sign"
	"github.com/chopinballadeno4/static-program-analysis/internal/types"
	"github.com/chopinballadeno4/static-program-analysis/internal/unify"
)

// Printer accumulates rendered analyzer output into an internal buffer.
type Printer struct {
	buf bytes.Buffer
}

// New returns an empty Printer.
func New() *Printer { return &Printer{} }

// String returns everything written so far.
func (p *Printer) String() string { return p.buf.String() }

// TypeRelation writes one "term -> representative" line per tracked type
// term, sorted by the term's own rendering for determinism. Absence and
// fresh-variable terms are skipped: they are solver bookkeeping, not
// something a caller asked the type of.
func (p *Printer) TypeRelation(uf *unify.UnionFind) {
	terms := uf.Terms()
	lines := make([]string, 0, len(terms))
	for _, t := range terms {
		switch t.(type) {
		case types.AbsenceType, types.FreshVar:
			continue
		}
		rep := Fold(uf.Find(t), uf)
		lines = append(lines, fmt.Sprintf("%s -> %s", t.String(), rep.String()))
	}
	sort.Strings(lines)
	for _, l := range lines {
		fmt.Fprintln(&p.buf, l)
	}
}

// SignStores writes the solved abstract store at every reachable CFG
// node, one line per node, in node-ID order. Each store's variables are
// listed alphabetically inside braces.
func (p *Printer) SignStores(g *cfg.Graph, result *fixpoint.Result) {
	for _, n := range g.Nodes {
		fmt.Fprintf(&p.buf, "node%d: %s\n", n.ID, renderStore(result.At(n.ID)))
	}
}

func renderStore(store sign.MapLattice) string {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range store.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, "%s:%s", k, store.Get(k))
	}
	buf.WriteByte('}')
	return buf.String()
}

// maxFoldDepth bounds Fold's descent into a term's own sub-terms. A type
// term only grows this deep through a genuine recursive type (a pointer
// or record built from itself through the union-find); beyond the bound,
// the remaining structure collapses to an ellipsis rather than recursing
// forever.
const maxFoldDepth = 32

// Fold walks a solved representative, replacing every variable sub-term
// with its own representative, so the printed type reads as a closed term
// instead of a web of type-variable cross-references.
func Fold(t types.Type, uf *unify.UnionFind) types.Type {
	return foldDepth(t, uf, 0)
}

func foldDepth(t types.Type, uf *unify.UnionFind, depth int) types.Type {
	rep := uf.Find(t)
	if depth >= maxFoldDepth {
		return types.RecursiveType{Alpha: "...", Body: rep}
	}
	switch v := rep.(type) {
	case types.PointerType:
		return types.PointerType{Base: foldDepth(v.Base, uf, depth+1)}
	case types.FunctionType:
		params := make([]types.Type, len(v.Params))
		for i, p := range v.Params {
			params[i] = foldDepth(p, uf, depth+1)
		}
		return types.FunctionType{Params: params, Result: foldDepth(v.Result, uf, depth+1)}
	case types.RecordType:
		fields := make(map[string]types.Type, len(v.Fields))
		for name, f := range v.Fields {
			fields[name] = foldDepth(f, uf, depth+1)
		}
		return types.NewRecordType(v.Order, fields)
	default:
		return rep
	}
}
