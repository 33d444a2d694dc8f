// Package sign implements the five-point sign lattice
// {⊥, 0, −, +, ⊤} ordered ⊥ < {0,−,+} < ⊤, its join, the ADD/SUB/MUL/DIV
// operator tables, and abstract evaluation of TIP expressions over it.
package sign

// Sign is one of the five lattice elements. Bottom is the zero value so a
// freshly allocated MapLattice entry defaults to ⊥, matching the solver's
// "x := ⊥" initialization of every node.
type Sign int

const (
	Bottom Sign = iota
	Zero
	Neg
	Pos
	Top
)

func (s Sign) String() string {
	switch s {
	case Bottom:
		return "bottom"
	case Zero:
		return "0"
	case Neg:
		return "-"
	case Pos:
		return "+"
	case Top:
		return "top"
	}
	return "?"
}

// Join computes the least upper bound of a and b in the five-point
// lattice: ⊥ is the identity, any two distinct non-bottom signs join to
// ⊤ (0, −, + are pairwise incomparable), and ⊤ absorbs everything.
func Join(a, b Sign) Sign {
	if a == b {
		return a
	}
	if a == Bottom {
		return b
	}
	if b == Bottom {
		return a
	}
	return Top
}

// LessOrEqual reports whether a ⊑ b in the lattice order, used to check
// that the transfer functions are monotone.
func LessOrEqual(a, b Sign) bool {
	return Join(a, b) == b
}

// table is a 5x5 operator table indexed [a][b] in lattice order
// [⊥, 0, −, +, ⊤].
type table [5][5]Sign

var addTable = table{
	{Bottom, Bottom, Bottom, Bottom, Bottom},
	{Bottom, Zero, Neg, Pos, Top},
	{Bottom, Neg, Neg, Top, Top},
	{Bottom, Pos, Top, Pos, Top},
	{Bottom, Top, Top, Top, Top},
}

var subTable = table{
	{Bottom, Bottom, Bottom, Bottom, Bottom},
	{Bottom, Zero, Pos, Neg, Top},
	{Bottom, Neg, Top, Neg, Top},
	{Bottom, Pos, Pos, Top, Top},
	{Bottom, Top, Top, Top, Top},
}

var mulTable = table{
	{Bottom, Bottom, Bottom, Bottom, Bottom},
	{Bottom, Zero, Zero, Zero, Zero},
	{Bottom, Zero, Pos, Neg, Top},
	{Bottom, Zero, Neg, Pos, Top},
	{Bottom, Zero, Top, Top, Top},
}

var divTable = table{
	{Bottom, Bottom, Bottom, Bottom, Bottom},
	{Bottom, Bottom, Zero, Zero, Top},
	{Bottom, Bottom, Top, Top, Top},
	{Bottom, Bottom, Top, Top, Top},
	{Bottom, Bottom, Top, Top, Top},
}

// eqTable and gtTable follow the same convention as the arithmetic
// tables: booleans are encoded as int with false=0, true=+, ⊥ and ⊤
// absorbing. See DESIGN.md for the reasoning behind this choice.
var eqTable = table{
	{Bottom, Bottom, Bottom, Bottom, Bottom},
	{Bottom, Pos, Zero, Zero, Top},
	{Bottom, Zero, Top, Zero, Top},
	{Bottom, Zero, Zero, Top, Top},
	{Bottom, Top, Top, Top, Top},
}

var gtTable = table{
	{Bottom, Bottom, Bottom, Bottom, Bottom},
	{Bottom, Zero, Pos, Zero, Top},
	{Bottom, Zero, Top, Zero, Top},
	{Bottom, Pos, Pos, Top, Top},
	{Bottom, Top, Top, Top, Top},
}

func idx(s Sign) int { return int(s) }

func Add(a, b Sign) Sign { return addTable[idx(a)][idx(b)] }
func Sub(a, b Sign) Sign { return subTable[idx(a)][idx(b)] }
func Mul(a, b Sign) Sign { return mulTable[idx(a)][idx(b)] }
func Div(a, b Sign) Sign { return divTable[idx(a)][idx(b)] }
func Eq(a, b Sign) Sign  { return eqTable[idx(a)][idx(b)] }
func Gt(a, b Sign) Sign  { return gtTable[idx(a)][idx(b)] }

// OfInt classifies an integer literal's sign.
func OfInt(n int64) Sign {
	switch {
	case n > 0:
		return Pos
	case n < 0:
		return Neg
	default:
		return Zero
	}
}
