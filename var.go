package es5

// Var is the descriptor every identifier or operator reference resolves
// to. Interceptor and Operator are not separate Go types (the source
// models them as subvariants of the same descriptor); an Interceptor is a
// Var with a non-nil Intercept, and an Operator is a Var with IsOperator
// set -- both still carry the common ID/UniqueID/IsGlobal fields.
type Var struct {
	ID         string
	UniqueID   uint32
	IsGlobal   bool
	IsImplicit bool
	IsParam    bool
	IsOperator bool
	Intercept  *Intercept
}

// Intercept records that a Var is an indirection through a with/eval
// scope: Intercepted is the binding it ultimately forwards to, Reason is
// the *With or *Fun node whose scope forced the indirection.
type Intercept struct {
	Intercepted *Var
	Reason      Node
}

func (v *Var) String() string {
	switch {
	case v.Intercept != nil:
		return v.ID + "~"
	case v.IsOperator:
		return v.ID
	case v.IsImplicit:
		return v.ID + "!"
	default:
		return v.ID
	}
}

// operatorSymbols is the fixed set of operator-Var identities preloaded
// into the Program scope. It does not include "~", "!", or a bare
// "++"/"--". A Prefix "~"/"!" therefore misses this set and resolves as
// an ordinary implicit global instead of an operator Var; a Postfix op is
// not looked up at all and gets no resolution entry. That asymmetry is
// deliberate, not a bug.
var operatorSymbols = []string{
	"prefix+", "prefix-", "prefix++", "prefix--",
	"delete", "void", "typeof",
	"||", "&&", "|", "^", "&",
	"==", "!=", "===", "!==",
	"<", ">", "<=", ">=", "instanceof", "in",
	"<<", ">>", ">>>",
	"+", "-", "*", "/", "%",
}
