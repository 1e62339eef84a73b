package policy

// Conclusion is what a matching statement emits. UNSET means no statement
// decided and the document default applies.
type Conclusion int

const (
	UNSET Conclusion = iota
	ALLOW
	DENY
)

func ParseConclusion(s string) Conclusion {
	switch s {
	case "allow":
		return ALLOW
	case "deny":
		return DENY
	default:
		return UNSET
	}
}

// Or combines two conclusions. Conflicting ones cancel out.
func (c Conclusion) Or(other Conclusion) Conclusion {
	switch {
	case c == UNSET:
		return other
	case other == UNSET, c == other:
		return c
	default:
		return UNSET
	}
}

// RequestContext is what a condition can Load from, e.g. "requester.id" or
// "this.ownerId".
type RequestContext struct {
	Requester map[string]any
	This      map[string]any
}

// PolicyDocument maps an action to the statements deciding it. Actions that
// no statement decides fall back to Defaults, which default to deny.
type PolicyDocument struct {
	Name       string
	Statements map[string][]Stmt
	Defaults   map[string]bool
}

type Stmt struct {
	Emit      string
	Condition Expr
}

type Expr struct {
	Operator string
	Args     []Expr
	Const    any
}

type EvalResult struct {
	Operator string
	Result   any
	Error    string
}
