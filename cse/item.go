package cse

import "fmt"

// Control items. A delta body holds these, and so does the control stack
// during evaluation (plus environment markers).
type (
	// Op is an operator symbol, or one of the machine tokens 'gamma' and
	// 'beta'.
	Op string

	// NameRef is an identifier reference, resolved against the active
	// environment when stacked.
	NameRef string

	// IntConst, StrConst and BoolConst are literal constants.
	IntConst  int
	StrConst  string
	BoolConst bool

	// TauOp is the tuple constructor; the value is the arity.
	TauOp int

	// DeltaRef references a conditional arm. The 'beta' token consumes two
	// of these together with a truthvalue.
	DeltaRef struct {
		ID  int
		Arm bool // true = then-branch
	}
)

// ItemString renders a control item in its trace notation.
func ItemString(item interface{}) string {
	switch it := item.(type) {
	case Op:
		return string(it)
	case NameRef:
		return fmt.Sprintf("<ID:%s>", string(it))
	case IntConst:
		return fmt.Sprintf("<INT:%d>", int(it))
	case StrConst:
		return fmt.Sprintf("<STR:'%s'>", string(it))
	case BoolConst:
		if it {
			return "true"
		}
		return "false"
	case Nil:
		return "nil"
	case Dummy:
		return "dummy"
	case YStar:
		return "Y_star"
	case TauOp:
		return fmt.Sprintf("tau_%d", int(it))
	case DeltaRef:
		if it.Arm {
			return fmt.Sprintf("delta_%d_t", it.ID)
		}
		return fmt.Sprintf("delta_%d_f", it.ID)
	case *Closure:
		return it.String()
	case *Environment:
		return it.String()
	}
	// plain runtime values (the value stack shares this renderer)
	return FormatValue(item)
}
