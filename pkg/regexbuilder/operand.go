package regexbuilder

import (
	"regexp"

	"github.com/wuxler/rxb/pkg/errdefs"
)

var (
	_ Operand = Builder{}
	_ Operand = Text("")
)

// Operand is a sub-expression accepted by the builder operations. It is
// implemented by Builder and Text only.
type Operand interface {
	// chain returns the head of the fragment chain the operand stands for.
	chain() *fragment
}

// Text is plain text used as an operand. It is escaped like Builder.Literal.
type Text string

func (t Text) chain() *fragment {
	return &fragment{kind: KindLiteral, text: regexp.QuoteMeta(string(t))}
}

// AsOperand converts v to an Operand. Strings are treated as Text; any other
// type than string, Text, Builder and *Builder is rejected with an
// errdefs.ErrInvalidParameter error.
func AsOperand(v any) (Operand, error) {
	switch o := v.(type) {
	case string:
		return Text(o), nil
	case Text:
		return o, nil
	case Builder:
		return o, nil
	case *Builder:
		if o == nil {
			return nil, errdefs.Newf(errdefs.ErrInvalidParameter, "operand is a nil *regexbuilder.Builder")
		}
		return *o, nil
	case nil:
		return nil, errdefs.Newf(errdefs.ErrInvalidParameter, "operand is nil")
	default:
		return nil, errdefs.Newf(errdefs.ErrInvalidParameter,
			"unsupported operand type %T, want string, regexbuilder.Text or regexbuilder.Builder", v)
	}
}

// MustOperand is like AsOperand but panics if v can not be used as an Operand.
func MustOperand(v any) Operand {
	o, err := AsOperand(v)
	if err != nil {
		panic(err)
	}
	return o
}
