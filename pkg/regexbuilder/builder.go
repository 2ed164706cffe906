// Package regexbuilder assembles regular expression text from composable
// fragments.
//
// A Builder is an immutable value: every method returns a new Builder and
// leaves the receiver untouched, so builders can be shared, extended from
// several places and used concurrently without synchronization.
//
// Operands of quantifiers, repeats and alternations are wrapped in a
// non-capturing group when they would otherwise render as more than one
// token, so that
//
//	regexbuilder.OneOrMore(regexbuilder.Literal("bc"))
//
// renders "(?:bc)+" instead of "bc+".
package regexbuilder

import (
	"regexp"
	"strings"
)

// New returns an empty Builder. It is equivalent to the zero value.
func New() Builder {
	return Builder{}
}

// Builder is a persistent chain of expression fragments.
type Builder struct {
	head *fragment
}

func (b Builder) chain() *fragment {
	return b.head
}

func (b Builder) push(f *fragment) Builder {
	f.prev = b.head
	return Builder{head: f}
}

// Literal appends text, escaping all regular expression metacharacters.
func (b Builder) Literal(text string) Builder {
	return b.push(&fragment{kind: KindLiteral, text: regexp.QuoteMeta(text)})
}

// Raw appends text verbatim. Use it for hand-written syntax such as `\d` or
// `\b`.
func (b Builder) Raw(text string) Builder {
	return b.push(&fragment{kind: KindLiteral, text: text})
}

// Repeat appends the operand repeated exactly count times.
func (b Builder) Repeat(op Operand, count int) Builder {
	return b.push(&fragment{kind: KindExactRepeat, left: op.chain(), min: count})
}

// RepeatRange appends the operand repeated between lower and upper times.
func (b Builder) RepeatRange(op Operand, lower, upper int) Builder {
	return b.push(&fragment{kind: KindBoundedRepeat, left: op.chain(), min: lower, max: upper})
}

// AtLeast appends the operand repeated lower or more times.
func (b Builder) AtLeast(op Operand, lower int) Builder {
	return b.push(&fragment{kind: KindBoundedRepeat, left: op.chain(), min: lower, open: true})
}

// Group appends the operand in a group, capturing unless NonCapturing is
// given.
func (b Builder) Group(op Operand, opts ...GroupOption) Builder {
	o := makeGroupOptions(opts...)
	kind := KindGroup
	if o.nonCapturing {
		kind = KindNonCaptureGroup
	}
	return b.push(&fragment{kind: kind, left: op.chain(), lazy: o.lazy})
}

// OneOrMore appends the operand followed by "+".
func (b Builder) OneOrMore(op Operand) Builder {
	return b.push(&fragment{kind: KindOneOrMore, left: op.chain()})
}

// ZeroOrMore appends the operand followed by "*".
func (b Builder) ZeroOrMore(op Operand) Builder {
	return b.push(&fragment{kind: KindZeroOrMore, left: op.chain()})
}

// Optional appends the operand followed by "?".
func (b Builder) Optional(op Operand) Builder {
	return b.push(&fragment{kind: KindOptional, left: op.chain()})
}

// Range appends a character set matching any of chars. chars is not
// validated nor escaped.
func (b Builder) Range(chars string) Builder {
	return b.push(&fragment{kind: KindRange, text: chars})
}

// InvertedRange appends a character set matching anything but chars.
func (b Builder) InvertedRange(chars string) Builder {
	return b.push(&fragment{kind: KindInvertedRange, text: chars})
}

// Alternate appends an alternation between left and right.
//
// Only the two branches are grouped when needed, fragments appended before or
// after the alternation are not: New().Alternate(Text("a"), Text("b")).Literal("c")
// renders "a|bc". An alternation of two atomic branches weighs 1, so
// quantifying it binds to the right branch only; group it explicitly.
func (b Builder) Alternate(left, right Operand) Builder {
	return b.push(&fragment{kind: KindAlternation, left: left.chain(), right: right.chain()})
}

// Append splices the fragments of op after the fragments of b. Appending a
// builder to itself is allowed.
func (b Builder) Append(op Operand) Builder {
	out := b
	for _, f := range chainOf(op.chain()) {
		c := *f
		out = out.push(&c)
	}
	return out
}

// String renders the regular expression text.
func (b Builder) String() string {
	sb := &strings.Builder{}
	renderChain(sb, b.head)
	return sb.String()
}

// Weight returns the atomic weight of the whole expression: 1 means it can be
// quantified as is, more than 1 means it must be grouped first and 0 means
// the expression is empty.
func (b Builder) Weight() int {
	return weightOf(b.head)
}

// Len returns the number of fragments in the builder.
func (b Builder) Len() int {
	n := 0
	for f := b.head; f != nil; f = f.prev {
		n++
	}
	return n
}

// IsEmpty reports whether no fragment has been appended.
func (b Builder) IsEmpty() bool {
	return b.head == nil
}

// Kinds returns the kinds of the top level fragments in construction order.
func (b Builder) Kinds() []Kind {
	nodes := chainOf(b.head)
	kinds := make([]Kind, 0, len(nodes))
	for _, f := range nodes {
		kinds = append(kinds, f.kind)
	}
	return kinds
}
