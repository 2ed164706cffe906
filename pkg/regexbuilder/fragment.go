package regexbuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the construction step a fragment represents.
type Kind int

const (
	// KindLiteral is a piece of text emitted verbatim.
	KindLiteral Kind = iota + 1
	// KindExactRepeat repeats the operand exactly n times, "{n}".
	KindExactRepeat
	// KindBoundedRepeat repeats the operand between min and max times, "{min,max}".
	// The upper bound may be left open, "{min,}".
	KindBoundedRepeat
	// KindOneOrMore is the "+" quantifier.
	KindOneOrMore
	// KindZeroOrMore is the "*" quantifier.
	KindZeroOrMore
	// KindOptional is the "?" quantifier.
	KindOptional
	// KindGroup is a capturing group.
	KindGroup
	// KindNonCaptureGroup is a non-capturing group "(?:...)".
	KindNonCaptureGroup
	// KindRange is a character set "[...]".
	KindRange
	// KindInvertedRange is a negated character set "[^...]".
	KindInvertedRange
	// KindAlternation matches either the left or the right operand.
	KindAlternation
)

var kindNames = map[Kind]string{
	KindLiteral:         "literal",
	KindExactRepeat:     "exact_repeat",
	KindBoundedRepeat:   "bounded_repeat",
	KindOneOrMore:       "one_or_more",
	KindZeroOrMore:      "zero_or_more",
	KindOptional:        "optional",
	KindGroup:           "group",
	KindNonCaptureGroup: "non_capture_group",
	KindRange:           "range",
	KindInvertedRange:   "inverted_range",
	KindAlternation:     "alternation",
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// fragment is one node of a persistent chain. prev points to the state of the
// builder before this step was applied, so a chain is walked newest-first.
//
// Fragments are never modified after creation.
type fragment struct {
	kind Kind
	prev *fragment

	text string // literal text or character set

	// operand chains, right is only used by alternations
	left  *fragment
	right *fragment

	min, max int
	open     bool // bounded repeat without upper limit
	lazy     bool
}

// chainOf returns the fragments of the chain ending at head, oldest first.
func chainOf(head *fragment) []*fragment {
	n := 0
	for f := head; f != nil; f = f.prev {
		n++
	}
	nodes := make([]*fragment, n)
	for f := head; f != nil; f = f.prev {
		n--
		nodes[n] = f
	}
	return nodes
}

// renderChain writes the chain ending at head to sb in construction order.
func renderChain(sb *strings.Builder, head *fragment) {
	for _, f := range chainOf(head) {
		f.render(sb)
	}
}

// weightOf returns the atomic weight of the chain ending at head.
func weightOf(head *fragment) int {
	total := 0
	for f := head; f != nil; f = f.prev {
		total += f.weight()
	}
	return total
}

// renderOperand writes the operand chain, wrapped in a non-capturing group
// when it is not atomic.
func renderOperand(sb *strings.Builder, operand *fragment) {
	if weightOf(operand) > 1 {
		sb.WriteString("(?:")
		renderChain(sb, operand)
		sb.WriteString(")")
		return
	}
	renderChain(sb, operand)
}

func (f *fragment) render(sb *strings.Builder) {
	switch f.kind {
	case KindLiteral:
		sb.WriteString(f.text)
	case KindExactRepeat:
		renderOperand(sb, f.left)
		sb.WriteString("{" + strconv.Itoa(f.min) + "}")
	case KindBoundedRepeat:
		renderOperand(sb, f.left)
		if f.open {
			sb.WriteString("{" + strconv.Itoa(f.min) + ",}")
			return
		}
		sb.WriteString("{" + strconv.Itoa(f.min) + "," + strconv.Itoa(f.max) + "}")
	case KindOneOrMore:
		renderOperand(sb, f.left)
		sb.WriteString("+")
	case KindZeroOrMore:
		renderOperand(sb, f.left)
		sb.WriteString("*")
	case KindOptional:
		renderOperand(sb, f.left)
		sb.WriteString("?")
	case KindGroup, KindNonCaptureGroup:
		sb.WriteString("(")
		if f.kind == KindNonCaptureGroup {
			sb.WriteString("?:")
		}
		renderChain(sb, f.left)
		if f.lazy {
			sb.WriteString("?")
		}
		sb.WriteString(")")
	case KindRange:
		sb.WriteString("[" + f.text + "]")
	case KindInvertedRange:
		sb.WriteString("[^" + f.text + "]")
	case KindAlternation:
		renderOperand(sb, f.left)
		sb.WriteString("|")
		renderOperand(sb, f.right)
	default:
		panic(fmt.Sprintf("regexbuilder: unknown fragment kind %s", f.kind))
	}
}

// weight reports whether the fragment renders as a single regex token (1) or
// as a composite one (>1). Quantified operands keep growing on purpose: a
// quantified fragment is grouped again before an outer quantifier applies.
func (f *fragment) weight() int {
	switch f.kind {
	case KindLiteral:
		return tokenCount(f.text)
	case KindExactRepeat, KindBoundedRepeat, KindOneOrMore, KindZeroOrMore, KindOptional:
		return weightOf(f.left) + 1
	case KindGroup, KindNonCaptureGroup:
		return weightOf(f.left)
	case KindRange, KindInvertedRange:
		return 1
	case KindAlternation:
		return max(weightOf(f.left), weightOf(f.right))
	default:
		panic(fmt.Sprintf("regexbuilder: unknown fragment kind %s", f.kind))
	}
}

// tokenCount returns the number of regex tokens in text, counting a backslash
// and the rune following it as a single token.
func tokenCount(text string) int {
	n := 0
	escaped := false
	for _, r := range text {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
			n++
		default:
			n++
		}
	}
	return n
}

// hasBareBar reports whether text holds a "|" outside escapes, groups and
// character sets.
func hasBareBar(text string) bool {
	depth := 0
	escaped, inSet := false, false
	for _, r := range text {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case inSet:
			inSet = r != ']'
		case r == '[':
			inSet = true
		case r == '(':
			depth++
		case r == ')':
			depth--
		case r == '|' && depth == 0:
			return true
		}
	}
	return false
}

// alternatesAtTop reports whether the chain ending at head holds an
// alternation that is not enclosed in a group.
func alternatesAtTop(head *fragment) bool {
	for f := head; f != nil; f = f.prev {
		switch f.kind {
		case KindAlternation:
			return true
		case KindLiteral:
			if hasBareBar(f.text) {
				return true
			}
		}
	}
	return false
}
