package regexbuilder

// Literal returns a Builder matching text literally.
func Literal(text string) Builder {
	return New().Literal(text)
}

// Raw returns a Builder holding text verbatim.
func Raw(text string) Builder {
	return New().Raw(text)
}

// Repeat returns a Builder matching op exactly count times.
func Repeat(op Operand, count int) Builder {
	return New().Repeat(op, count)
}

// RepeatRange returns a Builder matching op between lower and upper times.
func RepeatRange(op Operand, lower, upper int) Builder {
	return New().RepeatRange(op, lower, upper)
}

// AtLeast returns a Builder matching op lower or more times.
func AtLeast(op Operand, lower int) Builder {
	return New().AtLeast(op, lower)
}

// Group returns a Builder wrapping op in a group.
func Group(op Operand, opts ...GroupOption) Builder {
	return New().Group(op, opts...)
}

// OneOrMore returns a Builder matching op one or more times.
func OneOrMore(op Operand) Builder {
	return New().OneOrMore(op)
}

// ZeroOrMore returns a Builder matching op zero or more times.
func ZeroOrMore(op Operand) Builder {
	return New().ZeroOrMore(op)
}

// Optional returns a Builder matching op zero or one time.
func Optional(op Operand) Builder {
	return New().Optional(op)
}

// Range returns a Builder matching any character in chars.
func Range(chars string) Builder {
	return New().Range(chars)
}

// InvertedRange returns a Builder matching any character NOT in chars.
func InvertedRange(chars string) Builder {
	return New().InvertedRange(chars)
}

// Alternate returns a Builder matching either left or right.
func Alternate(left, right Operand) Builder {
	return New().Alternate(left, right)
}

// Concat returns a Builder matching each operand in order.
func Concat(ops ...Operand) Builder {
	b := New()
	for _, op := range ops {
		b = b.Append(op)
	}
	return b
}

// Anchored returns a Builder matching op against the whole input. A top level
// alternation is grouped first so both anchors apply to every branch.
func Anchored(op Operand) Builder {
	head := op.chain()
	if alternatesAtTop(head) {
		return Raw("^").Group(op, NonCapturing()).Raw("$")
	}
	return Raw("^").Append(op).Raw("$")
}
