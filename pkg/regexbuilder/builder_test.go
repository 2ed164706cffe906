package regexbuilder_test

import (
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/wuxler/rxb/pkg/errdefs"
	rb "github.com/wuxler/rxb/pkg/regexbuilder"
)

func TestBuilder_String(t *testing.T) {
	testcases := []struct {
		name   string
		b      rb.Builder
		want   string
		weight int
	}{
		{name: "empty", b: rb.New(), want: "", weight: 0},
		{name: "zero value", b: rb.Builder{}, want: "", weight: 0},
		{name: "literals keep call order", b: rb.Literal("ab").Literal("c"), want: "abc", weight: 3},
		{name: "literal escapes metacharacters", b: rb.Literal("."), want: `\.`, weight: 1},
		{name: "raw is verbatim", b: rb.Raw("."), want: ".", weight: 1},
		{name: "raw class shorthand is atomic", b: rb.Raw(`\d`), want: `\d`, weight: 1},
		{name: "literal counts runes", b: rb.Literal("日本"), want: "日本", weight: 2},
		{name: "empty literal", b: rb.Literal(""), want: "", weight: 0},
		{name: "one or more atomic", b: rb.OneOrMore(rb.Literal("c")), want: "c+", weight: 2},
		{name: "one or more composite", b: rb.OneOrMore(rb.Literal("bc")), want: "(?:bc)+", weight: 3},
		{name: "one or more text operand", b: rb.OneOrMore(rb.Text("bc")), want: "(?:bc)+", weight: 3},
		{name: "one or more escaped atomic", b: rb.OneOrMore(rb.Text("+")), want: `\++`, weight: 2},
		{name: "one or more escaped composite", b: rb.OneOrMore(rb.Text("a.")), want: `(?:a\.)+`, weight: 3},
		{name: "one or more unicode rune", b: rb.OneOrMore(rb.Text("é")), want: "é+", weight: 2},
		{name: "one or more raw class", b: rb.OneOrMore(rb.Raw(`\d`)), want: `\d+`, weight: 2},
		{name: "escaped backslash is atomic", b: rb.Literal(`\`), want: `\\`, weight: 1},
		{name: "one or more escaped backslash", b: rb.OneOrMore(rb.Literal(`\`)), want: `\\+`, weight: 2},
		{name: "one or more text ending with backslash", b: rb.OneOrMore(rb.Literal(`a\`)), want: `(?:a\\)+`, weight: 3},
		{name: "escaped backslash and dot", b: rb.Literal(`\.`), want: `\\\.`, weight: 2},
		{name: "one or more escaped backslash and dot", b: rb.OneOrMore(rb.Literal(`\.`)), want: `(?:\\\.)+`, weight: 3},
		{name: "raw escaped backslash", b: rb.OneOrMore(rb.Raw(`\\`)), want: `\\+`, weight: 2},
		{name: "raw class shorthands", b: rb.OneOrMore(rb.Raw(`\d\w`)), want: `(?:\d\w)+`, weight: 3},
		{name: "zero or more range", b: rb.ZeroOrMore(rb.Range("abc")), want: "[abc]*", weight: 2},
		{name: "zero or more composite", b: rb.ZeroOrMore(rb.Literal("ab")), want: "(?:ab)*", weight: 3},
		{name: "optional atomic", b: rb.Optional(rb.Text("s")), want: "s?", weight: 2},
		{name: "optional composite", b: rb.Optional(rb.Literal("-").OneOrMore(rb.Range("a-z"))), want: "(?:-[a-z]+)?", weight: 4},
		{name: "repeat atomic", b: rb.Repeat(rb.Literal("b"), 3), want: "b{3}", weight: 2},
		{name: "repeat composite", b: rb.Repeat(rb.Literal("bc"), 3), want: "(?:bc){3}", weight: 3},
		{name: "repeat range composite", b: rb.RepeatRange(rb.Literal("bc"), 2, 3), want: "(?:bc){2,3}", weight: 3},
		{name: "repeat range atomic", b: rb.RepeatRange(rb.Range("0-9"), 1, 3), want: "[0-9]{1,3}", weight: 2},
		{name: "at least", b: rb.AtLeast(rb.Range("0-9"), 2), want: "[0-9]{2,}", weight: 2},
		{name: "nested repeats", b: rb.Repeat(rb.RepeatRange(rb.Text("a"), 1, 2), 3), want: "(?:a{1,2}){3}", weight: 3},
		{name: "capturing group", b: rb.Group(rb.Literal("ab")), want: "(ab)", weight: 2},
		{name: "non capturing group", b: rb.Group(rb.Literal("ab"), rb.NonCapturing()), want: "(?:ab)", weight: 2},
		{name: "lazy group", b: rb.Group(rb.OneOrMore(rb.Text("a")), rb.Lazy()), want: "(a+?)", weight: 2},
		{name: "lazy non capturing group", b: rb.Group(rb.ZeroOrMore(rb.Raw(".")), rb.NonCapturing(), rb.Lazy()), want: "(?:.*?)", weight: 2},
		{name: "range", b: rb.Range("a-z"), want: "[a-z]", weight: 1},
		{name: "inverted range", b: rb.InvertedRange("0-9"), want: "[^0-9]", weight: 1},
		{name: "empty range", b: rb.Range(""), want: "[]", weight: 1},
		{name: "alternation groups composite branch", b: rb.Alternate(rb.Literal("ab"), rb.Literal("c")), want: "(?:ab)|c", weight: 2},
		{name: "alternation groups both branches", b: rb.Alternate(rb.Literal("ab"), rb.Literal("cd")), want: "(?:ab)|(?:cd)", weight: 2},
		{name: "alternation then literal", b: rb.Alternate(rb.Literal("a"), rb.Literal("b")).Literal("c"), want: "a|bc", weight: 2},
		{name: "alternation with empty branch", b: rb.Alternate(rb.Text(""), rb.Text("a")), want: "|a", weight: 1},
		{name: "quantified fragment after prefix", b: rb.Literal("x").OneOrMore(rb.Text("y")), want: "xy+", weight: 3},
		{
			name:   "quantified operand is grouped again",
			b:      rb.Optional(rb.OneOrMore(rb.Literal("c"))),
			want:   "(?:c+)?",
			weight: 3,
		},
		{
			name:   "group operand keeps its weight",
			b:      rb.OneOrMore(rb.Group(rb.Literal("ab"))),
			want:   "(?:(ab))+",
			weight: 3,
		},
		{
			name:   "quantified alternation",
			b:      rb.OneOrMore(rb.Alternate(rb.Literal("ab"), rb.Literal("cd"))),
			want:   "(?:(?:ab)|(?:cd))+",
			weight: 3,
		},
		{
			name: "semantic version",
			b: rb.New().
				Literal("v").
				OneOrMore(rb.Range("0-9")).
				Literal(".").
				OneOrMore(rb.Range("0-9")).
				Optional(rb.Literal("-").OneOrMore(rb.Range("a-z0-9"))),
			want:   `v[0-9]+\.[0-9]+(?:-[a-z0-9]+)?`,
			weight: 10,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.b.String())
			assert.Equal(t, tc.weight, tc.b.Weight())
			// rendering twice must not wrap operands again
			assert.Equal(t, tc.want, tc.b.String())
		})
	}
}

func TestBuilder_AlternationWeight(t *testing.T) {
	// alternation weighs as much as its heavier branch
	assert.Equal(t, 1, rb.Alternate(rb.Text("a"), rb.Text("b")).Weight())
	assert.Equal(t, 3, rb.Alternate(rb.Text("a"), rb.Text("bcd")).Weight())
	assert.Equal(t, "a|b+", rb.OneOrMore(rb.Alternate(rb.Text("a"), rb.Text("b"))).String())
	assert.Equal(t, "(?:a|b)+", rb.OneOrMore(rb.Group(rb.Alternate(rb.Text("a"), rb.Text("b")), rb.NonCapturing())).String())
	assert.Equal(t, 3, rb.Alternate(rb.Text("abc"), rb.Range("d")).Weight())
}

func TestBuilder_EscapedLiteralMatches(t *testing.T) {
	re := regexp.MustCompile(rb.Anchored(rb.OneOrMore(rb.Literal(`a\`))).String())
	assert.True(t, re.MatchString(`a\`))
	assert.True(t, re.MatchString(`a\a\`))
	assert.False(t, re.MatchString(`a\\`))
}

func TestAnchored(t *testing.T) {
	testcases := []struct {
		name    string
		b       rb.Builder
		want    string
		match   []string
		noMatch []string
	}{
		{
			name:    "concatenation",
			b:       rb.Literal("ab"),
			want:    "^ab$",
			match:   []string{"ab"},
			noMatch: []string{"abc", "xab"},
		},
		{
			name:    "alternation",
			b:       rb.Alternate(rb.Literal("cat"), rb.Literal("dog")),
			want:    "^(?:(?:cat)|(?:dog))$",
			match:   []string{"cat", "dog"},
			noMatch: []string{"catapult", "hotdog"},
		},
		{
			name:    "alternation followed by literal",
			b:       rb.Alternate(rb.Text("a"), rb.Text("b")).Literal("c"),
			want:    "^(?:a|bc)$",
			match:   []string{"a", "bc"},
			noMatch: []string{"ac", "xbc"},
		},
		{
			name:    "raw alternation",
			b:       rb.Raw("cat|dog"),
			want:    "^(?:cat|dog)$",
			match:   []string{"cat", "dog"},
			noMatch: []string{"catapult", "hotdog"},
		},
		{
			name:    "grouped raw alternation",
			b:       rb.Raw(`(?:a|b)[|]\|`),
			want:    `^(?:a|b)[|]\|$`,
			match:   []string{"a||", "b||"},
			noMatch: []string{"a|"},
		},
		{name: "empty", b: rb.New(), want: "^$", match: []string{""}, noMatch: []string{"a"}},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			got := rb.Anchored(tc.b)
			require.Equal(t, tc.want, got.String())
			re := regexp.MustCompile(got.String())
			for _, s := range tc.match {
				assert.True(t, re.MatchString(s), s)
			}
			for _, s := range tc.noMatch {
				assert.False(t, re.MatchString(s), s)
			}
		})
	}
}

func TestBuilder_Immutable(t *testing.T) {
	x := rb.Literal("ab")
	y := x.Literal("c")
	z := x.OneOrMore(rb.Text("d"))

	assert.Equal(t, "ab", x.String())
	assert.Equal(t, "abc", y.String())
	assert.Equal(t, "abd+", z.String())
	assert.Equal(t, 1, x.Len())
	assert.Equal(t, 2, y.Len())

	// operands are not affected by the builders using them
	operand := rb.Literal("bc")
	quantified := rb.OneOrMore(operand)
	assert.Equal(t, "(?:bc)+", quantified.String())
	assert.Equal(t, "bc", operand.String())
	assert.Equal(t, "bcx", operand.Literal("x").String())
	assert.Equal(t, "(?:bc)+", quantified.String())
}

func TestBuilder_Append(t *testing.T) {
	t.Run("self", func(t *testing.T) {
		x := rb.Literal("ab")
		xx := x.Append(x)
		assert.Equal(t, "abab", xx.String())
		assert.Equal(t, "ab", x.String())
		assert.Equal(t, "abababab", xx.Append(xx).String())
		assert.Equal(t, "abab", xx.String())
	})

	t.Run("keeps structural weight", func(t *testing.T) {
		b := rb.Range("a").Append(rb.Range("b"))
		assert.Equal(t, "[a][b]", b.String())
		assert.Equal(t, 2, b.Weight())
		assert.Equal(t, []rb.Kind{rb.KindRange, rb.KindRange}, b.Kinds())

		single := rb.New().Append(rb.Range("0-9"))
		assert.Equal(t, "[0-9]+", rb.OneOrMore(single).String())
	})

	t.Run("text", func(t *testing.T) {
		assert.Equal(t, `a\.b`, rb.New().Append(rb.Text("a.b")).String())
	})

	t.Run("empty", func(t *testing.T) {
		b := rb.Literal("a")
		assert.Equal(t, "a", b.Append(rb.New()).String())
		assert.Equal(t, "a", rb.New().Append(b).String())
	})

	t.Run("concat", func(t *testing.T) {
		b := rb.Concat(rb.Text("a"), rb.OneOrMore(rb.Text("b")), rb.Range("c"))
		assert.Equal(t, "ab+[c]", b.String())
		assert.Equal(t, 3, b.Len())
		assert.Equal(t, []rb.Kind{rb.KindLiteral, rb.KindOneOrMore, rb.KindRange}, b.Kinds())
	})
}

func TestBuilder_Kinds(t *testing.T) {
	b := rb.New().
		Literal("a").
		Raw(`\d`).
		Repeat(rb.Text("b"), 2).
		RepeatRange(rb.Text("c"), 1, 2).
		AtLeast(rb.Text("d"), 1).
		OneOrMore(rb.Text("e")).
		ZeroOrMore(rb.Text("f")).
		Optional(rb.Text("g")).
		Group(rb.Text("h")).
		Group(rb.Text("i"), rb.NonCapturing()).
		Range("j").
		InvertedRange("k").
		Alternate(rb.Text("l"), rb.Text("m"))

	want := []rb.Kind{
		rb.KindLiteral, rb.KindLiteral, rb.KindExactRepeat, rb.KindBoundedRepeat,
		rb.KindBoundedRepeat, rb.KindOneOrMore, rb.KindZeroOrMore, rb.KindOptional,
		rb.KindGroup, rb.KindNonCaptureGroup, rb.KindRange, rb.KindInvertedRange,
		rb.KindAlternation,
	}
	assert.Equal(t, want, b.Kinds())
	assert.Equal(t, len(want), b.Len())
	assert.False(t, b.IsEmpty())
	assert.True(t, rb.New().IsEmpty())
	assert.Equal(t, `a\db{2}c{1,2}d{1,}e+f*g?(h)(?:i)[j][^k]l|m`, b.String())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "literal", rb.KindLiteral.String())
	assert.Equal(t, "one_or_more", rb.KindOneOrMore.String())
	assert.Equal(t, "non_capture_group", rb.KindNonCaptureGroup.String())
	assert.Equal(t, "Kind(99)", rb.Kind(99).String())
}

func TestAsOperand(t *testing.T) {
	builder := rb.Literal("ab")
	var nilBuilder *rb.Builder

	testcases := []struct {
		name    string
		input   any
		want    string
		wantErr bool
	}{
		{name: "string", input: "a.b", want: `a\.b`},
		{name: "text", input: rb.Text("a.b"), want: `a\.b`},
		{name: "builder", input: builder, want: "ab"},
		{name: "builder pointer", input: &builder, want: "ab"},
		{name: "nil builder pointer", input: nilBuilder, wantErr: true},
		{name: "nil", input: nil, wantErr: true},
		{name: "int", input: 42, wantErr: true},
		{name: "stringer", input: time.Second, wantErr: true},
		{name: "bytes", input: []byte("ab"), wantErr: true},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			op, err := rb.AsOperand(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, errdefs.ErrInvalidParameter)
				assert.Nil(t, op)
				assert.Panics(t, func() { rb.MustOperand(tc.input) })
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, rb.New().Append(op).String())
		})
	}
}

func TestAsOperand_ErrorNamesType(t *testing.T) {
	_, err := rb.AsOperand(3.14)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "float64")
}

func TestBuilder_Concurrent(t *testing.T) {
	base := rb.Literal("ab").OneOrMore(rb.Text("cd"))
	const want = "ab(?:cd)+"

	var eg errgroup.Group
	for i := 0; i < 64; i++ {
		i := i
		eg.Go(func() error {
			if got := base.String(); got != want {
				t.Errorf("base rendered %q, want %q", got, want)
			}
			suffix := strconv.Itoa(i)
			ext := base.Literal(suffix).Optional(base)
			if got, expect := ext.String(), want+suffix+"(?:"+want+")?"; got != expect {
				t.Errorf("extension rendered %q, want %q", got, expect)
			}
			if w := base.Weight(); w != 5 {
				t.Errorf("base weight %d, want 5", w)
			}
			return nil
		})
	}
	require.NoError(t, eg.Wait())
	assert.Equal(t, want, base.String())
}
