package recipe

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/wuxler/rxb/pkg/errdefs"
	"github.com/wuxler/rxb/pkg/regexbuilder"
)

// Resolver looks up the builder of a named pattern referenced by a "ref" step.
type Resolver interface {
	Resolve(name string) (regexbuilder.Builder, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(name string) (regexbuilder.Builder, error)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(name string) (regexbuilder.Builder, error) {
	return f(name)
}

// Compile builds the recipe pattern. resolver may be nil when the recipe has
// no "ref" step.
func Compile(r Recipe, resolver Resolver) (regexbuilder.Builder, error) {
	b, err := compileSteps(regexbuilder.New(), r.Pattern, resolver, "pattern")
	if err != nil {
		return regexbuilder.Builder{}, fmt.Errorf("recipe %q: %w", r.Name, err)
	}
	if r.Anchored {
		b = regexbuilder.Anchored(b)
	}
	return b, nil
}

// CompileSteps builds a pattern from steps.
func CompileSteps(steps Steps, resolver Resolver) (regexbuilder.Builder, error) {
	return compileSteps(regexbuilder.New(), steps, resolver, "pattern")
}

func compileSteps(b regexbuilder.Builder, steps Steps, resolver Resolver, path string) (regexbuilder.Builder, error) {
	for i, step := range steps {
		var err error
		b, err = step.apply(b, resolver, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return regexbuilder.Builder{}, err
		}
	}
	return b, nil
}

func (s Step) apply(b regexbuilder.Builder, resolver Resolver, path string) (regexbuilder.Builder, error) {
	ops := s.ops()
	switch len(ops) {
	case 0:
		return b, errdefs.Newf(errdefs.ErrInvalidParameter, "%s: step has no operation", path)
	case 1:
	default:
		return b, errdefs.Newf(errdefs.ErrInvalidParameter,
			"%s: step has several operations [%s]", path, strings.Join(ops, ", "))
	}
	path += "." + ops[0]

	sub := func(steps Steps, name string) (regexbuilder.Builder, error) {
		p := path
		if name != "" {
			p += "." + name
		}
		return compileSteps(regexbuilder.New(), steps, resolver, p)
	}

	switch {
	case s.Literal != nil:
		return b.Literal(*s.Literal), nil
	case s.Raw != nil:
		return b.Raw(*s.Raw), nil
	case s.Range != nil:
		return b.Range(*s.Range), nil
	case s.InvertedRange != nil:
		return b.InvertedRange(*s.InvertedRange), nil
	case s.OneOrMore != nil:
		op, err := sub(s.OneOrMore, "")
		if err != nil {
			return b, err
		}
		return b.OneOrMore(op), nil
	case s.ZeroOrMore != nil:
		op, err := sub(s.ZeroOrMore, "")
		if err != nil {
			return b, err
		}
		return b.ZeroOrMore(op), nil
	case s.Optional != nil:
		op, err := sub(s.Optional, "")
		if err != nil {
			return b, err
		}
		return b.Optional(op), nil
	case s.Group != nil:
		op, err := sub(s.Group.Of, "of")
		if err != nil {
			return b, err
		}
		var opts []regexbuilder.GroupOption
		if s.Group.NonCapturing {
			opts = append(opts, regexbuilder.NonCapturing())
		}
		if s.Group.Lazy {
			opts = append(opts, regexbuilder.Lazy())
		}
		return b.Group(op, opts...), nil
	case s.Repeat != nil:
		op, err := sub(s.Repeat.Of, "of")
		if err != nil {
			return b, err
		}
		return s.Repeat.apply(b, op, path)
	case s.Alternate != nil:
		left, err := sub(s.Alternate.Left, "left")
		if err != nil {
			return b, err
		}
		right, err := sub(s.Alternate.Right, "right")
		if err != nil {
			return b, err
		}
		return b.Alternate(left, right), nil
	default: // s.Ref != nil
		if resolver == nil {
			return b, errdefs.Newf(errdefs.ErrNotFound, "%s: unable to resolve %q without a resolver", path, *s.Ref)
		}
		ref, err := resolver.Resolve(*s.Ref)
		if err != nil {
			return b, fmt.Errorf("%s: %w", path, err)
		}
		return b.Append(ref), nil
	}
}

func (r *RepeatStep) apply(b regexbuilder.Builder, op regexbuilder.Builder, path string) (regexbuilder.Builder, error) {
	toInt := func(name string, v any) (int, error) {
		n, err := cast.ToIntE(v)
		if err != nil {
			return 0, errdefs.Newf(errdefs.ErrInvalidParameter, "%s: invalid %s %v: %w", path, name, v, err)
		}
		if n < 0 {
			return 0, errdefs.Newf(errdefs.ErrInvalidParameter, "%s: %s must not be negative, got %d", path, name, n)
		}
		return n, nil
	}

	switch {
	case r.Count != nil && (r.Min != nil || r.Max != nil):
		return b, errdefs.Newf(errdefs.ErrInvalidParameter, "%s: count can not be combined with min or max", path)
	case r.Count != nil:
		count, err := toInt("count", r.Count)
		if err != nil {
			return b, err
		}
		return b.Repeat(op, count), nil
	case r.Min == nil:
		return b, errdefs.Newf(errdefs.ErrInvalidParameter, "%s: count or min is required", path)
	}

	lower, err := toInt("min", r.Min)
	if err != nil {
		return b, err
	}
	if r.Max == nil {
		return b.AtLeast(op, lower), nil
	}
	upper, err := toInt("max", r.Max)
	if err != nil {
		return b, err
	}
	if upper < lower {
		return b, errdefs.Newf(errdefs.ErrInvalidParameter, "%s: max %d is lower than min %d", path, upper, lower)
	}
	return b.RepeatRange(op, lower, upper), nil
}
