// Package catalog keeps named patterns, declared as recipes or built in code,
// and renders them on demand with caching.
package catalog

import (
	"context"
	_ "crypto/sha256" // digest.Canonical
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/opencontainers/go-digest"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/samber/lo"
	"github.com/smallnest/deepcopy"

	"github.com/wuxler/rxb/pkg/errdefs"
	"github.com/wuxler/rxb/pkg/recipe"
	"github.com/wuxler/rxb/pkg/regexbuilder"
	"github.com/wuxler/rxb/pkg/util/xcache"
	"github.com/wuxler/rxb/pkg/xlog"
)

// Pattern is a rendered catalog entry.
type Pattern struct {
	Name        string        `json:"name" yaml:"name"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Expr        string        `json:"expr" yaml:"expr"`
	Weight      int           `json:"weight" yaml:"weight"`
	Digest      digest.Digest `json:"digest" yaml:"digest"`
	RenderedAt  time.Time     `json:"rendered_at" yaml:"rendered_at"`
}

type entry struct {
	description string
	recipe      *recipe.Recipe
	builder     *regexbuilder.Builder
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithClock sets the clock used to stamp rendered patterns.
func WithClock(c clock.Clock) Option {
	return func(cat *Catalog) {
		cat.clock = c
	}
}

// WithPatternCache sets the cache of rendered patterns.
func WithPatternCache(cache xcache.Cache[Pattern]) Option {
	return func(cat *Catalog) {
		cat.patterns = cache
	}
}

// WithRegexpCache sets the cache of compiled patterns.
func WithRegexpCache(cache xcache.Cache[*regexp.Regexp]) Option {
	return func(cat *Catalog) {
		cat.compiled = cache
	}
}

// New returns an empty Catalog. Rendered and compiled patterns are cached in
// memory unless other caches are given.
func New(opts ...Option) *Catalog {
	c := &Catalog{
		entries:  xsync.NewMapOf[string, entry](),
		patterns: xcache.NewMemory[Pattern](),
		compiled: xcache.NewMemory[*regexp.Regexp](),
		clock:    clock.New(),
	}
	for _, apply := range opts {
		apply(c)
	}
	return c
}

// Catalog is a registry of named patterns. It is safe for concurrent use.
//
// Entries can not be replaced once registered, so cached renders never go
// stale.
type Catalog struct {
	entries  *xsync.MapOf[string, entry]
	patterns xcache.Cache[Pattern]
	compiled xcache.Cache[*regexp.Regexp]
	clock    clock.Clock
}

// Register adds a recipe to the catalog.
func (c *Catalog) Register(r recipe.Recipe) error {
	r = deepcopy.Copy(r)
	return c.store(r.Name, entry{description: r.Description, recipe: &r})
}

// RegisterBuilder adds a pattern built in code to the catalog.
func (c *Catalog) RegisterBuilder(name, description string, b regexbuilder.Builder) error {
	return c.store(name, entry{description: description, builder: &b})
}

func (c *Catalog) store(name string, e entry) error {
	if name == "" {
		return errdefs.Newf(errdefs.ErrInvalidParameter, "pattern name is required")
	}
	if _, loaded := c.entries.LoadOrStore(name, e); loaded {
		return errdefs.Newf(errdefs.ErrAlreadyExists, "pattern %q is already registered", name)
	}
	return nil
}

// Load registers all the recipes of src.
func (c *Catalog) Load(ctx context.Context, src Source) error {
	recipes, err := src.Recipes(ctx)
	if err != nil {
		return fmt.Errorf("unable to load recipes: %w", err)
	}
	for _, r := range recipes {
		if err := c.Register(r); err != nil {
			return err
		}
	}
	xlog.C(ctx).Debug("recipes registered", "count", len(recipes), "total", c.Len())
	return nil
}

// Get returns a copy of the named recipe. Patterns registered with
// RegisterBuilder have no recipe.
func (c *Catalog) Get(name string) (recipe.Recipe, bool) {
	e, ok := c.entries.Load(name)
	if !ok || e.recipe == nil {
		return recipe.Recipe{}, false
	}
	return deepcopy.Copy(*e.recipe), true
}

// Has reports whether name is registered.
func (c *Catalog) Has(name string) bool {
	_, ok := c.entries.Load(name)
	return ok
}

// Len returns the number of registered patterns.
func (c *Catalog) Len() int {
	return c.entries.Size()
}

// Names returns the sorted names of the registered patterns.
func (c *Catalog) Names() []string {
	names := make([]string, 0, c.entries.Size())
	c.entries.Range(func(name string, _ entry) bool {
		names = append(names, name)
		return true
	})
	slices.Sort(names)
	return names
}

// Builder returns the builder of the named pattern, resolving the references
// of recipes to other catalog entries.
func (c *Catalog) Builder(name string) (regexbuilder.Builder, error) {
	return c.resolve(name, nil)
}

func (c *Catalog) resolve(name string, stack []string) (regexbuilder.Builder, error) {
	e, ok := c.entries.Load(name)
	if !ok {
		return regexbuilder.Builder{}, errdefs.Newf(errdefs.ErrNotFound, "pattern %q is not registered", name)
	}
	if e.builder != nil {
		return *e.builder, nil
	}
	if lo.Contains(stack, name) {
		cycle := append(slices.Clone(stack), name)
		return regexbuilder.Builder{}, errdefs.Newf(errdefs.ErrConflict,
			"reference cycle %s", strings.Join(cycle, " -> "))
	}
	next := append(slices.Clone(stack), name)
	return recipe.Compile(*e.recipe, recipe.ResolverFunc(func(ref string) (regexbuilder.Builder, error) {
		return c.resolve(ref, next)
	}))
}

// Render returns the rendered named pattern.
func (c *Catalog) Render(ctx context.Context, name string) (Pattern, error) {
	return c.patterns.Load(ctx, name, func(ctx context.Context, name string) (Pattern, error) {
		xlog.C(ctx).Debug("rendering pattern", "name", name)
		b, err := c.Builder(name)
		if err != nil {
			return Pattern{}, err
		}
		e, _ := c.entries.Load(name)
		return c.newPattern(name, e.description, b), nil
	})
}

// RenderAll renders every registered pattern in name order.
func (c *Catalog) RenderAll(ctx context.Context) ([]Pattern, error) {
	names := c.Names()
	patterns := make([]Pattern, 0, len(names))
	for _, name := range names {
		p, err := c.Render(ctx, name)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}

// RenderRecipe renders a recipe that is not registered. Its references are
// resolved against the catalog. The result is not cached.
func (c *Catalog) RenderRecipe(_ context.Context, r recipe.Recipe) (Pattern, error) {
	var stack []string
	if r.Name != "" {
		stack = []string{r.Name}
	}
	b, err := recipe.Compile(r, recipe.ResolverFunc(func(ref string) (regexbuilder.Builder, error) {
		return c.resolve(ref, stack)
	}))
	if err != nil {
		return Pattern{}, err
	}
	return c.newPattern(r.Name, r.Description, b), nil
}

// Compile returns the named pattern compiled by the regexp package.
func (c *Catalog) Compile(ctx context.Context, name string) (*regexp.Regexp, error) {
	return c.compiled.Load(ctx, name, func(ctx context.Context, name string) (*regexp.Regexp, error) {
		p, err := c.Render(ctx, name)
		if err != nil {
			return nil, err
		}
		return CompilePattern(p)
	})
}

// CompilePattern compiles a rendered pattern by the regexp package.
func CompilePattern(p Pattern) (*regexp.Regexp, error) {
	re, err := regexp.Compile(p.Expr)
	if err != nil {
		return nil, errdefs.NewE(errdefs.ErrInvalidParameter, fmt.Errorf("pattern %q does not compile: %w", p.Name, err))
	}
	return re, nil
}

func (c *Catalog) newPattern(name, description string, b regexbuilder.Builder) Pattern {
	expr := b.String()
	return Pattern{
		Name:        name,
		Description: description,
		Expr:        expr,
		Weight:      b.Weight(),
		Digest:      digest.FromString(expr),
		RenderedAt:  c.clock.Now().UTC(),
	}
}
