package options

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"

	"github.com/wuxler/rxb/pkg/catalog"
	"github.com/wuxler/rxb/pkg/patterns"
	"github.com/wuxler/rxb/pkg/util/homedir"
)

// CatalogFlagCategory is the category of the catalog flags.
const CatalogFlagCategory = "[Catalog]"

// NewCatalogOptions returns a *CatalogOptions reading the OS filesystem.
func NewCatalogOptions() *CatalogOptions {
	return &CatalogOptions{
		Builtins: true,
		Fs:       afero.NewOsFs(),
	}
}

// CatalogOptions selects the patterns loaded into the catalog.
type CatalogOptions struct {
	// Recipes are recipe files or directories, "~" is expanded.
	Recipes []string
	// Builtins registers the patterns of the patterns package.
	Builtins bool
	// Fs is the filesystem recipes are read from.
	Fs afero.Fs `json:"-" yaml:"-"`
}

// Flags returns the []cli.Flag related to current options.
func (o *CatalogOptions) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "recipe",
			Aliases:     []string{"r"},
			Usage:       "recipe `PATH` to load, a YAML or JSON file or a directory of them",
			Sources:     cli.EnvVars("RXB_RECIPES"),
			Value:       o.Recipes,
			Destination: &o.Recipes,
			Category:    CatalogFlagCategory,
		},
		&cli.BoolFlag{
			Name:        "builtins",
			Usage:       "register the builtin oci.* patterns",
			Sources:     cli.EnvVars("RXB_BUILTINS"),
			Value:       o.Builtins,
			Destination: &o.Builtins,
			Category:    CatalogFlagCategory,
		},
	}
}

// NewCatalog returns a catalog loaded with the builtins and recipes selected.
func (o *CatalogOptions) NewCatalog(ctx context.Context, opts ...catalog.Option) (*catalog.Catalog, error) {
	cat := catalog.New(opts...)
	if o.Builtins {
		for _, b := range patterns.Builtins() {
			if err := cat.RegisterBuilder(b.Name, b.Description, b.Builder); err != nil {
				return nil, fmt.Errorf("unable to register builtin pattern: %w", err)
			}
		}
	}
	if len(o.Recipes) > 0 {
		paths, err := homedir.ExpandAll(o.Recipes)
		if err != nil {
			return nil, err
		}
		if err := cat.Load(ctx, catalog.NewFileSource(o.Fs, paths...)); err != nil {
			return nil, err
		}
	}
	return cat, nil
}
