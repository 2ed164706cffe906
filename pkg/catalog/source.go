package catalog

//go:generate mockgen -source=source.go -destination=mocks/mock_source.go -package=mocks

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/wuxler/rxb/pkg/recipe"
	"github.com/wuxler/rxb/pkg/util/xcontext"
	"github.com/wuxler/rxb/pkg/xlog"
)

// Source provides recipes to load into a Catalog.
type Source interface {
	// Recipes returns all the recipes of the source.
	Recipes(ctx context.Context) ([]recipe.Recipe, error)
}

// NewFileSource returns a Source reading recipe files from fsys. A path may be
// a file or a directory, in which case its *.yaml, *.yml and *.json files are
// read in lexical order.
func NewFileSource(fsys afero.Fs, paths ...string) *FileSource {
	return &FileSource{Fs: fsys, Paths: paths}
}

// FileSource reads recipes from files.
type FileSource struct {
	Fs    afero.Fs
	Paths []string
}

// Recipes implements Source.
func (s *FileSource) Recipes(ctx context.Context) ([]recipe.Recipe, error) {
	var recipes []recipe.Recipe
	for _, path := range s.Paths {
		files, err := s.expand(path)
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			if err := xcontext.Check(ctx, "load recipes from %s", file); err != nil {
				return nil, err
			}
			doc, err := recipe.LoadFile(s.Fs, file)
			if err != nil {
				return nil, err
			}
			xlog.C(ctx).Debug("recipe file loaded", "path", file, "recipes", len(doc.Recipes))
			recipes = append(recipes, doc.Recipes...)
		}
	}
	return recipes, nil
}

func (s *FileSource) expand(path string) ([]string, error) {
	info, err := s.Fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("unable to stat recipe path %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	entries, err := afero.ReadDir(s.Fs, path)
	if err != nil {
		return nil, fmt.Errorf("unable to read recipe directory %s: %w", path, err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".yaml", ".yml", ".json":
			files = append(files, filepath.Join(path, entry.Name()))
		}
	}
	return files, nil
}

// StaticSource is a Source serving a fixed list of recipes.
type StaticSource []recipe.Recipe

// Recipes implements Source.
func (s StaticSource) Recipes(_ context.Context) ([]recipe.Recipe, error) {
	return s, nil
}
