// Package source reads the AST documents written by the external parser and
// groups them by namespace.
package source

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"

	"github.com/funvibe/classc/internal/ast"
	"github.com/funvibe/classc/internal/config"
	"github.com/funvibe/classc/internal/diagnostics"
)

// Load reads and decodes one document. A missing file is reported as I001,
// any other read or decoding failure as I002.
func Load(path string) (*ast.File, *diagnostics.DiagnosticError) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, diagnostics.NewFileError(diagnostics.ErrI001, path, nil)
		}
		return nil, diagnostics.NewFileError(diagnostics.ErrI002, path, err)
	}
	file, err := Decode(data, path)
	if err != nil {
		return nil, diagnostics.NewFileError(diagnostics.ErrI002, path, err)
	}
	return file, nil
}

// Matcher holds compiled exclude patterns. A path is excluded when a pattern
// matches its slash form or its base name.
type Matcher struct {
	globs []glob.Glob
}

func NewMatcher(patterns []string) (*Matcher, error) {
	m := &Matcher{globs: make([]glob.Glob, 0, len(patterns))}
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		m.globs = append(m.globs, g)
	}
	return m, nil
}

func (m *Matcher) Excluded(path string) bool {
	if m == nil {
		return false
	}
	slash := filepath.ToSlash(path)
	base := filepath.Base(path)
	for _, g := range m.globs {
		if g.Match(slash) || g.Match(base) {
			return true
		}
	}
	return false
}

// Discover lists the AST documents under roots, skipping excluded paths.
// A root may also name a single file, which is returned even without a
// known extension. The result is sorted and free of duplicates.
func Discover(roots []string, exclude []string) ([]string, error) {
	matcher, err := NewMatcher(exclude)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		path = filepath.Clean(path)
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("source root %s: %w", root, err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if matcher.Excluded(path) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.IsDir() && config.IsSourceFile(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", root, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

// GroupByNamespace buckets files by declared namespace. Inside a bucket files
// are ordered by path, which fixes the order symbol tables are built in.
func GroupByNamespace(files []*ast.File) map[string][]*ast.File {
	groups := make(map[string][]*ast.File)
	for _, f := range files {
		groups[f.Namespace] = append(groups[f.Namespace], f)
	}
	for _, group := range groups {
		sort.SliceStable(group, func(i, j int) bool { return group[i].Path < group[j].Path })
	}
	return groups
}
