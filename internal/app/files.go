package app

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
)

// ExpandArgs turns command line arguments into file paths. Arguments
// containing glob metacharacters, including "**", are matched against fs;
// others are taken literally. Matches keep argument order and are sorted
// within one pattern. A pattern matching nothing is an error, reported
// together with every other failing pattern.
func ExpandArgs(fs afero.Fs, args []string) ([]string, error) {
	var (
		out  []string
		seen = make(map[string]bool)
		errs *multierror.Error
	)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, arg := range args {
		if !hasMeta(arg) {
			add(arg)
			continue
		}
		matches, err := glob(fs, arg)
		if err != nil {
			errs = multierror.Append(errs, NewOperationError("expand", arg, err))
			continue
		}
		if len(matches) == 0 {
			errs = multierror.Append(errs, NewOperationError("expand", arg, ErrNoDocuments))
			continue
		}
		for _, m := range matches {
			add(m)
		}
	}
	return out, errs.ErrorOrNil()
}

func hasMeta(p string) bool {
	return strings.ContainsAny(p, "*?[{")
}

func glob(fs afero.Fs, arg string) ([]string, error) {
	base, pattern := doublestar.SplitPattern(filepath.ToSlash(arg))
	if !doublestar.ValidatePattern(pattern) {
		return nil, doublestar.ErrBadPattern
	}
	root := fs
	if base != "." {
		root = afero.NewBasePathFs(fs, filepath.FromSlash(base))
	}
	fsys := afero.NewIOFS(root)
	matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	for i, m := range matches {
		matches[i] = filepath.Join(filepath.FromSlash(base), filepath.FromSlash(m))
	}
	return matches, nil
}
