package etl

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DiscoverFiles returns the absolute paths of all files below root whose
// base name matches pattern, in lexical order. Names starting with a dot only
// match a pattern that starts with one. Symlinks to files are included;
// symlinked directories are neither matched nor descended into.
func DiscoverFiles(root, pattern string) ([]string, error) {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("checking pattern %q: %w", pattern, err)
	}

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !matchName(pattern, d.Name()) {
			return nil
		}
		switch mode := d.Type(); {
		case mode&fs.ModeSymlink != 0:
			// Broken links are kept so the loader reports them.
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				return nil
			}
		case !mode.IsRegular():
			return nil
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		paths = append(paths, abs)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return paths, nil
}

func matchName(pattern, name string) bool {
	if strings.HasPrefix(name, ".") && !strings.HasPrefix(pattern, ".") {
		return false
	}
	ok, _ := filepath.Match(pattern, name)
	return ok
}

// ProcessAll loads each path in its own transaction, committing after every
// file. The first failure rolls back that file and stops the run; files
// already committed stay loaded.
func (p *Pipeline) ProcessAll(ctx context.Context, paths []string, loader Loader) (*Summary, error) {
	summary := &Summary{}
	total := len(paths)

	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		var result LoadResult
		err := p.tx.InTx(ctx, func(store Store) error {
			var err error
			result, err = loader(ctx, store, path)
			return err
		})
		if err != nil {
			return summary, fmt.Errorf("processing %s: %w", path, err)
		}

		summary.Add(result)
		p.log.WithField("path", path).Infof("%d/%d files processed", i+1, total)
	}
	return summary, nil
}
