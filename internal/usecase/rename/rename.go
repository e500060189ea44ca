// Package rename renumbers files of one extension inside a folder.
package rename

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	ErrDirNotExist  = errors.New("directory does not exist")
	ErrTargetExists = errors.New("target file already exists")
)

type Options struct {
	// Ext is matched case-insensitively and also used for the new names.
	Ext    string
	Prefix string
	DryRun bool
}

type Rename struct {
	From string
	To   string
}

type Result struct {
	Renames []Rename
	DryRun  bool
}

func (r Result) Count() int { return len(r.Renames) }

func (o Options) withDefaults() Options {
	if o.Ext == "" {
		o.Ext = ".jpg"
	}
	if !strings.HasPrefix(o.Ext, ".") {
		o.Ext = "." + o.Ext
	}
	o.Ext = strings.ToLower(o.Ext)
	if o.Prefix == "" {
		o.Prefix = "image_"
	}
	return o
}

// BatchRename renames every regular file in dir whose name ends in opts.Ext
// to <prefix><n><ext>, numbering from zero in sorted name order. Nothing is
// renamed if a target name is held by a file outside the matched set.
func BatchRename(dir string, opts Options) (Result, error) {
	opts = opts.withDefaults()

	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Result{}, fmt.Errorf("%w: %s", ErrDirNotExist, dir)
		}
		return Result{}, err
	}
	if !info.IsDir() {
		return Result{}, fmt.Errorf("%w: %s is not a directory", ErrDirNotExist, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return Result{}, fmt.Errorf("could not read %s: %w", dir, err)
	}

	existing := make(map[string]bool, len(entries))
	matched := make([]string, 0, len(entries))
	for _, e := range entries {
		existing[e.Name()] = true
		if !e.Type().IsRegular() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(e.Name()), opts.Ext) {
			matched = append(matched, e.Name())
		}
	}
	sort.Strings(matched)

	inSet := make(map[string]bool, len(matched))
	for _, name := range matched {
		inSet[name] = true
	}

	plan := make([]Rename, 0, len(matched))
	for i, name := range matched {
		target := fmt.Sprintf("%s%d%s", opts.Prefix, i, opts.Ext)
		if existing[target] && !inSet[target] {
			return Result{}, fmt.Errorf("%w: %s", ErrTargetExists, target)
		}
		plan = append(plan, Rename{From: name, To: target})
	}

	res := Result{Renames: plan, DryRun: opts.DryRun}
	if opts.DryRun {
		return res, nil
	}
	if err := apply(dir, plan); err != nil {
		return Result{}, err
	}
	return res, nil
}

// renameFile is swapped in tests to simulate a failing filesystem.
var renameFile = os.Rename

// apply moves every file into a fresh staging directory inside dir, then out
// to its target name. Staged names never collide with anything in dir, so a
// plan that permutes existing target names cannot overwrite a file. On
// failure every moved file is put back under its original name.
func apply(dir string, plan []Rename) (err error) {
	staging, err := os.MkdirTemp(dir, ".rename-*")
	if err != nil {
		return fmt.Errorf("could not create staging directory in %s: %w", dir, err)
	}

	staged := make([]bool, len(plan))
	placed := make([]bool, len(plan))
	stagedPath := func(i int) string { return filepath.Join(staging, fmt.Sprintf("%d", i)) }

	defer func() {
		if err != nil {
			rollback(dir, plan, staged, placed, stagedPath)
		}
		if rmErr := os.Remove(staging); rmErr != nil && err == nil {
			err = fmt.Errorf("could not remove staging directory %s: %w", staging, rmErr)
		}
	}()

	for i, r := range plan {
		if r.From == r.To {
			continue
		}
		if err := renameFile(filepath.Join(dir, r.From), stagedPath(i)); err != nil {
			return fmt.Errorf("could not move %s aside: %w", r.From, err)
		}
		staged[i] = true
	}
	for i, r := range plan {
		if !staged[i] {
			continue
		}
		if err := renameFile(stagedPath(i), filepath.Join(dir, r.To)); err != nil {
			return fmt.Errorf("could not rename %s to %s: %w", r.From, r.To, err)
		}
		placed[i] = true
	}
	return nil
}

// rollback first pulls placed files back into staging, which frees every name
// of the plan, then restores each staged file to its original name.
func rollback(dir string, plan []Rename, staged, placed []bool, stagedPath func(int) string) {
	for i, r := range plan {
		if placed[i] && renameFile(filepath.Join(dir, r.To), stagedPath(i)) == nil {
			placed[i] = false
		}
	}
	for i, r := range plan {
		if staged[i] && !placed[i] {
			_ = renameFile(stagedPath(i), filepath.Join(dir, r.From))
		}
	}
}
