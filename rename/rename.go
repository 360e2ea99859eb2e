// Package rename renames the source files listed in a compilation database from one suffix to
// another, e.g. from ".c" to ".cpp".
//
// Entries are processed one at a time in manifest order. A missing file is reported and skipped;
// it never stops the pass.
package rename

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/kxue43/compdb-rename/compdb"
)

type (
	// Logger is satisfied by *logrus.Logger.
	Logger interface {
		Debugf(string, ...any)
		Infof(string, ...any)
		Warnf(string, ...any)
		Errorf(string, ...any)
	}

	Renamer struct {
		logger Logger
		cfg    Config
	}
)

var (
	ErrPathNotFound = errors.New("path not found")
	ErrTargetExists = errors.New("rename target already exists")
	ErrRenameFailed = errors.New("rename failed")
)

func New(cfg Config, logger Logger) *Renamer {
	return &Renamer{cfg: cfg, logger: logger}
}

// Run loads the manifest named by cfg and renames its entries.
// Manifest errors are returned before any file is touched.
func Run(ctx context.Context, cfg Config, logger Logger) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	m, err := compdb.Load(cfg.Manifest, cfg.Strict)
	if err != nil {
		return Result{}, err
	}

	return New(cfg, logger).Run(ctx, m)
}

// Run processes every entry of m in order and returns one outcome per processed entry.
// The returned error is non-nil only when the pass stopped early, either because ctx is done or
// because FailFast is set and an entry failed. Per-entry errors are available from [Result.Err].
func (r *Renamer) Run(ctx context.Context, m compdb.Manifest) (result Result, err error) {
	root, err := ResolvePath(r.cfg.Root, ".")
	if err != nil {
		return result, err
	}

	done := ctx.Done()

	for _, entry := range m {
		select {
		case <-done:
			return result, fmt.Errorf("stopped before entry %d: %w", entry.Index, context.Cause(ctx))
		default:
		}

		outcome := r.handleOne(root, entry)

		result.add(outcome)

		if outcome.Status == Failed && r.cfg.FailFast {
			return result, fmt.Errorf("stopped at entry %d: %w", entry.Index, outcome.Err)
		}
	}

	return result, nil
}

func (r *Renamer) handleOne(root string, entry compdb.Entry) (o Outcome) {
	var err error

	o = Outcome{Index: entry.Index, File: entry.File}

	if entry.Err != nil {
		r.logger.Errorf("%s, skip rename", entry.Err)

		return o.with(Invalid, entry.Err)
	}

	o.Path, err = ResolvePath(root, entry.File)
	if err != nil {
		err = fmt.Errorf("%w: entry %d: %w", compdb.ErrEntryInvalid, entry.Index, err)

		r.logger.Errorf("%s, skip rename", err)

		return o.with(Invalid, err)
	}

	if o.Path == root {
		err = fmt.Errorf("%w: entry %d: %q names the root directory", compdb.ErrEntryInvalid, entry.Index, entry.File)

		r.logger.Errorf("%s, skip rename", err)

		return o.with(Invalid, err)
	}

	if r.cfg.excluded(root, o.Path) {
		r.logger.Debugf("%s is excluded, skip rename", o.Path)

		return o.with(Excluded, nil)
	}

	info, err := os.Stat(o.Path)
	if errors.Is(err, fs.ErrNotExist) {
		r.logger.Warnf("%s doesn't exist, skip rename", o.Path)

		return o.with(Skipped, fmt.Errorf("%w: %s", ErrPathNotFound, o.Path))
	} else if err != nil {
		err = fmt.Errorf("%w: failed to access %q: %w", ErrRenameFailed, o.Path, err)

		r.logger.Errorf("%s", err)

		return o.with(Failed, err)
	}

	if info.IsDir() {
		err = fmt.Errorf("%w: entry %d: %s is a directory", compdb.ErrEntryInvalid, entry.Index, o.Path)

		r.logger.Errorf("%s, skip rename", err)

		return o.with(Invalid, err)
	}

	o.Target = TargetPath(o.Path, r.cfg.From, r.cfg.To)

	// os.Rename silently replaces an existing target on most platforms
	if _, err = os.Lstat(o.Target); err == nil {
		err = fmt.Errorf("%w: refusing to rename %q to %q", ErrTargetExists, o.Path, o.Target)

		r.logger.Errorf("%s", err)

		return o.with(Failed, err)
	} else if !errors.Is(err, fs.ErrNotExist) {
		err = fmt.Errorf("%w: failed to access %q: %w", ErrRenameFailed, o.Target, err)

		r.logger.Errorf("%s", err)

		return o.with(Failed, err)
	}

	if r.cfg.DryRun {
		r.logger.Infof("would rename %s to %s", o.Path, o.Target)

		return o.with(Planned, nil)
	}

	if err = os.Rename(o.Path, o.Target); err != nil {
		err = fmt.Errorf("%w: %w", ErrRenameFailed, err)

		r.logger.Errorf("%s", err)

		return o.with(Failed, err)
	}

	r.logger.Infof("renamed %s to %s", o.Path, o.Target)

	return o.with(Renamed, nil)
}

func (o Outcome) with(status Status, err error) Outcome {
	o.Status = status
	o.Err = err

	return o
}
