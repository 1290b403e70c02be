// Package scan runs the per-file pipeline: load the document, collect its
// keys, ask for suggested fields, and locate images.
package scan

import (
	"context"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/lucas-albers-lz4/jsonimg/pkg/detection"
	"github.com/lucas-albers-lz4/jsonimg/pkg/document"
	"github.com/lucas-albers-lz4/jsonimg/pkg/keys"
	"github.com/lucas-albers-lz4/jsonimg/pkg/log"
	"github.com/lucas-albers-lz4/jsonimg/pkg/suggest"
)

// Result is the outcome for one file. Err is set when the file could not be
// loaded; the other fields are then empty.
type Result struct {
	File      *document.File         `json:"-" yaml:"-"`
	Path      string                 `json:"file" yaml:"file"`
	Keys      []string               `json:"keys,omitempty" yaml:"keys,omitempty"`
	Suggested []string               `json:"suggestedFields,omitempty" yaml:"suggestedFields,omitempty"`
	Images    []detection.FoundImage `json:"images" yaml:"images"`
	Err       error                  `json:"-" yaml:"-"`
}

// Scanner processes documents. The zero value is not usable; FS is required.
type Scanner struct {
	FS afero.Fs
	// Suggester is optional. Its errors are logged and treated as no
	// suggestions.
	Suggester suggest.Suggester
	// Locator defaults to detection.NewLocator().
	Locator *detection.Locator
	// Format forces the document format; the zero value means auto.
	Format document.Format
	// Parallel bounds concurrent files. Values below 2 scan sequentially.
	Parallel int
}

// ScanFile processes a single file.
func (s *Scanner) ScanFile(ctx context.Context, path string) Result {
	res := Result{Path: path}

	format := s.Format
	if format == "" {
		format = document.FormatAuto
	}
	f, err := document.LoadFormat(s.FS, path, format)
	if err != nil {
		log.Warn("Skipping document", "file", path, "error", err)
		res.Err = err
		return res
	}
	res.File = f
	res.Images, res.Keys, res.Suggested = s.analyze(ctx, f.Root, path)
	return res
}

// ScanRoot runs the pipeline on an already parsed tree.
func (s *Scanner) ScanRoot(ctx context.Context, root any) ([]detection.FoundImage, []string) {
	images, _, suggested := s.analyze(ctx, root, "")
	return images, suggested
}

func (s *Scanner) analyze(ctx context.Context, root any, path string) (images []detection.FoundImage, allKeys, suggested []string) {
	allKeys = keys.Sorted(root)

	if s.Suggester != nil && len(allKeys) > 0 {
		fields, err := s.Suggester.Suggest(ctx, allKeys)
		if err != nil {
			log.Warn("Field suggestion failed, continuing without suggestions", "file", path, "error", err)
		} else {
			suggested = fields
		}
	}

	locator := s.Locator
	if locator == nil {
		locator = detection.NewLocator()
	}
	images = locator.Find(root, suggested)
	log.Debug("Document scanned", "file", path, "keys", len(allKeys), "suggested", len(suggested), "images", len(images))
	return images, allKeys, suggested
}

// ScanFiles processes paths, concurrently when Parallel > 1. Results are in
// input order. Per-file failures are reported in Result.Err; the returned
// error is only set when ctx ends first.
func (s *Scanner) ScanFiles(ctx context.Context, paths []string) ([]Result, error) {
	results := make([]Result, len(paths))
	log.Debugf("Scanning %d files with up to %d workers", len(paths), max(s.Parallel, 1))

	if s.Parallel > 1 {
		g, gCtx := errgroup.WithContext(ctx)
		g.SetLimit(s.Parallel)
		for i, p := range paths {
			g.Go(func() error {
				if err := gCtx.Err(); err != nil {
					return err
				}
				results[i] = s.ScanFile(gCtx, p)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return results, err
		}
		return results, ctx.Err()
	}

	for i, p := range paths {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results[i] = s.ScanFile(ctx, p)
	}
	return results, nil
}
