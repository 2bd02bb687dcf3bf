package localdump

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/adamwolf/export-help-scout-docs/helpscout"
	"github.com/rs/zerolog"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"golang.org/x/sync/errgroup"
)

// Exporter dumps every article of one Help Scout collection into StorePath,
// one JSON file per article.
type Exporter struct {
	API       *helpscout.API
	StorePath string

	// Workers is the number of concurrent article fetches.  Values below
	// 1 mean sequential.  Filenames are assigned before fetching starts,
	// so the on-disk result doesn't depend on this.
	Workers int

	// Progress draws an mpb progress bar on the terminal.
	Progress bool

	Logger zerolog.Logger
}

// Failure records one article that couldn't be exported.
type Failure struct {
	ArticleID string
	Err       error
}

// Result is the outcome of an export run.  Partial success is a first-class
// outcome: Written counts the files on disk, Failures lists what's missing.
type Result struct {
	Written  int
	Failures []Failure
}

// allow retries and the politeness delay to play out per article
const articleFetchTimeout = 60 * time.Second

// ExportCollection downloads every article in the collection and writes each
// one under StorePath.  A failure on one article is recorded and the rest
// keep going; only failures that invalidate the whole run (bad input, an
// unusable destination, auth rejection, pagination gone wrong) abort it.
func (exporter *Exporter) ExportCollection(ctx context.Context, collectionID string) (Result, error) {
	if strings.TrimSpace(collectionID) == "" {
		return Result{}, ErrInvalidInput
	}

	if err := exporter.createStore(); err != nil {
		return Result{}, err
	}

	exporter.Logger.Info().
		Str("collection", collectionID).
		Msg("listing articles in collection")

	refs, err := helpscout.Collect(exporter.API.ListArticles(ctx, collectionID))
	if err != nil {
		return Result{}, fmt.Errorf("localdump: couldn't list articles in collection %s: %w", collectionID, err)
	}

	exporter.Logger.Info().
		Str("collection", collectionID).
		Int("articles", len(refs)).
		Msg("found articles")

	names := assignFilenames(exporter.StorePath, refs)

	var bar *mpb.Bar
	var progress *mpb.Progress
	if exporter.Progress {
		progress = mpb.New(mpb.WithWidth(64))
		bar = progress.AddBar(int64(len(refs)),
			mpb.PrependDecorators(
				decor.Name("articles:", decor.WC{C: decor.DindentRight | decor.DextraSpace}),
			),
			mpb.AppendDecorators(
				decor.CountersNoUnit("(%d/%d) "),
				decor.NewPercentage("%d"),
			),
		)
	}

	workers := exporter.Workers
	if workers < 1 {
		workers = 1
	}

	failed := make([]error, len(refs))

	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(workers)

	for i, ref := range refs {
		i, ref := i, ref
		grp.Go(func() error {
			err := exporter.exportArticle(gctx, ref, names[ref.ID])
			if err != nil {
				// The run was aborted; don't book this against
				// the article.
				if gctx.Err() != nil {
					return gctx.Err()
				}
				// A rejected credential invalidates the whole
				// run, not just this article.
				if helpscout.KindOf(err) == helpscout.KindAuth {
					return err
				}
				failed[i] = err
				exporter.Logger.Warn().
					Str("article", ref.ID).
					Err(err).
					Msg("article export failed")
			}
			if bar != nil {
				bar.Increment()
			}
			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return Result{}, fmt.Errorf("localdump: export aborted: %w", err)
	}
	if progress != nil {
		progress.Wait()
	}

	result := Result{}
	for i, err := range failed {
		if err != nil {
			result.Failures = append(result.Failures, Failure{ArticleID: refs[i].ID, Err: err})
		} else {
			result.Written++
		}
	}

	exporter.Logger.Info().
		Str("collection", collectionID).
		Int("written", result.Written).
		Int("failed", len(result.Failures)).
		Str("store", exporter.StorePath).
		Msg("export finished")

	return result, nil
}

func (exporter *Exporter) exportArticle(ctx context.Context, ref helpscout.ArticleRef, filename string) error {
	ctx, cancel := context.WithTimeout(ctx, articleFetchTimeout)
	defer cancel()

	article, err := exporter.API.GetArticle(ctx, ref.ID)
	if err != nil {
		return fmt.Errorf("localdump: couldn't fetch article %s: %w", ref.ID, err)
	}

	abs, err := exporter.WriteArticleIntoLocal(article, filename)
	if err != nil {
		return err
	}

	exporter.Logger.Debug().
		Str("article", ref.ID).
		Str("path", abs).
		Msg("wrote article")

	return nil
}

// createStore sets up the destination directory before anything is fetched.
// A path that exists as a non-directory, or that we may not create, sinks
// the run before any file is written.
func (exporter *Exporter) createStore() error {
	if stat, err := os.Stat(exporter.StorePath); err == nil && !stat.IsDir() {
		return fmt.Errorf("%w: %s exists and is not a directory", ErrDirectoryCreate, exporter.StorePath)
	}

	if err := os.MkdirAll(exporter.StorePath, 0750); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDirectoryCreate, exporter.StorePath, err)
	}

	return nil
}
