/*
Copyright © 2024 adamwolf
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/dnaeon/go-vcr.v3/cassette"
	"gopkg.in/dnaeon/go-vcr.v3/recorder"

	"github.com/adamwolf/export-help-scout-docs/localdump"
)

var exportUsage = strings.TrimSpace(`
Export every article of a Help Scout Docs collection as JSON files.

Without --collection, prints the collections your token can see so you can
pick one.
`)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a collection's articles to a local directory",
	Long:  exportUsage,
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		return runExport(ctx)
	},
}

var (
	Collection string
	Output     string
	Workers    int
	WithVCR    bool
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&Collection, "collection", "", "Help Scout collection ID")
	exportCmd.Flags().StringVar(&Output, "output", "", "directory to save articles in (default: ./helpscout-export-<timestamp>)")
	exportCmd.Flags().IntVar(&Workers, "workers", 1, "number of concurrent article fetches")
	exportCmd.Flags().BoolVar(&WithVCR, "with-vcr", false, "use go-vcr to cache responses")
}

func runExport(ctx context.Context) error {
	api, err := newAPI()
	if err != nil {
		return err
	}

	if WithVCR {
		// set up VCR recordings.
		opts := &recorder.Options{
			CassetteName:       "fixtures/helpscout-stuff",
			Mode:               recorder.ModeReplayWithNewEpisodes,
			SkipRequestLatency: true,
			RealTransport:      http.DefaultTransport,
		}
		r, err := recorder.NewWithOptions(opts)
		if err != nil {
			return fmt.Errorf("helpscout-dump: couldn't set up go-vcr recording: %w", err)
		}

		defer r.Stop() // Make sure recorder is stopped once done with it

		// Add a hook which removes Authorization headers from all requests
		hook := func(i *cassette.Interaction) error {
			delete(i.Request.Headers, "Authorization")
			return nil
		}
		r.AddHook(hook, recorder.AfterCaptureHook)
		r.SetReplayableInteractions(true)

		api.Client = r.GetDefaultClient()
	}

	if Collection == "" {
		log.Warn().Msg("no collection specified")
		if err := printCollections(ctx, api); err != nil {
			return err
		}
		return fmt.Errorf("helpscout-dump: please specify a collection ID with --collection")
	}

	output := Output
	if output == "" {
		output = fmt.Sprintf("helpscout-export-%s", time.Now().Format("2006-01-02T15-04-05"))
		log.Debug().Str("output", output).Msg("no output directory specified, using default")
	}

	storePath, err := homedir.Expand(output)
	if err != nil {
		return fmt.Errorf("helpscout-dump: couldn't expand homedir: %w", err)
	}

	exporter := localdump.Exporter{
		API:       api,
		StorePath: storePath,
		Workers:   Workers,
		Progress:  true,
		Logger:    log.Logger,
	}

	result, err := exporter.ExportCollection(ctx, Collection)
	if err != nil {
		return fmt.Errorf("helpscout-dump: export failed: %w", err)
	}

	fmt.Printf("Exported %d articles to %s.\n", result.Written, storePath)

	if len(result.Failures) > 0 {
		fmt.Printf("%d articles failed:\n", len(result.Failures))
		for _, failure := range result.Failures {
			fmt.Printf("  - %s: %v\n", failure.ArticleID, failure.Err)
		}
		return fmt.Errorf("helpscout-dump: %d of %d articles failed to export", len(result.Failures), result.Written+len(result.Failures))
	}

	return nil
}
