/*
Copyright © 2024 adamwolf
*/
package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/adamwolf/export-help-scout-docs/helpscout"
)

var listCollectionsUsage = strings.TrimSpace(`
If you want to find out which collections your Docs site has, use this command.
`)

var listCollectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "Print list of collections",
	Long:  listCollectionsUsage,
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		api, err := newAPI()
		if err != nil {
			return err
		}

		return printCollections(ctx, api)
	},
}

func init() {
	listCmd.AddCommand(listCollectionsCmd)
}

// printCollections lists the collections the token can see, in the order the
// API returns them.
func printCollections(ctx context.Context, api *helpscout.API) error {
	log.Info().Msg("listing Docs collections")

	collections, err := api.ListCollections(ctx)
	if err != nil {
		return fmt.Errorf("helpscout-dump: couldn't list collections: %w", err)
	}

	if len(collections) == 0 {
		return fmt.Errorf("helpscout-dump: no collections found for token")
	}

	log.Info().Int("collections", len(collections)).Msg("found collections")

	fmt.Printf("collections:\n")
	for _, collection := range collections {
		fmt.Printf("  - %s: %s (%d articles)\n", collection.ID, collection.Name, collection.ArticleCount)
	}

	return nil
}
