/*
Copyright © 2024 adamwolf
*/
package main

import (
	"github.com/spf13/cobra"
)

// configCmd represents the config command namespace
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Commands for dealing with helpscout-dump's configuration",
}

func init() {
	rootCmd.AddCommand(configCmd)
}
