/*
Copyright © 2024 adamwolf
*/

package main

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"time"

	"github.com/fatih/structs"
	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/adamwolf/export-help-scout-docs/helpscout"
)

var (
	// Store the result of binding cobra flags
	Config string
	Debug  bool

	Token        string
	BaseURL      string
	RequestDelay time.Duration

	ParsedConfig YamlConfig
)

// Build the cobra command that handles our command line tool.
var rootCmd = &cobra.Command{
	Use:   "helpscout-dump",
	Short: "Export a Help Scout Docs collection to local JSON files",
	Long: `
Back up your Help Scout Docs knowledge base!  This tool walks a collection via
the Docs API and saves every article as a JSON file in a local directory.
`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setUpLogging()

		// You can bind cobra and viper in a few locations, but PersistentPreRunE on the root command works well
		if err := initializeConfig(cmd); err != nil {
			return fmt.Errorf("helpscout-dump: failed to initialise config: %w", err)
		}

		return nil
	},
}

func init() {
	// Define cobra flags, the default value has the lowest (least significant) precedence
	rootCmd.PersistentFlags().StringVar(&Config, "config", "", "config file location (default: ~/.config/helpscout-dump.yaml, respects HELPSCOUT_DUMP_CONFIG)")
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "display debug output")
	rootCmd.PersistentFlags().StringVar(&Token, "token", "", "Help Scout Docs API token (falls back to HELPSCOUTAUTH)")
	rootCmd.PersistentFlags().StringVar(&BaseURL, "base-url", helpscout.DefaultBaseURL, "Docs API base URL")
	rootCmd.PersistentFlags().DurationVar(&RequestDelay, "request-delay", 1*time.Second, "pause between API requests")
}

func setUpLogging() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

// newAPI builds the one shared API client.  Commands that talk to Help Scout
// call this after config binding has settled the flags.
func newAPI() (*helpscout.API, error) {
	token := Token
	if token == "" {
		token = os.Getenv("HELPSCOUTAUTH")
	}

	api, err := helpscout.NewAPI(BaseURL, token)
	if err != nil {
		return nil, fmt.Errorf("helpscout-dump: couldn't instantiate Docs API: %w", err)
	}

	api.RequestDelay = RequestDelay
	api.Logger = log.Logger

	return api, nil
}

func initializeConfig(cmd *cobra.Command) error {
	explicit := Config != ""
	if Config == "" {
		// Did the user provide an ENV?
		envConfig := os.Getenv("HELPSCOUT_DUMP_CONFIG")
		if envConfig != "" {
			Config = envConfig
			explicit = true
		} else {
			// As fallback, search for config in home XDG-ish directory
			Config = "~/.config/helpscout-dump.yaml"
		}
	}
	config, err := homedir.Expand(Config)
	if err != nil {
		return fmt.Errorf("helpscout-dump: unable to expand homedir: %w", err)
	}
	Config = config

	if _, err := os.Stat(Config); errors.Is(err, os.ErrNotExist) {
		if explicit {
			return fmt.Errorf("helpscout-dump: specified config file does not exist: %w", err)
		}
		// No config file is fine; flags and environment cover everything.
		log.Debug().Str("config", Config).Msg("no config file found, using flags only")
		return nil
	}

	yamlFile, err := os.ReadFile(Config)
	if err != nil {
		return fmt.Errorf("helpscout-dump: error reading config file: %w", err)
	}

	// I'd like to bark if a user sets a flag we don't recognise:
	if err := yaml.UnmarshalStrict(yamlFile, &ParsedConfig); err != nil {
		return fmt.Errorf("helpscout-dump: issue parsing config file: %w", err)
	}

	// Bind the current command's flags to the parsed config
	if err := bindFlags(cmd, ParsedConfig); err != nil {
		return fmt.Errorf("helpscout-dump: failed to bind flags: %w", err)
	}

	return nil
}

type YamlConfig struct {
	WithVCR *bool `yaml:"with-vcr"`

	Token        string `yaml:"token"`
	BaseURL      string `yaml:"base-url"`
	Collection   string `yaml:"collection"`
	Output       string `yaml:"output"`
	RequestDelay string `yaml:"request-delay"`
	Workers      int    `yaml:"workers"`
}

// Bind each cobra flag to its associated config file entry
func bindFlags(cmd *cobra.Command, v YamlConfig) error {
	for _, field := range structs.Fields(v) {
		key := field.Tag("yaml")
		if key == "" {
			return fmt.Errorf("helpscout-dump: could not retrieve struct tag 'yaml'")
		}
		if flag := cmd.Flag(key); flag == nil {
			// hmm... the flag is unknown.  but that can legitimately happen if you're running
			// e.g. `list collections` which has no `output` flag but your YAML file does
			// define that flag...
			continue
		}
		if !cmd.Flags().Changed(key) {
			switch field.Kind() {
			case reflect.Ptr:
				// err, this is crappy, but i know YamlConfig only uses pointers for bools.....
				b, ok := field.Value().(*bool)
				if !ok {
					return fmt.Errorf("helpscout-dump: found unrecognised field: %+v", field)
				}
				if b != nil {
					cmd.Flags().Set(key, fmt.Sprintf("%v", *b))
				}

			case reflect.String:
				s, ok := field.Value().(string)
				if !ok {
					return fmt.Errorf("helpscout-dump: found unrecognised field: %+v", field)
				}
				if s != "" {
					cmd.Flags().Set(key, s)
				}

			case reflect.Int:
				n, ok := field.Value().(int)
				if !ok {
					return fmt.Errorf("helpscout-dump: found unrecognised field: %+v", field)
				}
				if n != 0 {
					cmd.Flags().Set(key, fmt.Sprintf("%d", n))
				}

			default:
				return fmt.Errorf("helpscout-dump: found unrecognised field: %+v", field)
			}
		}
	}

	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	// Flags are only available after (or inside, presumably) the .Execute() thing.
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("helpscout-dump: execution error: %w", err)
	}

	return nil
}
