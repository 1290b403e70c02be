// Package main implements the command-line interface for jsonimg, a tool that
// finds image references (URLs and base64 data URIs) inside JSON and YAML
// documents.
//
// The main CLI commands are:
//   - inspect: List the images found in one or more documents
//   - keys: List every object key of a document
//   - parent: Print the object or array holding the value at a path
//   - search: Find text matches in the pretty-printed document
//
// Each command has various flags for configuration. See the help output for details.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lucas-albers-lz4/jsonimg/pkg/debug"
	"github.com/lucas-albers-lz4/jsonimg/pkg/detection"
	"github.com/lucas-albers-lz4/jsonimg/pkg/document"
	"github.com/lucas-albers-lz4/jsonimg/pkg/exitcodes"
	"github.com/lucas-albers-lz4/jsonimg/pkg/fileutil"
	log "github.com/lucas-albers-lz4/jsonimg/pkg/log"
	"github.com/lucas-albers-lz4/jsonimg/pkg/scan"
	"github.com/lucas-albers-lz4/jsonimg/pkg/suggest"
	"github.com/lucas-albers-lz4/jsonimg/pkg/version"
)

// Global flag variables
var (
	cfgFile      string
	debugEnabled bool
	logLevel     string
	inputFormat  string
)

// AppFs defines the filesystem interface to use, allows mocking in tests.
var AppFs = afero.NewOsFs()

// SetFs replaces the current filesystem with the provided one and returns a function to restore it.
// This is primarily used for testing.
func SetFs(newFs afero.Fs) func() {
	oldFs := AppFs
	AppFs = newFs
	return func() { AppFs = oldFs }
}

// config holds the settings resolved for the running command: flags first,
// then JSONIMG_* environment variables, then the config file, then defaults.
var config = viper.New()

// flagBindings maps command flags onto config keys. Commands that do not
// define a flag simply leave the key to the other sources.
var flagBindings = map[string]string{
	"output-format":    configKeyOutputFormat,
	"suggest-provider": configKeyProvider,
	"model":            configKeyModel,
	"hints-file":       configKeyHintsFile,
	"suggest-field":    configKeyFields,
	"skip-key":         configKeySkipKeys,
	"parallel":         configKeyParallel,
}

// newRootCmd builds the command tree. A fresh tree per call keeps flag state
// from leaking between invocations in tests.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jsonimg",
		Short: "Find image references in JSON and YAML documents",
		Long: `jsonimg walks JSON and YAML documents and reports every string value that
refers to an image: absolute http(s) URLs under image-like keys, base64 data
URIs, and fields a model-backed suggester classifies as images.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			setupLogging()
			if err := initConfig(cmd); err != nil {
				return err
			}
			return version.CheckRequired(config.GetString(configKeyRequiredVersion))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.jsonimg.yaml)")
	cmd.PersistentFlags().BoolVar(&debugEnabled, "debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "set log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&inputFormat, "input-format", string(document.FormatAuto), "document format (auto, json, yaml)")

	cmd.AddCommand(newInspectCmd())
	cmd.AddCommand(newKeysCmd())
	cmd.AddCommand(newParentCmd())
	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// setupLogging applies --debug and --log-level. --debug wins.
func setupLogging() {
	level := log.LevelInfo
	if debugEnabled {
		level = log.LevelDebug
	} else if logLevel != "" {
		parsed, err := log.ParseLevel(logLevel)
		if err != nil {
			log.Warnf("Invalid log level specified: '%s'. Using default: %s. Error: %v", logLevel, level, err)
		} else {
			level = parsed
		}
	}
	log.SetLevel(level)

	if debugEnabled {
		debug.Enabled = true
		debug.Printf("--debug flag enabled debug logging.")
	} else {
		debug.InitFromEnv()
	}
	debug.Printf("Effective log level set to %s", level)
}

// initConfig resets config and reads the config file, environment and the
// flags of cmd into it.
func initConfig(cmd *cobra.Command) error {
	config = viper.New()
	config.SetFs(AppFs)

	config.SetDefault(configKeyProvider, suggest.ProviderNone)
	config.SetDefault(configKeyModel, suggest.DefaultModel)
	config.SetDefault(configKeyCacheSize, suggest.DefaultCacheSize)
	config.SetDefault(configKeyMaxRetries, suggest.DefaultMaxRetries)
	config.SetDefault(configKeyRetryDelay, suggest.DefaultRetryDelay)
	config.SetDefault(configKeyOutputFormat, OutputFormatYAML)
	config.SetDefault(configKeyParallel, defaultParallel)

	config.SetEnvPrefix(envPrefix)
	config.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	config.AutomaticEnv()
	if err := config.BindEnv(configKeyAPIKey, envPrefix+"_SUGGEST_API_KEY", envGeminiAPIKey, envGoogleAPIKey); err != nil {
		return &exitcodes.ExitCodeError{
			Code: exitcodes.ExitInputConfigurationError,
			Err:  fmt.Errorf("failed to bind api key environment: %w", err),
		}
	}

	for name, key := range flagBindings {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		if err := config.BindPFlag(key, flag); err != nil {
			return &exitcodes.ExitCodeError{
				Code: exitcodes.ExitInternalError,
				Err:  fmt.Errorf("failed to bind flag %s: %w", name, err),
			}
		}
	}

	if cfgFile != "" {
		exists, err := fileutil.FileExists(AppFs, cfgFile)
		if err != nil || !exists {
			return &exitcodes.ExitCodeError{
				Code: exitcodes.ExitInputConfigurationError,
				Err:  fmt.Errorf("config file %s not found", cfgFile),
			}
		}
		config.SetConfigFile(cfgFile)
	} else {
		config.SetConfigName(defaultConfigName)
		config.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			config.AddConfigPath(home)
		}
	}

	if err := config.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			debug.Printf("No config file found, using flags, environment and defaults")
			return nil
		}
		return &exitcodes.ExitCodeError{
			Code: exitcodes.ExitInputConfigurationError,
			Err:  fmt.Errorf("failed to read config file: %w", err),
		}
	}
	debug.Printf("Using config file: %s", config.ConfigFileUsed())
	return nil
}

// requireArgs reports positional argument errors from check as missing
// required input.
func requireArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return &exitcodes.ExitCodeError{Code: exitcodes.ExitMissingRequiredFlag, Err: err}
		}
		return nil
	}
}

// documentFormat returns the --input-format value as a document.Format.
func documentFormat() (document.Format, error) {
	f, err := document.ParseFormat(inputFormat)
	if err != nil {
		return "", &exitcodes.ExitCodeError{
			Code: exitcodes.ExitInputConfigurationError,
			Err:  err,
		}
	}
	return f, nil
}

// loadDocument reads path from AppFs, mapping failures to exit codes.
func loadDocument(path string) (*document.File, error) {
	format, err := documentFormat()
	if err != nil {
		return nil, err
	}
	f, err := document.LoadFormat(AppFs, path, format)
	if err != nil {
		return nil, &exitcodes.ExitCodeError{Code: loadErrorCode(err), Err: err}
	}
	return f, nil
}

// loadErrorCode classifies a document load failure.
func loadErrorCode(err error) int {
	if errors.Is(err, fs.ErrNotExist) {
		return exitcodes.ExitDocumentNotFound
	}
	return exitcodes.ExitDocumentParsingError
}

// newSuggester builds the field suggester from config.
func newSuggester(ctx context.Context) (suggest.Suggester, error) {
	fields := config.GetStringSlice(configKeyFields)
	if hintsFile := config.GetString(configKeyHintsFile); hintsFile != "" {
		hinted, err := suggest.LoadHints(AppFs, hintsFile)
		if err != nil {
			return nil, &exitcodes.ExitCodeError{
				Code: exitcodes.ExitInputConfigurationError,
				Err:  err,
			}
		}
		fields = append(fields, hinted...)
	}

	s, err := suggest.New(ctx, suggest.Config{
		Provider:     config.GetString(configKeyProvider),
		Model:        config.GetString(configKeyModel),
		APIKey:       config.GetString(configKeyAPIKey),
		CacheSize:    config.GetInt(configKeyCacheSize),
		MaxRetries:   config.GetInt(configKeyMaxRetries),
		DefaultDelay: config.GetDuration(configKeyRetryDelay),
		Fields:       fields,
	})
	if err != nil {
		return nil, &exitcodes.ExitCodeError{
			Code: exitcodes.ExitSuggesterFailed,
			Err:  fmt.Errorf("failed to create field suggester: %w", err),
		}
	}
	return s, nil
}

// newScanner wires a scan.Scanner from config.
func newScanner(ctx context.Context) (*scan.Scanner, error) {
	format, err := documentFormat()
	if err != nil {
		return nil, err
	}
	s, err := newSuggester(ctx)
	if err != nil {
		return nil, err
	}
	return &scan.Scanner{
		FS:        AppFs,
		Suggester: s,
		Locator:   detection.NewLocator(detection.WithExtraSkipKeys(config.GetStringSlice(configKeySkipKeys)...)),
		Format:    format,
		Parallel:  config.GetInt(configKeyParallel),
	}, nil
}
