// Package main declares constants used across the jsonimg command-line interface.
package main

// Output format constants
const (
	// OutputFormatYAML prints results as YAML (the default)
	OutputFormatYAML = "yaml"
	// OutputFormatJSON prints results as indented JSON
	OutputFormatJSON = "json"
	// OutputFormatTable prints one line per image
	OutputFormatTable = "table"
)

// Configuration keys resolved through viper. Environment variables use the
// JSONIMG_ prefix with "." and "-" replaced by "_", e.g. JSONIMG_SUGGEST_PROVIDER.
const (
	configKeyProvider        = "suggest.provider"
	configKeyModel           = "suggest.model"
	configKeyAPIKey          = "suggest.api-key"
	configKeyCacheSize       = "suggest.cache-size"
	configKeyMaxRetries      = "suggest.max-retries"
	configKeyRetryDelay      = "suggest.default-retry-delay"
	configKeyFields          = "suggest.fields"
	configKeyHintsFile       = "suggest.hints-file"
	configKeySkipKeys        = "detection.skip-keys"
	configKeyOutputFormat    = "output.format"
	configKeyParallel        = "scan.parallel"
	configKeyRequiredVersion = "required-version"
)

const (
	envPrefix = "JSONIMG"
	// Fallback environment variables for the Gemini API key.
	envGeminiAPIKey = "GEMINI_API_KEY"
	envGoogleAPIKey = "GOOGLE_API_KEY"

	defaultConfigName = ".jsonimg"
	defaultParallel   = 4
)
