package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lucas-albers-lz4/jsonimg/pkg/detection"
	"github.com/lucas-albers-lz4/jsonimg/pkg/exitcodes"
	"github.com/lucas-albers-lz4/jsonimg/pkg/fileutil"
	"github.com/lucas-albers-lz4/jsonimg/pkg/gallery"
	log "github.com/lucas-albers-lz4/jsonimg/pkg/log"
	"github.com/lucas-albers-lz4/jsonimg/pkg/scan"
)

// gridCellWidth is the display width of a value in grid output.
const gridCellWidth = 40

// OutputFormatGrid lays images out in --columns cells per row.
const OutputFormatGrid = "grid"

// FileReport is the inspect output for one document.
type FileReport struct {
	File            string                 `json:"file" yaml:"file"`
	Error           string                 `json:"error,omitempty" yaml:"error,omitempty"`
	Total           int                    `json:"total" yaml:"total"`
	Keys            []string               `json:"keys,omitempty" yaml:"keys,omitempty"`
	SuggestedFields []string               `json:"suggestedFields,omitempty" yaml:"suggestedFields,omitempty"`
	Images          []detection.FoundImage `json:"images" yaml:"images"`
}

// InspectReport is the inspect output for all documents.
type InspectReport struct {
	Files []FileReport `json:"files" yaml:"files"`
}

// InspectFlags holds the command line flags for the inspect command
type InspectFlags struct {
	OutputFile   string
	OutputFormat string
	Start        int
	Count        int
	Filter       string
	Columns      int
	ShowKeys     bool
	FailOnEmpty  bool
}

// newInspectCmd creates a new inspect command
func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect FILE...",
		Short: "List the images referenced in JSON or YAML documents",
		Long: `Inspect walks each document and lists every value recognised as an image:
base64 data URIs anywhere, http(s) URLs under image-like keys, and values of
fields the configured suggester classifies as images.`,
		Args: requireArgs(cobra.MinimumNArgs(1)),
		RunE: runInspect,
	}

	cmd.Flags().String("output-file", "", "Write output to file instead of stdout")
	cmd.Flags().String("output-format", "", "Output format (yaml, json, table or grid)")
	cmd.Flags().Int("start", 1, "1-based position of the first image to show")
	cmd.Flags().Int("count", 0, "Number of images to show per document (0 for all)")
	cmd.Flags().String("filter", "", "Only show images whose path, value or parent object contains this text")
	cmd.Flags().Int("columns", gallery.DefaultColumns, "Images per row in grid output (1-6)")
	cmd.Flags().Bool("show-keys", false, "Include every key of the document in the output")
	cmd.Flags().Bool("fail-on-empty", false, "Exit with an error when no images are found")
	cmd.Flags().String("suggest-provider", "", "Field suggester (none, gemini, static)")
	cmd.Flags().String("model", "", "Model used by the gemini suggester")
	cmd.Flags().String("hints-file", "", "YAML or JSON file listing field names that hold images")
	cmd.Flags().StringSlice("suggest-field", nil, "Field names that hold images (can specify multiple)")
	cmd.Flags().StringSlice("skip-key", nil, "Additional keys whose values are never images")
	cmd.Flags().Int("parallel", defaultParallel, "Number of documents scanned concurrently")

	return cmd
}

func getInspectFlags(cmd *cobra.Command) (*InspectFlags, error) {
	flags := &InspectFlags{}
	var err error

	flags.OutputFile, err = cmd.Flags().GetString("output-file")
	if err != nil {
		return nil, fmt.Errorf("failed to get output-file flag: %w", err)
	}
	flags.Start, err = cmd.Flags().GetInt("start")
	if err != nil {
		return nil, fmt.Errorf("failed to get start flag: %w", err)
	}
	flags.Count, err = cmd.Flags().GetInt("count")
	if err != nil {
		return nil, fmt.Errorf("failed to get count flag: %w", err)
	}
	flags.Filter, err = cmd.Flags().GetString("filter")
	if err != nil {
		return nil, fmt.Errorf("failed to get filter flag: %w", err)
	}
	flags.Columns, err = cmd.Flags().GetInt("columns")
	if err != nil {
		return nil, fmt.Errorf("failed to get columns flag: %w", err)
	}
	flags.ShowKeys, err = cmd.Flags().GetBool("show-keys")
	if err != nil {
		return nil, fmt.Errorf("failed to get show-keys flag: %w", err)
	}
	flags.FailOnEmpty, err = cmd.Flags().GetBool("fail-on-empty")
	if err != nil {
		return nil, fmt.Errorf("failed to get fail-on-empty flag: %w", err)
	}

	flags.OutputFormat = strings.ToLower(config.GetString(configKeyOutputFormat))
	switch flags.OutputFormat {
	case OutputFormatYAML, OutputFormatJSON, OutputFormatTable, OutputFormatGrid:
	default:
		return nil, &exitcodes.ExitCodeError{
			Code: exitcodes.ExitInvalidOutputFormat,
			Err:  fmt.Errorf("unsupported output format %q", flags.OutputFormat),
		}
	}
	return flags, nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	flags, err := getInspectFlags(cmd)
	if err != nil {
		if _, ok := exitcodes.IsExitCodeError(err); ok {
			return err
		}
		return &exitcodes.ExitCodeError{Code: exitcodes.ExitInputConfigurationError, Err: err}
	}

	scanner, err := newScanner(cmd.Context())
	if err != nil {
		return err
	}

	results, err := scanner.ScanFiles(cmd.Context(), args)
	if err != nil {
		return &exitcodes.ExitCodeError{
			Code: exitcodes.ExitGeneralRuntimeError,
			Err:  fmt.Errorf("scan interrupted: %w", err),
		}
	}

	// A single unreadable document is a command failure rather than a report entry.
	if len(results) == 1 && results[0].Err != nil {
		return &exitcodes.ExitCodeError{Code: loadErrorCode(results[0].Err), Err: results[0].Err}
	}

	report := buildInspectReport(results, flags)

	if flags.FailOnEmpty && countImages(report) == 0 {
		return &exitcodes.ExitCodeError{
			Code: exitcodes.ExitNoImagesFound,
			Err:  fmt.Errorf("no images found in %d document(s)", len(args)),
		}
	}

	return writeInspectOutput(cmd.OutOrStdout(), report, flags)
}

// buildInspectReport applies filtering and paging to each scan result.
func buildInspectReport(results []scan.Result, flags *InspectFlags) *InspectReport {
	report := &InspectReport{Files: make([]FileReport, 0, len(results))}
	for _, res := range results {
		fr := FileReport{File: res.Path, Images: []detection.FoundImage{}}
		if res.Err != nil {
			fr.Error = res.Err.Error()
			report.Files = append(report.Files, fr)
			continue
		}

		images := res.Images
		if flags.Filter != "" {
			images = gallery.Filter(res.File.Root, images, flags.Filter)
		}
		fr.Total = len(images)

		count := flags.Count
		if count <= 0 {
			count = len(images)
		}
		fr.Images = gallery.Page(images, gallery.ClampStart(flags.Start, len(images)), count)
		fr.SuggestedFields = res.Suggested
		if flags.ShowKeys {
			fr.Keys = res.Keys
		}
		log.Debug("Inspected document", "file", res.Path, "total", fr.Total, "shown", len(fr.Images))
		report.Files = append(report.Files, fr)
	}
	return report
}

func countImages(report *InspectReport) int {
	n := 0
	for _, f := range report.Files {
		n += f.Total
	}
	return n
}

// writeInspectOutput writes the report to a file or w
func writeInspectOutput(w io.Writer, report *InspectReport, flags *InspectFlags) error {
	var output []byte
	var err error

	switch flags.OutputFormat {
	case OutputFormatJSON:
		output, err = json.MarshalIndent(report, "", "  ")
		if err != nil {
			return &exitcodes.ExitCodeError{
				Code: exitcodes.ExitGeneralRuntimeError,
				Err:  fmt.Errorf("failed to marshal report to JSON: %w", err),
			}
		}
		output = append(output, '\n')
	case OutputFormatTable:
		output = renderTable(report)
	case OutputFormatGrid:
		output = renderGrid(report, gallery.ClampColumns(flags.Columns))
	default:
		output, err = yaml.Marshal(report)
		if err != nil {
			return &exitcodes.ExitCodeError{
				Code: exitcodes.ExitGeneralRuntimeError,
				Err:  fmt.Errorf("failed to marshal report to YAML: %w", err),
			}
		}
	}

	if flags.OutputFile != "" {
		if err := fileutil.WriteFile(AppFs, flags.OutputFile, output); err != nil {
			return &exitcodes.ExitCodeError{
				Code: exitcodes.ExitIOError,
				Err:  fmt.Errorf("failed to write report to file: %w", err),
			}
		}
		log.Infof("Report written to %s", flags.OutputFile)
		return nil
	}

	if _, err := w.Write(output); err != nil {
		return &exitcodes.ExitCodeError{Code: exitcodes.ExitIOError, Err: err}
	}
	return nil
}

// renderTable prints one image per line: file, type, path and the value cut
// to the display width.
func renderTable(report *InspectReport) []byte {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tTYPE\tPATH\tVALUE")
	for _, f := range report.Files {
		if f.Error != "" {
			fmt.Fprintf(tw, "%s\terror\t\t%s\n", f.File, f.Error)
			continue
		}
		for _, img := range f.Images {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.File, img.Kind, img.Path, gallery.Truncate(img.Value, gallery.MaxValueLength))
		}
	}
	_ = tw.Flush()
	return []byte(sb.String())
}

// renderGrid prints each document's images as rows of columns cells, each
// cell holding the path above the shortened value.
func renderGrid(report *InspectReport, columns int) []byte {
	var sb strings.Builder
	for i, f := range report.Files {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%s (%d of %d)\n", f.File, len(f.Images), f.Total)
		if f.Error != "" {
			fmt.Fprintf(&sb, "  error: %s\n", f.Error)
			continue
		}

		tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
		for start := 0; start < len(f.Images); start += columns {
			end := start + columns
			if end > len(f.Images) {
				end = len(f.Images)
			}
			row := f.Images[start:end]
			paths := make([]string, len(row))
			values := make([]string, len(row))
			for j, img := range row {
				paths[j] = img.Path
				values[j] = gallery.Truncate(img.Value, gridCellWidth)
			}
			fmt.Fprintf(tw, "  %s\n", strings.Join(paths, "\t"))
			fmt.Fprintf(tw, "  %s\n", strings.Join(values, "\t"))
		}
		_ = tw.Flush()
	}
	return []byte(sb.String())
}
