package cli

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/kore/internal/ast"
	"github.com/roach88/kore/internal/binary"
	"github.com/roach88/kore/internal/loader"
)

// Pattern file formats.
const (
	FormatDetect = "detect"
	FormatYAML   = "yaml"
	FormatBinary = "binary"
	FormatKore   = "kore" // canonical textual rendering, output only
)

var (
	inputFormats  = []string{FormatDetect, FormatYAML, FormatBinary}
	outputFormats = []string{FormatDetect, FormatYAML, FormatBinary, FormatKore}
)

// ConvertOptions holds flags for the convert command.
type ConvertOptions struct {
	*RootOptions
	From   string
	To     string
	Output string // "-" for stdout
	Force  bool

	isTerminal func(io.Writer) bool
}

// ConvertResult summarizes a conversion written to a file.
type ConvertResult struct {
	Input  string `json:"input"`
	From   string `json:"from"`
	To     string `json:"to"`
	Output string `json:"output"`
	Bytes  int    `json:"bytes"`
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConvertOptions{RootOptions: rootOpts, isTerminal: isTerminal}

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert a pattern between YAML and binary KORE",
		Long: `Convert a single pattern between the YAML pattern format and binary KORE.

With --from detect the input is binary when it starts with the binary
KORE magic header and YAML otherwise. With --to detect the output is the
other format. Binary output is not written to a terminal unless -F is
given.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.From, "from", FormatDetect, "input format (detect|yaml|binary)")
	cmd.Flags().StringVar(&opts.To, "to", FormatDetect, "output format (detect|yaml|binary|kore)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "-", "output file path")
	cmd.Flags().BoolVarP(&opts.Force, "force", "F", false, "force binary output on stdout")

	return cmd
}

func runConvert(opts *ConvertOptions, input string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	log := opts.Logger()

	if !slices.Contains(inputFormats, opts.From) {
		return formatter.Fail(ExitCommandError, ErrCodeUsage, fmt.Sprintf("invalid --from %q: must be one of %v", opts.From, inputFormats))
	}
	if !slices.Contains(outputFormats, opts.To) {
		return formatter.Fail(ExitCommandError, ErrCodeUsage, fmt.Sprintf("invalid --to %q: must be one of %v", opts.To, outputFormats))
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("reading input: %v", err))
	}

	from := opts.From
	if from == FormatDetect {
		from = FormatYAML
		if binary.HasMagicHeader(data) {
			from = FormatBinary
		}
	}
	to := opts.To
	if to == FormatDetect {
		to = FormatBinary
		if from == FormatBinary {
			to = FormatYAML
		}
	}
	log.Debug("convert", zap.String("input", input), zap.String("from", from), zap.String("to", to))

	pattern, err := decodePattern(data, input, from)
	if err != nil {
		if from == FormatYAML {
			return failWith(formatter, err)
		}
		return formatter.Fail(ExitFailure, ErrCodeInvalidInput, fmt.Sprintf("invalid input pattern: %v", err))
	}

	out := cmd.OutOrStdout()
	if to == FormatBinary && opts.Output == "-" && !opts.Force && opts.isTerminal(out) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Not outputting binary KORE to stdout")
		fmt.Fprintln(cmd.ErrOrStderr(), "use -o to specify output file, or -F to force stdout")
		return NewExitError(ExitCommandError, "refusing to write binary KORE to a terminal")
	}

	encoded, err := encodePattern(pattern, to)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeGeneric, err.Error())
	}

	if opts.Output == "-" {
		if _, err := out.Write(encoded); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, fmt.Sprintf("writing output: %v", err))
		}
		return nil
	}

	if err := os.WriteFile(opts.Output, encoded, 0644); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err))
	}
	formatter.VerboseLog("Wrote %d byte(s) to %s", len(encoded), opts.Output)

	result := ConvertResult{Input: input, From: from, To: to, Output: opts.Output, Bytes: len(encoded)}
	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "✓ Converted %s (%s → %s) to %s\n", input, from, to, opts.Output)
	return nil
}

func decodePattern(data []byte, path, format string) (ast.Pattern, error) {
	if format == FormatBinary {
		return binary.Decode(data)
	}
	return loader.ParsePattern(data, path)
}

func encodePattern(p ast.Pattern, format string) ([]byte, error) {
	switch format {
	case FormatBinary:
		return binary.Encode(p)
	case FormatKore:
		return []byte(p.String() + "\n"), nil
	default:
		return loader.MarshalPattern(p)
	}
}

// isTerminal reports whether w is a terminal device.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
