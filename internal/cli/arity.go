package cli

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/kore/internal/binary"
)

// ArityResult is the JSON payload of the arity command.
type ArityResult struct {
	Arity uint64 `json:"arity"`
	Hex   string `json:"hex"`
}

// NewArityCommand creates the arity command.
func NewArityCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "arity <n>",
		Short: "Emit the binary KORE length encoding of n",
		Long: `Write the headerless binary KORE encoding of an arity to stdout.

The bytes can be spliced into a binary stream between the arguments of a
composite pattern and its symbol. With --format json the bytes are
reported in hex instead.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArity(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runArity(opts *RootOptions, arg string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	n, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeUsage, fmt.Sprintf("invalid arity %q: %v", arg, err))
	}

	s := binary.NewFragmentSerializer()
	s.EmitLength(n)

	if formatter.Format == "json" {
		return formatter.Success(ArityResult{Arity: n, Hex: hex.EncodeToString(s.Data())})
	}
	if _, err := formatter.Writer.Write(s.Data()); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, fmt.Sprintf("writing output: %v", err))
	}
	return nil
}
