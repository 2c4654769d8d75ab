package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/kore/internal/ir"
	"github.com/roach88/kore/internal/rtconfig"
	"github.com/roach88/kore/internal/store"
)

// TagsOptions holds flags for the tags command.
type TagsOptions struct {
	*RootOptions
	Runtime string // CUE file overriding the runtime constants
	DB      string // SQLite database to store the snapshot in
}

// TagsResult is the JSON payload of the tags command.
type TagsResult struct {
	Fingerprint string       `json:"fingerprint"`
	SnapshotID  string       `json:"snapshot_id,omitempty"`
	Stored      bool         `json:"stored,omitempty"` // false when an equal snapshot already existed
	Snapshot    *ir.Snapshot `json:"snapshot"`

	ReservedLayouts []rtconfig.ReservedLayout `json:"reserved_layouts"`
}

// NewTagsCommand creates the tags command.
func NewTagsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TagsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "tags <definition.yaml>",
		Short: "Print the symbol tag table of a definition",
		Long: `Load a definition, compute its relations, assign tags and layouts, and
print every concrete symbol with its tag, layout and block header word.

Runtime header constants default to the built-in values; --runtime unifies
a CUE file with them. --db stores the snapshot in a SQLite database,
reusing an existing row when the fingerprint matches.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTags(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Runtime, "runtime", "", "CUE file with runtime constants")
	cmd.Flags().StringVar(&opts.DB, "db", "", "SQLite database to store the snapshot in")

	return cmd
}

func runTags(opts *TagsOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	log := opts.Logger()

	cfg, err := loadRuntime(opts.Runtime)
	if err != nil {
		return failWith(formatter, err)
	}
	d, err := loadPreprocessed(path, log)
	if err != nil {
		return failWith(formatter, err)
	}

	snap := d.Snapshot(cfg)
	fingerprint, err := ir.Fingerprint(snap)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeGeneric, err.Error())
	}
	result := TagsResult{Fingerprint: fingerprint, Snapshot: snap, ReservedLayouts: cfg.Layouts.Reserved()}

	if opts.DB != "" {
		st, err := store.Open(opts.DB)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, err.Error())
		}
		defer st.Close()

		id, created, err := st.WriteSnapshot(cmd.Context(), path, snap)
		if err != nil {
			return formatter.Fail(ExitFailure, ErrCodeStore, err.Error())
		}
		log.Debug("stored snapshot", zap.String("id", id), zap.Bool("created", created))
		result.SnapshotID, result.Stored = id, created
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	return outputTagsText(formatter, result)
}

func outputTagsText(formatter *OutputFormatter, result TagsResult) error {
	w := formatter.Writer
	snap := result.Snapshot

	fmt.Fprintf(w, "✓ Tagged %d symbol(s) in %d layout(s)\n", len(snap.Symbols), snap.LayoutCount)
	fmt.Fprintf(w, "Fingerprint: %s\n", result.Fingerprint)
	if result.SnapshotID != "" {
		state := "existing"
		if result.Stored {
			state = "new"
		}
		fmt.Fprintf(w, "Snapshot: %s (%s)\n", result.SnapshotID, state)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Symbols:")
	for _, sym := range snap.Symbols {
		fmt.Fprintf(w, "  %d\t%d\t%s\t%s\n", sym.Tag, sym.Layout, sym.Header, sym.Signature)
	}

	if len(snap.Polymorphic) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Polymorphic:")
		for _, r := range snap.Polymorphic {
			fmt.Fprintf(w, "  %d-%d\t%s\n", r.FirstTag, r.LastTag, r.Text)
		}
	}
	if snap.InjectionSymbol != "" {
		fmt.Fprintf(w, "\nInjection: %s\n", snap.InjectionSymbol)
	}

	fmt.Fprint(w, "\nReserved layouts:")
	for _, r := range result.ReservedLayouts {
		fmt.Fprintf(w, " %s=%d", r.Name, r.ID)
	}
	fmt.Fprintln(w)
	return nil
}
