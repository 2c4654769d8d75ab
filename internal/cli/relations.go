package cli

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/kore/internal/rtconfig"
	"github.com/roach88/kore/internal/store"
)

// RelationsOptions holds flags for the relations command.
type RelationsOptions struct {
	*RootOptions
	Relation string // empty for all
}

var relationNames = []string{
	store.RelationSupersorts,
	store.RelationSubsorts,
	store.RelationOverloads,
	store.RelationSortContains,
}

// NewRelationsCommand creates the relations command.
func NewRelationsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RelationsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "relations <definition.yaml>",
		Short: "Print the derived sort and symbol relations of a definition",
		Long: `Load a definition and print its reflexive transitive relations:
supersorts and subsorts from subsort axioms, overloads from overload
attributes, and the sorts each sort can contain.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRelations(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Relation, "relation", "", "print one relation ("+strings.Join(relationNames, "|")+")")

	return cmd
}

func runRelations(opts *RelationsOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	names := relationNames
	if opts.Relation != "" {
		if !slices.Contains(relationNames, opts.Relation) {
			return formatter.Fail(ExitCommandError, ErrCodeUsage, fmt.Sprintf("invalid relation %q: must be one of %v", opts.Relation, relationNames))
		}
		names = []string{opts.Relation}
	}

	d, err := loadPreprocessed(path, opts.Logger())
	if err != nil {
		return failWith(formatter, err)
	}
	rel := d.Snapshot(rtconfig.Default()).Relations
	all := map[string]map[string][]string{
		store.RelationSupersorts:   rel.Supersorts,
		store.RelationSubsorts:     rel.Subsorts,
		store.RelationOverloads:    rel.Overloads,
		store.RelationSortContains: rel.SortContains,
	}

	selected := make(map[string]map[string][]string, len(names))
	for _, name := range names {
		selected[name] = all[name]
	}

	if formatter.Format == "json" {
		return formatter.Success(selected)
	}

	w := formatter.Writer
	for i, name := range names {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s:\n", name)
		edges := selected[name]
		for _, source := range slices.Sorted(maps.Keys(edges)) {
			fmt.Fprintf(w, "  %s -> %s\n", source, strings.Join(edges[source], ", "))
		}
	}
	return nil
}
