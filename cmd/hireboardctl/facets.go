package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/hireboard"
)

type facetsOptions struct {
	fields      []string
	arrayFields []string
	counts      bool
}

func newFacetsCmd(root *rootOptions) *cobra.Command {
	opts := &facetsOptions{}
	cmd := &cobra.Command{
		Use:     "facets",
		Short:   "List distinct field values",
		Long:    "Prints the distinct values of scalar fields (--field) and the flattened distinct elements of array fields (--array-field), in first-seen order. --counts prints per-value counts instead.",
		Example: "  hireboardctl facets --file interviewers.yaml --field company --array-field specializations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFacets(cmd, root, opts)
		},
	}
	f := cmd.Flags()
	f.StringSliceVar(&opts.fields, "field", nil, "Scalar field (repeatable)")
	f.StringSliceVar(&opts.arrayFields, "array-field", nil, "Array field (repeatable)")
	f.BoolVar(&opts.counts, "counts", false, "Print value counts instead of values")
	return cmd
}

func runFacets(cmd *cobra.Command, root *rootOptions, opts *facetsOptions) error {
	if len(opts.fields) == 0 && len(opts.arrayFields) == 0 {
		return errors.New("at least one --field or --array-field is required")
	}
	recs, err := root.records()
	if err != nil {
		return err
	}

	if opts.counts {
		out := make(map[string][]hireboard.Entry, len(opts.fields)+len(opts.arrayFields))
		for _, f := range opts.fields {
			out[f] = hireboard.GroupAndCount(recs, f).Entries()
		}
		for _, f := range opts.arrayFields {
			out[f] = hireboard.GroupAndCountArray(recs, f).Entries()
		}
		return writeJSON(cmd.OutOrStdout(), out)
	}

	out := make(map[string][]string, len(opts.fields)+len(opts.arrayFields))
	for _, f := range opts.fields {
		out[f] = hireboard.DistinctValues(recs, f)
	}
	for _, f := range opts.arrayFields {
		out[f] = hireboard.DistinctValuesFromArrayField(recs, f)
	}
	return writeJSON(cmd.OutOrStdout(), out)
}
