package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/hireboard"
	domcol "github.com/kailas-cloud/hireboard/internal/domain/collection"
)

type filterOptions struct {
	query         string
	searchFields  []string
	collection    string
	where         []string
	has           []string
	sort          []string
	desc          bool
	limit         int
	ignoreMissing bool
}

type filterOutput struct {
	Matched int                `json:"matched"`
	Items   []hireboard.Record `json:"items"`
}

func newFilterCmd(root *rootOptions) *cobra.Command {
	opts := &filterOptions{}
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Filter, sort and limit records",
		Long: "Matches records against a search query, exact field constraints (--where) and array membership " +
			"constraints (--has). --collection takes search fields, sort order and base constraints from a built-in collection.",
		Example: "  hireboardctl filter --file jobs.yaml --q react --where type=Full-time --has requirements=React --sort deadline",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFilter(cmd, root, opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.query, "q", "", "Case-insensitive search text")
	f.StringSliceVar(&opts.searchFields, "search-field", nil, "Field searched by --q (repeatable)")
	f.StringVar(&opts.collection, "collection", "", "Built-in collection supplying search fields and defaults")
	f.StringArrayVar(&opts.where, "where", nil, "Exact constraint field=value (repeatable)")
	f.StringArrayVar(&opts.has, "has", nil, "Array membership constraint field=value (repeatable)")
	f.StringSliceVar(&opts.sort, "sort", nil, "Sort fields; a leading - sorts that field descending")
	f.BoolVar(&opts.desc, "desc", false, "Sort unprefixed fields descending")
	f.IntVar(&opts.limit, "limit", 0, "Maximum records to print (0 = all)")
	f.BoolVar(&opts.ignoreMissing, "ignore-missing", false, "Let records lacking a constrained field pass")
	return cmd
}

func runFilter(cmd *cobra.Command, root *rootOptions, opts *filterOptions) error {
	if opts.limit < 0 {
		return errors.New("--limit must be >= 0")
	}
	where, err := parsePairs("where", opts.where)
	if err != nil {
		return err
	}
	has, err := parsePairs("has", opts.has)
	if err != nil {
		return err
	}

	recs, err := root.records()
	if err != nil {
		return err
	}

	q := hireboard.From(recs)
	fields := opts.searchFields
	sorts := sortKeys(opts.sort, opts.desc)

	if opts.collection != "" {
		col, err := domcol.Default().Get(opts.collection)
		if err != nil {
			return err
		}
		if len(fields) == 0 {
			fields = col.SearchFields()
		}
		if len(sorts) == 0 {
			for _, s := range col.DefaultSort() {
				sorts = append(sorts, hireboard.SortKey{Field: s.Field, Desc: s.Desc})
			}
		}
		for f, v := range col.Base() {
			q.Where(f, v)
		}
	}
	if opts.query != "" && len(fields) == 0 {
		return errors.New("--q needs --search-field or --collection")
	}

	q.Search(opts.query, fields...)
	for f, v := range where {
		q.Where(f, v)
	}
	for f, v := range has {
		q.Has(f, v)
	}
	for _, k := range sorts {
		q.SortBy(k.Field, k.Desc)
	}
	q.Limit(opts.limit)
	if opts.ignoreMissing {
		q.IgnoreMissing()
	}

	if unknown := q.UnknownFields(); len(unknown) > 0 {
		root.logger.Debug("fields not present in any record", zap.Strings("fields", unknown))
	}

	items := q.Records()
	if items == nil {
		items = []hireboard.Record{}
	}
	return writeJSON(cmd.OutOrStdout(), filterOutput{Matched: q.Count(), Items: items})
}

func sortKeys(fields []string, desc bool) []hireboard.SortKey {
	var keys []hireboard.SortKey
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if name, ok := strings.CutPrefix(f, "-"); ok {
			keys = append(keys, hireboard.SortKey{Field: name, Desc: true})
			continue
		}
		keys = append(keys, hireboard.SortKey{Field: f, Desc: desc})
	}
	return keys
}
