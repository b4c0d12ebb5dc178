package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/hireboard/internal/domain/record"
)

func jobs() []record.Record {
	return record.NewAll([]map[string]any{
		{
			"id": "1", "title": "Senior React Developer", "company": "Stripe",
			"location": "San Francisco, CA", "type": "Full-time", "deadline": "2024-02-20",
			"description": "Join our team to build the future of online payments",
			"requirements": []any{"React", "TypeScript", "Node.js"},
		},
		{
			"id": "2", "title": "DevOps Engineer", "company": "Airbnb",
			"location": "Remote", "type": "Remote", "deadline": "2024-02-18",
			"description": "Help scale our infrastructure to millions of users",
			"requirements": []any{"AWS", "Kubernetes", "Docker"},
		},
		{
			"id": "3", "title": "Product Manager", "company": "Uber",
			"location": "New York, NY", "type": "Full-time", "deadline": "2024-02-15",
			"description": "Lead product strategy for our mobility platform",
			"requirements": []any{"Analytics", "Leadership"},
		},
	})
}

func ids(rs []record.Record) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ID())
	}
	return out
}

var jobSearch = []string{"title", "company", "description"}

func TestFilter_CaseInsensitiveSearch(t *testing.T) {
	got := Filter(jobs(), Spec{Query: "react", SearchFields: jobSearch})
	assert.Equal(t, []string{"1"}, ids(got))

	got = Filter(jobs(), Spec{Query: "PLATFORM", SearchFields: jobSearch})
	assert.Equal(t, []string{"3"}, ids(got))
}

func TestFilter_SearchIsORAcrossFields(t *testing.T) {
	got := Filter(jobs(), Spec{Query: "er", SearchFields: jobSearch})
	assert.Equal(t, []string{"1", "2", "3"}, ids(got))
}

func TestFilter_SearchArrayElements(t *testing.T) {
	got := Filter(jobs(), Spec{Query: "kube", SearchFields: []string{"title", "requirements"}})
	assert.Equal(t, []string{"2"}, ids(got))
}

func TestFilter_QueryWithoutSearchFieldsMatchesNothing(t *testing.T) {
	assert.Empty(t, Filter(jobs(), Spec{Query: "react"}))
}

func TestFilter_QueryIsNotTrimmed(t *testing.T) {
	assert.Empty(t, Filter(jobs(), Spec{Query: "\treact", SearchFields: jobSearch}))
}

func TestFilter_Exact(t *testing.T) {
	tests := []struct {
		name  string
		exact map[string]string
		want  []string
	}{
		{"single", map[string]string{"type": "Full-time"}, []string{"1", "3"}},
		{"all sentinel", map[string]string{"type": All}, []string{"1", "2", "3"}},
		{"empty sentinel", map[string]string{"type": ""}, []string{"1", "2", "3"}},
		{"conjunction", map[string]string{"type": "Full-time", "location": "New York, NY"}, []string{"3"}},
		{"case sensitive", map[string]string{"type": "full-time"}, []string{}},
		{"array field never equals", map[string]string{"requirements": "AWS"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(jobs(), Spec{Exact: tt.exact})))
		})
	}
}

func TestFilter_ExactScalarForms(t *testing.T) {
	rs := record.NewAll([]map[string]any{
		{"id": "a", "isActive": true, "vacancies": 5},
		{"id": "b", "isActive": false, "vacancies": 2.5},
	})
	assert.Equal(t, []string{"a"}, ids(Filter(rs, Spec{Exact: map[string]string{"isActive": "true"}})))
	assert.Equal(t, []string{"a"}, ids(Filter(rs, Spec{Exact: map[string]string{"vacancies": "5"}})))
	assert.Equal(t, []string{"b"}, ids(Filter(rs, Spec{Exact: map[string]string{"vacancies": "2.5"}})))
}

func TestFilter_Membership(t *testing.T) {
	got := Filter(jobs(), Spec{Membership: map[string]string{"requirements": "React"}})
	assert.Equal(t, []string{"1"}, ids(got))

	got = Filter(jobs(), Spec{Membership: map[string]string{"requirements": "react"}})
	assert.Empty(t, got, "membership is exact, not substring")

	got = Filter(jobs(), Spec{Membership: map[string]string{"requirements": All}})
	assert.Len(t, got, 3)
}

func TestFilter_MissingFieldPolicy(t *testing.T) {
	rs := record.NewAll([]map[string]any{
		{"id": "1", "status": "Applied", "tags": []any{"x"}},
		{"id": "2"},
	})

	noMatch := Spec{Exact: map[string]string{"status": "Applied"}}
	assert.Equal(t, []string{"1"}, ids(Filter(rs, noMatch)))

	ignore := noMatch
	ignore.MissingFields = MissingFieldIgnore
	assert.Equal(t, []string{"1", "2"}, ids(Filter(rs, ignore)))

	mem := Spec{Membership: map[string]string{"tags": "x"}, MissingFields: MissingFieldIgnore}
	assert.Equal(t, []string{"1", "2"}, ids(Filter(rs, mem)))

	search := Spec{Query: "x", SearchFields: []string{"tags"}, MissingFields: MissingFieldIgnore}
	assert.Equal(t, []string{"1"}, ids(Filter(rs, search)), "search over absent field never matches")

	assert.Equal(t, "no_match", MissingFieldNoMatch.String())
	assert.Equal(t, "ignore", MissingFieldIgnore.String())
}

func TestFilter_EmptySpecPassthrough(t *testing.T) {
	in := jobs()
	spec := Spec{SearchFields: jobSearch, Exact: map[string]string{"type": All}}
	require.True(t, spec.IsEmpty())
	assert.Equal(t, ids(in), ids(Filter(in, spec)))
}

func TestFilter_Idempotent(t *testing.T) {
	specs := []Spec{
		{Query: "e", SearchFields: jobSearch},
		{Exact: map[string]string{"type": "Full-time"}},
		{Membership: map[string]string{"requirements": "AWS"}},
		{Query: "o", SearchFields: jobSearch, Sort: []SortKey{{Field: "deadline"}}, Limit: 2},
	}
	for _, s := range specs {
		once := Filter(jobs(), s)
		assert.Equal(t, ids(once), ids(Filter(once, s)))
	}
}

func TestFilter_Monotonic(t *testing.T) {
	loose := Spec{Query: "e", SearchFields: jobSearch}
	strict := loose
	strict.Exact = map[string]string{"type": "Full-time"}

	wide := Filter(jobs(), loose)
	narrow := Filter(jobs(), strict)
	assert.LessOrEqual(t, len(narrow), len(wide))
	assert.Subset(t, ids(wide), ids(narrow))
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	in := jobs()
	before := ids(in)
	_ = Filter(in, Spec{Sort: []SortKey{{Field: "deadline"}}})
	assert.Equal(t, before, ids(in))
}

func TestFilter_SortAndLimit(t *testing.T) {
	got := Filter(jobs(), Spec{Sort: []SortKey{{Field: "deadline"}}, Limit: 2})
	assert.Equal(t, []string{"3", "2"}, ids(got))
}

func TestMatches(t *testing.T) {
	r := jobs()[0]
	assert.True(t, Matches(r, Spec{Query: "STRIPE", SearchFields: jobSearch}))
	assert.False(t, Matches(r, Spec{Exact: map[string]string{"type": "Remote"}}))
}

func TestDistinctValues(t *testing.T) {
	rs := append(jobs(), record.New(map[string]any{"id": "4", "type": "Remote"}), record.New(map[string]any{"id": "5"}))
	assert.Equal(t, []string{"Full-time", "Remote"}, DistinctValues(rs, "type"))
	assert.Equal(t, []string{}, DistinctValues(rs, "missing"))
	assert.Equal(t, []string{}, DistinctValues(nil, "type"))
}

func TestDistinctValuesFromArrayField(t *testing.T) {
	rs := record.NewAll([]map[string]any{
		{"specializations": []any{"React", "Node.js", "System Design"}},
		{"specializations": []any{"Leadership", "Python"}},
		{"specializations": []any{"System Design", "Scalability"}},
		{"name": "no specializations"},
	})
	assert.Equal(t,
		[]string{"React", "Node.js", "System Design", "Leadership", "Python", "Scalability"},
		DistinctValuesFromArrayField(rs, "specializations"))
}

func TestUnknownFields(t *testing.T) {
	spec := Spec{
		SearchFields: []string{"title", "summary"},
		Exact:        map[string]string{"type": All, "seniority": "senior"},
		Sort:         []SortKey{{Field: "deadline"}, {Field: "priority"}},
	}
	assert.Equal(t, []string{"priority", "seniority", "summary"}, UnknownFields(jobs(), spec))
	assert.Nil(t, UnknownFields(jobs(), Spec{SearchFields: jobSearch}))
	assert.Nil(t, UnknownFields(nil, spec))
}
