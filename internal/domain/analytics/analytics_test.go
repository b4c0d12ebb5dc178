package analytics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/hireboard/internal/domain"
	"github.com/kailas-cloud/hireboard/internal/domain/record"
)

var asOf = time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)

func applications() []record.Record {
	return record.NewAll([]map[string]any{
		{"id": "1", "company": "Google", "status": "Interview Scheduled", "appliedDate": "2024-01-15", "deadline": "2024-01-25"},
		{"id": "2", "company": "Microsoft", "status": "Applied", "appliedDate": "2024-01-10"},
		{"id": "3", "company": "Apple", "status": "Offer Received", "appliedDate": "2024-01-05"},
		{"id": "4", "company": "Meta", "status": "Rejected", "appliedDate": "2024-01-01"},
		{"id": "5", "company": "Netflix", "status": "Saved", "appliedDate": "2024-01-20"},
	})
}

func recIDs(rs []record.Record) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ID())
	}
	return out
}

func TestGroupAndCount(t *testing.T) {
	rs := record.NewAll([]map[string]any{
		{"company": "Google"}, {"company": "Apple"}, {"company": "Google"},
		{"company": "google"}, {"company": " Apple"}, {"name": "no company"},
	})
	c := GroupAndCount(rs, "company")
	assert.Equal(t, []Entry{
		{Key: "Google", Count: 2},
		{Key: "Apple", Count: 1},
		{Key: "google", Count: 1},
		{Key: " Apple", Count: 1},
	}, c.Entries())
	assert.Equal(t, 5, c.Total())
	assert.Equal(t, 0, c.Get("Meta"))
	assert.Equal(t, map[string]int{"Google": 2, "Apple": 1, "google": 1, " Apple": 1}, c.Map())
}

func TestGroupAndCountArray(t *testing.T) {
	rs := record.NewAll([]map[string]any{
		{"interviewTypes": []any{"Technical", "System Design"}},
		{"interviewTypes": []any{"Behavioral", "Technical"}},
	})
	assert.Equal(t, []Entry{
		{Key: "Technical", Count: 2},
		{Key: "System Design", Count: 1},
		{Key: "Behavioral", Count: 1},
	}, GroupAndCountArray(rs, "interviewTypes").Entries())
}

func TestTopN(t *testing.T) {
	var c Counts
	for _, k := range []string{"a", "b", "b", "c", "c", "d", "c", "b", "e"} {
		c.Add(k)
	}

	tests := []struct {
		n    int
		want []Entry
	}{
		{0, []Entry{}},
		{-1, []Entry{}},
		{1, []Entry{{"b", 3}}},
		{3, []Entry{{"b", 3}, {"c", 3}, {"a", 1}}},
		{10, []Entry{{"b", 3}, {"c", 3}, {"a", 1}, {"d", 1}, {"e", 1}}},
	}
	for _, tt := range tests {
		got := TopN(c, tt.n)
		assert.Equal(t, tt.want, got, "n=%d", tt.n)
		assert.LessOrEqual(t, len(got), max(tt.n, 0))
		for i := 1; i < len(got); i++ {
			assert.GreaterOrEqual(t, got[i-1].Count, got[i].Count)
		}
	}
	assert.Empty(t, TopN(Counts{}, 5))
}

func TestPercent(t *testing.T) {
	tests := []struct{ count, total, want int }{
		{0, 0, 0},
		{3, 0, 0},
		{1, 5, 20},
		{1, 8, 13},
		{1, 3, 33},
		{2, 3, 67},
		{1, 200, 1},
		{1, 201, 0},
		{5, 5, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Percent(tt.count, tt.total), "%d/%d", tt.count, tt.total)
	}
}

func TestRate(t *testing.T) {
	apps := applications()
	assert.Equal(t, 20, Rate(apps, FieldEquals("status", "Offer Received")))
	assert.Equal(t, 20, Rate(apps, FieldEquals("status", "Interview Scheduled")))
	assert.Equal(t, 40, Rate(apps, FieldIn("status", "Applied", "Interview Scheduled")))
	assert.Equal(t, 0, Rate(nil, FieldEquals("status", "Offer Received")))
	assert.Equal(t, 0, Rate([]record.Record{}, func(record.Record) bool { return true }))
	assert.Equal(t, 2, Count(apps, FieldIn("status", "Applied", "Saved")))
}

func TestComputeStatusDistribution(t *testing.T) {
	d := ComputeStatusDistribution(applications(), "status")
	assert.Equal(t, 5, d.Total)
	assert.Equal(t, []string{"Interview Scheduled", "Applied", "Offer Received", "Rejected", "Saved"}, d.Counts.Keys())
	for k, p := range d.Percentages {
		assert.Equal(t, 20, p, k)
	}
	shares := d.Shares()
	require.Len(t, shares, 5)
	assert.Equal(t, Share{Status: "Interview Scheduled", Count: 1, Percentage: 20}, shares[0])
}

func TestComputeStatusDistribution_Empty(t *testing.T) {
	d := ComputeStatusDistribution(nil, "status")
	assert.Equal(t, 0, d.Total)
	assert.Equal(t, 0, d.Counts.Len())
	assert.Nil(t, d.Percentages)
	assert.Empty(t, d.Shares())
}

func TestComputeStatusDistribution_Bounds(t *testing.T) {
	// Three equal thirds round to 33 each; the sum drifts from 100.
	rs := record.NewAll([]map[string]any{
		{"status": "Applied"}, {"status": "Rejected"}, {"status": "Saved"},
	})
	d := ComputeStatusDistribution(rs, "status")
	sum := 0
	for _, p := range d.Percentages {
		assert.GreaterOrEqual(t, p, 0)
		assert.LessOrEqual(t, p, 100)
		sum += p
	}
	assert.InDelta(t, 100, sum, float64(d.Counts.Len()))
}

func TestComputeStatusDistribution_AbsentStatus(t *testing.T) {
	rs := record.NewAll([]map[string]any{{"status": "Applied"}, {"company": "x"}})
	d := ComputeStatusDistribution(rs, "status")
	assert.Equal(t, 2, d.Total)
	assert.Equal(t, map[string]int{"Applied": 50}, d.Percentages)
}

func TestUpcomingDeadlines(t *testing.T) {
	rs := record.NewAll([]map[string]any{
		{"id": "a", "deadline": "2024-02-20"},
		{"id": "b", "deadline": "2024-01-25"},
		{"id": "c", "deadline": "2024-02-01"},
		{"id": "d"},
		{"id": "e", "deadline": "not a date"},
	})

	got := UpcomingDeadlines(rs, "deadline", asOf, 10, DeadlineOptions{})
	require.Len(t, got, 3)

	var days []int
	var urgent []bool
	var order []string
	for _, d := range got {
		days = append(days, d.DaysRemaining)
		urgent = append(urgent, d.IsUrgent)
		order = append(order, d.Record.ID())
	}
	assert.Equal(t, []string{"b", "c", "a"}, order)
	assert.Equal(t, []int{5, 12, 31}, days)
	assert.Equal(t, []bool{true, false, false}, urgent)
}

func TestUpcomingDeadlines_TruncateAndThreshold(t *testing.T) {
	rs := record.NewAll([]map[string]any{
		{"id": "a", "deadline": "2024-02-20"},
		{"id": "b", "deadline": "2024-01-25"},
		{"id": "c", "deadline": "2024-02-01"},
	})

	got := UpcomingDeadlines(rs, "deadline", asOf, 2, DeadlineOptions{UrgentWithin: 14})
	require.Len(t, got, 2)
	assert.True(t, got[0].IsUrgent)
	assert.True(t, got[1].IsUrgent, "12 days is within a 14 day threshold")

	assert.Empty(t, UpcomingDeadlines(rs, "deadline", asOf, 0, DeadlineOptions{}))
	assert.Empty(t, UpcomingDeadlines(nil, "deadline", asOf, 3, DeadlineOptions{}))
}

func TestUpcomingDeadlines_Past(t *testing.T) {
	rs := record.NewAll([]map[string]any{
		{"id": "past", "deadline": "2024-01-10"},
		{"id": "today", "deadline": "2024-01-20"},
		{"id": "soon", "deadline": "2024-01-22"},
	})

	got := UpcomingDeadlines(rs, "deadline", asOf, 5, DeadlineOptions{})
	require.Len(t, got, 3)
	assert.Equal(t, -10, got[0].DaysRemaining)
	assert.False(t, got[0].IsUrgent, "passed deadlines are never urgent")
	assert.Equal(t, 0, got[1].DaysRemaining)
	assert.True(t, got[1].IsUrgent)

	got = UpcomingDeadlines(rs, "deadline", asOf, 5, DeadlineOptions{ExcludePast: true})
	assert.Equal(t, []string{"today", "soon"}, []string{got[0].Record.ID(), got[1].Record.ID()})
}

func TestUpcomingDeadlines_StableTies(t *testing.T) {
	rs := record.NewAll([]map[string]any{
		{"id": "x", "deadline": "2024-02-01"},
		{"id": "y", "deadline": "2024-02-01"},
	})
	got := UpcomingDeadlines(rs, "deadline", asOf, 2, DeadlineOptions{})
	assert.Equal(t, "x", got[0].Record.ID())
	assert.Equal(t, "y", got[1].Record.ID())
}

func TestMostRecent(t *testing.T) {
	got := MostRecent(applications(), "appliedDate", 3)
	assert.Equal(t, []string{"5", "1", "2"}, recIDs(got))
	assert.Empty(t, MostRecent(applications(), "appliedDate", 0))
	assert.Len(t, MostRecent(applications(), "appliedDate", 50), 5)
}

func TestParseTimeRange(t *testing.T) {
	for _, s := range []string{"", "all", "1month", "3months", "6months"} {
		_, err := ParseTimeRange(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseTimeRange("1year")
	assert.True(t, errors.Is(err, domain.ErrInvalidQuery))
}

func TestWithinRange(t *testing.T) {
	rs := record.NewAll([]map[string]any{
		{"id": "old", "appliedDate": "2023-06-01"},
		{"id": "mid", "appliedDate": "2023-11-01"},
		{"id": "new", "appliedDate": "2024-01-15"},
		{"id": "undated"},
	})

	assert.Equal(t, []string{"old", "mid", "new", "undated"}, recIDs(WithinRange(rs, "appliedDate", asOf, RangeAll)))
	assert.Equal(t, []string{"new"}, recIDs(WithinRange(rs, "appliedDate", asOf, RangeMonth)))
	assert.Equal(t, []string{"mid", "new"}, recIDs(WithinRange(rs, "appliedDate", asOf, Range3Months)))
	assert.Equal(t, []string{"mid", "new"}, recIDs(WithinRange(rs, "appliedDate", asOf, Range6Months)))
}

func TestGroupByMonth(t *testing.T) {
	rs := record.NewAll([]map[string]any{
		{"appliedDate": "2024-01-15"},
		{"appliedDate": "2023-12-01"},
		{"appliedDate": "2024-01-02"},
		{"appliedDate": "garbage"},
	})
	assert.Equal(t, []Entry{{"2023-12", 1}, {"2024-01", 2}}, GroupByMonth(rs, "appliedDate").Entries())
}
