package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/hireboard/internal/domain"
	domana "github.com/kailas-cloud/hireboard/internal/domain/analytics"
	domcol "github.com/kailas-cloud/hireboard/internal/domain/collection"
	domrec "github.com/kailas-cloud/hireboard/internal/domain/record"
)

// --- Mocks ---

type mockSource struct {
	records []domrec.Record
	err     error
	asked   string
}

func (m *mockSource) FetchAll(_ context.Context, collection string) ([]domrec.Record, error) {
	m.asked = collection
	return m.records, m.err
}

var asOf = time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)

func pipeline() []domrec.Record {
	return domrec.NewAll([]map[string]any{
		{"id": "1", "company": "Google", "status": "Interview Scheduled", "appliedDate": "2024-01-15", "deadline": "2024-01-25"},
		{"id": "2", "company": "Microsoft", "status": "Applied", "appliedDate": "2024-01-10", "deadline": "2024-02-01"},
		{"id": "3", "company": "Apple", "status": "Offer Received", "appliedDate": "2023-12-05"},
		{"id": "4", "company": "Netflix", "status": "Rejected", "appliedDate": "2023-11-18", "deadline": "2024-02-20"},
		{"id": "5", "company": "Google", "status": "Applied", "appliedDate": "2023-06-01"},
	})
}

func newTestService(recs []domrec.Record) (*Service, *mockSource) {
	src := &mockSource{records: recs}
	return New(src, Settings{}).WithClock(func() time.Time { return asOf }), src
}

// --- Report ---

func TestReport_AllTime(t *testing.T) {
	svc, src := newTestService(pipeline())

	r, err := svc.Report(context.Background(), ReportParams{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.asked != domcol.Applications {
		t.Errorf("fetched %q", src.asked)
	}
	if !r.AsOf.Equal(asOf) || r.Range != domana.RangeAll {
		t.Errorf("as_of/range = %v/%q", r.AsOf, r.Range)
	}
	if r.Total != 5 || r.Active != 3 {
		t.Errorf("total/active = %d/%d", r.Total, r.Active)
	}
	if r.SuccessRate != 20 || r.InterviewRate != 20 {
		t.Errorf("success/interview = %d/%d", r.SuccessRate, r.InterviewRate)
	}
	if len(r.Statuses) != 4 || r.Statuses[0].Status != "Interview Scheduled" ||
		r.Statuses[1].Status != "Applied" || r.Statuses[1].Count != 2 || r.Statuses[1].Percentage != 40 {
		t.Errorf("statuses = %+v", r.Statuses)
	}
	if len(r.TopCompanies) != 4 || r.TopCompanies[0] != (domana.Entry{Key: "Google", Count: 2}) {
		t.Errorf("top companies = %+v", r.TopCompanies)
	}
	if len(r.UpcomingDeadlines) != 3 || r.UpcomingDeadlines[0].DaysRemaining != 5 || !r.UpcomingDeadlines[0].IsUrgent {
		t.Errorf("deadlines = %+v", r.UpcomingDeadlines)
	}
	wantMonths := []MonthTrend{
		{Month: "2023-06", Applications: 1},
		{Month: "2023-11", Applications: 1},
		{Month: "2023-12", Applications: 1, Offers: 1},
		{Month: "2024-01", Applications: 2, Interviews: 1},
	}
	if len(r.MonthlyTrend) != len(wantMonths) {
		t.Fatalf("trend = %+v", r.MonthlyTrend)
	}
	for i, m := range wantMonths {
		if r.MonthlyTrend[i] != m {
			t.Errorf("trend[%d] = %+v, want %+v", i, r.MonthlyTrend[i], m)
		}
	}
}

func TestReport_TimeRangeAndSizes(t *testing.T) {
	svc, _ := newTestService(pipeline())

	r, err := svc.Report(context.Background(), ReportParams{
		Range:        domana.Range3Months,
		Top:          1,
		Deadlines:    1,
		UrgentWithin: 3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// cutoff 2023-10-20 drops the June application
	if r.Total != 4 {
		t.Errorf("total = %d", r.Total)
	}
	if len(r.TopCompanies) != 1 {
		t.Errorf("top companies = %+v", r.TopCompanies)
	}
	if len(r.UpcomingDeadlines) != 1 || r.UpcomingDeadlines[0].IsUrgent {
		t.Errorf("5 days out is not urgent within 3: %+v", r.UpcomingDeadlines)
	}
}

func TestReport_Empty(t *testing.T) {
	svc, _ := newTestService(nil)

	r, err := svc.Report(context.Background(), ReportParams{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Total != 0 || r.SuccessRate != 0 || r.InterviewRate != 0 {
		t.Errorf("empty report = %+v", r)
	}
	if r.Statuses == nil || r.TopCompanies == nil || r.UpcomingDeadlines == nil || r.MonthlyTrend == nil {
		t.Error("empty report lists must be non-nil")
	}
}

func TestReport_Errors(t *testing.T) {
	svc, src := newTestService(pipeline())
	ctx := context.Background()

	if _, err := svc.Report(ctx, ReportParams{Range: "2weeks"}); !errors.Is(err, domain.ErrInvalidQuery) {
		t.Errorf("bad range: err = %v", err)
	}
	if _, err := svc.Report(ctx, ReportParams{Top: -1}); !errors.Is(err, domain.ErrInvalidQuery) {
		t.Errorf("negative top: err = %v", err)
	}

	src.err = errors.New("store down")
	if _, err := svc.Report(ctx, ReportParams{}); err == nil {
		t.Error("expected fetch error")
	}
}

// --- Dashboard ---

func TestDashboard(t *testing.T) {
	svc, _ := newTestService(pipeline())

	d, err := svc.Dashboard(context.Background(), time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Total != 5 || d.Interviews != 1 || d.Offers != 1 || d.Pending != 2 {
		t.Errorf("counts = %d/%d/%d/%d", d.Total, d.Interviews, d.Offers, d.Pending)
	}
	if len(d.UpcomingDeadlines) != 3 {
		t.Errorf("deadlines = %d", len(d.UpcomingDeadlines))
	}
	if len(d.RecentApplications) != 3 {
		t.Fatalf("recent = %d", len(d.RecentApplications))
	}
	for i, want := range []string{"1", "2", "3"} {
		if d.RecentApplications[i].ID() != want {
			t.Errorf("recent[%d] = %s, want %s", i, d.RecentApplications[i].ID(), want)
		}
	}
}

func TestSettings_Defaults(t *testing.T) {
	s := Settings{TopCompanies: 10}.withDefaults()
	if s.TopCompanies != 10 {
		t.Errorf("explicit value overwritten: %d", s.TopCompanies)
	}
	if s.UrgencyThresholdDays != 7 || s.DashboardDeadlines != 3 || s.RecentApplications != 3 {
		t.Errorf("defaults = %+v", s)
	}
}
