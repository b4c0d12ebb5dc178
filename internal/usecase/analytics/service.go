// Package analytics builds the application pipeline reports: status
// breakdown, conversion rates, top companies, deadlines and monthly trend.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/hireboard/internal/domain"
	domana "github.com/kailas-cloud/hireboard/internal/domain/analytics"
	domcol "github.com/kailas-cloud/hireboard/internal/domain/collection"
	domrec "github.com/kailas-cloud/hireboard/internal/domain/record"
	"github.com/kailas-cloud/hireboard/internal/metrics"
)

// Application fields the reports read.
const (
	statusField      = "status"
	companyField     = "company"
	appliedDateField = "appliedDate"
	deadlineField    = "deadline"
)

// Settings sizes the reports. Zero fields take DefaultSettings values.
type Settings struct {
	UrgencyThresholdDays int
	TopCompanies         int
	UpcomingDeadlines    int
	DashboardDeadlines   int
	RecentApplications   int
}

// DefaultSettings returns the stock report sizes.
func DefaultSettings() Settings {
	return Settings{
		UrgencyThresholdDays: domana.DefaultUrgencyThresholdDays,
		TopCompanies:         5,
		UpcomingDeadlines:    5,
		DashboardDeadlines:   3,
		RecentApplications:   3,
	}
}

func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.UrgencyThresholdDays <= 0 {
		s.UrgencyThresholdDays = d.UrgencyThresholdDays
	}
	if s.TopCompanies <= 0 {
		s.TopCompanies = d.TopCompanies
	}
	if s.UpcomingDeadlines <= 0 {
		s.UpcomingDeadlines = d.UpcomingDeadlines
	}
	if s.DashboardDeadlines <= 0 {
		s.DashboardDeadlines = d.DashboardDeadlines
	}
	if s.RecentApplications <= 0 {
		s.RecentApplications = d.RecentApplications
	}
	return s
}

// ReportParams narrows a report. Zero values take the service settings; a
// zero AsOf means now and an empty Range means all time.
type ReportParams struct {
	AsOf         time.Time
	Range        domana.TimeRange
	UrgentWithin int
	Top          int
	Deadlines    int
}

// MonthTrend counts one calendar month of applications by appliedDate.
type MonthTrend struct {
	Month        string
	Applications int
	Interviews   int
	Offers       int
}

// Report is the full analytics view over applications.
type Report struct {
	AsOf              time.Time
	Range             domana.TimeRange
	Total             int
	Statuses          []domana.Share
	SuccessRate       int
	InterviewRate     int
	Active            int
	TopCompanies      []domana.Entry
	UpcomingDeadlines []domana.Deadline
	MonthlyTrend      []MonthTrend
}

// Dashboard is the landing-page summary.
type Dashboard struct {
	AsOf               time.Time
	Total              int
	Interviews         int
	Offers             int
	Pending            int
	UpcomingDeadlines  []domana.Deadline
	RecentApplications []domrec.Record
}

// Service computes reports from the applications collection.
type Service struct {
	source   RecordSource
	settings Settings
	now      func() time.Time
}

// New creates an analytics service.
func New(source RecordSource, settings Settings) *Service {
	return &Service{source: source, settings: settings.withDefaults(), now: time.Now}
}

// WithClock overrides the reference time used when AsOf is zero.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Report computes the analytics view.
func (s *Service) Report(ctx context.Context, p ReportParams) (Report, error) {
	if p.UrgentWithin < 0 || p.Top < 0 || p.Deadlines < 0 {
		return Report{}, fmt.Errorf("report sizes must be >= 0: %w", domain.ErrInvalidQuery)
	}
	tr, err := domana.ParseTimeRange(string(p.Range))
	if err != nil {
		return Report{}, err
	}
	asOf := s.asOf(p.AsOf)

	all, err := s.applications(ctx)
	if err != nil {
		return Report{}, err
	}
	recs := domana.WithinRange(all, appliedDateField, asOf, tr)

	dist := domana.ComputeStatusDistribution(recs, statusField)
	return Report{
		AsOf:          asOf,
		Range:         tr,
		Total:         dist.Total,
		Statuses:      dist.Shares(),
		SuccessRate:   domana.Rate(recs, domana.FieldEquals(statusField, domcol.StatusOfferReceived)),
		InterviewRate: domana.Rate(recs, domana.FieldEquals(statusField, domcol.StatusInterviewScheduled)),
		Active: domana.Count(recs, domana.FieldIn(statusField,
			domcol.StatusApplied, domcol.StatusInterviewScheduled)),
		TopCompanies: domana.TopN(domana.GroupAndCount(recs, companyField),
			orDefault(p.Top, s.settings.TopCompanies)),
		UpcomingDeadlines: domana.UpcomingDeadlines(recs, deadlineField, asOf,
			orDefault(p.Deadlines, s.settings.UpcomingDeadlines),
			domana.DeadlineOptions{UrgentWithin: orDefault(p.UrgentWithin, s.settings.UrgencyThresholdDays)}),
		MonthlyTrend: monthlyTrend(recs),
	}, nil
}

// Dashboard computes the landing-page summary over all applications.
func (s *Service) Dashboard(ctx context.Context, asOf time.Time) (Dashboard, error) {
	asOf = s.asOf(asOf)
	recs, err := s.applications(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	return Dashboard{
		AsOf:       asOf,
		Total:      len(recs),
		Interviews: domana.Count(recs, domana.FieldEquals(statusField, domcol.StatusInterviewScheduled)),
		Offers:     domana.Count(recs, domana.FieldEquals(statusField, domcol.StatusOfferReceived)),
		Pending:    domana.Count(recs, domana.FieldEquals(statusField, domcol.StatusApplied)),
		UpcomingDeadlines: domana.UpcomingDeadlines(recs, deadlineField, asOf, s.settings.DashboardDeadlines,
			domana.DeadlineOptions{UrgentWithin: s.settings.UrgencyThresholdDays}),
		RecentApplications: domana.MostRecent(recs, appliedDateField, s.settings.RecentApplications),
	}, nil
}

func (s *Service) applications(ctx context.Context) ([]domrec.Record, error) {
	recs, err := s.source.FetchAll(ctx, domcol.Applications)
	if err != nil {
		return nil, fmt.Errorf("fetch applications: %w", err)
	}
	metrics.ObserveQuery(domcol.Applications, len(recs), len(recs))
	return recs, nil
}

func (s *Service) asOf(t time.Time) time.Time {
	if t.IsZero() {
		return s.now()
	}
	return t
}

func monthlyTrend(recs []domrec.Record) []MonthTrend {
	apps := domana.GroupByMonth(recs, appliedDateField)
	interviews := domana.GroupByMonth(
		filter(recs, domana.FieldEquals(statusField, domcol.StatusInterviewScheduled)), appliedDateField)
	offers := domana.GroupByMonth(
		filter(recs, domana.FieldEquals(statusField, domcol.StatusOfferReceived)), appliedDateField)

	out := make([]MonthTrend, 0, apps.Len())
	for _, e := range apps.Entries() {
		out = append(out, MonthTrend{
			Month:        e.Key,
			Applications: e.Count,
			Interviews:   interviews.Get(e.Key),
			Offers:       offers.Get(e.Key),
		})
	}
	return out
}

func filter(recs []domrec.Record, pred domana.Predicate) []domrec.Record {
	var out []domrec.Record
	for _, r := range recs {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
