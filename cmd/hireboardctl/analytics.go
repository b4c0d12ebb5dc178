package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/hireboard"
	domana "github.com/kailas-cloud/hireboard/internal/domain/analytics"
	"github.com/kailas-cloud/hireboard/internal/domain/dates"
	analyticsuc "github.com/kailas-cloud/hireboard/internal/usecase/analytics"
)

type analyticsOptions struct {
	asOf       string
	timeRange  string
	urgentDays int
	top        int
	deadlines  int
}

type deadlineOutput struct {
	ID            string `json:"id,omitempty"`
	Company       string `json:"company,omitempty"`
	Deadline      string `json:"deadline"`
	DaysRemaining int    `json:"days_remaining"`
	IsUrgent      bool   `json:"is_urgent"`
}

type monthOutput struct {
	Month        string `json:"month"`
	Applications int    `json:"applications"`
	Interviews   int    `json:"interviews"`
	Offers       int    `json:"offers"`
}

type analyticsOutput struct {
	AsOf              string            `json:"as_of"`
	Range             string            `json:"range"`
	Total             int               `json:"total"`
	Statuses          []hireboard.Share `json:"statuses"`
	SuccessRate       int               `json:"success_rate"`
	InterviewRate     int               `json:"interview_rate"`
	Active            int               `json:"active"`
	TopCompanies      []hireboard.Entry `json:"top_companies"`
	UpcomingDeadlines []deadlineOutput  `json:"upcoming_deadlines"`
	MonthlyTrend      []monthOutput     `json:"monthly_trend"`
}

// fileSource serves the loaded fixture as every collection.
type fileSource []hireboard.Record

func (s fileSource) FetchAll(context.Context, string) ([]hireboard.Record, error) {
	return s, nil
}

func newAnalyticsCmd(root *rootOptions) *cobra.Command {
	opts := &analyticsOptions{}
	cmd := &cobra.Command{
		Use:     "analytics",
		Short:   "Summarize job applications",
		Long:    "Computes the status distribution, success and interview rates, top companies, upcoming deadlines and the monthly trend of an application list.",
		Example: "  hireboardctl analytics --file applications.json --as-of 2024-01-20 --urgent-days 7",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalytics(cmd, root, opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.asOf, "as-of", "", "Reference date YYYY-MM-DD (default: today)")
	f.StringVar(&opts.timeRange, "range", "", "Time range: all, 1month, 3months or 6months")
	f.IntVar(&opts.urgentDays, "urgent-days", 0, "Urgency threshold in days (default 7)")
	f.IntVar(&opts.top, "top", 0, "Number of top companies (default 5)")
	f.IntVar(&opts.deadlines, "deadlines", 0, "Number of upcoming deadlines (default 5)")
	return cmd
}

func runAnalytics(cmd *cobra.Command, root *rootOptions, opts *analyticsOptions) error {
	var asOf time.Time
	if opts.asOf != "" {
		t, ok := dates.ParseString(opts.asOf)
		if !ok {
			return fmt.Errorf("--as-of %q: not a date", opts.asOf)
		}
		asOf = t
	}

	recs, err := root.records()
	if err != nil {
		return err
	}

	svc := analyticsuc.New(fileSource(recs), analyticsuc.DefaultSettings())
	report, err := svc.Report(cmd.Context(), analyticsuc.ReportParams{
		AsOf:         asOf,
		Range:        domana.TimeRange(opts.timeRange),
		UrgentWithin: opts.urgentDays,
		Top:          opts.top,
		Deadlines:    opts.deadlines,
	})
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), toAnalyticsOutput(report))
}

func toAnalyticsOutput(r analyticsuc.Report) analyticsOutput {
	out := analyticsOutput{
		AsOf:              dates.Format(r.AsOf),
		Range:             string(r.Range),
		Total:             r.Total,
		Statuses:          r.Statuses,
		SuccessRate:       r.SuccessRate,
		InterviewRate:     r.InterviewRate,
		Active:            r.Active,
		TopCompanies:      r.TopCompanies,
		UpcomingDeadlines: make([]deadlineOutput, 0, len(r.UpcomingDeadlines)),
		MonthlyTrend:      make([]monthOutput, 0, len(r.MonthlyTrend)),
	}
	for _, d := range r.UpcomingDeadlines {
		company, _ := d.Record.Text("company")
		out.UpcomingDeadlines = append(out.UpcomingDeadlines, deadlineOutput{
			ID:            d.Record.ID(),
			Company:       company,
			Deadline:      dates.Format(d.Deadline),
			DaysRemaining: d.DaysRemaining,
			IsUrgent:      d.IsUrgent,
		})
	}
	for _, m := range r.MonthlyTrend {
		out.MonthlyTrend = append(out.MonthlyTrend, monthOutput(m))
	}
	return out
}
