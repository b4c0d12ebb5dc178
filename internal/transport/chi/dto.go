package chi

import (
	"github.com/kailas-cloud/hireboard/internal/domain/analytics"
	"github.com/kailas-cloud/hireboard/internal/domain/collection/field"
	"github.com/kailas-cloud/hireboard/internal/domain/dates"
	domrec "github.com/kailas-cloud/hireboard/internal/domain/record"
	analyticsuc "github.com/kailas-cloud/hireboard/internal/usecase/analytics"
	collectionuc "github.com/kailas-cloud/hireboard/internal/usecase/collection"
	healthuc "github.com/kailas-cloud/hireboard/internal/usecase/health"
	"github.com/kailas-cloud/hireboard/internal/usecase/listing"
)

// FieldDefinition describes one collection field.
type FieldDefinition struct {
	Name       string     `json:"name"`
	Type       field.Type `json:"type"`
	Searchable bool       `json:"searchable,omitempty"`
	Facet      bool       `json:"facet,omitempty"`
	Required   bool       `json:"required,omitempty"`
	Default    any        `json:"default,omitempty"`
	OneOf      []string   `json:"one_of,omitempty"`
}

// SortDefinition is one default sort key.
type SortDefinition struct {
	Field string `json:"field"`
	Order string `json:"order"`
}

// CollectionResponse describes a collection.
type CollectionResponse struct {
	Name          string            `json:"name"`
	Title         string            `json:"title"`
	Fields        []FieldDefinition `json:"fields"`
	Base          map[string]string `json:"base,omitempty"`
	DeadlineField string            `json:"deadline_field,omitempty"`
	DefaultSort   []SortDefinition  `json:"default_sort,omitempty"`
	RecordCount   int               `json:"record_count"`
}

// CollectionListResponse wraps GET /collections.
type CollectionListResponse struct {
	Items []CollectionResponse `json:"items"`
}

// RecordListResponse wraps a filtered listing.
type RecordListResponse struct {
	Items   []domrec.Record     `json:"items"`
	Total   int                 `json:"total"`
	Matched int                 `json:"matched"`
	Facets  map[string][]string `json:"facets"`
}

// InsertResponse is returned for a created record.
type InsertResponse struct {
	ID string `json:"id"`
}

// DeadlineItem is one ranked deadline.
type DeadlineItem struct {
	Record        domrec.Record `json:"record"`
	Deadline      string        `json:"deadline"`
	DaysRemaining int           `json:"days_remaining"`
	IsUrgent      bool          `json:"is_urgent"`
}

// DeadlineListResponse wraps GET /collections/{collection}/deadlines.
type DeadlineListResponse struct {
	Items []DeadlineItem `json:"items"`
}

// MonthTrendItem is one month of the application trend.
type MonthTrendItem struct {
	Month        string `json:"month"`
	Applications int    `json:"applications"`
	Interviews   int    `json:"interviews"`
	Offers       int    `json:"offers"`
}

// AnalyticsResponse is the full analytics report.
type AnalyticsResponse struct {
	AsOf              string            `json:"as_of"`
	Range             string            `json:"range"`
	Total             int               `json:"total"`
	Statuses          []analytics.Share `json:"statuses"`
	SuccessRate       int               `json:"success_rate"`
	InterviewRate     int               `json:"interview_rate"`
	Active            int               `json:"active"`
	TopCompanies      []analytics.Entry `json:"top_companies"`
	UpcomingDeadlines []DeadlineItem    `json:"upcoming_deadlines"`
	MonthlyTrend      []MonthTrendItem  `json:"monthly_trend"`
}

// DashboardResponse is the landing-page summary.
type DashboardResponse struct {
	AsOf               string          `json:"as_of"`
	Total              int             `json:"total"`
	Interviews         int             `json:"interviews"`
	Offers             int             `json:"offers"`
	Pending            int             `json:"pending"`
	UpcomingDeadlines  []DeadlineItem  `json:"upcoming_deadlines"`
	RecentApplications []domrec.Record `json:"recent_applications"`
}

// HealthResponse reports component health.
type HealthResponse struct {
	Status  healthuc.Status                 `json:"status"`
	Checks  map[string]healthuc.CheckResult `json:"checks"`
	Version string                          `json:"version"`
}

func collectionToResponse(s collectionuc.Summary) CollectionResponse {
	c := s.Collection
	fields := make([]FieldDefinition, 0, len(c.Fields()))
	for _, f := range c.Fields() {
		fields = append(fields, FieldDefinition{
			Name:       f.Name(),
			Type:       f.FieldType(),
			Searchable: f.IsSearchable(),
			Facet:      f.IsFacet(),
			Required:   f.IsRequired(),
			Default:    f.DefaultValue(),
			OneOf:      f.AllowedValues(),
		})
	}
	var sorts []SortDefinition
	for _, k := range c.DefaultSort() {
		order := "asc"
		if k.Desc {
			order = "desc"
		}
		sorts = append(sorts, SortDefinition{Field: k.Field, Order: order})
	}
	base := c.Base()
	if len(base) == 0 {
		base = nil
	}
	return CollectionResponse{
		Name:          c.Name(),
		Title:         c.Title(),
		Fields:        fields,
		Base:          base,
		DeadlineField: c.DeadlineField(),
		DefaultSort:   sorts,
		RecordCount:   s.Count,
	}
}

func listToResponse(res listing.Result) RecordListResponse {
	items := res.Items
	if items == nil {
		items = []domrec.Record{}
	}
	return RecordListResponse{Items: items, Total: res.Total, Matched: res.Matched, Facets: res.Facets}
}

func deadlinesToResponse(ds []analytics.Deadline) []DeadlineItem {
	out := make([]DeadlineItem, 0, len(ds))
	for _, d := range ds {
		out = append(out, DeadlineItem{
			Record:        d.Record,
			Deadline:      dates.Format(d.Deadline),
			DaysRemaining: d.DaysRemaining,
			IsUrgent:      d.IsUrgent,
		})
	}
	return out
}

func reportToResponse(r analyticsuc.Report) AnalyticsResponse {
	trend := make([]MonthTrendItem, 0, len(r.MonthlyTrend))
	for _, m := range r.MonthlyTrend {
		trend = append(trend, MonthTrendItem(m))
	}
	return AnalyticsResponse{
		AsOf:              dates.Format(r.AsOf),
		Range:             string(r.Range),
		Total:             r.Total,
		Statuses:          r.Statuses,
		SuccessRate:       r.SuccessRate,
		InterviewRate:     r.InterviewRate,
		Active:            r.Active,
		TopCompanies:      r.TopCompanies,
		UpcomingDeadlines: deadlinesToResponse(r.UpcomingDeadlines),
		MonthlyTrend:      trend,
	}
}

func dashboardToResponse(d analyticsuc.Dashboard) DashboardResponse {
	return DashboardResponse{
		AsOf:               dates.Format(d.AsOf),
		Total:              d.Total,
		Interviews:         d.Interviews,
		Offers:             d.Offers,
		Pending:            d.Pending,
		UpcomingDeadlines:  deadlinesToResponse(d.UpcomingDeadlines),
		RecentApplications: d.RecentApplications,
	}
}
