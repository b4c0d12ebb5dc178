package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the store answers but records cannot be read.
	Degraded Status = "degraded"
	// Unhealthy indicates the store is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
	// CheckSkipped marks a check not run because a dependency failed.
	CheckSkipped CheckResult = "skipped"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db      DBPinger
	records RecordCounter
	probe   string
}

// New creates a Service. records can be nil; when set, probe names the
// collection whose index is read on every check.
func New(db DBPinger, records RecordCounter, probe string) *Service {
	return &Service{db: db, records: records, probe: probe}
}

// Check pings the store, then reads the probe collection.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.db.Ping(ctx); err != nil {
		checks["database"] = CheckError
		if s.records != nil {
			checks["records"] = CheckSkipped
		}
		return Report{Status: Unhealthy, Checks: checks}
	}
	checks["database"] = CheckOK

	if s.records == nil {
		return Report{Status: Healthy, Checks: checks}
	}
	if _, err := s.records.Count(ctx, s.probe); err != nil {
		checks["records"] = CheckError
		return Report{Status: Degraded, Checks: checks}
	}
	checks["records"] = CheckOK
	return Report{Status: Healthy, Checks: checks}
}
