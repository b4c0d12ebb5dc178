package collection

import (
	"fmt"

	"github.com/kailas-cloud/hireboard/internal/domain"
	"github.com/kailas-cloud/hireboard/internal/domain/collection/field"
)

// Built-in collection names.
const (
	Applications       = "applications"
	Jobs               = "jobs"
	GovtJobs           = "govt_jobs"
	ReadingMaterials   = "reading_materials"
	Interviewers       = "interviewers"
	InterviewQuestions = "interview_questions"
	InterviewTips      = "interview_tips"
	InterviewSessions  = "interview_sessions"
	Users              = "users"
)

// Application statuses.
const (
	StatusApplied            = "Applied"
	StatusInterviewScheduled = "Interview Scheduled"
	StatusOfferReceived      = "Offer Received"
	StatusRejected           = "Rejected"
	StatusSaved              = "Saved"
)

// User roles.
const (
	RoleJobSeeker   = "job_seeker"
	RoleInterviewer = "interviewer"
	RoleAdmin       = "admin"
)

// ApplicationStatuses lists every application status in pipeline order.
var ApplicationStatuses = []string{
	StatusApplied, StatusInterviewScheduled, StatusOfferReceived, StatusRejected, StatusSaved,
}

// Catalog is the registry of known collections, kept in registration order.
type Catalog struct {
	order  []string
	byName map[string]Collection
}

// NewCatalog builds a catalog, rejecting duplicate names.
func NewCatalog(cols ...Collection) (*Catalog, error) {
	c := &Catalog{byName: make(map[string]Collection, len(cols))}
	for _, col := range cols {
		if _, dup := c.byName[col.Name()]; dup {
			return nil, fmt.Errorf("duplicate collection: %s", col.Name())
		}
		c.order = append(c.order, col.Name())
		c.byName[col.Name()] = col
	}
	return c, nil
}

// Get returns the named collection or domain.ErrUnknownCollection.
func (c *Catalog) Get(name string) (Collection, error) {
	col, ok := c.byName[name]
	if !ok {
		return Collection{}, fmt.Errorf("%w: %q", domain.ErrUnknownCollection, name)
	}
	return col, nil
}

// All returns collections in registration order.
func (c *Catalog) All() []Collection {
	out := make([]Collection, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.byName[name])
	}
	return out
}

// Names returns collection names in registration order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.order...)
}

// Default returns the catalog of built-in job tracker collections.
func Default() *Catalog {
	c, err := NewCatalog(
		applications(), jobs(), govtJobs(), readingMaterials(),
		interviewers(), interviewQuestions(), interviewTips(), interviewSessions(),
		users(),
	)
	if err != nil {
		panic(err)
	}
	return c
}

func applications() Collection {
	return MustNew(Applications, []field.Field{
		field.MustNew("company", field.Text, field.Searchable(), field.Facet(), field.Required()),
		field.MustNew("role", field.Text, field.Searchable(), field.Required()),
		field.MustNew("status", field.Text, field.Facet(),
			field.Default(StatusApplied), field.OneOf(ApplicationStatuses...)),
		field.MustNew("appliedDate", field.Date, field.DefaultToday()),
		field.MustNew("deadline", field.Date),
		field.MustNew("location", field.Text, field.Searchable(), field.Facet()),
		field.MustNew("salary", field.Text),
		field.MustNew("notes", field.Text, field.Searchable(), field.Validate("max=2000")),
	},
		WithTitle("Applications"),
		WithDeadline("deadline"),
		WithDefaultSort(Sort{Field: "appliedDate", Desc: true}),
	)
}

func jobs() Collection {
	return MustNew(Jobs, []field.Field{
		field.MustNew("title", field.Text, field.Searchable(), field.Required()),
		field.MustNew("company", field.Text, field.Searchable(), field.Required()),
		field.MustNew("location", field.Text, field.Facet(), field.Required()),
		field.MustNew("type", field.Text, field.Facet(),
			field.OneOf("Full-time", "Part-time", "Contract", "Remote")),
		field.MustNew("salary", field.Text),
		field.MustNew("postedDate", field.Date, field.DefaultToday()),
		field.MustNew("deadline", field.Date),
		field.MustNew("description", field.Text, field.Searchable()),
		field.MustNew("requirements", field.Tags, field.Facet()),
		field.MustNew("status", field.Text, field.Default("active")),
		field.MustNew("applicationsCount", field.Numeric, field.Default(0), field.Validate("gte=0")),
	},
		WithTitle("Latest Jobs"),
		WithDeadline("deadline"),
		WithDefaultSort(Sort{Field: "postedDate", Desc: true}),
	)
}

func govtJobs() Collection {
	return MustNew(GovtJobs, []field.Field{
		field.MustNew("title", field.Text, field.Searchable(), field.Required()),
		field.MustNew("department", field.Text, field.Searchable(), field.Facet(), field.Required()),
		field.MustNew("eligibility", field.Text, field.Searchable()),
		field.MustNew("location", field.Text, field.Facet()),
		field.MustNew("lastDate", field.Date, field.Required()),
		field.MustNew("applyLink", field.Text),
		field.MustNew("vacancies", field.Numeric, field.Validate("gte=0")),
	},
		WithTitle("Government Jobs"),
		WithDeadline("lastDate"),
		WithDefaultSort(Sort{Field: "lastDate"}),
	)
}

func readingMaterials() Collection {
	return MustNew(ReadingMaterials, []field.Field{
		field.MustNew("title", field.Text, field.Searchable(), field.Required()),
		field.MustNew("category", field.Text, field.Facet(), field.OneOf(
			"DSA", "System Design", "HR Questions", "Aptitude", "Resume Tips", "Behavioral", "Technical")),
		field.MustNew("type", field.Text, field.Facet(),
			field.OneOf("Article", "Video", "Course", "Book", "Practice")),
		field.MustNew("url", field.Text),
		field.MustNew("description", field.Text, field.Searchable()),
		field.MustNew("difficulty", field.Text, field.Facet(),
			field.OneOf("Beginner", "Intermediate", "Advanced")),
		field.MustNew("estimatedTime", field.Text),
		field.MustNew("author", field.Text, field.Searchable()),
		field.MustNew("rating", field.Numeric, field.Validate("gte=0,lte=5")),
	},
		WithTitle("Reading Materials"),
		WithDefaultSort(Sort{Field: "rating", Desc: true}),
	)
}

func interviewers() Collection {
	return MustNew(Interviewers, []field.Field{
		field.MustNew("name", field.Text, field.Searchable(), field.Required()),
		field.MustNew("email", field.Text, field.Required(), field.Validate("email")),
		field.MustNew("company", field.Text, field.Facet()),
		field.MustNew("role", field.Text, field.Searchable()),
		field.MustNew("department", field.Text, field.Facet()),
		field.MustNew("experience", field.Numeric, field.Validate("gte=0")),
		field.MustNew("specializations", field.Tags, field.Searchable(), field.Facet()),
		field.MustNew("bio", field.Text),
		field.MustNew("rating", field.Numeric, field.Validate("gte=0,lte=5")),
		field.MustNew("totalInterviews", field.Numeric, field.Validate("gte=0")),
		field.MustNew("interviewTypes", field.Tags, field.Facet()),
		field.MustNew("linkedIn", field.Text, field.Validate("omitempty,url")),
		field.MustNew("github", field.Text, field.Validate("omitempty,url")),
		field.MustNew("isActive", field.Bool, field.Default(true)),
		field.MustNew("joinedDate", field.Date, field.DefaultToday()),
	},
		WithTitle("Interviewer Directory"),
		WithBase("isActive", "true"),
		WithDefaultSort(Sort{Field: "rating", Desc: true}),
	)
}

func interviewQuestions() Collection {
	return MustNew(InterviewQuestions, []field.Field{
		field.MustNew("category", field.Text, field.Facet(), field.Required(),
			field.OneOf("Technical", "Behavioral", "Company-Specific", "General")),
		field.MustNew("question", field.Text, field.Searchable(), field.Required()),
		field.MustNew("sampleAnswer", field.Text, field.Searchable()),
		field.MustNew("tips", field.Tags),
	}, WithTitle("Interview Questions"))
}

func interviewTips() Collection {
	return MustNew(InterviewTips, []field.Field{
		field.MustNew("category", field.Text, field.Facet(), field.Required(),
			field.OneOf("Before Interview", "During Interview", "After Interview")),
		field.MustNew("title", field.Text, field.Searchable(), field.Required()),
		field.MustNew("description", field.Text, field.Searchable()),
		field.MustNew("importance", field.Text, field.Facet(), field.OneOf("High", "Medium", "Low")),
	}, WithTitle("Interview Tips"))
}

func interviewSessions() Collection {
	return MustNew(InterviewSessions, []field.Field{
		field.MustNew("interviewerId", field.Text, field.Facet(), field.Required()),
		field.MustNew("candidateId", field.Text, field.Facet(), field.Required()),
		field.MustNew("scheduledDate", field.Date, field.Required()),
		field.MustNew("duration", field.Numeric, field.Validate("gt=0")),
		field.MustNew("type", field.Text, field.Facet(),
			field.OneOf("Technical", "Behavioral", "System Design", "HR")),
		field.MustNew("status", field.Text, field.Facet(), field.Default("Scheduled"),
			field.OneOf("Scheduled", "Completed", "Cancelled", "In Progress")),
		field.MustNew("feedback", field.Text, field.Searchable()),
		field.MustNew("rating", field.Numeric, field.Validate("omitempty,gte=0,lte=5")),
		field.MustNew("notes", field.Text, field.Searchable()),
		field.MustNew("meetingLink", field.Text, field.Validate("omitempty,url")),
	},
		WithTitle("Interview Sessions"),
		WithDeadline("scheduledDate"),
		WithDefaultSort(Sort{Field: "scheduledDate"}),
	)
}

func users() Collection {
	return MustNew(Users, []field.Field{
		field.MustNew("name", field.Text, field.Searchable(), field.Required()),
		field.MustNew("email", field.Text, field.Searchable(), field.Required(), field.Validate("email")),
		field.MustNew("role", field.Text, field.Facet(), field.Required(),
			field.OneOf(RoleJobSeeker, RoleInterviewer, RoleAdmin)),
		field.MustNew("phone", field.Text),
		field.MustNew("location", field.Text, field.Facet()),
		field.MustNew("skills", field.Tags, field.Searchable(), field.Facet()),
		field.MustNew("experience", field.Numeric, field.Validate("gte=0")),
		field.MustNew("resume", field.Text),
		field.MustNew("profileImage", field.Text, field.Validate("omitempty,url")),
	}, WithTitle("Users"))
}
