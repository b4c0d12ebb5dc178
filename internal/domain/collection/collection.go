package collection

import (
	"fmt"
	"maps"
	"regexp"

	"github.com/kailas-cloud/hireboard/internal/domain/collection/field"
	"github.com/kailas-cloud/hireboard/internal/domain/record"
)

var nameRegex = regexp.MustCompile(`^[a-z0-9_]+$`)

// Sort is a default ordering for listings.
type Sort struct {
	Field string
	Desc  bool
}

// Collection describes one record kind: its fields, how it is searched and
// faceted, and which constraints always apply (immutable value object).
type Collection struct {
	name          string
	title         string
	fields        []field.Field
	base          map[string]string
	deadlineField string
	defaultSort   []Sort
}

// Option configures a Collection.
type Option func(*Collection)

// WithTitle sets the human-readable collection title.
func WithTitle(title string) Option { return func(c *Collection) { c.title = title } }

// WithBase adds a constraint applied to every listing (e.g. isActive=true).
func WithBase(fieldName, value string) Option {
	return func(c *Collection) {
		if c.base == nil {
			c.base = make(map[string]string)
		}
		c.base[fieldName] = value
	}
}

// WithDeadline names the date field ranked by deadline queries.
func WithDeadline(fieldName string) Option {
	return func(c *Collection) { c.deadlineField = fieldName }
}

// WithDefaultSort sets the ordering used when a listing names none.
func WithDefaultSort(keys ...Sort) Option {
	return func(c *Collection) { c.defaultSort = append([]Sort(nil), keys...) }
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("collection name is required")
	}
	if len(name) > 64 {
		return fmt.Errorf("collection name too long (max 64)")
	}
	if !nameRegex.MatchString(name) {
		return fmt.Errorf("collection name must be lowercase alphanumeric with underscores")
	}
	return nil
}

func validateFields(fields []field.Field) error {
	if len(fields) > 64 {
		return fmt.Errorf("too many fields (max 64)")
	}
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if seen[f.Name()] {
			return fmt.Errorf("duplicate field name: %s", f.Name())
		}
		seen[f.Name()] = true
	}
	return nil
}

// New validates and creates a Collection.
// Name: ^[a-z0-9_]+$, 1-64 chars. Fields: unique names, max 64. Base,
// deadline and sort fields must be declared.
func New(name string, fields []field.Field, opts ...Option) (Collection, error) {
	if err := validateName(name); err != nil {
		return Collection{}, err
	}
	if err := validateFields(fields); err != nil {
		return Collection{}, err
	}

	c := Collection{name: name, title: name, fields: fields}
	for _, opt := range opts {
		opt(&c)
	}

	for k := range c.base {
		if _, ok := c.FieldByName(k); !ok {
			return Collection{}, fmt.Errorf("base constraint on undeclared field: %s", k)
		}
	}
	if c.deadlineField != "" {
		f, ok := c.FieldByName(c.deadlineField)
		if !ok || f.FieldType() != field.Date {
			return Collection{}, fmt.Errorf("deadline field must be a declared date field: %s", c.deadlineField)
		}
	}
	for _, s := range c.defaultSort {
		if _, ok := c.FieldByName(s.Field); !ok && s.Field != record.CreatedAtField {
			return Collection{}, fmt.Errorf("default sort on undeclared field: %s", s.Field)
		}
	}
	return c, nil
}

// MustNew is New that panics on error. Used for the built-in catalog.
func MustNew(name string, fields []field.Field, opts ...Option) Collection {
	c, err := New(name, fields, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Name returns the collection name.
func (c Collection) Name() string { return c.name }

// Title returns the display title.
func (c Collection) Title() string { return c.title }

// Fields returns the field definitions.
func (c Collection) Fields() []field.Field { return c.fields }

// FieldByName looks up a field by name.
func (c Collection) FieldByName(name string) (field.Field, bool) {
	for _, f := range c.fields {
		if f.Name() == name {
			return f, true
		}
	}
	return field.Field{}, false
}

// SearchFields returns the free-text search fields in declaration order.
func (c Collection) SearchFields() []string {
	var out []string
	for _, f := range c.fields {
		if f.IsSearchable() {
			out = append(out, f.Name())
		}
	}
	return out
}

// ExactFacets returns facet fields matched by exact value.
func (c Collection) ExactFacets() []string {
	var out []string
	for _, f := range c.fields {
		if f.IsFacet() && !f.IsMembership() {
			out = append(out, f.Name())
		}
	}
	return out
}

// MembershipFacets returns facet fields matched by array membership.
func (c Collection) MembershipFacets() []string {
	var out []string
	for _, f := range c.fields {
		if f.IsFacet() && f.IsMembership() {
			out = append(out, f.Name())
		}
	}
	return out
}

// IsFacet reports whether name is one of the collection's facet fields.
func (c Collection) IsFacet(name string) bool {
	f, ok := c.FieldByName(name)
	return ok && f.IsFacet()
}

// Base returns a copy of the constraints applied to every listing.
func (c Collection) Base() map[string]string { return maps.Clone(c.base) }

// DeadlineField returns the deadline date field, or "".
func (c Collection) DeadlineField() string { return c.deadlineField }

// HasDeadline reports whether the collection supports deadline ranking.
func (c Collection) HasDeadline() bool { return c.deadlineField != "" }

// DefaultSort returns the listing order used when none is requested.
func (c Collection) DefaultSort() []Sort { return c.defaultSort }
