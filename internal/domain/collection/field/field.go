package field

import (
	"fmt"
	"slices"
)

// Type is the value type a field holds.
type Type string

// Field type constants.
const (
	Text    Type = "text"
	Tags    Type = "tags"
	Date    Type = "date"
	Numeric Type = "numeric"
	Bool    Type = "bool"
)

// IsValid checks if the field type is supported.
func (t Type) IsValid() bool {
	switch t {
	case Text, Tags, Date, Numeric, Bool:
		return true
	}
	return false
}

var reservedFieldNames = map[string]bool{
	"id": true, "createdAt": true, "updatedAt": true,
}

// Field is an immutable value object describing one collection field.
type Field struct {
	name         string
	fieldType    Type
	searchable   bool
	facet        bool
	required     bool
	defaultValue any
	defaultToday bool
	oneOf        []string
	validate     string
}

// Option configures a Field.
type Option func(*Field)

// Searchable includes the field in free-text search.
func Searchable() Option { return func(f *Field) { f.searchable = true } }

// Facet exposes the field as a filter dropdown. Tags fields become
// membership facets, everything else exact facets.
func Facet() Option { return func(f *Field) { f.facet = true } }

// Required rejects inserts without the field.
func Required() Option { return func(f *Field) { f.required = true } }

// Default fills the field on insert when absent.
func Default(v any) Option { return func(f *Field) { f.defaultValue = v } }

// DefaultToday fills a date field with the insert date when absent.
func DefaultToday() Option { return func(f *Field) { f.defaultToday = true } }

// OneOf restricts a text field to the listed values.
func OneOf(values ...string) Option {
	return func(f *Field) { f.oneOf = append([]string(nil), values...) }
}

// Validate attaches a validator tag (e.g. "email", "url") checked on insert.
func Validate(tag string) Option { return func(f *Field) { f.validate = tag } }

// New validates and creates a Field.
// Name must be non-empty, max 64 chars, and not reserved.
func New(name string, ft Type, opts ...Option) (Field, error) {
	if name == "" {
		return Field{}, fmt.Errorf("field name is required")
	}
	if len(name) > 64 {
		return Field{}, fmt.Errorf("field name %q too long (max 64)", name)
	}
	if reservedFieldNames[name] {
		return Field{}, fmt.Errorf("field name %q is reserved", name)
	}
	if !ft.IsValid() {
		return Field{}, fmt.Errorf("invalid field type %q for %q", ft, name)
	}
	f := Field{name: name, fieldType: ft}
	for _, opt := range opts {
		opt(&f)
	}
	if len(f.oneOf) > 0 && ft != Text {
		return Field{}, fmt.Errorf("field %q: allowed values only apply to text fields", name)
	}
	if f.defaultToday && ft != Date {
		return Field{}, fmt.Errorf("field %q: default today only applies to date fields", name)
	}
	return f, nil
}

// MustNew is New that panics on error. Used for the built-in catalog.
func MustNew(name string, ft Type, opts ...Option) Field {
	f, err := New(name, ft, opts...)
	if err != nil {
		panic(err)
	}
	return f
}

// Name returns the field name.
func (f Field) Name() string { return f.name }

// FieldType returns the field's value type.
func (f Field) FieldType() Type { return f.fieldType }

// IsSearchable reports whether free-text search covers the field.
func (f Field) IsSearchable() bool { return f.searchable }

// IsFacet reports whether the field is offered as a filter.
func (f Field) IsFacet() bool { return f.facet }

// IsMembership reports whether the field filters by array membership.
func (f Field) IsMembership() bool { return f.fieldType == Tags }

// IsRequired reports whether inserts must carry the field.
func (f Field) IsRequired() bool { return f.required }

// DefaultValue returns the insert default, or nil.
func (f Field) DefaultValue() any { return f.defaultValue }

// DefaultsToToday reports whether the field defaults to the insert date.
func (f Field) DefaultsToToday() bool { return f.defaultToday }

// AllowedValues returns the closed value set for the field, if any.
func (f Field) AllowedValues() []string { return f.oneOf }

// Allows reports whether v is acceptable for a closed value set.
func (f Field) Allows(v string) bool {
	return len(f.oneOf) == 0 || slices.Contains(f.oneOf, v)
}

// ValidateTag returns the validator tag, or "".
func (f Field) ValidateTag() string { return f.validate }
