package field

import (
	"strings"
	"testing"
)

func TestNew_Valid(t *testing.T) {
	tests := []struct {
		name string
		ft   Type
	}{
		{"company", Text},
		{"requirements", Tags},
		{"deadline", Date},
		{"vacancies", Numeric},
		{"isActive", Bool},
		{strings.Repeat("x", 64), Text},
	}

	for _, tt := range tests {
		f, err := New(tt.name, tt.ft)
		if err != nil {
			t.Errorf("New(%q, %q) unexpected error: %v", tt.name, tt.ft, err)
			continue
		}
		if f.Name() != tt.name {
			t.Errorf("Name() = %q, want %q", f.Name(), tt.name)
		}
		if f.FieldType() != tt.ft {
			t.Errorf("FieldType() = %q, want %q", f.FieldType(), tt.ft)
		}
	}
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		desc    string
		name    string
		ft      Type
		opts    []Option
		wantErr string
	}{
		{"empty", "", Text, nil, "required"},
		{"too long", strings.Repeat("x", 65), Text, nil, "too long"},
		{"reserved id", "id", Text, nil, "reserved"},
		{"reserved createdAt", "createdAt", Date, nil, "reserved"},
		{"reserved updatedAt", "updatedAt", Date, nil, "reserved"},
		{"bad type", "x", Type("vector"), nil, "invalid field type"},
		{"oneOf on tags", "x", Tags, []Option{OneOf("a")}, "allowed values"},
		{"today on text", "x", Text, []Option{DefaultToday()}, "default today"},
	}

	for _, tt := range tests {
		_, err := New(tt.name, tt.ft, tt.opts...)
		if err == nil {
			t.Errorf("%s: expected error", tt.desc)
			continue
		}
		if !strings.Contains(err.Error(), tt.wantErr) {
			t.Errorf("%s: error = %q, want %q", tt.desc, err, tt.wantErr)
		}
	}
}

func TestOptions(t *testing.T) {
	f := MustNew("status", Text,
		Searchable(), Facet(), Required(), Default("Applied"),
		OneOf("Applied", "Rejected"), Validate("max=32"))

	if !f.IsSearchable() || !f.IsFacet() || !f.IsRequired() {
		t.Error("flags not applied")
	}
	if f.IsMembership() {
		t.Error("text field must not be a membership facet")
	}
	if f.DefaultValue() != "Applied" {
		t.Errorf("DefaultValue() = %v", f.DefaultValue())
	}
	if !f.Allows("Rejected") || f.Allows("Hired") {
		t.Error("Allows() mismatch")
	}
	if f.ValidateTag() != "max=32" {
		t.Errorf("ValidateTag() = %q", f.ValidateTag())
	}

	tags := MustNew("requirements", Tags, Facet())
	if !tags.IsMembership() {
		t.Error("tags field must be a membership facet")
	}
	if !tags.Allows("anything") {
		t.Error("open field must allow any value")
	}
	if d := MustNew("appliedDate", Date, DefaultToday()); !d.DefaultsToToday() {
		t.Error("DefaultToday not applied")
	}
}

func TestMustNew_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	MustNew("", Text)
}
