package record

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/kailas-cloud/hireboard/internal/domain"
	domcol "github.com/kailas-cloud/hireboard/internal/domain/collection"
	"github.com/kailas-cloud/hireboard/internal/domain/collection/field"
	"github.com/kailas-cloud/hireboard/internal/domain/dates"
	domrec "github.com/kailas-cloud/hireboard/internal/domain/record"
	"github.com/kailas-cloud/hireboard/internal/logger"
	"github.com/kailas-cloud/hireboard/internal/metrics"
)

// Service validates and inserts records.
type Service struct {
	writer   Writer
	catalog  Catalog
	validate *validator.Validate
	now      func() time.Time
}

// New creates a record service.
func New(writer Writer, catalog Catalog) *Service {
	return &Service{
		writer:   writer,
		catalog:  catalog,
		validate: validator.New(),
		now:      time.Now,
	}
}

// WithClock overrides the date used for today-defaulted fields.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Insert checks raw against the collection's field rules, fills defaults and
// stores it. The store assigns id, createdAt and updatedAt; caller values
// for them are discarded. Fields the collection does not declare are kept as-is.
func (s *Service) Insert(ctx context.Context, collection string, raw map[string]any) (domrec.Record, error) {
	col, err := s.catalog.Get(collection)
	if err != nil {
		return nil, fmt.Errorf("get collection: %w", err)
	}

	rec := domrec.New(raw)
	delete(rec, domrec.IDField)
	delete(rec, domrec.CreatedAtField)
	delete(rec, domrec.UpdatedAtField)

	for _, f := range col.Fields() {
		if err := s.apply(rec, f); err != nil {
			return nil, err
		}
	}

	stored, err := s.writer.Insert(ctx, collection, rec)
	if err != nil {
		return nil, fmt.Errorf("insert record: %w", err)
	}
	metrics.RecordsInsertedTotal.WithLabelValues(collection).Inc()
	logger.FromContext(ctx).Info("record inserted",
		zap.String("collection", collection),
		zap.String("id", stored.ID()),
	)
	return stored, nil
}

// apply fills a default for an absent field or checks a present one.
func (s *Service) apply(rec domrec.Record, f field.Field) error {
	name := f.Name()
	if !present(rec, name) {
		delete(rec, name)
		switch {
		case f.DefaultsToToday():
			rec[name] = dates.Format(s.now())
		case f.DefaultValue() != nil:
			rec[name] = domrec.New(map[string]any{name: f.DefaultValue()})[name]
		case f.IsRequired():
			return domain.NewFieldError(name, "is required")
		}
		return nil
	}

	v := rec[name]
	if err := checkType(f, v); err != nil {
		return err
	}
	if f.FieldType() == field.Date {
		// Stored dates are text so exact matches and facets see one form.
		if t, ok := v.(time.Time); ok {
			v = dates.FormatValue(t)
			rec[name] = v
		}
	}
	if text, ok := v.(string); ok && !f.Allows(text) {
		return domain.NewFieldError(name, "must be one of "+strings.Join(f.AllowedValues(), ", "))
	}
	if tag := f.ValidateTag(); tag != "" {
		if err := s.validate.Var(v, tag); err != nil {
			return domain.NewFieldError(name, "fails "+failedTag(err, tag))
		}
	}
	return nil
}

// present treats nil and blank strings as absent.
func present(rec domrec.Record, name string) bool {
	if !rec.Has(name) {
		return false
	}
	if s, ok := rec[name].(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return true
}

func checkType(f field.Field, v any) error {
	var ok bool
	switch f.FieldType() {
	case field.Text:
		_, ok = v.(string)
	case field.Tags:
		_, ok = v.([]string)
	case field.Date:
		_, ok = dates.Parse(v)
	case field.Numeric:
		_, ok = v.(float64)
	case field.Bool:
		_, ok = v.(bool)
	}
	if !ok {
		return domain.NewFieldError(f.Name(), "must be "+typeNoun(f.FieldType()))
	}
	return nil
}

func typeNoun(t field.Type) string {
	switch t {
	case field.Tags:
		return "a list of strings"
	case field.Date:
		return "a date (YYYY-MM-DD or RFC 3339)"
	case field.Numeric:
		return "a number"
	case field.Bool:
		return "a boolean"
	default:
		return "a string"
	}
}

// failedTag names the validator rule that rejected the value.
func failedTag(err error, tag string) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if p := verrs[0].Param(); p != "" {
			return verrs[0].Tag() + "=" + p
		}
		return verrs[0].Tag()
	}
	return tag
}

var _ Catalog = (*domcol.Catalog)(nil)
