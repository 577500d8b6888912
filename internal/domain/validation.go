package domain

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type contextKey int

const todayContextKey contextKey = iota

// validate is safe for concurrent use once the custom tags are registered.
var validate = NewValidator()

// NewValidator returns a validator with the "notblank" and "pastdate" tags
// registered. Struct field errors are reported under their JSON key.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	if err := v.RegisterValidation("notblank", isNotBlank); err != nil {
		// ALLOW-PANIC: tag names are constants, registration cannot fail at runtime
		panic(fmt.Sprintf("register notblank: %v", err))
	}
	if err := v.RegisterValidationCtx("pastdate", isPastDate); err != nil {
		// ALLOW-PANIC: tag names are constants, registration cannot fail at runtime
		panic(fmt.Sprintf("register pastdate: %v", err))
	}
	return v
}

// WithToday returns a context that makes "pastdate" compare against today
// instead of the current UTC date.
func WithToday(ctx context.Context, today Date) context.Context {
	return context.WithValue(ctx, todayContextKey, today)
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return f.Name
	}
	return name
}

func isNotBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}
	return strings.TrimSpace(field.String()) != ""
}

func isPastDate(ctx context.Context, fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	today, ok := ctx.Value(todayContextKey).(Date)
	if !ok {
		today = DateOf(time.Now())
	}
	return DateOf(t).Before(today)
}

// ViolationMessage renders a validator failure the way clients see it.
func ViolationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be null"
	case "notblank":
		return "must not be blank"
	case "pastdate":
		return "must be a past date"
	case "min", "gte":
		switch fe.Kind() {
		case reflect.Slice, reflect.Map, reflect.Array:
			if fe.Param() == "1" {
				return "must not be empty"
			}
			return "size must be at least " + fe.Param()
		case reflect.String:
			return "size must be at least " + fe.Param()
		}
		return "must be greater than or equal to " + fe.Param()
	case "max", "lte":
		if fe.Kind() == reflect.String {
			return "size must be at most " + fe.Param()
		}
		return "must be less than or equal to " + fe.Param()
	default:
		return "is invalid"
	}
}

// fieldCheck is one rule applied to one field of a request projection.
type fieldCheck struct {
	field string
	value any
	tag   string
	// minLen and maxLen are set for text length rules so the message can
	// name both bounds.
	minLen, maxLen int
	// violation short-circuits the validator with a fixed message.
	violation string
	skip      bool
}

func (c fieldCheck) message(fe validator.FieldError) string {
	if c.maxLen > 0 && fe.Kind() == reflect.String && (fe.Tag() == "min" || fe.Tag() == "max") {
		return fmt.Sprintf("size must be between %d and %d", c.minLen, c.maxLen)
	}
	return ViolationMessage(fe)
}

func requiredName(field string, v *string) fieldCheck {
	s := ""
	if v != nil {
		s = *v
	}
	return fieldCheck{field: field, value: s, tag: "notblank,max=100", minLen: 1, maxLen: 100}
}

func optionalText(field string, v *string, maxLen int) fieldCheck {
	if v == nil {
		return fieldCheck{field: field, skip: true}
	}
	return fieldCheck{
		field:  field,
		value:  *v,
		tag:    fmt.Sprintf("min=1,max=%d", maxLen),
		minLen: 1,
		maxLen: maxLen,
	}
}

func ageCheck(v *int) fieldCheck {
	if v == nil {
		return fieldCheck{field: "age", skip: true}
	}
	return fieldCheck{field: "age", value: *v, tag: "min=0,max=150"}
}

func birthDateCheck(v *Date) fieldCheck {
	if v == nil {
		return fieldCheck{field: "birthDate", skip: true}
	}
	return fieldCheck{field: "birthDate", value: v.Time(), tag: "pastdate"}
}

func notNull(field string) fieldCheck {
	return fieldCheck{field: field, violation: "must not be null"}
}

// ValidateDraft checks a creation request and returns a KindValidation
// *Error listing every violation in field order. now fixes the reference
// date for birthDate.
func ValidateDraft(d *EmployeeDraft, now time.Time) error {
	return runChecks(now, []fieldCheck{
		requiredName("firstName", d.FirstName),
		optionalText("middleName", d.MiddleName, 100),
		requiredName("lastName", d.LastName),
		optionalText("secondLastName", d.SecondLastName, 100),
		ageCheck(d.Age),
		optionalText("sex", d.Sex, 20),
		birthDateCheck(d.BirthDate),
		optionalText("position", d.Position, 120),
	})
}

// ValidatePatch checks the present fields of an update request. Explicit null
// on firstName, lastName or active is a violation; on any other field it
// clears the value and needs no check.
func ValidatePatch(p *EmployeePatch, now time.Time) error {
	if p == nil {
		return nil
	}
	return runChecks(now, []fieldCheck{
		patchName("firstName", p.FirstName),
		patchText("middleName", p.MiddleName, 100),
		patchName("lastName", p.LastName),
		patchText("secondLastName", p.SecondLastName, 100),
		ageCheck(presentValue(p.Age)),
		patchText("sex", p.Sex, 20),
		birthDateCheck(presentValue(p.BirthDate)),
		patchText("position", p.Position, 120),
		patchRequired("active", p.Active),
	})
}

func presentValue[T any](o Optional[T]) *T {
	if v, ok := o.Get(); ok {
		return &v
	}
	return nil
}

func patchName(field string, o Optional[string]) fieldCheck {
	if o.IsNull() {
		return notNull(field)
	}
	if v, ok := o.Get(); ok {
		return requiredName(field, &v)
	}
	return fieldCheck{field: field, skip: true}
}

func patchText(field string, o Optional[string], maxLen int) fieldCheck {
	return optionalText(field, presentValue(o), maxLen)
}

func patchRequired[T any](field string, o Optional[T]) fieldCheck {
	if o.IsNull() {
		return notNull(field)
	}
	return fieldCheck{field: field, skip: true}
}

func runChecks(now time.Time, checks []fieldCheck) error {
	ctx := WithToday(context.Background(), DateOf(now))

	var details []string
	for _, c := range checks {
		if c.violation != "" {
			details = append(details, c.field+": "+c.violation)
			continue
		}
		if c.skip {
			continue
		}

		err := validate.VarCtx(ctx, c.value, c.tag)
		if err == nil {
			continue
		}
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
			return fmt.Errorf("validating %s: %w", c.field, err)
		}
		details = append(details, c.field+": "+c.message(fieldErrs[0]))
	}

	if len(details) > 0 {
		return NewValidationError(details)
	}
	return nil
}

// FieldViolations converts the result of a struct validation into
// "field: message" details. Any other error is returned unchanged.
func FieldViolations(err error) ([]string, error) {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil, err
	}
	details := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, fe.Field()+": "+ViolationMessage(fe))
	}
	return details, nil
}
