package seminars

import (
	"reflect"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/aura-seminar/admin/internal/models"
)

const inputDateLayout = "2006-01-02"

var photoPattern = regexp.MustCompile(`(?i)^https?://\S+$`)

// Form is the user input for a seminar, shared by the create and edit screens.
// Date is in input format (YYYY-MM-DD).
type Form struct {
	Title       string `form:"title" json:"title" validate:"required"`
	Description string `form:"description" json:"description" validate:"required,max=1000"`
	Date        string `form:"date" json:"date" validate:"required,datetime=2006-01-02"`
	Time        string `form:"time" json:"time" validate:"required"`
	Photo       string `form:"photo" json:"photo" validate:"required,photourl"`

	// display-format date of the seminar being edited; empty on create
	originalDate string
}

// FormFor prefills an edit form from an existing seminar.
func FormFor(s models.Seminar) Form {
	return Form{
		Title:        s.Title,
		Description:  s.Description,
		Date:         models.InputDate(s.Date),
		Time:         s.Time,
		Photo:        s.Photo,
		originalDate: s.Date,
	}
}

// EditOf marks f as an edit of s, so an unchanged past date is accepted.
func (f Form) EditOf(s models.Seminar) Form {
	f.originalDate = s.Date
	return f
}

// DescriptionLength is the live character counter value. A line break counts
// as one character however the browser sent it.
func (f Form) DescriptionLength() int {
	return utf8.RuneCountInString(normalizeNewlines(f.Description))
}

// normalizeNewlines turns the CRLF line breaks browsers submit into LF.
func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

// Seminar builds the record sent to the store.
func (f Form) Seminar(id models.ID) models.Seminar {
	return models.Seminar{
		ID:          id,
		Title:       f.Title,
		Description: normalizeNewlines(f.Description),
		Date:        models.DisplayDate(f.Date),
		Time:        f.Time,
		Photo:       f.Photo,
	}
}

// ValidationErrors maps a form field name to its localized message.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "invalid fields: " + strings.Join(fields, ", ")
}

// Validator checks seminar forms.
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

// NewValidator creates a validator. now supplies "today" for the date rule; nil means time.Now.
func NewValidator(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	v := &Validator{validate: validator.New(), now: now}
	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.validate.RegisterValidation("photourl", func(fl validator.FieldLevel) bool {
		return photoPattern.MatchString(fl.Field().String())
	})
	v.validate.RegisterStructValidation(v.dateNotPast, Form{})
	return v
}

// Validate returns nil or ValidationErrors.
func (v *Validator) Validate(f Form) error {
	f.Description = normalizeNewlines(f.Description)
	err := v.validate.Struct(f)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	out := make(ValidationErrors, len(fieldErrs))
	for _, fe := range fieldErrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = message(fe.Field(), fe.Tag())
	}
	return out
}

// ValidateExcept is Validate ignoring the named fields, e.g. "photo" while
// an uploaded file has not been stored yet.
func (v *Validator) ValidateExcept(f Form, fields ...string) error {
	err := v.Validate(f)
	verrs, ok := err.(ValidationErrors)
	if !ok {
		return err
	}
	for _, name := range fields {
		delete(verrs, name)
	}
	if len(verrs) == 0 {
		return nil
	}
	return verrs
}

func (v *Validator) dateNotPast(sl validator.StructLevel) {
	f := sl.Current().Interface().(Form)
	if _, err := time.Parse(inputDateLayout, f.Date); err != nil {
		return
	}
	if f.originalDate != "" && models.InputDate(f.originalDate) == f.Date {
		return
	}
	// today in server local time, not UTC
	if f.Date < v.now().Format(inputDateLayout) {
		sl.ReportError(f.Date, "date", "Date", "notpast", "")
	}
}
