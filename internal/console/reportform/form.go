// Package reportform holds the daily/weekly report form and the rules it
// enforces before anything is sent to the backend.
package reportform

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/nnsolutions/isms/internal/console/client"
)

// DateLayout is the form's date format.
const DateLayout = "2006-01-02"

// SundayMessage is the alert shown when a Sunday is picked.
const SundayMessage = "Daily reports cannot be submitted for Sundays."

// ErrSunday is returned when a Sunday is chosen as the report date.
var ErrSunday = errors.New("report date falls on a sunday")

var validate = validator.New()

// Form is the editable report draft.
type Form struct {
	Kind           client.ReportKind `validate:"required,oneof=daily weekly"`
	ID             string
	Name           string `validate:"required"`
	ReportContent  string `validate:"required"`
	Date           string `validate:"required"`
	Day            string `validate:"required"`
	Designation    string `validate:"required"`
	ProjectName    string `validate:"required"`
	MobileNumber   string `validate:"required"`
	Email          string `validate:"required,email"`
	AttachmentName string
	WeeklySummary  string `validate:"required_if=Kind weekly"`
}

// New returns an empty draft dated today.
func New(kind client.ReportKind, now time.Time) Form {
	return Form{
		Kind: kind,
		Date: now.Format(DateLayout),
		Day:  now.Weekday().String(),
	}
}

// SetDate sets the date and derives the weekday. A Sunday is refused and
// leaves Date and Day untouched. The rule applies to weekly drafts as well.
func (f *Form) SetDate(value string) error {
	d, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", value, err)
	}
	if d.Weekday() == time.Sunday {
		return ErrSunday
	}
	f.Date = d.Format(DateLayout)
	f.Day = d.Weekday().String()
	return nil
}

// Validate checks required fields and the Sunday rule.
func (f *Form) Validate() error {
	if err := validate.Struct(f); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return fmt.Errorf("%s", strings.Join(msgs, "; "))
		}
		return err
	}
	if d, err := time.Parse(DateLayout, f.Date); err != nil {
		return fmt.Errorf("invalid date %q", f.Date)
	} else if d.Weekday() == time.Sunday {
		return ErrSunday
	}
	return nil
}

// Build turns the draft into the report payload. Free-text names are title
// cased and blank fields get the historic defaults.
func (f *Form) Build(now time.Time, fallbackAuthor string) client.Report {
	id := f.ID
	if id == "" {
		id = "REP-" + strconv.FormatInt(now.UnixMilli(), 10)
	}
	date, day := f.Date, f.Day
	if date == "" {
		date = now.Format(DateLayout)
	}
	if day == "" {
		day = now.Weekday().String()
	}
	if fallbackAuthor == "" {
		fallbackAuthor = "Unknown"
	}
	r := client.Report{
		ID:             id,
		Title:          orDefault(TitleCase(f.ProjectName), "New Report"),
		Designation:    orDefault(TitleCase(f.Designation), "Staff"),
		CreatedBy:      orDefault(TitleCase(f.Name), fallbackAuthor),
		Date:           date,
		Day:            day,
		Status:         client.ReportPending,
		ReportContent:  f.ReportContent,
		AttachmentName: f.AttachmentName,
		MobileNumber:   f.MobileNumber,
		Email:          f.Email,
		Type:           f.Kind.Label(),
	}
	if f.Kind == client.Weekly {
		r.WeeklySummary = f.WeeklySummary
	}
	return r
}

// TitleCase lower-cases s and upper-cases the first letter of every
// space-separated word.
func TitleCase(s string) string {
	if s == "" {
		return ""
	}
	words := strings.Split(strings.ToLower(s), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
	}
	return strings.Join(words, " ")
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required", "required_if":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
