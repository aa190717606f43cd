package assistant

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"platformone/internal/model"
)

// Field coercion for language-model output. Every helper is pure and total:
// malformed input yields nil for that field, never an error.

var (
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// EnsureString trims the value; empty strings become nil.
func EnsureString(value *string) *string {
	if value == nil {
		return nil
	}
	t := strings.TrimSpace(*value)
	if t == "" {
		return nil
	}
	return &t
}

// EnsureDate accepts only the YYYY-MM-DD pattern. It is a shape gate, not a
// calendar check: impossible dates are rejected later when combined into a
// timestamp.
func EnsureDate(value *string) *string {
	s := EnsureString(value)
	if s == nil || !dateRe.MatchString(*s) {
		return nil
	}
	return s
}

// EnsureTime accepts only the HH:mm 24-hour pattern.
func EnsureTime(value *string) *string {
	s := EnsureString(value)
	if s == nil || !timeRe.MatchString(*s) {
		return nil
	}
	return s
}

// EnsureNumber coerces a JSON number or numeric string to an integer >= 1.
// Nil, empty and non-finite values become nil.
func EnsureNumber(value any) *int {
	var parsed float64

	switch v := value.(type) {
	case nil:
		return nil
	case float64:
		parsed = v
	case float32:
		parsed = float64(v)
	case int:
		parsed = float64(v)
	case int64:
		parsed = float64(v)
	case string:
		t := strings.TrimSpace(v)
		if t == "" {
			return nil
		}
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return nil
		}
		parsed = f
	default:
		return nil
	}

	if math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return nil
	}

	n := int(math.Round(parsed))
	if n < 1 {
		n = 1
	}
	return &n
}

// EnsureTier matches case-insensitively against the known tiers.
func EnsureTier(value *string) *model.Tier {
	s := EnsureString(value)
	if s == nil {
		return nil
	}
	tier, ok := model.ParseTier(*s)
	if !ok {
		return nil
	}
	return &tier
}

// NormalizeEvent coerces every field of an extracted event to its canonical
// form or nil. Normalizing an already-normalized event is a no-op.
func NormalizeEvent(e *model.ExtractedEvent) model.NormalizedEvent {
	if e == nil {
		return model.NormalizedEvent{}
	}
	return model.NormalizedEvent{
		Title:               EnsureString(e.Title),
		StartDate:           EnsureDate(e.StartDate),
		StartTime:           EnsureTime(e.StartTime),
		EndDate:             EnsureDate(e.EndDate),
		EndTime:             EnsureTime(e.EndTime),
		Location:            EnsureString(e.Location),
		ParticipantCapacity: EnsureNumber(e.ParticipantCapacity),
		VolunteerCapacity:   EnsureNumber(e.VolunteerCapacity),
		MinTier:             EnsureTier(e.MinTier),
	}
}

// MissingForCreate returns the required-for-create fields that are still nil,
// in a stable order.
func MissingForCreate(n model.NormalizedEvent) []string {
	missing := []string{}
	if n.Title == nil {
		missing = append(missing, "title")
	}
	if n.StartDate == nil {
		missing = append(missing, "startDate")
	}
	if n.StartTime == nil {
		missing = append(missing, "startTime")
	}
	if n.EndDate == nil {
		missing = append(missing, "endDate")
	}
	if n.EndTime == nil {
		missing = append(missing, "endTime")
	}
	return missing
}

// BuildLocalDate combines a normalized date and time into an instant in the
// given location. Calendar-impossible combinations fail here.
func BuildLocalDate(date, clock string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", date+" "+clock, loc)
}

// StartOfDay returns local midnight for a YYYY-MM-DD day.
func StartOfDay(date string, loc *time.Location) (time.Time, error) {
	return BuildLocalDate(date, "00:00", loc)
}

// EndOfDay returns 23:59 local time for a YYYY-MM-DD day (inclusive bound).
func EndOfDay(date string, loc *time.Location) (time.Time, error) {
	return BuildLocalDate(date, "23:59", loc)
}
