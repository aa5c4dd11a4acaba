// Package task holds the task record consumed by the visualization core
package task

import (
	"strconv"
	"strings"
	"time"
)

// DefaultDuration is used when a task carries no usable duration (minutes)
const DefaultDuration = 60

// MinutesPerDay is the duration that maps to the largest body
const MinutesPerDay = 24 * 60

// Type is the task category
type Type string

const (
	TypeUnset    Type = ""
	TypeMeeting  Type = "Meeting"
	TypeWork     Type = "Work"
	TypePersonal Type = "Personal"
	TypeLearning Type = "Learning"
	TypeHealth   Type = "Health"
	TypeOther    Type = "Other"
)

// Types lists all concrete task types in display order
var Types = []Type{TypeMeeting, TypeWork, TypePersonal, TypeLearning, TypeHealth, TypeOther}

// Importance is the task priority
type Importance string

const (
	ImportanceUnset  Importance = ""
	ImportanceHigh   Importance = "High"
	ImportanceMedium Importance = "Medium"
	ImportanceLow    Importance = "Low"
)

// Task is owned by the task source; the core only reads it
type Task struct {
	ID         *int64
	Title      string
	Duration   *int // minutes
	Type       Type
	Importance Importance
	DueDate    *time.Time
	CreatedAt  *time.Time
}

// EffectiveDuration returns the duration in minutes, falling back to DefaultDuration
// for absent or negative values
func (t Task) EffectiveDuration() int {
	if t.Duration == nil || *t.Duration < 0 {
		return DefaultDuration
	}
	return *t.Duration
}

// EffectiveType resolves an unset type to TypeOther
func (t Task) EffectiveType() Type {
	if t.Type == TypeUnset {
		return TypeOther
	}
	return t.Type
}

// EffectiveImportance resolves an unset importance to ImportanceLow
func (t Task) EffectiveImportance() Importance {
	if t.Importance == ImportanceUnset {
		return ImportanceLow
	}
	return t.Importance
}

// HoursUntilDue returns hours from now until the due date; ok is false without a due date
// Overdue tasks yield negative hours
func (t Task) HoursUntilDue(now time.Time) (hours float64, ok bool) {
	if t.DueDate == nil {
		return 0, false
	}
	return t.DueDate.Sub(now).Hours(), true
}

// Overdue reports whether the due date has passed at now
func (t Task) Overdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now)
}

// AgeDays returns days since creation; ok is false without a creation time
// Creation times in the future yield zero age
func (t Task) AgeDays(now time.Time) (days float64, ok bool) {
	if t.CreatedAt == nil {
		return 0, false
	}
	d := now.Sub(*t.CreatedAt).Hours() / 24
	if d < 0 {
		d = 0
	}
	return d, true
}

// Label returns the decimal id used to tag the body, empty when the id is absent
func (t Task) Label() string {
	if t.ID == nil {
		return ""
	}
	return strconv.FormatInt(*t.ID, 10)
}

// Same reports whether two tasks refer to the same record
// Tasks with ids compare by id, otherwise by title and creation time
func (t Task) Same(o Task) bool {
	if t.ID != nil && o.ID != nil {
		return *t.ID == *o.ID
	}
	if t.ID != nil || o.ID != nil {
		return false
	}
	if t.Title != o.Title {
		return false
	}
	switch {
	case t.CreatedAt == nil && o.CreatedAt == nil:
		return true
	case t.CreatedAt == nil || o.CreatedAt == nil:
		return false
	}
	return t.CreatedAt.Equal(*o.CreatedAt)
}

// ParseType matches a type name case-insensitively, unknown names are unset
func ParseType(s string) Type {
	s = strings.TrimSpace(s)
	for _, ty := range Types {
		if strings.EqualFold(s, string(ty)) {
			return ty
		}
	}
	return TypeUnset
}

// ParseImportance matches an importance name case-insensitively, unknown names are unset
func ParseImportance(s string) Importance {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return ImportanceHigh
	case "medium":
		return ImportanceMedium
	case "low":
		return ImportanceLow
	}
	return ImportanceUnset
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses the ISO-like timestamps produced by task sources
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// ParseTimestampPtr is ParseTimestamp returning nil on failure
func ParseTimestampPtr(s string) *time.Time {
	ts, ok := ParseTimestamp(s)
	if !ok {
		return nil
	}
	return &ts
}

// IntPtr returns a pointer to v
func IntPtr(v int) *int { return &v }

// Int64Ptr returns a pointer to v
func Int64Ptr(v int64) *int64 { return &v }

// TimePtr returns a pointer to v
func TimePtr(v time.Time) *time.Time { return &v }
