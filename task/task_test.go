package task

import (
	"testing"
	"time"
)

func TestEffectiveDefaults(t *testing.T) {
	var tk Task
	if got := tk.EffectiveDuration(); got != DefaultDuration {
		t.Errorf("Expected default duration %d, got %d", DefaultDuration, got)
	}
	tk.Duration = IntPtr(-5)
	if got := tk.EffectiveDuration(); got != DefaultDuration {
		t.Errorf("Expected negative duration to fall back to %d, got %d", DefaultDuration, got)
	}
	if tk.EffectiveType() != TypeOther {
		t.Errorf("Expected unset type to resolve to Other, got %q", tk.EffectiveType())
	}
	if tk.EffectiveImportance() != ImportanceLow {
		t.Errorf("Expected unset importance to resolve to Low, got %q", tk.EffectiveImportance())
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"2025-06-01T10:00:00Z", true},
		{"2025-06-01T10:00:00.123456+02:00", true},
		{"2025-06-01 10:00:00", true},
		{"2025-06-01", true},
		{"", false},
		{"tomorrow", false},
	}
	for _, tt := range tests {
		if _, ok := ParseTimestamp(tt.in); ok != tt.ok {
			t.Errorf("ParseTimestamp(%q): expected ok=%v, got %v", tt.in, tt.ok, ok)
		}
	}
	if ParseTimestampPtr("garbage") != nil {
		t.Error("Expected nil pointer for unparseable timestamp")
	}
}

func TestParseEnums(t *testing.T) {
	if ParseType("work") != TypeWork {
		t.Error("Expected case-insensitive type match")
	}
	if ParseType("chores") != TypeUnset {
		t.Error("Expected unknown type to be unset")
	}
	if ParseImportance(" HIGH ") != ImportanceHigh {
		t.Error("Expected case-insensitive importance match")
	}
	if ParseImportance("urgent") != ImportanceUnset {
		t.Error("Expected unknown importance to be unset")
	}
}

func TestAgeAndDue(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	tk := Task{
		CreatedAt: TimePtr(now.Add(-72 * time.Hour)),
		DueDate:   TimePtr(now.Add(-2 * time.Hour)),
	}
	if d, ok := tk.AgeDays(now); !ok || d != 3 {
		t.Errorf("Expected age 3 days, got %v (ok=%v)", d, ok)
	}
	if h, ok := tk.HoursUntilDue(now); !ok || h != -2 {
		t.Errorf("Expected -2 hours until due, got %v (ok=%v)", h, ok)
	}
	future := Task{CreatedAt: TimePtr(now.Add(time.Hour))}
	if d, _ := future.AgeDays(now); d != 0 {
		t.Errorf("Expected future creation to clamp age to 0, got %v", d)
	}
}

func TestOverdue(t *testing.T) {
	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	if (Task{}).Overdue(now) {
		t.Error("Expected a task without a due date never overdue")
	}
	if !(Task{DueDate: TimePtr(now.Add(-time.Minute))}).Overdue(now) {
		t.Error("Expected a past due date overdue")
	}
	if (Task{DueDate: TimePtr(now)}).Overdue(now) {
		t.Error("Expected a task due exactly now not yet overdue")
	}
}

func TestSame(t *testing.T) {
	a := Task{ID: Int64Ptr(7), Title: "a"}
	b := Task{ID: Int64Ptr(7), Title: "b"}
	if !a.Same(b) {
		t.Error("Expected tasks with equal ids to be the same")
	}
	c := Task{Title: "a"}
	if a.Same(c) {
		t.Error("Expected task with id and task without id to differ")
	}
	if !c.Same(Task{Title: "a"}) {
		t.Error("Expected id-less tasks with equal titles to match")
	}
}

func TestSortStackPutsMostUrgentLast(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	tasks := []Task{
		{Title: "undated"},
		{Title: "tomorrow", DueDate: TimePtr(now.Add(24 * time.Hour))},
		{Title: "soon-low", DueDate: TimePtr(now.Add(time.Hour)), Importance: ImportanceLow},
		{Title: "soon-high", DueDate: TimePtr(now.Add(time.Hour)), Importance: ImportanceHigh},
	}
	SortStack(tasks)

	want := []string{"undated", "tomorrow", "soon-low", "soon-high"}
	for i, w := range want {
		if tasks[i].Title != w {
			t.Fatalf("Position %d: expected %q, got %q", i, w, tasks[i].Title)
		}
	}
}
