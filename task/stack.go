package task

import "sort"

func importanceRank(i Importance) int {
	switch i {
	case ImportanceHigh:
		return 2
	case ImportanceMedium:
		return 1
	default:
		return 0
	}
}

// SortStack orders tasks for a pop-from-end stack: the most urgent task ends up last
// Urgency: earlier due date, then higher importance; undated tasks are popped last
func SortStack(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return moreUrgent(tasks[j], tasks[i])
	})
}

// moreUrgent reports whether a should be popped before b
func moreUrgent(a, b Task) bool {
	switch {
	case a.DueDate != nil && b.DueDate == nil:
		return true
	case a.DueDate == nil && b.DueDate != nil:
		return false
	case a.DueDate != nil && b.DueDate != nil && !a.DueDate.Equal(*b.DueDate):
		return a.DueDate.Before(*b.DueDate)
	}
	return importanceRank(a.EffectiveImportance()) > importanceRank(b.EffectiveImportance())
}
