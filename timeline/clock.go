// Package timeline drives the "now" strip: a static body swept down the scene by wall-clock time
package timeline

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lixenwraith/taskfall/task"
	"github.com/lixenwraith/taskfall/vmath"
)

// ErrBadClock is returned for clock strings that are not "HH:MM"
var ErrBadClock = errors.New("invalid clock, expected HH:MM")

// ParseClock converts "HH:MM" to minutes since midnight
func ParseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("%q: %w", s, ErrBadClock)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%q: %w", s, ErrBadClock)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 || len(mm) != 2 {
		return 0, fmt.Errorf("%q: %w", s, ErrBadClock)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes since midnight as "HH:MM"
func FormatClock(minutes int) string {
	minutes = ((minutes % task.MinutesPerDay) + task.MinutesPerDay) % task.MinutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// MinutesOf returns the minutes since local midnight of t
func MinutesOf(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// Elapsed returns minutes elapsed since start and the window length
// An end at or before start spans midnight; equal bounds give a full day
// Before a same-day window opens elapsed is negative
func Elapsed(start, end, current int) (elapsed, total int) {
	if end > start {
		return current - start, end - start
	}
	total = task.MinutesPerDay - start + end
	if current >= start {
		return current - start, total
	}
	return task.MinutesPerDay - start + current, total
}

// Progress returns the clamped fraction of the window elapsed at current
func Progress(start, end, current int) float64 {
	elapsed, total := Elapsed(start, end, current)
	if total <= 0 {
		return 0
	}
	return vmath.Clamp(float64(elapsed)/float64(total), 0, 1)
}

// YPosition maps current to a vertical position between the top and bottom margins
func YPosition(start, end, current int, viewportH, top, bottom float64) float64 {
	return top + Progress(start, end, current)*(viewportH-top-bottom)
}
