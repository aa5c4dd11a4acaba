// Package event carries high-level interaction events from the core to the UI layer
package event

import (
	"time"

	"github.com/lixenwraith/taskfall/task"
)

// Type is the kind of UI event
type Type uint8

const (
	// EventOpenDetail fires on a long press
	// Trigger: gesture.Recognizer via state.Session | Consumer: renderer, audio
	EventOpenDetail Type = iota

	// EventCloseDetail fires when the detail panel is dismissed
	EventCloseDetail

	// EventMarkDelete fires when a body crosses out of bounds
	// Trigger: boundary.Monitor via state.Session | Consumer: confirm card, audio
	EventMarkDelete

	// EventClearDelete fires when a marked body returns or the mark is cancelled
	EventClearDelete

	// EventTaskSpawned fires when a task body enters the world
	EventTaskSpawned

	// EventTaskRemoved fires when a task is confirmed deleted
	// Consumer: task source archive, audio
	EventTaskRemoved
)

func (t Type) String() string {
	switch t {
	case EventOpenDetail:
		return "open-detail"
	case EventCloseDetail:
		return "close-detail"
	case EventMarkDelete:
		return "mark-delete"
	case EventClearDelete:
		return "clear-delete"
	case EventTaskSpawned:
		return "task-spawned"
	case EventTaskRemoved:
		return "task-removed"
	}
	return "unknown"
}

// Event is one queued UI event
type Event struct {
	Type Type
	Task task.Task
	At   time.Time
}
