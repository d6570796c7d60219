package model

import (
	"strings"
	"time"
)

// Priority is the urgency label attached to a todo.
type Priority string

const (
	Low    Priority = "Low"
	Medium Priority = "Medium"
	High   Priority = "High"
	Urgent Priority = "Urgent"
)

// DefaultPriority is used when none (or an unknown one) is given.
const DefaultPriority = Medium

// Priorities lists the known values from least to most urgent.
var Priorities = []Priority{Low, Medium, High, Urgent}

// Rank orders priorities for display. Unknown values rank 0.
func (p Priority) Rank() int {
	switch p {
	case Urgent:
		return 4
	case High:
		return 3
	case Medium:
		return 2
	case Low:
		return 1
	}
	return 0
}

// Valid reports whether p is one of the four known priorities.
func (p Priority) Valid() bool { return p.Rank() > 0 }

// Next cycles to the following priority, wrapping Urgent back to Low.
func (p Priority) Next() Priority {
	r := p.Rank()
	if r == 0 || r == len(Priorities) {
		return Priorities[0]
	}
	return Priorities[r]
}

func (p Priority) String() string { return string(p) }

// ParsePriority matches s against the known names, ignoring case and
// surrounding space. Unknown input yields DefaultPriority and false.
func ParsePriority(s string) (Priority, bool) {
	s = strings.TrimSpace(s)
	for _, p := range Priorities {
		if strings.EqualFold(s, string(p)) {
			return p, true
		}
	}
	return DefaultPriority, false
}

// Item is the domain model for a todo entry.
type Item struct {
	ID        int
	Text      string
	Priority  Priority
	Completed bool
	Created   time.Time
}
