package models

import "fmt"

type Status string

const (
	StatusReceived Status = "received"
	StatusPicked   Status = "picked"
	StatusPrepared Status = "prepared"
)

var transitions = map[Status][]Status{
	StatusReceived: {StatusPicked, StatusPrepared},
	StatusPicked:   {StatusPrepared},
}

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusReceived, StatusPicked, StatusPrepared:
		return st, nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

// CanTransition reports whether an order in status from may be moved to status to.
// Orders only move forward; prepared is terminal.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}
