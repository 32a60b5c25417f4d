// Package mission contains the pure business logic for the mission
// lifecycle. This is part of the Functional Core - no I/O, only pure
// functions.
package mission

import "time"

// Status represents the possible states of a mission.
type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusDeclined  Status = "declined"
	StatusCompleted Status = "completed"
)

// InitialStatus returns the status for a newly submitted mission.
func InitialStatus() Status {
	return StatusPending
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusDeclined, StatusCompleted:
		return true
	}
	return false
}

// Terminal reports whether s permits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusDeclined || s == StatusCompleted
}

// CanTransition reports whether the lifecycle permits moving from one
// status to another. The full graph:
//
//	pending  -> accepted | declined
//	accepted -> completed
func CanTransition(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusAccepted || to == StatusDeclined
	case StatusAccepted:
		return to == StatusCompleted
	}
	return false
}

// ContactUnlocked reports whether a mission in status s authorizes each
// party to read the counterparty's contact details.
func ContactUnlocked(s Status) bool {
	return s == StatusAccepted || s == StatusCompleted
}

// MessagingUnlocked reports whether a mission in status s permits the
// parties to exchange messages.
func MessagingUnlocked(s Status) bool {
	return s == StatusAccepted || s == StatusCompleted
}

// Decision is a technician's response to a pending mission.
type Decision string

const (
	DecisionAccept  Decision = "accept"
	DecisionDecline Decision = "decline"
)

// Valid reports whether d is a known decision.
func (d Decision) Valid() bool {
	return d == DecisionAccept || d == DecisionDecline
}

// TransitionResult contains the result of applying a decision.
// AcceptedAt is set only when the decision accepts the mission; it must
// remain untouched for every later transition so that it is non-null
// exactly for missions that reached the accepted state.
type TransitionResult struct {
	NewStatus  Status
	AcceptedAt *time.Time
}

// ApplyDecision resolves a technician decision on a pending mission into
// the resulting status and acceptance timestamp. The caller passes the
// current time to enable testing.
func ApplyDecision(d Decision, now time.Time) TransitionResult {
	if d == DecisionAccept {
		return TransitionResult{NewStatus: StatusAccepted, AcceptedAt: &now}
	}
	return TransitionResult{NewStatus: StatusDeclined}
}
