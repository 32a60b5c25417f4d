// Package mission contains the pure business logic for the mission
// lifecycle. This is part of the Functional Core - no I/O, only pure
// functions.
package mission

import (
	"fmt"

	"github.com/example/techmarket/internal/core/fault"
)

// Snapshot is the minimal view of a mission needed for guard evaluation.
// Services populate it from the persisted record before checking a guard.
type Snapshot struct {
	ID           string
	Status       Status
	ClientRef    string // client profile ID or guest token
	TechnicianID string
}

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Kind    fault.Kind // populated when not allowed
	Reason  string     // human-readable reason (populated when not allowed)
}

// Error returns the guard result as a typed error if not allowed, nil
// otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fault.New(r.Kind, "%s", r.Reason)
}

func allow() GuardResult {
	return GuardResult{Allowed: true}
}

func deny(kind fault.Kind, format string, args ...any) GuardResult {
	return GuardResult{Allowed: false, Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// IsParty reports whether ref identifies one of the mission's two parties.
func (m Snapshot) IsParty(ref string) bool {
	if ref == "" {
		return false
	}
	return ref == m.ClientRef || ref == m.TechnicianID
}

// CounterpartyRef returns the other party's reference, or the empty string
// if ref is not a party.
func (m Snapshot) CounterpartyRef(ref string) string {
	switch ref {
	case m.ClientRef:
		return m.TechnicianID
	case m.TechnicianID:
		return m.ClientRef
	}
	return ""
}

// CanRespond evaluates whether actorRef may accept or decline the mission.
// Rules: only the target technician responds, and only while the mission
// is still pending.
func CanRespond(m Snapshot, actorRef string) GuardResult {
	if actorRef != m.TechnicianID {
		return deny(fault.KindForbidden, "only the target technician may respond to mission %s", m.ID)
	}
	if m.Status != StatusPending {
		return deny(fault.KindInvalidTransition, "mission %s is %s, only pending missions accept a response", m.ID, m.Status)
	}
	return allow()
}

// CanComplete evaluates whether actorRef may mark the mission completed.
// Rules: either party may complete, but only from the accepted state.
func CanComplete(m Snapshot, actorRef string) GuardResult {
	if !m.IsParty(actorRef) {
		return deny(fault.KindForbidden, "caller is not a party to mission %s", m.ID)
	}
	if m.Status != StatusAccepted {
		return deny(fault.KindInvalidTransition, "mission %s is %s, only accepted missions can be completed", m.ID, m.Status)
	}
	return allow()
}

// CanViewContact evaluates whether actorRef may read the counterparty's
// contact details. This is the contact visibility gate: details unlock
// only once the mission reaches the accepted state.
func CanViewContact(m Snapshot, actorRef string) GuardResult {
	if !m.IsParty(actorRef) {
		return deny(fault.KindForbidden, "caller is not a party to mission %s", m.ID)
	}
	if !ContactUnlocked(m.Status) {
		return deny(fault.KindForbidden, "contact details for mission %s are locked while it is %s", m.ID, m.Status)
	}
	return allow()
}

// CanPostMessage evaluates whether actorRef may post a message to the
// mission's thread. Messaging unlocks together with contact details.
func CanPostMessage(m Snapshot, actorRef string) GuardResult {
	if !m.IsParty(actorRef) {
		return deny(fault.KindForbidden, "caller is not a party to mission %s", m.ID)
	}
	if !MessagingUnlocked(m.Status) {
		return deny(fault.KindForbidden, "messaging for mission %s is locked while it is %s", m.ID, m.Status)
	}
	return allow()
}

// CanReadThread evaluates whether actorRef may read or mark read the
// mission's message thread. Parties keep read access to their thread in
// every state the thread could have been written in.
func CanReadThread(m Snapshot, actorRef string) GuardResult {
	if !m.IsParty(actorRef) {
		return deny(fault.KindForbidden, "caller is not a party to mission %s", m.ID)
	}
	return allow()
}

// CanView evaluates whether actorRef may read the mission record itself.
// Missions are always scoped to their parties - no cross-principal reads.
func CanView(m Snapshot, actorRef string) GuardResult {
	if !m.IsParty(actorRef) {
		return deny(fault.KindForbidden, "caller is not a party to mission %s", m.ID)
	}
	return allow()
}
