// Package principal models the identity issuing an operation. A principal is
// either an authenticated account (backed by a profile) or a guest carrying a
// locally generated token plus self-supplied contact details.
package principal

import (
	"strings"

	"github.com/google/uuid"

	"github.com/example/techmarket/internal/core/fault"
)

// Kind distinguishes the two principal variants.
type Kind string

const (
	// KindAccount is an authenticated principal backed by a profile.
	KindAccount Kind = "account"
	// KindGuest is an unauthenticated principal identified by a token.
	KindGuest Kind = "guest"
)

// GuestTokenPrefix marks guest tokens so they can never collide with
// profile IDs.
const GuestTokenPrefix = "guest-"

// Principal identifies the caller of an operation. Exactly one of ProfileID
// or GuestToken is set, according to Kind.
type Principal struct {
	Kind       Kind
	ProfileID  string // set for account principals
	GuestToken string // set for guest principals
	Name       string // guest-supplied display name
	Email      string // guest-supplied contact email
}

// Account returns an authenticated principal for the given profile.
func Account(profileID string) Principal {
	return Principal{Kind: KindAccount, ProfileID: profileID}
}

// Guest returns a guest principal with the given token and contact details.
func Guest(token, name, email string) Principal {
	return Principal{Kind: KindGuest, GuestToken: token, Name: name, Email: email}
}

// NewGuestToken generates a fresh guest token.
func NewGuestToken() string {
	return GuestTokenPrefix + uuid.NewString()
}

// IsGuestToken reports whether ref has the guest token shape.
func IsGuestToken(ref string) bool {
	return strings.HasPrefix(ref, GuestTokenPrefix)
}

// IsGuest reports whether p is a guest principal.
func (p Principal) IsGuest() bool {
	return p.Kind == KindGuest
}

// Ref returns the opaque reference used to record this principal as a party
// to a mission or as a message sender.
func (p Principal) Ref() string {
	if p.Kind == KindGuest {
		return p.GuestToken
	}
	return p.ProfileID
}

// Validate checks that the principal is internally consistent.
func (p Principal) Validate() error {
	switch p.Kind {
	case KindAccount:
		if p.ProfileID == "" {
			return fault.Validation("account principal requires a profile id")
		}
	case KindGuest:
		if p.GuestToken == "" {
			return fault.Validation("guest principal requires a token")
		}
		if !IsGuestToken(p.GuestToken) {
			return fault.Validation("guest token %q has an invalid shape", p.GuestToken)
		}
	default:
		return fault.Validation("unknown principal kind %q", p.Kind)
	}
	return nil
}
