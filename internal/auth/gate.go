// Package auth holds the route access gate and the signed session codec.
package auth

import "strings"

// Well-known routes
const (
	DashboardPath = "/dashboard"
	LoginPath     = "/login"
)

// DecisionKind is the outcome category of an access check
type DecisionKind int

const (
	Allow DecisionKind = iota
	Deny
	Redirect
)

func (k DecisionKind) String() string {
	switch k {
	case Allow:
		return "allow"
	case Deny:
		return "deny"
	case Redirect:
		return "redirect"
	}
	return "unknown"
}

// Decision is the result of Authorize. Location is set only for Redirect.
type Decision struct {
	Kind     DecisionKind
	Location string
}

// IsProtected reports whether path lies in the signed-in area
func IsProtected(path string) bool {
	return strings.HasPrefix(path, DashboardPath)
}

// Authorize decides whether a request for path may proceed.
// It keeps no state between calls.
func Authorize(isLoggedIn bool, path string) Decision {
	if IsProtected(path) {
		if isLoggedIn {
			return Decision{Kind: Allow}
		}
		return Decision{Kind: Deny}
	}
	if isLoggedIn {
		return Decision{Kind: Redirect, Location: DashboardPath}
	}
	return Decision{Kind: Allow}
}
