// Package guard decides whether protected content may be shown for the
// current session. It is a pure decision function; the consuming layer (HTTP
// middleware, UI shell) acts on the returned variant.
package guard

import "github.com/orgboard/orgboard-api/internal/core/domain"

// Decision is the tagged outcome of a guard evaluation.
type Decision int

const (
	// DecisionLoading: session rehydration has not finished; render a loading
	// indicator and make no access decision yet.
	DecisionLoading Decision = iota

	// DecisionRedirectToLogin: no authenticated session; navigate to login
	// and render nothing.
	DecisionRedirectToLogin

	// DecisionForbidden: authenticated, but the role is outside the allowed
	// set; render the access-denied fallback.
	DecisionForbidden

	// DecisionAllow: render the protected content.
	DecisionAllow
)

func (d Decision) String() string {
	switch d {
	case DecisionLoading:
		return "loading"
	case DecisionRedirectToLogin:
		return "redirect-to-login"
	case DecisionForbidden:
		return "forbidden"
	case DecisionAllow:
		return "allow"
	}
	return "unknown"
}

// Evaluate applies the guard state machine. Loading gates everything so
// protected content can never flash before the authentication check resolves.
// An empty allowedRoles set means any authenticated role is accepted.
func Evaluate(session domain.Session, loading bool, allowedRoles []domain.Role) Decision {
	if loading {
		return DecisionLoading
	}
	if !session.IsAuthenticated || session.User == nil {
		return DecisionRedirectToLogin
	}
	if len(allowedRoles) == 0 {
		return DecisionAllow
	}
	for _, role := range allowedRoles {
		if session.User.Role == role {
			return DecisionAllow
		}
	}
	return DecisionForbidden
}
