package guard

import (
	"testing"

	"github.com/orgboard/orgboard-api/internal/core/domain"
)

func authenticated(role domain.Role) domain.Session {
	return domain.Session{
		User:            &domain.User{ID: "u-1", Role: role},
		Token:           "token",
		IsAuthenticated: true,
	}
}

func TestEvaluate_LoadingGatesEverything(t *testing.T) {
	// While loading, no decision is made regardless of session or roles.
	cases := []domain.Session{
		domain.Anonymous(),
		authenticated(domain.RoleAdmin),
		authenticated(domain.RoleUser),
	}
	for _, session := range cases {
		if d := Evaluate(session, true, []domain.Role{domain.RoleAdmin}); d != DecisionLoading {
			t.Fatalf("expected loading, got %s", d)
		}
	}
}

func TestEvaluate_UnauthenticatedRedirects(t *testing.T) {
	if d := Evaluate(domain.Anonymous(), false, nil); d != DecisionRedirectToLogin {
		t.Fatalf("expected redirect, got %s", d)
	}

	// A token without a resolved user is not an authenticated session.
	broken := domain.Session{Token: "orphan", IsAuthenticated: true}
	if d := Evaluate(broken, false, nil); d != DecisionRedirectToLogin {
		t.Fatalf("expected redirect for session without user, got %s", d)
	}
}

func TestEvaluate_RoleOutsideAllowedSetIsForbidden(t *testing.T) {
	d := Evaluate(authenticated(domain.RoleUser), false, []domain.Role{domain.RoleAdmin})
	if d != DecisionForbidden {
		t.Fatalf("expected forbidden, got %s", d)
	}
}

func TestEvaluate_AllowedRoleRendersChildren(t *testing.T) {
	allowed := []domain.Role{domain.RoleAdmin, domain.RoleFinance}
	if d := Evaluate(authenticated(domain.RoleFinance), false, allowed); d != DecisionAllow {
		t.Fatalf("expected allow, got %s", d)
	}
}

func TestEvaluate_NoRoleRestrictionAllowsAnyAuthenticated(t *testing.T) {
	if d := Evaluate(authenticated(domain.RoleUser), false, nil); d != DecisionAllow {
		t.Fatalf("expected allow, got %s", d)
	}
	if d := Evaluate(authenticated(domain.RoleUser), false, []domain.Role{}); d != DecisionAllow {
		t.Fatalf("expected allow for empty set, got %s", d)
	}
}
