package portier

import "testing"

func TestResolveRolesPrecedence(t *testing.T) {
	r := ResolveRoles([]string{"member", "manager", "project_lead"})
	if r.Highest != RoleManager {
		t.Fatalf("expected manager, got %q", r.Highest)
	}

	r = ResolveRoles([]string{"member", "admin"})
	if r.Highest != RoleAdmin {
		t.Fatalf("expected admin, got %q", r.Highest)
	}

	r = ResolveRoles([]string{"project_lead", "member"})
	if r.Highest != RoleProjectLead {
		t.Fatalf("expected project_lead, got %q", r.Highest)
	}
}

func TestResolveRolesEmpty(t *testing.T) {
	r := ResolveRoles(nil)
	if r.Highest != "" {
		t.Fatalf("expected empty highest, got %q", r.Highest)
	}
	if r.IsAdmin() || r.IsManager() || r.IsProjectLead() || r.IsMember() {
		t.Fatal("empty label set should grant nothing")
	}
}

func TestResolveRolesAuxiliaryLabels(t *testing.T) {
	r := ResolveRoles([]string{"time_tracker", "portfolio_manager"})
	if r.Highest != "" {
		t.Fatalf("auxiliary labels should not win precedence, got %q", r.Highest)
	}
	if !r.Has(RoleTimeTracker) {
		t.Fatal("expected time_tracker label to be held")
	}
	if !r.Has(RolePortfolioManager) {
		t.Fatal("expected portfolio_manager label to be held")
	}
}

func TestResolvedRoleAtLeast(t *testing.T) {
	// Higher precedence satisfies a lower threshold: an admin holding no
	// manager label still passes a manager gate.
	admin := ResolveRoles([]string{"admin"})
	if !admin.AtLeast(RoleManager) {
		t.Fatal("admin should satisfy the manager threshold")
	}
	if !admin.AtLeast(RoleMember) {
		t.Fatal("admin should satisfy the member threshold")
	}

	manager := ResolveRoles([]string{"manager"})
	if !manager.AtLeast(RoleManager) {
		t.Fatal("manager should satisfy its own threshold")
	}
	if manager.AtLeast(RoleAdmin) {
		t.Fatal("manager should not satisfy the admin threshold")
	}

	member := ResolveRoles([]string{"member"})
	if member.AtLeast(RoleManager) {
		t.Fatal("member should not satisfy the manager threshold")
	}

	// Auxiliary and unknown labels sit outside the precedence order.
	aux := ResolveRoles([]string{"time_tracker"})
	if aux.AtLeast(RoleMember) {
		t.Fatal("auxiliary labels should not satisfy any threshold")
	}
	if admin.AtLeast(RoleTimeTracker) {
		t.Fatal("thresholds outside the precedence order are never satisfied")
	}

	empty := ResolveRoles(nil)
	if empty.AtLeast(RoleMember) {
		t.Fatal("empty label set should not satisfy any threshold")
	}
}

func TestResolveRolesUnknownLabels(t *testing.T) {
	r := ResolveRoles([]string{"mystery", "member"})
	if r.Highest != RoleMember {
		t.Fatalf("expected member, got %q", r.Highest)
	}
	if !r.Has(Role("mystery")) {
		t.Fatal("unknown labels should still be reported by Has")
	}
}
