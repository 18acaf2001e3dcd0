package rbac

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"admin", RoleAdmin, true},
		{"supervisor", RoleSupervisor, true},
		{"pengawas", RoleSupervisor, true}, // legacy alias
		{"participant", RoleParticipant, true},
		{"user", RoleParticipant, true}, // legacy alias
		{" Admin ", RoleAdmin, true},
		{"PENGAWAS", RoleSupervisor, true},
		{"", "", false},
		{"root", "", false},
	}
	for _, tc := range tests {
		got, ok := Normalize(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("Normalize(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestCheckerHas(t *testing.T) {
	c := NewChecker(nil)

	if !c.Has(RoleAdmin, "exam:delete") {
		t.Error("admin wildcard should cover exam:delete")
	}
	if !c.Has(RoleParticipant, "result:submit") {
		t.Error("participant should have result:submit")
	}
	if c.Has(RoleParticipant, "exam:create") {
		t.Error("participant must not have exam:create")
	}
	if !c.Has(RoleSupervisor, "result:view-all") {
		t.Error("supervisor should have result:view-all")
	}
	if c.Has(RoleSupervisor, "config:edit") {
		t.Error("supervisor must not have config:edit")
	}
	if c.Has(Role("ghost"), "exam:view") {
		t.Error("unknown role must have nothing")
	}
}

func TestCheckerAny(t *testing.T) {
	c := NewChecker(nil)
	if !c.Any(RoleParticipant, "result:view-own", "result:view-all") {
		t.Error("participant should match result:view-own")
	}
	if c.Any(RoleParticipant, "bank:view", "config:view") {
		t.Error("participant should match none of the admin-side views")
	}
}

func TestMatchPermPrefix(t *testing.T) {
	if !matchPerm("result:*", "result:view-own") {
		t.Error("prefix pattern should match")
	}
	if matchPerm("result:*", "exam:view") {
		t.Error("prefix pattern must not match other namespace")
	}
}
