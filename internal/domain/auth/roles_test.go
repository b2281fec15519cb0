package auth

import "testing"

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"EMPLOYEE", RoleEmployee, true},
		{"manager", RoleManager, true},
		{" Admin ", RoleAdmin, true},
		{"ROLE_ADMIN", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseRole(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ParseRole(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestRoleCapabilities(t *testing.T) {
	if RoleEmployee.CanManage() {
		t.Fatal("employee must not manage")
	}
	if !RoleManager.CanManage() || !RoleAdmin.CanManage() {
		t.Fatal("manager and admin must manage")
	}
	if RoleManager.IsAdmin() {
		t.Fatal("manager is not admin")
	}
	if !RoleAdmin.IsAdmin() {
		t.Fatal("admin must be admin")
	}
}

func TestJoinAndSplitRoles(t *testing.T) {
	claim := JoinRoles([]Role{RoleManager, RoleAdmin})
	if claim != "MANAGER,ADMIN" {
		t.Fatalf("expected MANAGER,ADMIN, got %s", claim)
	}

	roles := SplitRoles("MANAGER,ADMIN,garbage")
	if len(roles) != 2 || roles[0] != RoleManager || roles[1] != RoleAdmin {
		t.Fatalf("unexpected parsed roles: %v", roles)
	}
}
