package domain

import "testing"

func TestParseRole(t *testing.T) {
	for _, s := range []string{"admin", "user", "student", "teacher"} {
		r, err := ParseRole(s)
		if err != nil {
			t.Fatalf("ParseRole(%q) returned error: %v", s, err)
		}
		if string(r) != s {
			t.Fatalf("ParseRole(%q) = %q", s, r)
		}
	}

	for _, s := range []string{"", "Admin", "superuser", "client"} {
		if _, err := ParseRole(s); err != ErrInvalidRole {
			t.Fatalf("ParseRole(%q): expected ErrInvalidRole, got %v", s, err)
		}
	}
}

func TestParseRoles_FailsOnFirstUnknown(t *testing.T) {
	if _, err := ParseRoles([]string{"admin", "wizard"}); err != ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}

	roles, err := ParseRoles([]string{"admin", "teacher"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(roles) != 2 || roles[0] != RoleAdmin || roles[1] != RoleTeacher {
		t.Fatalf("unexpected roles: %v", roles)
	}
}

func TestParseGender(t *testing.T) {
	if _, err := ParseGender("male"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseGender("other"); err != ErrInvalidGender {
		t.Fatalf("expected ErrInvalidGender, got %v", err)
	}
}

func TestPrincipal_HasRole(t *testing.T) {
	student := Principal{Username: "alice", Roles: []Role{RoleStudent}}
	if student.HasRole(RoleAdmin) {
		t.Fatalf("student should not pass the admin gate")
	}
	if !student.HasRole(RoleStudent) {
		t.Fatalf("student role not recognized")
	}

	admin := Principal{Username: "bob", Roles: []Role{RoleAdmin, RoleTeacher}}
	if !admin.HasRole(RoleAdmin) {
		t.Fatalf("admin role not recognized")
	}

	empty := Principal{Username: "ghost"}
	if empty.HasRole(RoleUser) {
		t.Fatalf("empty role set should fail every gate")
	}
}
