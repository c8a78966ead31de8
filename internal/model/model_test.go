package model

import "testing"

func TestDeriveCapabilities(t *testing.T) {
	cases := []struct {
		name string
		want RoleCapabilities
	}{
		{"Director", RoleCapabilities{Approves: true}},
		{"Co-Director", RoleCapabilities{Approves: true}},
		{"DIRECTOR", RoleCapabilities{Approves: true}},
		{"Evaluator 1", RoleCapabilities{Reviews: true, ReviewerSlot: 1}},
		{"Evaluator 2", RoleCapabilities{Reviews: true, ReviewerSlot: 2}},
		{"Evaluador 2", RoleCapabilities{Reviews: true, ReviewerSlot: 2}},
		{"Second Reviewer (2)", RoleCapabilities{Reviews: true, ReviewerSlot: 2}},
		{"External Reviewer", RoleCapabilities{Reviews: true}},
		{"Jury Member 1", RoleCapabilities{}},
		{"", RoleCapabilities{}},
	}
	for _, tc := range cases {
		if got := DeriveCapabilities(tc.name); got != tc.want {
			t.Errorf("DeriveCapabilities(%q) = %+v, want %+v", tc.name, got, tc.want)
		}
	}
}

func TestDeriveCapabilitiesSlotOnePrecedence(t *testing.T) {
	got := DeriveCapabilities("Evaluator 12")
	if got.ReviewerSlot != 1 {
		t.Fatalf("slot = %d, want 1 to win over 2", got.ReviewerSlot)
	}
}

func TestLocalPart(t *testing.T) {
	cases := []struct {
		email string
		want  string
	}{
		{"eleanor.v@university.edu", "eleanor.v"},
		{"Ben.C@University.edu", "ben.c"},
		{"  padded@u.edu  ", "padded"},
		{"noatsign", "noatsign"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := LocalPart(tc.email); got != tc.want {
			t.Errorf("LocalPart(%q) = %q, want %q", tc.email, got, tc.want)
		}
	}
}

func TestUnknownLabel(t *testing.T) {
	if got := UnknownLabel("status-9"); got != "unknown (status-9)" {
		t.Fatalf("UnknownLabel = %q", got)
	}
}
