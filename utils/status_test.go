package utils

import "testing"

func TestNormalizeStatusResolvesSynonyms(t *testing.T) {
	cases := map[string]string{
		"pending":      StatusPending,
		"Submitted":    StatusPending,
		"under review": StatusUnderReview,
		"IN_REVIEW":    StatusUnderReview,
		"shortlist":    StatusShortlisted,
		"rejected":     StatusDeclined,
		"withdraw":     StatusWithdrawn,
		" accepted ":   StatusAccepted,
	}
	for input, want := range cases {
		got, err := NormalizeStatus(input)
		if err != nil {
			t.Fatalf("NormalizeStatus(%q): %v", input, err)
		}
		if got != want {
			t.Fatalf("NormalizeStatus(%q) = %q, want %q", input, got, want)
		}
	}

	if _, err := NormalizeStatus("published"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}

func TestCanTransition(t *testing.T) {
	allowed := [][2]string{
		{StatusPending, StatusUnderReview},
		{StatusUnderReview, StatusShortlisted},
		{StatusUnderReview, StatusAccepted},
		{StatusUnderReview, StatusDeclined},
		{StatusShortlisted, StatusAccepted},
		{StatusShortlisted, StatusDeclined},
	}
	for _, pair := range allowed {
		if !CanTransition(pair[0], pair[1]) {
			t.Fatalf("expected %s -> %s to be allowed", pair[0], pair[1])
		}
	}

	denied := [][2]string{
		{StatusPending, StatusAccepted},
		{StatusPending, StatusShortlisted},
		{StatusAccepted, StatusDeclined},
		{StatusDeclined, StatusUnderReview},
		{StatusWithdrawn, StatusPending},
		{StatusUnderReview, StatusWithdrawn},
	}
	for _, pair := range denied {
		if CanTransition(pair[0], pair[1]) {
			t.Fatalf("expected %s -> %s to be denied", pair[0], pair[1])
		}
	}
}

func TestIsWithdrawable(t *testing.T) {
	if !IsWithdrawable(StatusPending) || !IsWithdrawable(StatusUnderReview) {
		t.Fatalf("pending and under_review must be withdrawable")
	}
	for _, status := range []string{StatusShortlisted, StatusAccepted, StatusDeclined, StatusWithdrawn} {
		if IsWithdrawable(status) {
			t.Fatalf("%s must not be withdrawable", status)
		}
	}
}

func TestStatusForDecision(t *testing.T) {
	cases := map[string]string{
		DecisionAccept:         StatusAccepted,
		DecisionDecline:        StatusDeclined,
		DecisionReviseResubmit: StatusDeclined,
		DecisionShortlist:      StatusShortlisted,
	}
	for decision, want := range cases {
		got, err := StatusForDecision(decision)
		if err != nil {
			t.Fatalf("StatusForDecision(%q): %v", decision, err)
		}
		if got != want {
			t.Fatalf("StatusForDecision(%q) = %q, want %q", decision, got, want)
		}
	}

	if _, err := StatusForDecision("publish"); err == nil {
		t.Fatalf("expected error for unknown decision type")
	}
}

func TestRoleCapabilities(t *testing.T) {
	if !RoleCan(MemberRoleReader, CapReview) {
		t.Fatalf("readers must be able to review")
	}
	for _, capability := range []Capability{CapChangeStatus, CapAssignReader, CapDecide, CapManageForms} {
		if RoleCan(MemberRoleReader, capability) {
			t.Fatalf("readers must not hold %s", capability)
		}
	}

	for _, role := range []string{MemberRoleEditor, MemberRoleAdmin} {
		for _, capability := range []Capability{CapReview, CapChangeStatus, CapAssignReader, CapDecide, CapManageForms} {
			if !RoleCan(role, capability) {
				t.Fatalf("%s must hold %s", role, capability)
			}
		}
	}

	if RoleCan("guest", CapReview) {
		t.Fatalf("unknown roles must hold no capabilities")
	}
}

func TestValidateRatingAndRecommendation(t *testing.T) {
	for rating := 1; rating <= 5; rating++ {
		if !ValidateRating(rating) {
			t.Fatalf("rating %d must be valid", rating)
		}
	}
	if ValidateRating(0) || ValidateRating(6) {
		t.Fatalf("ratings outside 1..5 must be invalid")
	}

	for _, rec := range []string{"pass", "maybe", "yes"} {
		if !ValidateRecommendation(rec) {
			t.Fatalf("recommendation %q must be valid", rec)
		}
	}
	if ValidateRecommendation("no") || ValidateRecommendation("") {
		t.Fatalf("unknown recommendations must be invalid")
	}
}
