package utils

import (
	"fmt"
	"strings"
)

// Canonical submission statuses. These mirror submissions.status values.
const (
	StatusPending     = "pending"
	StatusUnderReview = "under_review"
	StatusShortlisted = "shortlisted"
	StatusAccepted    = "accepted"
	StatusDeclined    = "declined"
	StatusWithdrawn   = "withdrawn"
)

var statusSynonyms = map[string][]string{
	StatusPending:     {"pending", "submitted", "new"},
	StatusUnderReview: {"under_review", "under review", "in_review", "reviewing"},
	StatusShortlisted: {"shortlisted", "shortlist"},
	StatusAccepted:    {"accepted", "accept"},
	StatusDeclined:    {"declined", "decline", "rejected"},
	StatusWithdrawn:   {"withdrawn", "withdraw"},
}

var statusByInput = func() map[string]string {
	lookup := make(map[string]string)
	for canonical, synonyms := range statusSynonyms {
		for _, synonym := range synonyms {
			lookup[strings.ToLower(synonym)] = canonical
		}
	}
	return lookup
}()

// NormalizeStatus resolves user-facing status spellings to a canonical value.
func NormalizeStatus(input string) (string, error) {
	canonical, ok := statusByInput[strings.ToLower(strings.TrimSpace(input))]
	if !ok {
		return "", fmt.Errorf("unknown status %q", input)
	}
	return canonical, nil
}

// editorialTransitions is the lifecycle graph for editorial status changes.
// Withdrawal is writer-initiated and handled separately by the lifecycle
// service; it never appears here.
var editorialTransitions = map[string][]string{
	StatusPending:     {StatusUnderReview},
	StatusUnderReview: {StatusShortlisted, StatusAccepted, StatusDeclined},
	StatusShortlisted: {StatusAccepted, StatusDeclined},
}

// CanTransition reports whether an editorial move from one status to another
// is allowed. Accepted, declined and withdrawn are terminal.
func CanTransition(from, to string) bool {
	for _, next := range editorialTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsWithdrawable reports whether a writer may still withdraw a submission in
// the given status.
func IsWithdrawable(status string) bool {
	return status == StatusPending || status == StatusUnderReview
}

// IsActiveStatus reports whether a status counts as "active" for dashboard
// purposes (not yet decided or withdrawn).
func IsActiveStatus(status string) bool {
	switch status {
	case StatusPending, StatusUnderReview, StatusShortlisted:
		return true
	}
	return false
}

// Decision types and the status each one lands the submission in.
const (
	DecisionAccept         = "accept"
	DecisionDecline        = "decline"
	DecisionReviseResubmit = "revise_resubmit"
	DecisionShortlist      = "shortlist"
)

var decisionStatus = map[string]string{
	DecisionAccept:         StatusAccepted,
	DecisionDecline:        StatusDeclined,
	DecisionReviseResubmit: StatusDeclined,
	DecisionShortlist:      StatusShortlisted,
}

// StatusForDecision maps a decision type to the resulting submission status.
func StatusForDecision(decisionType string) (string, error) {
	status, ok := decisionStatus[decisionType]
	if !ok {
		return "", fmt.Errorf("unknown decision type %q", decisionType)
	}
	return status, nil
}
