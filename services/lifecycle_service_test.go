package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"submeet-api/models"
	"submeet-api/utils"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func formRow(isActive bool, cap driver.Value, count int64) *queryStep {
	active := int64(0)
	if isActive {
		active = 1
	}
	return &queryStep{
		kind:    kindQuery,
		pattern: regexp.MustCompile("SELECT \\* FROM `forms` WHERE form_id = \\?"),
		columns: []string{"form_id", "publication_id", "title", "is_active", "submission_cap", "current_submission_count"},
		rows: [][]driver.Value{
			{int64(7), int64(3), "Spring Reading", active, cap, count},
		},
	}
}

func submissionRow(userID int, status string) *queryStep {
	return &queryStep{
		kind:    kindQuery,
		pattern: regexp.MustCompile("SELECT \\* FROM `submissions` WHERE submission_id = \\?"),
		columns: []string{"submission_id", "form_id", "user_id", "title", "status", "submitted_at"},
		rows: [][]driver.Value{
			{int64(42), int64(7), int64(userID), "The Lighthouse", status, testNow.AddDate(0, 0, -3)},
		},
	}
}

func TestCheckCreateEligibility(t *testing.T) {
	start := testNow.AddDate(0, 0, -10)
	end := testNow.AddDate(0, 0, 10)
	cap := 100

	cases := []struct {
		name    string
		form    models.Form
		wantErr string
	}{
		{
			name: "open form accepts",
			form: models.Form{IsActive: true, ReadingPeriodStart: &start, ReadingPeriodEnd: &end},
		},
		{
			name:    "inactive form rejects",
			form:    models.Form{IsActive: false},
			wantErr: "Form is not accepting submissions",
		},
		{
			name:    "before reading period",
			form:    models.Form{IsActive: true, ReadingPeriodStart: &end},
			wantErr: "Reading period has not started",
		},
		{
			name:    "after reading period",
			form:    models.Form{IsActive: true, ReadingPeriodEnd: &start},
			wantErr: "Reading period has ended",
		},
		{
			name:    "cap reached",
			form:    models.Form{IsActive: true, SubmissionCap: &cap, CurrentSubmissionCount: 100},
			wantErr: "Submission cap reached",
		},
		{
			name: "no window is always open",
			form: models.Form{IsActive: true},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckCreateEligibility(&tc.form, testNow)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var stateErr *StateError
			if !errors.As(err, &stateErr) {
				t.Fatalf("expected StateError, got %v", err)
			}
			if stateErr.Reason != tc.wantErr {
				t.Fatalf("expected reason %q, got %q", tc.wantErr, stateErr.Reason)
			}
		})
	}
}

func TestCreateSetsPendingAndIncrementsCounter(t *testing.T) {
	steps := []*queryStep{
		formRow(true, int64(100), 5),
		{
			kind:    kindExec,
			pattern: regexp.MustCompile(`^UPDATE forms SET current_submission_count`),
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("^INSERT INTO `submissions`"),
			result:  scriptedResult{lastInsertID: 42, rowsAffected: 1},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewLifecycleService(gormDB)
	service.now = func() time.Time { return testNow }

	submission, err := service.Create(CreateSubmissionInput{
		FormID: 7,
		UserID: 11,
		Title:  "The Lighthouse",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if submission.Status != utils.StatusPending {
		t.Fatalf("expected pending status, got %s", submission.Status)
	}
	if !submission.SubmittedAt.Equal(testNow) {
		t.Fatalf("expected submitted_at %v, got %v", testNow, submission.SubmittedAt)
	}
	if submission.Language != "English" {
		t.Fatalf("expected default language, got %s", submission.Language)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestCreateRejectsWhenCapRacesToFull(t *testing.T) {
	// The form read sees one free slot, but the conditional increment finds
	// the counter already at the cap. No insert may run.
	steps := []*queryStep{
		formRow(true, int64(1), 0),
		{
			kind:    kindExec,
			pattern: regexp.MustCompile(`^UPDATE forms SET current_submission_count`),
			result:  scriptedResult{rowsAffected: 0},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewLifecycleService(gormDB)
	service.now = func() time.Time { return testNow }

	_, err := service.Create(CreateSubmissionInput{FormID: 7, UserID: 11, Title: "Late Entry"})
	var stateErr *StateError
	if !errors.As(err, &stateErr) {
		t.Fatalf("expected StateError, got %v", err)
	}
	if stateErr.Reason != "Submission cap reached" {
		t.Fatalf("unexpected reason: %s", stateErr.Reason)
	}
	if state.rollbackCount() == 0 {
		t.Fatalf("expected transaction rollback")
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestCreateRejectsClosedForm(t *testing.T) {
	steps := []*queryStep{formRow(false, nil, 0)}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewLifecycleService(gormDB)
	service.now = func() time.Time { return testNow }

	_, err := service.Create(CreateSubmissionInput{FormID: 7, UserID: 11, Title: "Too Late"})
	var stateErr *StateError
	if !errors.As(err, &stateErr) {
		t.Fatalf("expected StateError, got %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestCreateRejectsMissingTitle(t *testing.T) {
	gormDB, state, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	service := NewLifecycleService(gormDB)
	_, err := service.Create(CreateSubmissionInput{FormID: 7, UserID: 11})
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestWithdrawStoresDefaultReason(t *testing.T) {
	steps := []*queryStep{
		submissionRow(11, utils.StatusPending),
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("^UPDATE `submissions` SET"),
			result:  scriptedResult{rowsAffected: 1},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewLifecycleService(gormDB)
	service.now = func() time.Time { return testNow }

	submission, err := service.Withdraw(42, 11, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if submission.Status != utils.StatusWithdrawn {
		t.Fatalf("expected withdrawn, got %s", submission.Status)
	}
	if submission.WithdrawalReason == nil || *submission.WithdrawalReason != DefaultWithdrawalReason {
		t.Fatalf("expected default withdrawal reason, got %v", submission.WithdrawalReason)
	}
	if submission.WithdrawnAt == nil || !submission.WithdrawnAt.Equal(testNow) {
		t.Fatalf("expected withdrawn_at %v, got %v", testNow, submission.WithdrawnAt)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestWithdrawRejectsDecidedSubmission(t *testing.T) {
	steps := []*queryStep{submissionRow(11, utils.StatusAccepted)}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewLifecycleService(gormDB)
	_, err := service.Withdraw(42, 11, "changed my mind")
	var stateErr *StateError
	if !errors.As(err, &stateErr) {
		t.Fatalf("expected StateError, got %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestWithdrawRejectsNonOwner(t *testing.T) {
	steps := []*queryStep{submissionRow(11, utils.StatusPending)}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewLifecycleService(gormDB)
	_, err := service.Withdraw(42, 99, "")
	if !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestChangeStatusFollowsTransitionTable(t *testing.T) {
	steps := []*queryStep{
		submissionRow(11, utils.StatusPending),
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("^UPDATE `submissions` SET"),
			result:  scriptedResult{rowsAffected: 1},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewLifecycleService(gormDB)
	service.now = func() time.Time { return testNow }

	submission, err := service.ChangeStatus(42, utils.StatusUnderReview, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if submission.Status != utils.StatusUnderReview {
		t.Fatalf("expected under_review, got %s", submission.Status)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestChangeStatusRejectsSkippedTransition(t *testing.T) {
	steps := []*queryStep{submissionRow(11, utils.StatusPending)}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewLifecycleService(gormDB)
	_, err := service.ChangeStatus(42, utils.StatusAccepted, false)
	var stateErr *StateError
	if !errors.As(err, &stateErr) {
		t.Fatalf("expected StateError, got %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestChangeStatusOverrideSkipsTable(t *testing.T) {
	steps := []*queryStep{
		submissionRow(11, utils.StatusPending),
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("^UPDATE `submissions` SET"),
			result:  scriptedResult{rowsAffected: 1},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewLifecycleService(gormDB)
	service.now = func() time.Time { return testNow }

	submission, err := service.ChangeStatus(42, utils.StatusAccepted, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if submission.Status != utils.StatusAccepted {
		t.Fatalf("expected accepted, got %s", submission.Status)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestChangeStatusNeverTouchesWithdrawn(t *testing.T) {
	steps := []*queryStep{submissionRow(11, utils.StatusWithdrawn)}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	service := NewLifecycleService(gormDB)
	_, err := service.ChangeStatus(42, utils.StatusAccepted, true)
	var stateErr *StateError
	if !errors.As(err, &stateErr) {
		t.Fatalf("expected StateError, got %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}
