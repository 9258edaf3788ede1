package services

import (
	"testing"
	"time"

	"submeet-api/models"
	"submeet-api/utils"
)

func intPtr(v int) *int { return &v }

func TestComputeWriterStatsEmptyCollection(t *testing.T) {
	stats := ComputeWriterStats(nil, time.Now())
	if stats.TotalSubmissions != 0 || stats.ActiveSubmissions != 0 || stats.Accepted != 0 {
		t.Fatalf("expected zeroed stats, got %+v", stats)
	}
	if stats.AcceptanceRate != 0 {
		t.Fatalf("acceptance rate must be 0 for an empty collection, got %d", stats.AcceptanceRate)
	}
}

func TestComputeWriterStatsCountsAndRate(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	thisMonth := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC)
	lastYear := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	submissions := []models.Submission{
		{Status: utils.StatusPending, SubmittedAt: thisMonth, WordCount: intPtr(1200)},
		{Status: utils.StatusUnderReview, SubmittedAt: thisMonth, WordCount: intPtr(800)},
		{Status: utils.StatusShortlisted, SubmittedAt: lastMonth, WordCount: intPtr(3000)},
		{Status: utils.StatusAccepted, SubmittedAt: lastMonth, WordCount: intPtr(500)},
		{Status: utils.StatusDeclined, SubmittedAt: lastYear},
		{Status: utils.StatusWithdrawn, SubmittedAt: lastYear, WordCount: intPtr(100)},
	}

	stats := ComputeWriterStats(submissions, now)

	if stats.TotalSubmissions != 6 {
		t.Fatalf("expected 6 total, got %d", stats.TotalSubmissions)
	}
	if stats.ActiveSubmissions != 3 {
		t.Fatalf("expected 3 active, got %d", stats.ActiveSubmissions)
	}
	if stats.Accepted != 1 {
		t.Fatalf("expected 1 accepted, got %d", stats.Accepted)
	}
	// round(1/6*100) = 17
	if stats.AcceptanceRate != 17 {
		t.Fatalf("expected rate 17, got %d", stats.AcceptanceRate)
	}
	// March 2025 must not count toward March 2026.
	if stats.SubmittedThisMonth != 2 {
		t.Fatalf("expected 2 this month, got %d", stats.SubmittedThisMonth)
	}
	if stats.TotalWordCount != 5600 {
		t.Fatalf("expected 5600 words, got %d", stats.TotalWordCount)
	}
}

func TestComputeWriterStatsRateRoundsHalfUp(t *testing.T) {
	// 1 of 3 accepted: round(33.33) = 33. 2 of 3: round(66.67) = 67.
	now := time.Now()
	base := []models.Submission{
		{Status: utils.StatusAccepted, SubmittedAt: now},
		{Status: utils.StatusDeclined, SubmittedAt: now},
		{Status: utils.StatusDeclined, SubmittedAt: now},
	}
	if got := ComputeWriterStats(base, now).AcceptanceRate; got != 33 {
		t.Fatalf("expected 33, got %d", got)
	}

	base[1].Status = utils.StatusAccepted
	if got := ComputeWriterStats(base, now).AcceptanceRate; got != 67 {
		t.Fatalf("expected 67, got %d", got)
	}

	// 1 of 8 accepted: round(12.5) = 13.
	eighth := make([]models.Submission, 8)
	for i := range eighth {
		eighth[i] = models.Submission{Status: utils.StatusDeclined, SubmittedAt: now}
	}
	eighth[0].Status = utils.StatusAccepted
	if got := ComputeWriterStats(eighth, now).AcceptanceRate; got != 13 {
		t.Fatalf("expected 13, got %d", got)
	}
}
