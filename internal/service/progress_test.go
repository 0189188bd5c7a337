package service

import (
	"testing"

	"github.com/Ghhost99/Recovery-Guard-BACKEND/internal/models"
)

func TestBuildProgressZeroCases(t *testing.T) {
	p := BuildProgress(StatusCounts{})
	if p.CurrentStepIndex != 0 {
		t.Fatalf("index = %d, want 0", p.CurrentStepIndex)
	}
	if p.Steps[0] != "No Cases" {
		t.Fatalf("zero-state labels expected, got %v", p.Steps)
	}
}

func TestBuildProgressThresholds(t *testing.T) {
	tests := []struct {
		name   string
		counts StatusCounts
		want   int
	}{
		{
			// 8 of 10 resolved or closed
			"mostly resolved",
			StatusCounts{models.StatusResolved: 6, models.StatusClosed: 2, models.StatusOpen: 2},
			4,
		},
		{
			// (2 resolved + 4 pending) / 10 = 0.6
			"resolution phase",
			StatusCounts{models.StatusResolved: 2, models.StatusPending: 4, models.StatusOpen: 4},
			3,
		},
		{
			// 2 of 5 in progress
			"investigation",
			StatusCounts{models.StatusInProgress: 2, models.StatusOpen: 3},
			2,
		},
		{
			// open below 80% of total but nothing else dominates
			"under review",
			StatusCounts{models.StatusOpen: 7, models.StatusInProgress: 3},
			1,
		},
		{
			"all open",
			StatusCounts{models.StatusOpen: 5},
			0,
		},
	}
	for _, tt := range tests {
		p := BuildProgress(tt.counts)
		if p.CurrentStepIndex != tt.want {
			t.Fatalf("%s: index = %d, want %d", tt.name, p.CurrentStepIndex, tt.want)
		}
		if p.Steps[0] != "Case Created" {
			t.Fatalf("%s: unexpected labels %v", tt.name, p.Steps)
		}
	}
}

func TestStatusCountsTotal(t *testing.T) {
	sc := StatusCounts{models.StatusOpen: 2, models.StatusClosed: 3}
	if sc.Total() != 5 {
		t.Fatalf("total = %d", sc.Total())
	}
}
