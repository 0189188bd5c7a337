package service

import (
	"strings"
	"testing"
	"time"

	"github.com/Ghhost99/Recovery-Guard-BACKEND/internal/models"
)

func caseUpdatedAt(title string, status models.CaseStatus, at time.Time) *models.Case {
	c := models.NewCase("cust-1", title, "", nil)
	c.Status = status
	c.UpdatedAt = at
	return c
}

func TestBuildActivityMergesNewestFirst(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

	a := caseUpdatedAt("Case A", models.StatusOpen, now.Add(-3*time.Hour))
	b := caseUpdatedAt("Case B", models.StatusResolved, now.Add(-2*time.Hour))
	doc := models.NewSupportingDocument(a.ID, models.FileRef{URL: "/media/x", Name: "x.pdf"}, "")
	doc.UploadedAt = now.Add(-1 * time.Hour)

	feed := BuildActivity([]*models.Case{a, b}, []*models.SupportingDocument{doc}, map[string]string{a.ID: "Case A"}, now)
	if len(feed) != 3 {
		t.Fatalf("feed length = %d", len(feed))
	}
	if feed[0].Icon != "📎" {
		t.Fatalf("newest entry must be the document, got %+v", feed[0])
	}
	if !strings.Contains(feed[0].Message, "Case A") {
		t.Fatalf("document entry must carry the case title: %q", feed[0].Message)
	}
	if feed[0].Detail != "Supporting document" {
		t.Fatalf("empty description must default, got %q", feed[0].Detail)
	}
	if !strings.Contains(feed[1].Message, "Case B") || !strings.Contains(feed[2].Message, "Case A") {
		t.Fatalf("case order wrong: %q then %q", feed[1].Message, feed[2].Message)
	}
}

func TestBuildActivityTruncates(t *testing.T) {
	now := time.Now().UTC()
	var cases []*models.Case
	for i := 0; i < 15; i++ {
		cases = append(cases, caseUpdatedAt("Case", models.StatusOpen, now.Add(-time.Duration(i)*time.Minute)))
	}
	feed := BuildActivity(cases, nil, nil, now)
	if len(feed) != 10 {
		t.Fatalf("feed length = %d, want 10", len(feed))
	}
}

func TestCaseEntryShapes(t *testing.T) {
	now := time.Now().UTC()

	resolved := models.NewCase("cust-1", "Got it back", "", &models.CryptoLossReport{})
	resolved.Status = models.StatusResolved
	entry := caseEntry(resolved, now)
	if entry.Icon != "₿" || entry.Detail != "✅ Completed" {
		t.Fatalf("unexpected entry %+v", entry)
	}

	agent := "agent-7"
	working := models.NewCase("cust-1", "In hand", "", &models.SocialMediaRecovery{})
	working.Status = models.StatusInProgress
	working.AgentID = &agent
	entry = caseEntry(working, now)
	if entry.Icon != "📱" || entry.Detail != "Assigned to agent-7" {
		t.Fatalf("unexpected entry %+v", entry)
	}

	unassigned := models.NewCase("cust-1", "Waiting", "", nil)
	unassigned.Status = models.StatusInProgress
	entry = caseEntry(unassigned, now)
	if entry.Detail != "Assigned to Unassigned" {
		t.Fatalf("unexpected detail %q", entry.Detail)
	}
}

func TestRelativeTime(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "Just now"},
		{time.Minute, "1 minute ago"},
		{5 * time.Minute, "5 minutes ago"},
		{time.Hour, "1 hour ago"},
		{26 * time.Hour, "1 day ago"},
		{72 * time.Hour, "3 days ago"},
	}
	for _, tt := range tests {
		if got := RelativeTime(tt.d); got != tt.want {
			t.Fatalf("RelativeTime(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
