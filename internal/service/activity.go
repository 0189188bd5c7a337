package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/Ghhost99/Recovery-Guard-BACKEND/internal/models"
)

const activityFeedLimit = 10

// ActivityEntry is one rendered line of the recent-activity feed.
type ActivityEntry struct {
	Icon     string `json:"icon"`
	Message  string `json:"message"`
	Detail   string `json:"detail"`
	Time     string `json:"time"`
	CaseID   string `json:"case_id"`
	CaseType string `json:"case_type,omitempty"`
	Priority string `json:"priority,omitempty"`
}

type feedItem struct {
	at    time.Time
	entry ActivityEntry
}

// BuildActivity projects recently-updated cases and recently-uploaded
// documents into one feed shape, merges them by timestamp descending, and
// truncates to the fixed feed length.
func BuildActivity(cases []*models.Case, docs []*models.SupportingDocument, titles map[string]string, now time.Time) []ActivityEntry {
	items := make([]feedItem, 0, len(cases)+len(docs))

	for _, c := range cases {
		items = append(items, feedItem{at: c.UpdatedAt, entry: caseEntry(c, now)})
	}
	for _, d := range docs {
		items = append(items, feedItem{at: d.UploadedAt, entry: documentEntry(d, titles[d.CaseID], now)})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].at.After(items[j].at)
	})
	if len(items) > activityFeedLimit {
		items = items[:activityFeedLimit]
	}

	out := make([]ActivityEntry, 0, len(items))
	for _, it := range items {
		out = append(out, it.entry)
	}
	return out
}

func caseEntry(c *models.Case, now time.Time) ActivityEntry {
	var icon string
	switch c.Kind {
	case models.KindCrypto:
		icon = "₿"
	case models.KindSocialMedia:
		icon = "📱"
	case models.KindMoneyRecovery:
		icon = "💰"
	default:
		icon = "📋"
	}

	var message, detail string
	switch c.Status {
	case models.StatusResolved:
		message = fmt.Sprintf("Case resolved: %s", c.Title)
		detail = "✅ Completed"
	case models.StatusInProgress:
		message = fmt.Sprintf("Case in progress: %s", c.Title)
		if c.AgentID != nil {
			detail = "Assigned to " + *c.AgentID
		} else {
			detail = "Assigned to Unassigned"
		}
	case models.StatusPending:
		message = fmt.Sprintf("Case pending: %s", c.Title)
		detail = "⏳ Awaiting action"
	case models.StatusOpen:
		message = fmt.Sprintf("New case opened: %s", c.Title)
		detail = "🆕 Recently created"
	default:
		message = fmt.Sprintf("Case updated: %s", c.Title)
		detail = models.StatusLabel(c.Status)
	}

	return ActivityEntry{
		Icon:     icon,
		Message:  message,
		Detail:   detail,
		Time:     RelativeTime(now.Sub(c.UpdatedAt)),
		CaseID:   c.ID,
		CaseType: models.KindLabel(c.Kind),
		Priority: string(c.Priority),
	}
}

func documentEntry(d *models.SupportingDocument, caseTitle string, now time.Time) ActivityEntry {
	detail := d.Description
	if detail == "" {
		detail = "Supporting document"
	}
	return ActivityEntry{
		Icon:    "📎",
		Message: fmt.Sprintf("Document uploaded for case: %s", caseTitle),
		Detail:  detail,
		Time:    RelativeTime(now.Sub(d.UploadedAt)),
		CaseID:  d.CaseID,
	}
}

// RelativeTime renders an elapsed duration with its single largest
// applicable unit: days, hours, minutes, or "Just now".
func RelativeTime(d time.Duration) string {
	switch {
	case d >= 24*time.Hour:
		days := int(d.Hours()) / 24
		return fmt.Sprintf("%d day%s ago", days, plural(days))
	case d >= time.Hour:
		hours := int(d.Hours())
		return fmt.Sprintf("%d hour%s ago", hours, plural(hours))
	case d >= time.Minute:
		minutes := int(d.Minutes())
		return fmt.Sprintf("%d minute%s ago", minutes, plural(minutes))
	default:
		return "Just now"
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
