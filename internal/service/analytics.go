package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Ghhost99/Recovery-Guard-BACKEND/internal/models"
)

const (
	recentCaseWindow     = 15
	recentDocumentWindow = 5
)

// AnalyticsService derives reporting views from the current case set. It is
// strictly read-only: every call recomputes from the store, nothing is
// cached or written back. Sub-queries that fail degrade to zero values; the
// only hard failure is an unrecognized actor role.
type AnalyticsService struct {
	Store  Store
	Logger zerolog.Logger
}

// Stat is one label/value tile on the dashboard.
type Stat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type DashboardSummary struct {
	TotalCases      int                       `json:"total_cases"`
	CaseTypes       map[models.CaseKind]int   `json:"case_types"`
	StatusBreakdown map[models.CaseStatus]int `json:"status_breakdown"`
}

type Dashboard struct {
	Stats    []Stat           `json:"stats"`
	Progress Progress         `json:"progress"`
	Activity []ActivityEntry  `json:"activity"`
	UserRole models.Role      `json:"user_role"`
	Summary  DashboardSummary `json:"summary"`
}

// Dashboard assembles stats, the progress indicator, and the activity feed
// for the actor's reporting scope.
func (s *AnalyticsService) Dashboard(ctx context.Context, actor models.Actor) (*Dashboard, error) {
	scope, err := ReportScopeFor(actor)
	if err != nil {
		return nil, err
	}
	scope.ActiveOnly = true

	statusCounts := s.statusCounts(ctx, scope, "")
	kindCounts := s.kindCounts(ctx, scope)
	priorityCounts := s.priorityCounts(ctx, scope, "")
	total := statusCounts.Total()

	stats := s.buildStats(ctx, scope, actor.Role, total, statusCounts, kindCounts, priorityCounts)

	return &Dashboard{
		Stats:    stats,
		Progress: BuildProgress(statusCounts),
		Activity: s.buildActivity(ctx, scope),
		UserRole: actor.Role,
		Summary: DashboardSummary{
			TotalCases:      total,
			CaseTypes:       kindCounts,
			StatusBreakdown: statusCounts,
		},
	}, nil
}

func (s *AnalyticsService) buildStats(ctx context.Context, scope Scope, role models.Role, total int, statusCounts StatusCounts, kindCounts map[models.CaseKind]int, priorityCounts map[models.CasePriority]int) []Stat {
	stats := []Stat{
		{Label: "Total Cases", Value: fmt.Sprint(total)},
		{Label: "Open Cases", Value: fmt.Sprint(statusCounts[models.StatusOpen])},
		{Label: "In Progress", Value: fmt.Sprint(statusCounts[models.StatusInProgress])},
		{Label: "Resolved", Value: fmt.Sprint(statusCounts[models.StatusResolved])},
	}

	if role != models.RoleCustomer || total > 0 {
		stats = append(stats,
			Stat{Label: "Crypto Cases", Value: fmt.Sprint(kindCounts[models.KindCrypto])},
			Stat{Label: "Social Media", Value: fmt.Sprint(kindCounts[models.KindSocialMedia])},
			Stat{Label: "Money Recovery", Value: fmt.Sprint(kindCounts[models.KindMoneyRecovery])},
			Stat{Label: "General Cases", Value: fmt.Sprint(kindCounts[models.KindGeneral])},
		)
	}

	urgent := priorityCounts[models.PriorityUrgent]
	high := priorityCounts[models.PriorityHigh]
	if urgent > 0 || high > 0 {
		stats = append(stats,
			Stat{Label: "Urgent Cases", Value: fmt.Sprint(urgent)},
			Stat{Label: "High Priority", Value: fmt.Sprint(high)},
		)
	}

	if usdt := s.sumDecimal(ctx, scope, s.Store.SumCryptoUSDT); usdt.IsPositive() {
		stats = append(stats, Stat{Label: "Crypto Loss (USDT)", Value: "$" + usdt.StringFixed(2)})
	}
	if lost := s.sumDecimal(ctx, scope, s.Store.SumMoneyAmounts); lost.IsPositive() {
		stats = append(stats, Stat{Label: "Money Lost", Value: "$" + lost.StringFixed(2)})
	}
	return stats
}

func (s *AnalyticsService) buildActivity(ctx context.Context, scope Scope) []ActivityEntry {
	now := time.Now().UTC()

	cases, err := s.Store.RecentCases(ctx, scope, recentCaseWindow)
	if err != nil {
		s.Logger.Warn().Err(err).Msg("recent cases unavailable")
		cases = nil
	}
	docs, err := s.Store.RecentDocuments(ctx, scope, recentDocumentWindow)
	if err != nil {
		s.Logger.Warn().Err(err).Msg("recent documents unavailable")
		docs = nil
	}

	titles := map[string]string{}
	for _, c := range cases {
		titles[c.ID] = c.Title
	}
	var missing []string
	for _, d := range docs {
		if _, ok := titles[d.CaseID]; !ok {
			missing = append(missing, d.CaseID)
		}
	}
	if len(missing) > 0 {
		extra, err := s.Store.CaseTitles(ctx, missing)
		if err != nil {
			s.Logger.Warn().Err(err).Msg("case titles unavailable")
		}
		for id, title := range extra {
			titles[id] = title
		}
	}

	return BuildActivity(cases, docs, titles, now)
}

// KindStats is the per-kind statistics view. Financial figures appear for
// crypto and money-recovery kinds, the platform breakdown for social media.
type KindStats struct {
	Total             int                         `json:"total"`
	CaseType          models.CaseKind             `json:"case_type,omitempty"`
	ByStatus          StatusCounts                `json:"by_status"`
	ByPriority        map[models.CasePriority]int `json:"by_priority"`
	Financial         map[string]string           `json:"financial,omitempty"`
	CryptoBreakdown   map[string]int              `json:"crypto_breakdown,omitempty"`
	PlatformBreakdown map[string]int              `json:"platform_breakdown,omitempty"`
}

// KindStats reports detailed statistics for one case kind, or for all kinds
// when kind is empty.
func (s *AnalyticsService) KindStats(ctx context.Context, actor models.Actor, kind models.CaseKind) (*KindStats, error) {
	scope, err := ReportScopeFor(actor)
	if err != nil {
		return nil, err
	}
	scope.ActiveOnly = true

	byStatus := s.statusCounts(ctx, scope, kind)
	out := &KindStats{
		Total:      byStatus.Total(),
		CaseType:   kind,
		ByStatus:   byStatus,
		ByPriority: s.priorityCounts(ctx, scope, kind),
	}

	switch kind {
	case models.KindCrypto:
		out.Financial = map[string]string{
			"total_usdt_lost":   s.sumDecimal(ctx, scope, s.Store.SumCryptoUSDT).String(),
			"avg_loss_per_case": s.sumDecimal(ctx, scope, s.Store.AvgCryptoUSDT).String(),
		}
		breakdown, err := s.Store.CryptoTypeCounts(ctx, scope)
		if err != nil {
			s.Logger.Warn().Err(err).Msg("crypto breakdown unavailable")
			breakdown = map[string]int{}
		}
		out.CryptoBreakdown = breakdown
	case models.KindMoneyRecovery:
		out.Financial = map[string]string{
			"total_money_lost":  s.sumDecimal(ctx, scope, s.Store.SumMoneyAmounts).String(),
			"avg_loss_per_case": s.sumDecimal(ctx, scope, s.Store.AvgMoneyAmount).String(),
		}
	case models.KindSocialMedia:
		breakdown, err := s.Store.PlatformCounts(ctx, scope)
		if err != nil {
			s.Logger.Warn().Err(err).Msg("platform breakdown unavailable")
			breakdown = map[string]int{}
		}
		out.PlatformBreakdown = breakdown
	}
	return out, nil
}

// CaseStats is the compact per-actor statistics block.
type CaseStats struct {
	TotalCases      int                         `json:"total_cases"`
	OpenCases       int                         `json:"open_cases"`
	InProgressCases int                         `json:"in_progress_cases"`
	ResolvedCases   int                         `json:"resolved_cases"`
	ClosedCases     int                         `json:"closed_cases"`
	ByType          map[models.CaseKind]int     `json:"by_type"`
	ByPriority      map[models.CasePriority]int `json:"by_priority"`
}

func (s *AnalyticsService) CaseStats(ctx context.Context, actor models.Actor) (*CaseStats, error) {
	scope, err := ReportScopeFor(actor)
	if err != nil {
		return nil, err
	}

	byStatus := s.statusCounts(ctx, scope, "")
	return &CaseStats{
		TotalCases:      byStatus.Total(),
		OpenCases:       byStatus[models.StatusOpen],
		InProgressCases: byStatus[models.StatusInProgress],
		ResolvedCases:   byStatus[models.StatusResolved],
		ClosedCases:     byStatus[models.StatusClosed],
		ByType:          s.kindCounts(ctx, scope),
		ByPriority:      s.priorityCounts(ctx, scope, ""),
	}, nil
}

// KindCount names the most common case kind in scope.
type KindCount struct {
	Type  models.CaseKind `json:"type"`
	Count int             `json:"count"`
}

type TimeAnalysis struct {
	CasesCreatedLast30Days  int `json:"cases_created_last_30_days"`
	CasesCreatedLast7Days   int `json:"cases_created_last_7_days"`
	CasesResolvedLast30Days int `json:"cases_resolved_last_30_days"`
}

type EfficiencyMetrics struct {
	AvgResolutionTimeDays float64 `json:"avg_resolution_time_days"`
	ResolutionRate        float64 `json:"resolution_rate"`
}

type Trends struct {
	MostCommonCaseType   *KindCount                  `json:"most_common_case_type"`
	PriorityDistribution map[models.CasePriority]int `json:"priority_distribution"`
}

type AnalyticsReport struct {
	TimeAnalysis      TimeAnalysis      `json:"time_analysis"`
	EfficiencyMetrics EfficiencyMetrics `json:"efficiency_metrics"`
	Trends            Trends            `json:"trends"`
}

// Analytics computes the time-windowed counts, efficiency metrics, and
// trend projections for the actor's reporting scope.
func (s *AnalyticsService) Analytics(ctx context.Context, actor models.Actor) (*AnalyticsReport, error) {
	scope, err := ReportScopeFor(actor)
	if err != nil {
		return nil, err
	}
	scope.ActiveOnly = true

	now := time.Now().UTC()
	last7 := now.AddDate(0, 0, -7)
	last30 := now.AddDate(0, 0, -30)

	byStatus := s.statusCounts(ctx, scope, "")
	total := byStatus.Total()

	rate := 0.0
	if total > 0 {
		rate = round1(float64(byStatus[models.StatusResolved]) / float64(total) * 100)
	}

	avgDays, err := s.Store.AvgResolutionDays(ctx, scope)
	if err != nil {
		s.Logger.Warn().Err(err).Msg("avg resolution time unavailable")
		avgDays = 0
	}

	return &AnalyticsReport{
		TimeAnalysis: TimeAnalysis{
			CasesCreatedLast30Days:  s.count(ctx, scope, last30, s.Store.CountCreatedSince),
			CasesCreatedLast7Days:   s.count(ctx, scope, last7, s.Store.CountCreatedSince),
			CasesResolvedLast30Days: s.count(ctx, scope, last30, s.Store.CountResolvedSince),
		},
		EfficiencyMetrics: EfficiencyMetrics{
			AvgResolutionTimeDays: round1(avgDays),
			ResolutionRate:        rate,
		},
		Trends: Trends{
			MostCommonCaseType:   mostCommonKind(s.kindCounts(ctx, scope)),
			PriorityDistribution: s.priorityCounts(ctx, scope, ""),
		},
	}, nil
}

func mostCommonKind(counts map[models.CaseKind]int) *KindCount {
	var best *KindCount
	// deterministic tie-break: earliest in the declared kind order wins
	order := []models.CaseKind{models.KindGeneral, models.KindCrypto, models.KindMoneyRecovery, models.KindSocialMedia}
	for _, k := range order {
		n := counts[k]
		if n == 0 {
			continue
		}
		if best == nil || n > best.Count {
			best = &KindCount{Type: k, Count: n}
		}
	}
	return best
}

func (s *AnalyticsService) statusCounts(ctx context.Context, scope Scope, kind models.CaseKind) StatusCounts {
	counts, err := s.Store.StatusCounts(ctx, scope, kind)
	if err != nil {
		s.Logger.Warn().Err(err).Msg("status counts unavailable")
		return StatusCounts{}
	}
	return counts
}

func (s *AnalyticsService) kindCounts(ctx context.Context, scope Scope) map[models.CaseKind]int {
	counts, err := s.Store.KindCounts(ctx, scope)
	if err != nil {
		s.Logger.Warn().Err(err).Msg("kind counts unavailable")
		return map[models.CaseKind]int{}
	}
	return counts
}

func (s *AnalyticsService) priorityCounts(ctx context.Context, scope Scope, kind models.CaseKind) map[models.CasePriority]int {
	counts, err := s.Store.PriorityCounts(ctx, scope, kind)
	if err != nil {
		s.Logger.Warn().Err(err).Msg("priority counts unavailable")
		return map[models.CasePriority]int{}
	}
	return counts
}

func (s *AnalyticsService) sumDecimal(ctx context.Context, scope Scope, f func(context.Context, Scope) (decimal.Decimal, error)) decimal.Decimal {
	v, err := f(ctx, scope)
	if err != nil {
		s.Logger.Warn().Err(err).Msg("financial rollup unavailable")
		return decimal.Zero
	}
	return v
}

func (s *AnalyticsService) count(ctx context.Context, scope Scope, since time.Time, f func(context.Context, Scope, time.Time) (int, error)) int {
	n, err := f(ctx, scope, since)
	if err != nil {
		s.Logger.Warn().Err(err).Msg("windowed count unavailable")
		return 0
	}
	return n
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
