package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Ghhost99/Recovery-Guard-BACKEND/internal/models"
)

// Store is the persistence contract the services run against. The pgx
// implementation lives in internal/db; tests use an in-memory fake.
//
// Writes that touch a case and its payload are atomic: CreateCase,
// UpdateCase, and DeleteCase each span base row, extension row, and (for
// delete) supporting documents in one transaction.
type Store interface {
	CreateCase(ctx context.Context, c *models.Case) error
	GetCase(ctx context.Context, id string) (*models.Case, error)
	UpdateCase(ctx context.Context, c *models.Case) error
	DeleteCase(ctx context.Context, id string) error
	ListCases(ctx context.Context, scope Scope, filter CaseFilter) ([]*models.Case, error)

	InsertDocuments(ctx context.Context, docs []*models.SupportingDocument) error
	ListDocuments(ctx context.Context, caseID string) ([]*models.SupportingDocument, error)
	GetDocument(ctx context.Context, caseID, docID string) (*models.SupportingDocument, error)
	DeleteDocument(ctx context.Context, caseID, docID string) error

	// Aggregates. kind narrows the set when non-empty. Missing rows mean
	// zero values, never errors.
	StatusCounts(ctx context.Context, scope Scope, kind models.CaseKind) (StatusCounts, error)
	KindCounts(ctx context.Context, scope Scope) (map[models.CaseKind]int, error)
	PriorityCounts(ctx context.Context, scope Scope, kind models.CaseKind) (map[models.CasePriority]int, error)
	SumCryptoUSDT(ctx context.Context, scope Scope) (decimal.Decimal, error)
	AvgCryptoUSDT(ctx context.Context, scope Scope) (decimal.Decimal, error)
	SumMoneyAmounts(ctx context.Context, scope Scope) (decimal.Decimal, error)
	AvgMoneyAmount(ctx context.Context, scope Scope) (decimal.Decimal, error)
	CryptoTypeCounts(ctx context.Context, scope Scope) (map[string]int, error)
	PlatformCounts(ctx context.Context, scope Scope) (map[string]int, error)

	RecentCases(ctx context.Context, scope Scope, limit int) ([]*models.Case, error)
	RecentDocuments(ctx context.Context, scope Scope, limit int) ([]*models.SupportingDocument, error)
	CaseTitles(ctx context.Context, ids []string) (map[string]string, error)

	CountCreatedSince(ctx context.Context, scope Scope, since time.Time) (int, error)
	CountResolvedSince(ctx context.Context, scope Scope, since time.Time) (int, error)
	AvgResolutionDays(ctx context.Context, scope Scope) (float64, error)
}
