package service

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Ghhost99/Recovery-Guard-BACKEND/internal/models"
)

// memStore is the in-memory Store used by the service tests.
type memStore struct {
	cases map[string]*models.Case
	docs  map[string]*models.SupportingDocument
}

func newMemStore() *memStore {
	return &memStore{
		cases: map[string]*models.Case{},
		docs:  map[string]*models.SupportingDocument{},
	}
}

func (m *memStore) CreateCase(ctx context.Context, c *models.Case) error {
	m.cases[c.ID] = c.Clone()
	return nil
}

func (m *memStore) GetCase(ctx context.Context, id string) (*models.Case, error) {
	c, ok := m.cases[id]
	if !ok {
		return nil, ErrNotFound
	}
	return c.Clone(), nil
}

func (m *memStore) UpdateCase(ctx context.Context, c *models.Case) error {
	if _, ok := m.cases[c.ID]; !ok {
		return ErrNotFound
	}
	m.cases[c.ID] = c.Clone()
	return nil
}

func (m *memStore) DeleteCase(ctx context.Context, id string) error {
	if _, ok := m.cases[id]; !ok {
		return ErrNotFound
	}
	delete(m.cases, id)
	for docID, d := range m.docs {
		if d.CaseID == id {
			delete(m.docs, docID)
		}
	}
	return nil
}

func (m *memStore) scoped(scope Scope) []*models.Case {
	var out []*models.Case
	for _, c := range m.cases {
		if scope.Contains(c) {
			out = append(out, c.Clone())
		}
	}
	return out
}

func (m *memStore) ListCases(ctx context.Context, scope Scope, filter CaseFilter) ([]*models.Case, error) {
	var out []*models.Case
	for _, c := range m.scoped(scope) {
		if filter.Matches(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) InsertDocuments(ctx context.Context, docs []*models.SupportingDocument) error {
	for _, d := range docs {
		copied := *d
		m.docs[d.ID] = &copied
	}
	return nil
}

func (m *memStore) ListDocuments(ctx context.Context, caseID string) ([]*models.SupportingDocument, error) {
	var out []*models.SupportingDocument
	for _, d := range m.docs {
		if d.CaseID == caseID {
			copied := *d
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	return out, nil
}

func (m *memStore) GetDocument(ctx context.Context, caseID, docID string) (*models.SupportingDocument, error) {
	d, ok := m.docs[docID]
	if !ok || d.CaseID != caseID {
		return nil, ErrNotFound
	}
	copied := *d
	return &copied, nil
}

func (m *memStore) DeleteDocument(ctx context.Context, caseID, docID string) error {
	d, ok := m.docs[docID]
	if !ok || d.CaseID != caseID {
		return ErrNotFound
	}
	delete(m.docs, docID)
	return nil
}

func (m *memStore) StatusCounts(ctx context.Context, scope Scope, kind models.CaseKind) (StatusCounts, error) {
	out := StatusCounts{}
	for _, c := range m.scoped(scope) {
		if kind != "" && c.Kind != kind {
			continue
		}
		out[c.Status]++
	}
	return out, nil
}

func (m *memStore) KindCounts(ctx context.Context, scope Scope) (map[models.CaseKind]int, error) {
	out := map[models.CaseKind]int{}
	for _, c := range m.scoped(scope) {
		out[c.Kind]++
	}
	return out, nil
}

func (m *memStore) PriorityCounts(ctx context.Context, scope Scope, kind models.CaseKind) (map[models.CasePriority]int, error) {
	out := map[models.CasePriority]int{}
	for _, c := range m.scoped(scope) {
		if kind != "" && c.Kind != kind {
			continue
		}
		out[c.Priority]++
	}
	return out, nil
}

func (m *memStore) SumCryptoUSDT(ctx context.Context, scope Scope) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, c := range m.scoped(scope) {
		if d, ok := c.Crypto(); ok {
			total = total.Add(d.USDTValue)
		}
	}
	return total, nil
}

func (m *memStore) AvgCryptoUSDT(ctx context.Context, scope Scope) (decimal.Decimal, error) {
	total := decimal.Zero
	n := 0
	for _, c := range m.scoped(scope) {
		if d, ok := c.Crypto(); ok {
			total = total.Add(d.USDTValue)
			n++
		}
	}
	if n == 0 {
		return decimal.Zero, nil
	}
	return total.Div(decimal.NewFromInt(int64(n))), nil
}

func (m *memStore) SumMoneyAmounts(ctx context.Context, scope Scope) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, c := range m.scoped(scope) {
		if d, ok := c.MoneyRecovery(); ok {
			total = total.Add(d.Amount)
		}
	}
	return total, nil
}

func (m *memStore) AvgMoneyAmount(ctx context.Context, scope Scope) (decimal.Decimal, error) {
	total := decimal.Zero
	n := 0
	for _, c := range m.scoped(scope) {
		if d, ok := c.MoneyRecovery(); ok {
			total = total.Add(d.Amount)
			n++
		}
	}
	if n == 0 {
		return decimal.Zero, nil
	}
	return total.Div(decimal.NewFromInt(int64(n))), nil
}

func (m *memStore) CryptoTypeCounts(ctx context.Context, scope Scope) (map[string]int, error) {
	out := map[string]int{}
	for _, c := range m.scoped(scope) {
		if d, ok := c.Crypto(); ok {
			out[d.CryptoType]++
		}
	}
	return out, nil
}

func (m *memStore) PlatformCounts(ctx context.Context, scope Scope) (map[string]int, error) {
	out := map[string]int{}
	for _, c := range m.scoped(scope) {
		if d, ok := c.SocialMedia(); ok {
			out[d.Platform]++
		}
	}
	return out, nil
}

func (m *memStore) RecentCases(ctx context.Context, scope Scope, limit int) ([]*models.Case, error) {
	out := m.scoped(scope)
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) RecentDocuments(ctx context.Context, scope Scope, limit int) ([]*models.SupportingDocument, error) {
	var out []*models.SupportingDocument
	for _, d := range m.docs {
		c, ok := m.cases[d.CaseID]
		if !ok || !scope.Contains(c) {
			continue
		}
		copied := *d
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) CaseTitles(ctx context.Context, ids []string) (map[string]string, error) {
	out := map[string]string{}
	for _, id := range ids {
		if c, ok := m.cases[id]; ok {
			out[id] = c.Title
		}
	}
	return out, nil
}

func (m *memStore) CountCreatedSince(ctx context.Context, scope Scope, since time.Time) (int, error) {
	n := 0
	for _, c := range m.scoped(scope) {
		if !c.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (m *memStore) CountResolvedSince(ctx context.Context, scope Scope, since time.Time) (int, error) {
	n := 0
	for _, c := range m.scoped(scope) {
		if c.Status == models.StatusResolved && c.ResolutionDate != nil && !c.ResolutionDate.Before(since) {
			n++
		}
	}
	return n, nil
}

func (m *memStore) AvgResolutionDays(ctx context.Context, scope Scope) (float64, error) {
	total := 0.0
	n := 0
	for _, c := range m.scoped(scope) {
		if c.Status == models.StatusResolved && c.ResolutionDate != nil {
			total += c.ResolutionDate.Sub(c.CreatedAt).Hours() / 24
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return total / float64(n), nil
}
