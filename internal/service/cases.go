package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Ghhost99/Recovery-Guard-BACKEND/internal/models"
)

// CaseService is the only code path that mutates cases and their payloads.
type CaseService struct {
	Store        Store
	DeletePolicy AgentDeletePolicy
	Logger       zerolog.Logger
}

// CreateInput carries the caller-supplied base fields for a new case. The
// kind comes from Details alone; there is no way to request a mismatched
// kind.
type CreateInput struct {
	Title       string
	Description string
	Priority    models.CasePriority
	Details     models.CaseDetails
}

// Create validates and persists a new case owned by the actor, base record
// and payload as one atomic unit. On validation failure nothing is written.
func (s *CaseService) Create(ctx context.Context, actor models.Actor, in CreateInput) (*models.Case, error) {
	c := models.NewCase(actor.ID, in.Title, in.Description, in.Details)
	if in.Priority != "" {
		c.Priority = in.Priority
	}
	if ve := ValidateCase(c); ve != nil {
		return nil, ve
	}
	if err := s.Store.CreateCase(ctx, c); err != nil {
		return nil, err
	}
	s.Logger.Info().Str("case_id", c.ID).Str("type", string(c.Kind)).Str("customer", c.CustomerID).Msg("case created")
	return c, nil
}

// Get loads one case after the access check.
func (s *CaseService) Get(ctx context.Context, actor models.Actor, id string) (*models.Case, error) {
	c, err := s.Store.GetCase(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanAccess(actor, c, OpRead, s.DeletePolicy) {
		return nil, ErrPermissionDenied
	}
	return c, nil
}

// List returns the cases inside the actor's role scope, narrowed by the
// optional status/kind/priority filters.
func (s *CaseService) List(ctx context.Context, actor models.Actor, filter CaseFilter) ([]*models.Case, error) {
	scope, err := ScopeFor(actor)
	if err != nil {
		return nil, err
	}
	return s.Store.ListCases(ctx, scope, filter)
}

// Update applies an allow-listed patch onto the case and its payload and
// persists both together. A failure in either half aborts the whole update.
func (s *CaseService) Update(ctx context.Context, actor models.Actor, id string, patch map[string]any) (*models.Case, error) {
	current, err := s.Store.GetCase(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanAccess(actor, current, OpUpdate, s.DeletePolicy) {
		return nil, ErrPermissionDenied
	}

	updated := current.Clone()
	if ve := ApplyPatch(updated, patch, time.Now().UTC()); ve != nil {
		return nil, ve
	}
	if ve := ValidateCase(updated); ve != nil {
		return nil, ve
	}
	if err := s.Store.UpdateCase(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Assign puts the case in an agent's hands and moves it to in_progress.
// Agents claim unassigned cases for themselves; reassignment of an already
// assigned case is an administrator action. Assigning the current agent
// again is a no-op success.
func (s *CaseService) Assign(ctx context.Context, actor models.Actor, id, agentID string) (*models.Case, error) {
	c, err := s.Store.GetCase(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.IsClosed || c.Status == models.StatusClosed {
		return nil, &ValidationError{Fields: map[string]string{"status": "a closed case cannot be assigned"}}
	}
	if c.AgentID != nil && *c.AgentID == agentID {
		return c, nil
	}

	switch {
	case actor.IsAdmin():
	case actor.IsAgent() && agentID == actor.ID && c.AgentID == nil:
	default:
		return nil, ErrPermissionDenied
	}

	updated := c.Clone()
	updated.AgentID = &agentID
	updated.Status = models.StatusInProgress
	updated.UpdatedAt = time.Now().UTC()
	if err := s.Store.UpdateCase(ctx, updated); err != nil {
		return nil, err
	}
	s.Logger.Info().Str("case_id", id).Str("agent", agentID).Msg("case assigned")
	return updated, nil
}

// Close marks the case closed. Closing an already-closed case reports
// success without touching the record.
func (s *CaseService) Close(ctx context.Context, actor models.Actor, id string) (*models.Case, error) {
	c, err := s.Store.GetCase(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanAccess(actor, c, OpUpdate, s.DeletePolicy) {
		return nil, ErrPermissionDenied
	}
	if c.IsClosed && c.Status == models.StatusClosed {
		return c, nil
	}

	updated := c.Clone()
	updated.IsClosed = true
	updated.Status = models.StatusClosed
	updated.UpdatedAt = time.Now().UTC()
	if err := s.Store.UpdateCase(ctx, updated); err != nil {
		return nil, err
	}
	s.Logger.Info().Str("case_id", id).Msg("case closed")
	return updated, nil
}

// Delete removes the case, its payload, and its supporting documents.
func (s *CaseService) Delete(ctx context.Context, actor models.Actor, id string) error {
	c, err := s.Store.GetCase(ctx, id)
	if err != nil {
		return err
	}
	if !CanAccess(actor, c, OpDelete, s.DeletePolicy) {
		return ErrPermissionDenied
	}
	if err := s.Store.DeleteCase(ctx, id); err != nil {
		return err
	}
	s.Logger.Info().Str("case_id", id).Msg("case deleted")
	return nil
}

// AttachDocuments records one supporting document per uploaded file,
// pairing files with descriptions positionally. Empty file entries are
// skipped; a missing description defaults to "Supporting document N".
// Attachment is additive only.
func (s *CaseService) AttachDocuments(ctx context.Context, actor models.Actor, id string, files []models.FileRef, descriptions []string) ([]*models.SupportingDocument, error) {
	c, err := s.Store.GetCase(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanAccess(actor, c, OpUpdate, s.DeletePolicy) {
		return nil, ErrPermissionDenied
	}

	var docs []*models.SupportingDocument
	for i, f := range files {
		if f.URL == "" && f.Name == "" {
			continue
		}
		desc := ""
		if i < len(descriptions) {
			desc = descriptions[i]
		}
		if desc == "" {
			desc = fmt.Sprintf("Supporting document %d", i+1)
		}
		docs = append(docs, models.NewSupportingDocument(id, f, desc))
	}
	if len(docs) == 0 {
		return nil, nil
	}
	if err := s.Store.InsertDocuments(ctx, docs); err != nil {
		return nil, err
	}
	s.Logger.Info().Str("case_id", id).Int("count", len(docs)).Msg("documents attached")
	return docs, nil
}

// ListDocuments returns the case's supporting documents after the read
// access check.
func (s *CaseService) ListDocuments(ctx context.Context, actor models.Actor, id string) ([]*models.SupportingDocument, error) {
	c, err := s.Store.GetCase(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanAccess(actor, c, OpRead, s.DeletePolicy) {
		return nil, ErrPermissionDenied
	}
	return s.Store.ListDocuments(ctx, id)
}

// DeleteDocument removes one supporting document from a case the actor may
// update.
func (s *CaseService) DeleteDocument(ctx context.Context, actor models.Actor, caseID, docID string) error {
	c, err := s.Store.GetCase(ctx, caseID)
	if err != nil {
		return err
	}
	if !CanAccess(actor, c, OpUpdate, s.DeletePolicy) {
		return ErrPermissionDenied
	}
	if _, err := s.Store.GetDocument(ctx, caseID, docID); err != nil {
		return err
	}
	return s.Store.DeleteDocument(ctx, caseID, docID)
}
