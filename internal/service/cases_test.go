package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Ghhost99/Recovery-Guard-BACKEND/internal/models"
)

func newCaseService(store *memStore) *CaseService {
	return &CaseService{Store: store, DeletePolicy: DeleteOwnerOnly, Logger: zerolog.Nop()}
}

var (
	customer = models.Actor{ID: "cust-1", Role: models.RoleCustomer}
	agent    = models.Actor{ID: "agent-1", Role: models.RoleAgent}
	agent2   = models.Actor{ID: "agent-2", Role: models.RoleAgent}
	admin    = models.Actor{ID: "adm-1", Role: models.RoleAdmin}
)

func TestCreatePersistsCaseWithPayload(t *testing.T) {
	store := newMemStore()
	svc := newCaseService(store)

	created, err := svc.Create(context.Background(), customer, CreateInput{
		Title:    "Lost BTC",
		Priority: models.PriorityHigh,
		Details:  validCrypto(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if created.Kind != models.KindCrypto || created.Priority != models.PriorityHigh {
		t.Fatalf("unexpected case %+v", created)
	}

	stored, err := store.GetCase(context.Background(), created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := stored.Crypto(); !ok {
		t.Fatal("payload not persisted")
	}
}

func TestCreateInvalidWritesNothing(t *testing.T) {
	store := newMemStore()
	svc := newCaseService(store)

	d := validCrypto()
	d.USDTValue = decimal.Zero
	_, err := svc.Create(context.Background(), customer, CreateInput{Title: "Lost BTC", Details: d})

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(store.cases) != 0 {
		t.Fatal("invalid case must not be written")
	}
}

func TestGetEnforcesAccess(t *testing.T) {
	store := newMemStore()
	svc := newCaseService(store)

	created, err := svc.Create(context.Background(), customer, CreateInput{Title: "Mine", Details: nil})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Get(context.Background(), models.Actor{ID: "other", Role: models.RoleCustomer}, created.ID); err != ErrPermissionDenied {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if _, err := svc.Get(context.Background(), admin, created.ID); err != nil {
		t.Fatalf("admin read failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), customer, "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListScopesByRole(t *testing.T) {
	store := newMemStore()
	svc := newCaseService(store)
	ctx := context.Background()

	mine, _ := svc.Create(ctx, customer, CreateInput{Title: "Mine"})
	other, _ := svc.Create(ctx, models.Actor{ID: "cust-2", Role: models.RoleCustomer}, CreateInput{Title: "Theirs"})
	if _, err := svc.Assign(ctx, admin, other.ID, "agent-9"); err != nil {
		t.Fatal(err)
	}

	got, err := svc.List(ctx, customer, CaseFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != mine.ID {
		t.Fatalf("customer list = %d cases", len(got))
	}

	// agent sees assigned-to-them plus unassigned; other.ID is assigned to agent-9
	got, err = svc.List(ctx, agent, CaseFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != mine.ID {
		t.Fatalf("agent list = %d cases", len(got))
	}

	got, err = svc.List(ctx, admin, CaseFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("admin list = %d cases", len(got))
	}

	if _, err := svc.List(ctx, models.Actor{ID: "x", Role: "ghost"}, CaseFilter{}); err != ErrUnrecognizedRole {
		t.Fatalf("expected ErrUnrecognizedRole, got %v", err)
	}
}

func TestListAgentSeesAssignedPlusUnassigned(t *testing.T) {
	store := newMemStore()
	svc := newCaseService(store)
	ctx := context.Background()

	// customer C owns three cases, one of them assigned to agent A
	c1, _ := svc.Create(ctx, customer, CreateInput{Title: "C 1"})
	if _, err := svc.Assign(ctx, admin, c1.ID, agent.ID); err != nil {
		t.Fatal(err)
	}
	c2, _ := svc.Create(ctx, customer, CreateInput{Title: "C 2"})
	if _, err := svc.Assign(ctx, admin, c2.ID, agent2.ID); err != nil {
		t.Fatal(err)
	}
	svc.Create(ctx, customer, CreateInput{Title: "C 3"})

	// two unassigned cases elsewhere
	other := models.Actor{ID: "cust-9", Role: models.RoleCustomer}
	svc.Create(ctx, other, CreateInput{Title: "Other 1"})
	svc.Create(ctx, other, CreateInput{Title: "Other 2"})

	mine, err := svc.List(ctx, customer, CaseFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 3 {
		t.Fatalf("customer sees %d cases, want 3", len(mine))
	}

	visible, err := svc.List(ctx, agent, CaseFilter{})
	if err != nil {
		t.Fatal(err)
	}
	// 1 assigned + C 3 + the 2 unassigned elsewhere; never c2
	if len(visible) != 4 {
		t.Fatalf("agent sees %d cases, want 4", len(visible))
	}
	for _, c := range visible {
		if c.ID == c2.ID {
			t.Fatal("agent must not see a case assigned to someone else")
		}
	}
}

func TestUpdateAppliesPatchAtomically(t *testing.T) {
	store := newMemStore()
	svc := newCaseService(store)
	ctx := context.Background()

	created, _ := svc.Create(ctx, customer, CreateInput{Title: "Wire fraud", Details: validMoney()})

	updated, err := svc.Update(ctx, customer, created.ID, map[string]any{
		"title":  "Wire fraud (updated)",
		"amount": "3000",
	})
	if err != nil {
		t.Fatal(err)
	}
	d, _ := updated.MoneyRecovery()
	if updated.Title != "Wire fraud (updated)" || d.Amount.String() != "3000" {
		t.Fatalf("patch not applied: %+v", updated)
	}

	// a patch that fails validation must leave the stored case untouched
	_, err = svc.Update(ctx, customer, created.ID, map[string]any{"amount": "-5"})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	stored, _ := store.GetCase(ctx, created.ID)
	sd, _ := stored.MoneyRecovery()
	if sd.Amount.String() != "3000" {
		t.Fatalf("failed patch leaked into store: %s", sd.Amount)
	}
}

func TestAssignRules(t *testing.T) {
	store := newMemStore()
	svc := newCaseService(store)
	ctx := context.Background()

	created, _ := svc.Create(ctx, customer, CreateInput{Title: "Unassigned"})

	// agent claims an unassigned case for themselves
	claimed, err := svc.Assign(ctx, agent, created.ID, agent.ID)
	if err != nil {
		t.Fatal(err)
	}
	if claimed.AgentID == nil || *claimed.AgentID != agent.ID || claimed.Status != models.StatusInProgress {
		t.Fatalf("claim failed: %+v", claimed)
	}

	// reassigning someone else's case is admin-only
	if _, err := svc.Assign(ctx, agent2, created.ID, agent2.ID); err != ErrPermissionDenied {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	reassigned, err := svc.Assign(ctx, admin, created.ID, agent2.ID)
	if err != nil {
		t.Fatal(err)
	}
	if *reassigned.AgentID != agent2.ID {
		t.Fatalf("admin reassign failed: %+v", reassigned)
	}

	// assigning the current agent again is a no-op success
	same, err := svc.Assign(ctx, admin, created.ID, agent2.ID)
	if err != nil {
		t.Fatal(err)
	}
	if *same.AgentID != agent2.ID {
		t.Fatal("no-op assign changed the case")
	}
}

func TestAssignClosedCaseFails(t *testing.T) {
	store := newMemStore()
	svc := newCaseService(store)
	ctx := context.Background()

	created, _ := svc.Create(ctx, customer, CreateInput{Title: "Done"})
	if _, err := svc.Close(ctx, customer, created.ID); err != nil {
		t.Fatal(err)
	}

	_, err := svc.Assign(ctx, admin, created.ID, "agent-9")
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAssignRejectsCaseClosedByStatusPatch(t *testing.T) {
	store := newMemStore()
	svc := newCaseService(store)
	ctx := context.Background()

	created, _ := svc.Create(ctx, customer, CreateInput{Title: "Done"})
	// A patch may set status=closed on its own; is_closed stays false.
	if _, err := svc.Update(ctx, customer, created.ID, map[string]any{"status": "closed"}); err != nil {
		t.Fatal(err)
	}

	_, err := svc.Assign(ctx, admin, created.ID, agent.ID)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	after, _ := store.GetCase(ctx, created.ID)
	if after.Status != models.StatusClosed || after.AgentID != nil {
		t.Fatalf("closed case was mutated by assign: %+v", after)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	store := newMemStore()
	svc := newCaseService(store)
	ctx := context.Background()

	created, _ := svc.Create(ctx, customer, CreateInput{Title: "Done"})
	first, err := svc.Close(ctx, customer, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !first.IsClosed || first.Status != models.StatusClosed {
		t.Fatalf("close incomplete: %+v", first)
	}

	second, err := svc.Close(ctx, customer, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !second.IsClosed || second.Status != models.StatusClosed {
		t.Fatalf("second close changed state: %+v", second)
	}
	if !second.UpdatedAt.Equal(first.UpdatedAt) {
		t.Fatal("second close must not touch the record")
	}
}

func TestDeleteCascadesDocuments(t *testing.T) {
	store := newMemStore()
	svc := newCaseService(store)
	ctx := context.Background()

	created, _ := svc.Create(ctx, customer, CreateInput{Title: "With docs"})
	if _, err := svc.AttachDocuments(ctx, customer, created.ID, []models.FileRef{{URL: "/media/a", Name: "a.pdf"}}, nil); err != nil {
		t.Fatal(err)
	}

	if err := svc.Delete(ctx, customer, created.ID); err != nil {
		t.Fatal(err)
	}
	if len(store.cases) != 0 || len(store.docs) != 0 {
		t.Fatalf("cascade failed: %d cases, %d docs", len(store.cases), len(store.docs))
	}
}

func TestDeletePolicyGovernsAssignedAgent(t *testing.T) {
	store := newMemStore()
	svc := newCaseService(store)
	ctx := context.Background()

	created, _ := svc.Create(ctx, customer, CreateInput{Title: "Assigned"})
	if _, err := svc.Assign(ctx, agent, created.ID, agent.ID); err != nil {
		t.Fatal(err)
	}

	if err := svc.Delete(ctx, agent, created.ID); err != ErrPermissionDenied {
		t.Fatalf("owner_only must block agent delete, got %v", err)
	}

	svc.DeletePolicy = DeleteAssignedAgent
	if err := svc.Delete(ctx, agent, created.ID); err != nil {
		t.Fatalf("assigned_agent policy must allow delete, got %v", err)
	}
}

func TestAttachDocumentsDefaultsAndSkips(t *testing.T) {
	store := newMemStore()
	svc := newCaseService(store)
	ctx := context.Background()

	created, _ := svc.Create(ctx, customer, CreateInput{Title: "With docs"})

	docs, err := svc.AttachDocuments(ctx, customer, created.ID,
		[]models.FileRef{
			{URL: "/media/a", Name: "a.pdf"},
			{}, // empty entries are skipped
			{URL: "/media/c", Name: "c.png"},
		},
		[]string{"ID scan"})
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 {
		t.Fatalf("docs = %d, want 2", len(docs))
	}
	if docs[0].Description != "ID scan" {
		t.Fatalf("description = %q", docs[0].Description)
	}
	if docs[1].Description != "Supporting document 3" {
		t.Fatalf("default description = %q", docs[1].Description)
	}

	none, err := svc.AttachDocuments(ctx, customer, created.ID, []models.FileRef{{}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if none != nil {
		t.Fatal("all-empty upload must attach nothing")
	}
}

func TestDeleteDocument(t *testing.T) {
	store := newMemStore()
	svc := newCaseService(store)
	ctx := context.Background()

	created, _ := svc.Create(ctx, customer, CreateInput{Title: "With docs"})
	docs, _ := svc.AttachDocuments(ctx, customer, created.ID, []models.FileRef{{URL: "/media/a", Name: "a.pdf"}}, nil)

	if err := svc.DeleteDocument(ctx, customer, created.ID, "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := svc.DeleteDocument(ctx, customer, created.ID, docs[0].ID); err != nil {
		t.Fatal(err)
	}
	remaining, _ := svc.ListDocuments(ctx, customer, created.ID)
	if len(remaining) != 0 {
		t.Fatalf("document not removed, %d left", len(remaining))
	}
}
