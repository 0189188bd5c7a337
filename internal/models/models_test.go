package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNewCaseDerivesKindFromPayload(t *testing.T) {
	tests := []struct {
		name    string
		details CaseDetails
		want    CaseKind
	}{
		{"general", nil, KindGeneral},
		{"crypto", &CryptoLossReport{}, KindCrypto},
		{"social media", &SocialMediaRecovery{}, KindSocialMedia},
		{"money recovery", &MoneyRecoveryReport{}, KindMoneyRecovery},
	}
	for _, tt := range tests {
		c := NewCase("cust-1", "Title", "", tt.details)
		if c.Kind != tt.want {
			t.Fatalf("%s: kind = %s, want %s", tt.name, c.Kind, tt.want)
		}
		if KindOf(c.Details) != c.Kind {
			t.Fatalf("%s: details disagree with kind", tt.name)
		}
	}
}

func TestNewCaseInitialState(t *testing.T) {
	c := NewCase("cust-1", "Lost BTC", "desc", &CryptoLossReport{})
	if c.ID == "" {
		t.Fatal("expected generated id")
	}
	if c.Status != StatusOpen {
		t.Fatalf("status = %s, want open", c.Status)
	}
	if c.Priority != PriorityNormal {
		t.Fatalf("priority = %s, want normal", c.Priority)
	}
	if !c.IsActive || c.IsClosed {
		t.Fatal("expected active, not closed")
	}
	if c.ResolutionStatus != "unresolved" {
		t.Fatalf("resolution_status = %s", c.ResolutionStatus)
	}
	if c.AgentID != nil {
		t.Fatal("new case must be unassigned")
	}
}

func TestCloneIsDeep(t *testing.T) {
	agent := "agent-1"
	c := NewCase("cust-1", "Lost BTC", "", &CryptoLossReport{
		AmountLost: decimal.NewFromInt(2),
		USDTValue:  decimal.NewFromInt(100),
	})
	c.AgentID = &agent

	clone := c.Clone()
	d, ok := clone.Crypto()
	if !ok {
		t.Fatal("clone lost its payload")
	}
	d.USDTValue = decimal.NewFromInt(999)
	*clone.AgentID = "agent-2"

	orig, _ := c.Crypto()
	if !orig.USDTValue.Equal(decimal.NewFromInt(100)) {
		t.Fatal("payload mutation leaked into original")
	}
	if *c.AgentID != "agent-1" {
		t.Fatal("agent mutation leaked into original")
	}
}

func TestPayloadAccessors(t *testing.T) {
	c := NewCase("cust-1", "Account stolen", "", &SocialMediaRecovery{Platform: "Instagram"})
	if _, ok := c.SocialMedia(); !ok {
		t.Fatal("expected social media payload")
	}
	if _, ok := c.Crypto(); ok {
		t.Fatal("crypto accessor must not match a social media case")
	}
	if _, ok := c.MoneyRecovery(); ok {
		t.Fatal("money accessor must not match a social media case")
	}
}

func TestRequiredFieldsPerKind(t *testing.T) {
	if got := RequiredFields(KindSocialMedia); len(got) != 4 {
		t.Fatalf("social media required fields = %v", got)
	}
	found := false
	for _, f := range RequiredFields(KindCrypto) {
		if f == "txid" {
			found = true
		}
	}
	if !found {
		t.Fatal("crypto required fields must include txid")
	}
}

func TestLabels(t *testing.T) {
	if StatusLabel(StatusInProgress) != "In Progress" {
		t.Fatalf("got %q", StatusLabel(StatusInProgress))
	}
	if KindLabel(KindMoneyRecovery) != "Money Recovery" {
		t.Fatalf("got %q", KindLabel(KindMoneyRecovery))
	}
}

func TestNewSupportingDocument(t *testing.T) {
	before := time.Now().UTC()
	doc := NewSupportingDocument("case-1", FileRef{URL: "/media/x", Name: "x.pdf", Size: 12}, "ID scan")
	if doc.ID == "" || doc.CaseID != "case-1" {
		t.Fatalf("unexpected document %+v", doc)
	}
	if doc.UploadedAt.Before(before) {
		t.Fatal("uploaded_at not stamped")
	}
}
