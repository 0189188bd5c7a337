package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Role identifies which family of permissions an authenticated actor has.
// Exactly one role is active per actor; the session provider guarantees this.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAgent    Role = "agent"
	RoleAdmin    Role = "admin"
)

// Actor is the authenticated principal supplied by the session provider.
type Actor struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

func (a Actor) IsCustomer() bool { return a.Role == RoleCustomer }
func (a Actor) IsAgent() bool    { return a.Role == RoleAgent }
func (a Actor) IsAdmin() bool    { return a.Role == RoleAdmin }

type CaseKind string

const (
	KindGeneral       CaseKind = "general"
	KindCrypto        CaseKind = "crypto"
	KindMoneyRecovery CaseKind = "money_recovery"
	KindSocialMedia   CaseKind = "social_media"
)

func ValidKind(k CaseKind) bool {
	switch k {
	case KindGeneral, KindCrypto, KindMoneyRecovery, KindSocialMedia:
		return true
	}
	return false
}

type CaseStatus string

const (
	StatusOpen       CaseStatus = "open"
	StatusInProgress CaseStatus = "in_progress"
	StatusPending    CaseStatus = "pending"
	StatusResolved   CaseStatus = "resolved"
	StatusClosed     CaseStatus = "closed"
)

func ValidStatus(s CaseStatus) bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusPending, StatusResolved, StatusClosed:
		return true
	}
	return false
}

type CasePriority string

const (
	PriorityLow    CasePriority = "low"
	PriorityNormal CasePriority = "normal"
	PriorityHigh   CasePriority = "high"
	PriorityUrgent CasePriority = "urgent"
)

func ValidPriority(p CasePriority) bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// CaseDetails is the kind-specific payload of a case. The interface is
// sealed: only the three report types below implement it, so a case can
// never carry two payloads or a payload that disagrees with its kind.
// A general case carries a nil payload.
type CaseDetails interface {
	detailsKind() CaseKind
}

// KindOf maps a payload to its case kind. A nil payload is a general case.
func KindOf(d CaseDetails) CaseKind {
	if d == nil {
		return KindGeneral
	}
	return d.detailsKind()
}

// CryptoTypes are the accepted values for CryptoLossReport.CryptoType.
var CryptoTypes = []string{
	"Bitcoin", "Ethereum", "USDT", "BNB", "Solana",
	"Litecoin", "Cardano", "Polkadot", "Other",
}

// Platforms are the accepted values for SocialMediaRecovery.Platform.
var Platforms = []string{
	"Facebook", "Instagram", "Twitter", "LinkedIn", "Snapchat", "TikTok",
	"Reddit", "YouTube", "Pinterest", "WhatsApp", "Telegram", "Discord",
	"Other",
}

type CryptoLossReport struct {
	AmountLost          decimal.Decimal `json:"amount_lost"`
	USDTValue           decimal.Decimal `json:"usdt_value"`
	TxID                string          `json:"txid"`
	SenderWallet        string          `json:"sender_wallet"`
	ReceiverWallet      string          `json:"receiver_wallet"`
	PlatformUsed        string          `json:"platform_used,omitempty"`
	BlockchainHash      string          `json:"blockchain_hash,omitempty"`
	PaymentMethod       string          `json:"payment_method,omitempty"`
	ExchangeInfo        string          `json:"exchange_info,omitempty"`
	WalletBackup        string          `json:"wallet_backup,omitempty"`
	CryptoType          string          `json:"crypto_type"`
	TransactionDatetime time.Time       `json:"transaction_datetime"`
	LossDescription     string          `json:"loss_description"`
}

func (*CryptoLossReport) detailsKind() CaseKind { return KindCrypto }

type SocialMediaRecovery struct {
	Platform            string     `json:"platform"`
	FullName            string     `json:"full_name"`
	Email               string     `json:"email"`
	Phone               string     `json:"phone,omitempty"`
	Username            string     `json:"username"`
	ProfileURL          string     `json:"profile_url,omitempty"`
	ProfilePic          string     `json:"profile_pic,omitempty"`
	AccountCreationDate *time.Time `json:"account_creation_date,omitempty"`
	LastAccessDate      *time.Time `json:"last_access_date,omitempty"`
}

func (*SocialMediaRecovery) detailsKind() CaseKind { return KindSocialMedia }

type MoneyRecoveryReport struct {
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	Phone          string          `json:"phone"`
	Email          string          `json:"email"`
	Identification string          `json:"identification"`
	Amount         decimal.Decimal `json:"amount"`
	RefNumber      string          `json:"ref_number,omitempty"`
	Bank           string          `json:"bank"`
	IBAN           string          `json:"iban"`
	Datetime       time.Time       `json:"datetime"`
}

func (*MoneyRecoveryReport) detailsKind() CaseKind { return KindMoneyRecovery }

// Case is the base recovery-request entity. Kind and Details always agree:
// both are set by NewCase from the payload and never reassigned.
type Case struct {
	ID               string       `json:"id"`
	Title            string       `json:"title"`
	Description      string       `json:"description"`
	Kind             CaseKind     `json:"type"`
	Status           CaseStatus   `json:"status"`
	Priority         CasePriority `json:"priority"`
	CustomerID       string       `json:"customer_id"`
	AgentID          *string      `json:"agent_id,omitempty"`
	Resolution       string       `json:"resolution,omitempty"`
	ResolutionStatus string       `json:"resolution_status"`
	ResolutionDate   *time.Time   `json:"resolution_date,omitempty"`
	IsActive         bool         `json:"is_active"`
	IsClosed         bool         `json:"is_closed"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`

	Details CaseDetails `json:"details,omitempty"`
}

// NewCase builds a case in its initial lifecycle state. The kind is derived
// from the payload, never from caller input.
func NewCase(customerID, title, description string, details CaseDetails) *Case {
	now := time.Now().UTC()
	return &Case{
		ID:               uuid.NewString(),
		Title:            title,
		Description:      description,
		Kind:             KindOf(details),
		Status:           StatusOpen,
		Priority:         PriorityNormal,
		CustomerID:       customerID,
		ResolutionStatus: "unresolved",
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
		Details:          details,
	}
}

// Crypto returns the crypto payload when the case carries one.
func (c *Case) Crypto() (*CryptoLossReport, bool) {
	d, ok := c.Details.(*CryptoLossReport)
	return d, ok
}

func (c *Case) SocialMedia() (*SocialMediaRecovery, bool) {
	d, ok := c.Details.(*SocialMediaRecovery)
	return d, ok
}

func (c *Case) MoneyRecovery() (*MoneyRecoveryReport, bool) {
	d, ok := c.Details.(*MoneyRecoveryReport)
	return d, ok
}

// Clone returns a deep copy, payload included.
func (c *Case) Clone() *Case {
	out := *c
	switch d := c.Details.(type) {
	case *CryptoLossReport:
		v := *d
		out.Details = &v
	case *SocialMediaRecovery:
		v := *d
		out.Details = &v
	case *MoneyRecoveryReport:
		v := *d
		out.Details = &v
	}
	if c.AgentID != nil {
		v := *c.AgentID
		out.AgentID = &v
	}
	if c.ResolutionDate != nil {
		v := *c.ResolutionDate
		out.ResolutionDate = &v
	}
	return &out
}

// RequiredFields returns the field names that must validate for a kind,
// used both at creation and at update time.
func RequiredFields(kind CaseKind) []string {
	switch kind {
	case KindCrypto:
		return []string{"amount_lost", "usdt_value", "txid", "sender_wallet", "receiver_wallet", "crypto_type", "transaction_datetime", "loss_description"}
	case KindSocialMedia:
		return []string{"platform", "full_name", "email", "username"}
	case KindMoneyRecovery:
		return []string{"first_name", "last_name", "phone", "email", "identification", "amount", "bank", "iban", "datetime"}
	default:
		return []string{"title"}
	}
}

// StatusLabel is the human-readable form of a status value.
func StatusLabel(s CaseStatus) string {
	switch s {
	case StatusOpen:
		return "Open"
	case StatusInProgress:
		return "In Progress"
	case StatusPending:
		return "Pending"
	case StatusResolved:
		return "Resolved"
	case StatusClosed:
		return "Closed"
	}
	return string(s)
}

// KindLabel is the human-readable form of a case kind.
func KindLabel(k CaseKind) string {
	switch k {
	case KindGeneral:
		return "General"
	case KindCrypto:
		return "Crypto"
	case KindMoneyRecovery:
		return "Money Recovery"
	case KindSocialMedia:
		return "Social Media"
	}
	return string(k)
}

// FileRef is the durable reference the file store hands back for an upload.
type FileRef struct {
	URL  string `json:"url"`
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// SupportingDocument belongs to exactly one case and is removed with it.
type SupportingDocument struct {
	ID          string    `json:"id"`
	CaseID      string    `json:"case_id"`
	File        FileRef   `json:"file"`
	Description string    `json:"description,omitempty"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// NewSupportingDocument pairs an uploaded file reference with its case.
func NewSupportingDocument(caseID string, file FileRef, description string) *SupportingDocument {
	return &SupportingDocument{
		ID:          uuid.NewString(),
		CaseID:      caseID,
		File:        file,
		Description: description,
		UploadedAt:  time.Now().UTC(),
	}
}
