package service

import (
	"strings"

	"github.com/Ghhost99/Recovery-Guard-BACKEND/internal/models"
)

// ValidateCase checks the base fields and the kind payload together. It is
// run before every durable write, so a zero or negative amount can never
// reach the store.
func ValidateCase(c *models.Case) *ValidationError {
	ve := newValidationError()

	if strings.TrimSpace(c.Title) == "" {
		ve.add("title", "title is required")
	}
	if c.CustomerID == "" {
		ve.add("customer", "customer is required")
	}
	if !models.ValidStatus(c.Status) {
		ve.add("status", "unknown status")
	}
	if !models.ValidPriority(c.Priority) {
		ve.add("priority", "unknown priority")
	}
	if c.IsClosed && c.Status != models.StatusClosed {
		ve.add("is_closed", "closing a case requires status=closed")
	}
	if models.KindOf(c.Details) != c.Kind {
		ve.add("type", "case type does not match its details")
	}

	switch d := c.Details.(type) {
	case nil:
		// general case, base fields only
	case *models.CryptoLossReport:
		validateCrypto(d, ve)
	case *models.SocialMediaRecovery:
		validateSocialMedia(d, ve)
	case *models.MoneyRecoveryReport:
		validateMoneyRecovery(d, ve)
	}
	return ve.orNil()
}

func validateCrypto(d *models.CryptoLossReport, ve *ValidationError) {
	if !d.AmountLost.IsPositive() {
		ve.add("amount_lost", "must be greater than zero")
	}
	if !d.USDTValue.IsPositive() {
		ve.add("usdt_value", "must be greater than zero")
	}
	requireString(ve, "txid", d.TxID)
	requireString(ve, "sender_wallet", d.SenderWallet)
	requireString(ve, "receiver_wallet", d.ReceiverWallet)
	requireString(ve, "loss_description", d.LossDescription)
	if !oneOf(d.CryptoType, models.CryptoTypes) {
		ve.add("crypto_type", "unknown crypto type")
	}
	if d.TransactionDatetime.IsZero() {
		ve.add("transaction_datetime", "transaction datetime is required")
	}
}

func validateSocialMedia(d *models.SocialMediaRecovery, ve *ValidationError) {
	if !oneOf(d.Platform, models.Platforms) {
		ve.add("platform", "unknown platform")
	}
	requireString(ve, "full_name", d.FullName)
	requireString(ve, "username", d.Username)
	requireEmail(ve, "email", d.Email)
}

func validateMoneyRecovery(d *models.MoneyRecoveryReport, ve *ValidationError) {
	requireString(ve, "first_name", d.FirstName)
	requireString(ve, "last_name", d.LastName)
	requireString(ve, "phone", d.Phone)
	requireString(ve, "identification", d.Identification)
	requireString(ve, "bank", d.Bank)
	requireString(ve, "iban", d.IBAN)
	requireEmail(ve, "email", d.Email)
	if !d.Amount.IsPositive() {
		ve.add("amount", "must be greater than zero")
	}
	if d.Datetime.IsZero() {
		ve.add("datetime", "datetime of the loss is required")
	}
}

func requireString(ve *ValidationError, field, value string) {
	if strings.TrimSpace(value) == "" {
		ve.add(field, field+" is required")
	}
}

func requireEmail(ve *ValidationError, field, value string) {
	v := strings.TrimSpace(value)
	if v == "" {
		ve.add(field, field+" is required")
		return
	}
	at := strings.Index(v, "@")
	if at < 1 || at == len(v)-1 || !strings.Contains(v[at:], ".") {
		ve.add(field, "invalid email address")
	}
}

func oneOf(value string, allowed []string) bool {
	for _, a := range allowed {
		if a == value {
			return true
		}
	}
	return false
}
