package service

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Ghhost99/Recovery-Guard-BACKEND/internal/models"
)

// Patchable base fields. Identity, kind, ownership, and timestamps are
// never writable through a patch; unknown keys are ignored, not errors.
var baseFieldSet = map[string]struct{}{
	"title":             {},
	"description":       {},
	"status":            {},
	"priority":          {},
	"resolution":        {},
	"resolution_status": {},
	"is_closed":         {},
}

// ApplyPatch applies the allow-listed subset of patch onto the case,
// base fields and kind-specific fields together. The case is mutated in
// place; callers work on a clone and persist only on nil error.
func ApplyPatch(c *models.Case, patch map[string]any, now time.Time) *ValidationError {
	ve := newValidationError()

	applyBase(c, patch, now, ve)

	switch d := c.Details.(type) {
	case nil:
	case *models.CryptoLossReport:
		patchCrypto(d, patch, ve)
	case *models.SocialMediaRecovery:
		patchSocialMedia(d, patch, ve)
	case *models.MoneyRecoveryReport:
		patchMoneyRecovery(d, patch, ve)
	}

	if err := ve.orNil(); err != nil {
		return err
	}
	c.UpdatedAt = now
	return nil
}

func applyBase(c *models.Case, patch map[string]any, now time.Time, ve *ValidationError) {
	prevStatus := c.Status

	if v, ok := patch["title"]; ok {
		setString(&c.Title, "title", v, ve)
	}
	if v, ok := patch["description"]; ok {
		setString(&c.Description, "description", v, ve)
	}
	if v, ok := patch["resolution"]; ok {
		setString(&c.Resolution, "resolution", v, ve)
	}
	if v, ok := patch["resolution_status"]; ok {
		setString(&c.ResolutionStatus, "resolution_status", v, ve)
	}

	if v, ok := patch["status"]; ok {
		s, good := asString(v)
		status := models.CaseStatus(s)
		switch {
		case !good || !models.ValidStatus(status):
			ve.add("status", "unknown status")
		case prevStatus == models.StatusClosed && status != models.StatusClosed:
			ve.add("status", "a closed case cannot be reopened")
		default:
			c.Status = status
		}
	}

	if v, ok := patch["priority"]; ok {
		s, good := asString(v)
		priority := models.CasePriority(s)
		if !good || !models.ValidPriority(priority) {
			ve.add("priority", "unknown priority")
		} else {
			c.Priority = priority
		}
	}

	if v, ok := patch["is_closed"]; ok {
		closed, good := v.(bool)
		switch {
		case !good:
			ve.add("is_closed", "must be a boolean")
		case closed && c.Status != models.StatusClosed:
			ve.add("is_closed", "closing a case requires status=closed in the same update")
		case !closed && c.IsClosed:
			ve.add("is_closed", "a closed case cannot be reopened")
		default:
			c.IsClosed = closed
		}
	}

	// First transition into resolved stamps the resolution date; it is
	// never overwritten afterwards. Closing a case directly does not
	// stamp it.
	if c.Status == models.StatusResolved && prevStatus != models.StatusResolved && c.ResolutionDate == nil {
		t := now
		c.ResolutionDate = &t
	}
}

func patchCrypto(d *models.CryptoLossReport, patch map[string]any, ve *ValidationError) {
	if v, ok := patch["amount_lost"]; ok {
		setDecimal(&d.AmountLost, "amount_lost", v, ve)
	}
	if v, ok := patch["usdt_value"]; ok {
		setDecimal(&d.USDTValue, "usdt_value", v, ve)
	}
	if v, ok := patch["txid"]; ok {
		setString(&d.TxID, "txid", v, ve)
	}
	if v, ok := patch["sender_wallet"]; ok {
		setString(&d.SenderWallet, "sender_wallet", v, ve)
	}
	if v, ok := patch["receiver_wallet"]; ok {
		setString(&d.ReceiverWallet, "receiver_wallet", v, ve)
	}
	if v, ok := patch["platform_used"]; ok {
		setString(&d.PlatformUsed, "platform_used", v, ve)
	}
	if v, ok := patch["blockchain_hash"]; ok {
		setString(&d.BlockchainHash, "blockchain_hash", v, ve)
	}
	if v, ok := patch["payment_method"]; ok {
		setString(&d.PaymentMethod, "payment_method", v, ve)
	}
	if v, ok := patch["exchange_info"]; ok {
		setString(&d.ExchangeInfo, "exchange_info", v, ve)
	}
	if v, ok := patch["wallet_backup"]; ok {
		setString(&d.WalletBackup, "wallet_backup", v, ve)
	}
	if v, ok := patch["crypto_type"]; ok {
		setString(&d.CryptoType, "crypto_type", v, ve)
	}
	if v, ok := patch["transaction_datetime"]; ok {
		setTime(&d.TransactionDatetime, "transaction_datetime", v, ve)
	}
	if v, ok := patch["loss_description"]; ok {
		setString(&d.LossDescription, "loss_description", v, ve)
	}
}

func patchSocialMedia(d *models.SocialMediaRecovery, patch map[string]any, ve *ValidationError) {
	if v, ok := patch["platform"]; ok {
		setString(&d.Platform, "platform", v, ve)
	}
	if v, ok := patch["full_name"]; ok {
		setString(&d.FullName, "full_name", v, ve)
	}
	if v, ok := patch["email"]; ok {
		setString(&d.Email, "email", v, ve)
	}
	if v, ok := patch["phone"]; ok {
		setString(&d.Phone, "phone", v, ve)
	}
	if v, ok := patch["username"]; ok {
		setString(&d.Username, "username", v, ve)
	}
	if v, ok := patch["profile_url"]; ok {
		setString(&d.ProfileURL, "profile_url", v, ve)
	}
	if v, ok := patch["profile_pic"]; ok {
		setString(&d.ProfilePic, "profile_pic", v, ve)
	}
	if v, ok := patch["account_creation_date"]; ok {
		setTimePtr(&d.AccountCreationDate, "account_creation_date", v, ve)
	}
	if v, ok := patch["last_access_date"]; ok {
		setTimePtr(&d.LastAccessDate, "last_access_date", v, ve)
	}
}

func patchMoneyRecovery(d *models.MoneyRecoveryReport, patch map[string]any, ve *ValidationError) {
	if v, ok := patch["first_name"]; ok {
		setString(&d.FirstName, "first_name", v, ve)
	}
	if v, ok := patch["last_name"]; ok {
		setString(&d.LastName, "last_name", v, ve)
	}
	if v, ok := patch["phone"]; ok {
		setString(&d.Phone, "phone", v, ve)
	}
	if v, ok := patch["email"]; ok {
		setString(&d.Email, "email", v, ve)
	}
	if v, ok := patch["identification"]; ok {
		setString(&d.Identification, "identification", v, ve)
	}
	if v, ok := patch["amount"]; ok {
		setDecimal(&d.Amount, "amount", v, ve)
	}
	if v, ok := patch["ref_number"]; ok {
		setString(&d.RefNumber, "ref_number", v, ve)
	}
	if v, ok := patch["bank"]; ok {
		setString(&d.Bank, "bank", v, ve)
	}
	if v, ok := patch["iban"]; ok {
		setString(&d.IBAN, "iban", v, ve)
	}
	if v, ok := patch["datetime"]; ok {
		setTime(&d.Datetime, "datetime", v, ve)
	}
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func setString(dst *string, field string, v any, ve *ValidationError) {
	s, ok := asString(v)
	if !ok {
		ve.add(field, "must be a string")
		return
	}
	*dst = s
}

func setDecimal(dst *decimal.Decimal, field string, v any, ve *ValidationError) {
	var (
		d   decimal.Decimal
		err error
	)
	switch t := v.(type) {
	case string:
		d, err = decimal.NewFromString(t)
	case float64:
		d = decimal.NewFromFloat(t)
	case json.Number:
		d, err = decimal.NewFromString(t.String())
	case int:
		d = decimal.NewFromInt(int64(t))
	default:
		ve.add(field, "must be a number")
		return
	}
	if err != nil {
		ve.add(field, "must be a number")
		return
	}
	*dst = d
}

func setTime(dst *time.Time, field string, v any, ve *ValidationError) {
	s, ok := asString(v)
	if !ok {
		ve.add(field, "must be an RFC 3339 timestamp")
		return
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		ve.add(field, "must be an RFC 3339 timestamp")
		return
	}
	*dst = t
}

func setTimePtr(dst **time.Time, field string, v any, ve *ValidationError) {
	if v == nil {
		*dst = nil
		return
	}
	var t time.Time
	setTime(&t, field, v, ve)
	if _, bad := ve.Fields[field]; bad {
		return
	}
	*dst = &t
}
