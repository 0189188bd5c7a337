package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Ghhost99/Recovery-Guard-BACKEND/internal/http/middleware"
	"github.com/Ghhost99/Recovery-Guard-BACKEND/internal/models"
	"github.com/Ghhost99/Recovery-Guard-BACKEND/internal/service"
)

type caseBaseRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low normal high urgent"`
}

type createGeneralRequest struct {
	caseBaseRequest
}

type createCryptoRequest struct {
	caseBaseRequest
	AmountLost          decimal.Decimal `json:"amount_lost" validate:"required"`
	USDTValue           decimal.Decimal `json:"usdt_value" validate:"required"`
	TxID                string          `json:"txid" validate:"required"`
	SenderWallet        string          `json:"sender_wallet" validate:"required"`
	ReceiverWallet      string          `json:"receiver_wallet" validate:"required"`
	PlatformUsed        string          `json:"platform_used"`
	BlockchainHash      string          `json:"blockchain_hash"`
	PaymentMethod       string          `json:"payment_method"`
	ExchangeInfo        string          `json:"exchange_info"`
	WalletBackup        string          `json:"wallet_backup"`
	CryptoType          string          `json:"crypto_type" validate:"required"`
	TransactionDatetime time.Time       `json:"transaction_datetime" validate:"required"`
	LossDescription     string          `json:"loss_description" validate:"required"`
}

type createSocialMediaRequest struct {
	caseBaseRequest
	Platform            string     `json:"platform" validate:"required"`
	FullName            string     `json:"full_name" validate:"required"`
	Email               string     `json:"email" validate:"required,email"`
	Phone               string     `json:"phone"`
	Username            string     `json:"username" validate:"required"`
	ProfileURL          string     `json:"profile_url"`
	ProfilePic          string     `json:"profile_pic"`
	AccountCreationDate *time.Time `json:"account_creation_date"`
	LastAccessDate      *time.Time `json:"last_access_date"`
}

type createMoneyRecoveryRequest struct {
	caseBaseRequest
	FirstName      string          `json:"first_name" validate:"required"`
	LastName       string          `json:"last_name" validate:"required"`
	Phone          string          `json:"phone" validate:"required"`
	Email          string          `json:"email" validate:"required,email"`
	Identification string          `json:"identification" validate:"required"`
	Amount         decimal.Decimal `json:"amount" validate:"required"`
	RefNumber      string          `json:"ref_number"`
	Bank           string          `json:"bank" validate:"required"`
	IBAN           string          `json:"iban" validate:"required"`
	Datetime       time.Time       `json:"datetime" validate:"required"`
}

func (h *Handler) create(c *gin.Context, base caseBaseRequest, details models.CaseDetails) {
	actor := middleware.ActorFrom(c)
	created, err := h.Cases.Create(c.Request.Context(), actor, service.CreateInput{
		Title:       base.Title,
		Description: base.Description,
		Priority:    models.CasePriority(base.Priority),
		Details:     details,
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// @Summary Create a general case
// @Tags cases
// @Accept json
// @Produce json
// @Success 201 {object} models.Case
// @Failure 400 {object} map[string]any
// @Router /api/cases/general [post]
func (h *Handler) CreateGeneralCase(c *gin.Context) {
	var req createGeneralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}
	h.create(c, req.caseBaseRequest, nil)
}

// @Summary Create a crypto-loss case
// @Tags cases
// @Accept json
// @Produce json
// @Success 201 {object} models.Case
// @Failure 400 {object} map[string]any
// @Router /api/cases/crypto [post]
func (h *Handler) CreateCryptoCase(c *gin.Context) {
	var req createCryptoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}
	h.create(c, req.caseBaseRequest, &models.CryptoLossReport{
		AmountLost:          req.AmountLost,
		USDTValue:           req.USDTValue,
		TxID:                req.TxID,
		SenderWallet:        req.SenderWallet,
		ReceiverWallet:      req.ReceiverWallet,
		PlatformUsed:        req.PlatformUsed,
		BlockchainHash:      req.BlockchainHash,
		PaymentMethod:       req.PaymentMethod,
		ExchangeInfo:        req.ExchangeInfo,
		WalletBackup:        req.WalletBackup,
		CryptoType:          req.CryptoType,
		TransactionDatetime: req.TransactionDatetime,
		LossDescription:     req.LossDescription,
	})
}

// @Summary Create a social-media recovery case
// @Tags cases
// @Accept json
// @Produce json
// @Success 201 {object} models.Case
// @Failure 400 {object} map[string]any
// @Router /api/cases/social-media [post]
func (h *Handler) CreateSocialMediaCase(c *gin.Context) {
	var req createSocialMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}
	h.create(c, req.caseBaseRequest, &models.SocialMediaRecovery{
		Platform:            req.Platform,
		FullName:            req.FullName,
		Email:               req.Email,
		Phone:               req.Phone,
		Username:            req.Username,
		ProfileURL:          req.ProfileURL,
		ProfilePic:          req.ProfilePic,
		AccountCreationDate: req.AccountCreationDate,
		LastAccessDate:      req.LastAccessDate,
	})
}

// @Summary Create a money-recovery case
// @Tags cases
// @Accept json
// @Produce json
// @Success 201 {object} models.Case
// @Failure 400 {object} map[string]any
// @Router /api/cases/money-recovery [post]
func (h *Handler) CreateMoneyRecoveryCase(c *gin.Context) {
	var req createMoneyRecoveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}
	h.create(c, req.caseBaseRequest, &models.MoneyRecoveryReport{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Phone:          req.Phone,
		Email:          req.Email,
		Identification: req.Identification,
		Amount:         req.Amount,
		RefNumber:      req.RefNumber,
		Bank:           req.Bank,
		IBAN:           req.IBAN,
		Datetime:       req.Datetime,
	})
}

// @Summary List cases visible to the caller
// @Tags cases
// @Produce json
// @Param status query string false "status filter"
// @Param type query string false "case type filter"
// @Param priority query string false "priority filter"
// @Success 200 {array} models.Case
// @Router /api/cases [get]
func (h *Handler) CasesList(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	filter := service.CaseFilter{
		Status:   models.CaseStatus(c.Query("status")),
		Kind:     models.CaseKind(c.Query("type")),
		Priority: models.CasePriority(c.Query("priority")),
	}
	cases, err := h.Cases.List(c.Request.Context(), actor, filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if cases == nil {
		cases = []*models.Case{}
	}
	c.JSON(http.StatusOK, cases)
}

func (h *Handler) CaseDetails(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	out, err := h.Cases.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary Update a case
// @Description Applies a partial update to the base record and the
// kind-specific payload.
// @Tags cases
// @Accept json
// @Produce json
// @Success 200 {object} models.Case
// @Failure 400 {object} map[string]any
// @Router /api/cases/{id} [put]
func (h *Handler) CaseUpdate(c *gin.Context) {
	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	actor := middleware.ActorFrom(c)
	out, err := h.Cases.Update(c.Request.Context(), actor, c.Param("id"), patch)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) CaseDelete(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	if err := h.Cases.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

type assignRequest struct {
	AgentID string `json:"agent_id" validate:"required"`
}

// @Summary Assign a case to an agent
// @Tags cases
// @Accept json
// @Produce json
// @Success 200 {object} models.Case
// @Failure 403 {object} map[string]any
// @Router /api/cases/{id}/assign [post]
func (h *Handler) CaseAssign(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}
	actor := middleware.ActorFrom(c)
	out, err := h.Cases.Assign(c.Request.Context(), actor, c.Param("id"), req.AgentID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) CaseClose(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	out, err := h.Cases.Close(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
