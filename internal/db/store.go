package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/shopspring/decimal"

	"github.com/Ghhost99/Recovery-Guard-BACKEND/internal/models"
	"github.com/Ghhost99/Recovery-Guard-BACKEND/internal/service"
)

type Store struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

func (s *Store) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

const caseColumns = `c.id, c.title, c.description, c.type, c.status, c.priority,
	c.customer_id, c.agent_id, c.resolution, c.resolution_status,
	c.resolution_date, c.is_active, c.is_closed, c.created_at, c.updated_at,
	cr.amount_lost, cr.usdt_value, cr.txid, cr.sender_wallet, cr.receiver_wallet,
	cr.platform_used, cr.blockchain_hash, cr.payment_method, cr.exchange_info,
	cr.wallet_backup, cr.crypto_type, cr.transaction_datetime, cr.loss_description,
	sm.platform, sm.full_name, sm.email, sm.phone, sm.username, sm.profile_url,
	sm.profile_pic, sm.account_creation_date, sm.last_access_date,
	mr.first_name, mr.last_name, mr.phone, mr.email, mr.identification,
	mr.amount, mr.ref_number, mr.bank, mr.iban, mr.datetime`

const caseJoins = ` FROM cases c
	LEFT JOIN crypto_loss_reports cr ON cr.case_id = c.id
	LEFT JOIN social_media_recoveries sm ON sm.case_id = c.id
	LEFT JOIN money_recovery_reports mr ON mr.case_id = c.id`

func scanCase(row pgx.Row) (*models.Case, error) {
	var (
		c models.Case

		crAmountLost     *decimal.Decimal
		crUSDTValue      *decimal.Decimal
		crTxID           *string
		crSenderWallet   *string
		crReceiverWallet *string
		crPlatformUsed   *string
		crBlockchainHash *string
		crPaymentMethod  *string
		crExchangeInfo   *string
		crWalletBackup   *string
		crCryptoType     *string
		crTxDatetime     *time.Time
		crLossDesc       *string

		smPlatform     *string
		smFullName     *string
		smEmail        *string
		smPhone        *string
		smUsername     *string
		smProfileURL   *string
		smProfilePic   *string
		smAccountDate  *time.Time
		smLastAccessed *time.Time

		mrFirstName *string
		mrLastName  *string
		mrPhone     *string
		mrEmail     *string
		mrIdent     *string
		mrAmount    *decimal.Decimal
		mrRefNumber *string
		mrBank      *string
		mrIBAN      *string
		mrDatetime  *time.Time
	)

	err := row.Scan(
		&c.ID, &c.Title, &c.Description, &c.Kind, &c.Status, &c.Priority,
		&c.CustomerID, &c.AgentID, &c.Resolution, &c.ResolutionStatus,
		&c.ResolutionDate, &c.IsActive, &c.IsClosed, &c.CreatedAt, &c.UpdatedAt,
		&crAmountLost, &crUSDTValue, &crTxID, &crSenderWallet, &crReceiverWallet,
		&crPlatformUsed, &crBlockchainHash, &crPaymentMethod, &crExchangeInfo,
		&crWalletBackup, &crCryptoType, &crTxDatetime, &crLossDesc,
		&smPlatform, &smFullName, &smEmail, &smPhone, &smUsername, &smProfileURL,
		&smProfilePic, &smAccountDate, &smLastAccessed,
		&mrFirstName, &mrLastName, &mrPhone, &mrEmail, &mrIdent,
		&mrAmount, &mrRefNumber, &mrBank, &mrIBAN, &mrDatetime,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, service.ErrNotFound
		}
		return nil, err
	}

	switch c.Kind {
	case models.KindCrypto:
		if crTxID != nil {
			c.Details = &models.CryptoLossReport{
				AmountLost:          derefDecimal(crAmountLost),
				USDTValue:           derefDecimal(crUSDTValue),
				TxID:                derefString(crTxID),
				SenderWallet:        derefString(crSenderWallet),
				ReceiverWallet:      derefString(crReceiverWallet),
				PlatformUsed:        derefString(crPlatformUsed),
				BlockchainHash:      derefString(crBlockchainHash),
				PaymentMethod:       derefString(crPaymentMethod),
				ExchangeInfo:        derefString(crExchangeInfo),
				WalletBackup:        derefString(crWalletBackup),
				CryptoType:          derefString(crCryptoType),
				TransactionDatetime: derefTime(crTxDatetime),
				LossDescription:     derefString(crLossDesc),
			}
		}
	case models.KindSocialMedia:
		if smPlatform != nil {
			c.Details = &models.SocialMediaRecovery{
				Platform:            derefString(smPlatform),
				FullName:            derefString(smFullName),
				Email:               derefString(smEmail),
				Phone:               derefString(smPhone),
				Username:            derefString(smUsername),
				ProfileURL:          derefString(smProfileURL),
				ProfilePic:          derefString(smProfilePic),
				AccountCreationDate: smAccountDate,
				LastAccessDate:      smLastAccessed,
			}
		}
	case models.KindMoneyRecovery:
		if mrFirstName != nil {
			c.Details = &models.MoneyRecoveryReport{
				FirstName:      derefString(mrFirstName),
				LastName:       derefString(mrLastName),
				Phone:          derefString(mrPhone),
				Email:          derefString(mrEmail),
				Identification: derefString(mrIdent),
				Amount:         derefDecimal(mrAmount),
				RefNumber:      derefString(mrRefNumber),
				Bank:           derefString(mrBank),
				IBAN:           derefString(mrIBAN),
				Datetime:       derefTime(mrDatetime),
			}
		}
	}
	return &c, nil
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func derefTime(v *time.Time) time.Time {
	if v == nil {
		return time.Time{}
	}
	return *v
}

func derefDecimal(v *decimal.Decimal) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return *v
}

// appendScope translates a role scope into WHERE predicates on the cases
// table (aliased c).
func appendScope(scope service.Scope, wheres []string, args []any) ([]string, []any) {
	if scope.ActiveOnly {
		wheres = append(wheres, "c.is_active = TRUE")
	}
	switch {
	case scope.All:
	case scope.CustomerID != "":
		args = append(args, scope.CustomerID)
		wheres = append(wheres, fmt.Sprintf("c.customer_id = $%d", len(args)))
	case scope.IncludeUnassigned:
		args = append(args, scope.AgentID)
		wheres = append(wheres, fmt.Sprintf("(c.agent_id = $%d OR c.agent_id IS NULL)", len(args)))
	default:
		args = append(args, scope.AgentID)
		wheres = append(wheres, fmt.Sprintf("c.agent_id = $%d", len(args)))
	}
	return wheres, args
}

func whereClause(wheres []string) string {
	if len(wheres) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(wheres, " AND ")
}

// CreateCase persists the base record and its payload in one transaction.
func (s *Store) CreateCase(ctx context.Context, c *models.Case) error {
	return s.WithTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO cases (id, title, description, type, status, priority,
				customer_id, agent_id, resolution, resolution_status, resolution_date,
				is_active, is_closed, created_at, updated_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		`, c.ID, c.Title, c.Description, c.Kind, c.Status, c.Priority,
			c.CustomerID, c.AgentID, c.Resolution, c.ResolutionStatus, c.ResolutionDate,
			c.IsActive, c.IsClosed, c.CreatedAt, c.UpdatedAt)
		if err != nil {
			return err
		}
		return insertDetails(ctx, tx, c)
	})
}

func insertDetails(ctx context.Context, tx pgx.Tx, c *models.Case) error {
	switch d := c.Details.(type) {
	case nil:
		return nil
	case *models.CryptoLossReport:
		_, err := tx.Exec(ctx, `
			INSERT INTO crypto_loss_reports (case_id, amount_lost, usdt_value, txid,
				sender_wallet, receiver_wallet, platform_used, blockchain_hash,
				payment_method, exchange_info, wallet_backup, crypto_type,
				transaction_datetime, loss_description)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		`, c.ID, d.AmountLost, d.USDTValue, d.TxID, d.SenderWallet, d.ReceiverWallet,
			d.PlatformUsed, d.BlockchainHash, d.PaymentMethod, d.ExchangeInfo,
			d.WalletBackup, d.CryptoType, d.TransactionDatetime, d.LossDescription)
		return err
	case *models.SocialMediaRecovery:
		_, err := tx.Exec(ctx, `
			INSERT INTO social_media_recoveries (case_id, platform, full_name, email,
				phone, username, profile_url, profile_pic, account_creation_date,
				last_access_date)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		`, c.ID, d.Platform, d.FullName, d.Email, d.Phone, d.Username,
			d.ProfileURL, d.ProfilePic, d.AccountCreationDate, d.LastAccessDate)
		return err
	case *models.MoneyRecoveryReport:
		_, err := tx.Exec(ctx, `
			INSERT INTO money_recovery_reports (case_id, first_name, last_name, phone,
				email, identification, amount, ref_number, bank, iban, datetime)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		`, c.ID, d.FirstName, d.LastName, d.Phone, d.Email, d.Identification,
			d.Amount, d.RefNumber, d.Bank, d.IBAN, d.Datetime)
		return err
	}
	return fmt.Errorf("unsupported case details %T", c.Details)
}

func updateDetails(ctx context.Context, tx pgx.Tx, c *models.Case) error {
	switch d := c.Details.(type) {
	case nil:
		return nil
	case *models.CryptoLossReport:
		_, err := tx.Exec(ctx, `
			UPDATE crypto_loss_reports SET amount_lost=$1, usdt_value=$2, txid=$3,
				sender_wallet=$4, receiver_wallet=$5, platform_used=$6,
				blockchain_hash=$7, payment_method=$8, exchange_info=$9,
				wallet_backup=$10, crypto_type=$11, transaction_datetime=$12,
				loss_description=$13
			WHERE case_id=$14
		`, d.AmountLost, d.USDTValue, d.TxID, d.SenderWallet, d.ReceiverWallet,
			d.PlatformUsed, d.BlockchainHash, d.PaymentMethod, d.ExchangeInfo,
			d.WalletBackup, d.CryptoType, d.TransactionDatetime, d.LossDescription, c.ID)
		return err
	case *models.SocialMediaRecovery:
		_, err := tx.Exec(ctx, `
			UPDATE social_media_recoveries SET platform=$1, full_name=$2, email=$3,
				phone=$4, username=$5, profile_url=$6, profile_pic=$7,
				account_creation_date=$8, last_access_date=$9
			WHERE case_id=$10
		`, d.Platform, d.FullName, d.Email, d.Phone, d.Username, d.ProfileURL,
			d.ProfilePic, d.AccountCreationDate, d.LastAccessDate, c.ID)
		return err
	case *models.MoneyRecoveryReport:
		_, err := tx.Exec(ctx, `
			UPDATE money_recovery_reports SET first_name=$1, last_name=$2, phone=$3,
				email=$4, identification=$5, amount=$6, ref_number=$7, bank=$8,
				iban=$9, datetime=$10
			WHERE case_id=$11
		`, d.FirstName, d.LastName, d.Phone, d.Email, d.Identification, d.Amount,
			d.RefNumber, d.Bank, d.IBAN, d.Datetime, c.ID)
		return err
	}
	return fmt.Errorf("unsupported case details %T", c.Details)
}

func (s *Store) GetCase(ctx context.Context, id string) (*models.Case, error) {
	row := s.Pool.QueryRow(ctx, "SELECT "+caseColumns+caseJoins+" WHERE c.id = $1", id)
	return scanCase(row)
}

// UpdateCase writes the base record and its payload together; a failure in
// either statement rolls back both.
func (s *Store) UpdateCase(ctx context.Context, c *models.Case) error {
	return s.WithTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE cases SET title=$1, description=$2, status=$3, priority=$4,
				agent_id=$5, resolution=$6, resolution_status=$7, resolution_date=$8,
				is_active=$9, is_closed=$10, updated_at=$11
			WHERE id=$12
		`, c.Title, c.Description, c.Status, c.Priority, c.AgentID, c.Resolution,
			c.ResolutionStatus, c.ResolutionDate, c.IsActive, c.IsClosed,
			c.UpdatedAt, c.ID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return service.ErrNotFound
		}
		return updateDetails(ctx, tx, c)
	})
}

// DeleteCase removes the base row; payload and documents go with it via
// ON DELETE CASCADE.
func (s *Store) DeleteCase(ctx context.Context, id string) error {
	tag, err := s.Pool.Exec(ctx, `DELETE FROM cases WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return service.ErrNotFound
	}
	return nil
}

func (s *Store) ListCases(ctx context.Context, scope service.Scope, filter service.CaseFilter) ([]*models.Case, error) {
	var wheres []string
	var args []any
	wheres, args = appendScope(scope, wheres, args)
	if filter.Status != "" {
		args = append(args, filter.Status)
		wheres = append(wheres, fmt.Sprintf("c.status = $%d", len(args)))
	}
	if filter.Kind != "" {
		args = append(args, filter.Kind)
		wheres = append(wheres, fmt.Sprintf("c.type = $%d", len(args)))
	}
	if filter.Priority != "" {
		args = append(args, filter.Priority)
		wheres = append(wheres, fmt.Sprintf("c.priority = $%d", len(args)))
	}

	query := "SELECT " + caseColumns + caseJoins + whereClause(wheres) + " ORDER BY c.created_at DESC"
	return s.queryCases(ctx, query, args)
}

func (s *Store) RecentCases(ctx context.Context, scope service.Scope, limit int) ([]*models.Case, error) {
	var wheres []string
	var args []any
	wheres, args = appendScope(scope, wheres, args)
	args = append(args, limit)
	query := "SELECT " + caseColumns + caseJoins + whereClause(wheres) +
		fmt.Sprintf(" ORDER BY c.updated_at DESC LIMIT $%d", len(args))
	return s.queryCases(ctx, query, args)
}

func (s *Store) queryCases(ctx context.Context, query string, args []any) ([]*models.Case, error) {
	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Case
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) CaseTitles(ctx context.Context, ids []string) (map[string]string, error) {
	rows, err := s.Pool.Query(ctx, `SELECT id, title FROM cases WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]string{}
	for rows.Next() {
		var id, title string
		if err := rows.Scan(&id, &title); err != nil {
			return nil, err
		}
		out[id] = title
	}
	return out, rows.Err()
}

func (s *Store) InsertDocuments(ctx context.Context, docs []*models.SupportingDocument) error {
	return s.WithTx(ctx, func(tx pgx.Tx) error {
		for _, d := range docs {
			_, err := tx.Exec(ctx, `
				INSERT INTO supporting_documents (id, case_id, file_url, file_name,
					file_size, description, uploaded_at)
				VALUES ($1,$2,$3,$4,$5,$6,$7)
			`, d.ID, d.CaseID, d.File.URL, d.File.Name, d.File.Size, d.Description, d.UploadedAt)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

const documentColumns = `d.id, d.case_id, d.file_url, d.file_name, d.file_size, d.description, d.uploaded_at`

func scanDocument(row pgx.Row) (*models.SupportingDocument, error) {
	var d models.SupportingDocument
	err := row.Scan(&d.ID, &d.CaseID, &d.File.URL, &d.File.Name, &d.File.Size, &d.Description, &d.UploadedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, service.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (s *Store) ListDocuments(ctx context.Context, caseID string) ([]*models.SupportingDocument, error) {
	rows, err := s.Pool.Query(ctx, "SELECT "+documentColumns+
		` FROM supporting_documents d WHERE d.case_id = $1 ORDER BY d.uploaded_at DESC`, caseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.SupportingDocument
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) GetDocument(ctx context.Context, caseID, docID string) (*models.SupportingDocument, error) {
	row := s.Pool.QueryRow(ctx, "SELECT "+documentColumns+
		` FROM supporting_documents d WHERE d.case_id = $1 AND d.id = $2`, caseID, docID)
	return scanDocument(row)
}

func (s *Store) DeleteDocument(ctx context.Context, caseID, docID string) error {
	tag, err := s.Pool.Exec(ctx, `DELETE FROM supporting_documents WHERE case_id = $1 AND id = $2`, caseID, docID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return service.ErrNotFound
	}
	return nil
}

func (s *Store) RecentDocuments(ctx context.Context, scope service.Scope, limit int) ([]*models.SupportingDocument, error) {
	var wheres []string
	var args []any
	wheres, args = appendScope(scope, wheres, args)
	args = append(args, limit)

	query := "SELECT " + documentColumns +
		` FROM supporting_documents d JOIN cases c ON c.id = d.case_id` +
		whereClause(wheres) +
		fmt.Sprintf(" ORDER BY d.uploaded_at DESC LIMIT $%d", len(args))
	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.SupportingDocument
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) StatusCounts(ctx context.Context, scope service.Scope, kind models.CaseKind) (service.StatusCounts, error) {
	var wheres []string
	var args []any
	wheres, args = appendScope(scope, wheres, args)
	if kind != "" {
		args = append(args, kind)
		wheres = append(wheres, fmt.Sprintf("c.type = $%d", len(args)))
	}

	rows, err := s.Pool.Query(ctx, `SELECT c.status, COUNT(*) FROM cases c`+whereClause(wheres)+` GROUP BY c.status`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := service.StatusCounts{}
	for rows.Next() {
		var status models.CaseStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		out[status] = n
	}
	return out, rows.Err()
}

func (s *Store) KindCounts(ctx context.Context, scope service.Scope) (map[models.CaseKind]int, error) {
	var wheres []string
	var args []any
	wheres, args = appendScope(scope, wheres, args)

	rows, err := s.Pool.Query(ctx, `SELECT c.type, COUNT(*) FROM cases c`+whereClause(wheres)+` GROUP BY c.type`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[models.CaseKind]int{}
	for rows.Next() {
		var kind models.CaseKind
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, err
		}
		out[kind] = n
	}
	return out, rows.Err()
}

func (s *Store) PriorityCounts(ctx context.Context, scope service.Scope, kind models.CaseKind) (map[models.CasePriority]int, error) {
	var wheres []string
	var args []any
	wheres, args = appendScope(scope, wheres, args)
	if kind != "" {
		args = append(args, kind)
		wheres = append(wheres, fmt.Sprintf("c.type = $%d", len(args)))
	}

	rows, err := s.Pool.Query(ctx, `SELECT c.priority, COUNT(*) FROM cases c`+whereClause(wheres)+` GROUP BY c.priority`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[models.CasePriority]int{}
	for rows.Next() {
		var priority models.CasePriority
		var n int
		if err := rows.Scan(&priority, &n); err != nil {
			return nil, err
		}
		out[priority] = n
	}
	return out, rows.Err()
}

func (s *Store) sumQuery(ctx context.Context, scope service.Scope, expr, table string) (decimal.Decimal, error) {
	var wheres []string
	var args []any
	wheres, args = appendScope(scope, wheres, args)

	query := "SELECT " + expr + " FROM " + table + " x JOIN cases c ON c.id = x.case_id" + whereClause(wheres)
	var total decimal.Decimal
	if err := s.Pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (s *Store) SumCryptoUSDT(ctx context.Context, scope service.Scope) (decimal.Decimal, error) {
	return s.sumQuery(ctx, scope, "COALESCE(SUM(x.usdt_value), 0)", "crypto_loss_reports")
}

func (s *Store) AvgCryptoUSDT(ctx context.Context, scope service.Scope) (decimal.Decimal, error) {
	return s.sumQuery(ctx, scope, "COALESCE(AVG(x.usdt_value), 0)", "crypto_loss_reports")
}

func (s *Store) SumMoneyAmounts(ctx context.Context, scope service.Scope) (decimal.Decimal, error) {
	return s.sumQuery(ctx, scope, "COALESCE(SUM(x.amount), 0)", "money_recovery_reports")
}

func (s *Store) AvgMoneyAmount(ctx context.Context, scope service.Scope) (decimal.Decimal, error) {
	return s.sumQuery(ctx, scope, "COALESCE(AVG(x.amount), 0)", "money_recovery_reports")
}

func (s *Store) breakdownQuery(ctx context.Context, scope service.Scope, column, table string) (map[string]int, error) {
	var wheres []string
	var args []any
	wheres, args = appendScope(scope, wheres, args)

	query := "SELECT x." + column + ", COUNT(*) FROM " + table + " x JOIN cases c ON c.id = x.case_id" +
		whereClause(wheres) + " GROUP BY x." + column
	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, err
		}
		out[key] = n
	}
	return out, rows.Err()
}

func (s *Store) CryptoTypeCounts(ctx context.Context, scope service.Scope) (map[string]int, error) {
	return s.breakdownQuery(ctx, scope, "crypto_type", "crypto_loss_reports")
}

func (s *Store) PlatformCounts(ctx context.Context, scope service.Scope) (map[string]int, error) {
	return s.breakdownQuery(ctx, scope, "platform", "social_media_recoveries")
}

func (s *Store) CountCreatedSince(ctx context.Context, scope service.Scope, since time.Time) (int, error) {
	var wheres []string
	var args []any
	wheres, args = appendScope(scope, wheres, args)
	args = append(args, since)
	wheres = append(wheres, fmt.Sprintf("c.created_at >= $%d", len(args)))

	var n int
	err := s.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM cases c`+whereClause(wheres), args...).Scan(&n)
	return n, err
}

func (s *Store) CountResolvedSince(ctx context.Context, scope service.Scope, since time.Time) (int, error) {
	var wheres []string
	var args []any
	wheres, args = appendScope(scope, wheres, args)
	args = append(args, since)
	wheres = append(wheres, fmt.Sprintf("c.resolution_date >= $%d", len(args)))
	wheres = append(wheres, "c.status = 'resolved'")

	var n int
	err := s.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM cases c`+whereClause(wheres), args...).Scan(&n)
	return n, err
}

// AvgResolutionDays averages resolution time only over cases carrying both
// timestamps.
func (s *Store) AvgResolutionDays(ctx context.Context, scope service.Scope) (float64, error) {
	var wheres []string
	var args []any
	wheres, args = appendScope(scope, wheres, args)
	wheres = append(wheres, "c.status = 'resolved'", "c.resolution_date IS NOT NULL")

	var days float64
	err := s.Pool.QueryRow(ctx,
		`SELECT COALESCE(AVG(EXTRACT(EPOCH FROM (c.resolution_date - c.created_at)) / 86400.0), 0) FROM cases c`+whereClause(wheres),
		args...).Scan(&days)
	return days, err
}
