package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/rupavo/payments-api/internal/domain"
	"github.com/rupavo/payments-api/pkg/errors"
)

type shopRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewShopRepository creates a new shop repository
func NewShopRepository(db *sql.DB, logger *zap.Logger) *shopRepository {
	return &shopRepository{
		db:     db,
		logger: logger,
	}
}

func (r *shopRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Shop, error) {
	query := `
		SELECT id, slug, name, owner_name, api_key_hash, is_active, created_at, updated_at
		FROM shops
		WHERE id = $1
	`

	var shop domain.Shop

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&shop.ID,
		&shop.Slug,
		&shop.Name,
		&shop.OwnerName,
		&shop.APIKeyHash,
		&shop.IsActive,
		&shop.CreatedAt,
		&shop.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "shop", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get shop by ID", zap.Error(err))
		return nil, err
	}

	return &shop, nil
}

func (r *shopRepository) GetByAPIKey(ctx context.Context, apiKey string) (*domain.Shop, error) {
	// bcrypt hashes are salted, so there is no direct hash lookup; iterate
	// active shops and verify the key against each stored hash.
	query := `
		SELECT id, slug, name, owner_name, api_key_hash, is_active, created_at, updated_at
		FROM shops
		WHERE is_active = true
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to query shops", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var shop domain.Shop

		err := rows.Scan(
			&shop.ID,
			&shop.Slug,
			&shop.Name,
			&shop.OwnerName,
			&shop.APIKeyHash,
			&shop.IsActive,
			&shop.CreatedAt,
			&shop.UpdatedAt,
		)

		if err != nil {
			continue
		}

		if err := bcrypt.CompareHashAndPassword([]byte(shop.APIKeyHash), []byte(apiKey)); err == nil {
			return &shop, nil
		}
	}

	return nil, &errors.ErrUnauthorized{Message: "invalid API key"}
}

func (r *shopRepository) Create(ctx context.Context, shop *domain.Shop) error {
	query := `
		INSERT INTO shops (id, slug, name, owner_name, api_key_hash, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	now := time.Now()
	if shop.ID == uuid.Nil {
		shop.ID = uuid.New()
	}
	if shop.CreatedAt.IsZero() {
		shop.CreatedAt = now
	}
	if shop.UpdatedAt.IsZero() {
		shop.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query,
		shop.ID,
		shop.Slug,
		shop.Name,
		shop.OwnerName,
		shop.APIKeyHash,
		shop.IsActive,
		shop.CreatedAt,
		shop.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create shop", zap.Error(err))
		return err
	}

	return nil
}

func (r *shopRepository) GetPaymentSettings(ctx context.Context, shopID uuid.UUID) (*domain.ShopPaymentSettings, error) {
	query := `
		SELECT shop_id, online_orders_enabled, bank_name, bank_account_number, bank_account_holder, updated_at
		FROM shop_payment_settings
		WHERE shop_id = $1
	`

	var settings domain.ShopPaymentSettings
	var bankName, bankAccountNumber, bankAccountHolder sql.NullString

	err := r.db.QueryRowContext(ctx, query, shopID).Scan(
		&settings.ShopID,
		&settings.OnlineOrdersEnabled,
		&bankName,
		&bankAccountNumber,
		&bankAccountHolder,
		&settings.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "shop payment settings", ID: shopID.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get shop payment settings", zap.Error(err))
		return nil, err
	}

	if bankName.Valid {
		settings.BankName = &bankName.String
	}
	if bankAccountNumber.Valid {
		settings.BankAccountNumber = &bankAccountNumber.String
	}
	if bankAccountHolder.Valid {
		settings.BankAccountHolder = &bankAccountHolder.String
	}

	return &settings, nil
}

func (r *shopRepository) UpsertPaymentSettings(ctx context.Context, settings *domain.ShopPaymentSettings) error {
	query := `
		INSERT INTO shop_payment_settings (shop_id, online_orders_enabled, bank_name, bank_account_number, bank_account_holder, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (shop_id) DO UPDATE
		SET online_orders_enabled = EXCLUDED.online_orders_enabled,
			bank_name = EXCLUDED.bank_name,
			bank_account_number = EXCLUDED.bank_account_number,
			bank_account_holder = EXCLUDED.bank_account_holder,
			updated_at = EXCLUDED.updated_at
	`

	settings.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		settings.ShopID,
		settings.OnlineOrdersEnabled,
		settings.BankName,
		settings.BankAccountNumber,
		settings.BankAccountHolder,
		settings.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to upsert shop payment settings", zap.Error(err))
		return err
	}

	return nil
}

func (r *shopRepository) GetBalance(ctx context.Context, shopID uuid.UUID) (*domain.ShopBalance, error) {
	query := `
		SELECT shop_id, available, updated_at
		FROM shop_balances
		WHERE shop_id = $1
	`

	var balance domain.ShopBalance

	err := r.db.QueryRowContext(ctx, query, shopID).Scan(
		&balance.ShopID,
		&balance.Available,
		&balance.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		// A shop with no balance row simply has nothing to withdraw
		return &domain.ShopBalance{ShopID: shopID}, nil
	}
	if err != nil {
		r.logger.Error("Failed to get shop balance", zap.Error(err))
		return nil, err
	}

	return &balance, nil
}
