package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"resell_margin/internal/domain"
	"resell_margin/internal/domain/value"
	"resell_margin/pkg/errcodes"
)

type SettingsRepository struct {
	db *sqlx.DB
}

// NewSettingsRepository создаёт новый экземпляр репозитория.
func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetForUser возвращает настройки пользователя. Если пользователь ещё ничего
// не сохранял, возвращаются настройки по умолчанию.
func (r *SettingsRepository) GetForUser(ctx context.Context, userID string) (value.Settings, error) {
	query := `
		SELECT user_id, exchange_rate, platform_fee_rate, shipping_cost, target_profit, updated_at
		FROM settings
		WHERE user_id = $1`

	var schema settingsSchema
	if err := r.db.GetContext(ctx, &schema, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return value.DefaultSettings(), nil
		}
		return value.Settings{}, domain.WrapError(err, errcodes.InternalServerError, "failed to get settings")
	}

	return schema.toDomain(), nil
}

// UpsertForUser сохраняет настройки пользователя, перезаписывая прежние.
func (r *SettingsRepository) UpsertForUser(ctx context.Context, userID string, settings value.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO settings (user_id, exchange_rate, platform_fee_rate, shipping_cost, target_profit, updated_at)
		VALUES (:user_id, :exchange_rate, :platform_fee_rate, :shipping_cost, :target_profit, :updated_at)
		ON CONFLICT (user_id) DO UPDATE SET
			exchange_rate = EXCLUDED.exchange_rate,
			platform_fee_rate = EXCLUDED.platform_fee_rate,
			shipping_cost = EXCLUDED.shipping_cost,
			target_profit = EXCLUDED.target_profit,
			updated_at = EXCLUDED.updated_at`

	params := map[string]any{
		"user_id":           userID,
		"exchange_rate":     settings.ExchangeRate,
		"platform_fee_rate": settings.PlatformFeeRate,
		"shipping_cost":     settings.ShippingCost,
		"target_profit":     settings.TargetProfit,
		"updated_at":        time.Now(),
	}

	if _, err := r.db.NamedExecContext(ctx, query, params); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to upsert settings")
	}

	return nil
}
