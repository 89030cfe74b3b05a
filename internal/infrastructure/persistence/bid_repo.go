package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/xid"

	"resell_margin/internal/domain"
	"resell_margin/internal/domain/entity"
	"resell_margin/pkg/errcodes"
)

type BidRepository struct {
	db *sqlx.DB
}

// NewBidRepository создаёт новый экземпляр репозитория.
func NewBidRepository(db *sqlx.DB) *BidRepository {
	return &BidRepository{db: db}
}

// withTx выполняет функцию в транзакции.
func (r *BidRepository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return domain.WrapError(
				fmt.Errorf("%w; rollback: %v", err, rbErr),
				errcodes.InternalServerError,
				"transaction failed",
			)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to commit")
	}

	return nil
}

// Save сохраняет запись о ставке. Повторная вставка с тем же request_id
// обновляет существующую строку, а не создаёт дубликат.
func (r *BidRepository) Save(ctx context.Context, bid entity.Bid) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		now := time.Now()

		createdAt := bid.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}

		id := bid.ID
		if id == "" {
			id = xid.New().String()
		}

		query := `
			INSERT INTO bids (id, user_id, request_id, global_sku_id, seller_bidding_no,
				price, quantity, currency, status, created_at, updated_at)
			VALUES (:id, :user_id, :request_id, :global_sku_id, :seller_bidding_no,
				:price, :quantity, :currency, :status, :created_at, :updated_at)
			ON CONFLICT (request_id) DO UPDATE SET
				seller_bidding_no = EXCLUDED.seller_bidding_no,
				price = EXCLUDED.price,
				quantity = EXCLUDED.quantity,
				status = EXCLUDED.status,
				updated_at = EXCLUDED.updated_at`

		params := map[string]any{
			"id":                id,
			"user_id":           bid.UserID,
			"request_id":        bid.RequestID,
			"global_sku_id":     bid.GlobalSkuID,
			"seller_bidding_no": bid.SellerBiddingNo,
			"price":             bid.Price,
			"quantity":          bid.Quantity,
			"currency":          bid.Currency,
			"status":            string(bid.Status),
			"created_at":        createdAt,
			"updated_at":        now,
		}

		if _, err := tx.NamedExecContext(ctx, query, params); err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to insert bid")
		}

		return nil
	})
}

// ListForUser возвращает ставки пользователя, новые первыми.
func (r *BidRepository) ListForUser(ctx context.Context, userID string) ([]entity.Bid, error) {
	query := `
		SELECT id, user_id, request_id, global_sku_id, seller_bidding_no,
			price, quantity, currency, status, created_at, updated_at
		FROM bids
		WHERE user_id = $1
		ORDER BY created_at DESC`

	var schemas []bidSchema
	if err := r.db.SelectContext(ctx, &schemas, query, userID); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list bids")
	}

	bids := make([]entity.Bid, 0, len(schemas))
	for _, s := range schemas {
		bids = append(bids, s.toDomain())
	}

	return bids, nil
}

// GetBySellerBiddingNo возвращает ставку пользователя по номеру листинга.
func (r *BidRepository) GetBySellerBiddingNo(ctx context.Context, userID, sellerBiddingNo string) (entity.Bid, error) {
	query := `
		SELECT id, user_id, request_id, global_sku_id, seller_bidding_no,
			price, quantity, currency, status, created_at, updated_at
		FROM bids
		WHERE user_id = $1 AND seller_bidding_no = $2`

	var schema bidSchema
	if err := r.db.GetContext(ctx, &schema, query, userID, sellerBiddingNo); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Bid{}, domain.NewError(errcodes.BidNotFound, "bid not found")
		}
		return entity.Bid{}, domain.WrapError(err, errcodes.InternalServerError, "failed to get bid")
	}

	return schema.toDomain(), nil
}

// UpdateStatus меняет статус ставки по номеру листинга.
func (r *BidRepository) UpdateStatus(ctx context.Context, userID, sellerBiddingNo string, status entity.BidStatus) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			UPDATE bids
			SET status = $1, updated_at = $2
			WHERE user_id = $3 AND seller_bidding_no = $4`

		res, err := tx.ExecContext(ctx, query, string(status), time.Now(), userID, sellerBiddingNo)
		if err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to execute update")
		}

		rows, err := res.RowsAffected()
		if err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to check affected rows")
		}

		if rows == 0 {
			return domain.NewError(errcodes.BidNotFound, "bid not found")
		}

		return nil
	})
}
