package persistence

import (
	"time"

	"resell_margin/internal/domain/entity"
	"resell_margin/internal/domain/value"
)

// bidSchema — внутренняя структура для маппинга строки БД.
type bidSchema struct {
	ID              string    `db:"id"`
	UserID          string    `db:"user_id"`
	RequestID       string    `db:"request_id"`
	GlobalSkuID     int64     `db:"global_sku_id"`
	SellerBiddingNo string    `db:"seller_bidding_no"`
	Price           float64   `db:"price"`
	Quantity        int       `db:"quantity"`
	Currency        string    `db:"currency"`
	Status          string    `db:"status"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (s *bidSchema) toDomain() entity.Bid {
	return entity.Bid{
		ID:              s.ID,
		UserID:          s.UserID,
		RequestID:       s.RequestID,
		GlobalSkuID:     s.GlobalSkuID,
		SellerBiddingNo: s.SellerBiddingNo,
		Price:           s.Price,
		Quantity:        s.Quantity,
		Currency:        s.Currency,
		Status:          entity.BidStatus(s.Status),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// settingsSchema — представление таблицы settings в БД.
type settingsSchema struct {
	UserID          string    `db:"user_id"`
	ExchangeRate    float64   `db:"exchange_rate"`
	PlatformFeeRate float64   `db:"platform_fee_rate"`
	ShippingCost    float64   `db:"shipping_cost"`
	TargetProfit    float64   `db:"target_profit"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (s *settingsSchema) toDomain() value.Settings {
	return value.Settings{
		ExchangeRate:    s.ExchangeRate,
		PlatformFeeRate: s.PlatformFeeRate,
		ShippingCost:    s.ShippingCost,
		TargetProfit:    s.TargetProfit,
	}
}
