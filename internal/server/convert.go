package server

import (
	"time"

	"resell_margin/internal/domain/entity"
	"resell_margin/internal/domain/value"
	"resell_margin/pkg/lox"
	"resell_margin/pkg/rest"
)

func newRESTAnalysisReport(report entity.AnalysisReport) rest.AnalysisReport {
	return rest.AnalysisReport{
		Products: lox.Map(report.Products, newRESTAnalysisResponse),
		Failures: report.Failures,
	}
}

func newRESTAnalysisResponse(analysis entity.ProductAnalysis) rest.AnalysisResponse {
	rows := lox.Map(analysis.Rows, newRESTAnalysisRow)

	return rest.AnalysisResponse{
		SpuID:         analysis.Product.GlobalSpuID,
		Title:         analysis.Product.Title,
		ArticleNumber: analysis.Product.ArticleNumber,
		StyleCode:     analysis.Product.ArticleNumber,
		LogoURL:       analysis.Product.LogoURL,
		Rows:          rows,
	}
}

func newRESTAnalysisRow(row entity.AnalysisRow) rest.AnalysisRow {
	return rest.AnalysisRow{
		SkuID:                row.Sku.GlobalSkuID,
		Size:                 row.Sku.Size,
		WholesalePrice:       row.Wholesale.Amount,
		WholesalePriceSource: string(row.Wholesale.Source),
		LowestAsk:            row.LowestAsk,
		OptimalBid:           row.OptimalBid,
		MaxProfitableBid:     row.MaxProfitableBid,
		RetailPrice:          row.RetailPrice,
		Revenue:              row.Margin.Revenue,
		Cost:                 row.Margin.Cost,
		Profit:               row.Margin.Profit,
		ROI:                  row.Margin.ROI,
		Profitable:           row.Margin.Profitable,
		Degraded:             row.Degraded,
	}
}

func newRESTBulkBidResponse(result entity.BulkBidResult) rest.BulkBidResponse {
	return rest.BulkBidResponse{
		Succeeded: result.Succeeded,
		Failed:    result.Failed,
		Results: lox.Map(result.Results, func(item entity.BidResult) rest.BidResult {
			return rest.BidResult{
				SkuID:           item.GlobalSkuID,
				Price:           item.Price,
				Success:         item.Success,
				SellerBiddingNo: item.SellerBiddingNo,
				Tips:            item.Tips,
				Error:           item.Error,
			}
		}),
	}
}

func newRESTBid(bid entity.Bid) rest.Bid {
	return rest.Bid{
		ID:              bid.ID,
		SkuID:           bid.GlobalSkuID,
		SellerBiddingNo: bid.SellerBiddingNo,
		Price:           bid.Price,
		Quantity:        bid.Quantity,
		Status:          string(bid.Status),
		CreatedAt:       bid.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       bid.UpdatedAt.Format(time.RFC3339),
	}
}

func newRESTSettings(settings value.Settings) rest.Settings {
	return rest.Settings{
		ExchangeRate:    settings.ExchangeRate,
		PlatformFeeRate: settings.PlatformFeeRate,
		ShippingCost:    settings.ShippingCost,
		TargetProfit:    settings.TargetProfit,
	}
}

func newDomainSettings(settings rest.Settings) value.Settings {
	return value.Settings{
		ExchangeRate:    settings.ExchangeRate,
		PlatformFeeRate: settings.PlatformFeeRate,
		ShippingCost:    settings.ShippingCost,
		TargetProfit:    settings.TargetProfit,
	}
}

func newRESTRate(rate entity.ExchangeRate) rest.Rate {
	return rest.Rate{
		From:   rate.From,
		To:     rate.To,
		Rate:   rate.Rate,
		Source: string(rate.Source),
	}
}
