package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"resell_margin/internal/domain/entity"
	"resell_margin/internal/domain/service/analysis"
	"resell_margin/pkg/httpx/reply"
	"resell_margin/pkg/httpx/req"
	"resell_margin/pkg/lox"
	"resell_margin/pkg/rest"
)

type biddingService interface {
	PlaceBulkBids(ctx context.Context, inputs []analysis.BidInput) (entity.BulkBidResult, error)
	UpdateBid(ctx context.Context, sellerBiddingNo string, price float64, quantity int) (entity.ListingAck, error)
}

type bidStore interface {
	ListForUser(ctx context.Context, userID string) ([]entity.Bid, error)
}

type BidServer struct {
	biddingService biddingService
	bidStore       bidStore
}

func NewBidServer(biddingService biddingService, bidStore bidStore) BidServer {
	return BidServer{
		biddingService: biddingService,
		bidStore:       bidStore,
	}
}

func (s BidServer) postV1Bids(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.BulkBidRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	inputs := make([]analysis.BidInput, 0, len(request.Bids))
	for _, bid := range request.Bids {
		inputs = append(inputs, analysis.BidInput{
			GlobalSkuID: bid.SkuID,
			Price:       bid.Price,
			Quantity:    bid.Quantity,
		})
	}

	result, err := s.biddingService.PlaceBulkBids(ctx, inputs)
	if err != nil {
		return asHTTPError(err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTBulkBidResponse(result))

	return nil
}

func (s BidServer) putV1Bid(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.BidUpdateRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	ack, err := s.biddingService.UpdateBid(ctx, chi.URLParam(r, "sellerBiddingNo"), request.Price, request.Quantity)
	if err != nil {
		return asHTTPError(err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.BidResult{
		Success:         true,
		Price:           request.Price,
		SellerBiddingNo: ack.SellerBiddingNo,
		Tips:            ack.Tips,
	})

	return nil
}

func (s BidServer) getV1Bids(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	bids, err := s.bidStore.ListForUser(ctx, userIDFromRequest(r))
	if err != nil {
		return asHTTPError(err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.BidList{Bids: lox.Map(bids, newRESTBid)})

	return nil
}
