package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"resell_margin/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Post("/analysis", handler(s.postV1Analysis))

		r.Route("/bids", func(r chi.Router) {
			r.Get("/", handler(s.getV1Bids))
			r.Post("/", handler(s.postV1Bids))
			r.Put("/{sellerBiddingNo}", handler(s.putV1Bid))
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", handler(s.getV1Settings))
			r.Put("/", handler(s.putV1Settings))
		})

		r.Get("/rates", handler(s.getV1Rates))
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
