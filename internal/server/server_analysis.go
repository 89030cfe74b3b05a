package server

import (
	"context"
	"fmt"
	"net/http"

	"git.appkode.ru/pub/go/failure"

	"resell_margin/internal/domain/entity"
	"resell_margin/internal/domain/value"
	"resell_margin/pkg/contextx"
	"resell_margin/pkg/errcodes"
	"resell_margin/pkg/httpx/reply"
	"resell_margin/pkg/httpx/req"
	"resell_margin/pkg/middlewarex"
	"resell_margin/pkg/rest"
)

type analysisService interface {
	Analyze(ctx context.Context, styleCodes []string, settings value.Settings) entity.AnalysisReport
}

type settingsStore interface {
	GetForUser(ctx context.Context, userID string) (value.Settings, error)
	UpsertForUser(ctx context.Context, userID string, settings value.Settings) error
}

type AnalysisServer struct {
	analysisService analysisService
	settingsStore   settingsStore
}

func NewAnalysisServer(analysisService analysisService, settingsStore settingsStore) AnalysisServer {
	return AnalysisServer{
		analysisService: analysisService,
		settingsStore:   settingsStore,
	}
}

func (s AnalysisServer) postV1Analysis(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.BulkAnalysisRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	codes := make([]string, 0, len(request.Requests))
	for _, item := range request.Requests {
		code := item.CustomCode
		if code == "" {
			code = item.ArticleNumber
		}

		codes = append(codes, code)
	}

	if len(codes) == 0 {
		return failure.NewInvalidArgumentError(
			"empty analysis request",
			failure.WithCode(errcodes.ValidationError),
			failure.WithDescription("at least one product code is required"),
		)
	}

	settings, err := s.settingsStore.GetForUser(ctx, userIDFromRequest(r))
	if err != nil {
		return fmt.Errorf("settingsStore.GetForUser: %w", err)
	}

	report := s.analysisService.Analyze(ctx, codes, settings)

	reply.JSON(ctx, w, http.StatusOK, newRESTAnalysisReport(report))

	return nil
}

func userIDFromRequest(r *http.Request) string {
	userID, err := contextx.UserIDFromContext(r.Context())
	if err != nil {
		return middlewarex.AnonymousUserID.String()
	}

	return userID.String()
}
