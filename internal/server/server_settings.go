package server

import (
	"fmt"
	"net/http"

	"resell_margin/pkg/httpx/reply"
	"resell_margin/pkg/httpx/req"
	"resell_margin/pkg/rest"
)

type SettingsServer struct {
	settingsStore settingsStore
}

func NewSettingsServer(settingsStore settingsStore) SettingsServer {
	return SettingsServer{
		settingsStore: settingsStore,
	}
}

func (s SettingsServer) getV1Settings(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	settings, err := s.settingsStore.GetForUser(ctx, userIDFromRequest(r))
	if err != nil {
		return asHTTPError(err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTSettings(settings))

	return nil
}

func (s SettingsServer) putV1Settings(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.Settings

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	if err := s.settingsStore.UpsertForUser(ctx, userIDFromRequest(r), newDomainSettings(request)); err != nil {
		return asHTTPError(err)
	}

	reply.OK(w)

	return nil
}
