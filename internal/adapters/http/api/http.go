// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/tribute/internal/domain/model"
	"github.com/okian/tribute/internal/domain/tier"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// ProcessBatch runs the recognition pipeline for one category's batch.
	ProcessBatch(ctx context.Context, category model.Category, images []model.Image) (model.BatchSummary, error)

	// Read operations expose session state.
	ImageStatuses(ctx context.Context) map[string]model.ImageStatus
	Members(ctx context.Context, tierLabel string) []model.MemberRecord
	TierTable(ctx context.Context) tier.Table

	// SetTierTable replaces the threshold table and reclassifies members.
	SetTierTable(ctx context.Context, table tier.Table) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	recognizeHandler *RecognizeHandler
	statusHandler    *StatusHandler
	membersHandler   *MembersHandler
	tiersHandler     *TiersHandler
	exportHandler    *ExportHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	cfg := serverConfig{
		maxImageBytes:  defaultMaxImageBytes,
		maxBatchImages: defaultMaxBatchImages,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		recognizeHandler: NewRecognizeHandler(deps, cfg.maxImageBytes, cfg.maxBatchImages),
		statusHandler:    NewStatusHandler(deps),
		membersHandler:   NewMembersHandler(deps),
		tiersHandler:     NewTiersHandler(deps),
		exportHandler:    NewExportHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/status", MetricsMiddleware(s.statusHandler.HandleGetStatus, "status"))
	mux.HandleFunc("/recognize/", MetricsMiddleware(s.recognizeHandler.HandleRecognize, "recognize"))
	mux.HandleFunc("/members", MetricsMiddleware(s.membersHandler.HandleGetMembers, "members"))
	mux.HandleFunc("/members/export", MetricsMiddleware(s.exportHandler.HandleExport, "export"))
	mux.HandleFunc("/tiers", MetricsMiddleware(s.tiersHandler.HandleTiers, "tiers"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
