// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/okian/tribute/internal/domain/tier"
)

// TiersDependencies defines the interface for tier table operations.
type TiersDependencies interface {
	TierTable(ctx context.Context) tier.Table
	SetTierTable(ctx context.Context, table tier.Table) error
}

// TiersHandler handles tier table requests.
type TiersHandler struct {
	deps TiersDependencies
}

// NewTiersHandler creates a new tiers handler.
func NewTiersHandler(deps TiersDependencies) *TiersHandler {
	return &TiersHandler{deps: deps}
}

// tierRuleRequest mirrors one editable row of the tier table. Threshold
// cells arrive as whatever the operator typed, so both JSON numbers and
// strings are accepted and coerced.
type tierRuleRequest struct {
	Label       string          `json:"label"`
	MinCoins    json.RawMessage `json:"min_coins"`
	MinActivity json.RawMessage `json:"min_activity"`
}

// HandleTiers handles GET and PUT /tiers requests.
func (h *TiersHandler) HandleTiers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.deps.TierTable(r.Context()))
	case http.MethodPut:
		h.handlePut(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *TiersHandler) handlePut(w http.ResponseWriter, r *http.Request) {
	const op = "api.put_tiers"

	var rows []tierRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	table := make(tier.Table, 0, len(rows))
	for _, row := range rows {
		if strings.TrimSpace(row.Label) == "" {
			writeError(w, http.StatusBadRequest, "empty_label", WrapKind(op, ErrBadRequest, tier.ErrEmptyLabel))
			return
		}
		minCoins, err := coerceCell(row.MinCoins)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_threshold", WrapKind(op, ErrBadRequest, err))
			return
		}
		minActivity, err := coerceCell(row.MinActivity)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_threshold", WrapKind(op, ErrBadRequest, err))
			return
		}
		table = append(table, tier.Rule{
			Label:       row.Label,
			MinCoins:    minCoins,
			MinActivity: minActivity,
		})
	}

	if err := h.deps.SetTierTable(r.Context(), table); err != nil {
		writeError(w, http.StatusBadRequest, "bad_table", WrapKind(op, ErrBadRequest, err))
		return
	}
	writeJSON(w, http.StatusOK, table)
}

// coerceCell converts one threshold cell to an integer. A missing cell
// counts as zero.
func coerceCell(raw json.RawMessage) (int, error) {
	if len(raw) == 0 {
		return 0, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		// Not a JSON string; treat the raw token as the cell text.
		s = string(raw)
	}
	return tier.CoerceThreshold(s)
}
