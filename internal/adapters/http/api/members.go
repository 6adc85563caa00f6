// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/tribute/internal/domain/model"
)

// MembersDependencies defines the interface for merged member queries.
type MembersDependencies interface {
	Members(ctx context.Context, tierLabel string) []model.MemberRecord
}

// MembersHandler handles merged member list requests.
type MembersHandler struct {
	deps MembersDependencies
}

// NewMembersHandler creates a new members handler.
func NewMembersHandler(deps MembersDependencies) *MembersHandler {
	return &MembersHandler{deps: deps}
}

// HandleGetMembers handles GET /members?tier=LABEL requests. Without the
// tier parameter the full merged list is returned.
func (h *MembersHandler) HandleGetMembers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	members := h.deps.Members(r.Context(), r.URL.Query().Get("tier"))
	if members == nil {
		members = []model.MemberRecord{}
	}
	writeJSON(w, http.StatusOK, members)
}
