// Package repository defines the session state store interface and errors.
//
// The store holds everything one operator session accumulates: the latest
// per-category contribution records, the per-image processing statuses,
// the editable tier table, and the most recent merge output. Nothing is
// persisted across process restarts.
package repository

import (
	"context"

	"github.com/okian/tribute/internal/domain/model"
	"github.com/okian/tribute/internal/domain/tier"
)

// Store provides read/write access to the session state.
type Store interface {
	// ReplaceCategoryResults swaps a category's record list wholesale.
	// Re-running recognition for a category discards its previous results.
	ReplaceCategoryResults(ctx context.Context, category model.Category, records []model.ContributionRecord)

	// CategoryResults returns a copy of the category's latest records.
	CategoryResults(ctx context.Context, category model.Category) []model.ContributionRecord

	// SetImageStatus updates one image's processing status.
	SetImageStatus(ctx context.Context, imageID string, status model.ImageStatus)

	// ImageStatuses returns a snapshot of every tracked image status.
	ImageStatuses(ctx context.Context) map[string]model.ImageStatus

	// ReplaceTierTable swaps the tier table. Returns ErrEmptyTable when
	// the new table has no rows.
	ReplaceTierTable(ctx context.Context, table tier.Table) error

	// TierTable returns a copy of the current tier table.
	TierTable(ctx context.Context) tier.Table

	// ReplaceMembers swaps the latest merge output.
	ReplaceMembers(ctx context.Context, members []model.MemberRecord)

	// Members returns a copy of the latest merge output.
	Members(ctx context.Context) []model.MemberRecord

	// Counts returns the number of records per category and tracked images.
	Counts(ctx context.Context) (coins, activity, images int)
}
