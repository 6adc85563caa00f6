// Package model contains domain models passed between layers.
package model

// Category names a contribution leaderboard.
type Category string

const (
	// CategoryCoins is the weekly coin donation leaderboard.
	CategoryCoins Category = "coins"
	// CategoryActivity is the weekly activity contribution leaderboard.
	CategoryActivity Category = "activity"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	return c == CategoryCoins || c == CategoryActivity
}

// Image is one uploaded screenshot handed to the orchestrator.
// ID is assigned at the upload boundary and keys status tracking.
type Image struct {
	ID   string
	Name string
	MIME string
	Data []byte
}

// ContributionRecord is one (member, image) sighting extracted from an
// oracle reply. Member ids are kept exactly as extracted, not normalized.
type ContributionRecord struct {
	MemberID      string  `json:"member_id"`
	Contribution  float64 `json:"contribution"`
	SourceImageID string  `json:"source_image_id"`
}

// MemberRecord is the merged per-member result with its assigned tier.
// Recomputed wholesale on every merge; never persisted.
type MemberRecord struct {
	MemberID             string  `json:"member_id"`
	CoinsContribution    float64 `json:"coins_contribution"`
	ActivityContribution float64 `json:"activity_contribution"`
	Tier                 string  `json:"tier"`
}

// ImageState is the processing state of one image within a batch.
type ImageState string

const (
	StatePending    ImageState = "pending"
	StateInProgress ImageState = "in_progress"
	StateCompleted  ImageState = "completed"
	StateFailed     ImageState = "failed"
)

// Terminal reports whether the state is final.
func (s ImageState) Terminal() bool {
	return s == StateCompleted || s == StateFailed
}

// ImageStatus pairs an image's state with a human-readable failure reason.
// Reason is empty unless State is StateFailed.
type ImageStatus struct {
	State  ImageState `json:"state"`
	Reason string     `json:"reason,omitempty"`
}

// ImageOutcome reports what happened to one image of a batch.
type ImageOutcome struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	State   string `json:"state"`
	Reason  string `json:"reason,omitempty"`
	Records int    `json:"records"`
}

// BatchSummary reports the result of processing one batch of images.
type BatchSummary struct {
	Category  Category       `json:"category"`
	Accepted  int            `json:"accepted"`
	Completed int            `json:"completed"`
	Failed    int            `json:"failed"`
	Records   int            `json:"records"`
	Images    []ImageOutcome `json:"images"`
}
