// Package merge combines the two category result sets into unified member
// records and assigns tiers.
package merge

import (
	"github.com/okian/tribute/internal/domain/model"
	"github.com/okian/tribute/internal/domain/tier"
	"github.com/okian/tribute/pkg/metrics"
)

// Members computes the full member record set from the latest results of
// both categories. The id set is the union of ids seen in either list,
// matched case-sensitively without trimming. Within one category only the
// first record per member counts; later sightings (for example from an
// overlapping second screenshot) are ignored. A category a member is
// missing from contributes 0. The output is recomputed wholesale on every
// call, ordered by first appearance (coins list first).
func Members(coins, activity []model.ContributionRecord, table tier.Table) []model.MemberRecord {
	ids := make([]string, 0, len(coins)+len(activity))
	seen := make(map[string]struct{}, len(coins)+len(activity))
	for _, r := range coins {
		if _, ok := seen[r.MemberID]; ok {
			continue
		}
		seen[r.MemberID] = struct{}{}
		ids = append(ids, r.MemberID)
	}
	for _, r := range activity {
		if _, ok := seen[r.MemberID]; ok {
			continue
		}
		seen[r.MemberID] = struct{}{}
		ids = append(ids, r.MemberID)
	}

	coinsByID := firstByID(coins)
	activityByID := firstByID(activity)

	out := make([]model.MemberRecord, 0, len(ids))
	for _, id := range ids {
		coinsContribution := coinsByID[id]
		activityContribution := activityByID[id]
		out = append(out, model.MemberRecord{
			MemberID:             id,
			CoinsContribution:    coinsContribution,
			ActivityContribution: activityContribution,
			Tier:                 table.Classify(coinsContribution, activityContribution),
		})
	}
	return out
}

// firstByID indexes records by member id keeping only the first sighting
// within the category. Later duplicates are dropped and counted.
func firstByID(records []model.ContributionRecord) map[string]float64 {
	out := make(map[string]float64, len(records))
	for _, r := range records {
		if _, ok := out[r.MemberID]; ok {
			metrics.RecordDuplicateMember()
			continue
		}
		out[r.MemberID] = r.Contribution
	}
	return out
}

// FilterByTier returns the members carrying the given tier label. An empty
// label returns the input unchanged.
func FilterByTier(members []model.MemberRecord, label string) []model.MemberRecord {
	if label == "" {
		return members
	}
	out := make([]model.MemberRecord, 0, len(members))
	for _, m := range members {
		if m.Tier == label {
			out = append(out, m)
		}
	}
	return out
}
