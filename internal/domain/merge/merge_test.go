package merge_test

import (
	"testing"

	merge "github.com/okian/tribute/internal/domain/merge"
	"github.com/okian/tribute/internal/domain/model"
	tier "github.com/okian/tribute/internal/domain/tier"
	. "github.com/smartystreets/goconvey/convey"
)

func record(id string, contribution float64, image string) model.ContributionRecord {
	return model.ContributionRecord{MemberID: id, Contribution: contribution, SourceImageID: image}
}

func TestMembers(t *testing.T) {
	Convey("Given result sets for both categories", t, func() {
		table := tier.Table{
			{Label: "L1", MinCoins: 300, MinActivity: 300},
			{Label: "L2", MinCoins: 1000, MinActivity: 1500},
		}

		Convey("When a member appears in both categories", func() {
			coins := []model.ContributionRecord{record("alice", 1000, "img-1")}
			activity := []model.ContributionRecord{record("alice", 1500, "img-2")}

			out := merge.Members(coins, activity, table)

			Convey("Then both contributions and the tier are set", func() {
				So(len(out), ShouldEqual, 1)
				So(out[0].MemberID, ShouldEqual, "alice")
				So(out[0].CoinsContribution, ShouldEqual, 1000)
				So(out[0].ActivityContribution, ShouldEqual, 1500)
				So(out[0].Tier, ShouldEqual, "L2")
			})
		})

		Convey("When a member appears in only one category", func() {
			coins := []model.ContributionRecord{record("bob", 500, "img-1")}

			out := merge.Members(coins, nil, table)

			Convey("Then the missing category contributes exactly zero", func() {
				So(len(out), ShouldEqual, 1)
				So(out[0].CoinsContribution, ShouldEqual, 500)
				So(out[0].ActivityContribution, ShouldEqual, 0)
				So(out[0].Tier, ShouldEqual, tier.BelowStandard)
			})
		})

		Convey("When a member is sighted twice within one category", func() {
			coins := []model.ContributionRecord{
				record("carol", 700, "img-1"),
				record("carol", 9000, "img-2"),
			}

			out := merge.Members(coins, nil, table)

			Convey("Then only the first sighting counts", func() {
				So(len(out), ShouldEqual, 1)
				So(out[0].CoinsContribution, ShouldEqual, 700)
			})
		})

		Convey("When ids differ only by case or whitespace", func() {
			coins := []model.ContributionRecord{record("Dan", 400, "img-1")}
			activity := []model.ContributionRecord{record("dan ", 400, "img-2")}

			out := merge.Members(coins, activity, table)

			Convey("Then they stay distinct members", func() {
				So(len(out), ShouldEqual, 2)
			})
		})

		Convey("When both inputs are empty", func() {
			So(merge.Members(nil, nil, table), ShouldBeEmpty)
		})

		Convey("When ordering matters", func() {
			coins := []model.ContributionRecord{
				record("first", 1, "img-1"),
				record("second", 1, "img-1"),
			}
			activity := []model.ContributionRecord{
				record("second", 1, "img-2"),
				record("third", 1, "img-2"),
			}

			out := merge.Members(coins, activity, table)

			Convey("Then output follows first appearance, coins first", func() {
				So(len(out), ShouldEqual, 3)
				So(out[0].MemberID, ShouldEqual, "first")
				So(out[1].MemberID, ShouldEqual, "second")
				So(out[2].MemberID, ShouldEqual, "third")
			})
		})
	})
}

func TestFilterByTier(t *testing.T) {
	Convey("Given merged member records", t, func() {
		members := []model.MemberRecord{
			{MemberID: "a", Tier: "L1"},
			{MemberID: "b", Tier: "L2"},
			{MemberID: "c", Tier: "L1"},
		}

		Convey("When filtering by a tier label", func() {
			out := merge.FilterByTier(members, "L1")

			Convey("Then only members of that tier remain", func() {
				So(len(out), ShouldEqual, 2)
				So(out[0].MemberID, ShouldEqual, "a")
				So(out[1].MemberID, ShouldEqual, "c")
			})
		})

		Convey("When the label is empty", func() {
			So(merge.FilterByTier(members, ""), ShouldResemble, members)
		})

		Convey("When the label matches nothing", func() {
			So(merge.FilterByTier(members, "L9"), ShouldBeEmpty)
		})
	})
}
