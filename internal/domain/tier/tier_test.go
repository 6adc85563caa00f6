package tier_test

import (
	"testing"

	tier "github.com/okian/tribute/internal/domain/tier"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClassify(t *testing.T) {
	Convey("Given an ascending three-tier table", t, func() {
		table := tier.Table{
			{Label: "L1", MinCoins: 300, MinActivity: 300},
			{Label: "L2", MinCoins: 1000, MinActivity: 1500},
			{Label: "L3", MinCoins: 3000, MinActivity: 3000},
		}

		Convey("When a member exactly meets the middle tier", func() {
			So(table.Classify(1000, 1500), ShouldEqual, "L2")
		})

		Convey("When a member clears every tier", func() {
			So(table.Classify(5000, 6000), ShouldEqual, "L3")
		})

		Convey("When a member clears none", func() {
			So(table.Classify(50, 50), ShouldEqual, tier.BelowStandard)
		})

		Convey("When one side is below the requirement", func() {
			So(table.Classify(3000, 1500), ShouldEqual, "L2")
			So(table.Classify(400, 5000), ShouldEqual, "L1")
		})
	})

	Convey("Given an empty table", t, func() {
		Convey("Then everyone is below standard", func() {
			So(tier.Table{}.Classify(1_000_000, 1_000_000), ShouldEqual, tier.BelowStandard)
		})
	})

	Convey("Given a table the operator left out of order", t, func() {
		// Evaluation is last-to-first regardless of magnitudes.
		table := tier.Table{
			{Label: "high", MinCoins: 3000, MinActivity: 3000},
			{Label: "low", MinCoins: 100, MinActivity: 100},
		}

		Convey("Then the last matching entry wins as given", func() {
			So(table.Classify(5000, 5000), ShouldEqual, "low")
		})
	})
}

func TestDefaultTable(t *testing.T) {
	Convey("Given the default table", t, func() {
		table := tier.DefaultTable()

		Convey("Then it carries the five stock tiers in ascending order", func() {
			So(len(table), ShouldEqual, 5)
			So(table[0].Label, ShouldEqual, "3普寶")
			So(table[4].Label, ShouldEqual, "至尊")
		})

		Convey("Then classification follows the stock thresholds", func() {
			So(table.Classify(5000, 15000), ShouldEqual, "至尊")
			So(table.Classify(5000, 6000), ShouldEqual, "2稀寶")
			So(table.Classify(300, 300), ShouldEqual, "3普寶")
			So(table.Classify(299, 300), ShouldEqual, tier.BelowStandard)
		})
	})
}

func TestLabelsAndClone(t *testing.T) {
	Convey("Given a table", t, func() {
		table := tier.Table{{Label: "only", MinCoins: 1, MinActivity: 1}}

		Convey("When listing labels", func() {
			labels := table.Labels()

			Convey("Then the sentinel comes first", func() {
				So(labels, ShouldResemble, []string{tier.BelowStandard, "only"})
			})
		})

		Convey("When cloning and mutating the clone", func() {
			clone := table.Clone()
			clone[0].Label = "changed"

			Convey("Then the original is untouched", func() {
				So(table[0].Label, ShouldEqual, "only")
			})
		})
	})
}

func TestCoerceThreshold(t *testing.T) {
	Convey("Given free-text threshold cells", t, func() {
		Convey("When the text is a plain integer", func() {
			n, err := tier.CoerceThreshold(" 1500 ")
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 1500)
		})

		Convey("When the text is junk", func() {
			_, err := tier.CoerceThreshold("lots")
			So(err, ShouldEqual, tier.ErrBadThreshold)
		})

		Convey("When the text is negative", func() {
			_, err := tier.CoerceThreshold("-3")
			So(err, ShouldEqual, tier.ErrBadThreshold)
		})
	})
}
