package parse_test

import (
	"testing"

	parse "github.com/okian/tribute/internal/domain/parse"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseBilingualJSON(t *testing.T) {
	Convey("Given a parser", t, func() {
		p := parse.New()

		Convey("When the reply is a bilingual coin array", func() {
			raw := `[{"會員ID":"小明","金幣捐獻":1200},{"會員ID":"阿華","金幣捐獻":300}]`
			out := p.Parse(raw)

			Convey("Then one extraction per element is returned in order", func() {
				So(len(out), ShouldEqual, 2)
				So(out[0].MemberID, ShouldEqual, "小明")
				So(out[0].Contribution, ShouldEqual, 1200)
				So(out[1].MemberID, ShouldEqual, "阿華")
				So(out[1].Contribution, ShouldEqual, 300)
			})
		})

		Convey("When the reply is a bilingual activity array", func() {
			raw := `[{"會員ID":"小明","活躍貢獻":4500}]`
			out := p.Parse(raw)

			Convey("Then the activity value is used", func() {
				So(len(out), ShouldEqual, 1)
				So(out[0].Contribution, ShouldEqual, 4500)
			})
		})

		Convey("When an element carries both keys", func() {
			raw := `[{"會員ID":"小明","金幣捐獻":100,"活躍貢獻":999}]`
			out := p.Parse(raw)

			Convey("Then the coin key wins", func() {
				So(len(out), ShouldEqual, 1)
				So(out[0].Contribution, ShouldEqual, 100)
			})
		})

		Convey("When values are strings with a k suffix", func() {
			raw := `[{"會員ID":"小明","金幣捐獻":"5.5k"}]`
			out := p.Parse(raw)

			Convey("Then the suffix multiplies by 1000", func() {
				So(len(out), ShouldEqual, 1)
				So(out[0].Contribution, ShouldEqual, 5500)
			})
		})

		Convey("When a value is negative", func() {
			raw := `[{"會員ID":"小明","金幣捐獻":-5}]`
			out := p.Parse(raw)

			Convey("Then the contribution is clamped to zero", func() {
				So(len(out), ShouldEqual, 1)
				So(out[0].Contribution, ShouldEqual, 0)
			})
		})
	})
}

func TestParseFenceStripping(t *testing.T) {
	Convey("Given a parser and a bilingual array", t, func() {
		p := parse.New()
		body := `[{"會員ID":"小明","金幣捐獻":1200}]`
		want := p.Parse(body)

		Convey("When the body is wrapped in a json fence", func() {
			out := p.Parse("```json\n" + body + "\n```")

			Convey("Then the result matches the unfenced parse", func() {
				So(out, ShouldResemble, want)
			})
		})

		Convey("When the body is wrapped in a bare fence", func() {
			out := p.Parse("```\n" + body + "\n```")

			Convey("Then the result matches the unfenced parse", func() {
				So(out, ShouldResemble, want)
			})
		})
	})
}

func TestParseTargetShapePassthrough(t *testing.T) {
	Convey("Given a parser", t, func() {
		p := parse.New()

		Convey("When the reply is already in the target shape", func() {
			raw := `[{"memberId":"alice","contribution":1500},{"memberId":"bob","contribution":0}]`
			out := p.Parse(raw)

			Convey("Then it is accepted after validation", func() {
				So(len(out), ShouldEqual, 2)
				So(out[0].MemberID, ShouldEqual, "alice")
				So(out[0].Contribution, ShouldEqual, 1500)
			})
		})

		Convey("When the target-shaped reply fails validation", func() {
			raw := `[{"memberId":"","contribution":1500}]`
			out := p.Parse(raw)

			Convey("Then nothing is extracted", func() {
				So(out, ShouldBeEmpty)
			})
		})

		Convey("When the JSON is an array of scalars", func() {
			out := p.Parse(`[1,2,3]`)

			Convey("Then nothing is extracted", func() {
				So(out, ShouldBeEmpty)
			})
		})
	})
}

func TestParseTextPatterns(t *testing.T) {
	Convey("Given a parser", t, func() {
		p := parse.New()

		Convey("When the reply is prose in the primary pattern", func() {
			raw := "會員ID：小明\n金幣捐獻：1k\n會員ID：阿華\n活躍貢獻：250"
			out := p.Parse(raw)

			Convey("Then every match is extracted with the k rule applied", func() {
				So(len(out), ShouldEqual, 2)
				So(out[0].MemberID, ShouldEqual, "小明")
				So(out[0].Contribution, ShouldEqual, 1000)
				So(out[1].MemberID, ShouldEqual, "阿華")
				So(out[1].Contribution, ShouldEqual, 250)
			})
		})

		Convey("When the reply uses ASCII colons and an uppercase K", func() {
			raw := "會員ID: bob\n金幣捐獻: 5.5K\n"
			out := p.Parse(raw)

			Convey("Then the suffix still multiplies by 1000", func() {
				So(len(out), ShouldEqual, 1)
				So(out[0].MemberID, ShouldEqual, "bob")
				So(out[0].Contribution, ShouldEqual, 5500)
			})
		})

		Convey("When only loose label:value lines are present", func() {
			raw := "小明：1200\n阿華：3.5k"
			out := p.Parse(raw)

			Convey("Then the loose pattern extracts them", func() {
				So(len(out), ShouldEqual, 2)
				So(out[0].MemberID, ShouldEqual, "小明")
				So(out[0].Contribution, ShouldEqual, 1200)
				So(out[1].Contribution, ShouldEqual, 3500)
			})
		})

		Convey("When a matched value cannot be coerced", func() {
			raw := "會員ID：bob\n金幣捐獻：1.2.3k"
			out := p.Parse(raw)

			Convey("Then the row is kept with contribution zero", func() {
				So(len(out), ShouldEqual, 1)
				So(out[0].MemberID, ShouldEqual, "bob")
				So(out[0].Contribution, ShouldEqual, 0)
			})
		})

		Convey("When drop-unparsable is enabled", func() {
			dropping := parse.New(parse.WithDropUnparsable(true))
			raw := "會員ID：bob\n金幣捐獻：1.2.3k"
			out := dropping.Parse(raw)

			Convey("Then no zero row for the member survives", func() {
				for _, e := range out {
					So(e.MemberID, ShouldNotEqual, "bob")
				}
			})
		})
	})
}

func TestParseDegenerateInput(t *testing.T) {
	Convey("Given a parser", t, func() {
		p := parse.New()

		Convey("When the reply is empty", func() {
			So(p.Parse(""), ShouldBeEmpty)
		})

		Convey("When the reply matches nothing", func() {
			So(p.Parse("not json at all"), ShouldBeEmpty)
		})

		Convey("When the reply is a JSON object", func() {
			So(p.Parse(`{"會員ID":"小明"}`), ShouldBeEmpty)
		})

		Convey("When the reply is an empty JSON array", func() {
			So(p.Parse(`[]`), ShouldBeEmpty)
		})
	})
}
