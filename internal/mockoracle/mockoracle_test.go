package mockoracle_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/tribute/internal/domain/parse"
	"github.com/okian/tribute/internal/mockoracle"
	"github.com/okian/tribute/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestGenerator(t *testing.T) {
	Convey("Given a seeded generator", t, func() {
		gen := mockoracle.NewGenerator(
			mockoracle.WithMembers(5),
			mockoracle.WithFormat(mockoracle.FormatJSON),
			mockoracle.WithSeed(42),
		)

		Convey("When rendering a coins reply", func() {
			reply := gen.Reply(true)

			Convey("Then the pipeline parser extracts every member", func() {
				records := parse.New().Parse(reply)
				So(len(records), ShouldEqual, 5)
				So(records[0].MemberID, ShouldNotBeEmpty)
			})

			Convey("And the reply uses the coin column key", func() {
				So(reply, ShouldContainSubstring, "金幣捐獻")
			})
		})

		Convey("When rendering an activity reply", func() {
			reply := gen.Reply(false)
			So(reply, ShouldContainSubstring, "活躍貢獻")
		})
	})

	Convey("Given the fenced and text formats", t, func() {
		Convey("A fenced reply still parses", func() {
			gen := mockoracle.NewGenerator(
				mockoracle.WithMembers(3),
				mockoracle.WithFormat(mockoracle.FormatFenced),
				mockoracle.WithSeed(7),
			)
			reply := gen.Reply(true)
			So(strings.HasPrefix(reply, "```json"), ShouldBeTrue)
			So(len(parse.New().Parse(reply)), ShouldEqual, 3)
		})

		Convey("A text reply still parses", func() {
			gen := mockoracle.NewGenerator(
				mockoracle.WithMembers(3),
				mockoracle.WithFormat(mockoracle.FormatText),
				mockoracle.WithSeed(7),
			)
			reply := gen.Reply(false)
			So(len(parse.New().Parse(reply)), ShouldEqual, 3)
		})
	})
}

func TestHandler(t *testing.T) {
	Convey("Given a registered mock oracle", t, func() {
		mux := http.NewServeMux()
		handler := mockoracle.NewHandler(mockoracle.NewGenerator(
			mockoracle.WithMembers(2),
			mockoracle.WithFormat(mockoracle.FormatJSON),
			mockoracle.WithSeed(1),
		))
		handler.Register(mux)

		Convey("When posting a coin recognition request", func() {
			body := `{"model":"gemini-2.0-flash","messages":[{"role":"user","content":[{"type":"text","text":"辨識金幣捐獻排行榜"}]}]}`
			req := httptest.NewRequest(http.MethodPost, "/chat/completions", strings.NewReader(body))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then a chat completion with a coin reply comes back", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, `"choices"`)
				So(rec.Body.String(), ShouldContainSubstring, "金幣捐獻")
			})
		})

		Convey("When posting garbage", func() {
			req := httptest.NewRequest(http.MethodPost, "/chat/completions", strings.NewReader("{"))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When using GET", func() {
			req := httptest.NewRequest(http.MethodGet, "/chat/completions", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}
