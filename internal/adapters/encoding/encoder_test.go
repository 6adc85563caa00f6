package encoding_test

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	encoding "github.com/okian/tribute/internal/adapters/encoding"
	. "github.com/smartystreets/goconvey/convey"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestEncode(t *testing.T) {
	Convey("Given image bytes", t, func() {
		payload := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}

		Convey("When encoding from a reader", func() {
			out, err := encoding.Encode(strings.NewReader(string(payload)))

			Convey("Then the standard base64 body is returned", func() {
				So(err, ShouldBeNil)
				So(out, ShouldEqual, base64.StdEncoding.EncodeToString(payload))
			})
		})

		Convey("When encoding from memory", func() {
			out, err := encoding.EncodeBytes(payload)

			So(err, ShouldBeNil)
			So(out, ShouldEqual, base64.StdEncoding.EncodeToString(payload))
		})

		Convey("When the reader fails", func() {
			_, err := encoding.Encode(failingReader{})

			Convey("Then a read error is surfaced", func() {
				So(errors.Is(err, encoding.ErrReadImage), ShouldBeTrue)
			})
		})

		Convey("When the stream is empty", func() {
			_, err := encoding.Encode(strings.NewReader(""))

			So(errors.Is(err, encoding.ErrEmptyImage), ShouldBeTrue)
		})
	})
}

func TestStripDataURI(t *testing.T) {
	Convey("Given encoded payloads", t, func() {
		Convey("When a data URI prefix is present", func() {
			So(encoding.StripDataURI("data:image/jpeg;base64,QUJD"), ShouldEqual, "QUJD")
		})

		Convey("When the payload is already bare", func() {
			So(encoding.StripDataURI("QUJD"), ShouldEqual, "QUJD")
		})

		Convey("When the prefix is malformed", func() {
			So(encoding.StripDataURI("data:image/jpeg"), ShouldEqual, "data:image/jpeg")
		})
	})
}
