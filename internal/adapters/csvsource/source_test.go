package csvsource_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/winnerpicker/internal/adapters/csvsource"
	"github.com/okian/winnerpicker/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

const tiltifyExport = `1001,30.00,2024-11-02,a@x.com,Alice,Go team!
1002,25.00,2024-11-02,A@X.com ,Alice A.,

1003,"1,000.00",2024-11-03,b@x.com,"Bob, Jr.",big one
`

func TestSource_Read(t *testing.T) {
	Convey("Given a CSV source with default columns", t, func() {
		src := csvsource.New()
		ctx := context.Background()

		Convey("When reading a Tiltify-style export", func() {
			recs, err := src.Read(ctx, strings.NewReader(tiltifyExport))

			Convey("Then every non-blank row should become a record", func() {
				So(err, ShouldBeNil)
				So(recs, ShouldResemble, []model.DonationRecord{
					{Row: 1, Amount: "30.00", Identity: "a@x.com", Name: "Alice"},
					{Row: 2, Amount: "25.00", Identity: "A@X.com ", Name: "Alice A."},
					{Row: 4, Amount: "1,000.00", Identity: "b@x.com", Name: "Bob, Jr."},
				})
			})
		})

		Convey("When a row is too short", func() {
			_, err := src.Read(ctx, strings.NewReader("1,2,3,a@x.com,A\n1,2,3\n"))

			Convey("Then it should fail naming the line", func() {
				So(errors.Is(err, csvsource.ErrMalformedRow), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "line 2")
			})
		})

		Convey("When a quoted field is broken", func() {
			_, err := src.Read(ctx, strings.NewReader("1,\"2,3,a@x.com,A\n"))

			Convey("Then it should fail as a malformed row", func() {
				So(errors.Is(err, csvsource.ErrMalformedRow), ShouldBeTrue)
			})
		})

		Convey("When the input is empty", func() {
			recs, err := src.Read(ctx, strings.NewReader(""))

			Convey("Then there should be no records", func() {
				So(err, ShouldBeNil)
				So(recs, ShouldBeEmpty)
			})
		})

		Convey("When the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := src.Read(cctx, strings.NewReader(tiltifyExport))

			Convey("Then it should stop with the context error", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})
	})
}

func TestSource_Options(t *testing.T) {
	Convey("Given a semicolon export with a header and a BOM", t, func() {
		input := "\ufeffemail;amount;name\nc@x.com;12.50;Cara\n"
		src := csvsource.New(
			csvsource.WithColumns(1, 0, 2),
			csvsource.WithDelimiter(';'),
			csvsource.WithSkipHeader(true),
		)

		Convey("When reading it", func() {
			recs, err := src.Read(context.Background(), strings.NewReader(input))

			Convey("Then the header should be skipped and columns remapped", func() {
				So(err, ShouldBeNil)
				So(recs, ShouldResemble, []model.DonationRecord{
					{Row: 2, Amount: "12.50", Identity: "c@x.com", Name: "Cara"},
				})
			})
		})
	})

	Convey("Given a headerless export whose first cell carries a BOM", t, func() {
		src := csvsource.New(csvsource.WithColumns(1, 0, 2))
		recs, err := src.Read(context.Background(), strings.NewReader("\ufeffd@x.com,5,Dee\n"))

		Convey("Then the BOM should be stripped from the first field", func() {
			So(err, ShouldBeNil)
			So(recs[0].Identity, ShouldEqual, "d@x.com")
		})
	})
}

func TestSource_ReadFile(t *testing.T) {
	Convey("Given a ledger file on disk", t, func() {
		path := filepath.Join(t.TempDir(), "tiltify.csv")
		So(os.WriteFile(path, []byte(tiltifyExport), 0o600), ShouldBeNil)

		Convey("When reading the file", func() {
			recs, err := csvsource.New().ReadFile(context.Background(), path)

			Convey("Then it should return the records", func() {
				So(err, ShouldBeNil)
				So(len(recs), ShouldEqual, 3)
			})
		})

		Convey("When the file does not exist", func() {
			_, err := csvsource.New().ReadFile(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))

			Convey("Then it should fail with a read error", func() {
				So(errors.Is(err, csvsource.ErrReadLedger), ShouldBeTrue)
				So(errors.Is(err, os.ErrNotExist), ShouldBeTrue)
			})
		})
	})
}
