package ledger_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/okian/winnerpicker/internal/domain/identity"
	"github.com/okian/winnerpicker/internal/domain/ledger"
	"github.com/okian/winnerpicker/internal/domain/model"
	"github.com/okian/winnerpicker/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func rec(amount, id, name string) model.DonationRecord {
	return model.DonationRecord{Amount: amount, Identity: id, Name: name}
}

func TestLedger_Add(t *testing.T) {
	Convey("Given an empty ledger", t, func() {
		l := ledger.New()

		Convey("When adding two records for the same donor", func() {
			So(l.Add(rec("30", "a@x.com", "A")), ShouldBeNil)
			So(l.Add(rec("25", "a@x.com", "A")), ShouldBeNil)

			Convey("Then they should aggregate into one donor", func() {
				So(l.Len(), ShouldEqual, 1)
				So(l.Total("a@x.com"), ShouldEqual, 55)
				So(l.TotalRaised(), ShouldEqual, 55)
			})
		})

		Convey("When identities differ only by case and whitespace", func() {
			So(l.Add(rec("10", "Foo@Bar.com", "Foo")), ShouldBeNil)
			So(l.Add(rec("15", " foo@bar.com ", "Someone Else")), ShouldBeNil)

			Convey("Then they should collapse to one donor keeping the first name", func() {
				So(l.Len(), ShouldEqual, 1)
				d, ok := l.Donor("foo@bar.com")
				So(ok, ShouldBeTrue)
				So(d.DisplayName, ShouldEqual, "Foo")
				So(l.Total("foo@bar.com"), ShouldEqual, 25)
			})
		})

		Convey("When the name has surrounding whitespace", func() {
			So(l.Add(rec("1", "b@x.com", "  Bob  ")), ShouldBeNil)

			Convey("Then the display name should be trimmed", func() {
				d, _ := l.Donor("b@x.com")
				So(d.DisplayName, ShouldEqual, "Bob")
			})
		})

		Convey("When each record rounds on its own", func() {
			// 3 x 0.50 rounds to 3, not round(1.50) = 2.
			for i := 0; i < 3; i++ {
				So(l.Add(rec("0.50", "c@x.com", "C")), ShouldBeNil)
			}

			Convey("Then the total should be the sum of rounded amounts", func() {
				So(l.Total("c@x.com"), ShouldEqual, 3)
			})
		})

		Convey("When a record has a malformed amount", func() {
			err := l.Add(model.DonationRecord{Row: 7, Amount: "abc", Identity: "a@x.com", Name: "A"})

			Convey("Then it should fail and leave the ledger untouched", func() {
				So(errors.Is(err, ledger.ErrInvalidAmount), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "row 7")
				So(l.Len(), ShouldEqual, 0)
			})
		})

		Convey("When a record has a malformed identity", func() {
			err := l.Add(rec("10", "not-an-email", "X"))

			Convey("Then it should fail with an invalid identity error", func() {
				So(errors.Is(err, identity.ErrInvalidIdentity), ShouldBeTrue)
				So(l.Len(), ShouldEqual, 0)
			})
		})

		Convey("When adding a batch that contains a bad record", func() {
			err := l.AddAll([]model.DonationRecord{
				rec("5", "a@x.com", "A"),
				rec("oops", "b@x.com", "B"),
				rec("5", "c@x.com", "C"),
			})

			Convey("Then it should stop at the bad record", func() {
				So(errors.Is(err, ledger.ErrInvalidAmount), ShouldBeTrue)
				So(l.Len(), ShouldEqual, 1)
				_, ok := l.Donor("c@x.com")
				So(ok, ShouldBeFalse)
			})
		})
	})
}

func TestLedger_Views(t *testing.T) {
	Convey("Given a ledger with several donors", t, func() {
		l := ledger.New()
		So(l.AddAll([]model.DonationRecord{
			rec("5", "c@x.com", "C"),
			rec("10", "a@x.com", "A"),
			rec("20", "b@x.com", "B"),
			rec("1", "c@x.com", "C"),
		}), ShouldBeNil)

		Convey("Then donors should come back in first-seen order", func() {
			donors := l.Donors()
			So(len(donors), ShouldEqual, 3)
			So(donors[0].Identity, ShouldEqual, "c@x.com")
			So(donors[1].Identity, ShouldEqual, "a@x.com")
			So(donors[2].Identity, ShouldEqual, "b@x.com")
		})

		Convey("Then Totals should be a copy", func() {
			totals := l.Totals()
			So(totals, ShouldResemble, map[string]int64{"a@x.com": 10, "b@x.com": 20, "c@x.com": 6})
			totals["a@x.com"] = 999
			So(l.Total("a@x.com"), ShouldEqual, 10)
		})

		Convey("Then TotalRaised should sum every donor", func() {
			So(l.TotalRaised(), ShouldEqual, 36)
		})
	})
}

func TestLedger_OrderIndependence(t *testing.T) {
	Convey("Given a set of records for repeat donors", t, func() {
		records := []model.DonationRecord{
			rec("30", "a@x.com", "A"),
			rec("25", "A@X.com", "A"),
			rec("12.50", "b@x.com", "B"),
			rec("0.5", "b@x.com", "B"),
			rec("100", "c@x.com", "C"),
			rec("49.49", " C@x.com", "C"),
			rec("7", "d@x.com", "D"),
		}
		base := ledger.New()
		So(base.AddAll(records), ShouldBeNil)

		Convey("When the records are permuted", func() {
			rng := rand.New(rand.NewSource(7))

			alloc := scoring.NewTieredAllocator()
			baseEntries := scoring.Allocate(alloc, base.Totals())

			Convey("Then the totals and entries should not change", func() {
				So(baseEntries, ShouldResemble, map[string]int64{
					"a@x.com": 52, "b@x.com": 14, "c@x.com": 99, "d@x.com": 7,
				})
				for trial := 0; trial < 20; trial++ {
					shuffled := make([]model.DonationRecord, len(records))
					copy(shuffled, records)
					rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

					l := ledger.New()
					So(l.AddAll(shuffled), ShouldBeNil)
					So(l.Totals(), ShouldResemble, base.Totals())
					So(scoring.Allocate(alloc, l.Totals()), ShouldResemble, baseEntries)
				}
			})
		})
	})
}

func TestLedger_Merge(t *testing.T) {
	Convey("Given two ledger shards", t, func() {
		a := ledger.New()
		So(a.AddAll([]model.DonationRecord{rec("10", "a@x.com", "A"), rec("5", "b@x.com", "B")}), ShouldBeNil)
		b := ledger.New()
		So(b.AddAll([]model.DonationRecord{rec("7", "b@x.com", "Bee"), rec("3", "c@x.com", "C")}), ShouldBeNil)

		Convey("When merging b into a", func() {
			So(a.Merge(b), ShouldBeNil)

			Convey("Then totals should be summed per donor", func() {
				So(a.Totals(), ShouldResemble, map[string]int64{"a@x.com": 10, "b@x.com": 12, "c@x.com": 3})
				So(a.Len(), ShouldEqual, 3)
			})

			Convey("Then the receiver should keep its display names", func() {
				d, _ := a.Donor("b@x.com")
				So(d.DisplayName, ShouldEqual, "B")
			})
		})

		Convey("When merging in either direction", func() {
			ab := ledger.New()
			So(ab.Merge(a), ShouldBeNil)
			So(ab.Merge(b), ShouldBeNil)
			ba := ledger.New()
			So(ba.Merge(b), ShouldBeNil)
			So(ba.Merge(a), ShouldBeNil)

			Convey("Then the totals should match", func() {
				So(ab.Totals(), ShouldResemble, ba.Totals())
				So(ab.TotalRaised(), ShouldEqual, 25)
				So(ba.TotalRaised(), ShouldEqual, 25)
			})
		})
	})
}
