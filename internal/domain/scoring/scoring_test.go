package scoring_test

import (
	"testing"

	scoring "github.com/okian/winnerpicker/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTieredAllocator_Entries(t *testing.T) {
	Convey("Given a tiered allocator with default tiers", t, func() {
		a := scoring.NewTieredAllocator()

		Convey("When the total is within the linear tier", func() {
			Convey("Then every dollar should be one entry", func() {
				for amount := int64(0); amount <= 50; amount++ {
					So(a.Entries(amount), ShouldEqual, amount)
				}
			})
		})

		Convey("When the total is above the threshold", func() {
			cases := map[int64]int64{
				51:   50,
				52:   51,
				53:   51,
				55:   52,
				100:  75,
				150:  100,
				1050: 550,
			}

			Convey("Then extra dollars should count at half rate rounded down", func() {
				for amount, want := range cases {
					So(a.Entries(amount), ShouldEqual, want)
				}
				for amount := int64(51); amount <= 500; amount++ {
					So(a.Entries(amount), ShouldEqual, (amount-50)/2+50)
				}
			})
		})

		Convey("When the total is zero or negative", func() {
			Convey("Then there should be no entries", func() {
				So(a.Entries(0), ShouldEqual, 0)
				So(a.Entries(-1), ShouldEqual, 0)
				So(a.Entries(-100), ShouldEqual, 0)
			})
		})

		Convey("Then the curve should never decrease", func() {
			prev := a.Entries(0)
			for amount := int64(1); amount <= 1000; amount++ {
				cur := a.Entries(amount)
				So(cur, ShouldBeGreaterThanOrEqualTo, prev)
				prev = cur
			}
		})
	})
}

func TestTieredAllocator_Options(t *testing.T) {
	Convey("Given allocator options", t, func() {
		Convey("When custom tiers are configured", func() {
			a := scoring.NewTieredAllocator(scoring.WithThreshold(20), scoring.WithDivisor(4))

			Convey("Then the custom tiers should apply", func() {
				So(a.Threshold(), ShouldEqual, 20)
				So(a.Divisor(), ShouldEqual, 4)
				So(a.Entries(20), ShouldEqual, 20)
				So(a.Entries(23), ShouldEqual, 20)
				So(a.Entries(24), ShouldEqual, 21)
			})
		})

		Convey("When non-positive tiers are configured", func() {
			a := scoring.NewTieredAllocator(scoring.WithThreshold(0), scoring.WithDivisor(-3))

			Convey("Then the defaults should be kept", func() {
				So(a.Threshold(), ShouldEqual, 50)
				So(a.Divisor(), ShouldEqual, 2)
			})
		})
	})
}

func TestAllocate(t *testing.T) {
	Convey("Given donor totals", t, func() {
		totals := map[string]int64{"a@x.com": 55, "b@x.com": 10, "c@x.com": 0}

		Convey("When allocating entries", func() {
			entries := scoring.Allocate(scoring.NewTieredAllocator(), totals)

			Convey("Then each donor should be allocated independently", func() {
				So(entries, ShouldResemble, map[string]int64{"a@x.com": 52, "b@x.com": 10, "c@x.com": 0})
			})
		})
	})
}
