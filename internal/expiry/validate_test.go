package expiry

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("expandYear", func() {
	It("expands two-digit years around the pivot", func() {
		Expect(expandYear(30)).To(Equal(2030))
		Expect(expandYear(0)).To(Equal(2000))
		Expect(expandYear(49)).To(Equal(2049))
		Expect(expandYear(50)).To(Equal(1950))
		Expect(expandYear(75)).To(Equal(1975))
	})

	It("leaves full years alone", func() {
		Expect(expandYear(2026)).To(Equal(2026))
	})
})

var _ = Describe("canonicalDate", func() {
	It("accepts real calendar dates", func() {
		d, ok := canonicalDate(29, 2, 2024)
		Expect(ok).To(BeTrue())
		Expect(d.Format("2006-01-02")).To(Equal("2024-02-29"))
	})

	It("rejects days that do not exist", func() {
		for _, triple := range [][3]int{{31, 4, 2026}, {29, 2, 2023}, {32, 1, 2026}, {0, 1, 2026}} {
			_, ok := canonicalDate(triple[0], triple[1], triple[2])
			Expect(ok).To(BeFalse(), "expected %v to be rejected", triple)
		}
	})

	It("rejects months and years out of range", func() {
		_, ok := canonicalDate(1, 13, 2026)
		Expect(ok).To(BeFalse())
		_, ok = canonicalDate(1, 1, 1999)
		Expect(ok).To(BeFalse())
		_, ok = canonicalDate(1, 1, 2101)
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("monthEndDate", func() {
	It("resolves to the last day of the month", func() {
		d, ok := monthEndDate(10, 2022)
		Expect(ok).To(BeTrue())
		Expect(d.Format("2006-01-02")).To(Equal("2022-10-31"))
	})

	It("handles December", func() {
		d, ok := monthEndDate(12, 2026)
		Expect(ok).To(BeTrue())
		Expect(d.Format("2006-01-02")).To(Equal("2026-12-31"))
	})

	It("accounts for leap years on February", func() {
		d, ok := monthEndDate(2, 2024)
		Expect(ok).To(BeTrue())
		Expect(d.Format("2006-01-02")).To(Equal("2024-02-29"))

		d, ok = monthEndDate(2, 2023)
		Expect(ok).To(BeTrue())
		Expect(d.Format("2006-01-02")).To(Equal("2023-02-28"))
	})
})

var _ = Describe("plausible", func() {
	// Reference clock: today is 2025-06-01. With a two-year past window the
	// bounds are 2023-06-02 (730 days back) and 2035-05-30 (3650 days ahead).
	var engine *Engine

	BeforeEach(func() {
		engine = newTestEngine(2)
	})

	day := func(value string) time.Time {
		t, err := time.Parse("2006-01-02", value)
		Expect(err).NotTo(HaveOccurred())
		return t
	}

	It("accepts today", func() {
		Expect(engine.plausible(day("2025-06-01"))).To(BeTrue())
	})

	It("accepts the earliest allowed date and rejects the day before", func() {
		Expect(engine.plausible(day("2023-06-02"))).To(BeTrue())
		Expect(engine.plausible(day("2023-06-01"))).To(BeFalse())
		Expect(engine.plausible(day("2022-05-31"))).To(BeFalse())
	})

	It("accepts the latest allowed date and rejects the day after", func() {
		Expect(engine.plausible(day("2035-05-30"))).To(BeTrue())
		Expect(engine.plausible(day("2035-05-31"))).To(BeFalse())
		Expect(engine.plausible(day("2036-06-02"))).To(BeFalse())
	})

	It("widens with a larger past window", func() {
		wide := newTestEngine(10)
		Expect(wide.plausible(day("2016-01-01"))).To(BeTrue())
		Expect(wide.plausible(day("2015-06-01"))).To(BeFalse())
	})
})
