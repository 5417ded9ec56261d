package expiry

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Normalize", func() {
	It("lowercases", func() {
		Expect(Normalize("BEST BEFORE")).To(Equal("best before"))
	})

	It("strips diacritics", func() {
		Expect(Normalize("À CONSOMMER DE PRÉFÉRENCE")).To(Equal("a consommer de preference"))
		Expect(Normalize("ç")).To(Equal("c"))
		Expect(Normalize("DÉCEMBRE")).To(Equal("decembre"))
		Expect(Normalize("März")).To(Equal("marz"))
	})

	It("passes unknown characters through", func() {
		Expect(Normalize("lot#42 • 19/11")).To(Equal("lot#42 • 19/11"))
	})

	It("is idempotent", func() {
		inputs := []string{"É Ç à ü", "best before 19/11/2024", "消費期限"}
		for _, in := range inputs {
			once := Normalize(in)
			Expect(Normalize(once)).To(Equal(once))
		}
	})
})

var _ = Describe("ContainsExpiryKeyword", func() {
	It("matches phrases in every supported language", func() {
		for _, text := range []string{
			"A consommer de préférence avant le",
			"BEST BEFORE 2024",
			"Mindestens haltbar bis",
			"fecha de CADUCIDAD",
			"da consumarsi preferibilmente entro",
			"consumir de preferência antes",
			"ten minste houdbaar tot",
			"DLC 19/11",
		} {
			Expect(ContainsExpiryKeyword(text)).To(BeTrue(), "expected keyword in %q", text)
		}
	})

	It("accepts already-normalized input", func() {
		Expect(ContainsExpiryKeyword("best before")).To(BeTrue())
	})

	It("reports false when no phrase occurs", func() {
		Expect(ContainsExpiryKeyword("ingredients: water, sugar")).To(BeFalse())
		Expect(ContainsExpiryKeyword("")).To(BeFalse())
	})
})

var _ = Describe("monthNumber", func() {
	It("resolves full names and abbreviations to the same month", func() {
		for _, token := range []string{"november", "novembre", "noviembre", "nov"} {
			m, ok := monthNumber(token)
			Expect(ok).To(BeTrue())
			Expect(m).To(Equal(11))
		}
	})

	It("falls back to the three-letter prefix", func() {
		m, ok := monthNumber("sept")
		Expect(ok).To(BeTrue())
		Expect(m).To(Equal(9))

		m, ok = monthNumber("oktober")
		Expect(ok).To(BeTrue())
		Expect(m).To(Equal(10))
	})

	It("rejects tokens that are not months", func() {
		for _, token := range []string{"batch", "lot", "no"} {
			_, ok := monthNumber(token)
			Expect(ok).To(BeFalse())
		}
	})
})
