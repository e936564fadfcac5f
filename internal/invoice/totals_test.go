package invoice

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/zombor/chat-invoice/internal/extraction"
)

var _ = Describe("ComputeTotals", func() {
	var (
		items   []extraction.LineItem
		taxRate float64
		totals  Totals
	)

	BeforeEach(func() {
		taxRate = 0.18
	})

	JustBeforeEach(func() {
		totals = ComputeTotals(items, taxRate)
	})

	When("computing totals for a simple order", func() {
		BeforeEach(func() {
			items = []extraction.LineItem{
				{Name: "Pizza", Quantity: 2, UnitPrice: 100},
				{Name: "Coke", Quantity: 1, UnitPrice: 50},
			}
		})

		It("should compute the subtotal", func() {
			Expect(totals.Subtotal).To(Equal(250.00))
		})

		It("should compute the tax amount", func() {
			Expect(totals.TaxAmount).To(Equal(45.00))
		})

		It("should compute the grand total", func() {
			Expect(totals.GrandTotal).To(Equal(295.00))
		})

		It("should report the display percentage", func() {
			Expect(totals.TaxPercent).To(Equal(18.0))
		})
	})

	When("computing totals for the deduplicated pizza order", func() {
		BeforeEach(func() {
			items = []extraction.LineItem{
				{Name: "Margherita Pizza", Quantity: 3, UnitPrice: 300},
				{Name: "Coke", Quantity: 1, UnitPrice: 50},
			}
		})

		It("should match the expected breakdown", func() {
			Expect(totals.Subtotal).To(Equal(950.00))
			Expect(totals.TaxAmount).To(Equal(171.00))
			Expect(totals.GrandTotal).To(Equal(1121.00))
		})
	})

	When("unit prices carry fractional paise", func() {
		BeforeEach(func() {
			items = []extraction.LineItem{
				{Name: "Coke", Quantity: 3, UnitPrice: 83.33},
				{Name: "Pizza", Quantity: 2, UnitPrice: 125.00},
			}
		})

		It("should round only at the point of output", func() {
			// 3*83.33 + 2*125 = 499.99 exactly, no accumulation drift
			Expect(totals.Subtotal).To(Equal(499.99))
			Expect(totals.TaxAmount).To(Equal(90.00))
			Expect(totals.GrandTotal).To(Equal(589.99))
		})
	})

	When("there are no items", func() {
		BeforeEach(func() {
			items = nil
		})

		It("should return all zeros", func() {
			Expect(totals.Subtotal).To(BeZero())
			Expect(totals.TaxAmount).To(BeZero())
			Expect(totals.GrandTotal).To(BeZero())
		})
	})
})
