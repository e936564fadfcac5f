package extraction

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Dedupe", func() {
	var (
		raw   []RawItem
		items []LineItem
	)

	JustBeforeEach(func() {
		items = Dedupe(raw)
	})

	When("the same item appears in multiple entries", func() {
		BeforeEach(func() {
			raw = []RawItem{
				{Item: "Margherita Pizza", Quantity: 2, Price: 300},
				{Item: "Coke", Quantity: 1, Price: 50},
				{Item: "Margherita Pizza", Quantity: 1, Price: 300},
			}
		})

		It("should merge duplicates into one entry per name", func() {
			Expect(items).To(HaveLen(2))
		})

		It("should sum the quantities", func() {
			Expect(items[0]).To(Equal(LineItem{Name: "Margherita Pizza", Quantity: 3, UnitPrice: 300}))
		})

		It("should preserve first-seen order", func() {
			Expect(items[0].Name).To(Equal("Margherita Pizza"))
			Expect(items[1].Name).To(Equal("Coke"))
		})
	})

	When("names differ only in casing and whitespace", func() {
		BeforeEach(func() {
			raw = []RawItem{
				{Item: "  margherita pizza ", Quantity: 1, Price: 300},
				{Item: "MARGHERITA PIZZA", Quantity: 2, Price: 300},
			}
		})

		It("should collapse them to one normalized entry", func() {
			Expect(items).To(HaveLen(1))
			Expect(items[0].Name).To(Equal("Margherita Pizza"))
			Expect(items[0].Quantity).To(Equal(3))
		})
	})

	When("a duplicate carries a zero price", func() {
		BeforeEach(func() {
			raw = []RawItem{
				{Item: "Pizza", Quantity: 1, Price: 120},
				{Item: "Pizza", Quantity: 1, Price: 0},
			}
		})

		It("should keep the previously known positive price", func() {
			Expect(items[0].UnitPrice).To(Equal(120.0))
		})
	})

	When("a duplicate carries a new positive price", func() {
		BeforeEach(func() {
			raw = []RawItem{
				{Item: "Pizza", Quantity: 1, Price: 120},
				{Item: "Pizza", Quantity: 1, Price: 150},
			}
		})

		It("should replace the stored price", func() {
			Expect(items[0].UnitPrice).To(Equal(150.0))
		})
	})

	When("entries are malformed", func() {
		BeforeEach(func() {
			raw = []RawItem{
				{Item: "", Quantity: 2, Price: 10},
				{Item: "Tea", Quantity: 0, Price: -5},
			}
		})

		It("should skip nameless entries", func() {
			Expect(items).To(HaveLen(1))
		})

		It("should coerce quantity and price to safe defaults", func() {
			Expect(items[0]).To(Equal(LineItem{Name: "Tea", Quantity: 1, UnitPrice: 0}))
		})
	})

	When("applied twice", func() {
		BeforeEach(func() {
			raw = []RawItem{
				{Item: "pizza", Quantity: 2, Price: 100},
				{Item: "Pizza", Quantity: 1, Price: 0},
				{Item: "Coke", Quantity: 3, Price: 40},
			}
		})

		It("should be idempotent", func() {
			again := make([]RawItem, 0, len(items))
			for _, item := range items {
				again = append(again, RawItem{Item: item.Name, Quantity: item.Quantity, Price: item.UnitPrice})
			}
			Expect(Dedupe(again)).To(Equal(items))
		})
	})
})
