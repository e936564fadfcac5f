package extraction

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// mockExtractor is a mock implementation of Extractor
type mockExtractor struct {
	items      []RawItem
	extractErr error
	calls      int
}

func (m *mockExtractor) ExtractItems(ctx context.Context, messages []string) ([]RawItem, error) {
	m.calls++
	if m.extractErr != nil {
		return nil, m.extractErr
	}
	return m.items, nil
}

func (m *mockExtractor) Close() error {
	return nil
}

var _ = Describe("Parser", func() {
	var (
		extractor *mockExtractor
		parser    *Parser
		messages  []string
		items     []LineItem
	)

	BeforeEach(func() {
		extractor = &mockExtractor{}
		parser = NewParser(extractor)
		messages = []string{"I want 2 Margherita Pizza", "also 1 Coke", "Margherita Pizza again, 1 more"}
	})

	JustBeforeEach(func() {
		items = parser.ParseChats(context.Background(), messages)
	})

	When("the extractor returns items", func() {
		BeforeEach(func() {
			extractor.items = []RawItem{
				{Item: "Margherita Pizza", Quantity: 2, Price: 300},
				{Item: "Coke", Quantity: 1, Price: 50},
				{Item: "Margherita Pizza", Quantity: 1, Price: 300},
			}
		})

		It("should return the deduplicated AI result", func() {
			Expect(items).To(Equal([]LineItem{
				{Name: "Margherita Pizza", Quantity: 3, UnitPrice: 300},
				{Name: "Coke", Quantity: 1, UnitPrice: 50},
			}))
		})

		It("should not consult the fallback", func() {
			Expect(extractor.calls).To(Equal(1))
		})
	})

	When("the extractor returns an empty result", func() {
		BeforeEach(func() {
			extractor.items = nil
		})

		It("should match the deduplicated regex fallback", func() {
			Expect(items).To(Equal(Dedupe(ExtractViaRegex(messages))))
		})

		It("should still return something", func() {
			Expect(items).NotTo(BeEmpty())
		})
	})

	When("the extractor fails", func() {
		BeforeEach(func() {
			extractor.extractErr = errors.New("rate limited")
		})

		It("should match the deduplicated regex fallback", func() {
			Expect(items).To(Equal(Dedupe(ExtractViaRegex(messages))))
		})
	})

	When("no extractor is configured", func() {
		BeforeEach(func() {
			parser = NewParser(nil)
		})

		It("should go straight to the fallback", func() {
			Expect(items).To(Equal(Dedupe(ExtractViaRegex(messages))))
		})
	})
})
