package invoice

import (
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("NotificationLog", func() {
	var log *NotificationLog

	BeforeEach(func() {
		log = NewNotificationLog()
	})

	It("should start empty", func() {
		Expect(log.List()).To(BeEmpty())
	})

	It("should preserve append order", func() {
		log.Append(Notification{ID: "inv-1"})
		log.Append(Notification{ID: "inv-2"})

		entries := log.List()
		Expect(entries).To(HaveLen(2))
		Expect(entries[0].ID).To(Equal("inv-1"))
		Expect(entries[1].ID).To(Equal("inv-2"))
	})

	It("should return a copy, not the backing slice", func() {
		log.Append(Notification{ID: "inv-1"})
		entries := log.List()
		entries[0].ID = "mutated"
		Expect(log.List()[0].ID).To(Equal("inv-1"))
	})

	It("should clear on reset", func() {
		log.Append(Notification{ID: "inv-1"})
		log.Reset()
		Expect(log.List()).To(BeEmpty())
	})

	It("should tolerate concurrent appends", func() {
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				log.Append(Notification{ID: "inv"})
			}()
		}
		wg.Wait()
		Expect(log.List()).To(HaveLen(50))
	})
})
