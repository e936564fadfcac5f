package extraction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"google.golang.org/api/googleapi"
)

var _ = Describe("isTransient", func() {
	It("should retry rate limits", func() {
		Expect(isTransient(&googleapi.Error{Code: 429})).To(BeTrue())
	})

	It("should retry server-side failures", func() {
		Expect(isTransient(&googleapi.Error{Code: 500})).To(BeTrue())
		Expect(isTransient(&googleapi.Error{Code: 503})).To(BeTrue())
	})

	It("should not retry client errors", func() {
		Expect(isTransient(&googleapi.Error{Code: 400})).To(BeFalse())
		Expect(isTransient(&googleapi.Error{Code: 404})).To(BeFalse())
	})

	It("should see through error wrapping", func() {
		err := fmt.Errorf("generating content: %w", &googleapi.Error{Code: 429})
		Expect(isTransient(err)).To(BeTrue())
	})

	It("should not retry non-API errors", func() {
		Expect(isTransient(errors.New("connection refused"))).To(BeFalse())
	})
})

var _ = Describe("withRetry", func() {
	var calls int

	BeforeEach(func() {
		calls = 0
	})

	When("the operation keeps failing transiently", func() {
		It("should attempt exactly twice before giving up", func() {
			err := withRetry(context.Background(), time.Millisecond, func() error {
				calls++
				return errors.New("rate limited")
			})
			Expect(err).To(HaveOccurred())
			Expect(calls).To(Equal(2))
		})
	})

	When("the failure is permanent", func() {
		It("should not retry", func() {
			err := withRetry(context.Background(), time.Millisecond, func() error {
				calls++
				return backoff.Permanent(errors.New("invalid api key"))
			})
			Expect(err).To(HaveOccurred())
			Expect(calls).To(Equal(1))
		})
	})

	When("the retry succeeds", func() {
		It("should return no error", func() {
			err := withRetry(context.Background(), time.Millisecond, func() error {
				calls++
				if calls == 1 {
					return errors.New("rate limited")
				}
				return nil
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(calls).To(Equal(2))
		})
	})

	When("the context is already cancelled", func() {
		It("should stop without retrying", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			err := withRetry(ctx, time.Millisecond, func() error {
				calls++
				return errors.New("rate limited")
			})
			Expect(err).To(HaveOccurred())
			Expect(calls).To(Equal(1))
		})
	})
})

var _ = Describe("buildTranscript", func() {
	It("should tag each message with its index", func() {
		transcript := buildTranscript([]string{"2 pizza", "500 rs total"})
		Expect(transcript).To(Equal("Chat History:\nMsg 0: 2 pizza\nMsg 1: 500 rs total\n"))
	})
})
