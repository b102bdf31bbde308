package loop

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ScheduledEvent", func() {
	It("should count down one frame at a time", func() {
		evt := NewScheduledEvent("evt", 3, ActionFunc(func() {}))

		evt.Decrement()
		Expect(evt.RemainingFrames()).To(Equal(uint64(2)))

		evt.Decrement()
		evt.Decrement()
		Expect(evt.RemainingFrames()).To(Equal(uint64(0)))
	})

	It("should panic when decremented past zero", func() {
		evt := NewScheduledEvent("evt", 1, ActionFunc(func() {}))
		evt.Decrement()

		Expect(func() { evt.Decrement() }).To(Panic())
	})

	It("should keep its identity fixed", func() {
		evt := NewScheduledEvent("evt", 2, ActionFunc(func() {}))

		Expect(evt.Name()).To(Equal("evt"))
		Expect(evt.ID).NotTo(BeEmpty())
	})
})
