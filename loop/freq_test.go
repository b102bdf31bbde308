package loop

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Freq", func() {
	It("should get period", func() {
		var f = 100 * Hz
		Expect(f.Period()).To(Equal(10 * time.Millisecond))
	})

	It("should get the default frame budget", func() {
		Expect(DefaultFrameRate.Period()).To(BeNumerically(
			"~", 33333333*time.Nanosecond, float64(time.Nanosecond)))
	})

	It("should count whole frames in a duration", func() {
		var f = 30 * Hz
		Expect(f.Frames(time.Second)).To(Equal(uint64(30)))
		Expect(f.Frames(50 * time.Millisecond)).To(Equal(uint64(1)))
	})

	It("should count zero frames when the rate is below one per second", func() {
		var f = 0.5 * Hz
		Expect(f.Frames(time.Second)).To(Equal(uint64(0)))
	})

	It("should panic on zero frequency", func() {
		var f Freq
		Expect(func() { f.Period() }).To(Panic())
	})
})
