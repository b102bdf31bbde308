package session_test

import (
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/framewheel/framewheel/loop"
	"github.com/framewheel/framewheel/session"
)

var _ = Describe("Builder", func() {
	AfterEach(func() {
		os.Remove("session_test.sqlite3")
	})

	It("should build a session that drives the loop", func() {
		frames := 0
		s := session.MakeBuilder().
			WithoutMonitoring().
			WithOutputFileName("session_test").
			WithFrameRate(1000 * loop.Hz).
			WithTask(func(l *loop.FrameLoop) error {
				frames++
				if frames == 1 {
					l.Schedule("blink", 2, loop.ActionFunc(func() {}))
				}
				if frames == 3 {
					l.Stop()
				}
				return nil
			}).
			Build()
		defer s.Terminate()

		Expect(s.Run()).To(Succeed())

		Expect(frames).To(Equal(3))
		Expect(s.Loop().CurrentFrame()).To(Equal(uint64(3)))
		Expect(s.AverageFrameTime().TotalCount()).To(Equal(uint64(3)))
		Expect(s.DataRecorder().ListTables()).To(ContainElement("frame_trace"))
		Expect(s.ID()).NotTo(BeEmpty())
		Expect(s.Monitor()).To(BeNil())
	})

	It("should reject a monitor port without monitoring", func() {
		Expect(func() {
			session.MakeBuilder().
				WithoutMonitoring().
				WithMonitorPort(8080).
				Build()
		}).To(Panic())
	})
})
