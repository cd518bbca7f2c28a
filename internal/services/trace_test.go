package services_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lumina-home/lumina-console/internal/services"
)

var _ = Describe("Trace", func() {
	var trace *services.Trace

	BeforeEach(func() {
		trace = services.NewTrace()
	})

	It("should reset the stage on every command", func() {
		trace.BeginCommand()
		trace.AppendStage("<<< a")
		trace.BeginCommand()
		trace.AppendStage("<<< b")

		Expect(trace.Stage()).To(Equal("<<< b\n"))
		Expect(trace.Log()).To(BeEmpty())
	})

	It("should append the stage to the log on failure", func() {
		var flushed []string
		trace.OnFlush(func(text string) {
			flushed = append(flushed, text)
		})

		trace.BeginCommand()
		trace.AppendStage("<<< _info")
		trace.AppendStage(">>> FAIL 500 Internal Server Error:  ")
		trace.FlushOnFailure()

		Expect(trace.Log()).To(Equal("<<< _info\n>>> FAIL 500 Internal Server Error:  \n"))
		Expect(flushed).To(Equal([]string{trace.Log()}))
	})

	It("should not call the sink for an empty stage", func() {
		called := false
		trace.OnFlush(func(string) { called = true })

		trace.BeginCommand()
		trace.FlushOnFailure()
		Expect(called).To(BeFalse())
	})

	It("should append the stage and the line on explicit success", func() {
		trace.BeginCommand()
		trace.AppendStage("<<< _info")
		trace.AppendSuccess("{}")

		Expect(trace.Log()).To(Equal("<<< _info\n{}\n"))
		Expect(trace.Stage()).To(Equal("<<< _info\n"))
	})

	It("should keep the log across commands", func() {
		trace.BeginCommand()
		trace.AppendStage("one")
		trace.FlushOnFailure()
		trace.BeginCommand()
		trace.AppendStage("two")
		trace.FlushOnFailure()

		Expect(trace.Log()).To(Equal("one\ntwo\n"))
	})
})
