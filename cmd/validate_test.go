package cmd

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lumina-home/lumina-console/internal/config"
)

var _ = Describe("validateConfiguration", func() {
	var cfg *config.Configuration

	BeforeEach(func() {
		cfg = config.NewConfigurationWithOptionsAndDefaults()
	})

	It("should accept the defaults", func() {
		Expect(validateConfiguration(cfg)).To(Succeed())
		Expect(cfg.Remote.Timeout).To(Equal(10 * time.Second))
		Expect(cfg.Discovery.NumWorkers).To(Equal(4))
	})

	DescribeTable("invalid values",
		func(mutate func(c *config.Configuration), msg string) {
			mutate(cfg)
			Expect(validateConfiguration(cfg)).To(MatchError(ContainSubstring(msg)))
		},
		Entry("server mode", func(c *config.Configuration) { c.Server.ServerMode = "staging" }, "invalid server mode"),
		Entry("port", func(c *config.Configuration) { c.Server.HTTPPort = 70000 }, "invalid http-port"),
		Entry("remote url", func(c *config.Configuration) { c.Remote.URL = "lumina" }, "invalid remote-url"),
		Entry("timeout", func(c *config.Configuration) { c.Remote.Timeout = 0 }, "remote-timeout"),
		Entry("burst", func(c *config.Configuration) { c.Remote.Burst = 0 }, "invalid remote-burst"),
		Entry("workers", func(c *config.Configuration) { c.Discovery.NumWorkers = 0 }, "invalid discovery-workers"),
		Entry("interval", func(c *config.Configuration) { c.Discovery.Interval = 0 }, "discovery-interval"),
	)

	It("should not require an interval when discovery is disabled", func() {
		cfg.Discovery.Disabled = true
		cfg.Discovery.Interval = 0
		Expect(validateConfiguration(cfg)).To(Succeed())
	})
})

var _ = Describe("parseArgs", func() {
	It("should decode json arguments and keep the rest as strings", func() {
		Expect(parseArgs([]string{"12", "full", `"quoted"`, "true", `[1,2]`})).To(Equal([]any{
			float64(12), "full", "quoted", true, []any{float64(1), float64(2)},
		}))
	})
})
