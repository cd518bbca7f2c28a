package services_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lumina-home/lumina-console/internal/models"
	"github.com/lumina-home/lumina-console/internal/services"
)

var _ = Describe("ResolveStatus", func() {
	DescribeTable("colors",
		func(status models.StatusCode, color models.StatusColor, icon models.IconKind) {
			ds := services.ResolveStatus(status, "")
			Expect(ds.Color).To(Equal(color))
			Expect(ds.Icon).To(Equal(icon))
			Expect(ds.ReasonText).To(BeEmpty())
		},
		Entry("green", models.StatusGreen, models.ColorGreen, models.IconFilled),
		Entry("yellow", models.StatusYellow, models.ColorYellow, models.IconFilled),
		Entry("red", models.StatusRed, models.ColorRed, models.IconFilled),
		Entry("unknown", models.StatusUnknown, models.ColorOff, models.IconUnknown),
		Entry("empty", models.StatusCode(""), models.ColorOff, models.IconUnknown),
	)

	It("should render an unrecognized code with its reason", func() {
		ds := services.ResolveStatus(models.StatusCode("PURPLE"), "overheat")
		Expect(ds.Color).To(Equal(models.ColorOff))
		Expect(ds.Icon).To(Equal(models.IconUnknown))
		Expect(ds.ReasonText).To(Equal("\u2003overheat"))
	})

	It("should prefix the reason with the separator", func() {
		ds := services.ResolveStatus(models.StatusYellow, "dimmed")
		Expect(ds.ReasonText).To(Equal(services.ReasonSeparator + "dimmed"))
	})
})
