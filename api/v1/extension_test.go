package v1_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	v1 "github.com/lumina-home/lumina-console/api/v1"
	"github.com/lumina-home/lumina-console/internal/models"
)

var _ = Describe("FromModel", func() {
	It("should resolve host and plugin statuses", func() {
		rec := models.HostRecord{
			HostID:    "h1",
			Hostname:  "livingroom",
			NodeName:  "living",
			Lifecycle: models.LifecycleEnriched,
			Status:    models.StatusRed,
			StatusWhy: "led driver missing",
			Plugins: []models.PluginInfo{
				{Name: "led", Module: "rpi-led", Status: models.StatusGreen},
			},
			Config: []models.ConfigEntry{{Key: "port", Value: float64(8081), Default: float64(8081), Type: "int"}},
		}

		var host v1.Host
		host.FromModel(rec)

		Expect(host.HostId).To(Equal("h1"))
		Expect(host.Lifecycle).To(Equal(v1.HostLifecycleEnriched))
		Expect(host.DisplayStatus).To(Equal(v1.DisplayStatus{Color: "red", Icon: "circle", Reason: "\u2003led driver missing"}))
		Expect(host.Plugins).To(HaveLen(1))
		Expect(host.Plugins[0].DisplayStatus.Color).To(Equal("green"))
		Expect(host.Config[0].Key).To(Equal("port"))
	})

	It("should carry the previous lifecycle of an update", func() {
		prev := models.HostRecord{HostID: "h1", Lifecycle: models.LifecyclePreliminary}
		var u v1.HostUpdate
		u.FromModel(models.HostUpdate{Record: models.HostRecord{HostID: "h1", Lifecycle: models.LifecycleEnriched}, Previous: &prev})

		Expect(u.PreviousLifecycle).NotTo(BeNil())
		Expect(*u.PreviousLifecycle).To(Equal(v1.HostLifecyclePreliminary))
	})

	It("should omit the start time of an idle discovery", func() {
		var s v1.DiscoveryStatus
		s.FromModel(models.DiscoveryStatus{State: models.DiscoveryStateIdle})
		Expect(s.StartedAt).To(BeNil())

		s.FromModel(models.DiscoveryStatus{State: models.DiscoveryStateStarted, StartedAt: time.Now()})
		Expect(s.StartedAt).NotTo(BeNil())
	})
})
