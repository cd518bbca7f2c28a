package services_test

import (
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lumina-home/lumina-console/internal/models"
	"github.com/lumina-home/lumina-console/internal/services"
)

var _ = Describe("Directory", func() {
	var dir *services.Directory

	preliminary := func(id, hostname string) models.HostRecord {
		return models.HostRecord{HostID: id, Hostname: hostname, NodeName: hostname, Lifecycle: models.LifecyclePreliminary}
	}
	enriched := func(id, hostname string) models.HostRecord {
		return models.HostRecord{HostID: id, Hostname: hostname, Lifecycle: models.LifecycleEnriched, Status: models.StatusGreen}
	}

	BeforeEach(func() {
		dir = services.NewDirectory()
	})

	It("should reject records without a host id", func() {
		Expect(dir.Upsert(models.HostRecord{Hostname: "x"})).To(MatchError(services.ErrMissingHostID))
		Expect(dir.Len()).To(Equal(0))
	})

	It("should upgrade a preliminary record", func() {
		Expect(dir.Upsert(preliminary("h1", "living"))).To(Succeed())
		Expect(dir.IsEnriched("h1")).To(BeFalse())
		Expect(dir.Has("h1")).To(BeTrue())

		Expect(dir.Upsert(enriched("h1", "livingroom"))).To(Succeed())
		rec, ok := dir.Get("h1")
		Expect(ok).To(BeTrue())
		Expect(rec.Lifecycle).To(Equal(models.LifecycleEnriched))
		Expect(rec.Hostname).To(Equal("livingroom"))
		Expect(dir.Len()).To(Equal(1))
	})

	It("should never downgrade an enriched record", func() {
		Expect(dir.Upsert(enriched("h1", "livingroom"))).To(Succeed())
		Expect(dir.Upsert(preliminary("h1", "living"))).To(MatchError(services.ErrDowngrade))

		rec, _ := dir.Get("h1")
		Expect(rec.Lifecycle).To(Equal(models.LifecycleEnriched))
		Expect(rec.Hostname).To(Equal("livingroom"))
	})

	It("should treat storing an equal record as a no-op", func() {
		Expect(dir.Upsert(enriched("h1", "livingroom"))).To(Succeed())
		first, _ := dir.Get("h1")

		updates, unsubscribe := dir.Subscribe(4)
		defer unsubscribe()

		time.Sleep(5 * time.Millisecond)
		Expect(dir.Upsert(enriched("h1", "livingroom"))).To(Succeed())

		second, _ := dir.Get("h1")
		Expect(second.UpdatedAt).To(Equal(first.UpdatedAt))
		Consistently(updates, 50*time.Millisecond).ShouldNot(Receive())
	})

	It("should list the root first then by hostname", func() {
		root := enriched("r", "zeta")
		root.Root = true
		Expect(dir.Upsert(enriched("b", "cinema"))).To(Succeed())
		Expect(dir.Upsert(root)).To(Succeed())
		Expect(dir.Upsert(preliminary("a", "attic"))).To(Succeed())

		ids := []string{}
		for _, rec := range dir.List() {
			ids = append(ids, rec.HostID)
		}
		Expect(ids).To(Equal([]string{"r", "a", "b"}))
	})

	Context("subscriptions", func() {
		It("should publish stored records with their previous version", func() {
			updates, unsubscribe := dir.Subscribe(4)
			defer unsubscribe()

			Expect(dir.Upsert(preliminary("h1", "living"))).To(Succeed())
			Expect(dir.Upsert(enriched("h1", "livingroom"))).To(Succeed())

			var update models.HostUpdate
			Eventually(updates).Should(Receive(&update))
			Expect(update.Previous).To(BeNil())
			Expect(update.Record.Lifecycle).To(Equal(models.LifecyclePreliminary))

			Eventually(updates).Should(Receive(&update))
			Expect(update.Previous).NotTo(BeNil())
			Expect(update.Previous.Lifecycle).To(Equal(models.LifecyclePreliminary))
			Expect(update.Record.Lifecycle).To(Equal(models.LifecycleEnriched))
		})

		It("should drop updates for a full subscriber without blocking", func() {
			updates, unsubscribe := dir.Subscribe(1)
			defer unsubscribe()

			Expect(dir.Upsert(preliminary("h1", "a"))).To(Succeed())
			Expect(dir.Upsert(preliminary("h2", "b"))).To(Succeed())
			Expect(dir.Len()).To(Equal(2))
			Expect(updates).To(HaveLen(1))
		})

		It("should count updates dropped for a full subscriber", func() {
			_, unsubscribe := dir.Subscribe(0)
			defer unsubscribe()

			before := counterValue("lumina_console_directory_dropped_updates_total")
			Expect(dir.Upsert(preliminary("h1", "a"))).To(Succeed())
			Expect(counterValue("lumina_console_directory_dropped_updates_total")).To(Equal(before + 1))
		})

		It("should close the channel on unsubscribe", func() {
			updates, unsubscribe := dir.Subscribe(1)
			unsubscribe()
			unsubscribe()

			Eventually(updates).Should(BeClosed())
			Expect(dir.Upsert(preliminary("h1", "a"))).To(Succeed())
		})
	})

	Context("feeds", func() {
		It("should keep the latest update of every host", func() {
			feed, stop := dir.Follow()
			defer stop()

			for i := 0; i < 100; i++ {
				Expect(dir.Upsert(preliminary(fmt.Sprintf("h%03d", i), "node"))).To(Succeed())
			}
			Expect(dir.Upsert(enriched("h000", "livingroom"))).To(Succeed())

			Eventually(feed.Ready()).Should(Receive())
			updates := feed.Drain()
			Expect(updates).To(HaveLen(100))
			Expect(updates[0].Record.HostID).To(Equal("h000"))
			Expect(updates[0].Record.Lifecycle).To(Equal(models.LifecycleEnriched))
			Expect(updates[0].Previous).To(BeNil())

			Expect(feed.Drain()).To(BeEmpty())
		})

		It("should stop receiving once detached", func() {
			feed, stop := dir.Follow()
			stop()

			Expect(dir.Upsert(preliminary("h1", "a"))).To(Succeed())
			Expect(feed.Drain()).To(BeEmpty())
		})
	})
})

func counterValue(name string) float64 {
	families, err := prometheus.DefaultGatherer.Gather()
	Expect(err).NotTo(HaveOccurred())
	for _, mf := range families {
		if mf.GetName() == name && len(mf.GetMetric()) > 0 {
			return mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	return 0
}
