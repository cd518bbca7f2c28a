package store_test

import (
	"context"
	"database/sql"
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lumina-home/lumina-console/internal/models"
	"github.com/lumina-home/lumina-console/internal/store"
	"github.com/lumina-home/lumina-console/internal/store/migrations"
)

var _ = Describe("HostStore", func() {
	var (
		ctx       context.Context
		s         *store.Store
		db        *sql.DB
		rec       models.HostRecord
		sessionID string
	)

	BeforeEach(func() {
		ctx = context.Background()
		sessionID = "c0ffee00-0000-4000-8000-000000000001"

		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())

		err = migrations.Run(ctx, db)
		Expect(err).NotTo(HaveOccurred())

		s = store.NewStore(db)

		rec = models.HostRecord{
			HostID:    "a1b2c3",
			Hostname:  "livingroom",
			NodeName:  "living",
			Lifecycle: models.LifecycleEnriched,
			Status:    models.StatusGreen,
			Plugins: []models.PluginInfo{
				{Name: "yamaha", Status: models.StatusYellow, Reason: "Not connected"},
			},
			Config: []models.ConfigEntry{
				{Key: "port", Value: float64(5326), Type: "int"},
			},
			Raw: json.RawMessage(`{"hostid":"a1b2c3"}`),
		}
	})

	AfterEach(func() {
		if db != nil {
			_ = db.Close()
		}
	})

	Describe("Get", func() {
		It("should return ErrNotFound when the host is unknown", func() {
			_, err := s.Hosts().Get(ctx, "missing")
			Expect(err).To(Equal(store.ErrNotFound))
		})

		It("should retrieve a saved host", func() {
			Expect(s.Hosts().Save(ctx, sessionID, rec)).To(Succeed())

			retrieved, err := s.Hosts().Get(ctx, rec.HostID)
			Expect(err).NotTo(HaveOccurred())
			Expect(retrieved.Hostname).To(Equal("livingroom"))
			Expect(retrieved.NodeName).To(Equal("living"))
			Expect(retrieved.Lifecycle).To(Equal(models.LifecycleEnriched))
			Expect(retrieved.Status).To(Equal(models.StatusGreen))
			Expect(retrieved.Plugins).To(Equal(rec.Plugins))
			Expect(retrieved.Config).To(Equal(rec.Config))
			Expect(string(retrieved.Raw)).To(MatchJSON(`{"hostid":"a1b2c3"}`))
			Expect(retrieved.UpdatedAt).NotTo(BeZero())
		})
	})

	Describe("Save", func() {
		It("should update the host on second save (upsert)", func() {
			preliminary := models.HostRecord{
				HostID:    rec.HostID,
				Hostname:  "guess",
				NodeName:  "living",
				Lifecycle: models.LifecyclePreliminary,
				Status:    models.StatusUnknown,
			}
			Expect(s.Hosts().Save(ctx, sessionID, preliminary)).To(Succeed())
			Expect(s.Hosts().Save(ctx, sessionID, rec)).To(Succeed())

			hosts, err := s.Hosts().List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(hosts).To(HaveLen(1))
			Expect(hosts[0].Hostname).To(Equal("livingroom"))
			Expect(hosts[0].Lifecycle).To(Equal(models.LifecycleEnriched))
		})
	})

	Describe("List", func() {
		It("should list the root host first", func() {
			root := models.HostRecord{
				HostID:    "000001",
				Hostname:  "zeta",
				Lifecycle: models.LifecycleEnriched,
				Root:      true,
				Status:    models.StatusGreen,
			}
			Expect(s.Hosts().Save(ctx, sessionID, rec)).To(Succeed())
			Expect(s.Hosts().Save(ctx, sessionID, root)).To(Succeed())

			hosts, err := s.Hosts().List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(hosts).To(HaveLen(2))
			Expect(hosts[0].HostID).To(Equal("000001"))
			Expect(hosts[0].Root).To(BeTrue())
			Expect(hosts[1].HostID).To(Equal("a1b2c3"))
		})

		It("should return nothing when empty", func() {
			hosts, err := s.Hosts().List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(hosts).To(BeEmpty())
		})
	})
})
