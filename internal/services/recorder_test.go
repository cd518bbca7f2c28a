package services_test

import (
	"context"
	"database/sql"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lumina-home/lumina-console/internal/models"
	"github.com/lumina-home/lumina-console/internal/services"
	"github.com/lumina-home/lumina-console/internal/store"
	"github.com/lumina-home/lumina-console/internal/store/migrations"
)

var _ = Describe("Recorder", func() {
	var (
		ctx      context.Context
		db       *sql.DB
		st       *store.Store
		recorder *services.Recorder
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())
		Expect(migrations.Run(ctx, db)).To(Succeed())

		st = store.NewStore(db)
		recorder = services.NewRecorder(st, "session-1")
	})

	AfterEach(func() {
		_ = db.Close()
	})

	It("should persist directory updates", func() {
		dir := services.NewDirectory()
		runCtx, cancel := context.WithCancel(ctx)
		done := make(chan struct{})
		go func() {
			defer close(done)
			recorder.Run(runCtx, dir)
		}()

		// Run subscribes asynchronously; probe until it persists something.
		probes := 0
		Eventually(func() error {
			probes++
			_ = dir.Upsert(models.HostRecord{HostID: "probe", Hostname: fmt.Sprintf("probe-%d", probes), Lifecycle: models.LifecyclePreliminary})
			_, err := st.Hosts().Get(ctx, "probe")
			return err
		}).Should(Succeed())

		Expect(dir.Upsert(models.HostRecord{HostID: "h1", Hostname: "living", Lifecycle: models.LifecyclePreliminary})).To(Succeed())
		Expect(dir.Upsert(models.HostRecord{HostID: "h1", Hostname: "livingroom", Lifecycle: models.LifecycleEnriched})).To(Succeed())

		Eventually(func() models.Lifecycle {
			rec, err := st.Hosts().Get(ctx, "h1")
			if err != nil {
				return ""
			}
			return rec.Lifecycle
		}).Should(Equal(models.LifecycleEnriched))

		cancel()
		Eventually(done).Should(BeClosed())
	})

	It("should persist flushed transcripts", func() {
		trace := services.NewTrace()
		trace.OnFlush(recorder.RecordTranscript)

		trace.BeginCommand()
		trace.AppendStage("<<< living/_info")
		trace.AppendStage(">>> FAIL 400 Bad Request:  Node living timed out")
		trace.FlushOnFailure()

		transcripts, err := st.Transcripts().List(ctx, 10)
		Expect(err).NotTo(HaveOccurred())
		Expect(transcripts).To(HaveLen(1))
		Expect(transcripts[0].SessionID).To(Equal("session-1"))
		Expect(transcripts[0].Text).To(ContainSubstring("Node living timed out"))
	})
})
