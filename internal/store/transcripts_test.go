package store_test

import (
	"context"
	"database/sql"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lumina-home/lumina-console/internal/store"
	"github.com/lumina-home/lumina-console/internal/store/migrations"
)

var _ = Describe("TranscriptStore", func() {
	var (
		ctx context.Context
		s   *store.Store
		db  *sql.DB
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())

		err = migrations.Run(ctx, db)
		Expect(err).NotTo(HaveOccurred())

		s = store.NewStore(db)
	})

	AfterEach(func() {
		if db != nil {
			_ = db.Close()
		}
	})

	It("should list appended transcripts newest first", func() {
		Expect(s.Transcripts().Append(ctx, "session-1", "<<< avr/on\n>>> FAIL 400 Bad Request\n")).To(Succeed())
		Expect(s.Transcripts().Append(ctx, "session-1", "<<< oppo/on\n>>> FAIL 0 timeout\n")).To(Succeed())

		transcripts, err := s.Transcripts().List(ctx, 10)
		Expect(err).NotTo(HaveOccurred())
		Expect(transcripts).To(HaveLen(2))
		Expect(transcripts[0].Text).To(ContainSubstring("oppo/on"))
		Expect(transcripts[1].Text).To(ContainSubstring("avr/on"))
		Expect(transcripts[0].ID).To(BeNumerically(">", transcripts[1].ID))
		Expect(transcripts[0].CreatedAt).NotTo(BeZero())
	})

	It("should honour the limit", func() {
		for i := 0; i < 3; i++ {
			Expect(s.Transcripts().Append(ctx, "session-1", "<<< x\n")).To(Succeed())
		}

		transcripts, err := s.Transcripts().List(ctx, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(transcripts).To(HaveLen(2))
	})

	It("should be idempotent when migrations run twice", func() {
		Expect(migrations.Run(ctx, db)).To(Succeed())
		Expect(s.Transcripts().Append(ctx, "session-1", "<<< x\n")).To(Succeed())
	})
})
