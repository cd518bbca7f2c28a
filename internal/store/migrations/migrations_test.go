package migrations

import (
	"context"
	"database/sql"
	"testing/fstest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lumina-home/lumina-console/internal/store"
)

var _ = Describe("Run", func() {
	var (
		ctx context.Context
		db  *sql.DB
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		_ = db.Close()
	})

	It("should create the schema once", func() {
		Expect(Run(ctx, db)).To(Succeed())
		Expect(Run(ctx, db)).To(Succeed())

		var applied int
		Expect(db.QueryRowContext(ctx, "SELECT count(*) FROM schema_migrations").Scan(&applied)).To(Succeed())
		Expect(applied).To(Equal(2))

		_, err := db.ExecContext(ctx, "INSERT INTO transcripts (session_id, text) VALUES ('s', 't')")
		Expect(err).NotTo(HaveOccurred())
	})

	It("should refuse an applied migration that changed", func() {
		Expect(Run(ctx, db)).To(Succeed())
		_, err := db.ExecContext(ctx, "UPDATE schema_migrations SET checksum = 'edited' WHERE version = 1")
		Expect(err).NotTo(HaveOccurred())

		Expect(Run(ctx, db)).To(MatchError(ErrChecksumMismatch))
	})
})

var _ = Describe("load", func() {
	It("should order migrations by version and skip unnumbered files", func() {
		migrations, err := load(fstest.MapFS{
			"sql/010_later.sql":  {Data: []byte("SELECT 10")},
			"sql/002_first.sql":  {Data: []byte("SELECT 2")},
			"sql/notes.sql":      {Data: []byte("-- scratch")},
			"sql/003_second.sql": {Data: []byte("SELECT 3")},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(migrations).To(HaveLen(3))
		Expect(migrations[0].Name).To(Equal("first"))
		Expect(migrations[2].Version).To(Equal(10))
		Expect(migrations[0].Checksum).To(HaveLen(64))
	})

	It("should reject two migrations with the same version", func() {
		_, err := load(fstest.MapFS{
			"sql/001_a.sql": {Data: []byte("SELECT 1")},
			"sql/001_b.sql": {Data: []byte("SELECT 1")},
		})
		Expect(err).To(MatchError(ErrDuplicateVersion))
	})
})
