package tracing_test

import (
	"database/sql"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/KomalYerkal/Preparation-of-Soap/instrumentation/tracing"
	"github.com/KomalYerkal/Preparation-of-Soap/lab"
	"github.com/KomalYerkal/Preparation-of-Soap/timing"
)

var _ = Describe("LabTracer", func() {
	var (
		engine *timing.SerialEngine
		l      *lab.Lab
		writer *tracing.MemoryWriter
	)

	BeforeEach(func() {
		engine = timing.NewSerialEngine()
		l = lab.New(engine, lab.Config{ReactionDelay: 2 * time.Second})
		writer = tracing.NewMemoryWriter()
		l.AcceptHook(tracing.NewLabTracer("s1", engine, writer))
	})

	It("should record each transition with its time", func() {
		for _, i := range lab.Ingredients() {
			_, err := l.AddIngredient(i)
			Expect(err).NotTo(HaveOccurred())
		}
		Expect(engine.Run()).To(Succeed())

		records := writer.Records()
		Expect(records).To(HaveLen(5))
		Expect(records[0]).To(Equal(tracing.Record{
			Session:     "s1",
			Pos:         "IngredientAdded",
			Status:      lab.StatusFilling,
			Fill:        30,
			Ingredients: "water",
			Revision:    1,
		}))
		Expect(records[3].Pos).To(Equal("ReactionStarted"))
		Expect(records[4].Pos).To(Equal("ReactionComplete"))
		Expect(records[4].Status).To(Equal(lab.StatusSuccess))
		Expect(records[4].Time).To(Equal(timing.VTime(2 * time.Second)))
	})

	It("should record stale completions as drops", func() {
		for _, i := range lab.Ingredients() {
			_, _ = l.AddIngredient(i)
		}
		Expect(l.Handle(&lab.ReactionCompleteEvent{Generation: 7})).To(Succeed())

		records := writer.Records()
		Expect(records[len(records)-1].Pos).To(Equal("StaleReactionDropped"))
	})
})

var _ = Describe("SQLiteWriter", func() {
	var (
		db     *sql.DB
		writer *tracing.SQLiteWriter
	)

	BeforeEach(func() {
		var err error
		db, err = sql.Open("sqlite3", ":memory:")
		Expect(err).NotTo(HaveOccurred())

		writer, err = tracing.NewSQLiteWriterWithDB(db)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		Expect(writer.Close()).To(Succeed())
	})

	It("should only persist records after a flush", func() {
		writer.Write(tracing.Record{Session: "a", Pos: "Reset", Status: lab.StatusEmpty})

		records, err := writer.ListSession("a")
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(BeEmpty())

		Expect(writer.Flush()).To(Succeed())

		records, err = writer.ListSession("a")
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(ConsistOf(tracing.Record{
			Session: "a", Pos: "Reset", Status: lab.StatusEmpty,
		}))
	})

	It("should read records back in revision order", func() {
		writer.Write(tracing.Record{Session: "r", Pos: "Reset", Generation: 1, Revision: 4})
		writer.Write(tracing.Record{Session: "r", Pos: "IngredientAdded", Fill: 30, Ingredients: "oil", Revision: 3})
		Expect(writer.Flush()).To(Succeed())

		records, err := writer.ListSession("r")
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(HaveLen(2))
		Expect(records[0].Pos).To(Equal("IngredientAdded"))
		Expect(records[0].Revision).To(Equal(uint64(3)))
		Expect(records[1].Pos).To(Equal("Reset"))
		Expect(records[1].Generation).To(Equal(uint64(1)))
		Expect(records[1].Revision).To(Equal(uint64(4)))
	})

	It("should flush by itself when the batch fills", func() {
		writer.SetBatchSize(2)

		writer.Write(tracing.Record{Session: "b", Pos: "IngredientAdded", Fill: 30, Ingredients: "oil", Time: 5})
		writer.Write(tracing.Record{Session: "c", Pos: "IngredientAdded", Fill: 30, Ingredients: "lye"})

		records, err := writer.ListSession("b")
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(HaveLen(1))
		Expect(records[0].Time).To(Equal(timing.VTime(5)))
		Expect(records[0].Ingredients).To(Equal("oil"))
	})
})

var _ = Describe("NewSQLiteWriter", func() {
	It("should create the database file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "trace.sqlite3")

		writer, err := tracing.NewSQLiteWriter(path)
		Expect(err).NotTo(HaveOccurred())

		writer.Write(tracing.Record{Session: "d", Pos: "Reset", Status: lab.StatusEmpty})
		Expect(writer.Close()).To(Succeed())
		Expect(path).To(BeAnExistingFile())
	})
})

var _ = Describe("SQLiteWriter Close", func() {
	It("should close the database even when the last flush fails", func() {
		db, err := sql.Open("sqlite3", ":memory:")
		Expect(err).NotTo(HaveOccurred())

		writer, err := tracing.NewSQLiteWriterWithDB(db)
		Expect(err).NotTo(HaveOccurred())

		writer.Write(tracing.Record{Session: "e", Pos: "Reset", Status: lab.StatusEmpty})
		_, err = db.Exec(`DROP TABLE lab_trace`)
		Expect(err).NotTo(HaveOccurred())

		err = writer.Close()
		Expect(err).To(MatchError(ContainSubstring("tracing: insert")))
		Expect(db.Ping()).To(MatchError(ContainSubstring("database is closed")))
		Expect(writer.Close()).To(Equal(err))
	})
})
