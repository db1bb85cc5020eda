package tracing

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sync"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"

	"github.com/KomalYerkal/Preparation-of-Soap/timing"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

const defaultBatchSize = 1000

// SQLiteWriter is a writer that writes lab records to a SQLite database.
type SQLiteWriter struct {
	db        *sql.DB
	statement *sql.Stmt

	mu        sync.Mutex
	buffer    []Record
	batchSize int

	closeOnce sync.Once
	closeErr  error
}

// NewSQLiteWriter opens (or creates) the database at path. An empty path
// creates a fresh file named after a random id. Buffered records are flushed
// when the program exits through atexit.
func NewSQLiteWriter(path string) (*SQLiteWriter, error) {
	if path == "" {
		path = "soaplab_trace_" + xid.New().String() + ".sqlite3"
		fmt.Fprintf(os.Stderr, "Database created for lab tracing: %s\n", path)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("tracing: open %s: %w", path, err)
	}

	w, err := NewSQLiteWriterWithDB(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	atexit.Register(func() { _ = w.Close() })

	return w, nil
}

// NewSQLiteWriterWithDB uses an already opened database.
func NewSQLiteWriterWithDB(db *sql.DB) (*SQLiteWriter, error) {
	// A single connection keeps ":memory:" databases coherent.
	db.SetMaxOpenConns(1)

	w := &SQLiteWriter{
		db:        db,
		batchSize: defaultBatchSize,
	}

	if err := w.createTable(); err != nil {
		return nil, err
	}

	stmt, err := db.Prepare(`INSERT INTO lab_trace
		(session, pos, time_ns, status, fill, ingredients, generation, revision)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("tracing: prepare insert: %w", err)
	}
	w.statement = stmt

	return w, nil
}

func (w *SQLiteWriter) createTable() error {
	_, err := w.db.Exec(`CREATE TABLE IF NOT EXISTS lab_trace (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		session     TEXT    NOT NULL,
		pos         TEXT    NOT NULL,
		time_ns     INTEGER NOT NULL,
		status      TEXT    NOT NULL,
		fill        INTEGER NOT NULL,
		ingredients TEXT    NOT NULL,
		generation  INTEGER NOT NULL,
		revision    INTEGER NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("tracing: create table: %w", err)
	}

	_, err = w.db.Exec(
		`CREATE INDEX IF NOT EXISTS lab_trace_session ON lab_trace (session)`)
	if err != nil {
		return fmt.Errorf("tracing: create index: %w", err)
	}

	return nil
}

// SetBatchSize changes how many records are buffered before a flush.
func (w *SQLiteWriter) SetBatchSize(n int) {
	if n < 1 {
		n = 1
	}

	w.mu.Lock()
	w.batchSize = n
	w.mu.Unlock()
}

// Write buffers r and flushes once the batch is full. Flush errors at this
// point are reported on stderr because hooks have no error path.
func (w *SQLiteWriter) Write(r Record) {
	w.mu.Lock()
	w.buffer = append(w.buffer, r)
	full := len(w.buffer) >= w.batchSize
	w.mu.Unlock()

	if full {
		if err := w.Flush(); err != nil {
			fmt.Fprintf(os.Stderr, "tracing: %v\n", err)
		}
	}
}

// Flush writes all the buffered records to the database in one transaction.
func (w *SQLiteWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.buffer) == 0 {
		return nil
	}

	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("tracing: begin: %w", err)
	}

	stmt := tx.Stmt(w.statement)
	for _, r := range w.buffer {
		_, err := stmt.Exec(
			r.Session, r.Pos, int64(r.Time), r.Status, r.Fill, r.Ingredients,
			int64(r.Generation), int64(r.Revision))
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("tracing: insert %+v: %w", r, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tracing: commit: %w", err)
	}

	w.buffer = nil
	return nil
}

// ListSession reads back the flushed records of one session ordered by lab
// revision, which may differ from write order when hooks raced.
func (w *SQLiteWriter) ListSession(session string) ([]Record, error) {
	rows, err := w.db.Query(`SELECT session, pos, time_ns, status, fill, ingredients,
			generation, revision
		FROM lab_trace WHERE session = ? ORDER BY revision, id`, session)
	if err != nil {
		return nil, fmt.Errorf("tracing: query %s: %w", session, err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var t, gen, rev int64
		err := rows.Scan(&r.Session, &r.Pos, &t, &r.Status, &r.Fill, &r.Ingredients, &gen, &rev)
		if err != nil {
			return nil, fmt.Errorf("tracing: scan: %w", err)
		}
		r.Time = timing.VTime(t)
		r.Generation = uint64(gen)
		r.Revision = uint64(rev)
		records = append(records, r)
	}

	return records, rows.Err()
}

// Close flushes and closes the database. The database is closed even when
// the flush fails. Later calls return the result of the first one.
func (w *SQLiteWriter) Close() error {
	w.closeOnce.Do(func() {
		w.closeErr = errors.Join(w.Flush(), w.statement.Close(), w.db.Close())
	})
	return w.closeErr
}
