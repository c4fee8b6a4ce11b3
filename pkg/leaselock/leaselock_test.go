package leaselock

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type fakeRow struct {
	key string
	err error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if p, ok := dest[0].(*string); ok {
		*p = r.key
	}
	return nil
}

// fakeLockDB mimics the pipeline_locks semantics: one holder per key, a
// matching token may re-acquire or release, anyone else is rejected.
// Expiry is not modeled.
type fakeLockDB struct {
	mu   sync.Mutex
	held map[string]string // key -> token
}

func newFakeLockDB() *fakeLockDB {
	return &fakeLockDB{held: make(map[string]string)}
}

func (f *fakeLockDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := args[0].(string)
	token := args[1].(string)

	switch sql {
	case tryAcquireSQL:
		if cur, ok := f.held[key]; ok && cur != token {
			return fakeRow{err: pgx.ErrNoRows}
		}
		f.held[key] = token
		return fakeRow{key: key}
	case renewSQL:
		if f.held[key] != token {
			return fakeRow{err: pgx.ErrNoRows}
		}
		return fakeRow{key: key}
	}
	return fakeRow{err: errors.New("unexpected query")}
}

func (f *fakeLockDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := args[0].(string)
	token := args[1].(string)
	if f.held[key] == token {
		delete(f.held, key)
	}
	return pgconn.CommandTag{}, nil
}

func newTestClient(db dbConn) *Client {
	return &Client{
		db: db,
		opts: Options{
			TTL:          time.Minute,
			RenewEvery:   30 * time.Second,
			WaitInterval: time.Millisecond,
		},
	}
}

func TestWithLease_RunsAndReleases(t *testing.T) {
	t.Parallel()

	db := newFakeLockDB()
	c := newTestClient(db)

	ran := false
	err := c.WithLease(context.Background(), "textitem:item-1", func(ctx context.Context) error {
		ran = true
		db.mu.Lock()
		_, held := db.held["textitem:item-1"]
		db.mu.Unlock()
		if !held {
			t.Error("expected lease to be held while fn runs")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithLease: %v", err)
	}
	if !ran {
		t.Fatal("fn was not invoked")
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	if len(db.held) != 0 {
		t.Fatalf("expected lease released after fn, still held: %v", db.held)
	}
}

func TestWithLease_PropagatesFnError(t *testing.T) {
	t.Parallel()

	db := newFakeLockDB()
	c := newTestClient(db)

	want := errors.New("pipeline failed")
	err := c.WithLease(context.Background(), "textitem:item-1", func(ctx context.Context) error {
		return want
	})
	if !errors.Is(err, want) {
		t.Fatalf("expected fn error, got %v", err)
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	if len(db.held) != 0 {
		t.Fatal("expected lease released even when fn fails")
	}
}

func TestAcquire_HeldKeyFailsFast(t *testing.T) {
	t.Parallel()

	db := newFakeLockDB()
	db.held["textitem:item-1"] = "someone-else"
	c := newTestClient(db)

	if _, err := c.Acquire(context.Background(), "textitem:item-1"); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
}

func TestAcquire_WaitsForRelease(t *testing.T) {
	t.Parallel()

	db := newFakeLockDB()
	db.held["textitem:item-1"] = "someone-else"
	c := newTestClient(db)
	c.opts.Wait = true

	go func() {
		time.Sleep(10 * time.Millisecond)
		db.mu.Lock()
		delete(db.held, "textitem:item-1")
		db.mu.Unlock()
	}()

	lease, err := c.Acquire(context.Background(), "textitem:item-1")
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if err := lease.Release(context.Background()); err != nil {
		t.Fatalf("Release: %v", err)
	}
}

func TestRelease_IsIdempotent(t *testing.T) {
	t.Parallel()

	db := newFakeLockDB()
	c := newTestClient(db)

	lease, err := c.Acquire(context.Background(), "textitem:item-1")
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if err := lease.Release(context.Background()); err != nil {
		t.Fatalf("first Release: %v", err)
	}
	if err := lease.Release(context.Background()); err != nil {
		t.Fatalf("second Release: %v", err)
	}
}

func TestAcquire_EmptyKeyRejected(t *testing.T) {
	t.Parallel()

	c := newTestClient(newFakeLockDB())
	if _, err := c.Acquire(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty key, got nil")
	}
}
