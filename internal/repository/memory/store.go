// Package memory provides an in-memory implementation of the repository
// interfaces. It backs the test suite and local development; semantics
// mirror the postgres backend, including transactional all-or-nothing
// behavior via copy-on-write snapshots.
package memory

import (
	"context"
	"sync"

	"filecrate/internal/domain/models"
	"filecrate/internal/domain/repositories"
)

// state is the full dataset. Transactions work on a clone and swap it in
// on commit, so a failed unit of work leaves the original untouched.
type state struct {
	folders      map[int64]models.Folder
	files        map[int64]models.File
	users        map[string]models.User
	usersByEmail map[string]string
	folderSeq    int64
	fileSeq      int64
}

func newState() *state {
	return &state{
		folders:      make(map[int64]models.Folder),
		files:        make(map[int64]models.File),
		users:        make(map[string]models.User),
		usersByEmail: make(map[string]string),
	}
}

func (st *state) clone() *state {
	next := &state{
		folders:      make(map[int64]models.Folder, len(st.folders)),
		files:        make(map[int64]models.File, len(st.files)),
		users:        make(map[string]models.User, len(st.users)),
		usersByEmail: make(map[string]string, len(st.usersByEmail)),
		folderSeq:    st.folderSeq,
		fileSeq:      st.fileSeq,
	}
	for id, f := range st.folders {
		next.folders[id] = f
	}
	for id, f := range st.files {
		next.files[id] = f
	}
	for id, u := range st.users {
		next.users[id] = u
	}
	for email, id := range st.usersByEmail {
		next.usersByEmail[email] = id
	}
	return next
}

// Store holds the dataset behind a single mutex. A transaction holds the
// mutex for its whole extent, so tx reads and writes are consistent.
type Store struct {
	mu    sync.Mutex
	state *state
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{state: newState()}
}

type txContextKey struct{}

func setTxState(ctx context.Context, st *state) context.Context {
	return context.WithValue(ctx, txContextKey{}, st)
}

func getTxState(ctx context.Context) *state {
	st, _ := ctx.Value(txContextKey{}).(*state)
	return st
}

// with runs fn against the ambient transaction state when one is present,
// otherwise against the live state under the store lock.
func (s *Store) with(ctx context.Context, fn func(st *state) error) error {
	if st := getTxState(ctx); st != nil {
		return fn(st)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

// TransactionManager implements repositories.TransactionManager over the
// store's snapshot mechanism.
type TransactionManager struct {
	store *Store
}

// NewTransactionManager creates a transaction manager for the store
func NewTransactionManager(store *Store) repositories.TransactionManager {
	return &TransactionManager{store: store}
}

// ExecTx executes fn against a snapshot of the store. The snapshot
// replaces the live state only when fn succeeds; any error discards
// every change made inside fn.
func (tm *TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	tm.store.mu.Lock()
	defer tm.store.mu.Unlock()

	working := tm.store.state.clone()
	if err := fn(setTxState(ctx, working)); err != nil {
		return err
	}

	tm.store.state = working
	return nil
}
