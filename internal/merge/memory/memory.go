// Package memory provides an in-memory PayrollRunLister backed by a fixed
// page script, for tests and local development without Merge credentials.
package memory

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"paysum/internal/merge"
)

// Call records one listing request as the store served it.
type Call struct {
	Query  merge.RunQuery
	Cursor string
}

// Store serves a fixed sequence of pages. Cursors are synthesized so the
// caller exercises the same pagination protocol as the real API.
type Store struct {
	mu    sync.Mutex
	pages [][]merge.PayrollRun
	err   error
	calls []Call
}

// Ensure interface conformance
var _ merge.PayrollRunLister = (*Store)(nil)

func NewStore(pages ...[]merge.PayrollRun) *Store {
	return &Store{pages: pages}
}

// FailWith makes every subsequent call return err.
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Calls returns a copy of the requests served so far.
func (s *Store) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

func (s *Store) ListEmployeePayrollRuns(_ context.Context, q merge.RunQuery, cursor string) (merge.RunPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, Call{Query: q, Cursor: cursor})
	if s.err != nil {
		return merge.RunPage{}, s.err
	}

	index, err := s.pageIndex(cursor)
	if err != nil {
		return merge.RunPage{}, err
	}
	if index >= len(s.pages) {
		return merge.RunPage{}, nil
	}

	page := merge.RunPage{Results: s.pages[index]}
	if index+1 < len(s.pages) {
		page.Next = fmt.Sprintf("cursor-%d", index+1)
	}
	return page, nil
}

func (s *Store) pageIndex(cursor string) (int, error) {
	if cursor == "" {
		return 0, nil
	}
	index, err := strconv.Atoi(strings.TrimPrefix(cursor, "cursor-"))
	if err != nil {
		return 0, fmt.Errorf("unknown cursor %q", cursor)
	}
	return index, nil
}
