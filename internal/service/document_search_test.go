package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"chms-be/internal/domain"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// fakeEventSearcher records the queries that actually reached the backend
type fakeEventSearcher struct {
	mu      sync.Mutex
	queries []string
}

func (f *fakeEventSearcher) SearchEvents(ctx context.Context, teamID, search string) ([]domain.TeamCalendarEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, search)
	return []domain.TeamCalendarEvent{{ID: "e1", Title: search}}, nil
}

func (f *fakeEventSearcher) seen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

func TestDocumentSearcher_DebouncesKeystrokes(t *testing.T) {
	backend := &fakeEventSearcher{}
	searcher := NewDocumentSearcher(backend, zap.NewNop())
	defer searcher.Close()

	var mu sync.Mutex
	var delivered []domain.TeamCalendarEvent
	deliver := func(events []domain.TeamCalendarEvent, err error) {
		mu.Lock()
		defer mu.Unlock()
		delivered = events
	}

	// Simulated typing: each keystroke restarts the quiet period
	for _, q := range []string{"p", "pr", "pra", "pract"} {
		searcher.SetQuery("t1", q, deliver)
		time.Sleep(20 * time.Millisecond)
	}

	assert.Eventually(t, func() bool {
		return len(backend.seen()) > 0
	}, 2*time.Second, 10*time.Millisecond)

	// Only the final query should have reached the backend
	assert.Equal(t, []string{"pract"}, backend.seen())

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, delivered, 1)
	assert.Equal(t, "pract", delivered[0].Title)
}

func TestDocumentSearcher_EmptyQueryCancelsPending(t *testing.T) {
	backend := &fakeEventSearcher{}
	searcher := NewDocumentSearcher(backend, zap.NewNop())
	defer searcher.Close()

	searcher.SetQuery("t1", "practice", func([]domain.TeamCalendarEvent, error) {})
	searcher.SetQuery("t1", "", nil)

	time.Sleep(500 * time.Millisecond)
	assert.Empty(t, backend.seen(), "clearing the query should cancel the pending search")
}

func TestDocumentSearcher_CloseSuppressesDelivery(t *testing.T) {
	backend := &fakeEventSearcher{}
	searcher := NewDocumentSearcher(backend, zap.NewNop())

	var deliveredCount int32
	searcher.SetQuery("t1", "practice", func([]domain.TeamCalendarEvent, error) {
		deliveredCount++
	})
	searcher.Close()

	time.Sleep(500 * time.Millisecond)
	assert.Empty(t, backend.seen())
	assert.Zero(t, deliveredCount, "no result should be delivered after Close")

	// Close is idempotent
	searcher.Close()
}
