package review

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mnemo-app/mnemo-api/internal/domain"
	"github.com/mnemo-app/mnemo-api/internal/store"
)

// testLogger returns a logger that discards everything.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// In-memory store fakes. WithTx returns the fake itself; transactional
// semantics are provided by fakeTxRunner, which snapshots the mutable fakes
// before the transaction function runs and restores them when it fails.

type fakeCardStore struct {
	cards map[uuid.UUID]*domain.Card
}

func newFakeCardStore() *fakeCardStore {
	return &fakeCardStore{cards: make(map[uuid.UUID]*domain.Card)}
}

func (f *fakeCardStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Card, error) {
	card, ok := f.cards[id]
	if !ok {
		return nil, store.ErrCardNotFound
	}
	return card, nil
}

func (f *fakeCardStore) GetDueCards(
	_ context.Context, _, _ uuid.UUID, _ time.Time, _ int,
) ([]*domain.Card, error) {
	return nil, nil
}

func (f *fakeCardStore) GetNewCards(
	_ context.Context, _, _ uuid.UUID, _ int,
) ([]*domain.Card, error) {
	return nil, nil
}

func (f *fakeCardStore) WithTx(_ *sql.Tx) store.CardStore { return f }

type fakeDeckStore struct {
	decks map[uuid.UUID]*domain.Deck
}

func newFakeDeckStore() *fakeDeckStore {
	return &fakeDeckStore{decks: make(map[uuid.UUID]*domain.Deck)}
}

func (f *fakeDeckStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Deck, error) {
	deck, ok := f.decks[id]
	if !ok {
		return nil, store.ErrDeckNotFound
	}
	return deck, nil
}

func (f *fakeDeckStore) ListByUser(_ context.Context, _ uuid.UUID) ([]*domain.Deck, error) {
	return nil, nil
}

func (f *fakeDeckStore) GetAvailability(
	_ context.Context, _ uuid.UUID, _ time.Time,
) ([]*domain.DeckAvailability, error) {
	return nil, nil
}

func (f *fakeDeckStore) WithTx(_ *sql.Tx) store.DeckStore { return f }

type stateKey struct {
	userID uuid.UUID
	cardID uuid.UUID
}

type fakeStateStore struct {
	states    map[stateKey]*domain.CardMemoryState
	getErr    error
	upsertErr error
}

func newFakeStateStore() *fakeStateStore {
	return &fakeStateStore{states: make(map[stateKey]*domain.CardMemoryState)}
}

func (f *fakeStateStore) Get(_ context.Context, userID, cardID uuid.UUID) (*domain.CardMemoryState, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	state, ok := f.states[stateKey{userID, cardID}]
	if !ok {
		return nil, store.ErrMemoryStateNotFound
	}
	copied := *state
	return &copied, nil
}

func (f *fakeStateStore) GetForUpdate(ctx context.Context, userID, cardID uuid.UUID) (*domain.CardMemoryState, error) {
	return f.Get(ctx, userID, cardID)
}

func (f *fakeStateStore) Upsert(_ context.Context, state *domain.CardMemoryState) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	copied := *state
	f.states[stateKey{state.UserID, state.CardID}] = &copied
	return nil
}

func (f *fakeStateStore) WithTx(_ *sql.Tx) store.MemoryStateStore { return f }

func (f *fakeStateStore) snapshot() map[stateKey]*domain.CardMemoryState {
	snap := make(map[stateKey]*domain.CardMemoryState, len(f.states))
	for k, v := range f.states {
		copied := *v
		snap[k] = &copied
	}
	return snap
}

type fakeEventStore struct {
	events    []*domain.ReviewEvent
	appendErr error
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{}
}

func (f *fakeEventStore) Append(_ context.Context, event *domain.ReviewEvent) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	copied := *event
	f.events = append(f.events, &copied)
	return nil
}

func (f *fakeEventStore) ListByCard(_ context.Context, userID, cardID uuid.UUID) ([]*domain.ReviewEvent, error) {
	var out []*domain.ReviewEvent
	for _, e := range f.events {
		if e.UserID == userID && e.CardID == cardID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventStore) WithTx(_ *sql.Tx) store.ReviewEventStore { return f }

type fakeSessionStore struct {
	sessions map[uuid.UUID]*domain.StudySession
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[uuid.UUID]*domain.StudySession)}
}

func (f *fakeSessionStore) Create(_ context.Context, session *domain.StudySession) error {
	copied := *session
	f.sessions[session.ID] = &copied
	return nil
}

func (f *fakeSessionStore) GetByID(_ context.Context, id uuid.UUID) (*domain.StudySession, error) {
	session, ok := f.sessions[id]
	if !ok {
		return nil, store.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (f *fakeSessionStore) Update(_ context.Context, session *domain.StudySession) error {
	if _, ok := f.sessions[session.ID]; !ok {
		return store.ErrSessionNotFound
	}
	copied := *session
	f.sessions[session.ID] = &copied
	return nil
}

func (f *fakeSessionStore) ListByUser(_ context.Context, _ uuid.UUID, _ int) ([]*domain.StudySession, error) {
	return nil, nil
}

func (f *fakeSessionStore) WithTx(_ *sql.Tx) store.StudySessionStore { return f }

// fakeTxRunner mirrors RunInTransaction against the in-memory fakes: when
// the transaction function fails, all writes made inside it are undone.
func fakeTxRunner(states *fakeStateStore, events *fakeEventStore) func(context.Context, *sql.DB, store.TxFn) error {
	return func(ctx context.Context, _ *sql.DB, fn store.TxFn) error {
		stateSnap := states.snapshot()
		eventLen := len(events.events)

		if err := fn(ctx, nil); err != nil {
			states.states = stateSnap
			events.events = events.events[:eventLen]
			return err
		}
		return nil
	}
}
