package contract_test

import (
	"context"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/hellaspet/backend-insurance/internal/application"
	"github.com/hellaspet/backend-insurance/internal/contract"
	"github.com/hellaspet/backend-insurance/internal/lock"
	"github.com/hellaspet/backend-insurance/internal/money"
	"github.com/hellaspet/backend-insurance/internal/rating"
)

type fakeStore struct {
	mu   sync.Mutex
	apps map[uuid.UUID]*application.Application
}

func (f *fakeStore) Create(_ context.Context, app *application.Application) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if app.ID == uuid.Nil {
		app.ID = uuid.New()
	}
	clone := *app
	f.apps[app.ID] = &clone
	return nil
}

func (f *fakeStore) Get(_ context.Context, id uuid.UUID) (*application.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	app, ok := f.apps[id]
	if !ok {
		return nil, application.ErrNotFound
	}
	clone := *app
	if app.PrimaryPremium != nil {
		p := *app.PrimaryPremium
		clone.PrimaryPremium = &p
	}
	return &clone, nil
}

func (f *fakeStore) Update(_ context.Context, app *application.Application) error {
	return f.Create(context.Background(), app)
}

func (f *fakeStore) UpdatePremiums(_ context.Context, id uuid.UUID, slot rating.PetSlot, p application.StoredPremium) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	app, ok := f.apps[id]
	if !ok {
		return application.ErrNotFound
	}
	stored := p
	app.SetPremium(slot, &stored)
	return nil
}

func (f *fakeStore) MarkContractGenerated(_ context.Context, id uuid.UUID, pdfPath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	app, ok := f.apps[id]
	if !ok {
		return application.ErrNotFound
	}
	app.ContractGenerated = true
	app.ContractPDFPath = pdfPath
	return nil
}

type captureFiller struct {
	mu    sync.Mutex
	calls []map[string]string
	paths []string
	fail  error
}

func (c *captureFiller) Fill(_ context.Context, documentPath string, fields map[string]string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail != nil {
		return c.fail
	}
	c.paths = append(c.paths, documentPath)
	c.calls = append(c.calls, fields)
	return nil
}

func newWorker(t *testing.T) (*contract.Worker, *fakeStore, *captureFiller) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := &fakeStore{apps: map[uuid.UUID]*application.Application{}}
	svc := &application.Service{
		Store:   store,
		Locker:  lock.Locker{R: client, RetryBackoff: 5 * time.Millisecond},
		LockTTL: time.Second,
		Log:     zerolog.Nop(),
	}
	filler := &captureFiller{}
	return &contract.Worker{Svc: svc, Filler: filler, Log: zerolog.Nop()}, store, filler
}

func TestHandleRegenerateRepairsBeforeFilling(t *testing.T) {
	worker, store, filler := newWorker(t)

	app := loadedApplication()
	app.ContractGenerated = true
	app.ContractPDFPath = "contracts/HOL-2026-3fa2b1.pdf"
	// Stored premium drifted away from what the inputs produce (376.97).
	app.PrimaryPremium = &application.StoredPremium{
		Annual:   money.MustParse("350.00"),
		Semester: money.MustParse("180.00"),
		Quarter:  money.MustParse("95.00"),
	}
	require.NoError(t, store.Create(context.Background(), app))

	task, err := contract.NewRegenerateTask(app.ID, rating.SlotPrimary)
	require.NoError(t, err)
	require.NoError(t, worker.HandleRegenerate(context.Background(), task))

	filler.mu.Lock()
	defer filler.mu.Unlock()
	require.Len(t, filler.calls, 1)
	require.Equal(t, "contracts/HOL-2026-3fa2b1.pdf", filler.paths[0])
	// The document prints the repaired premium, not the drifted one.
	require.Equal(t, "376.97€", filler.calls[0]["premium_total"])

	persisted, err := store.Get(context.Background(), app.ID)
	require.NoError(t, err)
	require.Equal(t, "376.97", persisted.PrimaryPremium.Annual.String())
}

func TestHandleRegenerateSkipsVacatedSlot(t *testing.T) {
	worker, store, filler := newWorker(t)

	app := loadedApplication()
	app.PrimaryPremium = &application.StoredPremium{
		Annual:   money.MustParse("376.97"),
		Semester: money.MustParse("196.70"),
		Quarter:  money.MustParse("103.13"),
	}
	require.NoError(t, store.Create(context.Background(), app))

	task, err := contract.NewRegenerateTask(app.ID, rating.SlotSecondary)
	require.NoError(t, err)
	require.NoError(t, worker.HandleRegenerate(context.Background(), task))

	filler.mu.Lock()
	defer filler.mu.Unlock()
	require.Empty(t, filler.calls)
}

func TestHandleRegenerateSurfacesFillerError(t *testing.T) {
	worker, store, filler := newWorker(t)
	filler.fail = context.DeadlineExceeded

	app := loadedApplication()
	require.NoError(t, store.Create(context.Background(), app))

	task, err := contract.NewRegenerateTask(app.ID, rating.SlotPrimary)
	require.NoError(t, err)
	require.Error(t, worker.HandleRegenerate(context.Background(), task))
}
