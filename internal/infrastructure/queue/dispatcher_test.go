package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/account-service/internal/core/domain"
)

type memoryAuditRepo struct {
	mu       sync.Mutex
	events   []domain.AuditEvent
	failures int
}

func (r *memoryAuditRepo) InsertEvent(_ context.Context, e domain.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failures > 0 {
		r.failures--
		return errors.New("mongo down")
	}
	r.events = append(r.events, e)
	return nil
}

func (r *memoryAuditRepo) snapshot() []domain.AuditEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.AuditEvent(nil), r.events...)
}

func TestDispatcher_PreservesPerUserOrder(t *testing.T) {
	repo := &memoryAuditRepo{}
	d := NewDispatcher(4, repo, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	actions := []domain.AuditAction{
		domain.AuditRegistered, domain.AuditLogin, domain.AuditPasswordChanged, domain.AuditDeleted,
	}
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, a := range actions {
		d.Record(domain.AuditEvent{UserID: "user-a", Action: a, At: base.Add(time.Duration(i) * time.Second)})
		d.Record(domain.AuditEvent{UserID: "user-b", Action: a, At: base.Add(time.Duration(i) * time.Second)})
	}

	require.Eventually(t, func() bool { return len(repo.snapshot()) == 2*len(actions) }, 2*time.Second, 10*time.Millisecond)
	cancel()
	d.Wait()

	var got []domain.AuditAction
	for _, e := range repo.snapshot() {
		if e.UserID == "user-a" {
			got = append(got, e.Action)
		}
	}
	assert.Equal(t, actions, got)
}

func TestDispatcher_DrainsOnShutdown(t *testing.T) {
	repo := &memoryAuditRepo{}
	d := NewDispatcher(1, repo, zerolog.Nop())

	// Buffer before any worker runs, then cancel immediately.
	for i := 0; i < 10; i++ {
		d.Record(domain.AuditEvent{UserID: "user-a", Action: domain.AuditLogin})
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Start(ctx)
	d.Wait()

	assert.Len(t, repo.snapshot(), 10)
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	repo := &memoryAuditRepo{}
	d := NewDispatcher(1, repo, zerolog.Nop())

	for i := 0; i < channelBuffer+5; i++ {
		d.Record(domain.AuditEvent{UserID: "user-a", Action: domain.AuditLogin})
	}
	assert.Len(t, d.workers[0], channelBuffer)
}

func TestDispatcher_WriteFailureDoesNotStopWorker(t *testing.T) {
	repo := &memoryAuditRepo{failures: 1}
	d := NewDispatcher(1, repo, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	d.Record(domain.AuditEvent{UserID: "user-a", Action: domain.AuditLogin})
	d.Record(domain.AuditEvent{UserID: "user-a", Action: domain.AuditDeleted})
	require.Eventually(t, func() bool { return len(repo.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	d.Wait()

	events := repo.snapshot()
	require.Len(t, events, 1)
	assert.Equal(t, domain.AuditDeleted, events[0].Action)
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(0, &memoryAuditRepo{}, zerolog.Nop())
	require.Len(t, d.workers, defaultWorkers)
	for _, id := range []string{"", "user-a", "7f1e6c2a-4b9d-4c1e-9a55-0c7e3d2b1a10"} {
		idx := d.shardIndex(id)
		assert.Equal(t, idx, d.shardIndex(id))
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, defaultWorkers)
	}
}
