package memory

import (
	"context"
	"sort"

	"Sizzle_Season/internal/model"
	"Sizzle_Season/internal/service"
)

// OutboxRepository service.OutboxRepo 的内存实现
type OutboxRepository struct {
	s *Store
}

func NewOutboxRepository(s *Store) *OutboxRepository {
	return &OutboxRepository{s: s}
}

func (r *OutboxRepository) ListPending(ctx context.Context, batchSize int) ([]model.ScoreOutbox, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.ScoreOutbox
	for _, ob := range s.outbox {
		if ob.Status == 0 {
			out = append(out, ob)
		}
		if len(out) >= batchSize {
			break
		}
	}
	return out, nil
}

func (r *OutboxRepository) MarkSent(ctx context.Context, id uint64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.outbox {
		if s.outbox[i].ID == id {
			s.outbox[i].Status = 1
			return nil
		}
	}
	return nil
}

func (r *OutboxRepository) MarkRetry(ctx context.Context, id uint64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.outbox {
		if s.outbox[i].ID == id {
			s.outbox[i].Status = 2
			s.outbox[i].Retry++
			return nil
		}
	}
	return nil
}

// ReconcilerRepository service.ReconcilerRepo 的内存实现
type ReconcilerRepository struct {
	s *Store
}

func NewReconcilerRepository(s *Store) *ReconcilerRepository {
	return &ReconcilerRepository{s: s}
}

func (r *ReconcilerRepository) ListUserScores(ctx context.Context, batchSize int, lastID uint64) ([]service.UserScore, uint64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]uint64, 0, len(s.users))
	for id := range s.users {
		if id > lastID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if len(ids) > batchSize {
		ids = ids[:batchSize]
	}
	if len(ids) == 0 {
		return nil, lastID, nil
	}

	out := make([]service.UserScore, 0, len(ids))
	for _, id := range ids {
		out = append(out, service.UserScore{ID: id, TotalScore: s.users[id].TotalScore})
	}
	return out, ids[len(ids)-1], nil
}

func (r *ReconcilerRepository) RealTotal(ctx context.Context, userID uint64) (int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, ev := range s.events {
		if ev.UserID == userID {
			total += ev.Points
		}
	}
	return total, nil
}

func (r *ReconcilerRepository) FixTotal(ctx context.Context, userID uint64, total int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if u, ok := s.users[userID]; ok {
		u.TotalScore = total
	}
	return nil
}
