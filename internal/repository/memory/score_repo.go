package memory

import (
	"context"
	"fmt"
	"time"

	"Sizzle_Season/internal/model"
)

// ScoreEventRepository service.ScoreEventRepo 的内存实现
type ScoreEventRepository struct {
	s *Store
}

func NewScoreEventRepository(s *Store) *ScoreEventRepository {
	return &ScoreEventRepository{s: s}
}

func eventKey(ev *model.ScoreEvent) string {
	return fmt.Sprintf("%d|%s|%s", ev.UserID, ev.Kind, ev.SourceID)
}

func (r *ScoreEventRepository) Record(ctx context.Context, ev *model.ScoreEvent) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	key := eventKey(ev)
	if _, dup := s.eventKeys[key]; dup {
		return model.ErrDuplicateEvent
	}

	ev.ID = s.nextIDLocked()
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now()
	}
	s.eventKeys[key] = struct{}{}
	s.events = append(s.events, *ev)

	if u, ok := s.users[ev.UserID]; ok {
		u.TotalScore += ev.Points
	}
	s.outbox = append(s.outbox, model.ScoreOutbox{
		ID:      ev.ID,
		UserID:  ev.UserID,
		Kind:    ev.Kind,
		Payload: fmt.Sprintf(`{"event_id":%d,"user_id":%d,"kind":%q,"points":%d}`, ev.ID, ev.UserID, ev.Kind, ev.Points),
	})
	return nil
}

func (r *ScoreEventRepository) SumPoints(ctx context.Context, userID uint64) (int64, error) {
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

func (r *ScoreEventRepository) ListByUser(ctx context.Context, userID uint64, limit int) ([]model.ScoreEvent, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.ScoreEvent
	for i := len(s.events) - 1; i >= 0 && len(out) < limit; i-- {
		if s.events[i].UserID == userID {
			out = append(out, s.events[i])
		}
	}
	return out, nil
}
