package memory

import (
	"context"
	"time"

	"Sizzle_Season/internal/model"
)

// ChallengeRepository service.ChallengeRepo 的内存实现
type ChallengeRepository struct {
	s *Store
}

func NewChallengeRepository(s *Store) *ChallengeRepository {
	return &ChallengeRepository{s: s}
}

func (r *ChallengeRepository) Create(ctx context.Context, ch *model.Challenge) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	ch.ID = s.nextIDLocked()
	ch.CreatedAt = time.Now()
	ch.UpdatedAt = ch.CreatedAt
	cp := *ch
	s.challenges[ch.ID] = &cp
	return nil
}

func (r *ChallengeRepository) FindByID(ctx context.Context, id uint64) (*model.Challenge, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.challenges[id]
	if !ok {
		return nil, model.ErrChallengeNotFound
	}
	cp := *ch
	return &cp, nil
}

func (r *ChallengeRepository) Current(ctx context.Context, now time.Time) (*model.Challenge, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	// 先找进行中的，取最近开始的那个
	var active *model.Challenge
	for _, ch := range s.challenges {
		if !ch.StartAt.After(now) && ch.EndAt.After(now) {
			if active == nil || ch.StartAt.After(active.StartAt) {
				active = ch
			}
		}
	}
	if active != nil {
		cp := *active
		return &cp, nil
	}

	// 没有则取最近一个未开始的
	var next *model.Challenge
	for _, ch := range s.challenges {
		if ch.StartAt.After(now) {
			if next == nil || ch.StartAt.Before(next.StartAt) {
				next = ch
			}
		}
	}
	if next == nil {
		return nil, model.ErrChallengeNotFound
	}
	cp := *next
	return &cp, nil
}

func (r *ChallengeRepository) ListUnsettledEnded(ctx context.Context, now time.Time) ([]model.Challenge, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Challenge
	for _, ch := range s.challenges {
		if !ch.Settled && !ch.EndAt.After(now) {
			out = append(out, *ch)
		}
	}
	return out, nil
}

func (r *ChallengeRepository) MarkSettled(ctx context.Context, id, winnerSubmissionID uint64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.challenges[id]
	if !ok {
		return model.ErrChallengeNotFound
	}
	ch.Settled = true
	ch.WinnerSubmissionID = winnerSubmissionID
	ch.UpdatedAt = time.Now()
	return nil
}

func (r *ChallengeRepository) CountParticipants(ctx context.Context, challengeID uint64) (int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[uint64]struct{})
	for _, sub := range s.submissions {
		if sub.ChallengeID == challengeID {
			seen[sub.AuthorID] = struct{}{}
		}
	}
	return int64(len(seen)), nil
}

func (r *ChallengeRepository) CountSubmissions(ctx context.Context, challengeID uint64) (int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, sub := range s.submissions {
		if sub.ChallengeID == challengeID {
			n++
		}
	}
	return n, nil
}
