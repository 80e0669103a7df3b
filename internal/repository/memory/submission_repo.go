package memory

import (
	"context"
	"sort"
	"time"

	"Sizzle_Season/internal/model"
)

// SubmissionRepository service.SubmissionRepo 的内存实现
type SubmissionRepository struct {
	s *Store
}

func NewSubmissionRepository(s *Store) *SubmissionRepository {
	return &SubmissionRepository{s: s}
}

func (r *SubmissionRepository) Create(ctx context.Context, sub *model.Submission) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	sub.ID = s.nextIDLocked()
	sub.CreatedAt = time.Now()
	sub.UpdatedAt = sub.CreatedAt
	cp := *sub
	s.submissions[sub.ID] = &cp
	return nil
}

func (r *SubmissionRepository) FindByID(ctx context.Context, id uint64) (*model.Submission, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.submissions[id]
	if !ok {
		return nil, model.ErrSubmissionNotFound
	}
	cp := *sub
	return &cp, nil
}

func (r *SubmissionRepository) Like(ctx context.Context, userID, submissionID uint64) (uint64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.submissions[submissionID]
	if !ok {
		return 0, model.ErrSubmissionNotFound
	}
	key := pairKey(userID, submissionID)
	if _, dup := s.likes[key]; dup {
		return sub.AuthorID, model.ErrDuplicateLike
	}
	s.likes[key] = struct{}{}
	sub.LikeCount++
	return sub.AuthorID, nil
}

func (r *SubmissionRepository) IsLiked(ctx context.Context, userID, submissionID uint64) (bool, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	_, liked := s.likes[pairKey(userID, submissionID)]
	return liked, nil
}

func (r *SubmissionRepository) AddComment(ctx context.Context, c *model.Comment) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.submissions[c.SubmissionID]
	if !ok {
		return model.ErrSubmissionNotFound
	}
	c.ID = s.nextIDLocked()
	c.CreatedAt = time.Now()
	s.comments = append(s.comments, *c)
	sub.CommentCnt++
	return nil
}

func (r *SubmissionRepository) ListByChallengeCursor(ctx context.Context, challengeID, lastID uint64, lastCreatedAt int64, limit int) ([]model.Submission, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]model.Submission, 0)
	for _, sub := range s.submissions {
		if sub.ChallengeID == challengeID {
			all = append(all, *sub)
		}
	}
	// 新的在前，与 mysql 实现一致
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})

	out := make([]model.Submission, 0, limit)
	for _, sub := range all {
		if lastCreatedAt > 0 {
			ts := sub.CreatedAt.Unix()
			if ts > lastCreatedAt || (ts == lastCreatedAt && sub.ID >= lastID) {
				continue
			}
		}
		out = append(out, sub)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *SubmissionRepository) ListByAuthor(ctx context.Context, authorID uint64, limit int) ([]model.Submission, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]model.Submission, 0)
	for _, sub := range s.submissions {
		if sub.AuthorID == authorID {
			all = append(all, *sub)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *SubmissionRepository) TopByChallenge(ctx context.Context, challengeID uint64) (*model.Submission, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	var top *model.Submission
	for _, sub := range s.submissions {
		if sub.ChallengeID != challengeID {
			continue
		}
		// 平手取先发的（ID 小的）
		if top == nil || sub.LikeCount > top.LikeCount ||
			(sub.LikeCount == top.LikeCount && sub.ID < top.ID) {
			top = sub
		}
	}
	if top == nil {
		return nil, model.ErrSubmissionNotFound
	}
	cp := *top
	return &cp, nil
}
