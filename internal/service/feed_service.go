package service

import (
	"context"
	"fmt"

	"github.com/d60-Lab/socialcore/internal/model"
	"github.com/d60-Lab/socialcore/internal/repository"
)

// FeedService 候选 feed：排除自己与已划走（passedBy）的用户
// 收藏（bookmarked）不出排除集，仅表达兴趣，这是业务规则而非疏漏
type FeedService interface {
	GetFeed(ctx context.Context, userID string, offset, limit int) (users []*model.User, total int64, emptyFeed bool, err error)
	GetBookmarked(ctx context.Context, userID string) ([]*model.User, error)
	GetPassedBy(ctx context.Context, userID string) ([]*model.User, error)
	Bookmark(ctx context.Context, userID, targetID string) (*model.Interaction, error)
	PassBy(ctx context.Context, userID, targetID string) (*model.Interaction, error)
}

type feedService struct {
	userRepo        repository.UserRepository
	interactionRepo repository.InteractionRepository
}

func NewFeedService(userRepo repository.UserRepository, interactionRepo repository.InteractionRepository) FeedService {
	return &feedService{userRepo: userRepo, interactionRepo: interactionRepo}
}

func (s *feedService) GetFeed(ctx context.Context, userID string, offset, limit int) ([]*model.User, int64, bool, error) {
	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = 1
	}

	passed, err := s.interactionRepo.TargetsWithDisposition(ctx, userID, model.DispositionPassedBy)
	if err != nil {
		return nil, 0, false, err
	}
	excluded := append(passed, userID)

	users, total, err := s.userRepo.ListExcluding(ctx, excluded, offset, limit)
	if err != nil {
		return nil, 0, false, err
	}
	return users, total, total == 0, nil
}

func (s *feedService) GetBookmarked(ctx context.Context, userID string) ([]*model.User, error) {
	return s.listWithDisposition(ctx, userID, model.DispositionBookmarked)
}

func (s *feedService) GetPassedBy(ctx context.Context, userID string) ([]*model.User, error) {
	return s.listWithDisposition(ctx, userID, model.DispositionPassedBy)
}

func (s *feedService) listWithDisposition(ctx context.Context, userID string, d model.Disposition) ([]*model.User, error) {
	ids, err := s.interactionRepo.TargetsWithDisposition(ctx, userID, d)
	if err != nil {
		return nil, err
	}
	return s.userRepo.ListByIDs(ctx, ids)
}

func (s *feedService) Bookmark(ctx context.Context, userID, targetID string) (*model.Interaction, error) {
	return s.setDisposition(ctx, userID, targetID, model.DispositionBookmarked)
}

func (s *feedService) PassBy(ctx context.Context, userID, targetID string) (*model.Interaction, error) {
	return s.setDisposition(ctx, userID, targetID, model.DispositionPassedBy)
}

func (s *feedService) setDisposition(ctx context.Context, userID, targetID string, d model.Disposition) (*model.Interaction, error) {
	if userID == targetID {
		return nil, fmt.Errorf("cannot target self: %w", ErrForbidden)
	}
	for _, id := range []string{userID, targetID} {
		ok, err := s.userRepo.Exists(ctx, id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
	}
	return s.interactionRepo.SetDisposition(ctx, userID, targetID, d)
}
