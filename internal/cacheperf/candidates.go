package cacheperf

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/d60-Lab/socialcore/internal/model"
)

// CandidateSnapshot contains minimal user info required by feed pages.
type CandidateSnapshot struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Age      int    `json:"age"`
}

// CandidateService demonstrates different caching strategies for candidate feed
// reads. A candidate page is the set of users excluding the viewer and anyone
// the viewer has passed by.
type CandidateService struct {
	db      *gorm.DB
	cache   *redis.Client
	ttl     time.Duration
	dbDelay time.Duration

	pageQueries  atomic.Int64
	indexLoads   atomic.Int64
	userBulkLoad atomic.Int64
}

// NewCandidateService builds a demo service using the provided DB + Redis client.
// dbDelay simulates the round-trip cost of hitting the primary store.
func NewCandidateService(db *gorm.DB, cache *redis.Client, ttl, dbDelay time.Duration) *CandidateService {
	return &CandidateService{db: db, cache: cache, ttl: ttl, dbDelay: dbDelay}
}

func (s *CandidateService) FetchCandidatesNoCache(ctx context.Context, viewerID string, page, size int) ([]CandidateSnapshot, error) {
	return s.queryCandidates(ctx, viewerID, page, size)
}

func (s *CandidateService) FetchCandidatesNaiveCache(ctx context.Context, viewerID string, page, size int) ([]CandidateSnapshot, error) {
	key := fmt.Sprintf("candidates:%s:%d:%d", viewerID, page, size)
	if data, err := s.cache.Get(ctx, key).Bytes(); err == nil {
		var out []CandidateSnapshot
		if uErr := json.Unmarshal(data, &out); uErr == nil {
			return out, nil
		}
	}

	rows, err := s.queryCandidates(ctx, viewerID, page, size)
	if err != nil {
		return nil, err
	}
	if payload, err := json.Marshal(rows); err == nil {
		_ = s.cache.Set(ctx, key, payload, s.ttl).Err()
	}
	return rows, nil
}

func (s *CandidateService) FetchCandidatesOptimized(ctx context.Context, viewerID string, page, size int) ([]CandidateSnapshot, error) {
	key := indexKey(viewerID)

	start := (page - 1) * size
	end := start + size - 1

	exists, _ := s.cache.Exists(ctx, key).Result()
	var ids []string

	if exists > 0 {
		// LRANGE fetches only the IDs the page needs
		ids, _ = s.cache.LRange(ctx, key, int64(start), int64(end)).Result()
	}

	if len(ids) == 0 {
		allIDs, err := s.loadCandidateIDsAndCache(ctx, viewerID)
		if err != nil {
			return nil, err
		}

		if start >= len(allIDs) {
			return []CandidateSnapshot{}, nil
		}
		endIdx := start + size
		if endIdx > len(allIDs) {
			endIdx = len(allIDs)
		}
		ids = allIDs[start:endIdx]
	}

	return s.loadUsers(ctx, ids)
}

// Invalidate drops the cached candidate index for a viewer. Call it whenever the
// viewer's pass-by set changes, otherwise a dismissed user could resurface from
// the stale index.
func (s *CandidateService) Invalidate(ctx context.Context, viewerID string) {
	_ = s.cache.Del(ctx, indexKey(viewerID)).Err()
}

// Stats returns (page queries, index loads, user bulk loads) issued against the DB.
func (s *CandidateService) Stats() (int64, int64, int64) {
	return s.pageQueries.Load(), s.indexLoads.Load(), s.userBulkLoad.Load()
}

func indexKey(viewerID string) string {
	return fmt.Sprintf("candidates:index:%s", viewerID)
}

func (s *CandidateService) exclusionSubquery(ctx context.Context, viewerID string) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("interactions").
		Select("target_id").
		Where("actor_id = ? AND disposition = ?", viewerID, model.DispositionPassedBy)
}

func (s *CandidateService) queryCandidates(ctx context.Context, viewerID string, page, size int) ([]CandidateSnapshot, error) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}

	time.Sleep(s.dbDelay)

	s.pageQueries.Add(1)

	var rows []CandidateSnapshot
	err := s.db.WithContext(ctx).
		Table("users").
		Select("id", "username", "email", "age").
		Where("id <> ?", viewerID).
		Where("id NOT IN (?)", s.exclusionSubquery(ctx, viewerID)).
		Order("created_at DESC, id DESC").
		Offset((page - 1) * size).
		Limit(size).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *CandidateService) loadCandidateIDsAndCache(ctx context.Context, viewerID string) ([]string, error) {
	time.Sleep(s.dbDelay)
	s.indexLoads.Add(1)

	var ids []string
	if err := s.db.WithContext(ctx).
		Table("users").
		Where("id <> ?", viewerID).
		Where("id NOT IN (?)", s.exclusionSubquery(ctx, viewerID)).
		Order("created_at DESC, id DESC").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}

	key := indexKey(viewerID)
	if len(ids) > 0 {
		pipe := s.cache.Pipeline()
		pipe.Del(ctx, key)
		pipe.RPush(ctx, key, interfaceSlice(ids)...)
		pipe.Expire(ctx, key, s.ttl)
		pipe.Exec(ctx)
	}

	return ids, nil
}

func (s *CandidateService) loadUsers(ctx context.Context, ids []string) ([]CandidateSnapshot, error) {
	if len(ids) == 0 {
		return []CandidateSnapshot{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = fmt.Sprintf("user:%s", id)
	}

	cached := make(map[string]CandidateSnapshot, len(ids))
	if vals, err := s.cache.MGet(ctx, keys...).Result(); err == nil {
		for i, v := range vals {
			if v == nil {
				continue
			}
			if str, ok := v.(string); ok {
				var snap CandidateSnapshot
				if uErr := json.Unmarshal([]byte(str), &snap); uErr == nil {
					cached[ids[i]] = snap
				}
			}
		}
	}

	missing := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := cached[id]; !ok {
			missing = append(missing, id)
		}
	}

	if len(missing) > 0 {
		s.userBulkLoad.Add(1)

		time.Sleep(s.dbDelay)

		var users []model.User
		if err := s.db.WithContext(ctx).Where("id IN ?", missing).Find(&users).Error; err != nil {
			return nil, err
		}
		for _, u := range users {
			snap := CandidateSnapshot{ID: u.ID, Username: u.Username, Email: u.Email, Age: u.Age}
			cached[u.ID] = snap
			if payload, err := json.Marshal(snap); err == nil {
				_ = s.cache.Set(ctx, fmt.Sprintf("user:%s", u.ID), payload, s.ttl).Err()
			}
		}
	}

	out := make([]CandidateSnapshot, 0, len(ids))
	for _, id := range ids {
		if snap, ok := cached[id]; ok {
			out = append(out, snap)
		}
	}
	return out, nil
}

func interfaceSlice(strs []string) []interface{} {
	result := make([]interface{}, len(strs))
	for i, s := range strs {
		result[i] = s
	}
	return result
}
