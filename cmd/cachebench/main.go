package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/d60-Lab/socialcore/config"
	"github.com/d60-Lab/socialcore/internal/cacheperf"
	"github.com/d60-Lab/socialcore/internal/model"
	"github.com/d60-Lab/socialcore/pkg/database"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func mustDo(err error) {
	if err != nil {
		panic(err)
	}
}

func main() {
	ctx := context.Background()

	cfg := must(config.Load())
	db := must(database.InitDB(cfg))
	mustDo(db.AutoMigrate(&model.User{}, &model.Interaction{}))

	redisAddr := cfg.RedisAddr
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	cache := redis.NewClient(&redis.Options{Addr: redisAddr})
	mustDo(cache.Ping(ctx).Err())

	userCount := 20000
	if s := os.Getenv("USERS"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			userCount = n
		}
	}
	requests := 2000
	if s := os.Getenv("REQUESTS"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			requests = n
		}
	}
	pageSize := 20

	fmt.Println("Setting up test data...")

	viewer := model.User{ID: "viewer", Mobile: "m-viewer", Username: "viewer"}
	_ = db.Where("id = ?", viewer.ID).FirstOrCreate(&viewer).Error

	users := make([]model.User, 0, 1000)
	for i := 0; i < userCount; i++ {
		id := uuid.New().String()
		users = append(users, model.User{ID: id, Mobile: "m-" + id[:12], Username: "u" + id[:8], Email: id[:8] + "@example.com"})
		if len(users) == 1000 {
			mustDo(db.Create(&users).Error)
			users = users[:0]
		}
	}
	if len(users) > 0 {
		mustDo(db.Create(&users).Error)
	}

	// viewer passes by 10% of the pool
	var ids []string
	mustDo(db.Table("users").Where("id <> ?", viewer.ID).Limit(userCount/10).Pluck("id", &ids).Error)
	interactions := make([]model.Interaction, 0, 1000)
	for _, id := range ids {
		interactions = append(interactions, model.Interaction{
			ID: uuid.New().String(), ActorID: viewer.ID, TargetID: id, Disposition: model.DispositionPassedBy,
		})
		if len(interactions) == 1000 {
			mustDo(db.Create(&interactions).Error)
			interactions = interactions[:0]
		}
	}
	if len(interactions) > 0 {
		mustDo(db.Create(&interactions).Error)
	}

	svc := cacheperf.NewCandidateService(db, cache, 10*time.Minute, 0)

	type strategy struct {
		name  string
		fetch func(ctx context.Context, viewerID string, page, size int) ([]cacheperf.CandidateSnapshot, error)
	}
	strategies := []strategy{
		{"no-cache", svc.FetchCandidatesNoCache},
		{"naive-page-cache", svc.FetchCandidatesNaiveCache},
		{"id-index+bulk-load", svc.FetchCandidatesOptimized},
	}

	pct := func(vs []time.Duration, p float64) time.Duration {
		if len(vs) == 0 {
			return 0
		}
		xs := append([]time.Duration(nil), vs...)
		sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
		k := int(math.Ceil(p*float64(len(xs)))) - 1
		if k < 0 {
			k = 0
		}
		if k >= len(xs) {
			k = len(xs) - 1
		}
		return xs[k]
	}

	maxPage := (userCount - userCount/10) / pageSize
	fmt.Printf("users=%d, requests=%d, page_size=%d\n", userCount, requests, pageSize)
	for _, st := range strategies {
		mustDo(cache.FlushDB(ctx).Err())
		recs := make([]time.Duration, 0, requests)
		t0 := time.Now()
		for i := 0; i < requests; i++ {
			page := 1 + rand.Intn(maxPage)
			s := time.Now()
			if _, err := st.fetch(ctx, viewer.ID, page, pageSize); err != nil {
				panic(err)
			}
			recs = append(recs, time.Since(s))
		}
		total := time.Since(t0)
		pageQ, idxLoads, bulkLoads := svc.Stats()
		fmt.Printf("%-20s total=%v per-op=%v p50=%v p95=%v p99=%v (pageQ=%d idxLoads=%d bulkLoads=%d)\n",
			st.name, total, total/time.Duration(requests),
			pct(recs, 0.50), pct(recs, 0.95), pct(recs, 0.99),
			pageQ, idxLoads, bulkLoads)
	}
}
