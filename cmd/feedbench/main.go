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

	"github.com/d60-Lab/socialcore/config"
	"github.com/d60-Lab/socialcore/internal/model"
	"github.com/d60-Lab/socialcore/internal/repository"
	"github.com/d60-Lab/socialcore/internal/service"
	"github.com/d60-Lab/socialcore/pkg/database"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func main() {
	cfg := must(config.Load())
	db := must(database.InitDB(cfg))
	if err := db.AutoMigrate(&model.User{}, &model.Profile{}, &model.Interaction{}); err != nil {
		panic(err)
	}

	userRepo := repository.NewUserRepository(db)
	interactionRepo := repository.NewInteractionRepository(db)
	feedSvc := service.NewFeedService(userRepo, interactionRepo)

	ctx := context.Background()

	N := 10000
	if s := os.Getenv("N"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			N = n
		}
	}
	PASS := N / 10
	if s := os.Getenv("PASS"); s != "" {
		if p, err := strconv.Atoi(s); err == nil && p >= 0 {
			PASS = p
		}
	}
	PAGE := 50
	if s := os.Getenv("PAGE"); s != "" {
		if p, err := strconv.Atoi(s); err == nil && p > 0 {
			PAGE = p
		}
	}
	READS := 1000
	if s := os.Getenv("READS"); s != "" {
		if r, err := strconv.Atoi(s); err == nil && r > 0 {
			READS = r
		}
	}

	// seed: viewer + N candidates
	viewer := model.User{ID: "viewer", Mobile: "m-viewer", Username: "viewer"}
	_ = db.Where("id = ?", viewer.ID).FirstOrCreate(&viewer).Error
	users := make([]model.User, N)
	batch := 1000
	for i := 0; i < N; i++ {
		id := uuid.New().String()
		users[i] = model.User{ID: id, Mobile: "m-" + id[:12], Username: "u" + id[:8], Email: id[:8] + "@example.com"}
		if (i+1)%batch == 0 {
			sub := users[i+1-batch : i+1]
			_ = db.Create(&sub).Error
		}
	}
	if N%batch != 0 {
		sub := users[N-N%batch:]
		_ = db.Create(&sub).Error
	}

	// viewer passes by PASS random candidates; measure write latency
	writeRecs := make([]time.Duration, 0, PASS)
	perm := rand.Perm(N)
	t0 := time.Now()
	for i := 0; i < PASS && i < N; i++ {
		st := time.Now()
		_, _ = feedSvc.PassBy(ctx, viewer.ID, users[perm[i]].ID)
		writeRecs = append(writeRecs, time.Since(st))
	}
	writeDur := time.Since(t0)

	// exclusion reads: first page + random deep pages
	readRecs := make([]time.Duration, 0, READS)
	var total int64
	t1 := time.Now()
	for i := 0; i < READS; i++ {
		offset := 0
		if total > 0 {
			offset = rand.Intn(int(total))
		}
		st := time.Now()
		_, tot, _, err := feedSvc.GetFeed(ctx, viewer.ID, offset, PAGE)
		if err != nil {
			panic(err)
		}
		total = tot
		readRecs = append(readRecs, time.Since(st))
	}
	readDur := time.Since(t1)

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

	fmt.Printf("N=%d, PASS=%d, PAGE=%d, READS=%d\n", N, PASS, PAGE, READS)
	if PASS > 0 {
		fmt.Printf("PassBy write total: %v, per op: %v, p50: %v, p95: %v, p99: %v\n",
			writeDur, writeDur/time.Duration(PASS), pct(writeRecs, 0.50), pct(writeRecs, 0.95), pct(writeRecs, 0.99))
	}
	fmt.Printf("Feed candidates remaining: %d\n", total)
	fmt.Printf("GetFeed(page=%d) total: %v, per op: %v, p50: %v, p95: %v, p99: %v\n",
		PAGE, readDur, readDur/time.Duration(READS), pct(readRecs, 0.50), pct(readRecs, 0.95), pct(readRecs, 0.99))
}
