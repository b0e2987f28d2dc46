package lease

import (
	"context"
	"testing"
	"time"

	"scoutscore_backend/internal/scoring/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func testClient(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestLeaserSerializes(t *testing.T) {
	client, _ := testClient(t)
	leaser := NewRedisLeaser(client)
	ctx := context.Background()

	ok, err := leaser.Acquire(ctx, "scoring:recompute:p1", 30*time.Second)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if !ok {
		t.Fatal("first acquire should win")
	}

	ok, err = leaser.Acquire(ctx, "scoring:recompute:p1", 30*time.Second)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if ok {
		t.Fatal("second acquire must lose while the lease is held")
	}

	// A different prospect's lease is independent.
	ok, err = leaser.Acquire(ctx, "scoring:recompute:p2", 30*time.Second)
	if err != nil || !ok {
		t.Fatalf("unrelated lease should win, got %v/%v", ok, err)
	}

	if err := leaser.Release(ctx, "scoring:recompute:p1"); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	ok, err = leaser.Acquire(ctx, "scoring:recompute:p1", 30*time.Second)
	if err != nil || !ok {
		t.Fatalf("acquire after release should win, got %v/%v", ok, err)
	}
}

func TestLeaserTTLExpiry(t *testing.T) {
	client, mr := testClient(t)
	leaser := NewRedisLeaser(client)
	ctx := context.Background()

	if ok, _ := leaser.Acquire(ctx, "scoring:recompute:p1", time.Second); !ok {
		t.Fatal("first acquire should win")
	}
	mr.FastForward(2 * time.Second)

	ok, err := leaser.Acquire(ctx, "scoring:recompute:p1", time.Second)
	if err != nil || !ok {
		t.Fatalf("an expired lease should be free, got %v/%v", ok, err)
	}
}

func TestCacheRoundtrip(t *testing.T) {
	client, _ := testClient(t)
	cache := NewRedisCache(client)
	ctx := context.Background()
	prospectID, userID := uuid.New(), uuid.New()

	want := domain.FinalScore{
		Success:              true,
		FinalScore:           82,
		FinalLeadTemperature: domain.TemperatureHot,
		FinalRecommendedCTA:  "close_deal",
	}
	if err := cache.SetScore(ctx, prospectID, userID, want, 15*time.Minute); err != nil {
		t.Fatalf("SetScore failed: %v", err)
	}

	got, ok, err := cache.GetScore(ctx, prospectID, userID)
	if err != nil {
		t.Fatalf("GetScore failed: %v", err)
	}
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if got.FinalScore != 82 || got.FinalLeadTemperature != domain.TemperatureHot {
		t.Errorf("got %+v, want the stored score back", got)
	}
}

func TestCacheMissOnUnknownProspect(t *testing.T) {
	client, _ := testClient(t)
	cache := NewRedisCache(client)

	_, ok, err := cache.GetScore(context.Background(), uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("GetScore failed: %v", err)
	}
	if ok {
		t.Error("unknown prospect must miss")
	}
}

func TestCacheScopedToOwningUser(t *testing.T) {
	client, _ := testClient(t)
	cache := NewRedisCache(client)
	ctx := context.Background()
	prospectID := uuid.New()
	owner, other := uuid.New(), uuid.New()

	if err := cache.SetScore(ctx, prospectID, owner, domain.FinalScore{Success: true, FinalScore: 82}, 15*time.Minute); err != nil {
		t.Fatalf("SetScore failed: %v", err)
	}

	if _, ok, _ := cache.GetScore(ctx, prospectID, other); ok {
		t.Error("another user must not see the owner's cached score")
	}
	if _, ok, _ := cache.GetScore(ctx, prospectID, owner); !ok {
		t.Error("the owner's read should hit")
	}
}

func TestCacheCorruptEntryReadsAsMiss(t *testing.T) {
	client, mr := testClient(t)
	cache := NewRedisCache(client)
	prospectID, userID := uuid.New(), uuid.New()

	key := "scoring:score:" + userID.String() + ":" + prospectID.String()
	if err := mr.Set(key, "{not json"); err != nil {
		t.Fatalf("seed corrupt entry: %v", err)
	}

	_, ok, err := cache.GetScore(context.Background(), prospectID, userID)
	if err != nil {
		t.Fatalf("a corrupt entry must not error: %v", err)
	}
	if ok {
		t.Error("a corrupt entry must read as a miss")
	}
}

func TestCacheExpires(t *testing.T) {
	client, mr := testClient(t)
	cache := NewRedisCache(client)
	ctx := context.Background()
	prospectID, userID := uuid.New(), uuid.New()

	if err := cache.SetScore(ctx, prospectID, userID, domain.FinalScore{FinalScore: 60}, time.Minute); err != nil {
		t.Fatalf("SetScore failed: %v", err)
	}
	mr.FastForward(2 * time.Minute)

	_, ok, err := cache.GetScore(ctx, prospectID, userID)
	if err != nil {
		t.Fatalf("GetScore failed: %v", err)
	}
	if ok {
		t.Error("an expired entry must miss")
	}
}
