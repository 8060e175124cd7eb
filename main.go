package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"

	"cliplabel/annotations"
	"cliplabel/api"
	"cliplabel/common"
	"cliplabel/config"
	"cliplabel/queue"
	"cliplabel/timestamps"
	"cliplabel/videocache"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.EnsureDirs(); err != nil {
		log.Fatalf("data directory setup failed: %v", err)
	}

	ctx := context.Background()
	deps := buildDeps(ctx, cfg)

	urls := loadVideosConfig(cfg)
	syncQueue(ctx, cfg, deps.Queue, urls)

	// Fetch missing videos in the background; failures are logged only.
	if q, err := deps.Queue.Get(ctx); err == nil {
		go deps.Cache.EnsureAll(ctx, q)
	} else {
		log.Printf("skipping video download check: %v", err)
	}

	addr := ":" + cfg.Port
	r := api.NewRouter(deps)
	log.Printf("Video annotation API listening on %s", addr)
	log.Printf("  Annotations: %s", annotationBackendName(cfg))
	log.Printf("  Queue:       %s", queueBackendName(cfg))
	log.Printf("  Timestamps:  %s", deps.TimestampsSource)

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// buildDeps selects every storage backend exactly once, by configuration
// presence. The choice is fixed for the process lifetime.
func buildDeps(ctx context.Context, cfg config.Config) api.Deps {
	deps := api.Deps{
		TmpDir:           cfg.TmpDir(),
		StrictUpdate:     cfg.StrictUpdate,
		TimestampsSource: "local",
	}

	var conn *pgx.Conn
	if cfg.UsePostgres() {
		var err error
		conn, err = pgx.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("postgres connect failed: %v", err)
		}
		deps.TimestampsSource = "postgres"
	}

	switch {
	case cfg.UsePostgres():
		rec, err := queue.NewPostgresRecord(ctx, conn)
		if err != nil {
			log.Fatalf("postgres queue setup failed: %v", err)
		}
		deps.Queue = queue.NewStore(rec)
	case cfg.UseRedisQueue():
		rec, err := queue.NewRedisRecordFromEnv(ctx)
		if err != nil {
			log.Fatalf("redis queue setup failed: %v", err)
		}
		deps.Queue = queue.NewStore(rec)
	default:
		deps.Queue = queue.NewStore(queue.NewFileRecord(cfg.QueuePath()))
	}

	if cfg.UsePostgres() {
		ts, err := timestamps.NewPostgresStore(ctx, conn)
		if err != nil {
			log.Fatalf("postgres timestamp setup failed: %v", err)
		}
		deps.Timestamps = ts
		deps.TimestampRows = ts
	} else {
		deps.Timestamps = timestamps.NewFSStore(cfg.TimestampsDir())
	}

	switch {
	case cfg.UsePostgres():
		store, err := annotations.NewPostgresStore(ctx, conn)
		if err != nil {
			log.Fatalf("postgres annotation setup failed: %v", err)
		}
		deps.Annotations = store
	case cfg.UseMongo():
		store, err := annotations.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			log.Fatalf("mongodb connect failed: %v", err)
		}
		deps.Annotations = store
	default:
		store, err := annotations.NewFileStore(cfg.DBPath())
		if err != nil {
			log.Fatalf("annotation db setup failed: %v", err)
		}
		deps.Annotations = store
	}

	deps.Cache = videocache.New(cfg.CacheDir(), s3ClientIfNeeded(ctx, cfg))
	return deps
}

// s3ClientIfNeeded builds an S3 client only when a configured video
// source actually uses one.
func s3ClientIfNeeded(ctx context.Context, cfg config.Config) *common.S3 {
	for _, u := range loadVideosConfig(cfg) {
		if strings.HasPrefix(strings.TrimSpace(u), "s3://") {
			s3, err := common.NewS3(ctx, common.S3Config{Region: cfg.S3Region})
			if err != nil {
				log.Printf("s3 client setup failed, s3:// sources will be skipped: %v", err)
				return nil
			}
			return s3
		}
	}
	return nil
}

// loadVideosConfig reads the operator-edited URL list, seeding an empty
// one on first run.
func loadVideosConfig(cfg config.Config) []string {
	path := cfg.VideosConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if werr := os.WriteFile(path, []byte("[]\n"), 0o644); werr == nil {
			log.Printf("Created empty %s — add video URLs to it", path)
		}
		return nil
	}
	if err != nil {
		log.Printf("read %s failed: %v", path, err)
		return nil
	}
	var urls []string
	if err := json.Unmarshal(data, &urls); err != nil {
		log.Printf("decode %s failed: %v", path, err)
		return nil
	}
	return urls
}

// syncQueue reconciles the persisted queue with videos.json once at
// startup. The hosted backend is only seeded when its queue is empty;
// file and redis modes run the full name-set merge.
func syncQueue(ctx context.Context, cfg config.Config, store *queue.Store, urls []string) {
	if cfg.UsePostgres() {
		q, err := store.Get(ctx)
		if err != nil {
			log.Printf("queue read failed: %v", err)
			return
		}
		if len(q.Videos) > 0 {
			log.Printf("Queue: %d videos (from hosted backend)", len(q.Videos))
			return
		}
		if len(urls) == 0 {
			return
		}
		if q, err := store.Set(ctx, urls); err != nil {
			log.Printf("queue seed failed: %v", err)
		} else {
			log.Printf("Queue seeded from videos.json (%d videos)", len(q.Videos))
		}
		return
	}

	q, changed, err := store.SyncFromConfig(ctx, urls)
	if err != nil {
		log.Printf("queue sync failed: %v", err)
		return
	}
	if changed {
		log.Printf("Queue synced: %d videos", len(q.Videos))
	} else {
		log.Printf("Queue: %d videos (unchanged from videos.json)", len(q.Videos))
	}
}

func annotationBackendName(cfg config.Config) string {
	switch {
	case cfg.UsePostgres():
		return "postgres"
	case cfg.UseMongo():
		return "mongodb"
	default:
		return "local db.json"
	}
}

func queueBackendName(cfg config.Config) string {
	switch {
	case cfg.UsePostgres():
		return "postgres"
	case cfg.UseRedisQueue():
		return "redis"
	default:
		return "local queue.json"
	}
}
