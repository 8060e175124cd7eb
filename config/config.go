// Package config reads process configuration from the environment.
// main loads .env via godotenv before calling Load.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Directory and file names under the data directory.
const (
	TimestampsDirName = "timestamps"
	CacheDirName      = "cache"
	TmpDirName        = "tmp"
	QueueFileName     = "queue.json"
	VideosConfigName  = "videos.json"
	DBFileName        = "db.json"
)

// Config holds everything selected at process start. Backend choice is
// by configuration presence: a Postgres DSN wins, then MongoDB for
// annotations, then Redis for the queue record, then local files.
type Config struct {
	Port    string
	DataDir string

	// DatabaseURL is the hosted Postgres DSN, assembled from POSTGRES_*
	// parts when DATABASE_URL itself is unset.
	DatabaseURL string
	MongoURI    string
	MongoDB     string
	RedisAddr   string

	// S3Region is used when video sources are s3:// URLs.
	S3Region string

	// StrictUpdate re-runs create-time validation on merged updates.
	StrictUpdate bool
}

// Load builds a Config from the environment.
func Load() Config {
	cfg := Config{
		Port:         getEnv("PORT", "5001"),
		DataDir:      getEnv("DATA_DIR", "./data"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		MongoURI:     os.Getenv("MONGODB_URI"),
		MongoDB:      getEnv("MONGODB_DATABASE", "cliplabel"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		S3Region:     os.Getenv("AWS_REGION"),
		StrictUpdate: os.Getenv("ANNOTATION_STRICT_UPDATE") == "1",
	}
	if cfg.DatabaseURL == "" && os.Getenv("POSTGRES_HOST") != "" {
		cfg.DatabaseURL = postgresURLFromParts()
	}
	return cfg
}

// UsePostgres reports whether the hosted relational backend is active.
func (c Config) UsePostgres() bool { return c.DatabaseURL != "" }

// UseMongo reports whether the document backend is active for annotations.
func (c Config) UseMongo() bool { return !c.UsePostgres() && c.MongoURI != "" }

// UseRedisQueue reports whether the queue record lives in Redis.
func (c Config) UseRedisQueue() bool { return !c.UsePostgres() && c.RedisAddr != "" }

func (c Config) TimestampsDir() string { return filepath.Join(c.DataDir, TimestampsDirName) }
func (c Config) CacheDir() string      { return filepath.Join(c.DataDir, CacheDirName) }
func (c Config) TmpDir() string        { return filepath.Join(c.DataDir, TmpDirName) }
func (c Config) QueuePath() string     { return filepath.Join(c.DataDir, QueueFileName) }
func (c Config) VideosConfig() string  { return filepath.Join(c.DataDir, VideosConfigName) }
func (c Config) DBPath() string        { return filepath.Join(c.DataDir, DBFileName) }

// EnsureDirs creates the data directory tree.
func (c Config) EnsureDirs() error {
	for _, dir := range []string{c.DataDir, c.TimestampsDir(), c.CacheDir(), c.TmpDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

func postgresURLFromParts() string {
	host := getEnv("POSTGRES_HOST", "localhost")
	port := getEnv("POSTGRES_PORT", "5432")
	user := getEnv("POSTGRES_USER", "postgres")
	password := getEnv("POSTGRES_PASSWORD", "postgres")
	dbname := getEnv("POSTGRES_DB", "cliplabel")
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s", user, password, host, port, dbname)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
