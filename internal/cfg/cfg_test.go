package cfg

import (
	"errors"
	"testing"
	"time"

	"github.com/DRSN-tech/product-admin/pkg/e"
	"github.com/DRSN-tech/product-admin/pkg/logger"
)

func setRequired(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HTTP_PORT", "UPLOAD_MAX_FILES", "UPLOAD_MAX_FILE_MB", "POSTGRES_HOST", "POSTGRES_PORT",
		"SSL_MODE", "MIGRATIONS_URL", "MINIO_ENDPOINT", "BUCKET_NAME", "MINIO_USE_SSL",
		"MINIO_PUBLIC_URL", "PRODUCT_TTL", "CATEGORY_TTL", "OUTBOX_BATCH_SIZE", "OUTBOX_POLL_INTERVAL",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("POSTGRES_USER", "admin")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "catalog")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load(logger.Nop{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Http.Port != "8080" || cfg.Http.MaxUploadFiles != 10 || cfg.Http.MaxFileSize != 15<<20 {
		t.Fatalf("unexpected http config %+v", cfg.Http)
	}
	if cfg.Db.DSN() != "host=localhost port=5432 user=admin password=secret dbname=catalog sslmode=disable" {
		t.Fatalf("unexpected dsn %q", cfg.Db.DSN())
	}
	if cfg.Db.MigrationsURL != "file://db/migrations" {
		t.Fatalf("unexpected migrations url %q", cfg.Db.MigrationsURL)
	}
	if cfg.Minio.PublicURL != "http://minio:9000/product-images" {
		t.Fatalf("unexpected public url %q", cfg.Minio.PublicURL)
	}
	if cfg.Redis.CategoryTTL != time.Minute || cfg.Redis.ProductTTL != 3*time.Minute {
		t.Fatalf("unexpected redis ttl %+v", cfg.Redis)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "kafka-2:9092" {
		t.Fatalf("unexpected brokers %v", cfg.Kafka.Brokers)
	}
	if cfg.Outbox.BatchSize != 10 || cfg.Outbox.PollInterval != 30*time.Second {
		t.Fatalf("unexpected outbox config %+v", cfg.Outbox)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("MINIO_ENDPOINT", "s3.local")
	t.Setenv("BUCKET_NAME", "imgs")
	t.Setenv("UPLOAD_MAX_FILE_MB", "2")
	t.Setenv("CATEGORY_TTL", "90s")

	cfg, err := Load(logger.Nop{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Minio.PublicURL != "https://s3.local/imgs" {
		t.Fatalf("unexpected public url %q", cfg.Minio.PublicURL)
	}
	if cfg.Http.MaxFileSize != 2<<20 {
		t.Fatalf("unexpected max file size %d", cfg.Http.MaxFileSize)
	}
	if cfg.Redis.CategoryTTL != 90*time.Second {
		t.Fatalf("unexpected category ttl %v", cfg.Redis.CategoryTTL)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing postgres user", func(t *testing.T) {
		setRequired(t)
		t.Setenv("POSTGRES_USER", "")
		if _, err := Load(logger.Nop{}); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("missing kafka brokers", func(t *testing.T) {
		setRequired(t)
		t.Setenv("KAFKA_BROKERS", "")
		if _, err := Load(logger.Nop{}); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("bad integer", func(t *testing.T) {
		setRequired(t)
		t.Setenv("UPLOAD_MAX_FILES", "many")
		if _, err := Load(logger.Nop{}); !errors.Is(err, e.ErrIncorrectEnvVariable) {
			t.Fatalf("expected incorrect env variable, got %v", err)
		}
	})
}

func TestLoadEditor(t *testing.T) {
	t.Setenv("EDITOR_API_URL", "")
	t.Setenv("EDITOR_API_TIMEOUT", "")
	t.Setenv("EDITOR_API_RETRIES", "")

	cfg, err := LoadEditor(logger.Nop{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "http://localhost:8080" || cfg.Timeout != 15*time.Second || cfg.MaxRetries != 3 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}

	t.Setenv("EDITOR_API_URL", "http://catalog.local")
	t.Setenv("EDITOR_API_RETRIES", "5")
	cfg, err = LoadEditor(logger.Nop{})
	if err != nil || cfg.APIURL != "http://catalog.local" || cfg.MaxRetries != 5 {
		t.Fatalf("overrides not applied: %+v %v", cfg, err)
	}

	t.Setenv("EDITOR_API_TIMEOUT", "soon")
	if _, err := LoadEditor(logger.Nop{}); err == nil {
		t.Fatalf("expected error for bad timeout")
	}
}
