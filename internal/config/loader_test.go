package config_test

import (
	"context"
	"os"
	"testing"

	"github.com/okian/tribute/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func clearConfigEnvVars() {
	for _, key := range []string{
		"TRIBUTE_CONFIG",
		"TRIBUTE_ADDR",
		"TRIBUTE_API_KEY",
		"TRIBUTE_ORACLE_BASE_URL",
		"TRIBUTE_ORACLE_MODEL",
		"TRIBUTE_RETRY_MAX_ATTEMPTS",
		"TRIBUTE_MAX_IMAGE_BYTES",
		"TRIBUTE_MAX_BATCH_IMAGES",
	} {
		_ = os.Unsetenv(key)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "tribute-*.yaml")
	if err != nil {
		t.Fatalf("failed to create temp config: %v", err)
	}
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	_ = f.Close()
	return f.Name()
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.OracleModel, convey.ShouldEqual, "gemini-2.0-flash")
				convey.So(cfg.RetryMaxAttempts, convey.ShouldEqual, 3)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			clearConfigEnvVars()
			_ = os.Setenv("TRIBUTE_ADDR", ":8080")
			_ = os.Setenv("TRIBUTE_API_KEY", "test-key")
			_ = os.Setenv("TRIBUTE_ORACLE_MODEL", "gemini-2.5-pro")
			_ = os.Setenv("TRIBUTE_RETRY_MAX_ATTEMPTS", "5")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.APIKey, convey.ShouldEqual, "test-key")
				convey.So(cfg.OracleModel, convey.ShouldEqual, "gemini-2.5-pro")
				convey.So(cfg.RetryMaxAttempts, convey.ShouldEqual, 5)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			clearConfigEnvVars()
			yamlContent := `
addr: ":7070"
oracle_model: "gemini-2.0-flash-lite"
max_batch_images: 5
tiers:
  - label: "bronze"
    min_coins: 100
    min_activity: 100
  - label: "gold"
    min_coins: 1000
    min_activity: 1000
`
			tmpFile := createTempConfigFile(t, yamlContent)
			_ = os.Setenv("TRIBUTE_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should apply the file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.OracleModel, convey.ShouldEqual, "gemini-2.0-flash-lite")
				convey.So(cfg.MaxBatchImages, convey.ShouldEqual, 5)
				convey.So(len(cfg.Tiers), convey.ShouldEqual, 2)
				convey.So(cfg.Tiers[1].Label, convey.ShouldEqual, "gold")
			})
		})

		convey.Convey("When the file defines an invalid tier", func() {
			clearConfigEnvVars()
			tmpFile := createTempConfigFile(t, `
tiers:
  - label: ""
    min_coins: 10
    min_activity: 10
`)
			_ = os.Setenv("TRIBUTE_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then loading should fail", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}
