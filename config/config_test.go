package config

import (
	"testing"

	utils "github.com/dnikiforova/fishka/internal"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	utils.AssertNoError(t, err)

	utils.AssertEqual(t, cfg.Addr, ":8000")
	utils.AssertEqual(t, cfg.ResultsPath, "fishka.db")
	utils.AssertEqual(t, cfg.Seed, int64(0))
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("FISHKA_ADDR", ":9999")
	t.Setenv("FISHKA_RESULTS_PATH", "/tmp/history.db")
	t.Setenv("FISHKA_SEED", "42")

	cfg, err := Load()
	utils.AssertNoError(t, err)

	utils.AssertEqual(t, cfg.Addr, ":9999")
	utils.AssertEqual(t, cfg.ResultsPath, "/tmp/history.db")
	utils.AssertEqual(t, cfg.Seed, int64(42))
}
