package game

import (
	"math"
	"testing"

	"voidrunner/internal/config"
)

// TestNewWaveState verifies the initial wave state.
func TestNewWaveState(t *testing.T) {
	w := NewWaveState(config.DefaultWave())
	if w == nil {
		t.Fatal("NewWaveState returned nil")
	}

	if w.CurrentWave != 1 {
		t.Errorf("Expected wave 1, got %d", w.CurrentWave)
	}
	if w.MaxKillsThisWave != 5 {
		t.Errorf("Expected kill quota 5, got %d", w.MaxKillsThisWave)
	}
	if w.SpawnInterval != 2.0 {
		t.Errorf("Expected spawn interval 2.0, got %f", w.SpawnInterval)
	}
	if w.BulletSpeedMult != 1.0 || w.FireRateMult != 1.0 {
		t.Errorf("Expected unscaled multipliers, got %f / %f", w.BulletSpeedMult, w.FireRateMult)
	}
}

// TestIsBossWave verifies boss waves are derived from the wave number.
func TestIsBossWave(t *testing.T) {
	w := NewWaveState(config.DefaultWave())

	cases := []struct {
		wave int
		boss bool
	}{
		{1, false},
		{4, false},
		{5, true},
		{6, false},
		{10, true},
		{15, true},
	}

	for _, c := range cases {
		w.CurrentWave = c.wave
		if got := w.IsBossWave(); got != c.boss {
			t.Errorf("Wave %d: expected boss=%v, got %v", c.wave, c.boss, got)
		}
	}
}

// TestWaveCompletionQuota verifies a regular wave completes exactly when
// the kill quota is met.
func TestWaveCompletionQuota(t *testing.T) {
	w := NewWaveState(config.DefaultWave())

	for i := 0; i < 4; i++ {
		w.RegisterEnemyKilled()
	}
	if w.IsWaveComplete() {
		t.Error("Wave should not complete below the quota")
	}

	w.RegisterEnemyKilled()
	if !w.IsWaveComplete() {
		t.Error("Wave should complete at the quota")
	}
}

// TestBossWaveRequiresBossKill verifies boss waves need both the quota and
// a dead boss.
func TestBossWaveRequiresBossKill(t *testing.T) {
	w := NewWaveState(config.DefaultWave())
	for w.CurrentWave < 5 {
		w.AdvanceWave()
	}

	for i := 0; i < w.MaxKillsThisWave; i++ {
		w.RegisterEnemyKilled()
	}
	if w.IsWaveComplete() {
		t.Error("Boss wave should not complete with the boss alive")
	}

	w.RegisterBossKilled()
	if !w.IsWaveComplete() {
		t.Error("Boss wave should complete once quota and boss are done")
	}
}

// TestAdvanceWaveQuotaGrowth verifies the kill quota grows linearly.
func TestAdvanceWaveQuotaGrowth(t *testing.T) {
	w := NewWaveState(config.DefaultWave())

	w.AdvanceWave()
	if w.CurrentWave != 2 || w.MaxKillsThisWave != 7 {
		t.Errorf("Expected wave 2 quota 7, got wave %d quota %d", w.CurrentWave, w.MaxKillsThisWave)
	}

	w.AdvanceWave()
	if w.MaxKillsThisWave != 9 {
		t.Errorf("Expected wave 3 quota 9, got %d", w.MaxKillsThisWave)
	}
}

// TestAdvanceWaveResetsBookkeeping verifies per-wave counters are reset.
func TestAdvanceWaveResetsBookkeeping(t *testing.T) {
	w := NewWaveState(config.DefaultWave())
	w.EnemiesKilledThisWave = 5
	w.EnemiesSpawnedThisWave = 5
	w.BossSpawned = true
	w.BossKilled = true
	w.SpawnTimer = 1.3

	w.AdvanceWave()

	if w.EnemiesKilledThisWave != 0 || w.EnemiesSpawnedThisWave != 0 {
		t.Error("Kill and spawn counters should reset on advance")
	}
	if w.BossSpawned || w.BossKilled {
		t.Error("Boss flags should reset on advance")
	}
	if w.SpawnTimer != 0 {
		t.Errorf("Expected spawn timer reset, got %f", w.SpawnTimer)
	}
}

// TestSpawnIntervalDecay verifies the interval shrinks geometrically and
// never drops below the floor.
func TestSpawnIntervalDecay(t *testing.T) {
	w := NewWaveState(config.DefaultWave())

	w.AdvanceWave()
	want := 2.0 / 1.15
	if math.Abs(w.SpawnInterval-want) > 1e-9 {
		t.Errorf("Expected wave 2 interval %f, got %f", want, w.SpawnInterval)
	}

	for i := 0; i < 30; i++ {
		w.AdvanceWave()
	}
	if w.SpawnInterval != 0.5 {
		t.Errorf("Expected interval floored at 0.5, got %f", w.SpawnInterval)
	}
}

// TestDifficultyTierScaling verifies the tier advances every sixth wave,
// compounding the multipliers.
func TestDifficultyTierScaling(t *testing.T) {
	w := NewWaveState(config.DefaultWave())

	for w.CurrentWave < 6 {
		w.AdvanceWave()
	}
	if w.DifficultyTier != 1 {
		t.Errorf("Expected tier 1 at wave 6, got %d", w.DifficultyTier)
	}
	if math.Abs(w.BulletSpeedMult-1.25) > 1e-9 {
		t.Errorf("Expected bullet speed mult 1.25, got %f", w.BulletSpeedMult)
	}
	if math.Abs(w.FireRateMult-0.85) > 1e-9 {
		t.Errorf("Expected fire rate mult 0.85, got %f", w.FireRateMult)
	}

	for w.CurrentWave < 12 {
		w.AdvanceWave()
	}
	if w.DifficultyTier != 2 {
		t.Errorf("Expected tier 2 at wave 12, got %d", w.DifficultyTier)
	}
	if math.Abs(w.BulletSpeedMult-1.5625) > 1e-9 {
		t.Errorf("Expected compounded bullet speed mult 1.5625, got %f", w.BulletSpeedMult)
	}
}

// TestBossWaveSkipsTierScaling verifies a wave that is both a boss wave
// and a scale multiple does not advance the tier.
func TestBossWaveSkipsTierScaling(t *testing.T) {
	cfg := config.DefaultWave()
	cfg.BossInterval = 3
	cfg.ScaleInterval = 3

	w := NewWaveState(cfg)
	for w.CurrentWave < 9 {
		w.AdvanceWave()
	}

	if w.DifficultyTier != 0 {
		t.Errorf("Expected no tier scaling on boss waves, got tier %d", w.DifficultyTier)
	}
	if w.BulletSpeedMult != 1.0 {
		t.Errorf("Expected unscaled bullet speed mult, got %f", w.BulletSpeedMult)
	}
}
