package game

import (
	"math"

	"voidrunner/internal/config"
)

// WaveState owns wave progression and the progressive difficulty scaling
// applied to enemy fire rate and bullet speed.
//
// Whether the current wave is a boss wave is always derived from the wave
// number (wave % BossInterval == 0), never from a stored flag; the flags
// here only track spawn/kill bookkeeping within the wave.
type WaveState struct {
	CurrentWave    int
	DifficultyTier int

	// Compounding multipliers handed to newly spawned enemies. Never reset.
	BulletSpeedMult float64
	FireRateMult    float64

	EnemiesKilledThisWave  int
	MaxKillsThisWave       int
	EnemiesSpawnedThisWave int

	SpawnTimer    float64
	SpawnInterval float64

	BossSpawned bool
	BossKilled  bool
	BossLevel   int

	cfg config.WaveConfig
}

// NewWaveState starts at wave 1 with unscaled difficulty.
func NewWaveState(cfg config.WaveConfig) *WaveState {
	return &WaveState{
		CurrentWave:      1,
		BulletSpeedMult:  1.0,
		FireRateMult:     1.0,
		MaxKillsThisWave: cfg.EnemiesPerWaveBase,
		SpawnInterval:    cfg.SpawnIntervalBase,
		cfg:              cfg,
	}
}

// IsBossWave reports whether the current wave is a boss wave. This
// predicate is the single source of truth for boss-wave status.
func (w *WaveState) IsBossWave() bool {
	return w.CurrentWave%w.cfg.BossInterval == 0
}

// IsWaveComplete reports whether the wave's completion predicate holds:
// the kill quota is met, and on boss waves the boss is also dead.
func (w *WaveState) IsWaveComplete() bool {
	quotaDone := w.EnemiesKilledThisWave >= w.MaxKillsThisWave
	if w.IsBossWave() {
		return quotaDone && w.BossKilled
	}
	return quotaDone
}

// AdvanceWave progresses to the next wave. Call only once the completion
// predicate is true.
//
// The kill quota grows linearly, the spawn interval shrinks geometrically
// down to a floor, and every ScaleInterval-th non-boss wave advances the
// difficulty tier, compounding the bullet-speed and fire-rate multipliers.
// Tier scaling and boss waves are mutually exclusive: a wave that is both a
// scale multiple and a boss wave scales nothing.
func (w *WaveState) AdvanceWave() {
	w.CurrentWave++
	w.EnemiesKilledThisWave = 0
	w.EnemiesSpawnedThisWave = 0

	w.BossSpawned = false
	w.BossKilled = false

	w.MaxKillsThisWave = w.cfg.EnemiesPerWaveBase + (w.CurrentWave-1)*w.cfg.EnemiesPerWaveInc

	if w.CurrentWave%w.cfg.ScaleInterval == 0 && !w.IsBossWave() {
		w.DifficultyTier++
		w.BulletSpeedMult *= w.cfg.BulletSpeedScale
		w.FireRateMult *= w.cfg.FireRateScale
	}

	w.SpawnInterval = w.cfg.SpawnIntervalBase / math.Pow(w.cfg.SpawnIntervalDecay, float64(w.CurrentWave-1))
	if w.SpawnInterval < w.cfg.SpawnIntervalFloor {
		w.SpawnInterval = w.cfg.SpawnIntervalFloor
	}

	w.SpawnTimer = 0
}

// RegisterEnemyKilled counts a regular-quota kill toward wave completion.
func (w *WaveState) RegisterEnemyKilled() {
	w.EnemiesKilledThisWave++
}

// RegisterBossKilled marks the boss dead for this wave.
func (w *WaveState) RegisterBossKilled() {
	w.BossKilled = true
}
