// Package config provides centralized configuration management.
// This is the SINGLE SOURCE OF TRUTH for all gameplay and server tuning.
//
// IMPORTANT: When changing balance values, only modify this file.
// All other parts of the codebase should reference these values.
package config

import (
	"os"
	"strconv"
)

// =============================================================================
// WORLD & TICK CONFIGURATION
// =============================================================================

// WorldConfig holds play-area and simulation timing settings.
// These values are shared between the game engine and the frame renderer.
type WorldConfig struct {
	Width    int // Play area width in pixels
	Height   int // Play area height in pixels
	TickRate int // Simulation ticks per second (also render FPS)
}

// DefaultWorld returns the default world configuration.
func DefaultWorld() WorldConfig {
	return WorldConfig{
		Width:    800,
		Height:   600,
		TickRate: 60,
	}
}

// WorldFromEnv returns world configuration with environment variable overrides.
// Environment variables take precedence over defaults.
func WorldFromEnv() WorldConfig {
	cfg := DefaultWorld()

	if w := getEnvInt("WORLD_WIDTH", 0); w > 0 {
		cfg.Width = w
	}
	if h := getEnvInt("WORLD_HEIGHT", 0); h > 0 {
		cfg.Height = h
	}
	if t := getEnvInt("TICK_RATE", 0); t > 0 {
		cfg.TickRate = t
	}

	return cfg
}

// =============================================================================
// PLAYER CONFIGURATION
// =============================================================================

// DamageModel selects which buffer chain absorbs player damage.
// Two historical variants exist; "health-lives" is the canonical one.
type DamageModel string

const (
	// DamageModelHealthLives funnels damage through health, then deducts a
	// life and refills health when it empties.
	DamageModelHealthLives DamageModel = "health-lives"
	// DamageModelShieldHealth funnels damage through a regenerating shield
	// first, with overflow carrying into health.
	DamageModelShieldHealth DamageModel = "shield-health"
)

// PlayerConfig holds player ship tuning.
type PlayerConfig struct {
	Speed            float64 // Movement speed in pixels/second
	ShootCooldown    float64 // Seconds between shots
	MaxHealth        float64 // Health per life (or health buffer for shield model)
	MaxShield        float64 // Shield buffer (shield-health model only)
	MaxLives         int
	InvincibilityDur float64 // Seconds of i-frames after a hit
	RegenRate        float64 // Health/shield points regenerated per second
	RegenDelay       float64 // Seconds without damage before regen starts
	SpriteWidth      float64
	SpriteHeight     float64
	Model            DamageModel
}

// DefaultPlayer returns the default player configuration.
func DefaultPlayer() PlayerConfig {
	return PlayerConfig{
		Speed:            300,
		ShootCooldown:    0.25,
		MaxHealth:        100,
		MaxShield:        100,
		MaxLives:         3,
		InvincibilityDur: 1.5,
		RegenRate:        5.0,
		RegenDelay:       3.0,
		SpriteWidth:      64,
		SpriteHeight:     64,
		Model:            DamageModelHealthLives,
	}
}

// PlayerFromEnv returns player configuration with environment overrides.
func PlayerFromEnv() PlayerConfig {
	cfg := DefaultPlayer()

	if m := os.Getenv("DAMAGE_MODEL"); m == string(DamageModelShieldHealth) {
		cfg.Model = DamageModelShieldHealth
	}
	if v := getEnvFloat("PLAYER_SPEED", 0); v > 0 {
		cfg.Speed = v
	}
	if v := getEnvInt("PLAYER_LIVES", 0); v > 0 {
		cfg.MaxLives = v
	}

	return cfg
}

// =============================================================================
// BULLET CONFIGURATION
// =============================================================================

// BulletConfig holds projectile tuning for both sides.
type BulletConfig struct {
	PlayerSpeed   float64 // Player bullet speed in pixels/second (upward)
	PlayerDamage  int     // Damage per player bullet
	EnemySpeed    float64 // Enemy bullet base speed in pixels/second (downward)
	EnemyDamage   float64 // Damage an enemy bullet deals to the player
	RamMultiplier float64 // Ramming damage = EnemyDamage * RamMultiplier
	Width         float64
	Height        float64
}

// DefaultBullet returns the default bullet configuration.
func DefaultBullet() BulletConfig {
	return BulletConfig{
		PlayerSpeed:   480,
		PlayerDamage:  1,
		EnemySpeed:    240,
		EnemyDamage:   10,
		RamMultiplier: 1.5,
		Width:         8,
		Height:        16,
	}
}

// =============================================================================
// ENEMY CONFIGURATION
// =============================================================================

// EnemyConfig holds per-archetype enemy tuning.
type EnemyConfig struct {
	BaseSpeed float64 // Reference speed in pixels/second

	// Speed multipliers per archetype
	BasicSpeedMult  float64
	ChaserSpeedMult float64
	ZigzagSpeedMult float64

	// Health per archetype
	BasicHealth  int
	ChaserHealth int
	ZigzagHealth int

	// Shooting
	ShootChance       float64 // Per-frame chance once the cooldown has elapsed
	ShootCooldownBase float64 // Seconds, scaled by the fire-rate multiplier

	// Spawn weights (relative)
	BasicWeight  int
	ZigzagWeight int
	ChaserWeight int

	SpriteWidth  float64
	SpriteHeight float64

	// Despawn margin beyond the play bounds
	OffscreenMargin float64

	DamageFlashDur float64
}

// DefaultEnemy returns the default enemy configuration.
func DefaultEnemy() EnemyConfig {
	return EnemyConfig{
		BaseSpeed:         120,
		BasicSpeedMult:    1.0,
		ChaserSpeedMult:   0.7,
		ZigzagSpeedMult:   1.2,
		BasicHealth:       1,
		ChaserHealth:      2,
		ZigzagHealth:      1,
		ShootChance:       0.02,
		ShootCooldownBase: 2.0,
		BasicWeight:       50,
		ZigzagWeight:      30,
		ChaserWeight:      20,
		SpriteWidth:       64,
		SpriteHeight:      64,
		OffscreenMargin:   50,
		DamageFlashDur:    0.15,
	}
}

// =============================================================================
// BOSS CONFIGURATION
// =============================================================================

// BossConfig holds boss enemy tuning. All level scaling is exponential in
// (level-1) so the first boss uses the base values unchanged.
type BossConfig struct {
	BaseHealth       int     // Level 1 health
	HealthMultiplier float64 // Health = BaseHealth * HealthMultiplier^(level-1)
	BaseFireRate     float64 // Seconds between volleys at level 1
	FireRateDecrease float64 // FireRate = BaseFireRate * FireRateDecrease^(level-1)
	BulletSpeedScale float64 // BulletSpeedMult = BulletSpeedScale^(level-1)
	Points           int     // Score = Points * level
	BulletCount      int     // Bullets per volley (penta-shot)
	LockY            float64 // Vertical position the boss locks to
	DescendSpeed     float64 // Pixels/second while moving down to LockY
	TrackDelay       float64 // Exponential-delay factor for horizontal tracking
	MaxTrackSpeed    float64 // Horizontal speed cap in pixels/second
	SizeMultiplier   float64 // Sprite scale relative to a regular enemy
}

// DefaultBoss returns the default boss configuration.
func DefaultBoss() BossConfig {
	return BossConfig{
		BaseHealth:       50,
		HealthMultiplier: 1.5,
		BaseFireRate:     2.0,
		FireRateDecrease: 0.85,
		BulletSpeedScale: 1.2,
		Points:           500,
		BulletCount:      5,
		LockY:            100,
		DescendSpeed:     120,
		TrackDelay:       2.5,
		MaxTrackSpeed:    200,
		SizeMultiplier:   2.0,
	}
}

// =============================================================================
// WAVE / DIFFICULTY CONFIGURATION
// =============================================================================

// WaveConfig holds wave progression and difficulty scaling tuning.
type WaveConfig struct {
	EnemiesPerWaveBase int     // Kill quota for wave 1
	EnemiesPerWaveInc  int     // Additional quota per wave
	SpawnIntervalBase  float64 // Seconds between spawns on wave 1
	SpawnIntervalFloor float64 // Minimum seconds between spawns
	SpawnIntervalDecay float64 // Interval = Base / Decay^(wave-1)
	MaxEnemiesOnScreen int     // Live-enemy cap; spawning pauses above this

	BossInterval  int // Every Nth wave is a boss wave
	ScaleInterval int // Difficulty tier advances every Nth non-boss wave

	BulletSpeedScale float64 // Compounds per tier (>1: faster enemy bullets)
	FireRateScale    float64 // Compounds per tier (<1: shorter cooldowns)

	ClearDelay float64 // Seconds between wave completion and the next wave
	ClearHeal  float64 // Health restored to the player on wave completion
}

// DefaultWave returns the default wave configuration.
func DefaultWave() WaveConfig {
	return WaveConfig{
		EnemiesPerWaveBase: 5,
		EnemiesPerWaveInc:  2,
		SpawnIntervalBase:  2.0,
		SpawnIntervalFloor: 0.5,
		SpawnIntervalDecay: 1.15,
		MaxEnemiesOnScreen: 10,
		BossInterval:       5,
		ScaleInterval:      6,
		BulletSpeedScale:   1.25,
		FireRateScale:      0.85,
		ClearDelay:         3.0,
		ClearHeal:          50,
	}
}

// =============================================================================
// SCORING CONFIGURATION
// =============================================================================

// ScoreConfig holds point values and streak bonus tuning.
type ScoreConfig struct {
	BasicPoints  int
	ChaserPoints int
	ZigzagPoints int

	StreakThreshold  int     // Undamaged kills needed to activate the bonus
	StreakMultiplier float64 // Applied to kills while the streak is active
}

// DefaultScore returns the default scoring configuration.
func DefaultScore() ScoreConfig {
	return ScoreConfig{
		BasicPoints:      10,
		ChaserPoints:     25,
		ZigzagPoints:     20,
		StreakThreshold:  5,
		StreakMultiplier: 1.5,
	}
}

// =============================================================================
// RESOURCE LIMITS
// =============================================================================

// ResourceLimits controls entity caps and per-frame limits.
type ResourceLimits struct {
	MaxBullets int // Hard cap on live bullets (both sides combined)
	MaxEffects int // Per-frame hit effect limit
}

// DefaultLimits returns the default resource limits.
func DefaultLimits() ResourceLimits {
	return ResourceLimits{
		MaxBullets: 200,
		MaxEffects: 50,
	}
}

// =============================================================================
// AUDIO CONFIGURATION
// =============================================================================

// AudioConfig holds sound playback settings.
type AudioConfig struct {
	SampleRate int     // Audio sample rate in Hz
	Volume     float64 // Master volume (0.0 to 1.0)
	Enabled    bool
	SoundDir   string // Directory of named .ogg sound effects
}

// DefaultAudio returns the default audio configuration.
func DefaultAudio() AudioConfig {
	return AudioConfig{
		SampleRate: 44100,
		Volume:     0.7,
		Enabled:    true,
		SoundDir:   "assets/sounds",
	}
}

// AudioFromEnv returns audio configuration with environment overrides.
func AudioFromEnv() AudioConfig {
	cfg := DefaultAudio()

	if v := getEnvFloat("SFX_VOLUME", -1); v >= 0 {
		cfg.Volume = v
	}
	if os.Getenv("SFX_ENABLED") == "false" {
		cfg.Enabled = false
	}
	if d := os.Getenv("SOUND_DIR"); d != "" {
		cfg.SoundDir = d
	}

	return cfg
}

// =============================================================================
// SERVER CONFIGURATION
// =============================================================================

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port    int
	DataDir string // Score/session persistence directory
}

// DefaultServer returns the default server configuration.
func DefaultServer() ServerConfig {
	return ServerConfig{
		Port:    3000,
		DataDir: "data",
	}
}

// ServerFromEnv returns server configuration with environment overrides.
func ServerFromEnv() ServerConfig {
	cfg := DefaultServer()

	if p := getEnvInt("PORT", 0); p > 0 {
		cfg.Port = p
	}
	if d := os.Getenv("DATA_DIR"); d != "" {
		cfg.DataDir = d
	}

	return cfg
}

// =============================================================================
// COMPLETE APP CONFIGURATION
// =============================================================================

// AppConfig holds the complete application configuration.
type AppConfig struct {
	World  WorldConfig
	Player PlayerConfig
	Bullet BulletConfig
	Enemy  EnemyConfig
	Boss   BossConfig
	Wave   WaveConfig
	Score  ScoreConfig
	Limits ResourceLimits
	Audio  AudioConfig
	Server ServerConfig
}

// Load returns the complete configuration with environment overrides.
func Load() AppConfig {
	return AppConfig{
		World:  WorldFromEnv(),
		Player: PlayerFromEnv(),
		Bullet: DefaultBullet(),
		Enemy:  DefaultEnemy(),
		Boss:   DefaultBoss(),
		Wave:   DefaultWave(),
		Score:  DefaultScore(),
		Limits: DefaultLimits(),
		Audio:  AudioFromEnv(),
		Server: ServerFromEnv(),
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
