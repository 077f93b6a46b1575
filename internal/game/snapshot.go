package game

import (
	"sync/atomic"
	"time"

	"voidrunner/internal/config"
)

// PlayerSnapshot is an immutable copy of player state for rendering.
// Uses value types (not pointers) to ensure immutability.
type PlayerSnapshot struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	VX          float64 `json:"vx"`
	VY          float64 `json:"vy"`
	Lives       int     `json:"lives"`
	Health      float64 `json:"health"`
	MaxHealth   float64 `json:"maxHealth"`
	Shield      float64 `json:"shield"`
	MaxShield   float64 `json:"maxShield"`
	Invincible  bool    `json:"invincible"`
	DamageFlash bool    `json:"damageFlash"`
	KillStreak  int     `json:"killStreak"`
	StreakBonus bool    `json:"streakBonus"`
}

// EnemySnapshot is an immutable enemy for rendering
type EnemySnapshot struct {
	Kind        string  `json:"kind"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Health      int     `json:"health"`
	MaxHealth   int     `json:"maxHealth"`
	BossLevel   int     `json:"bossLevel,omitempty"`
	DamageFlash bool    `json:"damageFlash"`
}

// BulletSnapshot is an immutable bullet for rendering
type BulletSnapshot struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Owner  string  `json:"owner"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// EffectSnapshot is an immutable hit effect
type EffectSnapshot struct {
	Kind  string  `json:"kind"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Alpha float64 `json:"alpha"`
}

// GameSnapshot is a complete immutable game state for rendering and
// broadcasting. All slices are pre-allocated and capped.
type GameSnapshot struct {
	Sequence   uint64    `json:"sequence"`  // Monotonic sequence for ordering
	Timestamp  time.Time `json:"timestamp"` // When snapshot was created
	TickNumber uint64    `json:"tickNumber"`
	RNGSeed    int64     `json:"-"` // Seed for deterministic replay

	Player  PlayerSnapshot   `json:"player"`
	Enemies []EnemySnapshot  `json:"enemies"`
	Bullets []BulletSnapshot `json:"bullets"`
	Effects []EffectSnapshot `json:"effects"`

	Score          int  `json:"score"`
	HighScore      int  `json:"highScore"`
	Wave           int  `json:"wave"`
	DifficultyTier int  `json:"difficultyTier"`
	BossWave       bool `json:"bossWave"`
	WaveClearing   bool `json:"waveClearing"` // In the delay between waves
	GameOver       bool `json:"gameOver"`
}

// SnapshotPool pre-allocates snapshots to avoid GC pressure.
// Uses triple buffering for lock-free producer/consumer.
type SnapshotPool struct {
	snapshots  [3]GameSnapshot // Triple buffer
	limits     config.ResourceLimits
	maxEnemies int
	writeIdx   uint32 // atomic - producer index
	readIdx    uint32 // atomic - consumer index
	sequence   uint64 // atomic - monotonic sequence
}

// NewSnapshotPool creates a pool with pre-allocated slices. maxEnemies is
// the on-screen enemy cap plus room for the boss.
func NewSnapshotPool(limits config.ResourceLimits, maxEnemies int) *SnapshotPool {
	pool := &SnapshotPool{limits: limits, maxEnemies: maxEnemies}

	// Pre-allocate all slices to avoid runtime allocations
	for i := 0; i < 3; i++ {
		pool.snapshots[i] = GameSnapshot{
			Enemies: make([]EnemySnapshot, 0, maxEnemies),
			Bullets: make([]BulletSnapshot, 0, limits.MaxBullets),
			Effects: make([]EffectSnapshot, 0, limits.MaxEffects),
		}
	}

	return pool
}

// AcquireWrite gets the next write slot (producer only, called from game tick).
// Returns a snapshot with reset slices but preserved capacity.
func (p *SnapshotPool) AcquireWrite() *GameSnapshot {
	idx := atomic.AddUint32(&p.writeIdx, 1) % 3
	snap := &p.snapshots[idx]

	// Reset ALL slices but keep capacity (zero allocation)
	snap.Enemies = snap.Enemies[:0]
	snap.Bullets = snap.Bullets[:0]
	snap.Effects = snap.Effects[:0]

	snap.Sequence = atomic.AddUint64(&p.sequence, 1)
	snap.Timestamp = time.Now()

	return snap
}

// PublishWrite marks write complete and advances the read pointer.
// Called after the snapshot is fully populated.
func (p *SnapshotPool) PublishWrite() {
	atomic.StoreUint32(&p.readIdx, atomic.LoadUint32(&p.writeIdx))
}

// AcquireRead gets the latest complete snapshot (consumer only, called from
// render and broadcast loops).
func (p *SnapshotPool) AcquireRead() *GameSnapshot {
	idx := atomic.LoadUint32(&p.readIdx) % 3
	return &p.snapshots[idx]
}

// GetLimits returns the resource limits
func (p *SnapshotPool) GetLimits() config.ResourceLimits {
	return p.limits
}
