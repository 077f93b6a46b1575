package game

import (
	"math/rand"

	"voidrunner/internal/config"
)

// Spawner emits new enemies each tick based on the wave state: regular
// enemies by weighted random choice while the quota and on-screen cap
// allow, and exactly one level-scaled boss per boss wave.
type Spawner struct {
	wave    *WaveState
	params  enemyParams
	boss    config.BossConfig
	waveCfg config.WaveConfig
	worldW  float64

	rng *rand.Rand
}

// NewSpawner creates a spawner. The RNG is injected so tests can drive
// deterministic spawn sequences.
func NewSpawner(wave *WaveState, cfg config.AppConfig, rng *rand.Rand) *Spawner {
	return &Spawner{
		wave: wave,
		params: enemyParams{
			enemy:  cfg.Enemy,
			bullet: cfg.Bullet,
			score:  cfg.Score,
		},
		boss:    cfg.Boss,
		waveCfg: cfg.Wave,
		worldW:  float64(cfg.World.Width),
		rng:     rng,
	}
}

// Tick advances the spawn timer and returns any enemies spawned this tick.
// enemies is the live enemy set, used for the on-screen cap and as the
// second guard against double boss spawns.
func (s *Spawner) Tick(dt float64, enemies []*Enemy) []*Enemy {
	var spawned []*Enemy

	// Boss waves spawn exactly one boss at the top center. The flag and the
	// live scan are independent guards against a duplicate spawn from
	// crossed updates.
	if s.wave.IsBossWave() && !s.wave.BossSpawned {
		if !hasBoss(enemies) {
			spawned = append(spawned, s.spawnBoss())
		}
		s.wave.BossSpawned = true
	}

	// Spawning stops entirely once the kill quota is met, even with enemies
	// still alive on screen.
	if s.wave.EnemiesKilledThisWave >= s.wave.MaxKillsThisWave {
		return spawned
	}

	s.wave.SpawnTimer += dt

	if len(enemies) >= s.waveCfg.MaxEnemiesOnScreen {
		return spawned
	}

	if s.wave.SpawnTimer >= s.wave.SpawnInterval {
		s.wave.SpawnTimer = 0
		spawned = append(spawned, s.spawnEnemy())
		s.wave.EnemiesSpawnedThisWave++
	}

	return spawned
}

func hasBoss(enemies []*Enemy) bool {
	for _, e := range enemies {
		if e.Kind == EnemyBoss {
			return true
		}
	}
	return false
}

// spawnEnemy creates one enemy at a random x along the top edge, archetype
// chosen by weighted random draw, difficulty multipliers passed through
// from the wave state.
func (s *Spawner) spawnEnemy() *Enemy {
	margin := s.params.enemy.OffscreenMargin
	x := margin + s.rng.Float64()*(s.worldW-2*margin)
	y := -margin

	bsm := s.wave.BulletSpeedMult
	frm := s.wave.FireRateMult

	switch s.pickKind() {
	case EnemyChaser:
		return NewChaserEnemy(x, y, s.params, bsm, frm)
	case EnemyZigzag:
		return NewZigzagEnemy(x, y, s.params, bsm, frm)
	default:
		return NewBasicEnemy(x, y, s.params, bsm, frm)
	}
}

// pickKind draws an archetype by configured weight (basic 50, zigzag 30,
// chaser 20 by default).
func (s *Spawner) pickKind() EnemyKind {
	total := s.params.enemy.BasicWeight + s.params.enemy.ZigzagWeight + s.params.enemy.ChaserWeight
	roll := s.rng.Intn(total)

	if roll < s.params.enemy.BasicWeight {
		return EnemyBasic
	}
	if roll < s.params.enemy.BasicWeight+s.params.enemy.ZigzagWeight {
		return EnemyZigzag
	}
	return EnemyChaser
}

// spawnBoss creates the boss at the top center, already at its lock height,
// and advances the persistent boss level, so every encounter is strictly
// harder than the last.
func (s *Spawner) spawnBoss() *Enemy {
	s.wave.BossLevel++
	return NewBossEnemy(s.worldW/2, s.boss.LockY, s.wave.BossLevel, s.boss, s.params)
}
