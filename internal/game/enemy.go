package game

import (
	"math/rand"

	"voidrunner/internal/config"
)

// EnemyKind identifies the fixed set of enemy archetypes.
type EnemyKind int

const (
	EnemyBasic EnemyKind = iota
	EnemyChaser
	EnemyZigzag
	EnemyBoss
)

// String returns the sprite/sound handle name for the archetype.
func (k EnemyKind) String() string {
	switch k {
	case EnemyBasic:
		return "enemy_basic"
	case EnemyChaser:
		return "enemy_chaser"
	case EnemyZigzag:
		return "enemy_zigzag"
	case EnemyBoss:
		return "boss"
	default:
		return "unknown"
	}
}

// Behavior is the per-archetype capability set. Each variant supplies its
// own movement pattern, shot decision, and bullet pattern; everything else
// (position integration, timers, despawn) is shared on Enemy.
type Behavior interface {
	// UpdateBehavior sets the enemy's velocity for this tick.
	UpdateBehavior(e *Enemy, dt float64, playerX, playerY float64)
	// ShouldShoot decides whether the enemy fires this tick and, on a
	// positive decision, arms the shot cooldown.
	ShouldShoot(e *Enemy, rng *rand.Rand) bool
	// CreateBullets builds the bullets for one firing event.
	CreateBullets(e *Enemy) []*Bullet
}

// Enemy is a hostile entity. Archetype-specific movement and firing live in
// the attached Behavior; the struct itself carries the shared state.
type Enemy struct {
	Kind   EnemyKind
	X, Y   float64
	VX, VY float64

	Health     int
	MaxHealth  int
	Speed      float64
	ScoreValue int

	// Shooting
	CanShoot   bool
	ShootTimer float64

	// Difficulty scaling, passed in by the spawner at creation.
	// BulletSpeedMult >= 1 speeds up bullets; FireRateMult <= 1 shortens
	// the cooldown between shots.
	BulletSpeedMult float64
	FireRateMult    float64

	DamageFlashTimer float64
	TimeAlive        float64

	Width  float64
	Height float64

	// Boss only: encounter level, 1-based.
	BossLevel int

	// Archetype tuning captured at construction
	shootChance     float64
	shootCooldown   float64
	bulletSpeed     float64
	bulletDamage    float64
	bulletW         float64
	bulletH         float64
	damageFlashDur  float64
	offscreenMargin float64

	behavior Behavior
}

// Update advances the enemy by dt seconds. Returns false once the enemy has
// left the play bounds and should be despawned (bosses are exempt except as
// a far-below-screen safety net).
func (e *Enemy) Update(dt float64, playerX, playerY, worldW, worldH float64) bool {
	e.TimeAlive += dt
	e.behavior.UpdateBehavior(e, dt, playerX, playerY)

	e.X += e.VX * dt
	e.Y += e.VY * dt

	if e.ShootTimer > 0 {
		e.ShootTimer -= dt
	}
	if e.DamageFlashTimer > 0 {
		e.DamageFlashTimer -= dt
	}

	return !e.offscreen(worldW, worldH)
}

func (e *Enemy) offscreen(worldW, worldH float64) bool {
	m := e.offscreenMargin
	if e.Kind == EnemyBoss {
		// Bosses never despawn from tracking drift; only a far-below-screen
		// safety net applies.
		return e.Y-e.Height/2 > worldH+4*m
	}
	return e.Y-e.Height/2 > worldH+m ||
		e.Y+e.Height/2 < -m ||
		e.X+e.Width/2 < -m ||
		e.X-e.Width/2 > worldW+m
}

// TakeDamage applies damage. Returns true if the enemy died.
func (e *Enemy) TakeDamage(amount int) bool {
	e.Health -= amount
	if e.Health > 0 {
		e.DamageFlashTimer = e.damageFlashDur
		return false
	}
	return true
}

// ShouldShoot asks the archetype behavior for a firing decision.
func (e *Enemy) ShouldShoot(rng *rand.Rand) bool {
	return e.behavior.ShouldShoot(e, rng)
}

// CreateBullets builds this enemy's bullets for one firing event.
func (e *Enemy) CreateBullets() []*Bullet {
	return e.behavior.CreateBullets(e)
}

// Rect returns the enemy's collision box.
func (e *Enemy) Rect() Rect {
	return Rect{X: e.X, Y: e.Y, W: e.Width, H: e.Height}
}

// probabilisticShooter is the shared firing policy for non-boss enemies:
// once the cooldown has elapsed, each tick carries a fixed chance to fire.
// On success the cooldown is re-armed, scaled by the fire-rate multiplier
// (multiplier below 1 means faster fire as difficulty rises).
type probabilisticShooter struct{}

func (probabilisticShooter) ShouldShoot(e *Enemy, rng *rand.Rand) bool {
	if !e.CanShoot || e.ShootTimer > 0 {
		return false
	}
	if rng.Float64() < e.shootChance {
		e.ShootTimer = e.shootCooldown * e.FireRateMult
		return true
	}
	return false
}

// singleShot is the shared bullet pattern for non-boss enemies: one bullet
// straight down, speed scaled by the difficulty multiplier.
type singleShot struct{}

func (singleShot) CreateBullets(e *Enemy) []*Bullet {
	return []*Bullet{{
		X:      e.X,
		Y:      e.Y + e.Height/2,
		VY:     e.bulletSpeed * e.BulletSpeedMult,
		Owner:  OwnerEnemy,
		Damage: int(e.bulletDamage),
		Width:  e.bulletW,
		Height: e.bulletH,
	}}
}

// enemyParams bundles the config slices every enemy constructor needs.
type enemyParams struct {
	enemy  config.EnemyConfig
	bullet config.BulletConfig
	score  config.ScoreConfig
}

func newEnemyBase(kind EnemyKind, x, y float64, health int, speed float64, score int, p enemyParams, bulletSpeedMult, fireRateMult float64) Enemy {
	return Enemy{
		Kind:            kind,
		X:               x,
		Y:               y,
		Health:          health,
		MaxHealth:       health,
		Speed:           speed,
		ScoreValue:      score,
		BulletSpeedMult: bulletSpeedMult,
		FireRateMult:    fireRateMult,
		Width:           p.enemy.SpriteWidth,
		Height:          p.enemy.SpriteHeight,
		shootChance:     p.enemy.ShootChance,
		shootCooldown:   p.enemy.ShootCooldownBase,
		bulletSpeed:     p.bullet.EnemySpeed,
		bulletDamage:    p.bullet.EnemyDamage,
		bulletW:         p.bullet.Width,
		bulletH:         p.bullet.Height,
		damageFlashDur:  p.enemy.DamageFlashDur,
		offscreenMargin: p.enemy.OffscreenMargin,
	}
}
