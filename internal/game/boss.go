package game

import (
	"math"
	"math/rand"

	"voidrunner/internal/config"
)

// Penta-shot fan angles in radians: -30°, -15°, 0°, 15°, 30°.
var pentaShotAngles = [5]float64{-0.524, -0.262, 0, 0.262, 0.524}

// bossBehavior keeps the boss locked near the top of the play area while its
// horizontal position chases the player through an exponential-delay filter.
// Firing is on a fixed-period timer, not random chance.
type bossBehavior struct {
	targetX       float64 // Delayed tracking target
	lockY         float64
	descendSpeed  float64
	trackDelay    float64
	maxTrackSpeed float64
	fireRate      float64 // Seconds between volleys, level-scaled
}

func (b *bossBehavior) UpdateBehavior(e *Enemy, dt float64, playerX, playerY float64) {
	// The target drifts toward the player's x, which gives the chase its
	// delayed, telegraphed feel.
	b.targetX += (playerX - b.targetX) * b.trackDelay * dt

	// Move toward the delayed target with a clamped speed so the boss never
	// overshoots into oscillation.
	diff := b.targetX - e.X
	e.VX = clamp(diff*3.0, -b.maxTrackSpeed, b.maxTrackSpeed)

	// Descend to the lock height, then hold it. The boss never descends
	// further once in position.
	if e.Y < b.lockY {
		e.VY = b.descendSpeed
	} else {
		e.VY = 0
		e.Y = b.lockY
	}
}

func (b *bossBehavior) ShouldShoot(e *Enemy, rng *rand.Rand) bool {
	if e.ShootTimer <= 0 {
		e.ShootTimer = b.fireRate
		return true
	}
	return false
}

// CreateBullets emits the penta-shot: five bullets in a fixed angular fan,
// each with a distinct velocity vector, scaled by the level-derived bullet
// speed multiplier.
func (b *bossBehavior) CreateBullets(e *Enemy) []*Bullet {
	speed := e.bulletSpeed * e.BulletSpeedMult
	bullets := make([]*Bullet, 0, len(pentaShotAngles))

	for _, angle := range pentaShotAngles {
		bullets = append(bullets, &Bullet{
			X:      e.X,
			Y:      e.Y + e.Height/2,
			VX:     math.Sin(angle) * speed,
			VY:     speed,
			Owner:  OwnerEnemy,
			Damage: int(e.bulletDamage),
			Width:  e.bulletW,
			Height: e.bulletH,
		})
	}
	return bullets
}

// NewBossEnemy creates a boss for the given encounter level. Every stat
// scales exponentially in (level-1), so each encounter is strictly harder
// than the one before:
//
//	health       = BaseHealth * HealthMultiplier^(level-1)
//	fire rate    = BaseFireRate * FireRateDecrease^(level-1)
//	bullet speed = BulletSpeedScale^(level-1)
//	score        = Points * level
func NewBossEnemy(x, y float64, level int, bossCfg config.BossConfig, p enemyParams) *Enemy {
	if level < 1 {
		level = 1
	}

	health := int(float64(bossCfg.BaseHealth) * math.Pow(bossCfg.HealthMultiplier, float64(level-1)))
	fireRate := bossCfg.BaseFireRate * math.Pow(bossCfg.FireRateDecrease, float64(level-1))
	bulletSpeedMult := math.Pow(bossCfg.BulletSpeedScale, float64(level-1))

	e := newEnemyBase(EnemyBoss, x, y, health, bossCfg.MaxTrackSpeed, bossCfg.Points*level, p, bulletSpeedMult, 1.0)
	e.CanShoot = true
	e.BossLevel = level
	e.Width = p.enemy.SpriteWidth * bossCfg.SizeMultiplier
	e.Height = p.enemy.SpriteHeight * bossCfg.SizeMultiplier
	e.ShootTimer = fireRate

	e.behavior = &bossBehavior{
		targetX:       x,
		lockY:         bossCfg.LockY,
		descendSpeed:  bossCfg.DescendSpeed,
		trackDelay:    bossCfg.TrackDelay,
		maxTrackSpeed: bossCfg.MaxTrackSpeed,
		fireRate:      fireRate,
	}
	return &e
}
