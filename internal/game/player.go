package game

import (
	"math"

	"voidrunner/internal/config"
)

// Player is the player's ship. It moves from a normalized input intent,
// shoots on a cooldown, and funnels damage through the configured buffer
// chain (health→lives or shield→health) with post-hit invincibility.
type Player struct {
	X, Y   float64
	VX, VY float64

	Lives     int
	Health    float64
	Shield    float64
	MaxLives  int
	MaxHealth float64
	MaxShield float64

	// Shooting
	ShootCooldown float64

	// Damage state
	Invincible         bool
	InvincibilityTimer float64
	DamageFlashTimer   float64
	TimeSinceDamage    float64

	// Stats tracking
	KillStreak int

	cfg       config.PlayerConfig
	bulletCfg config.BulletConfig
	worldW    float64
	worldH    float64
}

// NewPlayer creates the player ship centered near the bottom of the play area.
func NewPlayer(cfg config.PlayerConfig, bulletCfg config.BulletConfig, world config.WorldConfig) *Player {
	return &Player{
		X:         float64(world.Width) / 2,
		Y:         float64(world.Height) - cfg.SpriteHeight,
		Lives:     cfg.MaxLives,
		Health:    cfg.MaxHealth,
		Shield:    cfg.MaxShield,
		MaxLives:  cfg.MaxLives,
		MaxHealth: cfg.MaxHealth,
		MaxShield: cfg.MaxShield,
		cfg:       cfg,
		bulletCfg: bulletCfg,
		worldW:    float64(world.Width),
		worldH:    float64(world.Height),
	}
}

// Update advances the player state by dt seconds.
func (p *Player) Update(dt float64, in InputIntent) {
	p.handleMovement(dt, in)

	if p.ShootCooldown > 0 {
		p.ShootCooldown -= dt
	}

	p.updateInvincibility(dt)
	p.updateRegen(dt)
	p.constrainToBounds()
}

// handleMovement applies the normalized input intent. Diagonal movement is
// normalized so it carries no speed advantage.
func (p *Player) handleMovement(dt float64, in InputIntent) {
	in.Clamp()

	vx := in.MoveX
	vy := in.MoveY
	length := math.Sqrt(vx*vx + vy*vy)
	if length > 1 {
		vx /= length
		vy /= length
	}

	p.VX = vx * p.cfg.Speed
	p.VY = vy * p.cfg.Speed
	p.X += p.VX * dt
	p.Y += p.VY * dt
}

func (p *Player) updateInvincibility(dt float64) {
	if p.InvincibilityTimer > 0 {
		p.InvincibilityTimer -= dt
		if p.InvincibilityTimer <= 0 {
			p.Invincible = false
		}
	}
	if p.DamageFlashTimer > 0 {
		p.DamageFlashTimer -= dt
	}
}

// updateRegen regenerates the damage buffer (shield or health depending on
// the model) after RegenDelay seconds without damage, never past the max.
func (p *Player) updateRegen(dt float64) {
	p.TimeSinceDamage += dt
	if p.TimeSinceDamage < p.cfg.RegenDelay || p.cfg.RegenRate <= 0 {
		return
	}

	switch p.cfg.Model {
	case config.DamageModelShieldHealth:
		if p.Shield < p.MaxShield {
			p.Shield = math.Min(p.Shield+p.cfg.RegenRate*dt, p.MaxShield)
		}
	default:
		if p.Health < p.MaxHealth {
			p.Health = math.Min(p.Health+p.cfg.RegenRate*dt, p.MaxHealth)
		}
	}
}

// constrainToBounds keeps the ship inside the play area, accounting for
// sprite half-extents.
func (p *Player) constrainToBounds() {
	halfW := p.cfg.SpriteWidth / 2
	halfH := p.cfg.SpriteHeight / 2
	p.X = clamp(p.X, halfW, p.worldW-halfW)
	p.Y = clamp(p.Y, halfH, p.worldH-halfH)
}

// CanShoot reports whether the shoot cooldown has elapsed.
func (p *Player) CanShoot() bool {
	return p.ShootCooldown <= 0
}

// Shoot resets the cooldown and returns a bullet fired upward from the
// ship's nose.
func (p *Player) Shoot() *Bullet {
	p.ShootCooldown = p.cfg.ShootCooldown

	return &Bullet{
		X:      p.X,
		Y:      p.Y - p.cfg.SpriteHeight/2,
		VY:     -p.bulletCfg.PlayerSpeed,
		Owner:  OwnerPlayer,
		Damage: p.bulletCfg.PlayerDamage,
		Width:  p.bulletCfg.Width,
		Height: p.bulletCfg.Height,
	}
}

// TakeDamage funnels damage through the configured buffer chain.
// Returns true if the player died. A hit that lands resets the kill streak
// and regen timer and starts the invincibility window; hits during the
// window are ignored entirely.
func (p *Player) TakeDamage(amount float64) bool {
	if p.Invincible {
		return false
	}

	p.TimeSinceDamage = 0

	died := false
	switch p.cfg.Model {
	case config.DamageModelShieldHealth:
		died = p.damageShieldHealth(amount)
	default:
		died = p.damageHealthLives(amount)
	}

	p.KillStreak = 0
	p.Invincible = true
	p.InvincibilityTimer = p.cfg.InvincibilityDur
	p.DamageFlashTimer = 0.15

	return died
}

// damageHealthLives depletes health; an empty health buffer costs a life
// and refills health, until no lives remain.
func (p *Player) damageHealthLives(amount float64) bool {
	p.Health -= amount
	if p.Health <= 0 {
		p.Lives--
		if p.Lives > 0 {
			p.Health = p.MaxHealth
		} else {
			p.Health = 0
			return true
		}
	}
	return false
}

// damageShieldHealth depletes the shield first; overflow carries into
// health. Death occurs when health is exhausted.
func (p *Player) damageShieldHealth(amount float64) bool {
	p.Shield -= amount
	if p.Shield < 0 {
		p.Health += p.Shield // Carry the overflow
		p.Shield = 0
	}
	if p.Health <= 0 {
		p.Health = 0
		return true
	}
	return false
}

// Heal restores health, never past the maximum.
func (p *Player) Heal(amount float64) {
	p.Health = math.Min(p.Health+amount, p.MaxHealth)
}

// AddKillToStreak increments the kill streak counter.
func (p *Player) AddKillToStreak() {
	p.KillStreak++
}

// IsAlive reports whether the player has lives remaining.
func (p *Player) IsAlive() bool {
	if p.cfg.Model == config.DamageModelShieldHealth {
		return p.Health > 0
	}
	return p.Lives > 0
}

// Rect returns the player's collision box.
func (p *Player) Rect() Rect {
	return Rect{X: p.X, Y: p.Y, W: p.cfg.SpriteWidth, H: p.cfg.SpriteHeight}
}
