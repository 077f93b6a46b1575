package game

// BulletOwner tags who fired a bullet, for collision routing.
type BulletOwner string

const (
	OwnerPlayer BulletOwner = "player"
	OwnerEnemy  BulletOwner = "enemy"
)

// Bullet is a projectile fired by the player or an enemy.
type Bullet struct {
	X, Y   float64
	VX, VY float64
	Owner  BulletOwner
	Damage int

	Width  float64
	Height float64
}

// Update moves the bullet. Returns false once the bullet has left the
// play bounds and should be removed.
func (b *Bullet) Update(dt float64, worldW, worldH float64) bool {
	b.X += b.VX * dt
	b.Y += b.VY * dt

	halfW := b.Width / 2
	halfH := b.Height / 2
	if b.X+halfW < 0 || b.X-halfW > worldW || b.Y+halfH < 0 || b.Y-halfH > worldH {
		return false
	}
	return true
}

// Rect returns the bullet's collision box.
func (b *Bullet) Rect() Rect {
	return Rect{X: b.X, Y: b.Y, W: b.Width, H: b.Height}
}
