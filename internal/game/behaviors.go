package game

import "math"

// basicBehavior moves straight down and ignores the player entirely.
type basicBehavior struct {
	probabilisticShooter
	singleShot
}

func (basicBehavior) UpdateBehavior(e *Enemy, dt float64, playerX, playerY float64) {
	e.VX = 0
	e.VY = e.Speed
}

// NewBasicEnemy creates the simplest enemy: constant downward drift with
// occasional shots.
func NewBasicEnemy(x, y float64, p enemyParams, bulletSpeedMult, fireRateMult float64) *Enemy {
	e := newEnemyBase(EnemyBasic, x, y,
		p.enemy.BasicHealth,
		p.enemy.BaseSpeed*p.enemy.BasicSpeedMult,
		p.score.BasicPoints,
		p, bulletSpeedMult, fireRateMult)
	e.CanShoot = true
	e.VY = e.Speed
	e.behavior = basicBehavior{}
	return &e
}

// Chaser oscillation tuning. Smaller amplitude and faster frequency than the
// zigzag pattern, applied perpendicular to the chase direction.
const (
	chaserOscAmplitude = 30.0
	chaserOscFrequency = 4.0
	chaserOscDamping   = 10.0
)

// chaserBehavior steers toward the player with a perpendicular sinusoidal
// wobble for unpredictability.
type chaserBehavior struct {
	probabilisticShooter
	singleShot
}

func (chaserBehavior) UpdateBehavior(e *Enemy, dt float64, playerX, playerY float64) {
	dx := playerX - e.X
	dy := playerY - e.Y
	dist := math.Sqrt(dx*dx + dy*dy)

	if dist == 0 {
		// Degenerate case: sitting exactly on the player. Fall back to
		// straight-down motion instead of normalizing a zero vector.
		e.VX = 0
		e.VY = e.Speed
		return
	}

	dirX := dx / dist
	dirY := dy / dist

	osc := chaserOscAmplitude * math.Sin(e.TimeAlive*chaserOscFrequency) / chaserOscDamping
	// Perpendicular to the chase direction
	perpX := -dirY
	perpY := dirX

	e.VX = dirX*e.Speed + perpX*osc
	e.VY = dirY*e.Speed + perpY*osc
}

// NewChaserEnemy creates an enemy that tracks the player while oscillating.
func NewChaserEnemy(x, y float64, p enemyParams, bulletSpeedMult, fireRateMult float64) *Enemy {
	e := newEnemyBase(EnemyChaser, x, y,
		p.enemy.ChaserHealth,
		p.enemy.BaseSpeed*p.enemy.ChaserSpeedMult,
		p.score.ChaserPoints,
		p, bulletSpeedMult, fireRateMult)
	e.CanShoot = true
	e.behavior = chaserBehavior{}
	return &e
}

// Zigzag sine-wave tuning.
const (
	zigzagAmplitude = 100.0
	zigzagFrequency = 2.0
)

// zigzagBehavior descends at constant speed while the x velocity follows
// the derivative of a sine wave. Player position is deliberately ignored:
// the trajectory must be identical no matter where the player is.
type zigzagBehavior struct {
	probabilisticShooter
	singleShot
}

func (zigzagBehavior) UpdateBehavior(e *Enemy, dt float64, playerX, playerY float64) {
	e.VY = e.Speed
	e.VX = zigzagAmplitude * zigzagFrequency * math.Cos(e.TimeAlive*zigzagFrequency)
}

// NewZigzagEnemy creates an enemy that weaves horizontally while descending.
func NewZigzagEnemy(x, y float64, p enemyParams, bulletSpeedMult, fireRateMult float64) *Enemy {
	e := newEnemyBase(EnemyZigzag, x, y,
		p.enemy.ZigzagHealth,
		p.enemy.BaseSpeed*p.enemy.ZigzagSpeedMult,
		p.score.ZigzagPoints,
		p, bulletSpeedMult, fireRateMult)
	e.CanShoot = true
	e.behavior = zigzagBehavior{}
	return &e
}
