package game

// EffectKind distinguishes transient visual effects.
type EffectKind int

const (
	EffectExplosion EffectKind = iota
	EffectHitFlash
)

// String returns the effect's render asset name.
func (k EffectKind) String() string {
	switch k {
	case EffectExplosion:
		return "explosion"
	case EffectHitFlash:
		return "hit_flash"
	default:
		return "unknown"
	}
}

// HitEffect is a transient visual entity spawned on kills and hits.
// It carries no gameplay state; the renderer fades it out over its lifetime.
type HitEffect struct {
	X, Y  float64
	Kind  EffectKind
	Timer float64 // Remaining lifetime in seconds
	Life  float64 // Initial lifetime, for alpha computation
}

// NewExplosion creates an explosion effect at the given position.
func NewExplosion(x, y float64) *HitEffect {
	return &HitEffect{X: x, Y: y, Kind: EffectExplosion, Timer: 0.4, Life: 0.4}
}

// NewHitFlash creates a short flash effect at the given position.
func NewHitFlash(x, y float64) *HitEffect {
	return &HitEffect{X: x, Y: y, Kind: EffectHitFlash, Timer: 0.15, Life: 0.15}
}

// Update advances the effect's timer. Returns false once expired.
func (e *HitEffect) Update(dt float64) bool {
	e.Timer -= dt
	return e.Timer > 0
}

// Alpha returns the remaining opacity in [0, 1].
func (e *HitEffect) Alpha() float64 {
	if e.Life <= 0 {
		return 0
	}
	a := e.Timer / e.Life
	if a < 0 {
		return 0
	}
	return a
}
