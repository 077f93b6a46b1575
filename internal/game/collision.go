package game

import "voidrunner/internal/config"

// Resolver adjudicates all per-tick collisions: player bullets against
// enemies, enemy bullets against the player, and enemy-player ramming.
// Scoring, streak bonuses, and kill/death bookkeeping happen here.
type Resolver struct {
	score  config.ScoreConfig
	bullet config.BulletConfig

	// Callbacks wired by the engine. All optional.
	OnEnemyKilled func(e *Enemy) // Fired once per shot-down enemy
	OnEnemyRammed func(e *Enemy) // Fired for enemies destroyed by ramming
	OnPlayerHit   func()         // Fired once per damage application
	OnSound       func(name string)
}

// NewResolver creates a collision resolver.
func NewResolver(score config.ScoreConfig, bullet config.BulletConfig) *Resolver {
	return &Resolver{score: score, bullet: bullet}
}

// ResolveAll runs the three collision checks in a fixed order and returns
// the points earned this tick and whether the player died. The entity
// slices are filtered in place.
func (r *Resolver) ResolveAll(player *Player, playerBullets *[]*Bullet, enemies *[]*Enemy, enemyBullets *[]*Bullet) (int, bool) {
	points := r.resolvePlayerBullets(player, playerBullets, enemies)

	diedFromBullet := r.resolveEnemyBullets(player, enemyBullets)
	diedFromRam := r.resolveRamming(player, enemies)

	return points, diedFromBullet || diedFromRam
}

// resolvePlayerBullets applies each player bullet to every enemy it
// overlaps, consuming the bullet on its first resolution pass. A kill
// awards the enemy's score value, multiplied by the streak bonus if the
// player's streak has reached the threshold at the moment of the kill;
// the streak increments after the award, never before.
func (r *Resolver) resolvePlayerBullets(player *Player, playerBullets *[]*Bullet, enemies *[]*Enemy) int {
	points := 0

	nb := 0
	for _, b := range *playerBullets {
		hit := false

		ne := 0
		for _, e := range *enemies {
			if !b.Rect().Intersects(e.Rect()) {
				(*enemies)[ne] = e
				ne++
				continue
			}
			hit = true

			if !e.TakeDamage(b.Damage) {
				(*enemies)[ne] = e
				ne++
				continue
			}

			// Enemy died: award points with the streak check made at the
			// moment of the kill, then advance the streak.
			if player.KillStreak >= r.score.StreakThreshold {
				points += int(float64(e.ScoreValue) * r.score.StreakMultiplier)
			} else {
				points += e.ScoreValue
			}
			player.AddKillToStreak()

			if r.OnEnemyKilled != nil {
				r.OnEnemyKilled(e)
			}
			r.playSound("explosion")
		}
		*enemies = (*enemies)[:ne]

		if !hit {
			(*playerBullets)[nb] = b
			nb++
		}
	}
	*playerBullets = (*playerBullets)[:nb]

	return points
}

// resolveEnemyBullets removes every bullet overlapping the player but
// applies damage at most once per tick, gated by the invincibility window.
func (r *Resolver) resolveEnemyBullets(player *Player, enemyBullets *[]*Bullet) bool {
	playerRect := player.Rect()
	hitCount := 0

	n := 0
	for _, b := range *enemyBullets {
		if b.Rect().Intersects(playerRect) {
			hitCount++
			continue
		}
		(*enemyBullets)[n] = b
		n++
	}
	*enemyBullets = (*enemyBullets)[:n]

	if hitCount == 0 || player.Invincible {
		return false
	}

	died := player.TakeDamage(r.bullet.EnemyDamage)
	if r.OnPlayerHit != nil {
		r.OnPlayerHit()
	}
	r.playSound("player_hit")
	return died
}

// resolveRamming destroys every enemy overlapping the player. Ramming is
// lethal to the enemy regardless of its remaining health, and applies one
// invincibility-gated damage event at the ram multiplier.
//
// This check runs after the bullet check in the same tick. A bullet hit
// always starts an invincibility window, so that window gates the ram
// damage when both land in the same tick.
func (r *Resolver) resolveRamming(player *Player, enemies *[]*Enemy) bool {
	playerRect := player.Rect()
	rammed := 0

	n := 0
	for _, e := range *enemies {
		if e.Rect().Intersects(playerRect) {
			rammed++
			if r.OnEnemyRammed != nil {
				r.OnEnemyRammed(e)
			}
			continue
		}
		(*enemies)[n] = e
		n++
	}
	*enemies = (*enemies)[:n]

	if rammed == 0 || player.Invincible {
		return false
	}

	died := player.TakeDamage(r.bullet.EnemyDamage * r.bullet.RamMultiplier)
	if r.OnPlayerHit != nil {
		r.OnPlayerHit()
	}
	r.playSound("player_hit")
	r.playSound("explosion")
	return died
}

func (r *Resolver) playSound(name string) {
	if r.OnSound != nil {
		r.OnSound(name)
	}
}
