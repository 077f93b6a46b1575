package game

import (
	"math"
	"testing"
)

func newTestBoss(level int) *Enemy {
	cfg := testConfig()
	return NewBossEnemy(400, 50, level, cfg.Boss, testParams())
}

// TestBossPentaShot verifies the boss fires five bullets in a symmetric
// angular fan with distinct velocity vectors.
func TestBossPentaShot(t *testing.T) {
	boss := newTestBoss(1)

	bullets := boss.CreateBullets()
	if len(bullets) != 5 {
		t.Fatalf("Expected 5 bullets, got %d", len(bullets))
	}

	seen := map[float64]bool{}
	for _, b := range bullets {
		if seen[b.VX] {
			t.Errorf("Expected distinct VX per bullet, got duplicate %f", b.VX)
		}
		seen[b.VX] = true

		if b.Owner != OwnerEnemy {
			t.Errorf("Expected owner %q, got %q", OwnerEnemy, b.Owner)
		}
		if b.VY != 240 {
			t.Errorf("Expected VY 240 on every bullet, got %f", b.VY)
		}
	}

	// Center bullet flies straight down; the outer pair is symmetric.
	if bullets[2].VX != 0 {
		t.Errorf("Expected center bullet VX 0, got %f", bullets[2].VX)
	}
	if math.Abs(bullets[0].VX+bullets[4].VX) > 1e-9 {
		t.Errorf("Expected symmetric fan, got outer VX %f and %f", bullets[0].VX, bullets[4].VX)
	}
}

// TestBossLevelScaling verifies every boss stat scales with the encounter
// level.
func TestBossLevelScaling(t *testing.T) {
	l1 := newTestBoss(1)
	l2 := newTestBoss(2)

	if l1.MaxHealth != 50 {
		t.Errorf("Expected level 1 health 50, got %d", l1.MaxHealth)
	}
	if l2.MaxHealth != 75 {
		t.Errorf("Expected level 2 health 75, got %d", l2.MaxHealth)
	}
	if l1.ScoreValue != 500 || l2.ScoreValue != 1000 {
		t.Errorf("Expected scores 500 and 1000, got %d and %d", l1.ScoreValue, l2.ScoreValue)
	}
	if math.Abs(l2.BulletSpeedMult-1.2) > 1e-9 {
		t.Errorf("Expected level 2 bullet speed mult 1.2, got %f", l2.BulletSpeedMult)
	}
	if math.Abs(l2.ShootTimer-1.7) > 1e-9 {
		t.Errorf("Expected level 2 fire rate 1.7, got %f", l2.ShootTimer)
	}
	if l1.Width != 128 {
		t.Errorf("Expected double-size sprite 128, got %f", l1.Width)
	}
}

// TestBossDescendsThenLocks verifies the boss moves down to the lock height
// and holds it.
func TestBossDescendsThenLocks(t *testing.T) {
	boss := newTestBoss(1)
	boss.Y = 0

	dt := 1.0 / 60.0
	for i := 0; i < 300; i++ {
		if !boss.Update(dt, 400, 500, 800, 600) {
			t.Fatal("Boss despawned during descent")
		}
	}

	if boss.Y != 100 {
		t.Errorf("Expected boss locked at Y 100, got %f", boss.Y)
	}
	if boss.VY != 0 {
		t.Errorf("Expected VY 0 after lock, got %f", boss.VY)
	}
}

// TestBossTracksPlayer verifies the delayed horizontal chase moves the
// locked boss toward the player without exceeding the speed cap.
func TestBossTracksPlayer(t *testing.T) {
	boss := newTestBoss(1)
	boss.Y = 100

	dt := 1.0 / 60.0
	startX := boss.X
	for i := 0; i < 180; i++ {
		boss.Update(dt, 700, 500, 800, 600)

		if math.Abs(boss.VX) > 200 {
			t.Fatalf("Expected track speed capped at 200, got %f", boss.VX)
		}
	}

	if boss.X <= startX {
		t.Errorf("Expected boss to drift toward the player, got X %f from %f", boss.X, startX)
	}
	if boss.X > 700 {
		t.Errorf("Expected no overshoot past the player, got X %f", boss.X)
	}
}

// TestBossFireTimer verifies firing is purely timer-gated.
func TestBossFireTimer(t *testing.T) {
	boss := newTestBoss(1)
	rng := testRNG()

	if boss.ShouldShoot(rng) {
		t.Error("Boss should not fire before the initial delay")
	}

	boss.ShootTimer = 0
	if !boss.ShouldShoot(rng) {
		t.Error("Boss should fire once the timer elapses")
	}
	if boss.ShootTimer != 2.0 {
		t.Errorf("Expected timer re-armed at 2.0, got %f", boss.ShootTimer)
	}
}
