package game

import (
	"encoding/json"
	"testing"
	"time"
)

// TestNewEngine verifies the engine constructs a complete initial state.
func TestNewEngine(t *testing.T) {
	e := NewEngine(testConfig())
	if e == nil {
		t.Fatal("NewEngine returned nil")
	}

	if e.player == nil {
		t.Fatal("Engine has no player")
	}
	if e.wave.CurrentWave != 1 {
		t.Errorf("Expected wave 1, got %d", e.wave.CurrentWave)
	}
	if e.gameOver {
		t.Error("New engine should not start in game over")
	}
}

// TestEngineStartStop verifies the tick loop runs and shuts down cleanly.
func TestEngineStartStop(t *testing.T) {
	e := NewEngine(testConfig())

	e.Start()
	time.Sleep(100 * time.Millisecond)

	snap := e.GetSnapshot()
	if snap == nil {
		t.Fatal("GetSnapshot returned nil while running")
	}
	if snap.TickNumber == 0 {
		t.Error("Expected ticks to have advanced")
	}

	e.Stop()
	e.Stop() // Double stop must not panic
}

// TestEngineFiresOnInput verifies a held fire intent produces a bullet.
func TestEngineFiresOnInput(t *testing.T) {
	e := NewEngine(testConfig())
	e.SetInput(InputIntent{Fire: true})

	e.Step(1.0 / 60.0)

	if len(e.playerBullets) != 1 {
		t.Fatalf("Expected 1 player bullet, got %d", len(e.playerBullets))
	}
	if e.playerBullets[0].Owner != OwnerPlayer {
		t.Errorf("Expected player-owned bullet, got %q", e.playerBullets[0].Owner)
	}
}

// TestEngineBulletCap verifies the global bullet cap blocks new shots.
func TestEngineBulletCap(t *testing.T) {
	e := NewEngine(testConfig())
	for i := 0; i < e.limits.MaxBullets; i++ {
		e.playerBullets = append(e.playerBullets, &Bullet{X: 400, Y: 300, Owner: OwnerPlayer, Width: 8, Height: 16})
	}
	e.SetInput(InputIntent{Fire: true})

	e.Step(1.0 / 60.0)

	if len(e.playerBullets) != e.limits.MaxBullets {
		t.Errorf("Expected bullet count held at the cap %d, got %d", e.limits.MaxBullets, len(e.playerBullets))
	}
}

// TestEngineWaveClearFlow verifies the pause between waves: sweep, heal,
// then advance after the delay.
func TestEngineWaveClearFlow(t *testing.T) {
	e := NewEngine(testConfig())
	e.player.Health = 40
	e.enemies = append(e.enemies, NewBasicEnemy(100, 100, testParams(), 1.0, 1.0))
	e.wave.EnemiesKilledThisWave = e.wave.MaxKillsThisWave

	e.Step(1.0 / 60.0)

	if !e.waveClearing {
		t.Fatal("Expected wave clear to begin at the quota")
	}
	if len(e.enemies) != 0 {
		t.Errorf("Expected field swept on wave clear, got %d enemies", len(e.enemies))
	}
	if e.player.Health != 90 {
		t.Errorf("Expected 50 health restored (40 -> 90), got %f", e.player.Health)
	}

	// Wait out the clear delay.
	for i := 0; i < 200; i++ {
		e.Step(1.0 / 60.0)
	}

	if e.waveClearing {
		t.Error("Expected wave clear to end after the delay")
	}
	if e.wave.CurrentWave != 2 {
		t.Errorf("Expected wave 2, got %d", e.wave.CurrentWave)
	}
}

// TestEngineGameOver verifies exhausting the last life ends the run and
// records the high score.
func TestEngineGameOver(t *testing.T) {
	e := NewEngine(testConfig())
	e.score = 300
	e.player.Lives = 1
	e.player.Health = 5
	e.enemyBullets = append(e.enemyBullets, &Bullet{
		X: e.player.X, Y: e.player.Y, Owner: OwnerEnemy, Damage: 10, Width: 8, Height: 16,
	})

	e.Step(1.0 / 60.0)

	if !e.gameOver {
		t.Fatal("Expected game over after the last life")
	}
	if e.HighScore() != 300 {
		t.Errorf("Expected high score 300, got %d", e.HighScore())
	}
}

// TestEngineRestart verifies a restart resets the run but keeps the high
// score.
func TestEngineRestart(t *testing.T) {
	e := NewEngine(testConfig())
	e.score = 1234
	e.highScore = 5000
	e.gameOver = true
	e.waveClearing = true
	e.enemies = append(e.enemies, NewBasicEnemy(100, 100, testParams(), 1.0, 1.0))

	e.Restart()

	if e.Score() != 0 {
		t.Errorf("Expected score reset to 0, got %d", e.Score())
	}
	if e.HighScore() != 5000 {
		t.Errorf("Expected high score preserved at 5000, got %d", e.HighScore())
	}
	if e.gameOver || e.waveClearing {
		t.Error("Expected run flags cleared on restart")
	}
	if e.wave.CurrentWave != 1 {
		t.Errorf("Expected wave 1 after restart, got %d", e.wave.CurrentWave)
	}
	if len(e.enemies) != 0 {
		t.Errorf("Expected field cleared on restart, got %d enemies", len(e.enemies))
	}
}

// TestEngineBossKillCompletesWave verifies shooting down the boss registers
// the boss kill and counts toward the quota.
func TestEngineBossKillCompletesWave(t *testing.T) {
	e := NewEngine(testConfig())
	for e.wave.CurrentWave < 5 {
		e.wave.AdvanceWave()
	}
	e.wave.EnemiesKilledThisWave = e.wave.MaxKillsThisWave - 1
	e.wave.BossSpawned = true

	boss := NewBossEnemy(400, 100, 1, testConfig().Boss, testParams())
	boss.Health = 1
	e.enemies = append(e.enemies, boss)
	e.playerBullets = append(e.playerBullets, &Bullet{
		X: 400, Y: 100, VY: -1, Owner: OwnerPlayer, Damage: 1, Width: 8, Height: 16,
	})

	e.Step(1.0 / 60.0)

	if !e.wave.BossKilled {
		t.Error("Expected the boss kill to register")
	}
	if !e.waveClearing {
		t.Error("Expected the boss kill to complete the wave")
	}
	if e.score < 500 {
		t.Errorf("Expected at least the boss score 500, got %d", e.score)
	}
}

// TestSnapshotReflectsState verifies a produced snapshot carries the
// current run state.
func TestSnapshotReflectsState(t *testing.T) {
	e := NewEngine(testConfig())
	e.score = 420
	e.enemies = append(e.enemies, NewBasicEnemy(100, 100, testParams(), 1.0, 1.0))

	e.produceSnapshot()
	snap := e.GetSnapshot()

	if snap == nil {
		t.Fatal("GetSnapshot returned nil")
	}
	if snap.Score != 420 {
		t.Errorf("Expected snapshot score 420, got %d", snap.Score)
	}
	if len(snap.Enemies) != 1 {
		t.Fatalf("Expected 1 enemy in snapshot, got %d", len(snap.Enemies))
	}
	if snap.Enemies[0].Kind != "enemy_basic" {
		t.Errorf("Expected kind enemy_basic, got %q", snap.Enemies[0].Kind)
	}
	if snap.Wave != 1 {
		t.Errorf("Expected wave 1 in snapshot, got %d", snap.Wave)
	}
}

// TestEnemyFireSound verifies an enemy shot triggers the fire-and-forget
// sound callback.
func TestEnemyFireSound(t *testing.T) {
	e := NewEngine(testConfig())
	var played []string
	e.SetSoundCallback(func(name string) { played = append(played, name) })

	enemy := NewBasicEnemy(400, 100, testParams(), 1.0, 1.0)
	enemy.shootChance = 1.0
	e.enemies = append(e.enemies, enemy)

	e.Step(0.016)

	heard := false
	for _, name := range played {
		if name == "enemy_shoot" {
			heard = true
		}
	}
	if !heard {
		t.Errorf("Expected enemy_shoot sound, got %v", played)
	}
	if len(e.enemyBullets) != 1 {
		t.Errorf("Expected 1 enemy bullet, got %d", len(e.enemyBullets))
	}
}

// TestSnapshotJSONCarriesCoordinates verifies the serialized snapshot keeps
// position and velocity keys for every entity kind, since clients position
// sprites from them.
func TestSnapshotJSONCarriesCoordinates(t *testing.T) {
	e := NewEngine(testConfig())
	e.player.X, e.player.Y = 123, 456
	e.enemies = append(e.enemies, NewBasicEnemy(77, 88, testParams(), 1.0, 1.0))
	e.playerBullets = append(e.playerBullets, &Bullet{X: 10, Y: 20, Owner: OwnerPlayer})
	e.effects = append(e.effects, NewExplosion(30, 40))

	e.produceSnapshot()
	data, err := json.Marshal(e.GetSnapshot())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded struct {
		Player  map[string]interface{}   `json:"player"`
		Enemies []map[string]interface{} `json:"enemies"`
		Bullets []map[string]interface{} `json:"bullets"`
		Effects []map[string]interface{} `json:"effects"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if decoded.Player["x"] != 123.0 || decoded.Player["y"] != 456.0 {
		t.Errorf("Expected player at x=123 y=456, got x=%v y=%v",
			decoded.Player["x"], decoded.Player["y"])
	}
	for _, key := range []string{"vx", "vy"} {
		if _, ok := decoded.Player[key]; !ok {
			t.Errorf("Expected player snapshot to carry %q", key)
		}
	}
	if len(decoded.Enemies) != 1 || decoded.Enemies[0]["x"] != 77.0 || decoded.Enemies[0]["y"] != 88.0 {
		t.Errorf("Expected enemy at x=77 y=88, got %v", decoded.Enemies)
	}
	if len(decoded.Bullets) != 1 || decoded.Bullets[0]["x"] != 10.0 || decoded.Bullets[0]["y"] != 20.0 {
		t.Errorf("Expected bullet at x=10 y=20, got %v", decoded.Bullets)
	}
	if len(decoded.Effects) != 1 || decoded.Effects[0]["x"] != 30.0 || decoded.Effects[0]["y"] != 40.0 {
		t.Errorf("Expected effect at x=30 y=40, got %v", decoded.Effects)
	}
}
