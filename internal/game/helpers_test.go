package game

import (
	"math/rand"

	"voidrunner/internal/config"
)

// testConfig returns the default configuration without environment
// overrides, so tests are insulated from the host environment.
func testConfig() config.AppConfig {
	return config.AppConfig{
		World:  config.DefaultWorld(),
		Player: config.DefaultPlayer(),
		Bullet: config.DefaultBullet(),
		Enemy:  config.DefaultEnemy(),
		Boss:   config.DefaultBoss(),
		Wave:   config.DefaultWave(),
		Score:  config.DefaultScore(),
		Limits: config.DefaultLimits(),
		Audio:  config.DefaultAudio(),
		Server: config.DefaultServer(),
	}
}

func testParams() enemyParams {
	cfg := testConfig()
	return enemyParams{
		enemy:  cfg.Enemy,
		bullet: cfg.Bullet,
		score:  cfg.Score,
	}
}

func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(42))
}
