package game

import (
	"log"
	"math/rand"
	"sync"
	"time"

	"voidrunner/internal/config"
)

// ScoreStore persists finished runs. The engine treats persistence as
// best-effort: a nil store or a failing save never interrupts gameplay.
type ScoreStore interface {
	SaveScore(score, wave int) error
	GetHighScore() int
}

// Engine is the main game engine handling the game loop and simulation.
// One fixed-rate goroutine owns all mutable state under the mutex; readers
// consume lock-free snapshots instead.
type Engine struct {
	mu  sync.Mutex
	cfg config.AppConfig

	player        *Player
	enemies       []*Enemy
	playerBullets []*Bullet
	enemyBullets  []*Bullet
	effects       []*HitEffect

	wave     *WaveState
	spawner  *Spawner
	resolver *Resolver

	input InputIntent

	score     int
	highScore int
	gameOver  bool

	// Wave-clear pause: entities are swept, the player heals, and the next
	// wave starts after the configured delay.
	waveClearing bool
	clearTimer   float64

	tickRate int
	running  bool
	ticker   *time.Ticker
	stopChan chan struct{}

	tickCount int64

	// Event callbacks
	onSound    func(name string)
	onGameOver func(score, wave int)

	worldWidth  float64
	worldHeight float64

	limits config.ResourceLimits

	// Snapshot system for lock-free render separation
	snapshotPool *SnapshotPool

	// Event sourcing for replay and debugging
	eventLog *EventLog

	// Deterministic RNG for replay consistency
	rng     *rand.Rand
	rngSeed int64

	store ScoreStore
}

// NewEngine creates a new game engine from the given configuration.
func NewEngine(cfg config.AppConfig) *Engine {
	seed := time.Now().UnixNano()
	rng := rand.New(rand.NewSource(seed))

	e := &Engine{
		cfg:           cfg,
		player:        NewPlayer(cfg.Player, cfg.Bullet, cfg.World),
		enemies:       make([]*Enemy, 0, cfg.Wave.MaxEnemiesOnScreen+1),
		playerBullets: make([]*Bullet, 0, cfg.Limits.MaxBullets),
		enemyBullets:  make([]*Bullet, 0, cfg.Limits.MaxBullets),
		effects:       make([]*HitEffect, 0, cfg.Limits.MaxEffects),
		wave:          NewWaveState(cfg.Wave),
		resolver:      NewResolver(cfg.Score, cfg.Bullet),
		tickRate:      cfg.World.TickRate,
		stopChan:      make(chan struct{}),
		worldWidth:    float64(cfg.World.Width),
		worldHeight:   float64(cfg.World.Height),
		limits:        cfg.Limits,
		snapshotPool:  NewSnapshotPool(cfg.Limits, cfg.Wave.MaxEnemiesOnScreen+1),
		eventLog:      NewEventLog(),
		rng:           rng,
		rngSeed:       seed,
	}
	e.spawner = NewSpawner(e.wave, cfg, rng)
	e.wireResolver()

	return e
}

// wireResolver connects collision outcomes to wave bookkeeping, effects,
// and the event log. Callbacks run inside the tick with the mutex held.
func (e *Engine) wireResolver() {
	e.resolver.OnEnemyKilled = func(enemy *Enemy) {
		e.wave.RegisterEnemyKilled()
		if enemy.Kind == EnemyBoss {
			e.wave.RegisterBossKilled()
		}
		e.addEffect(NewExplosion(enemy.X, enemy.Y))
		e.eventLog.EmitSimple(EventTypeKill, uint64(e.tickCount), KillPayload{
			Kind:       enemy.Kind.String(),
			Points:     enemy.ScoreValue,
			KillStreak: e.player.KillStreak,
		})
	}

	e.resolver.OnEnemyRammed = func(enemy *Enemy) {
		// Rammed enemies die without awarding points and without counting
		// toward the kill quota. A rammed boss still unblocks the wave;
		// otherwise no enemy could ever satisfy the boss-killed predicate.
		if enemy.Kind == EnemyBoss {
			e.wave.RegisterBossKilled()
		}
		e.addEffect(NewExplosion(enemy.X, enemy.Y))
		e.eventLog.EmitSimple(EventTypeKill, uint64(e.tickCount), KillPayload{
			Kind:   enemy.Kind.String(),
			Rammed: true,
		})
	}

	e.resolver.OnPlayerHit = func() {
		e.addEffect(NewHitFlash(e.player.X, e.player.Y))
		e.eventLog.EmitSimple(EventTypePlayerHit, uint64(e.tickCount), PlayerHitPayload{
			Health: e.player.Health,
			Shield: e.player.Shield,
			Lives:  e.player.Lives,
		})
	}

	e.resolver.OnSound = func(name string) {
		e.playSound(name)
	}
}

// Start begins the game loop
func (e *Engine) Start() {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}
	e.running = true
	e.mu.Unlock()

	e.ticker = time.NewTicker(time.Second / time.Duration(e.tickRate))

	go func() {
		for {
			select {
			case <-e.ticker.C:
				e.tick()
			case <-e.stopChan:
				return
			}
		}
	}()

	e.eventLog.EmitSimple(EventTypeWaveStart, 0, WavePayload{
		Wave:      e.wave.CurrentWave,
		KillQuota: e.wave.MaxKillsThisWave,
		BossWave:  e.wave.IsBossWave(),
	})
	log.Printf("🎮 Game engine started at %d TPS", e.tickRate)
}

// Stop stops the game loop
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return
	}

	e.running = false
	if e.ticker != nil {
		e.ticker.Stop()
	}
	close(e.stopChan)
	log.Println("🛑 Game engine stopped")
}

// SetInput replaces the intent the next ticks will consume. The intent is
// held until replaced, matching how a held key behaves.
func (e *Engine) SetInput(in InputIntent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.input = in
}

// tick is called at tickRate times per second
func (e *Engine) tick() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.tickCount++
	dt := 1.0 / float64(e.tickRate)

	// Log tick event with RNG seed for deterministic replay
	e.eventLog.EmitSimple(EventTypeTick, uint64(e.tickCount), TickPayload{
		RNGSeed:     e.rngSeed,
		Wave:        e.wave.CurrentWave,
		EnemyCount:  len(e.enemies),
		DeltaTimeNs: int64(dt * 1e9),
	})

	// Advance RNG seed deterministically for next tick
	e.rngSeed = e.rng.Int63()
	e.rng.Seed(e.rngSeed)

	if e.gameOver {
		// Terminal state: only effects keep animating until a restart.
		e.updateEffects(dt)
		e.produceSnapshot()
		return
	}

	e.Step(dt)
	e.produceSnapshot()
}

// Step advances the simulation by dt seconds. Exposed separately from the
// ticker loop so tests can drive the engine deterministically.
// Caller must hold the mutex when the loop is running.
func (e *Engine) Step(dt float64) {
	e.updatePlayer(dt)

	if e.waveClearing {
		e.updateWaveClear(dt)
	} else {
		for _, spawned := range e.spawner.Tick(dt, e.enemies) {
			e.enemies = append(e.enemies, spawned)

			eventType := EventTypeEnemySpawn
			if spawned.Kind == EnemyBoss {
				eventType = EventTypeBossSpawn
			}
			e.eventLog.EmitSimple(eventType, uint64(e.tickCount), SpawnPayload{
				Kind:  spawned.Kind.String(),
				X:     spawned.X,
				Y:     spawned.Y,
				Level: spawned.BossLevel,
			})
		}
	}

	e.updateBullets(dt)
	e.updateEnemies(dt)

	if !e.waveClearing {
		points, died := e.resolver.ResolveAll(e.player, &e.playerBullets, &e.enemies, &e.enemyBullets)
		e.score += points

		if died {
			e.handleGameOver()
			return
		}

		if e.wave.IsWaveComplete() {
			e.beginWaveClear()
		}
	}

	e.updateEffects(dt)
}

// updatePlayer applies the held input intent and fires on request.
func (e *Engine) updatePlayer(dt float64) {
	e.player.Update(dt, e.input)

	if e.input.Fire && e.player.CanShoot() && e.bulletBudget() > 0 {
		e.playerBullets = append(e.playerBullets, e.player.Shoot())
		e.playSound("shoot")
	}
}

// bulletBudget returns how many more bullets may spawn under the hard cap.
func (e *Engine) bulletBudget() int {
	return e.limits.MaxBullets - len(e.playerBullets) - len(e.enemyBullets)
}

func (e *Engine) updateBullets(dt float64) {
	// Zero-allocation in-place filtering
	n := 0
	for _, b := range e.playerBullets {
		if b.Update(dt, e.worldWidth, e.worldHeight) {
			e.playerBullets[n] = b
			n++
		}
	}
	e.playerBullets = e.playerBullets[:n]

	n = 0
	for _, b := range e.enemyBullets {
		if b.Update(dt, e.worldWidth, e.worldHeight) {
			e.enemyBullets[n] = b
			n++
		}
	}
	e.enemyBullets = e.enemyBullets[:n]
}

// updateEnemies moves enemies, despawns the ones that drift offscreen, and
// lets survivors fire subject to the global bullet cap.
func (e *Engine) updateEnemies(dt float64) {
	n := 0
	for _, enemy := range e.enemies {
		if !enemy.Update(dt, e.player.X, e.player.Y, e.worldWidth, e.worldHeight) {
			continue
		}
		e.enemies[n] = enemy
		n++

		if enemy.ShouldShoot(e.rng) {
			bullets := enemy.CreateBullets()
			if len(bullets) <= e.bulletBudget() {
				e.enemyBullets = append(e.enemyBullets, bullets...)
				e.playSound("enemy_shoot")
			}
		}
	}
	e.enemies = e.enemies[:n]
}

// beginWaveClear starts the pause between waves: the field is swept, the
// player heals, and the spawn clock waits out the delay.
func (e *Engine) beginWaveClear() {
	e.waveClearing = true
	e.clearTimer = e.cfg.Wave.ClearDelay

	e.player.Heal(e.cfg.Wave.ClearHeal)
	e.enemies = e.enemies[:0]
	e.playerBullets = e.playerBullets[:0]
	e.enemyBullets = e.enemyBullets[:0]

	e.eventLog.EmitSimple(EventTypeWaveComplete, uint64(e.tickCount), WavePayload{
		Wave:           e.wave.CurrentWave,
		KillQuota:      e.wave.MaxKillsThisWave,
		DifficultyTier: e.wave.DifficultyTier,
		BossWave:       e.wave.IsBossWave(),
	})
	e.playSound("wave_complete")
	log.Printf("🌊 Wave %d complete (score: %d)", e.wave.CurrentWave, e.score)
}

func (e *Engine) updateWaveClear(dt float64) {
	e.clearTimer -= dt
	if e.clearTimer > 0 {
		return
	}

	e.waveClearing = false
	e.wave.AdvanceWave()

	e.eventLog.EmitSimple(EventTypeWaveStart, uint64(e.tickCount), WavePayload{
		Wave:           e.wave.CurrentWave,
		KillQuota:      e.wave.MaxKillsThisWave,
		DifficultyTier: e.wave.DifficultyTier,
		BossWave:       e.wave.IsBossWave(),
	})
	if e.wave.IsBossWave() {
		e.playSound("boss_warning")
		log.Printf("👹 Wave %d: boss incoming", e.wave.CurrentWave)
	}
}

// handleGameOver persists the run and freezes the simulation until Restart.
func (e *Engine) handleGameOver() {
	e.gameOver = true
	if e.score > e.highScore {
		e.highScore = e.score
	}

	e.addEffect(NewExplosion(e.player.X, e.player.Y))
	e.playSound("game_over")

	e.eventLog.EmitSimple(EventTypePlayerDeath, uint64(e.tickCount), PlayerHitPayload{
		Health: e.player.Health,
		Shield: e.player.Shield,
		Lives:  e.player.Lives,
	})
	e.eventLog.EmitSimple(EventTypeGameOver, uint64(e.tickCount), GameOverPayload{
		Score:     e.score,
		HighScore: e.highScore,
		Wave:      e.wave.CurrentWave,
	})

	log.Printf("💀 Game over at wave %d with %d points", e.wave.CurrentWave, e.score)

	if e.store != nil {
		score, wave := e.score, e.wave.CurrentWave
		go func() {
			if err := e.store.SaveScore(score, wave); err != nil {
				log.Printf("⚠️ Failed to persist score: %v", err)
			}
		}()
	}

	if e.onGameOver != nil {
		go e.onGameOver(e.score, e.wave.CurrentWave)
	}
}

// Restart resets the run to wave 1. The high score survives; everything
// else starts fresh.
func (e *Engine) Restart() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.player = NewPlayer(e.cfg.Player, e.cfg.Bullet, e.cfg.World)
	e.enemies = e.enemies[:0]
	e.playerBullets = e.playerBullets[:0]
	e.enemyBullets = e.enemyBullets[:0]
	e.effects = e.effects[:0]

	e.wave = NewWaveState(e.cfg.Wave)
	e.spawner = NewSpawner(e.wave, e.cfg, e.rng)
	e.wireResolver()

	e.score = 0
	e.gameOver = false
	e.waveClearing = false
	e.clearTimer = 0
	e.input = InputIntent{}

	e.eventLog.EmitSimple(EventTypeRestart, uint64(e.tickCount), nil)
	log.Println("🔄 Run restarted")
}

func (e *Engine) addEffect(effect *HitEffect) {
	// HARD CAP: silently drop effects past the per-frame limit
	if len(e.effects) >= e.limits.MaxEffects {
		return
	}
	e.effects = append(e.effects, effect)
}

func (e *Engine) updateEffects(dt float64) {
	// Zero-allocation in-place filtering
	n := 0
	for _, ef := range e.effects {
		if ef.Update(dt) {
			e.effects[n] = ef
			n++
		}
	}
	e.effects = e.effects[:n]
}

func (e *Engine) playSound(name string) {
	if e.onSound != nil {
		e.onSound(name)
	}
}

// SetSoundCallback wires sound effect playback. The callback must not
// block; it runs inside the tick.
func (e *Engine) SetSoundCallback(fn func(name string)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onSound = fn
}

// SetGameOverCallback wires a notification fired once per finished run.
func (e *Engine) SetGameOverCallback(fn func(score, wave int)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onGameOver = fn
}

// SetStore wires score persistence and seeds the high score from it.
func (e *Engine) SetStore(store ScoreStore) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.store = store
	if store != nil {
		e.highScore = store.GetHighScore()
	}
}

// Score returns the current run's score.
func (e *Engine) Score() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.score
}

// HighScore returns the best score seen this process, seeded from the store.
func (e *Engine) HighScore() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.highScore
}

// GetSnapshot returns the latest immutable snapshot for lock-free rendering
// and broadcasting. This is the preferred read path.
func (e *Engine) GetSnapshot() *GameSnapshot {
	return e.snapshotPool.AcquireRead()
}

// produceSnapshot creates an immutable snapshot of the current game state.
// Called at the end of each tick with the mutex held.
func (e *Engine) produceSnapshot() {
	snap := e.snapshotPool.AcquireWrite()
	snap.TickNumber = uint64(e.tickCount)
	snap.RNGSeed = e.rngSeed

	p := e.player
	snap.Player = PlayerSnapshot{
		X:           p.X,
		Y:           p.Y,
		VX:          p.VX,
		VY:          p.VY,
		Lives:       p.Lives,
		Health:      p.Health,
		MaxHealth:   p.MaxHealth,
		Shield:      p.Shield,
		MaxShield:   p.MaxShield,
		Invincible:  p.Invincible,
		DamageFlash: p.DamageFlashTimer > 0,
		KillStreak:  p.KillStreak,
		StreakBonus: p.KillStreak >= e.cfg.Score.StreakThreshold,
	}

	for _, enemy := range e.enemies {
		if len(snap.Enemies) >= cap(snap.Enemies) {
			break
		}
		snap.Enemies = append(snap.Enemies, EnemySnapshot{
			Kind:        enemy.Kind.String(),
			X:           enemy.X,
			Y:           enemy.Y,
			Width:       enemy.Width,
			Height:      enemy.Height,
			Health:      enemy.Health,
			MaxHealth:   enemy.MaxHealth,
			BossLevel:   enemy.BossLevel,
			DamageFlash: enemy.DamageFlashTimer > 0,
		})
	}

	for _, b := range e.playerBullets {
		if len(snap.Bullets) >= cap(snap.Bullets) {
			break
		}
		snap.Bullets = append(snap.Bullets, BulletSnapshot{
			X: b.X, Y: b.Y, Owner: string(b.Owner), Width: b.Width, Height: b.Height,
		})
	}
	for _, b := range e.enemyBullets {
		if len(snap.Bullets) >= cap(snap.Bullets) {
			break
		}
		snap.Bullets = append(snap.Bullets, BulletSnapshot{
			X: b.X, Y: b.Y, Owner: string(b.Owner), Width: b.Width, Height: b.Height,
		})
	}

	for _, ef := range e.effects {
		if len(snap.Effects) >= cap(snap.Effects) {
			break
		}
		snap.Effects = append(snap.Effects, EffectSnapshot{
			Kind:  ef.Kind.String(),
			X:     ef.X,
			Y:     ef.Y,
			Alpha: ef.Alpha(),
		})
	}

	snap.Score = e.score
	snap.HighScore = e.highScore
	snap.Wave = e.wave.CurrentWave
	snap.DifficultyTier = e.wave.DifficultyTier
	snap.BossWave = e.wave.IsBossWave()
	snap.WaveClearing = e.waveClearing
	snap.GameOver = e.gameOver

	e.snapshotPool.PublishWrite()
}

// StartEventLog initializes the event logging system
func (e *Engine) StartEventLog(filePath string) error {
	return e.eventLog.Start(filePath)
}

// StopEventLog gracefully stops the event logging system
func (e *Engine) StopEventLog() {
	e.eventLog.Stop()
}

// GetEventLogStats returns event log statistics for monitoring
func (e *Engine) GetEventLogStats() map[string]interface{} {
	return e.eventLog.GetStats()
}

// GetLimits returns the current resource limits
func (e *Engine) GetLimits() config.ResourceLimits {
	return e.limits
}
