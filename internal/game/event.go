package game

import (
	"encoding/json"
	"time"
)

// EventType enum for event classification
type EventType uint8

const (
	EventTypeUnknown EventType = iota
	EventTypeTick              // Tick boundary with RNG seed
	EventTypeWaveStart
	EventTypeWaveComplete
	EventTypeEnemySpawn
	EventTypeBossSpawn
	EventTypeKill
	EventTypePlayerHit
	EventTypePlayerDeath
	EventTypeGameOver
	EventTypeRestart
)

// EventVersion for backwards compatibility in replay
const EventVersion uint8 = 1

// Event is the core event structure for the event log
type Event struct {
	Version   uint8     `json:"version"`   // Schema version
	Type      EventType `json:"type"`      // Event type
	Timestamp int64     `json:"timestamp"` // Unix nano
	Sequence  uint64    `json:"sequence"`  // Monotonic sequence
	TickNum   uint64    `json:"tickNum"`   // Game tick this occurred in
	Payload   []byte    `json:"payload"`   // JSON-encoded payload
}

// String returns human-readable event type
func (t EventType) String() string {
	switch t {
	case EventTypeTick:
		return "tick"
	case EventTypeWaveStart:
		return "wave_start"
	case EventTypeWaveComplete:
		return "wave_complete"
	case EventTypeEnemySpawn:
		return "enemy_spawn"
	case EventTypeBossSpawn:
		return "boss_spawn"
	case EventTypeKill:
		return "kill"
	case EventTypePlayerHit:
		return "player_hit"
	case EventTypePlayerDeath:
		return "player_death"
	case EventTypeGameOver:
		return "game_over"
	case EventTypeRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// Typed payloads for different event types

// TickPayload contains tick boundary information for replay
type TickPayload struct {
	RNGSeed     int64 `json:"rngSeed"`
	Wave        int   `json:"wave"`
	EnemyCount  int   `json:"enemyCount"`
	DeltaTimeNs int64 `json:"deltaTimeNs"`
}

// WavePayload contains wave transition details
type WavePayload struct {
	Wave           int  `json:"wave"`
	KillQuota      int  `json:"killQuota"`
	DifficultyTier int  `json:"difficultyTier"`
	BossWave       bool `json:"bossWave"`
}

// SpawnPayload contains enemy spawn details
type SpawnPayload struct {
	Kind  string  `json:"kind"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Level int     `json:"level,omitempty"` // Boss encounter level
}

// KillPayload contains enemy destruction details
type KillPayload struct {
	Kind       string `json:"kind"`
	Points     int    `json:"points"`
	KillStreak int    `json:"killStreak"`
	Rammed     bool   `json:"rammed"`
}

// PlayerHitPayload contains player damage details
type PlayerHitPayload struct {
	Health float64 `json:"health"`
	Shield float64 `json:"shield"`
	Lives  int     `json:"lives"`
}

// GameOverPayload contains terminal run details
type GameOverPayload struct {
	Score     int `json:"score"`
	HighScore int `json:"highScore"`
	Wave      int `json:"wave"`
}

// EncodePayload marshals a payload to JSON bytes
func EncodePayload(payload interface{}) []byte {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	return data
}

// NewEvent creates a new event with the current timestamp
func NewEvent(eventType EventType, tickNum uint64, payload interface{}) Event {
	return Event{
		Version:   EventVersion,
		Type:      eventType,
		Timestamp: time.Now().UnixNano(),
		TickNum:   tickNum,
		Payload:   EncodePayload(payload),
	}
}
