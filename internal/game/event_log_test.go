package game

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// TestEventLogStartStop verifies lifecycle and idempotent shutdown.
func TestEventLogStartStop(t *testing.T) {
	el := NewEventLog()

	path := filepath.Join(t.TempDir(), "events.jsonl")
	if err := el.Start(path); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	el.Stop()
	el.Stop() // Double stop must not panic
}

// TestEventLogRejectsWhenStopped verifies emits before Start are dropped.
func TestEventLogRejectsWhenStopped(t *testing.T) {
	el := NewEventLog()

	if el.EmitSimple(EventTypeKill, 1, nil) {
		t.Error("Expected emit rejected before Start")
	}
}

// TestEventLogWritesJSONL verifies emitted events reach the file as one
// JSON object per line.
func TestEventLogWritesJSONL(t *testing.T) {
	el := NewEventLog()
	path := filepath.Join(t.TempDir(), "events.jsonl")
	if err := el.Start(path); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	for i := 0; i < 5; i++ {
		if !el.EmitSimple(EventTypeKill, uint64(i), KillPayload{Kind: "enemy_basic", Points: 10}) {
			t.Fatalf("Emit %d rejected", i)
		}
	}

	// Stop drains the buffer through the writer before closing the file.
	el.Stop()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Opening log file failed: %v", err)
	}
	defer f.Close()

	lines := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var ev Event
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
			t.Fatalf("Line %d is not valid JSON: %v", lines, err)
		}
		if ev.Type != EventTypeKill {
			t.Errorf("Expected kill event, got %v", ev.Type)
		}
		lines++
	}

	if lines != 5 {
		t.Errorf("Expected 5 log lines, got %d", lines)
	}
	if el.GetTotalCount() != 5 {
		t.Errorf("Expected total count 5, got %d", el.GetTotalCount())
	}
}

// TestEventLogStats verifies the stats map carries the counters.
func TestEventLogStats(t *testing.T) {
	el := NewEventLog()
	path := filepath.Join(t.TempDir(), "events.jsonl")
	if err := el.Start(path); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer el.Stop()

	el.EmitSimple(EventTypeTick, 1, nil)

	stats := el.GetStats()
	if stats["total"].(uint64) != 1 {
		t.Errorf("Expected total 1, got %v", stats["total"])
	}
	if stats["running"].(bool) != true {
		t.Error("Expected running true in stats")
	}
}

// TestSpawnEventsLogged verifies the engine records enemy and boss spawns,
// with the boss event carrying the encounter level.
func TestSpawnEventsLogged(t *testing.T) {
	e := NewEngine(testConfig())
	path := filepath.Join(t.TempDir(), "events.jsonl")
	if err := e.StartEventLog(path); err != nil {
		t.Fatalf("StartEventLog failed: %v", err)
	}

	// Regular wave: one spawn once the interval elapses.
	e.Step(1.0)
	e.Step(1.0)

	// Boss wave: the boss spawns on the next step.
	e.wave.CurrentWave = 5
	e.Step(0.01)

	e.StopEventLog()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Opening log file failed: %v", err)
	}
	defer f.Close()

	var spawns, bossSpawns int
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var ev Event
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
			t.Fatalf("Log line is not valid JSON: %v", err)
		}

		switch ev.Type {
		case EventTypeEnemySpawn:
			spawns++
			var p SpawnPayload
			if err := json.Unmarshal(ev.Payload, &p); err != nil {
				t.Fatalf("Bad spawn payload: %v", err)
			}
			if p.Kind == "boss" || p.Kind == "unknown" {
				t.Errorf("Expected an archetype kind in spawn payload, got %q", p.Kind)
			}
		case EventTypeBossSpawn:
			bossSpawns++
			var p SpawnPayload
			if err := json.Unmarshal(ev.Payload, &p); err != nil {
				t.Fatalf("Bad boss spawn payload: %v", err)
			}
			if p.Kind != "boss" {
				t.Errorf("Expected kind boss, got %q", p.Kind)
			}
			if p.Level != 1 {
				t.Errorf("Expected boss level 1, got %d", p.Level)
			}
		}
	}

	if spawns != 1 {
		t.Errorf("Expected 1 enemy spawn event, got %d", spawns)
	}
	if bossSpawns != 1 {
		t.Errorf("Expected 1 boss spawn event, got %d", bossSpawns)
	}
}

// TestSnapshotPoolPublishCycle verifies the write/publish/read cycle and
// slice reuse.
func TestSnapshotPoolPublishCycle(t *testing.T) {
	pool := NewSnapshotPool(testConfig().Limits, 11)

	w := pool.AcquireWrite()
	w.Score = 999
	w.Enemies = append(w.Enemies, EnemySnapshot{Kind: "boss"})
	firstSeq := w.Sequence
	pool.PublishWrite()

	r := pool.AcquireRead()
	if r.Score != 999 {
		t.Errorf("Expected published score 999, got %d", r.Score)
	}
	if len(r.Enemies) != 1 {
		t.Errorf("Expected 1 enemy in published snapshot, got %d", len(r.Enemies))
	}

	w2 := pool.AcquireWrite()
	if w2.Sequence != firstSeq+1 {
		t.Errorf("Expected sequence %d, got %d", firstSeq+1, w2.Sequence)
	}
	if len(w2.Enemies) != 0 {
		t.Errorf("Expected reset enemy slice, got %d entries", len(w2.Enemies))
	}
	if cap(w2.Enemies) != 11 {
		t.Errorf("Expected preserved capacity 11, got %d", cap(w2.Enemies))
	}

	// The unpublished write slot must not be visible to readers.
	if pool.AcquireRead().Score != 999 {
		t.Error("Expected reader to stay on the published snapshot")
	}
}
