package render

import (
	"image/color"
	"testing"

	"voidrunner/internal/game"
)

func testSnapshot() *game.GameSnapshot {
	return &game.GameSnapshot{
		TickNumber: 42,
		Player: game.PlayerSnapshot{
			X: 400, Y: 500, Lives: 3, Health: 80, MaxHealth: 100,
		},
		Enemies: []game.EnemySnapshot{
			{Kind: "enemy_basic", X: 200, Y: 100, Width: 64, Height: 64, Health: 1, MaxHealth: 1},
			{Kind: "boss", X: 400, Y: 100, Width: 128, Height: 128, Health: 30, MaxHealth: 50, BossLevel: 1},
		},
		Bullets: []game.BulletSnapshot{
			{X: 400, Y: 300, Owner: "player", Width: 8, Height: 16},
			{X: 200, Y: 200, Owner: "enemy", Width: 8, Height: 16},
		},
		Effects: []game.EffectSnapshot{
			{Kind: "explosion", X: 300, Y: 300, Alpha: 0.5},
		},
		Score: 150,
		Wave:  5,
	}
}

// TestRenderSnapshotSize verifies the frame matches the requested size and
// shape fallback works without sprites or a font.
func TestRenderSnapshotSize(t *testing.T) {
	r := NewRenderer(800, 600, nil, "")

	img := r.RenderSnapshot(testSnapshot())
	if img == nil {
		t.Fatal("RenderSnapshot returned nil")
	}

	bounds := img.Bounds()
	if bounds.Dx() != 800 || bounds.Dy() != 600 {
		t.Errorf("Expected 800x600 frame, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

// TestRenderDrawsEntities verifies entity pixels differ from the cleared
// background.
func TestRenderDrawsEntities(t *testing.T) {
	r := NewRenderer(800, 600, nil, "")

	img := r.RenderSnapshot(testSnapshot())

	background := color.RGBA{8, 8, 24, 255}
	cr, cg, cb, _ := img.At(400, 500).RGBA() // Player position
	br := uint32(background.R) * 257
	bg := uint32(background.G) * 257
	bb := uint32(background.B) * 257

	if cr == br && cg == bg && cb == bb {
		t.Error("Expected the player drawn over the background")
	}
}

// TestRenderEmptySnapshot verifies rendering a zero-value snapshot does not
// panic.
func TestRenderEmptySnapshot(t *testing.T) {
	r := NewRenderer(320, 240, nil, "")

	img := r.RenderSnapshot(&game.GameSnapshot{})
	if img == nil {
		t.Fatal("RenderSnapshot returned nil for an empty snapshot")
	}
}

// TestRenderGameOverOverlay verifies the game-over frame renders.
func TestRenderGameOverOverlay(t *testing.T) {
	r := NewRenderer(800, 600, nil, "")

	snap := testSnapshot()
	snap.GameOver = true

	if img := r.RenderSnapshot(snap); img == nil {
		t.Fatal("RenderSnapshot returned nil for a game-over frame")
	}
}
