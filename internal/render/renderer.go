// Package render draws game snapshots to RGBA frames with fogleman/gg.
// It consumes only immutable snapshots, never live engine state, so it can
// run on its own cadence without touching the engine mutex.
package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"voidrunner/internal/assets"
	"voidrunner/internal/game"
)

// Renderer draws frames from game snapshots.
type Renderer struct {
	width    int
	height   int
	dc       *gg.Context
	sprites  *assets.SpriteBank
	fontPath string
	fontOK   bool
}

// NewRenderer creates a renderer for the given frame size. sprites may be
// nil; every entity then falls back to primitive shapes.
func NewRenderer(width, height int, sprites *assets.SpriteBank, fontPath string) *Renderer {
	r := &Renderer{
		width:    width,
		height:   height,
		dc:       gg.NewContext(width, height),
		sprites:  sprites,
		fontPath: fontPath,
	}
	if fontPath != "" {
		if err := r.dc.LoadFontFace(fontPath, 16); err == nil {
			r.fontOK = true
		}
	}
	return r
}

// RenderSnapshot draws one complete frame and returns the backing image.
// The image is reused between calls; consumers must copy it if they hold
// it across frames.
func (r *Renderer) RenderSnapshot(snap *game.GameSnapshot) image.Image {
	dc := r.dc

	r.drawBackground(dc)
	r.drawBullets(dc, snap.Bullets)
	r.drawEnemies(dc, snap.Enemies)
	r.drawPlayer(dc, snap)
	r.drawEffects(dc, snap.Effects)
	r.drawHUD(dc, snap)

	if snap.GameOver {
		r.drawGameOver(dc, snap)
	} else if snap.WaveClearing {
		r.drawCenteredBanner(dc, fmt.Sprintf("WAVE %d CLEAR", snap.Wave))
	}

	return dc.Image()
}

func (r *Renderer) drawBackground(dc *gg.Context) {
	dc.SetColor(color.RGBA{8, 8, 24, 255})
	dc.DrawRectangle(0, 0, float64(r.width), float64(r.height))
	dc.Fill()

	// Static starfield from a cheap hash, no allocation per frame
	dc.SetColor(color.RGBA{180, 180, 200, 255})
	for i := 0; i < 40; i++ {
		x := float64((i * 73) % r.width)
		y := float64((i * 131) % r.height)
		dc.DrawCircle(x, y, 1)
		dc.Fill()
	}
}

func (r *Renderer) drawPlayer(dc *gg.Context, snap *game.GameSnapshot) {
	p := snap.Player
	if snap.GameOver {
		return
	}

	// Blink while invincible
	if p.Invincible && snap.TickNumber%10 < 5 {
		return
	}

	if img := r.sprites.Get(assets.SpritePlayer); img != nil {
		dc.DrawImageAnchored(img, int(p.X), int(p.Y), 0.5, 0.5)
		return
	}

	// Fallback: upward triangle
	if p.DamageFlash {
		dc.SetColor(color.RGBA{255, 80, 80, 255})
	} else {
		dc.SetColor(color.RGBA{80, 200, 255, 255})
	}
	dc.MoveTo(p.X, p.Y-24)
	dc.LineTo(p.X-20, p.Y+20)
	dc.LineTo(p.X+20, p.Y+20)
	dc.ClosePath()
	dc.Fill()
}

func (r *Renderer) drawEnemies(dc *gg.Context, enemies []game.EnemySnapshot) {
	for _, e := range enemies {
		r.drawEnemy(dc, e)
	}
}

func (r *Renderer) drawEnemy(dc *gg.Context, e game.EnemySnapshot) {
	if img := r.sprites.Get(e.Kind); img != nil {
		dc.DrawImageAnchored(img, int(e.X), int(e.Y), 0.5, 0.5)
	} else {
		if e.DamageFlash {
			dc.SetColor(color.White)
		} else {
			dc.SetColor(enemyColor(e.Kind))
		}
		dc.DrawRectangle(e.X-e.Width/2, e.Y-e.Height/2, e.Width, e.Height)
		dc.Fill()
	}

	// Health bar above damaged enemies
	if e.Health < e.MaxHealth {
		barW := e.Width
		pct := float64(e.Health) / float64(e.MaxHealth)

		dc.SetColor(color.RGBA{51, 51, 51, 255})
		dc.DrawRectangle(e.X-barW/2, e.Y-e.Height/2-10, barW, 5)
		dc.Fill()

		dc.SetColor(color.RGBA{255, 62, 62, 255})
		dc.DrawRectangle(e.X-barW/2, e.Y-e.Height/2-10, barW*pct, 5)
		dc.Fill()
	}
}

func enemyColor(kind string) color.RGBA {
	switch kind {
	case "enemy_chaser":
		return color.RGBA{255, 120, 40, 255}
	case "enemy_zigzag":
		return color.RGBA{180, 80, 255, 255}
	case "boss":
		return color.RGBA{255, 40, 40, 255}
	default:
		return color.RGBA{90, 220, 90, 255}
	}
}

func (r *Renderer) drawBullets(dc *gg.Context, bullets []game.BulletSnapshot) {
	for _, b := range bullets {
		name := assets.SpriteBullet
		if b.Owner != "player" {
			name = assets.SpriteEnemyBullet
		}
		if img := r.sprites.Get(name); img != nil {
			dc.DrawImageAnchored(img, int(b.X), int(b.Y), 0.5, 0.5)
			continue
		}

		if b.Owner == "player" {
			dc.SetColor(color.RGBA{255, 255, 120, 255})
		} else {
			dc.SetColor(color.RGBA{255, 80, 80, 255})
		}
		dc.DrawRectangle(b.X-b.Width/2, b.Y-b.Height/2, b.Width, b.Height)
		dc.Fill()
	}
}

func (r *Renderer) drawEffects(dc *gg.Context, effects []game.EffectSnapshot) {
	for _, ef := range effects {
		alpha := uint8(ef.Alpha * 255)
		switch ef.Kind {
		case "explosion":
			dc.SetColor(color.RGBA{255, 160, 40, alpha})
			dc.DrawCircle(ef.X, ef.Y, 24*(1.2-ef.Alpha))
		default:
			dc.SetColor(color.RGBA{255, 255, 255, alpha})
			dc.DrawCircle(ef.X, ef.Y, 14)
		}
		dc.Fill()
	}
}

func (r *Renderer) drawHUD(dc *gg.Context, snap *game.GameSnapshot) {
	p := snap.Player

	// Health bar, bottom left
	barW, barH := 160.0, 14.0
	x, y := 16.0, float64(r.height)-30.0
	pct := 0.0
	if p.MaxHealth > 0 {
		pct = p.Health / p.MaxHealth
	}

	dc.SetColor(color.RGBA{51, 51, 51, 255})
	dc.DrawRectangle(x, y, barW, barH)
	dc.Fill()

	if pct > 0.5 {
		dc.SetColor(color.RGBA{83, 255, 69, 255})
	} else if pct > 0.25 {
		dc.SetColor(color.RGBA{255, 149, 0, 255})
	} else {
		dc.SetColor(color.RGBA{255, 62, 62, 255})
	}
	dc.DrawRectangle(x, y, barW*pct, barH)
	dc.Fill()

	// Lives as small ship markers next to the bar
	dc.SetColor(color.RGBA{80, 200, 255, 255})
	for i := 0; i < p.Lives; i++ {
		lx := x + barW + 16 + float64(i)*18
		dc.DrawCircle(lx, y+barH/2, 6)
		dc.Fill()
	}

	if !r.fontOK {
		return
	}

	dc.SetColor(color.White)
	dc.DrawString(fmt.Sprintf("SCORE %d", snap.Score), 16, 24)
	dc.DrawString(fmt.Sprintf("HIGH %d", snap.HighScore), 16, 44)
	dc.DrawStringAnchored(fmt.Sprintf("WAVE %d", snap.Wave), float64(r.width)/2, 24, 0.5, 0.5)

	if p.StreakBonus {
		dc.SetColor(color.RGBA{255, 220, 60, 255})
		dc.DrawStringAnchored(fmt.Sprintf("STREAK x%d", p.KillStreak), float64(r.width)/2, 44, 0.5, 0.5)
	}

	// Boss health across the top on boss waves
	for _, e := range snap.Enemies {
		if e.Kind != "boss" {
			continue
		}
		bw := float64(r.width) * 0.6
		bx := (float64(r.width) - bw) / 2
		pct := float64(e.Health) / float64(e.MaxHealth)

		dc.SetColor(color.RGBA{51, 51, 51, 255})
		dc.DrawRectangle(bx, 56, bw, 10)
		dc.Fill()
		dc.SetColor(color.RGBA{255, 40, 40, 255})
		dc.DrawRectangle(bx, 56, bw*pct, 10)
		dc.Fill()
		break
	}
}

func (r *Renderer) drawCenteredBanner(dc *gg.Context, text string) {
	if !r.fontOK {
		return
	}
	dc.SetColor(color.RGBA{255, 255, 255, 230})
	dc.DrawStringAnchored(text, float64(r.width)/2, float64(r.height)/2, 0.5, 0.5)
}

func (r *Renderer) drawGameOver(dc *gg.Context, snap *game.GameSnapshot) {
	dc.SetColor(color.RGBA{0, 0, 0, 150})
	dc.DrawRectangle(0, 0, float64(r.width), float64(r.height))
	dc.Fill()

	if !r.fontOK {
		return
	}
	cx, cy := float64(r.width)/2, float64(r.height)/2
	dc.SetColor(color.RGBA{255, 62, 62, 255})
	dc.DrawStringAnchored("GAME OVER", cx, cy-20, 0.5, 0.5)
	dc.SetColor(color.White)
	dc.DrawStringAnchored(fmt.Sprintf("SCORE %d  •  WAVE %d", snap.Score, snap.Wave), cx, cy+10, 0.5, 0.5)
}
