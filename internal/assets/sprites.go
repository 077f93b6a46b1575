// Package assets loads named sprite images for the renderer.
// Missing files are tolerated: the renderer falls back to primitive shapes
// for any sprite that failed to load, so the game runs without art assets.
package assets

import (
	"image"
	"log"
	"path/filepath"

	"github.com/fogleman/gg"
)

// Sprite names the renderer looks up. They match EnemyKind.String() for
// enemies so the render loop needs no mapping table.
const (
	SpritePlayer      = "player"
	SpriteEnemyBasic  = "enemy_basic"
	SpriteEnemyChaser = "enemy_chaser"
	SpriteEnemyZigzag = "enemy_zigzag"
	SpriteBoss        = "boss"
	SpriteBullet      = "bullet"
	SpriteEnemyBullet = "enemy_bullet"
	SpriteExplosion   = "explosion"
)

var spriteNames = []string{
	SpritePlayer,
	SpriteEnemyBasic,
	SpriteEnemyChaser,
	SpriteEnemyZigzag,
	SpriteBoss,
	SpriteBullet,
	SpriteEnemyBullet,
	SpriteExplosion,
}

// SpriteBank holds loaded sprite images keyed by name.
type SpriteBank struct {
	sprites map[string]image.Image
}

// LoadSprites loads every known sprite from dir as <name>.png.
// Files that are missing or undecodable leave a nil entry; this is not an
// error, the renderer handles nil sprites.
func LoadSprites(dir string) *SpriteBank {
	b := &SpriteBank{sprites: make(map[string]image.Image, len(spriteNames))}

	loaded := 0
	for _, name := range spriteNames {
		img, err := gg.LoadImage(filepath.Join(dir, name+".png"))
		if err != nil {
			continue
		}
		b.sprites[name] = img
		loaded++
	}

	if loaded == 0 {
		log.Printf("🎨 No sprites found in %s, using shape rendering", dir)
	} else {
		log.Printf("🎨 Loaded %d/%d sprites from %s", loaded, len(spriteNames), dir)
	}

	return b
}

// Get returns the sprite image for name, or nil if it was not loaded.
func (b *SpriteBank) Get(name string) image.Image {
	if b == nil {
		return nil
	}
	return b.sprites[name]
}

// Has reports whether a sprite was loaded.
func (b *SpriteBank) Has(name string) bool {
	return b.Get(name) != nil
}
