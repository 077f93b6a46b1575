// Package audio plays named sound effects through the system mixer.
// All failure modes degrade to silence: a missing sound directory, an
// undecodable file, or an unavailable audio device never stop the game.
package audio

import (
	"log"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/vorbis"

	"voidrunner/internal/config"
)

// Sound effect names the engine emits.
var soundNames = []string{
	"shoot",
	"enemy_shoot",
	"explosion",
	"player_hit",
	"wave_complete",
	"boss_warning",
	"game_over",
}

// SoundBank holds fully decoded sound effects ready for playback.
// Effects are short, so buffering the decoded PCM up front is cheap and
// avoids per-play decode latency.
type SoundBank struct {
	mu      sync.Mutex
	sounds  map[string]*beep.Buffer
	volume  float64
	enabled bool
	rate    beep.SampleRate
}

// NewSoundBank loads every known sound from cfg.SoundDir as <name>.ogg and
// initializes the speaker. Returns a silent bank when audio is disabled or
// the device cannot be opened.
func NewSoundBank(cfg config.AudioConfig) *SoundBank {
	sb := &SoundBank{
		sounds: make(map[string]*beep.Buffer, len(soundNames)),
		volume: cfg.Volume,
		rate:   beep.SampleRate(cfg.SampleRate),
	}

	if !cfg.Enabled {
		log.Println("🔇 Audio disabled by configuration")
		return sb
	}

	if err := speaker.Init(sb.rate, sb.rate.N(time.Second/10)); err != nil {
		log.Printf("🔇 Audio device unavailable, continuing silently: %v", err)
		return sb
	}

	loaded := 0
	for _, name := range soundNames {
		buf, err := sb.loadSound(filepath.Join(cfg.SoundDir, name+".ogg"))
		if err != nil {
			continue
		}
		sb.sounds[name] = buf
		loaded++
	}

	if loaded == 0 {
		log.Printf("🔇 No sounds found in %s, continuing silently", cfg.SoundDir)
		return sb
	}

	sb.enabled = true
	log.Printf("🔊 Loaded %d/%d sounds from %s", loaded, len(soundNames), cfg.SoundDir)
	return sb
}

// loadSound decodes one OGG Vorbis file into a PCM buffer, resampling to
// the speaker rate when the file's rate differs.
func (sb *SoundBank) loadSound(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	streamer, format, err := vorbis.Decode(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	defer streamer.Close()

	buf := beep.NewBuffer(beep.Format{
		SampleRate:  sb.rate,
		NumChannels: format.NumChannels,
		Precision:   format.Precision,
	})

	if format.SampleRate != sb.rate {
		buf.Append(beep.Resample(4, format.SampleRate, sb.rate, streamer))
	} else {
		buf.Append(streamer)
	}

	return buf, nil
}

// Play starts the named sound effect. Unknown names and a silent bank are
// both no-ops. Safe to call from the game tick; playback is asynchronous.
func (sb *SoundBank) Play(name string) {
	sb.mu.Lock()
	buf, ok := sb.sounds[name]
	enabled := sb.enabled
	volume := sb.volume
	sb.mu.Unlock()

	if !enabled || !ok {
		return
	}

	s := buf.Streamer(0, buf.Len())
	speaker.Play(&effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   volumeToGain(volume),
		Silent:   volume <= 0,
	})
}

// SetVolume adjusts the master volume in [0, 1].
func (sb *SoundBank) SetVolume(v float64) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	sb.volume = v
}

// Enabled reports whether any sounds are loaded and the device is open.
func (sb *SoundBank) Enabled() bool {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.enabled
}

// volumeToGain maps a linear [0, 1] volume to the exponential gain the
// Volume effect expects (0 maps to silence via the Silent flag).
func volumeToGain(v float64) float64 {
	if v <= 0 {
		return math.Inf(-1)
	}
	return math.Log2(v)
}
