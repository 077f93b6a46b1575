package audio

import (
	"math"
	"testing"

	"voidrunner/internal/config"
)

// TestDisabledBankIsSilent verifies a disabled bank never touches the
// audio device and playing through it is a no-op.
func TestDisabledBankIsSilent(t *testing.T) {
	cfg := config.DefaultAudio()
	cfg.Enabled = false

	sb := NewSoundBank(cfg)
	if sb == nil {
		t.Fatal("NewSoundBank returned nil")
	}
	if sb.Enabled() {
		t.Error("Disabled bank should report disabled")
	}

	// Must not panic with no device and no sounds loaded.
	sb.Play("explosion")
	sb.Play("no_such_sound")
}

// TestMissingSoundDirDegrades verifies a bank with nothing to load stays
// silent instead of failing.
func TestMissingSoundDirDegrades(t *testing.T) {
	cfg := config.DefaultAudio()
	cfg.SoundDir = t.TempDir() // Empty: no .ogg files

	sb := NewSoundBank(cfg)
	if sb.Enabled() {
		t.Error("Bank with no sounds should stay silent")
	}
	sb.Play("shoot")
}

// TestSetVolumeClamps verifies volume stays in [0, 1].
func TestSetVolumeClamps(t *testing.T) {
	cfg := config.DefaultAudio()
	cfg.Enabled = false
	sb := NewSoundBank(cfg)

	sb.SetVolume(2.5)
	if sb.volume != 1.0 {
		t.Errorf("Expected volume clamped to 1.0, got %f", sb.volume)
	}

	sb.SetVolume(-3)
	if sb.volume != 0 {
		t.Errorf("Expected volume clamped to 0, got %f", sb.volume)
	}
}

// TestVolumeToGain verifies the log2 mapping used by the mixer.
func TestVolumeToGain(t *testing.T) {
	if g := volumeToGain(1.0); g != 0 {
		t.Errorf("Expected unity gain 0, got %f", g)
	}
	if g := volumeToGain(0.5); math.Abs(g+1) > 1e-9 {
		t.Errorf("Expected half volume gain -1, got %f", g)
	}
	if g := volumeToGain(0); !math.IsInf(g, -1) {
		t.Errorf("Expected -Inf at zero volume, got %f", g)
	}
}
