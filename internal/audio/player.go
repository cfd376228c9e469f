package audio

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"

	"github.com/jmylchreest/toastui/internal/sound"
)

// Player decodes and plays sound assets through the system speaker.
type Player struct {
	mu     sync.Mutex
	logger *slog.Logger

	// Volume control (0.0 to 1.0)
	volume float64

	initialized bool
	sampleRate  beep.SampleRate

	cache      map[string]*beep.Buffer
	cacheMutex sync.RWMutex
}

// NewPlayer creates a new audio player.
func NewPlayer(logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}

	return &Player{
		logger:     logger,
		volume:     1.0,
		sampleRate: beep.SampleRate(44100),
		cache:      make(map[string]*beep.Buffer),
	}
}

// SetVolume sets the playback volume (0.0 to 1.0).
func (p *Player) SetVolume(volume float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.volume = math.Max(0, math.Min(1, volume))
	p.logger.Debug("volume set", "volume", p.volume)
}

// Volume returns the current volume.
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// Play starts playing src and returns without waiting for it to finish.
func (p *Player) Play(src sound.Source) error {
	buffer, err := p.load(src)
	if err != nil {
		return err
	}
	return p.playBuffer(buffer)
}

// Preload decodes src into the cache.
func (p *Player) Preload(src sound.Source) error {
	_, err := p.load(src)
	return err
}

func (p *Player) load(src sound.Source) (*beep.Buffer, error) {
	p.cacheMutex.RLock()
	cached, ok := p.cache[src.Name]
	p.cacheMutex.RUnlock()
	if ok {
		return cached, nil
	}

	buffer, err := p.decode(src)
	if err != nil {
		return nil, err
	}

	p.cacheMutex.Lock()
	p.cache[src.Name] = buffer
	p.cacheMutex.Unlock()
	p.logger.Debug("sound cached", "sound", src.Name)
	return buffer, nil
}

func (p *Player) decode(src sound.Source) (*beep.Buffer, error) {
	r, err := src.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open sound %s: %w", src.Name, err)
	}
	defer func() { _ = r.Close() }()

	var streamer beep.StreamSeekCloser
	var format beep.Format

	switch src.Ext {
	case ".wav":
		streamer, format, err = wav.Decode(r)
	case ".ogg":
		streamer, format, err = vorbis.Decode(r)
	case ".mp3":
		streamer, format, err = mp3.Decode(r)
	default:
		return nil, fmt.Errorf("unsupported audio format: %s", src.Ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode sound %s: %w", src.Name, err)
	}
	defer func() { _ = streamer.Close() }()

	if err := p.ensureInitialized(format.SampleRate); err != nil {
		return nil, err
	}

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	return buffer, nil
}

// ensureInitialized initializes the speaker on first use.
func (p *Player) ensureInitialized(sampleRate beep.SampleRate) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}

	p.sampleRate = sampleRate
	p.initialized = true
	p.logger.Debug("speaker initialized", "sample_rate", sampleRate)
	return nil
}

func (p *Player) playBuffer(buffer *beep.Buffer) error {
	p.mu.Lock()
	volume := p.volume
	sampleRate := p.sampleRate
	p.mu.Unlock()

	var streamer beep.Streamer = buffer.Streamer(0, buffer.Len())

	if buffer.Format().SampleRate != sampleRate {
		streamer = beep.Resample(4, buffer.Format().SampleRate, sampleRate, streamer)
	}

	if volume < 1.0 {
		streamer = &effects.Volume{
			Streamer: streamer,
			Base:     10,
			Volume:   volumeToExponent(volume),
			Silent:   volume == 0,
		}
	}

	speaker.Play(streamer)
	return nil
}

// volumeToExponent maps a linear gain to a base-10 exponent for effects.Volume.
func volumeToExponent(volume float64) float64 {
	if volume <= 0 {
		return -5
	}
	return math.Log10(volume)
}

// Cached reports whether name is in the cache.
func (p *Player) Cached(name string) bool {
	p.cacheMutex.RLock()
	defer p.cacheMutex.RUnlock()
	_, ok := p.cache[name]
	return ok
}

// InvalidateCache drops the cached buffer for name.
func (p *Player) InvalidateCache(name string) {
	p.cacheMutex.Lock()
	defer p.cacheMutex.Unlock()
	delete(p.cache, name)
}

// ClearCache drops every cached buffer.
func (p *Player) ClearCache() {
	p.cacheMutex.Lock()
	defer p.cacheMutex.Unlock()
	p.cache = make(map[string]*beep.Buffer)
	p.logger.Debug("sound cache cleared")
}

// Close stops playback and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	if p.initialized {
		speaker.Close()
		p.initialized = false
	}
	p.mu.Unlock()

	p.ClearCache()
	p.logger.Debug("audio player closed")
}
