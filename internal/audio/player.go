// Package audio plays alarm chimes through the system speaker.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"go.uber.org/zap"

	"clockdeck/internal/core/model"
	"clockdeck/resources"
)

// ErrMuted is returned by Play while the player is muted.
var ErrMuted = errors.New("audio: muted")

const outputRate = beep.SampleRate(44100)

// output is the sink chimes are mixed into.
type output interface {
	Init(rate beep.SampleRate) error
	Play(streamer beep.Streamer)
	Lock()
	Unlock()
}

type speakerOutput struct{}

func (speakerOutput) Init(rate beep.SampleRate) error {
	return speaker.Init(rate, rate.N(time.Second/10))
}

func (speakerOutput) Play(streamer beep.Streamer) { speaker.Play(streamer) }
func (speakerOutput) Lock()                       { speaker.Lock() }
func (speakerOutput) Unlock()                     { speaker.Unlock() }

// Options configures a Player.
type Options struct {
	Volume float64
	Muted  bool
	Logger *zap.Logger
	Load   func(media string) ([]byte, error)
}

// Player decodes embedded chimes once and plays one chime at a time.
type Player struct {
	mu      sync.Mutex
	out     output
	load    func(media string) ([]byte, error)
	logger  *zap.Logger
	volume  float64
	muted   bool
	buffers map[string]*beep.Buffer

	initOnce sync.Once
	initErr  error

	current *playback
}

// playback is one chime on the output. end runs its callback at most once.
type playback struct {
	ctrl  *beep.Ctrl
	once  sync.Once
	onEnd func(interrupted bool)
}

func (pb *playback) end(interrupted bool) {
	pb.once.Do(func() {
		if pb.onEnd != nil {
			go pb.onEnd(interrupted)
		}
	})
}

// NewPlayer creates a player backed by the system speaker.
func NewPlayer(options Options) *Player {
	return newPlayer(speakerOutput{}, options)
}

func newPlayer(out output, options Options) *Player {
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}
	if options.Load == nil {
		options.Load = resources.Chime
	}
	return &Player{
		out:     out,
		load:    options.Load,
		logger:  options.Logger,
		volume:  clampVolume(options.Volume),
		muted:   options.Muted,
		buffers: make(map[string]*beep.Buffer),
	}
}

// Play starts chime, replacing whatever is playing. onEnd runs once on its
// own goroutine: with false when the chime finishes, with true when a later
// Play, Stop or SetMuted cuts it off.
func (player *Player) Play(chime model.Chime, onEnd func(interrupted bool)) error {
	player.mu.Lock()
	muted := player.muted
	volume := player.volume
	player.mu.Unlock()
	if muted {
		return ErrMuted
	}

	player.initOnce.Do(func() {
		player.initErr = player.out.Init(outputRate)
		if player.initErr != nil {
			player.logger.Warn("audio output unavailable", zap.Error(player.initErr))
		}
	})
	if player.initErr != nil {
		return fmt.Errorf("init speaker: %w", player.initErr)
	}

	buffer, err := player.buffer(chime.Media)
	if err != nil {
		return err
	}

	pb := &playback{onEnd: onEnd}
	done := beep.Callback(func() {
		player.mu.Lock()
		if player.current == pb {
			player.current = nil
		}
		player.mu.Unlock()
		pb.end(false)
	})
	gain := &effects.Volume{
		Streamer: buffer.Streamer(0, buffer.Len()),
		Base:     2,
		Volume:   gainFor(volume),
		Silent:   volume <= 0,
	}
	pb.ctrl = &beep.Ctrl{Streamer: beep.Seq(gain, done)}

	player.Stop()
	player.mu.Lock()
	player.current = pb
	player.mu.Unlock()

	player.out.Play(pb.ctrl)
	player.logger.Debug("chime started", zap.String("chime", chime.Title))
	return nil
}

// Preview plays chime once without an end callback.
func (player *Player) Preview(chime model.Chime) error {
	return player.Play(chime, nil)
}

// Stop silences the current chime and reports it as interrupted. Stopping
// twice is a no-op.
func (player *Player) Stop() {
	player.mu.Lock()
	pb := player.current
	player.current = nil
	player.mu.Unlock()
	if pb == nil {
		return
	}

	player.out.Lock()
	pb.ctrl.Streamer = nil
	player.out.Unlock()
	pb.end(true)
}

// SetVolume sets the linear volume in [0,1] for subsequent chimes.
func (player *Player) SetVolume(volume float64) {
	player.mu.Lock()
	player.volume = clampVolume(volume)
	player.mu.Unlock()
}

// SetMuted mutes or unmutes the player. Muting stops the current chime.
func (player *Player) SetMuted(muted bool) {
	player.mu.Lock()
	player.muted = muted
	player.mu.Unlock()
	if muted {
		player.Stop()
	}
}

func (player *Player) buffer(media string) (*beep.Buffer, error) {
	player.mu.Lock()
	defer player.mu.Unlock()
	if buffer, ok := player.buffers[media]; ok {
		return buffer, nil
	}

	data, err := player.load(media)
	if err != nil {
		return nil, err
	}
	streamer, format, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode chime %s: %w", media, err)
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(beep.Format{SampleRate: outputRate, NumChannels: 2, Precision: 2})
	if format.SampleRate == outputRate {
		buffer.Append(streamer)
	} else {
		buffer.Append(beep.Resample(4, format.SampleRate, outputRate, streamer))
	}
	player.buffers[media] = buffer
	return buffer, nil
}

func clampVolume(volume float64) float64 {
	return math.Max(0, math.Min(1, volume))
}

// gainFor maps linear volume onto the exponent used by effects.Volume with
// base 2, so 1 is unchanged and 0.5 is one halving.
func gainFor(volume float64) float64 {
	if volume <= 0 {
		return 0
	}
	return math.Log2(volume)
}
