package assets

import (
	"bytes"
	"fmt"
	"io/fs"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/milk9111/overworld/component"
	"github.com/milk9111/overworld/prefabs"
	"github.com/sirupsen/logrus"
)

const sampleRate = 44100

// Sounds plays named cues and the background track through ebiten audio.
type Sounds struct {
	ctx     *audio.Context
	cues    map[component.Cue]*audio.Player
	volumes map[component.Cue]float64
	missing map[component.Cue]bool

	music       *audio.Player
	musicVolume float64
	musicLoop   bool
}

func audioContext() *audio.Context {
	if ctx := audio.CurrentContext(); ctx != nil {
		return ctx
	}
	return audio.NewContext(sampleRate)
}

// NewSounds decodes every clip in spec from fsys. Clips that fail to load are
// logged and skipped; playing them later is a no-op.
func NewSounds(fsys fs.FS, spec prefabs.SoundsSpec) *Sounds {
	s := &Sounds{
		ctx:     audioContext(),
		cues:    make(map[component.Cue]*audio.Player, len(spec.Cues)),
		volumes: make(map[component.Cue]float64, len(spec.Cues)),
		missing: make(map[component.Cue]bool),
	}
	for _, clip := range spec.Cues {
		p, err := s.load(fsys, clip.File)
		if err != nil {
			logrus.WithError(err).WithField("cue", clip.Name).Warn("assets: sound unavailable")
			continue
		}
		s.cues[component.Cue(clip.Name)] = p
		s.volumes[component.Cue(clip.Name)] = clip.Volume
	}
	if spec.Music.File != "" {
		p, err := s.load(fsys, spec.Music.File)
		if err != nil {
			logrus.WithError(err).Warn("assets: music unavailable")
		} else {
			s.music = p
			s.musicVolume = spec.Music.Volume
		}
	}
	return s
}

// Play restarts the cue from the beginning.
func (s *Sounds) Play(cue component.Cue) {
	if s == nil {
		return
	}
	p, ok := s.cues[cue]
	if !ok {
		if !s.missing[cue] {
			s.missing[cue] = true
			logrus.WithField("cue", cue).Debug("assets: unknown cue")
		}
		return
	}
	p.SetVolume(s.volumes[cue])
	_ = p.Rewind()
	p.Play()
}

// PlayMusic starts the background track, looping until StopMusic.
func (s *Sounds) PlayMusic() {
	if s == nil || s.music == nil {
		return
	}
	s.musicLoop = true
	s.music.SetVolume(s.musicVolume)
	if !s.music.IsPlaying() {
		_ = s.music.Rewind()
		s.music.Play()
	}
}

func (s *Sounds) StopMusic() {
	if s == nil || s.music == nil {
		return
	}
	s.musicLoop = false
	s.music.Pause()
}

// Update restarts the background track when it reaches its end.
func (s *Sounds) Update() {
	if s == nil || s.music == nil || !s.musicLoop {
		return
	}
	if !s.music.IsPlaying() {
		_ = s.music.Rewind()
		s.music.SetVolume(s.musicVolume)
		s.music.Play()
	}
}

func (s *Sounds) load(fsys fs.FS, name string) (*audio.Player, error) {
	clean := cleanAssetPath(name)
	b, err := fs.ReadFile(fsys, clean)
	if err != nil {
		return nil, err
	}
	reader := bytes.NewReader(b)

	switch {
	case strings.HasSuffix(strings.ToLower(clean), ".wav"):
		stream, err := wav.DecodeWithSampleRate(s.ctx.SampleRate(), reader)
		if err != nil {
			return nil, fmt.Errorf("decode wav %q: %w", name, err)
		}
		return s.ctx.NewPlayer(stream)
	case strings.HasSuffix(strings.ToLower(clean), ".ogg"):
		stream, err := vorbis.DecodeWithSampleRate(s.ctx.SampleRate(), reader)
		if err != nil {
			return nil, fmt.Errorf("decode ogg %q: %w", name, err)
		}
		return s.ctx.NewPlayer(stream)
	}

	// Fallback for already-decoded PCM assets in Ebiten's native format.
	return s.ctx.NewPlayerFromBytes(b), nil
}
