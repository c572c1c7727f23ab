package assets

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/png"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
)

var ErrEmptyFolder = errors.New("assets: folder has no frames")

// Provider hands out named frame sets and single images. Names are slash
// separated paths relative to the asset root.
type Provider interface {
	// Frames returns the images of a folder ordered by file name.
	Frames(name string) ([]image.Image, error)
	// MirroredFrames is Frames flipped horizontally.
	MirroredFrames(name string) ([]image.Image, error)
	Image(name string) (image.Image, error)
}

// Dir loads PNG files from an fs.FS. Decoded images are cached, so every
// entity of one kind shares the same frames.
type Dir struct {
	fsys fs.FS
	// Convert is applied to every decoded image before it is cached.
	Convert func(image.Image) image.Image

	mu     sync.Mutex
	frames map[string][]image.Image
	images map[string]image.Image
}

// NewDir creates a provider over fsys that returns raw decoded images.
func NewDir(fsys fs.FS) *Dir {
	return &Dir{
		fsys:   fsys,
		frames: make(map[string][]image.Image),
		images: make(map[string]image.Image),
	}
}

// NewEbitenDir creates a provider whose images are *ebiten.Image.
func NewEbitenDir(fsys fs.FS) *Dir {
	d := NewDir(fsys)
	d.Convert = func(img image.Image) image.Image {
		return ebiten.NewImageFromImage(img)
	}
	return d
}

func (d *Dir) Frames(name string) ([]image.Image, error) {
	return d.frameSet(cleanAssetPath(name), false)
}

func (d *Dir) MirroredFrames(name string) ([]image.Image, error) {
	return d.frameSet(cleanAssetPath(name), true)
}

func (d *Dir) frameSet(clean string, mirror bool) ([]image.Image, error) {
	key := clean
	if mirror {
		key += "#mirror"
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if cached, ok := d.frames[key]; ok {
		return cached, nil
	}

	entries, err := fs.ReadDir(d.fsys, clean)
	if err != nil {
		return nil, fmt.Errorf("assets: read %s: %w", clean, err)
	}
	// ReadDir sorts by file name
	var out []image.Image
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".png") {
			continue
		}
		img, err := d.decode(path.Join(clean, e.Name()))
		if err != nil {
			return nil, err
		}
		if mirror {
			img = Mirror(img)
		}
		out = append(out, d.convert(img))
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFolder, clean)
	}
	logrus.WithFields(logrus.Fields{"folder": clean, "frames": len(out), "mirror": mirror}).Debug("assets: frames loaded")
	d.frames[key] = out
	return out, nil
}

func (d *Dir) Image(name string) (image.Image, error) {
	clean := cleanAssetPath(name)
	d.mu.Lock()
	defer d.mu.Unlock()
	if cached, ok := d.images[clean]; ok {
		return cached, nil
	}
	img, err := d.decode(clean)
	if err != nil {
		return nil, err
	}
	img = d.convert(img)
	d.images[clean] = img
	return img, nil
}

func (d *Dir) decode(name string) (image.Image, error) {
	f, err := d.fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("assets: open %s: %w", name, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", name, err)
	}
	return img, nil
}

func (d *Dir) convert(img image.Image) image.Image {
	if d.Convert == nil {
		return img
	}
	return d.Convert(img)
}

// Mirror returns a horizontally flipped copy of img.
func Mirror(img image.Image) image.Image {
	b := img.Bounds()
	src := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(src, src.Bounds(), img, b.Min, draw.Src)
	out := image.NewRGBA(src.Bounds())
	w := b.Dx()
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < w; x++ {
			out.Set(w-1-x, y, src.At(x, y))
		}
	}
	return out
}

func cleanAssetPath(p string) string {
	if p == "" {
		return "."
	}
	s := filepath.ToSlash(p)
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		s = after
	}
	return path.Clean(strings.TrimPrefix(s, "/"))
}
