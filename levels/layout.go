package levels

import (
	"embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strconv"
	"strings"
)

//go:embed map/*.csv
var LevelsFS embed.FS

// Map sentinel codes.
const (
	Empty        = -1
	CodeBamboo   = 390
	CodeSpirit   = 391
	CodeRaccoon  = 392
	CodeSquid    = 393
	CodePlayer   = 394
	CodeBoundary = 395
)

var (
	ErrRaggedLayout    = errors.New("levels: ragged layout")
	ErrLayerMismatch   = errors.New("levels: layer sizes differ")
	ErrMissingPlayer   = errors.New("levels: no player in entity layer")
	ErrDuplicatePlayer = errors.New("levels: more than one player in entity layer")
)

// Layer names one CSV grid of a map.
type Layer string

const (
	LayerBoundary Layer = "boundary"
	LayerGrass    Layer = "grass"
	LayerObject   Layer = "object"
	LayerEntity   Layer = "entity"
)

// Layers lists every layer in build order.
var Layers = []Layer{LayerBoundary, LayerGrass, LayerObject, LayerEntity}

var layerFiles = map[Layer]string{
	LayerBoundary: "map_FloorBlocks.csv",
	LayerGrass:    "map_Grass.csv",
	LayerObject:   "map_LargeObjects.csv",
	LayerEntity:   "map_Entities.csv",
}

// Grid is a row-major table of codes.
type Grid [][]int

// Layout is the full set of layer grids for one map.
type Layout struct {
	Rows, Cols int
	Grids      map[Layer]Grid
}

// Cell is one non-empty grid entry.
type Cell struct {
	Layer    Layer
	Row, Col int
	Code     int
}

// ParseCSV reads a grid of integer codes.
func ParseCSV(r io.Reader) (Grid, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	grid := make(Grid, 0, len(records))
	for i, rec := range records {
		if len(grid) > 0 && len(rec) != len(grid[0]) {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrRaggedLayout, i, len(rec), len(grid[0]))
		}
		row := make([]int, len(rec))
		for j, field := range rec {
			v, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return nil, fmt.Errorf("levels: row %d col %d: %w", i, j, err)
			}
			row[j] = v
		}
		grid = append(grid, row)
	}
	return grid, nil
}

// Load reads the four layer files from dir inside fsys.
func Load(fsys fs.FS, dir string) (*Layout, error) {
	l := &Layout{Grids: make(map[Layer]Grid, len(Layers))}
	for _, layer := range Layers {
		name := path.Join(dir, layerFiles[layer])
		f, err := fsys.Open(name)
		if err != nil {
			return nil, fmt.Errorf("levels: open %s: %w", name, err)
		}
		grid, err := ParseCSV(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("levels: parse %s: %w", name, err)
		}
		rows, cols := len(grid), 0
		if rows > 0 {
			cols = len(grid[0])
		}
		if layer == Layers[0] {
			l.Rows, l.Cols = rows, cols
		} else if rows != l.Rows || cols != l.Cols {
			return nil, fmt.Errorf("%w: %s is %dx%d, want %dx%d", ErrLayerMismatch, name, rows, cols, l.Rows, l.Cols)
		}
		l.Grids[layer] = grid
	}
	if err := l.validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// LoadDefault loads the map from dir on disk when it holds the layer files,
// otherwise the embedded map.
func LoadDefault(dir string) (*Layout, error) {
	if dir != "" {
		if _, err := os.Stat(path.Join(dir, layerFiles[LayerEntity])); err == nil {
			return Load(os.DirFS(dir), ".")
		}
	}
	return Load(LevelsFS, "map")
}

func (l *Layout) validate() error {
	players := 0
	for _, row := range l.Grids[LayerEntity] {
		for _, v := range row {
			if v == CodePlayer {
				players++
			}
		}
	}
	switch {
	case players == 0:
		return ErrMissingPlayer
	case players > 1:
		return ErrDuplicatePlayer
	}
	return nil
}

// Cells returns every non-empty entry, layer by layer in build order and
// row-major within a layer.
func (l *Layout) Cells() []Cell {
	if l == nil {
		return nil
	}
	var out []Cell
	for _, layer := range Layers {
		for r, row := range l.Grids[layer] {
			for c, v := range row {
				if v == Empty {
					continue
				}
				out = append(out, Cell{Layer: layer, Row: r, Col: c, Code: v})
			}
		}
	}
	return out
}

// Count returns the number of non-empty cells in layer.
func (l *Layout) Count(layer Layer) int {
	n := 0
	for _, row := range l.Grids[layer] {
		for _, v := range row {
			if v != Empty {
				n++
			}
		}
	}
	return n
}
