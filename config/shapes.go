package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/plus3/tenten/board"
	"gopkg.in/yaml.v3"
)

//go:embed shapes.yaml
var builtinShapes []byte

// ErrInvalidShape wraps every problem found in a shape pack.
var ErrInvalidShape = errors.New("config: invalid shape")

// ShapePack is the YAML layout of a shape file.
type ShapePack struct {
	Shapes []ShapeSpec `yaml:"shapes"`
}

// ShapeSpec describes one shape either as a list of [dx, dy] cells or as a
// visual block where '#' marks a filled cell and '.' or ' ' an empty one.
type ShapeSpec struct {
	Name   string  `yaml:"name"`
	Cells  [][]int `yaml:"cells,omitempty"`
	Visual string  `yaml:"visual,omitempty"`
}

// DefaultShapes returns the built-in 1010! shape set.
func DefaultShapes() []*board.Shape {
	shapes, err := ParseShapes(builtinShapes)
	if err != nil {
		panic(fmt.Sprintf("built-in shape pack: %v", err))
	}
	return shapes
}

// LoadShapes reads a shape pack from path. An empty path returns the
// built-in set.
func LoadShapes(path string) ([]*board.Shape, error) {
	if path == "" {
		return DefaultShapes(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read shapes: %w", err)
	}
	shapes, err := ParseShapes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return shapes, nil
}

// ParseShapes decodes a YAML shape pack. Names must be unique and the pack
// must not be empty.
func ParseShapes(data []byte) ([]*board.Shape, error) {
	var pack ShapePack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("config: decode shapes: %w", err)
	}
	if len(pack.Shapes) == 0 {
		return nil, fmt.Errorf("%w: pack has no shapes", ErrInvalidShape)
	}

	seen := make(map[string]bool, len(pack.Shapes))
	shapes := make([]*board.Shape, 0, len(pack.Shapes))
	for i, spec := range pack.Shapes {
		if spec.Name == "" {
			return nil, fmt.Errorf("%w: shape %d has no name", ErrInvalidShape, i)
		}
		if seen[spec.Name] {
			return nil, fmt.Errorf("%w: duplicate name %q", ErrInvalidShape, spec.Name)
		}
		seen[spec.Name] = true

		shape, err := spec.Shape()
		if err != nil {
			return nil, err
		}
		shapes = append(shapes, shape)
	}
	return shapes, nil
}

// Shape builds the board shape described by s.
func (s ShapeSpec) Shape() (*board.Shape, error) {
	var offsets []board.Offset

	switch {
	case len(s.Cells) > 0 && s.Visual != "":
		return nil, fmt.Errorf("%w: %q sets both cells and visual", ErrInvalidShape, s.Name)
	case len(s.Cells) > 0:
		for _, cell := range s.Cells {
			if len(cell) != 2 {
				return nil, fmt.Errorf("%w: %q cell %v is not [dx, dy]", ErrInvalidShape, s.Name, cell)
			}
			offsets = append(offsets, board.Offset{DX: cell[0], DY: cell[1]})
		}
	default:
		parsed, err := parseVisual(s.Visual)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidShape, s.Name, err)
		}
		offsets = parsed
	}

	shape, err := board.NewShape(s.Name, offsets...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidShape, err)
	}
	return shape, nil
}

func parseVisual(visual string) ([]board.Offset, error) {
	var offsets []board.Offset
	for dy, line := range strings.Split(strings.TrimRight(visual, "\n"), "\n") {
		for dx, ch := range line {
			switch ch {
			case '#':
				offsets = append(offsets, board.Offset{DX: dx, DY: dy})
			case '.', ' ':
			default:
				return nil, fmt.Errorf("unexpected %q at row %d", ch, dy)
			}
		}
	}
	return offsets, nil
}

// MarshalShapes encodes shapes as a pack using the visual form.
func MarshalShapes(shapes []*board.Shape) ([]byte, error) {
	pack := ShapePack{Shapes: make([]ShapeSpec, len(shapes))}
	for i, s := range shapes {
		pack.Shapes[i] = ShapeSpec{Name: s.Name(), Visual: s.String() + "\n"}
	}
	return yaml.Marshal(pack)
}
