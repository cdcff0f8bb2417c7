package spawn

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is the root of every setup error the engine reports.
	ErrConfiguration = errors.New("spawn: configuration error")
	// ErrEmptyShapePool indicates spawning was attempted without any shapes.
	ErrEmptyShapePool = fmt.Errorf("%w: shape pool is empty", ErrConfiguration)
	// ErrEmptyPalette indicates spawning was attempted without any colors.
	ErrEmptyPalette = fmt.Errorf("%w: color palette is empty", ErrConfiguration)
	// ErrInvalidPalette indicates a palette tag of board.MaxColors or more.
	ErrInvalidPalette = fmt.Errorf("%w: palette color out of range", ErrConfiguration)
	// ErrUnknownMode indicates a mode name that ParseMode does not recognise.
	ErrUnknownMode = fmt.Errorf("%w: unknown spawn mode", ErrConfiguration)
)
