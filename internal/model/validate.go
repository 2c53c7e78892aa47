package model

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// ValidateBoard checks the structural invariants every ruleset shares: the
// board has the expected size, every piece belongs to one of the two sides and
// is a type the ruleset knows, and each side has exactly one royal piece.
// All violations are reported together.
func ValidateBoard(b *Board, width, height int, sides [2]Color, royal PieceType, types []PieceType) error {
	if b == nil || b.Width != width || b.Height != height || len(b.Cells) != height {
		return fmt.Errorf("%w: want %dx%d", ErrBoardDimensions, width, height)
	}

	for y, row := range b.Cells {
		if len(row) != width {
			return fmt.Errorf("%w: row %d has %d cells", ErrBoardDimensions, y, len(row))
		}
	}

	var result error
	known := make(map[PieceType]bool, len(types))
	for _, t := range types {
		known[t] = true
	}
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			pc := b.Cells[y][x]
			if pc == nil {
				continue
			}
			if pc.Color != sides[0] && pc.Color != sides[1] {
				result = multierror.Append(result, fmt.Errorf("%w: %s at %s", ErrForeignPiece, pc, Pos(x, y)))
			} else if !known[pc.Type] {
				result = multierror.Append(result, fmt.Errorf("%w: %s at %s", ErrForeignPiece, pc, Pos(x, y)))
			}
		}
	}
	for _, side := range sides {
		switch n := b.Count(royal, side); {
		case n == 0:
			result = multierror.Append(result, fmt.Errorf("%w: %s has no %s", ErrMissingKing, side, royal))
		case n > 1:
			result = multierror.Append(result, fmt.Errorf("%w: %s has %d", ErrDuplicateKing, side, n))
		}
	}
	if result != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBoard, result)
	}
	return nil
}
