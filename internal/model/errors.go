package model

import "errors"

var (
	ErrInvalidBoard    = errors.New("invalid board")
	ErrMissingKing     = errors.New("missing king")
	ErrDuplicateKing   = errors.New("more than one king")
	ErrForeignPiece    = errors.New("piece does not belong to this game")
	ErrUnknownTurn     = errors.New("unknown side to move")
	ErrBoardDimensions = errors.New("board has wrong dimensions")
)
