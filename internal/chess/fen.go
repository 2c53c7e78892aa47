package chess

import (
	"strings"

	nchess "github.com/notnil/chess"
	"github.com/pkg/errors"

	"github.com/benbeisheim/boardtutor-backend/internal/model"
)

// Position is a decoded FEN record: the board plus the fields the tutor uses.
type Position struct {
	Board    *model.Board
	Turn     model.Color
	Castling model.CastlingFlags
}

var toModel = map[nchess.PieceType]model.PieceType{
	nchess.King:   model.King,
	nchess.Queen:  model.Queen,
	nchess.Rook:   model.Rook,
	nchess.Bishop: model.Bishop,
	nchess.Knight: model.Knight,
	nchess.Pawn:   model.Pawn,
}

var toNotnil = map[model.Piece]nchess.Piece{
	{Type: model.King, Color: model.White}:   nchess.WhiteKing,
	{Type: model.Queen, Color: model.White}:  nchess.WhiteQueen,
	{Type: model.Rook, Color: model.White}:   nchess.WhiteRook,
	{Type: model.Bishop, Color: model.White}: nchess.WhiteBishop,
	{Type: model.Knight, Color: model.White}: nchess.WhiteKnight,
	{Type: model.Pawn, Color: model.White}:   nchess.WhitePawn,
	{Type: model.King, Color: model.Black}:   nchess.BlackKing,
	{Type: model.Queen, Color: model.Black}:  nchess.BlackQueen,
	{Type: model.Rook, Color: model.Black}:   nchess.BlackRook,
	{Type: model.Bishop, Color: model.Black}: nchess.BlackBishop,
	{Type: model.Knight, Color: model.Black}: nchess.BlackKnight,
	{Type: model.Pawn, Color: model.Black}:   nchess.BlackPawn,
}

// DecodePlacement reads the piece-placement field of a FEN record, for
// example "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR". Any further fields
// are ignored. Missing kings are allowed.
func DecodePlacement(fen string) (*model.Board, error) {
	fields := strings.Fields(fen)
	if len(fields) == 0 {
		return nil, errors.New("empty FEN")
	}
	var nb nchess.Board
	if err := nb.UnmarshalText([]byte(fields[0])); err != nil {
		return nil, errors.Wrapf(err, "decode placement %q", fields[0])
	}
	b := model.NewBoard(Size, Size)
	for sq, pc := range nb.SquareMap() {
		t, ok := toModel[pc.Type()]
		if !ok {
			continue
		}
		color := model.White
		if pc.Color() == nchess.Black {
			color = model.Black
		}
		b.Set(model.Pos(int(sq.File()), int(sq.Rank())), &model.Piece{Type: t, Color: color})
	}
	return b, nil
}

// EncodePlacement renders the piece-placement field of b.
func EncodePlacement(b *model.Board) (string, error) {
	if b.Width != Size || b.Height != Size {
		return "", errors.Wrapf(model.ErrBoardDimensions, "%dx%d", b.Width, b.Height)
	}
	m := map[nchess.Square]nchess.Piece{}
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			pc := b.At(model.Pos(x, y))
			if pc == nil {
				continue
			}
			np, ok := toNotnil[*pc]
			if !ok {
				return "", errors.Wrapf(model.ErrForeignPiece, "%s at %s", pc, SquareName(model.Pos(x, y)))
			}
			m[nchess.Square(y*Size+x)] = np
		}
	}
	return nchess.NewBoard(m).String(), nil
}

// DecodeFEN reads a full FEN record. A bare placement field is accepted too;
// white then moves first and castling is available wherever the king and
// rooks stand on their home squares. The board must hold one king per side.
func DecodeFEN(r *Rules, fen string) (Position, error) {
	b, err := DecodePlacement(fen)
	if err != nil {
		return Position{}, err
	}
	if err := r.Validate(b); err != nil {
		return Position{}, err
	}
	if len(strings.Fields(fen)) == 1 {
		return Position{Board: b, Turn: model.White}, nil
	}

	opt, err := nchess.FEN(fen)
	if err != nil {
		return Position{}, errors.Wrapf(err, "decode FEN %q", fen)
	}
	pos := nchess.NewGame(opt).Position()
	turn := model.White
	if pos.Turn() == nchess.Black {
		turn = model.Black
	}
	rights := pos.CastleRights()
	wk, wq := rights.CanCastle(nchess.White, nchess.KingSide), rights.CanCastle(nchess.White, nchess.QueenSide)
	bk, bq := rights.CanCastle(nchess.Black, nchess.KingSide), rights.CanCastle(nchess.Black, nchess.QueenSide)
	return Position{
		Board: b,
		Turn:  turn,
		Castling: model.CastlingFlags{
			WhiteKing:  !wk && !wq,
			WhiteRookA: !wq,
			WhiteRookH: !wk,
			BlackKing:  !bk && !bq,
			BlackRookA: !bq,
			BlackRookH: !bk,
		},
	}, nil
}

// NewGameFromFEN starts a full game from a FEN record.
func NewGameFromFEN(r *Rules, fen string, opts ...model.Option) (*model.Game, error) {
	pos, err := DecodeFEN(r, fen)
	if err != nil {
		return nil, err
	}
	opts = append([]model.Option{model.WithCastling(pos.Castling)}, opts...)
	return model.NewGameFromBoard(r, pos.Board, pos.Turn, opts...)
}
