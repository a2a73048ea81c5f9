package i

import (
	"context"

	dmn "github.com/beka-birhanu/micromouse-api/domain"
)

// ScoreBoard keeps members ranked by score, lowest first, under named
// boards of a bounded size.
type ScoreBoard interface {
	// Submit records a member's score on the named board, trimming the
	// board to its size cap.
	Submit(ctx context.Context, board string, score float64, member string) error

	// Top returns up to n entries with the lowest scores, best first.
	Top(ctx context.Context, board string, n int64) ([]dmn.ScoreEntry, error)

	// Count returns the number of entries on the board.
	Count(ctx context.Context, board string) int64
}
