package store

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

// ErrNotFound is returned by every store when a lookup matches no row.
// Services translate it into their own sentinel errors.
var ErrNotFound = errors.New("not found")

func wrapNotFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
