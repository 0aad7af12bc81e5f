package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound replaces gorm.ErrRecordNotFound so callers do not depend on gorm.
	ErrNotFound = errors.New("record not found")

	// ErrSlotUnavailable means a conditional slot update matched zero rows:
	// the slot was booked or blocked by someone else first.
	ErrSlotUnavailable = errors.New("slot is not available")

	// ErrDuplicateSlot means an insert hit the (field, date, start, end) unique index.
	ErrDuplicateSlot = errors.New("slot already exists")
)

func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateSlot
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateSlot
	}
	// The cgo-free SQLite driver reports constraint violations without a
	// typed error, so match on the message.
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrDuplicateSlot
	}
	return err
}
