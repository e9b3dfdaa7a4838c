package repository

import (
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key")
)

// PgUniqueViolation is the Postgres SQLSTATE for unique constraint failures.
const PgUniqueViolation = "23505"

// translate maps driver and GORM errors onto the package sentinels so callers
// never depend on the storage engine.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateKey
	}
	var pgErr *pq.Error
	if errors.As(err, &pgErr) && pgErr.Code == PgUniqueViolation {
		return ErrDuplicateKey
	}
	return err
}
