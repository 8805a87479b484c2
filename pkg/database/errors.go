package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Fault is the engine-independent classification of a storage error.
type Fault int

const (
	FaultNone Fault = iota
	FaultNotFound
	FaultDuplicateKey
	FaultOther
)

func (f Fault) String() string {
	switch f {
	case FaultNone:
		return "none"
	case FaultNotFound:
		return "not_found"
	case FaultDuplicateKey:
		return "duplicate_key"
	default:
		return "other"
	}
}

// SQLSTATE unique_violation
const pgUniqueViolation = "23505"

// Classify normalizes gorm and PostgreSQL errors into a Fault.
func Classify(err error) Fault {
	if err == nil {
		return FaultNone
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return FaultNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return FaultDuplicateKey
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return FaultDuplicateKey
	}
	return FaultOther
}

// Detail returns the store's human readable detail for err,
// e.g. `Key (slug)=(pepes_vans) already exists.`
func Detail(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Detail != "" {
			return pgErr.Detail
		}
		return pgErr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
