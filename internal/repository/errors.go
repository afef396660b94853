package repository

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicateKey is returned when a write violates a unique constraint.
var ErrDuplicateKey = errors.New("duplicate key")

const (
	mysqlDuplicateEntry   = 1062
	postgresUniqueViolate = "23505"
)

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == postgresUniqueViolate {
		return true
	}
	return false
}

// wrapWriteError keeps the driver error in the chain and adds ErrDuplicateKey
// when the store reported a unique violation.
func wrapWriteError(op string, err error) error {
	if isDuplicateKey(err) {
		return fmt.Errorf("%s failed: %w: %w", op, ErrDuplicateKey, err)
	}
	return fmt.Errorf("%s failed: %w", op, err)
}
