package httperr

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Constraint classifies a store error by the integrity rule it broke.
type Constraint int

const (
	ConstraintNone Constraint = iota
	ConstraintUnique
	ConstraintForeignKey
)

// ClassifyConstraint recognises uniqueness and foreign-key violations from
// any supported driver.
func ClassifyConstraint(err error) Constraint {
	if err == nil {
		return ConstraintNone
	}

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ConstraintUnique
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ConstraintForeignKey
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ConstraintUnique
		case "23503":
			return ConstraintForeignKey
		}
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1062:
			return ConstraintUnique
		case 1451, 1452:
			return ConstraintForeignKey
		}
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"),
		strings.Contains(msg, "duplicate key"):
		return ConstraintUnique
	case strings.Contains(msg, "FOREIGN KEY constraint failed"),
		strings.Contains(msg, "violates foreign key"):
		return ConstraintForeignKey
	}
	return ConstraintNone
}

func IsUniqueViolation(err error) bool {
	return ClassifyConstraint(err) == ConstraintUnique
}

func IsForeignKeyViolation(err error) bool {
	return ClassifyConstraint(err) == ConstraintForeignKey
}
