package repository

import (
	"errors"
	"math"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-sales/internal/domain"
	"github.com/BruksfildServices01/barber-sales/internal/httperr"
)

// translate maps driver and gorm errors onto the domain sentinels.
// Errors it does not recognise pass through unchanged.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	switch httperr.ClassifyConstraint(err) {
	case httperr.ConstraintUnique:
		return domain.ErrDuplicate
	case httperr.ConstraintForeignKey:
		return domain.ErrInUse
	}
	return err
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// containsPattern builds a lower-case LIKE pattern used with ESCAPE '!'.
func containsPattern(q string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"
}
