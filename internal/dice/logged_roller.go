package dice

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Roller wraps a Source and logger to provide logged dice rolling.
// Every roll is stamped with a fresh ID and logged at debug level with the
// expression, dice values, bonus and total.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs each roll to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Source returns the randomness provider backing r.
func (r *Roller) Source() Source {
	return r.src
}

// Roll rolls e and logs the result at debug level.
//
// Postcondition: result.ID is a non-empty UUID string.
func (r *Roller) Roll(e Expression) RollResult {
	result := Roll(e, r.src)
	result.ID = uuid.NewString()
	r.logger.Debug("dice roll",
		zap.String("roll_id", result.ID),
		zap.String("expression", result.Expression),
		zap.Ints("dice", result.Dice),
		zap.Int("bonus", result.Bonus),
		zap.Int("total", result.Total()),
	)
	return result
}

// RollExpr parses text and rolls it, logging the result.
//
// Postcondition: Returns a RollResult or a parse error.
func (r *Roller) RollExpr(text string) (RollResult, error) {
	e, err := Parse(text)
	if err != nil {
		return RollResult{}, err
	}
	return r.Roll(e), nil
}
