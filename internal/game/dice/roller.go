package dice

import "go.uber.org/zap"

// Roller draws from a Source and logs every draw at debug level.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller returns a Roller over src.
//
// Precondition: src and logger are non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// RollExpr parses and rolls text.
//
// Postcondition: Returns the Result, or the parse error with nothing logged.
func (r *Roller) RollExpr(text string) (Result, error) {
	e, err := Parse(text)
	if err != nil {
		return Result{}, err
	}
	res := e.Roll(r.src)
	r.logger.Debug("dice roll", zap.Stringer("result", res))
	return res, nil
}

// Number returns a value in [lo, hi].
func (r *Roller) Number(lo, hi int) int {
	v := Between(r.src, lo, hi)
	r.logger.Debug("dice number", zap.Int("lo", lo), zap.Int("hi", hi), zap.Int("value", v))
	return v
}

// Check rolls 1..101 against a percentage skill. A skill of 100 still fails
// one time in a hundred and one.
func (r *Roller) Check(skill int) bool {
	roll := Between(r.src, 1, 101)
	ok := roll <= skill
	r.logger.Debug("skill check", zap.Int("skill", skill), zap.Int("roll", roll), zap.Bool("success", ok))
	return ok
}
