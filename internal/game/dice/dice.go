// Package dice provides the randomness behind skill checks and variable
// amounts in item commands.
package dice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Source is the randomness provider for dice rolls. Implementations must be
// safe for concurrent use.
type Source interface {
	// Intn returns a value in [0, n). n must be positive.
	Intn(n int) int
}

var exprPattern = regexp.MustCompile(`^(\d*)d(\d+)([+-]\d+)?$`)

// Expr is a parsed "NdS+M" dice expression.
type Expr struct {
	Text     string
	Count    int
	Sides    int
	Modifier int
}

// Parse reads expressions of the form "d20", "2d6", "2d6+3" or "4d8-2".
// Case and surrounding spaces are ignored.
//
// Postcondition: on success Count >= 1 and Sides >= 2.
func Parse(text string) (Expr, error) {
	m := exprPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(text)))
	if m == nil {
		return Expr{}, fmt.Errorf("dice: malformed expression %q", text)
	}
	e := Expr{Text: text, Count: 1}
	if m[1] != "" {
		e.Count, _ = strconv.Atoi(m[1])
	}
	e.Sides, _ = strconv.Atoi(m[2])
	if m[3] != "" {
		e.Modifier, _ = strconv.Atoi(m[3])
	}
	switch {
	case e.Count < 1:
		return Expr{}, fmt.Errorf("dice: %q rolls no dice", text)
	case e.Sides < 2:
		return Expr{}, fmt.Errorf("dice: %q needs at least two sides", text)
	}
	return e, nil
}

// Roll throws e's dice with src.
func (e Expr) Roll(src Source) Result {
	res := Result{Expr: e.Text, Rolls: make([]int, e.Count), Modifier: e.Modifier}
	for i := range res.Rolls {
		res.Rolls[i] = src.Intn(e.Sides) + 1
	}
	return res
}

// Result records each die thrown for an expression.
type Result struct {
	Expr     string
	Rolls    []int
	Modifier int
}

// Total is the sum of Rolls plus Modifier.
func (r Result) Total() int {
	total := r.Modifier
	for _, v := range r.Rolls {
		total += v
	}
	return total
}

// String renders the roll for logs, e.g. "2d6+3: [4 5] +3 = 12".
func (r Result) String() string {
	return fmt.Sprintf("%s: %v %+d = %d", r.Expr, r.Rolls, r.Modifier, r.Total())
}

// Between returns a uniform value in [lo, hi] drawn from src. Reversed bounds
// are swapped.
func Between(src Source, lo, hi int) int {
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo + src.Intn(hi-lo+1)
}
