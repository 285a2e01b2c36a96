package runtime

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/inkforge/inkforge/internal/logging"
	"github.com/inkforge/inkforge/pkg/domain"
)

// comparison operators in match priority order. Two-character operators come
// first so ">=" is never split as ">" followed by "=".
var operators = []string{"==", "!=", ">=", "<=", ">", "<"}

// Evaluator implements the gamebook expression language: single binary
// comparisons, comma-separated set instructions, and {{var}} interpolation.
// All methods are pure with respect to their inputs; malformed expressions
// log a warning and resolve to a safe default instead of failing the
// playthrough.
type Evaluator struct {
	logger *slog.Logger
}

// NewEvaluator creates an evaluator. A nil logger discards warnings.
func NewEvaluator(logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Evaluator{logger: logger}
}

// EvaluateCondition resolves a condition string against the state. An empty
// condition is vacuously true. A bare token is a truthy variable lookup.
// Exactly one comparison operator yields a binary comparison; anything else
// is unsupported and resolves to false.
func (e *Evaluator) EvaluateCondition(condition string, state domain.RuntimeState) bool {
	condition = strings.TrimSpace(condition)
	if condition == "" {
		return true
	}

	lhs, op, rhs := splitCondition(condition)
	if op == "" {
		value, _ := getValue(lhs, state)
		return truthy(value)
	}

	if lhs == "" || rhs == "" {
		e.logger.Warn("unsupported condition shape", "condition", condition)
		return false
	}

	left, _ := getValue(lhs, state)
	right, _ := getValue(rhs, state)

	switch op {
	case "==":
		return looseEqual(left, right)
	case "!=":
		return !looseEqual(left, right)
	case ">":
		return compareNumbers(left, right, func(a, b float64) bool { return a > b })
	case "<":
		return compareNumbers(left, right, func(a, b float64) bool { return a < b })
	case ">=":
		return compareNumbers(left, right, func(a, b float64) bool { return a >= b })
	case "<=":
		return compareNumbers(left, right, func(a, b float64) bool { return a <= b })
	}

	e.logger.Warn("unknown comparison operator", "condition", condition, "op", op)
	return false
}

// ExecuteSet applies a comma-separated list of "key = expression" statements.
// A nil/empty instruction returns the state unchanged (same map, no copy).
// Otherwise the original is never mutated: statements apply to an
// accumulating copy, so later statements observe earlier effects.
func (e *Evaluator) ExecuteSet(instruction string, state domain.RuntimeState) domain.RuntimeState {
	if strings.TrimSpace(instruction) == "" {
		return state
	}

	next := state.Clone()
	for _, stmt := range splitTopLevel(instruction, ',') {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}

		key, expr, ok := strings.Cut(stmt, "=")
		if !ok {
			e.logger.Warn("set statement missing assignment", "statement", stmt)
			continue
		}
		key = strings.TrimSpace(key)
		expr = strings.TrimSpace(expr)
		if key == "" || expr == "" {
			e.logger.Warn("set statement missing key or expression", "statement", stmt)
			continue
		}

		if lhs, op, rhs, found := splitArithmetic(expr); found {
			left, leftOK := getValue(lhs, next)
			right, rightOK := getValue(rhs, next)
			lnum, lIsNum := toNumber(left)
			rnum, rIsNum := toNumber(right)
			if !leftOK || !rightOK || !lIsNum || !rIsNum {
				e.logger.Warn("non-numeric arithmetic operand, statement skipped",
					"statement", stmt, "lhs", lhs, "rhs", rhs)
				continue
			}
			if op == '+' {
				next[key] = lnum + rnum
			} else {
				next[key] = lnum - rnum
			}
			continue
		}

		value, defined := getValue(expr, next)
		if !defined {
			e.logger.Warn("assignment of undefined value skipped", "statement", stmt, "expression", expr)
			continue
		}
		next[key] = value
	}
	return next
}

// splitCondition splits on the first occurrence of a comparison operator,
// trying operators in priority order. Returns an empty op when none matched.
func splitCondition(condition string) (lhs, op, rhs string) {
	for _, candidate := range operators {
		if i := strings.Index(condition, candidate); i >= 0 {
			return strings.TrimSpace(condition[:i]),
				candidate,
				strings.TrimSpace(condition[i+len(candidate):])
		}
	}
	return strings.TrimSpace(condition), "", ""
}

// splitArithmetic matches "operand1 (+|-) operand2", ignoring signs inside
// quotes and a leading sign on the first operand.
func splitArithmetic(expr string) (lhs string, op byte, rhs string, found bool) {
	inQuote := byte(0)
	for i := 0; i < len(expr); i++ {
		c := expr[i]
		if inQuote != 0 {
			if c == inQuote {
				inQuote = 0
			}
			continue
		}
		if c == '\'' || c == '"' {
			inQuote = c
			continue
		}
		if (c == '+' || c == '-') && strings.TrimSpace(expr[:i]) != "" {
			return strings.TrimSpace(expr[:i]), c, strings.TrimSpace(expr[i+1:]), true
		}
	}
	return "", 0, "", false
}

// splitTopLevel splits on sep outside of quoted regions.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	start := 0
	inQuote := byte(0)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inQuote != 0 {
			if c == inQuote {
				inQuote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			inQuote = c
		case sep:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

// getValue resolves a token to a scalar: boolean literals, numeric literals,
// quoted strings, and finally state lookups. The second return reports
// whether the token resolved to a defined value.
func getValue(token string, state domain.RuntimeState) (any, bool) {
	token = strings.TrimSpace(token)
	switch token {
	case "":
		return nil, false
	case "true":
		return true, true
	case "false":
		return false, true
	}

	if n, err := strconv.ParseFloat(token, 64); err == nil {
		return n, true
	}

	if len(token) >= 2 {
		first, last := token[0], token[len(token)-1]
		if (first == '\'' && last == '\'') || (first == '"' && last == '"') {
			return token[1 : len(token)-1], true
		}
	}

	value, ok := state[token]
	return value, ok
}

// truthy mirrors the DSL's untyped boolean coercion (!!value).
func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	default:
		if n, ok := toNumber(value); ok {
			return n != 0 && !math.IsNaN(n)
		}
		return true
	}
}

// looseEqual replicates the DSL's untyped equality: numbers compare to
// numeric strings ("1" == 1), booleans coerce to numbers. This is a
// documented design choice of the authoring language, not an accident.
func looseEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	sa, aIsStr := a.(string)
	sb, bIsStr := b.(string)
	if aIsStr && bIsStr {
		return sa == sb
	}

	ba, aIsBool := a.(bool)
	if aIsBool {
		return looseEqual(boolToNumber(ba), b)
	}
	bb, bIsBool := b.(bool)
	if bIsBool {
		return looseEqual(a, boolToNumber(bb))
	}

	na, aIsNum := toNumber(a)
	nb, bIsNum := toNumber(b)

	// number vs numeric string
	if aIsNum && bIsStr {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(sb), 64); err == nil {
			return na == parsed
		}
		return false
	}
	if bIsNum && aIsStr {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(sa), 64); err == nil {
			return nb == parsed
		}
		return false
	}

	if aIsNum && bIsNum {
		return na == nb
	}
	return a == b
}

func boolToNumber(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// compareNumbers coerces both sides to numbers; unresolvable operands make
// the comparison false.
func compareNumbers(a, b any, cmp func(float64, float64) bool) bool {
	na, aOK := toNumber(a)
	nb, bOK := toNumber(b)
	if !aOK || !bOK {
		return false
	}
	return cmp(na, nb)
}

// toNumber converts the scalar kinds YAML and the evaluator produce into a
// float64. Strings are parsed; booleans and nil are not numbers here.
func toNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return n, err == nil
	default:
		return 0, false
	}
}

// FormatValue renders a scalar the way interpolation and the serializer show
// it: whole floats print without a decimal point.
func FormatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprintf("%v", v)
	}
}
