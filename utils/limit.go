package utils

const (
	LimitDefault = 100
	LimitMin     = 1
	LimitMax     = 1000
)

// ClampLimit returns the result cap for a search. A nil limit selects the
// default; out-of-range values are clamped into [LimitMin, LimitMax].
func ClampLimit(limit *int) int {
	if limit == nil {
		return LimitDefault
	}
	return min(max(*limit, LimitMin), LimitMax)
}
