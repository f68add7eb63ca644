package rating

import (
	"fmt"
	"strconv"
	"strings"
)

// coarse weight codes used by the intake form and by older records, mapped to
// rating buckets. Unmapped codes are a hard error, never a default bucket.
var coarseWeightCodes = map[string]WeightBucket{
	"up_10":    WeightUpTo10,
	"10_25":    Weight11To20,
	"25_40":    Weight21To40,
	"over_40":  WeightOver40,
	"10":       WeightUpTo10,
	"11-20":    Weight11To20,
	"21-40":    Weight21To40,
	">40":      WeightOver40,
	"up_to_10": WeightUpTo10,
	"11_20":    Weight11To20,
	"21_40":    Weight21To40,
}

// NormalizeWeight maps a free-form weight input onto a rating bucket. It
// accepts the coarse bucket codes stored on application records and bare
// numeric kilogram strings. Anything else returns ErrUnknownWeight; callers
// must treat that as a failure, not as a bucket.
func NormalizeWeight(raw string) (WeightBucket, error) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return WeightUnknown, fmt.Errorf("%w: empty value", ErrUnknownWeight)
	}
	if bucket, ok := coarseWeightCodes[trimmed]; ok {
		return bucket, nil
	}
	kg, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return WeightUnknown, fmt.Errorf("%w: %q", ErrUnknownWeight, raw)
	}
	switch {
	case kg <= 0:
		return WeightUnknown, fmt.Errorf("%w: non-positive weight %q", ErrUnknownWeight, raw)
	case kg <= 10:
		return WeightUpTo10, nil
	case kg <= 20:
		return Weight11To20, nil
	case kg <= 40:
		return Weight21To40, nil
	default:
		return WeightOver40, nil
	}
}
