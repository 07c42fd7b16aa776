package stats

import "math"

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Variance calculates the sample variance
func Variance(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	mean := Mean(values)
	var sumSquaredDiff float64
	for _, v := range values {
		diff := v - mean
		sumSquaredDiff += diff * diff
	}

	return sumSquaredDiff / float64(len(values)-1)
}

// StdDev calculates the sample standard deviation
func StdDev(values []float64) float64 {
	return math.Sqrt(Variance(values))
}

// Min returns the minimum value
func Min(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	min := values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// Max returns the maximum value
func Max(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// LogMean calculates the arithmetic mean of ln(x) over the strictly
// positive values. Non-positive values are excluded, not treated as zero.
// The second return value is false when no positive value exists.
func LogMean(values []float64) (float64, bool) {
	var sum float64
	var n int
	for _, v := range values {
		if v > 0 {
			sum += math.Log(v)
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// GeometricMean calculates exp(mean(ln(x))) over the strictly positive
// values, used as the log-domain smoothed value for the rock-response
// indices. The second return value is false when no positive value exists.
func GeometricMean(values []float64) (float64, bool) {
	lm, ok := LogMean(values)
	if !ok {
		return 0, false
	}
	return math.Exp(lm), true
}

// PooledStdDev calculates sqrt(mean(stddev^2)) across bins. This assumes
// roughly equal bin populations and is not the exact pooled-variance
// formula; downstream consumers calibrate against this exact shape, so it
// is kept as-is.
func PooledStdDev(stdDevs []float64) float64 {
	if len(stdDevs) == 0 {
		return 0
	}

	var sumVar float64
	for _, s := range stdDevs {
		sumVar += s * s
	}
	return math.Sqrt(sumVar / float64(len(stdDevs)))
}
