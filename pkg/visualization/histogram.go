package visualization

import "math"

// HistogramBin is one bar of a histogram. Bins are half-open [Lo, Hi) except
// the last, which includes Hi.
type HistogramBin struct {
	Lo    float64 `json:"lo"`
	Hi    float64 `json:"hi"`
	Count int     `json:"count"`
}

// Bin splits values into equal-width bins spanning [min, max]. When every
// value is the same the range is widened to [v-0.5, v+0.5].
func Bin(values []int, bins int) []HistogramBin {
	if len(values) == 0 || bins <= 0 {
		return nil
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	start, end := float64(lo), float64(hi)
	if lo == hi {
		start, end = start-0.5, end+0.5
	}
	width := (end - start) / float64(bins)

	out := make([]HistogramBin, bins)
	for i := range out {
		out[i].Lo = start + float64(i)*width
		out[i].Hi = start + float64(i+1)*width
	}
	out[bins-1].Hi = end

	for _, v := range values {
		i := int(math.Floor((float64(v) - start) / width))
		if i >= bins {
			i = bins - 1
		}
		if i < 0 {
			i = 0
		}
		out[i].Count++
	}
	return out
}
