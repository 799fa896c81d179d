package pixel

import "math"

// Stats summarizes a sequence. Brightest and Darkest are nil when the
// sequence is empty.
type Stats struct {
	Total     int
	AvgR      uint8
	AvgG      uint8
	AvgB      uint8
	Brightest *Record
	Darkest   *Record
	MaxLuma   float64
	MinLuma   float64
}

// HasData reports whether the stats describe at least one pixel.
func (s Stats) HasData() bool {
	return s.Total > 0
}

// AverageHex returns the "#rrggbb" form of the rounded channel averages.
func (s Stats) AverageHex() string {
	return Hex(s.AvgR, s.AvgG, s.AvgB)
}

// Summarize computes channel averages and brightness extrema in a single
// pass. Ties keep the earliest pixel: only a strictly brighter (or darker)
// pixel replaces the current extreme.
func Summarize(seq *Sequence) Stats {
	n := seq.Len()
	if n == 0 {
		return Stats{}
	}

	var sumR, sumG, sumB uint64
	maxLuma, minLuma := -1.0, 256.0
	var brightest, darkest Record

	for _, p := range seq.All() {
		sumR += uint64(p.R)
		sumG += uint64(p.G)
		sumB += uint64(p.B)

		l := p.Luma()
		if l > maxLuma {
			maxLuma = l
			brightest = p
		}
		if l < minLuma {
			minLuma = l
			darkest = p
		}
	}

	return Stats{
		Total:     n,
		AvgR:      roundAvg(sumR, n),
		AvgG:      roundAvg(sumG, n),
		AvgB:      roundAvg(sumB, n),
		Brightest: &brightest,
		Darkest:   &darkest,
		MaxLuma:   maxLuma,
		MinLuma:   minLuma,
	}
}

func roundAvg(sum uint64, n int) uint8 {
	return uint8(math.Round(float64(sum) / float64(n)))
}
