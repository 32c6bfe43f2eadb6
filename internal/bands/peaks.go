package bands

import "sort"

// findPeaks returns the indices of local maxima with at least minDist
// columns between any two. Plateaus count once, at their midpoint. When two
// peaks sit closer than minDist, the lower one is discarded; the survivors
// come back in ascending index order.
func findPeaks(curve []float64, minDist int) []int {
	var peaks []int
	n := len(curve)
	for i := 1; i < n-1; i++ {
		if curve[i-1] >= curve[i] {
			continue
		}
		// Walk plateau of equal values; a peak needs a strict drop after it.
		j := i
		for j < n-1 && curve[j+1] == curve[i] {
			j++
		}
		if j < n-1 && curve[j+1] < curve[i] {
			peaks = append(peaks, (i+j)/2)
			i = j
		}
	}

	if minDist <= 1 || len(peaks) < 2 {
		return peaks
	}

	// Enforce minimum separation, highest peaks first.
	order := make([]int, len(peaks))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return curve[peaks[order[a]]] > curve[peaks[order[b]]]
	})

	removed := make([]bool, len(peaks))
	for _, oi := range order {
		if removed[oi] {
			continue
		}
		for k := oi - 1; k >= 0 && peaks[oi]-peaks[k] < minDist; k-- {
			removed[k] = true
		}
		for k := oi + 1; k < len(peaks) && peaks[k]-peaks[oi] < minDist; k++ {
			removed[k] = true
		}
	}

	kept := peaks[:0]
	for i, p := range peaks {
		if !removed[i] {
			kept = append(kept, p)
		}
	}
	return kept
}
