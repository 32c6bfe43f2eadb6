package roi

import (
	"github.com/ericboehlke/Resistor-Reader/internal/raster"
)

// LargestComponent keeps only the largest 4-connected foreground region.
// Regions are labeled with a queue-driven flood fill over the row-major
// pixel grid; no recursion, so arbitrarily large regions are safe.
func LargestComponent(m *raster.Mask) *raster.Mask {
	w, h := m.W, m.H
	labels := make([]int32, w*h)

	var bestLabel int32
	bestSize := 0
	next := int32(1)
	queue := make([]int, 0, 256)

	for start := 0; start < w*h; start++ {
		if labels[start] != 0 || !m.At(start%w, start/w) {
			continue
		}

		label := next
		next++
		size := 0
		queue = queue[:0]
		queue = append(queue, start)
		labels[start] = label

		for len(queue) > 0 {
			idx := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			size++

			x, y := idx%w, idx/w
			if x > 0 && labels[idx-1] == 0 && m.At(x-1, y) {
				labels[idx-1] = label
				queue = append(queue, idx-1)
			}
			if x < w-1 && labels[idx+1] == 0 && m.At(x+1, y) {
				labels[idx+1] = label
				queue = append(queue, idx+1)
			}
			if y > 0 && labels[idx-w] == 0 && m.At(x, y-1) {
				labels[idx-w] = label
				queue = append(queue, idx-w)
			}
			if y < h-1 && labels[idx+w] == 0 && m.At(x, y+1) {
				labels[idx+w] = label
				queue = append(queue, idx+w)
			}
		}

		if size > bestSize {
			bestSize = size
			bestLabel = label
		}
	}

	out := raster.NewMask(w, h)
	if bestLabel == 0 {
		return out
	}
	for idx, l := range labels {
		if l == bestLabel {
			out.Set(idx%w, idx/w, true)
		}
	}
	return out
}
