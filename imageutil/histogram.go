package imageutil

// Histogram holds 256-bin counts per channel plus intensity.
type Histogram struct {
	Red, Green, Blue, Intensity [256]int
}

// ComputeHistogram counts channel values over every pixel of img.
// Intensity uses the same rounded mean as ComponentIntensity.
func ComputeHistogram(img *Buffer) Histogram {
	var h Histogram
	for _, p := range img.pix {
		h.Red[p.R]++
		h.Green[p.G]++
		h.Blue[p.B]++
		h.Intensity[intensity(p)]++
	}
	return h
}

// Max returns the largest count in any bin of any channel.
func (h *Histogram) Max() int {
	peak := 0
	for _, bins := range h.Channels() {
		for _, n := range bins {
			peak = max(peak, n)
		}
	}
	return peak
}

// Channels returns the four series in plotting order: red, green, blue,
// intensity.
func (h *Histogram) Channels() [4]*[256]int {
	return [4]*[256]int{&h.Red, &h.Green, &h.Blue, &h.Intensity}
}
