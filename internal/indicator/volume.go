package indicator

// VolumeContext relates the latest bar's volume to the whole fetched period:
// average is the arithmetic mean over the entire series (not a rolling
// window), ratio = current / average, nil when the average is zero.
type VolumeContext struct {
	Current float64  `json:"current"`
	Average float64  `json:"average"`
	Ratio   *float64 `json:"ratio"`
}

// Volume computes the volume context for the series.
func Volume(volumes []float64) VolumeContext {
	if len(volumes) == 0 {
		return VolumeContext{}
	}
	sum := 0.0
	for _, v := range volumes {
		sum += v
	}
	avg := sum / float64(len(volumes))
	vc := VolumeContext{
		Current: volumes[len(volumes)-1],
		Average: avg,
	}
	if avg != 0 {
		vc.Ratio = finitePtr(vc.Current / avg)
	}
	return vc
}
