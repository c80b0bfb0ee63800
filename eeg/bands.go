package eeg

// Band is a named EEG frequency range.
type Band struct {
	Name string
	LoHz float64
	HiHz float64
}

// Canonical band edges in Hz.
var (
	Delta = Band{Name: "delta", LoHz: 0.5, HiHz: 4}
	Theta = Band{Name: "theta", LoHz: 4, HiHz: 8}
	Alpha = Band{Name: "alpha", LoHz: 8, HiHz: 12}
	Beta  = Band{Name: "beta", LoHz: 12, HiHz: 30}
	Gamma = Band{Name: "gamma", LoHz: 30, HiHz: 45}
)

// Bands returns the five canonical bands in ascending frequency order.
func Bands() []Band {
	return []Band{Delta, Theta, Alpha, Beta, Gamma}
}

// BandPowers holds per-band power, either raw (signal units squared) or
// normalized to percent of the band sum.
type BandPowers struct {
	Delta float64
	Theta float64
	Alpha float64
	Beta  float64
	Gamma float64
}

// Sum returns the total of the five band powers.
func (b BandPowers) Sum() float64 {
	return b.Delta + b.Theta + b.Alpha + b.Beta + b.Gamma
}

// Normalized returns each band as a percentage of the band sum. All five
// are zero when the sum is zero; otherwise they sum to 100 up to rounding.
func (b BandPowers) Normalized() BandPowers {
	sum := b.Sum()
	if sum == 0 {
		return BandPowers{}
	}

	return BandPowers{
		Delta: b.Delta / sum * 100,
		Theta: b.Theta / sum * 100,
		Alpha: b.Alpha / sum * 100,
		Beta:  b.Beta / sum * 100,
		Gamma: b.Gamma / sum * 100,
	}
}
