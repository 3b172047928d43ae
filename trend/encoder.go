package trend

// BandSample is a boolean reading drawn as a thin bar in its channel's lane.
type BandSample struct {
	Low   float64
	High  float64
	Color Color
}

// DigitalEncoder stacks digital channels as bands, one lane per channel.
type DigitalEncoder struct {
	// SizeOffset is subtracted from the top of the lane to get the bottom of the band
	SizeOffset float64
}

// Encode returns the band for a reading of a digital channel. A high signal
// gets the channel color, a low one is transparent so it renders as a gap.
func (d DigitalEncoder) Encode(ch *Channel, value bool) BandSample {
	high := float64(ch.Lane + 1)
	band := BandSample{
		Low:   high - d.SizeOffset,
		High:  high,
		Color: Transparent,
	}
	if value {
		band.Color = ch.Color
	}
	return band
}

// Point places the band at the given ordinal.
func (s BandSample) Point(x float64, time string) Point {
	return Point{X: x, Time: time, Low: s.Low, High: s.High, Band: true, Color: s.Color}
}
