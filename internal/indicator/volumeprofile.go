package indicator

import "structure-signalsv1/internal/model"

// VolumeProfileResult is a price-binned volume histogram over a lookback
// window with the Point of Control and 70% Value Area.
type VolumeProfileResult struct {
	POC         float64   `json:"poc"`             // bin-center price with max volume
	VAH         float64   `json:"value_area_high"` // upper edge of value area
	VAL         float64   `json:"value_area_low"`  // lower edge of value area
	BinVolumes  []float64 `json:"bin_volumes"`
	BinSize     float64   `json:"bin_size"`
	MinPrice    float64   `json:"min_price"`
	TotalVolume float64   `json:"total_volume"`
}

// VolumeProfile bins the trailing lookback window into bins price buckets.
// Each bar's volume is split EQUALLY across every bin its [low,high] range
// intersects, so the sum of bin volumes equals the sum of bar volumes
// (mass conservation, within floating-point tolerance).
// Returns false on an empty window, zero price range, or zero total volume.
func VolumeProfile(bars []model.Bar, lookback, bins int) (VolumeProfileResult, bool) {
	if len(bars) == 0 || bins <= 0 {
		return VolumeProfileResult{}, false
	}
	start := len(bars) - lookback
	if start < 0 {
		start = 0
	}
	window := bars[start:]

	minPrice := window[0].Low
	maxPrice := window[0].High
	for _, b := range window {
		if b.Low < minPrice {
			minPrice = b.Low
		}
		if b.High > maxPrice {
			maxPrice = b.High
		}
	}
	priceRange := maxPrice - minPrice
	if priceRange <= 0 {
		return VolumeProfileResult{}, false
	}
	binSize := priceRange / float64(bins)

	binVol := make([]float64, bins)
	total := 0.0
	for _, b := range window {
		lo := int((b.Low - minPrice) / binSize)
		hi := int((b.High - minPrice) / binSize)
		if lo < 0 {
			lo = 0
		}
		if hi >= bins {
			hi = bins - 1
		}
		share := b.Volume / float64(hi-lo+1)
		for i := lo; i <= hi; i++ {
			binVol[i] += share
		}
		total += b.Volume
	}
	if total <= 0 {
		return VolumeProfileResult{}, false
	}

	// Point of Control: bin with max accumulated volume.
	poc := 0
	for i, v := range binVol {
		if v > binVol[poc] {
			poc = i
		}
	}

	// Value Area: expand outward from POC, alternating toward whichever
	// neighboring bin holds more volume, until >= 70% of total is enclosed.
	target := total * 0.70
	vaVol := binVol[poc]
	vaHi, vaLo := poc, poc
	for vaVol < target && (vaHi < bins-1 || vaLo > 0) {
		nextHi, nextLo := 0.0, 0.0
		if vaHi < bins-1 {
			nextHi = binVol[vaHi+1]
		}
		if vaLo > 0 {
			nextLo = binVol[vaLo-1]
		}
		if nextHi > nextLo && vaHi < bins-1 {
			vaHi++
			vaVol += nextHi
		} else if vaLo > 0 {
			vaLo--
			vaVol += nextLo
		} else {
			vaHi++
			vaVol += nextHi
		}
	}

	return VolumeProfileResult{
		POC:         minPrice + (float64(poc)+0.5)*binSize,
		VAH:         minPrice + float64(vaHi+1)*binSize,
		VAL:         minPrice + float64(vaLo)*binSize,
		BinVolumes:  binVol,
		BinSize:     binSize,
		MinPrice:    minPrice,
		TotalVolume: total,
	}, true
}
