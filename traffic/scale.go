package traffic

import "math"

const (
	unfilteredMaxRadius = 15.0
	filteredMinRadius   = 1.0
	filteredBaseRadius  = 8.0
	filteredSpread      = 12.0
	minScaleFactor      = 0.3
	maxScaleFactor      = 1.0
)

// RadiusScale maps total traffic to a marker radius with square-root
// interpolation over [0, DomainMax] -> [RangeMin, RangeMax]
type RadiusScale struct {
	DomainMax   float64 `json:"domain_max"`
	RangeMin    float64 `json:"range_min"`
	RangeMax    float64 `json:"range_max"`
	ScaleFactor float64 `json:"scale_factor"`
}

// NewRadiusScale builds the scale for one aggregation pass.
// maxTraffic is the busiest station of the pass, originalMax the busiest
// station with no filter. Unfiltered passes use the fixed range [0, 15];
// filtered passes shrink the top of the range to 8 + factor*12 where factor
// is maxTraffic/originalMax clamped to [0.3, 1].
func NewRadiusScale(maxTraffic, originalMax int, filtered bool) RadiusScale {
	domainMax := float64(maxTraffic)
	if domainMax <= 0 {
		domainMax = 1
	}
	if !filtered {
		return RadiusScale{DomainMax: domainMax, RangeMin: 0, RangeMax: unfilteredMaxRadius, ScaleFactor: 1}
	}
	orig := float64(originalMax)
	if orig <= 0 {
		orig = 1
	}
	factor := math.Min(math.Max(float64(maxTraffic)/orig, minScaleFactor), maxScaleFactor)
	return RadiusScale{
		DomainMax:   domainMax,
		RangeMin:    filteredMinRadius,
		RangeMax:    filteredBaseRadius + factor*filteredSpread,
		ScaleFactor: factor,
	}
}

// Domain returns [0, DomainMax]
func (s RadiusScale) Domain() [2]float64 { return [2]float64{0, s.DomainMax} }

// Range returns [RangeMin, RangeMax]
func (s RadiusScale) Range() [2]float64 { return [2]float64{s.RangeMin, s.RangeMax} }

// Radius returns the marker radius for a traffic value
func (s RadiusScale) Radius(traffic int) float64 {
	if traffic <= 0 || s.DomainMax <= 0 {
		return s.RangeMin
	}
	t := math.Sqrt(float64(traffic)) / math.Sqrt(s.DomainMax)
	return s.RangeMin + t*(s.RangeMax-s.RangeMin)
}
