package traffic

// FlowClass quantizes the share of a station's traffic that departs
type FlowClass float64

const (
	ArrivalHeavy   FlowClass = 0
	Balanced       FlowClass = 0.5
	DepartureHeavy FlowClass = 1
)

// Flow classifies departures/total into thirds of [0, 1].
// A station with no traffic is Balanced.
func Flow(departures, total int) FlowClass {
	if total <= 0 {
		return Balanced
	}
	switch {
	case 3*departures < total:
		return ArrivalHeavy
	case 3*departures < 2*total:
		return Balanced
	default:
		return DepartureHeavy
	}
}

func (c FlowClass) String() string {
	switch c {
	case ArrivalHeavy:
		return "arrivals"
	case DepartureHeavy:
		return "departures"
	default:
		return "balanced"
	}
}
