package afm

// Zone classifies a predicted probability relative to the Zone of
// Proximal Development.
type Zone int

const (
	TooHard Zone = iota // p < 0.4
	InZPD               // 0.4 <= p <= 0.8
	TooEasy             // p > 0.8
)

// ZPD band edges, inclusive on both sides.
const (
	ZPDLower = 0.4
	ZPDUpper = 0.8
)

// Classify returns the zone for probability p.
func Classify(p float64) Zone {
	switch {
	case p < ZPDLower:
		return TooHard
	case p > ZPDUpper:
		return TooEasy
	default:
		return InZPD
	}
}

// Label returns the badge text shown next to the probability bar.
func (z Zone) Label() string {
	switch z {
	case TooHard:
		return "TOO HARD"
	case InZPD:
		return "IN ZPD"
	case TooEasy:
		return "TOO EASY"
	default:
		return "UNKNOWN"
	}
}

// String returns a machine-friendly name.
func (z Zone) String() string {
	switch z {
	case TooHard:
		return "too_hard"
	case InZPD:
		return "in_zpd"
	case TooEasy:
		return "too_easy"
	default:
		return "unknown"
	}
}

// MarshalText encodes the zone by name so JSON snapshots stay readable.
func (z Zone) MarshalText() ([]byte, error) {
	return []byte(z.String()), nil
}
