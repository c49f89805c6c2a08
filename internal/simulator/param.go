package simulator

import "fmt"

// Param names a simulator parameter that can be set or highlighted.
type Param string

const (
	ParamTheta    Param = "theta"
	ParamBeta     Param = "beta"
	ParamGamma    Param = "gamma"
	ParamPractice Param = "practice"
)

// Params returns the settable parameters in display order.
func Params() []Param {
	return []Param{ParamTheta, ParamBeta, ParamGamma, ParamPractice}
}

// ParseParam converts a name to a Param.
func ParseParam(name string) (Param, error) {
	switch p := Param(name); p {
	case ParamTheta, ParamBeta, ParamGamma, ParamPractice:
		return p, nil
	}
	return "", fmt.Errorf("unknown parameter %q", name)
}

// Range is the slider range and step for a parameter.
type Range struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
}

var ranges = map[Param]Range{
	ParamTheta:    {Min: -3, Max: 3, Step: 0.1},
	ParamBeta:     {Min: -2, Max: 2, Step: 0.1},
	ParamGamma:    {Min: 0, Max: 1, Step: 0.05},
	ParamPractice: {Min: 0, Max: 20, Step: 1},
}

// Range returns the slider range for p.
func (p Param) Range() Range {
	return ranges[p]
}

// Symbol returns the Greek letter (or T) used in formulas.
func (p Param) Symbol() string {
	switch p {
	case ParamTheta:
		return "θ"
	case ParamBeta:
		return "β"
	case ParamGamma:
		return "γ"
	case ParamPractice:
		return "T"
	}
	return string(p)
}

// Label returns the long display name.
func (p Param) Label() string {
	switch p {
	case ParamTheta:
		return "Student Ability"
	case ParamBeta:
		return "Task Difficulty"
	case ParamGamma:
		return "Learning Rate"
	case ParamPractice:
		return "Practice Opportunities"
	}
	return string(p)
}

// Precision is the number of decimals a parameter is displayed with.
func (p Param) Precision() int {
	switch p {
	case ParamGamma:
		return 2
	case ParamPractice:
		return 0
	}
	return 1
}
