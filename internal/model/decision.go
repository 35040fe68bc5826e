package model

// Decision is the outcome of the specificity check on one result set
type Decision struct {
	Supplement bool     `json:"supplement"` // True when any rule fired
	Signals    []Signal `json:"signals"`    // One signal per fired rule, in rule order
}

// Signal explains why a rule fired, with the inputs it used
type Signal struct {
	Type        SignalType             `json:"type"`
	Description string                 `json:"description"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

// SignalType names a specificity rule
type SignalType string

const (
	SignalNoResults       SignalType = "no_results"       // Rule 1
	SignalWeakFew         SignalType = "weak_few_results" // Rule 2
	SignalLongUnmatched   SignalType = "long_unmatched"   // Rule 3
	SignalSuffixWeak      SignalType = "suffix_weak"      // Rule 4
	SignalLessSpecific    SignalType = "less_specific"    // Rule 5
	SignalRegionUncovered SignalType = "region_uncovered" // Rule 6
)

// Types returns the signal types in order
func (d Decision) Types() []SignalType {
	out := make([]SignalType, len(d.Signals))
	for i, s := range d.Signals {
		out[i] = s.Type
	}
	return out
}
