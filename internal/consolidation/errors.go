package consolidation

import "fmt"

// DomainError reports an input outside the range where a closed-form
// consolidation formula is defined.
type DomainError struct {
	Func  string  // formula name, e.g. "settlement"
	Param string  // offending parameter or derived quantity
	Value float64 // the rejected value
	Rule  string  // the constraint that was violated
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s = %g violates %s", e.Func, e.Param, e.Value, e.Rule)
}

func domainErr(fn, param string, value float64, rule string) error {
	return &DomainError{Func: fn, Param: param, Value: value, Rule: rule}
}
