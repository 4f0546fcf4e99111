package ticker

import (
	"fmt"
	"strings"
)

const (
	ParamMarket       = "market"
	ParamInstruments  = "instruments"
	ParamApplyMapping = "apply_mapping"
	ParamGroups       = "groups"

	DefaultMarket = "cadli"
)

// RequiredParams must be present in every parameter set.
var RequiredParams = []string{ParamMarket, ParamInstruments}

// Params are the query parameters sent with each latest-tick request.
type Params map[string]string

// DefaultParams returns a fresh default parameter set for the given instruments.
func DefaultParams(instruments ...string) Params {
	return Params{
		ParamMarket:       DefaultMarket,
		ParamInstruments:  strings.Join(instruments, ","),
		ParamApplyMapping: "true",
		ParamGroups:       "VALUE",
	}
}

// Clone returns an independent copy.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Validate checks that every required key is present.
func (p Params) Validate() error {
	var missing []string
	for _, key := range RequiredParams {
		if _, ok := p[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return &InvalidParameterError{
			Kind:   InvalidParameterMissingKey,
			Detail: fmt.Sprintf("params must contain at least the following keys: %s (missing %s)", strings.Join(RequiredParams, ", "), strings.Join(missing, ", ")),
		}
	}
	return nil
}

// ParamsFromValue converts a loosely typed value, such as decoded JSON, into
// Params. Anything other than a string-keyed mapping of strings is rejected.
func ParamsFromValue(v any) (Params, error) {
	switch m := v.(type) {
	case Params:
		return m.Clone(), nil
	case map[string]string:
		return Params(m).Clone(), nil
	case map[string]any:
		out := make(Params, len(m))
		for k, raw := range m {
			s, ok := raw.(string)
			if !ok {
				return nil, &InvalidParameterError{
					Kind:   InvalidParameterType,
					Detail: fmt.Sprintf("param %q must be a string, got %T", k, raw),
				}
			}
			out[k] = s
		}
		return out, nil
	default:
		return nil, &InvalidParameterError{
			Kind:   InvalidParameterType,
			Detail: fmt.Sprintf("params must be a string-keyed mapping, got %T", v),
		}
	}
}

// InvalidParameterKind distinguishes a wrongly typed value from an incomplete one.
type InvalidParameterKind int

const (
	InvalidParameterType InvalidParameterKind = iota + 1
	InvalidParameterMissingKey
)

// InvalidParameterError is returned when request parameters are assigned.
type InvalidParameterError struct {
	Kind   InvalidParameterKind
	Detail string
}

func (e *InvalidParameterError) Error() string {
	return "invalid request parameters: " + e.Detail
}
