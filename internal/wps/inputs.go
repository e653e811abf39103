// SPDX-License-Identifier: MPL-2.0

package wps

import (
	"fmt"

	"wpsctl/pkg/process"
)

// BuildInputs converts collected option values into the ordered input pairs
// of an execution request. Parameters are visited in declaration order, so
// two calls over the same values yield the same sequence.
//
// Absent values produce no pair: an optional parameter the user never set
// stays unset on the service side rather than being defaulted here. Complex
// values pass through without string coercion; everything else is rendered
// to its textual form. A present boolean false renders as "false": it is a
// set value, not an absent one.
func BuildInputs(params []process.Parameter, values map[string]any) []InputPair {
	pairs := make([]InputPair, 0, len(values))

	for _, p := range params {
		v, ok := values[p.Name]
		if !ok || v == nil {
			continue
		}

		if cd, isComplex := v.(*ComplexData); isComplex {
			pairs = append(pairs, InputPair{Name: p.Name, Data: cd})
			continue
		}

		// Multi-valued parameters contribute one pair per set value.
		if vals, isMulti := v.([]string); isMulti {
			for _, val := range vals {
				if val == "" {
					continue
				}
				pairs = append(pairs, InputPair{Name: p.Name, Data: val})
			}
			continue
		}

		text := fmt.Sprint(v)
		if text == "" {
			continue
		}
		pairs = append(pairs, InputPair{Name: p.Name, Data: text})
	}

	return pairs
}
