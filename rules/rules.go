// Package rules provides cross-field checks that run over the output of an
// object schema. Rules see the whole parsed map at once, so constraints that
// span fields (mutual exclusion, dependent presence, collection-level
// uniqueness) live here instead of in per-field schemas.
package rules

import (
	"fmt"

	shaper "github.com/shaper-go/shaper"
	"github.com/shaper-go/shaper/dsl"
)

// Rule inspects a parsed object and reports zero or more issues. Rules never
// mutate the value.
type Rule func(v map[string]any) shaper.Issues

// Apply wraps an object schema so that every rule runs after structural
// validation succeeds. Rule issues are aggregated across all rules.
func Apply(s *dsl.ObjectSchema, rs ...Rule) dsl.AnySchema {
	return s.Any().Transform(func(v any) (any, error) {
		m, ok := v.(map[string]any)
		if !ok {
			return v, nil
		}
		var iss shaper.Issues
		for _, r := range rs {
			if r == nil {
				continue
			}
			iss = shaper.AppendIssues(iss, r(m)...)
		}
		if len(iss) > 0 {
			return nil, iss
		}
		return m, nil
	})
}

// RequiredTogether reports an issue for each absent key when at least one of
// the keys is present.
func RequiredTogether(keys ...string) Rule {
	return func(v map[string]any) shaper.Issues {
		present := 0
		for _, k := range keys {
			if _, ok := v[k]; ok {
				present++
			}
		}
		if present == 0 || present == len(keys) {
			return nil
		}
		var iss shaper.Issues
		for _, k := range keys {
			if _, ok := v[k]; !ok {
				iss = shaper.AppendIssues(iss, shaper.Issue{
					Code:    shaper.CodeCustom,
					Path:    shaper.Path{}.Key(k),
					Message: fmt.Sprintf("required together with %v", keys),
					Params:  map[string]any{"group": keys},
				})
			}
		}
		return iss
	}
}

// MutuallyExclusive reports one issue when more than one of the keys is
// present.
func MutuallyExclusive(keys ...string) Rule {
	return func(v map[string]any) shaper.Issues {
		var found []string
		for _, k := range keys {
			if _, ok := v[k]; ok {
				found = append(found, k)
			}
		}
		if len(found) <= 1 {
			return nil
		}
		return shaper.Issues{{
			Code:    shaper.CodeCustom,
			Message: fmt.Sprintf("keys %v are mutually exclusive", found),
			Params:  map[string]any{"keys": found},
		}}
	}
}

// AtLeastOne requires the array under key to have at least one element. A
// missing or non-array value is not this rule's concern and passes.
func AtLeastOne(key string) Rule {
	return func(v map[string]any) shaper.Issues {
		arr, ok := v[key].([]any)
		if !ok || len(arr) > 0 {
			return nil
		}
		return shaper.Issues{{
			Code:    shaper.CodeTooSmall,
			Path:    shaper.Path{}.Key(key),
			Message: "at least 1 item is required",
			Params:  map[string]any{"min": 1, "got": 0},
		}}
	}
}

// UniqueBy requires elements of the array under key to carry distinct values
// at elemKey. Duplicate elements are reported individually at their index.
// Keys should resolve to a single comparable type; mixed-type keys that
// render identically are treated as duplicates.
func UniqueBy(key, elemKey string) Rule {
	return func(v map[string]any) shaper.Issues {
		arr, ok := v[key].([]any)
		if !ok {
			return nil
		}
		seen := make(map[string]int, len(arr))
		var iss shaper.Issues
		for i, e := range arr {
			em, ok := e.(map[string]any)
			if !ok {
				continue
			}
			kv, ok := em[elemKey]
			if !ok {
				continue
			}
			rendered := fmt.Sprint(kv)
			if first, dup := seen[rendered]; dup {
				iss = shaper.AppendIssues(iss, shaper.Issue{
					Code:    shaper.CodeInvalidValue,
					Path:    shaper.Path{}.Key(key).Index(i).Key(elemKey),
					Message: fmt.Sprintf("duplicate value %v (first at index %d)", kv, first),
					Params:  map[string]any{"value": kv, "first_index": first},
				})
				continue
			}
			seen[rendered] = i
		}
		return iss
	}
}

// When gates a rule on a top-level field equalling want; the rule runs only
// when the value matches.
func When(key string, want any, r Rule) Rule {
	return func(v map[string]any) shaper.Issues {
		got, ok := v[key]
		if !ok || fmt.Sprint(got) != fmt.Sprint(want) {
			return nil
		}
		return r(v)
	}
}
