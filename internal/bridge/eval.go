// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file evaluates the cfg conditions of declarations against the run's defines.

package bridge

import (
	"fmt"
	"maps"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// newEvalContext exposes defines as string attributes of the `var` object.
func newEvalContext(defines map[string]string) *hcl.EvalContext {
	vars := make(map[string]cty.Value, len(defines))
	for _, name := range slices.Sorted(maps.Keys(defines)) {
		vars[name] = cty.StringVal(defines[name])
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"var": cty.ObjectVal(vars),
		},
	}
}

// evalCfg evaluates an optional `cfg` attribute. A missing attribute
// enables the item.
func evalCfg(attr *hcl.Attribute, evalCtx *hcl.EvalContext) (bool, hcl.Diagnostics) {
	if attr == nil {
		return true, nil
	}
	val, diags := attr.Expr.Value(evalCtx)
	if diags.HasErrors() {
		return false, diags
	}

	val, err := convert.Convert(val, cty.Bool)
	switch {
	case err != nil:
		return false, cfgError(attr, fmt.Sprintf("The cfg condition must be a bool: %s.", err))
	case val.IsNull():
		return false, cfgError(attr, "The cfg condition must not be null.")
	case !val.IsKnown():
		return false, cfgError(attr, "The cfg condition must be known at generation time.")
	}
	return val.True(), nil
}

func cfgError(attr *hcl.Attribute, detail string) hcl.Diagnostics {
	return hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "Invalid cfg condition",
		Detail:   detail,
		Subject:  attr.Expr.Range().Ptr(),
	}}
}
