package manifest

import (
	"fmt"
	"maps"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// bodyAttributes evaluates the remaining attributes of a block into plain Go
// values. Attributes are evaluated without variables or functions.
func bodyAttributes(body hcl.Body) (map[string]any, error) {
	out := make(map[string]any)
	if body == nil {
		return out, nil
	}
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		v, err := fromCty(val)
		if err != nil {
			return nil, fmt.Errorf("attribute %q at %s: %w", name, attr.Range, err)
		}
		out[name] = v
	}
	return out, nil
}

// fromCty converts a primitive cty value to float64, string or bool.
func fromCty(val cty.Value) (any, error) {
	if val.IsNull() || !val.IsKnown() {
		return nil, fmt.Errorf("value must be known and not null")
	}
	switch val.Type() {
	case cty.Number:
		var f float64
		if err := gocty.FromCtyValue(val, &f); err != nil {
			return nil, err
		}
		return f, nil
	case cty.String:
		var s string
		if err := gocty.FromCtyValue(val, &s); err != nil {
			return nil, err
		}
		return s, nil
	case cty.Bool:
		return val.True(), nil
	default:
		return nil, fmt.Errorf("unsupported type %s", val.Type().FriendlyName())
	}
}

// noExtraAttributes reports attributes left over after schema decoding.
func noExtraAttributes(body hcl.Body) error {
	if body == nil {
		return nil
	}
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return diags
	}
	if len(attrs) == 0 {
		return nil
	}
	name := slices.Sorted(maps.Keys(attrs))[0]
	return fmt.Errorf("unsupported attribute %q at %s", name, attrs[name].Range)
}

// pos returns a printable source position for a block body.
func pos(body hcl.Body) string {
	if body == nil {
		return "<unknown>"
	}
	return body.MissingItemRange().String()
}
