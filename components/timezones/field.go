package timezones

import (
	"time"

	"github.com/goliatone/go-formschema/pkg/schema"
	"github.com/goliatone/go-formschema/pkg/validation"
)

// RuleName is the validation rule added by NewSelect.
const RuleName = "timezone"

// NewSelect returns a select prefilled with every embedded zone and carrying
// the timezone rule.
func NewSelect(name string) (*schema.Field, error) {
	zones, err := DefaultZones()
	if err != nil {
		return nil, err
	}
	return schema.NewSelect(name).Options(ToOptions(zones)...).Rules(RuleName), nil
}

// Rule registers the timezone rule on a validator. A value passes when the
// runtime can load it as a location; "Local" is rejected.
func Rule() validation.Option {
	return validation.WithRule(RuleName, func(in validation.Input) bool {
		zone, ok := in.Value.(string)
		if !ok || zone == "" || zone == "Local" {
			return false
		}
		_, err := time.LoadLocation(zone)
		return err == nil
	}, "The :attribute must be a valid timezone.")
}
