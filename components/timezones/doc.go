// Package timezones offers IANA timezones as select options: a prefilled
// select field, a "timezone" validation rule and a search handler that
// serves options to searchable selects.
//
// The zone list is embedded from data/iana_timezones.txt.
package timezones
