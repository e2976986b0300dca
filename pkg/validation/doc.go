// Package validation applies the rules collected from a schema tree to a
// submitted data map.
//
// Rules use the pipe-style vocabulary produced by schema.CollectValidation:
// required, nullable, string, numeric, integer, boolean, email, url, min:n,
// max:n, in:a,b, regex:/pattern/ and array. Keys containing "*" are expanded
// over every item of the list they address, so "items.*.qty" checks the qty
// of each item. Literal prefixes are prepended to string values before
// checking, which lets "example.com" pass a url rule when the field renders
// a fixed "https://" prefix.
package validation
