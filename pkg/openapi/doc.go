// Package openapi turns OpenAPI 3 request bodies into schema definitions.
//
// Each operation with a JSON (or form) request body becomes one
// loader.Definition named after its operationId. Object properties map to
// fields, nested objects to sections and arrays of objects to repeaters;
// required lists, enums, formats and length/range constraints become field
// flags and validation rules.
package openapi
