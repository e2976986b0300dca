// Package jsonschema imports standalone JSON Schema documents as schema
// definitions. Local $ref pointers are inlined and allOf object branches are
// merged before the properties go through the same conversion as OpenAPI
// request bodies.
package jsonschema
