// Package openapi derives form definitions from OpenAPI request bodies. Each
// operation with a JSON object body becomes a schema.Definition whose fields
// follow the body properties, with required, minLength, maxLength and pattern
// mapped onto rules. Presentation details come from the "x-formbind" schema
// extension.
package openapi
