// Package validator checks form input and request structs.
//
// ValidateInput applies the rule sets of package schema to raw field maps
// submitted by browser forms and returns a Result the presentation layer can
// render directly. Struct validation for request parameters goes through the
// Validator interface, backed by go-playground/validator v10.
package validator
