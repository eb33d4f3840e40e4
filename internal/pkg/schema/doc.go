// Package schema holds the field rules used to check form input before it is
// sent to the REST backend.
//
// A Registry maps an entity name and an operation kind to an immutable RuleSet.
// Only the INSERT rule set of an entity is authored; the UPDATE rule set is the
// same rules with every field made optional, derived once when the entity is
// registered.
package schema
