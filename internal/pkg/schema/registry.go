package schema

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// UnknownEntityError is returned by Lookup when no rule sets exist for the entity.
type UnknownEntityError struct {
	Entity string
}

func (e *UnknownEntityError) Error() string {
	return fmt.Sprintf("No schema for table '%s'", e.Entity)
}

// UnsupportedOperationError is returned by Lookup when the entity exists but
// has no rule set for the operation.
type UnsupportedOperationError struct {
	Entity    string
	Operation Operation
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("No schema for %s on table '%s'", e.Operation, e.Entity)
}

// IsNotFound reports whether err is one of the lookup failures.
func IsNotFound(err error) bool {
	var unknown *UnknownEntityError
	var unsupported *UnsupportedOperationError
	return errors.As(err, &unknown) || errors.As(err, &unsupported)
}

// Definition is the authored INSERT rule set of an entity.
type Definition struct {
	Entity Entity
	Insert RuleSet
}

// Registry resolves rule sets by entity and operation. It is immutable once
// built and safe for concurrent use.
type Registry struct {
	sets map[Entity]map[Operation]RuleSet
}

// NewRegistry builds a registry from definitions. The UPDATE rule set of each
// entity is derived here, once. A later definition for the same entity
// replaces an earlier one.
func NewRegistry(defs ...Definition) *Registry {
	sets := make(map[Entity]map[Operation]RuleSet, len(defs))
	for _, def := range defs {
		sets[def.Entity] = map[Operation]RuleSet{
			OperationInsert: def.Insert,
			OperationUpdate: def.Insert.Partial(),
		}
	}
	return &Registry{sets: sets}
}

// Lookup returns the rule set for entity and op.
func (r *Registry) Lookup(entity string, op Operation) (RuleSet, error) {
	byOp, ok := r.sets[Entity(entity)]
	if !ok {
		return RuleSet{}, &UnknownEntityError{Entity: entity}
	}

	set, ok := byOp[op]
	if !ok {
		return RuleSet{}, &UnsupportedOperationError{Entity: entity, Operation: op}
	}

	return set, nil
}

// Entities returns the registered entity names in sorted order.
func (r *Registry) Entities() []Entity {
	out := make([]Entity, 0, len(r.sets))
	for e := range r.sets {
		out = append(out, e)
	}
	slices.Sort(out)
	return out
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	return NewRegistry(
		Definition{Entity: EntityDepartments, Insert: InsertDepartmentRules()},
		Definition{Entity: EntityEmployees, Insert: InsertEmployeeRules()},
	)
})

// Default returns the process-wide registry with the departments and
// employees rule sets.
func Default() *Registry {
	return defaultRegistry()
}
