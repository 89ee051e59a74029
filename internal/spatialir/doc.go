// Package spatialir provides the predicate intermediate representation (IR)
// consumed by the Teradata spatial SQL translator.
//
// ARCHITECTURE:
//
// The IR sits between an upstream filter builder and the SQL backend:
//
//	[filter builder] → [spatial IR] → [spatialsql translator] → Teradata SQL
//
// Building the IR from a user-facing filter language is the caller's job.
// This package only defines the node types, the literal evaluation rules, and
// structural validation.
//
// SEALED INTERFACES:
//
// Predicate is a sealed interface using the marker method pattern. Only types
// in this package implement it, so backends can switch exhaustively:
//
//	switch n := p.(type) {
//	case Comparison:
//	case DistanceBuffer:
//	case And, Or, Not:
//	}
//
// OPERAND ORDER:
//
// Every spatial node records whether the original expression had the
// literal first and the property second (Swapped). The asymmetric relations
// Within and Contains depend on it; the distance kinds flip between "within"
// and "beyond" forms on it.
package spatialir
