// Package migrator implements the Migration Assembler (spec §4.5): it
// walks every object kind of two schema.Databases, delegates per-table
// comparison and planning to pkg/diff/pkg/planner/pkg/rollback, and
// assembles the results into one bracketed forward script and one
// symmetric rollback script.
//
// Grounded directly on the teacher's pkg/migrator package: the overall
// shape (compare every object kind, order operations, build Up/Down
// strings incrementally) follows generator.go's GenerateMigration,
// generalized from ClickHouse's four object kinds to the seven kinds
// spec.md names. The teacher's revision/checkpoint/sumfile machinery —
// which tracks which migrations have already run against a target
// ClickHouse cluster — is not carried over here; that concern belongs
// to pkg/history's SQLite-backed recorder in this system, not to the
// assembler (see DESIGN.md).
package migrator
