// Package schema defines the structural model the rest of migrokit operates
// on: the typed object kinds a MariaDB/MySQL schema is made of, and the
// TableModel recovered from a single CREATE TABLE statement by pkg/ddl.
package schema

import "sort"

const (
	// KindTable identifies base tables (TABLE_TYPE = 'BASE TABLE').
	KindTable Kind = "tables"
	// KindView identifies views.
	KindView Kind = "views"
	// KindProcedure identifies stored procedures.
	KindProcedure Kind = "procedures"
	// KindFunction identifies stored functions.
	KindFunction Kind = "functions"
	// KindTrigger identifies triggers.
	KindTrigger Kind = "triggers"
	// KindEvent identifies scheduled events.
	KindEvent Kind = "events"
	// KindSequence identifies sequences (MariaDB >= 10.3 only).
	KindSequence Kind = "sequences"
)

// Kind enumerates the seven object kinds a Schema can contain.
type Kind string

// Kinds is the fixed iteration order the Report Generator and
// pkg/source.LoadLive use when walking all object kinds of a schema;
// pkg/migrator emits kinds in its own assemblyOrder.
var Kinds = []Kind{KindTable, KindView, KindProcedure, KindFunction, KindTrigger, KindEvent, KindSequence}

type (
	// Object is one named, verbatim-DDL member of a Schema.
	Object struct {
		Name string
		DDL  string
	}

	// ObjectSet is the enumeration of one Kind's objects within a Schema,
	// keyed by name for O(1) lookup during comparison.
	ObjectSet map[string]Object

	// Database is a named collection of ObjectSets, one per Kind.
	Database struct {
		Name    string
		Objects map[Kind]ObjectSet
	}
)

// NewDatabase returns an empty Database with an ObjectSet allocated for
// every Kind, so callers never need a nil check before indexing.
func NewDatabase(name string) *Database {
	db := &Database{Name: name, Objects: make(map[Kind]ObjectSet, len(Kinds))}
	for _, k := range Kinds {
		db.Objects[k] = make(ObjectSet)
	}
	return db
}

// Names returns the sorted object names in this set.
func (s ObjectSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
