// Package diff implements the Comparator (spec §4.2): per-object-kind set
// differences, and for tables in both schemas, a typed list of structural
// Difference records describing exactly the change needed to turn the
// destination definition into the source definition.
package diff

import (
	"sort"

	"github.com/pseudomuto/migrokit/pkg/schema"
)

// DiffKind enumerates the ten structural Difference variants from spec
// §3. Difference is a tagged union implemented as an interface with a
// Kind() method instead of a string tag, so pkg/planner and pkg/rollback
// can dispatch exhaustively with a type switch (spec §9's redesign note).
type DiffKind string

const (
	KindAddColumn         DiffKind = "ADD_COLUMN"
	KindRemoveColumn      DiffKind = "REMOVE_COLUMN"
	KindModifyColumn      DiffKind = "MODIFY_COLUMN"
	KindAddIndex          DiffKind = "ADD_INDEX"
	KindRemoveIndex       DiffKind = "REMOVE_INDEX"
	KindModifyIndex       DiffKind = "MODIFY_INDEX"
	KindAddConstraint     DiffKind = "ADD_CONSTRAINT"
	KindRemoveConstraint  DiffKind = "REMOVE_CONSTRAINT"
	KindModifyConstraint  DiffKind = "MODIFY_CONSTRAINT"
	KindTableOptionModify DiffKind = "TABLE_OPTION_MODIFIED"
)

// Difference is one structural change needed to turn the destination
// table into the source table.
type Difference interface {
	Kind() DiffKind
}

type (
	AddColumnDiff struct {
		ColumnName       string
		ColumnDefinition string
		Column           schema.Column
	}

	RemoveColumnDiff struct {
		ColumnName       string
		ColumnDefinition string
		Column           schema.Column
	}

	ModifyColumnDiff struct {
		ColumnName         string
		OriginalDefinition string
		NewDefinition      string
		Original           schema.Column
		New                schema.Column
	}

	AddIndexDiff struct {
		IndexName       string
		IndexDefinition string
		Index           schema.Index
	}

	RemoveIndexDiff struct {
		IndexName       string
		IndexDefinition string
		Index           schema.Index
	}

	ModifyIndexDiff struct {
		IndexName          string
		OriginalDefinition string
		NewDefinition      string
		Original           schema.Index
		New                schema.Index
	}

	AddConstraintDiff struct {
		ConstraintName       string
		ConstraintDefinition string
		ForeignKey           schema.ForeignKey
	}

	RemoveConstraintDiff struct {
		ConstraintName       string
		ConstraintDefinition string
		ForeignKey           schema.ForeignKey
	}

	ModifyConstraintDiff struct {
		ConstraintName     string
		OriginalDefinition string
		NewDefinition      string
		Original           schema.ForeignKey
		New                schema.ForeignKey
	}

	// TableOption names an option in TableOptionDiff.
	TableOption string

	TableOptionDiff struct {
		Option        TableOption
		OriginalValue string
		NewValue      string
	}
)

const (
	OptionComment TableOption = "comment"
	OptionEngine  TableOption = "engine"
	OptionCharset TableOption = "charset"
	OptionCollate TableOption = "collate"
)

func (AddColumnDiff) Kind() DiffKind        { return KindAddColumn }
func (RemoveColumnDiff) Kind() DiffKind     { return KindRemoveColumn }
func (ModifyColumnDiff) Kind() DiffKind     { return KindModifyColumn }
func (AddIndexDiff) Kind() DiffKind         { return KindAddIndex }
func (RemoveIndexDiff) Kind() DiffKind      { return KindRemoveIndex }
func (ModifyIndexDiff) Kind() DiffKind      { return KindModifyIndex }
func (AddConstraintDiff) Kind() DiffKind    { return KindAddConstraint }
func (RemoveConstraintDiff) Kind() DiffKind { return KindRemoveConstraint }
func (ModifyConstraintDiff) Kind() DiffKind { return KindModifyConstraint }
func (TableOptionDiff) Kind() DiffKind      { return KindTableOptionModify }

// ObjectDiff is the result of CompareObjects for one schema.Kind: the
// sorted name sets onlyInSource, onlyInDest, and inBoth, per spec §4.2.
type ObjectDiff struct {
	OnlyInSource []string
	OnlyInDest   []string
	InBoth       []string
}

// CompareObjects yields the set difference between two ObjectSets of the
// same Kind, with every slice sorted lexicographically for deterministic
// output (spec §5).
func CompareObjects(source, dest schema.ObjectSet) ObjectDiff {
	var result ObjectDiff

	for _, name := range source.Names() {
		if _, ok := dest[name]; ok {
			result.InBoth = append(result.InBoth, name)
		} else {
			result.OnlyInSource = append(result.OnlyInSource, name)
		}
	}
	for _, name := range dest.Names() {
		if _, ok := source[name]; !ok {
			result.OnlyInDest = append(result.OnlyInDest, name)
		}
	}

	sort.Strings(result.OnlyInSource)
	sort.Strings(result.OnlyInDest)
	sort.Strings(result.InBoth)

	return result
}
