// Package safety implements the Safety Advisor contract (spec §6): a
// rule-based classifier that assigns a Risk level to individual planned
// operations. It is advisory only — pkg/planner and pkg/rollback attach
// warnings at emission time, but never refuse to emit a statement based
// on them.
//
// Grounded on original_source/data_loss_analyzer.py's risk catalog
// (DROP TABLE, DROP COLUMN, MODIFY COLUMN size/type narrowing, ADD
// UNIQUE/CHECK, DROP PRIMARY KEY), re-expressed as a rule-based Go
// Advisor operating on a parsed Operation rather than regex over
// rendered SQL text.
package safety

import "strings"

// Risk is one of the four levels a Warning can carry.
type Risk string

const (
	RiskLow      Risk = "LOW"
	RiskMedium   Risk = "MEDIUM"
	RiskHigh     Risk = "HIGH"
	RiskCritical Risk = "CRITICAL"
)

// riskOrder ranks Risk for sorting, CRITICAL first.
var riskOrder = map[Risk]int{
	RiskCritical: 0,
	RiskHigh:     1,
	RiskMedium:   2,
	RiskLow:      3,
}

// Less reports whether r sorts before other (more severe first).
func (r Risk) Less(other Risk) bool {
	return riskOrder[r] < riskOrder[other]
}

// Operation is one planned statement, described structurally rather
// than as rendered SQL, so Advisor implementations never need to
// re-parse a string to reason about it.
type Operation struct {
	Type      string // e.g. "DROP_COLUMN", "MODIFY_COLUMN", "ADD_CONSTRAINT"
	TableName string
	SQL       string
	Metadata  map[string]string
}

// Warning is advisory output from an Advisor: never blocks generation.
type Warning struct {
	Risk           Risk
	Description    string
	Recommendation string
}

// Advisor assesses one planned Operation and returns zero or more
// Warnings.
type Advisor interface {
	Assess(op Operation) []Warning
}

// RuleAdvisor is the default Advisor, grounded on
// original_source/data_loss_analyzer.py's fixed rule catalog.
type RuleAdvisor struct{}

// NewRuleAdvisor returns the default rule-based Advisor.
func NewRuleAdvisor() *RuleAdvisor {
	return &RuleAdvisor{}
}

// narrowingConversions mirrors data_loss_analyzer.py's risky_conversions
// table: (fromFamily, toFamily) -> Risk for MODIFY_COLUMN operations
// whose Metadata carries "from_type"/"to_type".
var narrowingConversions = map[[2]string]Risk{
	{"VARCHAR", "CHAR"}:    RiskMedium,
	{"TEXT", "VARCHAR"}:    RiskHigh,
	{"LONGTEXT", "TEXT"}:   RiskHigh,
	{"DECIMAL", "INT"}:     RiskHigh,
	{"DOUBLE", "FLOAT"}:    RiskMedium,
	{"DATETIME", "DATE"}:   RiskHigh,
	{"TIMESTAMP", "DATE"}:  RiskHigh,
	{"JSON", "TEXT"}:       RiskLow,
	{"BLOB", "VARBINARY"}:  RiskMedium,
}

func (a *RuleAdvisor) Assess(op Operation) []Warning {
	switch op.Type {
	case "DROP_TABLE":
		return []Warning{{
			Risk:           RiskCritical,
			Description:    "table " + op.TableName + " will be completely removed",
			Recommendation: "export the table's data before running this migration, or exclude this operation",
		}}
	case "DROP_COLUMN":
		return []Warning{{
			Risk:           RiskCritical,
			Description:    "column " + op.Metadata["column"] + " on " + op.TableName + " will be dropped",
			Recommendation: "export the column's data before running this migration, or exclude this operation",
		}}
	case "DROP_INDEX":
		return []Warning{{
			Risk:           RiskLow,
			Description:    "index " + op.Metadata["index"] + " on " + op.TableName + " will be removed",
			Recommendation: "monitor query performance after the migration",
		}}
	case "DROP_PRIMARY_KEY":
		return []Warning{{
			Risk:           RiskMedium,
			Description:    "primary key on " + op.TableName + " will be removed",
			Recommendation: "confirm this is intentional; replication and uniqueness guarantees are affected",
		}}
	case "MODIFY_COLUMN":
		return a.assessModifyColumn(op)
	case "ADD_CONSTRAINT":
		return a.assessAddConstraint(op)
	case "GENERATED_COLUMN_REWRITE":
		return []Warning{{
			Risk:           RiskHigh,
			Description:    "generated column " + op.Metadata["column"] + " on " + op.TableName + " references a column being dropped",
			Recommendation: "supply a replacement expression; migrokit will not silently rewrite the generated expression",
		}}
	default:
		return nil
	}
}

// typeFamily strips a type's length/precision suffix and any unsigned/
// zerofill qualifiers, uppercasing what's left, so "varchar(255)" and
// "VARCHAR" both key narrowingConversions the same way pkg/ddl's
// Column.DataType ("varchar(255)", per dataTypeRe) actually populates it.
func typeFamily(dataType string) string {
	family := dataType
	if idx := strings.IndexByte(family, '('); idx >= 0 {
		family = family[:idx]
	}
	family = strings.TrimSpace(family)
	if idx := strings.IndexByte(family, ' '); idx >= 0 {
		family = family[:idx]
	}
	return strings.ToUpper(family)
}

func (a *RuleAdvisor) assessModifyColumn(op Operation) []Warning {
	var warnings []Warning

	from := typeFamily(op.Metadata["from_type"])
	to := typeFamily(op.Metadata["to_type"])
	if risk, ok := narrowingConversions[[2]string{from, to}]; ok {
		warnings = append(warnings, Warning{
			Risk:           risk,
			Description:    "column " + op.Metadata["column"] + " on " + op.TableName + " narrows from " + from + " to " + to,
			Recommendation: "verify existing data fits the new type before running this migration",
		})
	}

	if op.Metadata["adds_not_null"] == "true" {
		warnings = append(warnings, Warning{
			Risk:           RiskHigh,
			Description:    "column " + op.Metadata["column"] + " on " + op.TableName + " becomes NOT NULL",
			Recommendation: "update existing NULL values or supply a DEFAULT before running this migration",
		})
	}

	return warnings
}

func (a *RuleAdvisor) assessAddConstraint(op Operation) []Warning {
	switch op.Metadata["constraint_kind"] {
	case "UNIQUE":
		return []Warning{{
			Risk:           RiskMedium,
			Description:    "adding a UNIQUE constraint to " + op.TableName,
			Recommendation: "remove duplicate values before running this migration",
		}}
	case "CHECK":
		return []Warning{{
			Risk:           RiskMedium,
			Description:    "adding a CHECK constraint to " + op.TableName,
			Recommendation: "verify existing rows satisfy the constraint before running this migration",
		}}
	default:
		return nil
	}
}
