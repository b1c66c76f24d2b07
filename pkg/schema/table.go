package schema

// Default table options applied when a CREATE TABLE statement omits them.
const (
	DefaultEngine    = "InnoDB"
	DefaultCharset   = "utf8mb4"
	DefaultCollation = "utf8mb4_general_ci"
)

type (
	// TableModel is the structural representation of one table recovered
	// from a CREATE TABLE statement by pkg/ddl.ParseCreateTable. It is
	// immutable once produced: the Parser creates it from one DDL string
	// and nothing in migrokit mutates it afterward.
	TableModel struct {
		Name        string
		Columns     []Column
		Indexes     map[string]Index
		ForeignKeys map[string]ForeignKey
		Options     TableOptions
	}

	// Column is one column definition. Equality of two columns is the
	// tuple (DataType, Nullable, Default, AutoIncrement, Charset,
	// Collation) — Comment does not participate in equality, matching
	// the normalization rule in pkg/diff that treats comments as
	// non-structural.
	Column struct {
		Name          string
		DataType      string
		Nullable      bool
		Default       string
		HasDefault    bool
		AutoIncrement bool
		Charset       string
		Collation     string
		Comment       string
		Position      int

		// Definition is the verbatim column definition string (everything
		// after the column name, up to the next top-level comma) as it
		// appeared in the source DDL. Retained for emission and for
		// round-trip comparison, per spec §3.
		Definition string

		// Generated holds the parsed GENERATED ALWAYS AS (...) expression,
		// or nil for an ordinary column.
		Generated *GeneratedColumn
	}

	// GeneratedColumn is the parsed form of a virtual/stored generated
	// column clause.
	GeneratedColumn struct {
		Expression   string
		Stored       bool
		ReferencedBy []string // columns named in Expression, best-effort
	}

	// Index is one key/index definition, keyed by Name in TableModel.
	// The primary key uses the reserved name "PRIMARY".
	Index struct {
		Name     string
		Columns  []string
		Type     string // BTREE, HASH, ...
		Unique   bool
		Primary  bool
		Fulltext bool

		// Definition is the verbatim index clause, retained for emission.
		Definition string
	}

	// ForeignKey is one foreign-key constraint, keyed by Name in
	// TableModel.ForeignKeys.
	ForeignKey struct {
		Name              string
		Columns           []string
		ReferencedTable   string
		ReferencedColumns []string
		OnDelete          string
		OnUpdate          string
		Definition        string
	}

	// TableOptions are table-level settings. Each field is optional in the
	// source DDL; Resolved returns the tuple with defaults applied.
	TableOptions struct {
		Engine    string
		Charset   string
		Collation string
		Comment   string
	}

	// CheckConstraint is a parsed CHECK (...) clause. MariaDB/MySQL treat
	// these as unnamed or named boolean constraints; migrokit tracks them
	// separately from foreign keys since they never participate in FK
	// dependency ordering.
	CheckConstraint struct {
		Name       string
		Expression string
		Definition string
	}
)

// Resolved returns o with InnoDB/utf8mb4/utf8mb4_general_ci defaults
// applied to any field left empty by the source DDL.
func (o TableOptions) Resolved() TableOptions {
	if o.Engine == "" {
		o.Engine = DefaultEngine
	}
	if o.Charset == "" {
		o.Charset = DefaultCharset
	}
	if o.Collation == "" {
		o.Collation = DefaultCollation
	}
	return o
}

// Column looks up a column by name, returning (Column{}, false) if absent.
func (t *TableModel) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// ColumnNames returns the table's column names in declaration order.
func (t *TableModel) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Equal reports whether two columns are equal under the equality rule in
// spec §3: name plus the (DataType, Nullable, Default, AutoIncrement,
// Charset, Collation) tuple. Comment and Position are excluded.
func (c Column) Equal(other Column) bool {
	return c.Name == other.Name &&
		c.DataType == other.DataType &&
		c.Nullable == other.Nullable &&
		c.Default == other.Default &&
		c.HasDefault == other.HasDefault &&
		c.AutoIncrement == other.AutoIncrement &&
		c.Charset == other.Charset &&
		c.Collation == other.Collation
}
