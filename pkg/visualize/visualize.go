// Package visualize renders a schema.Database's foreign-key dependency
// graph: one node per table, one directed edge per foreign key pointing
// from the referencing table to the referenced one.
//
// Nothing in the retrieved pack already binds a Graphviz library —
// this package introduces github.com/goccy/go-graphviz as a new,
// out-of-pack dependency named directly in the expanded spec (see
// DESIGN.md). BuildDOTSource is deliberately plain-Go and
// library-independent so the graph structure is testable without
// invoking the renderer; RenderPNG/RenderSVG hand that DOT source to
// go-graphviz for the actual image.
package visualize

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/pkg/errors"

	"github.com/pseudomuto/migrokit/pkg/ddl"
	"github.com/pseudomuto/migrokit/pkg/schema"
)

// BuildDOTSource renders db's tables and their foreign keys as Graphviz
// DOT source. Tables are parsed from their DDL via pkg/ddl so the graph
// reflects actual FK definitions rather than assuming the caller
// already separated columns from constraints.
func BuildDOTSource(db *schema.Database) (string, error) {
	tables := db.Objects[schema.KindTable]
	names := tables.Names()

	var b strings.Builder
	b.WriteString("digraph fk_graph {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box];\n\n")

	for _, name := range names {
		fmt.Fprintf(&b, "  %q;\n", name)
	}
	b.WriteString("\n")

	type edge struct {
		from, to, label string
	}
	var edges []edge

	for _, name := range names {
		model, _, err := ddl.ParseCreateTable(tables[name].DDL)
		if err != nil {
			return "", errors.Wrapf(err, "visualize: parsing table %q", name)
		}

		fkNames := make([]string, 0, len(model.ForeignKeys))
		for fkName := range model.ForeignKeys {
			fkNames = append(fkNames, fkName)
		}
		sort.Strings(fkNames)

		for _, fkName := range fkNames {
			fk := model.ForeignKeys[fkName]
			if _, ok := tables[fk.ReferencedTable]; !ok {
				// Referenced table isn't part of this database view; skip
				// rather than draw a dangling edge.
				continue
			}
			edges = append(edges, edge{from: name, to: fk.ReferencedTable, label: fkName})
		}
	}

	for _, e := range edges {
		fmt.Fprintf(&b, "  %q -> %q [label=%q];\n", e.from, e.to, e.label)
	}

	b.WriteString("}\n")
	return b.String(), nil
}

// Render writes db's FK dependency graph to w in the given Graphviz
// output format (e.g. graphviz.PNG, graphviz.SVG).
func Render(ctx context.Context, db *schema.Database, format graphviz.Format, w io.Writer) error {
	dot, err := BuildDOTSource(db)
	if err != nil {
		return err
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return errors.Wrap(err, "visualize: starting graphviz")
	}
	defer gv.Close()

	graph, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return errors.Wrap(err, "visualize: parsing generated DOT source")
	}
	defer graph.Close()

	if err := gv.Render(ctx, graph, format, w); err != nil {
		return errors.Wrap(err, "visualize: rendering graph")
	}
	return nil
}

// RenderPNG writes db's FK dependency graph to w as a PNG image.
func RenderPNG(ctx context.Context, db *schema.Database, w io.Writer) error {
	return Render(ctx, db, graphviz.PNG, w)
}

// RenderSVG writes db's FK dependency graph to w as an SVG document.
func RenderSVG(ctx context.Context, db *schema.Database, w io.Writer) error {
	return Render(ctx, db, graphviz.SVG, w)
}
