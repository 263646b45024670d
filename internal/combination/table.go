package combination

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ivargr/snakehelp/internal/paramtype"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
	"gopkg.in/yaml.v3"
)

// Table is a results table: parameter columns followed by one result
// column per target schema.
type Table struct {
	Columns []string
	Rows    [][]cty.Value
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Column returns every cell of the named column.
func (t *Table) Column(name string) ([]cty.Value, bool) {
	idx := -1
	for i, c := range t.Columns {
		if c == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}
	out := make([]cty.Value, len(t.Rows))
	for r, row := range t.Rows {
		out[r] = row[idx]
	}
	return out, true
}

// Formats lists the names accepted by Write.
var Formats = []string{"text", "csv", "yaml"}

// Write renders the table in the named format.
func (t *Table) Write(w io.Writer, format string) error {
	switch format {
	case "", "text":
		return t.WriteText(w)
	case "csv":
		return t.WriteCSV(w)
	case "yaml":
		return t.WriteYAML(w)
	default:
		return fmt.Errorf("unknown table format %q, expected one of %s", format, strings.Join(Formats, ", "))
	}
}

// WriteText renders aligned, tab-separated columns.
func (t *Table) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(t.Columns, "\t"))
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(cellTexts(row), "\t"))
	}
	return tw.Flush()
}

// WriteCSV renders the table with a header record.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := cw.Write(cellTexts(row)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteYAML renders the rows as a sequence of mappings in column order.
func (t *Table) WriteYAML(w io.Writer) error {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, row := range t.Rows {
		m := &yaml.Node{Kind: yaml.MappingNode}
		for i, col := range t.Columns {
			m.Content = append(m.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: col},
				CellNode(row[i]),
			)
		}
		seq.Content = append(seq.Content, m)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(seq); err != nil {
		return err
	}
	return enc.Close()
}

func cellTexts(row []cty.Value) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = CellText(v)
	}
	return out
}

// CellText renders one table cell. Numbers and strings read as they do in
// paths; other values are rendered as JSON.
func CellText(v cty.Value) string {
	if s, err := paramtype.Format(v); err == nil {
		return s
	}
	if v.IsNull() || !v.IsWhollyKnown() {
		return ""
	}
	b, err := ctyjson.Marshal(v, v.Type())
	if err != nil {
		return v.GoString()
	}
	return string(b)
}

// CellNode is the YAML scalar for a cell, tagged so that numbers stay
// numbers and numeric-looking strings stay quoted.
func CellNode(v cty.Value) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: CellText(v)}
	if !v.IsNull() && v.IsKnown() && v.Type().Equals(cty.Number) {
		n.Tag = "!!float"
		if v.AsBigFloat().IsInt() {
			n.Tag = "!!int"
		}
	}
	return n
}
