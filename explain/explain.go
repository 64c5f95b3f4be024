package explain

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/rohanthewiz/element"
	"github.com/rohanthewiz/rurl/core/tpl"
)

// Row describes one part of a parsed template.
type Row struct {
	Region tpl.Region
	Kind   string // "static" or "placeholder"
	Value  string
}

const (
	KindStatic      = "static"
	KindPlaceholder = "placeholder"
)

// Rows lists the parts of r in URL order. Absent regions are left out.
//
// Example:
//
//	Template: "https://", "/users/", "?tab=", ""
//	Rows:     protocol static "https"
//	          hostname placeholder {0}
//	          path     static "/users/"
//	          path     placeholder {1}
//	          query    placeholder tab={2}
func Rows(r *tpl.Result) (rows []Row) {
	rows = appendPart(rows, tpl.RegionProtocol, r.Protocol)
	if r.Username != "" || r.Password != "" {
		value := fmt.Sprintf("%q", r.Username)
		if r.Password != "" {
			value += " with password"
		} else {
			value += " without password"
		}
		rows = append(rows, Row{Region: tpl.RegionCredentials, Kind: KindStatic, Value: value})
	}
	rows = appendPart(rows, tpl.RegionHostname, r.Hostname)
	rows = appendPart(rows, tpl.RegionPort, r.Port)

	for _, part := range r.Paths {
		rows = appendPart(rows, tpl.RegionPath, part)
	}

	for _, q := range r.Queries {
		row := Row{Region: tpl.RegionQuery, Kind: kind(q.Value)}
		if q.Key == "" {
			row.Value = q.Value.String() + " (query set)"
		} else {
			row.Value = q.Key + "=" + q.Value.String()
		}
		rows = append(rows, row)
	}

	rows = appendPart(rows, tpl.RegionFragment, r.Fragment)
	return rows
}

func appendPart[T any](rows []Row, region tpl.Region, part tpl.Part[T]) []Row {
	if part == nil {
		return rows
	}
	return append(rows, Row{Region: region, Kind: kind(part), Value: part.String()})
}

func kind[T any](part tpl.Part[T]) string {
	if _, ok := part.(tpl.Param[T]); ok {
		return KindPlaceholder
	}
	return KindStatic
}

// Text returns the rows as an aligned plain text table.
func Text(r *tpl.Result) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "REGION\tKIND\tVALUE")
	for _, row := range Rows(r) {
		fmt.Fprintf(w, "%s\t%s\t%s\n", row.Region, row.Kind, row.Value)
	}
	w.Flush()

	return sb.String()
}

// Table is an element component rendering the rows as an HTML table.
type Table struct {
	Title string
	Rows  []Row
}

func (t Table) Render(b *element.Builder) any {
	if t.Title != "" {
		b.H3().T(t.Title)
	}

	b.Table("class", "rurl-explain").R(
		b.Tr().R(
			b.Th().T("Region"),
			b.Th().T("Kind"),
			b.Th().T("Value"),
		),
		func() any {
			for _, row := range t.Rows {
				b.Tr("class", row.Kind).R(
					b.Td().T(string(row.Region)),
					b.Td().T(row.Kind),
					b.Td().T(row.Value),
				)
			}
			return nil
		}(),
	)
	return nil
}

// HTML returns an HTML table describing r.
func HTML(title string, r *tpl.Result) string {
	b := element.NewBuilder()
	element.RenderComponents(b, Table{Title: title, Rows: Rows(r)})
	return b.String()
}
