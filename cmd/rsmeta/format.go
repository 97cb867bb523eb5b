package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/jward/rsmeta"
	"github.com/jward/rsmeta/internal/config"
)

// render writes the document for s in the given format.
func render(w io.Writer, format string, indent bool, s *rsmeta.Schema, parser string) error {
	switch format {
	case "", "json":
		return rsmeta.Encode(w, s, parser, rsmeta.EncodeIndent(indent))
	case "yaml":
		return rsmeta.EncodeYAML(w, s, parser)
	case "text":
		formatText(w, rsmeta.NewDocument(s, parser))
		return nil
	}
	return fmt.Errorf("%w: %q", config.ErrInvalidFormat, format)
}

// formatText prints one aligned row per declaration, grouped by kind in
// document order, followed by the uses.
func formatText(w io.Writer, doc rsmeta.Document) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tNAME\tVISIBILITY\tDETAIL")
	for _, st := range doc.Structs {
		detail := fmt.Sprintf("%d fields", len(st.Fields))
		if len(st.Derives) > 0 {
			detail += ", derives " + strings.Join(st.Derives, ", ")
		}
		row(tw, "struct", st.Name+generics(st.Generics), st.IsPublic, detail)
	}
	for _, en := range doc.Enums {
		row(tw, "enum", en.Name+generics(en.Generics), en.IsPublic, strings.Join(en.Variants, " | "))
	}
	for _, tr := range doc.Traits {
		row(tw, "trait", tr.Name+generics(tr.Generics), tr.IsPublic, strings.Join(tr.Methods, ", "))
	}
	for _, fn := range doc.Functions {
		row(tw, "fn", fn.Name+generics(fn.Generics), fn.IsPublic, signature(fn))
	}
	for _, im := range doc.Impls {
		name := im.TargetType
		if im.TraitName != nil {
			name = *im.TraitName + " for " + im.TargetType
		}
		fmt.Fprintf(tw, "impl\t%s\t\t%s\n", name, strings.Join(im.Methods, ", "))
	}
	for _, m := range doc.Modules {
		row(tw, "mod", m.Name, m.IsPublic, "")
	}
	for _, c := range doc.Constants {
		detail := ""
		if c.Type != nil {
			detail = *c.Type
		}
		row(tw, "const", c.Name, c.IsPublic, detail)
	}
	for _, t := range doc.Types {
		row(tw, "type", t.Name, t.IsPublic, "")
	}
	for _, u := range doc.Uses {
		fmt.Fprintf(tw, "use\t%s\t\t\n", u)
	}
	tw.Flush()
}

func row(w io.Writer, kind, name string, public bool, detail string) {
	vis := "private"
	if public {
		vis = "pub"
	}
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", kind, name, vis, detail)
}

func generics(gs []string) string {
	if len(gs) == 0 {
		return ""
	}
	return "<" + strings.Join(gs, ", ") + ">"
}

// signature renders the qualifiers, parameters and return type of fn.
func signature(fn rsmeta.Function) string {
	var b strings.Builder
	for _, q := range []struct {
		on   bool
		name string
	}{{fn.IsConst, "const"}, {fn.IsAsync, "async"}, {fn.IsUnsafe, "unsafe"}} {
		if q.on {
			b.WriteString(q.name + " ")
		}
	}
	params := make([]string, len(fn.Parameters))
	for i, p := range fn.Parameters {
		if p.IsMut {
			params[i] = "mut "
		}
		params[i] += p.Name + ": " + p.Type
	}
	b.WriteString("(" + strings.Join(params, ", ") + ")")
	if fn.ReturnType != nil {
		b.WriteString(" -> " + *fn.ReturnType)
	}
	return b.String()
}
