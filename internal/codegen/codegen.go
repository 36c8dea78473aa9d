// Package codegen writes parsed patterns out as Go source so they can be
// compiled into a binary and built without parsing at startup.
package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"io"
	"strings"
	"text/template"

	"github.com/zhuweiyou/sigscan"
)

// Entry names one pattern to generate.
type Entry struct {
	Name string
	Text string
}

type literal struct {
	Name string
	Text string
	Data string
	Mask string
	Len  int
}

var fileTemplate = template.Must(template.New("patterns").Parse(`// Code generated by sigscan gen. DO NOT EDIT.

package {{.Package}}

import "github.com/zhuweiyou/sigscan"
{{range .Literals}}
// {{.Name}} is the parsed form of {{printf "%q" .Text}}.
var {{.Name}} = sigscan.ParsedPattern{
	Data: [sigscan.MaxPatternLen]byte{ {{- .Data -}} },
	Mask: [sigscan.MaxPatternLen]byte{ {{- .Mask -}} },
	Len:  {{.Len}},
}
{{end}}`))

// Render writes a gofmt'd Go file declaring one sigscan.ParsedPattern
// variable per entry. It fails if a name is not a valid Go identifier
// or a pattern does not fit in sigscan.MaxPatternLen bytes.
func Render(w io.Writer, pkg string, entries []Entry) error {
	if !token.IsIdentifier(pkg) {
		return fmt.Errorf("invalid package name %q", pkg)
	}

	seen := make(map[string]struct{}, len(entries))
	literals := make([]literal, 0, len(entries))
	for _, e := range entries {
		if !token.IsIdentifier(e.Name) {
			return fmt.Errorf("invalid pattern name %q", e.Name)
		}
		if _, dup := seen[e.Name]; dup {
			return fmt.Errorf("duplicate pattern name %q", e.Name)
		}
		seen[e.Name] = struct{}{}

		parsed, err := sigscan.Parse(e.Text)
		if err != nil {
			return fmt.Errorf("pattern %s: %w", e.Name, err)
		}

		data, mask := parsed.Bytes()
		literals = append(literals, literal{
			Name: e.Name,
			Text: e.Text,
			Data: hexList(data),
			Mask: hexList(mask),
			Len:  parsed.Len,
		})
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, struct {
		Package  string
		Literals []literal
	}{pkg, literals}); err != nil {
		return fmt.Errorf("render template: %w", err)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("format generated source: %w", err)
	}

	_, err = w.Write(src)
	return err
}

func hexList(b []byte) string {
	parts := make([]string, len(b))
	for i, v := range b {
		parts[i] = fmt.Sprintf("0x%02x", v)
	}
	return strings.Join(parts, ", ")
}
