package report

import (
	"context"
	"html/template"
	"io"

	derrors "github.com/obqo/decycle/pkg/errors"
)

// htmlTemplate is the single-file HTML report. It is deliberately
// self-contained: no external resources, so the file can be attached to CI
// artifacts as-is.
const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{if .Title}}{{.Title}} | {{end}}decycle report</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 2rem; color: #222; }
h1 { font-size: 1.4rem; }
h2 { font-size: 1.1rem; margin-top: 2rem; }
table { border-collapse: collapse; margin-top: .5rem; }
th, td { border: 1px solid #ccc; padding: .3rem .6rem; text-align: left; font-size: .9rem; }
th { background: #f5f5f5; }
.ok { color: #2e7d32; }
.bad { color: #c62828; }
.meta { color: #888; font-size: .8rem; margin-top: 2rem; }
</style>
</head>
<body>
<h1>{{if .Title}}{{.Title}}{{else}}decycle report{{end}}</h1>
<p>{{.Stats.Classes}} classes, {{.Stats.References}} references scanned.</p>

{{if .Violations}}
<h2 class="bad">{{len .Violations}} violation{{if gt (len .Violations) 1}}s{{end}}</h2>
<table>
<tr><th>Constraint</th><th>Rule</th><th>Dependency</th></tr>
{{range .Violations}}{{$v := .}}{{range .Dependencies}}
<tr><td>{{$v.Constraint}}</td><td>{{$v.Short}}</td><td>{{.From}} &rarr; {{.To}}</td></tr>
{{end}}{{end}}
</table>
{{else}}
<h2 class="ok">No violations</h2>
{{end}}

{{range .Slicings}}
<h2>Slicing: {{.Name}}</h2>
<p>{{len .Nodes}} slices, {{len .Edges}} dependencies.</p>
{{if .Edges}}
<table>
<tr><th>From</th><th>To</th></tr>
{{range .Edges}}
<tr><td>{{.From}}</td><td>{{.To}}</td></tr>
{{end}}
</table>
{{end}}
{{end}}

<p class="meta">Generated {{.GeneratedAt.Format "2006-01-02 15:04:05 MST"}}{{if .Version}} by decycle {{.Version}}{{end}} &middot; run {{.ID}}</p>
</body>
</html>
`

var reportTemplate = template.Must(template.New("report").Parse(htmlTemplate))

// WriteHTML writes the report as a self-contained HTML document.
func WriteHTML(ctx context.Context, w io.Writer, rep Report) error {
	cw := &countingWriter{w: w}
	err := reportTemplate.Execute(cw, rep)
	if err != nil {
		err = derrors.Wrap(derrors.ErrCodeReportIO, err, "render HTML report")
	}
	notifyWritten(ctx, "html", cw, err)
	return err
}
