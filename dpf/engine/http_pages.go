// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/TheGoldfish01/dpf-go/dpf"
)

// --- HTML templates ---

const fontImports = `<link rel="preconnect" href="https://fonts.googleapis.com">` +
	`<link rel="preconnect" href="https://fonts.gstatic.com" crossorigin>` +
	`<link href="https://fonts.googleapis.com/css2?family=Inter:wght@400;600;700&family=JetBrains+Mono:wght@400;600&display=swap" rel="stylesheet">`

const pageStyle = `
  body { font-family: 'Inter', system-ui, -apple-system, sans-serif; max-width: 900px;
         margin: 0 auto; padding: 40px 20px 0; color: #2c2c1e; background: #faf8f0; }
  h1 { color: #2d5016; margin-bottom: 4px; font-weight: 700; }
  code { font-family: 'JetBrains Mono', monospace; background: #f0ece0;
          padding: 2px 6px; border-radius: 3px; font-size: 0.85em; color: #2c2c1e; }
  a { color: #2d5016; text-decoration: none; }
  a:hover { color: #4a7c23; }
  p { line-height: 1.7; color: #6b6b5a; }
  .center { text-align: center; }
  .links a { display: inline-block; padding: 8px 18px; border-radius: 6px;
              background: #2d5016; color: #fff; font-weight: 600; font-size: 0.9em; }
  .card { border: 1px solid #f0ece0; border-radius: 8px; padding: 20px;
           margin-bottom: 16px; background: #fff; }
  .card:hover { border-color: #c8a43a; }
  .op-name { font-family: 'JetBrains Mono', monospace; font-size: 1.1em; font-weight: 600;
              color: #2d5016; }
  .badge { display: inline-block; margin-left: 8px; padding: 2px 8px; border-radius: 4px;
            font-size: 0.75em; font-weight: 600; background: #f5eee0; color: #6b4423; }
  table { width: 100%%; border-collapse: collapse; font-size: 0.9em; }
  th { text-align: left; padding: 8px 10px; background: #f0ece0; font-weight: 600;
        border-bottom: 2px solid #e0dcd0; }
  td { padding: 8px 10px; border-bottom: 1px solid #f0ece0; vertical-align: top; }
  .section-label { font-size: 0.8em; font-weight: 600; text-transform: uppercase;
                    letter-spacing: 0.05em; color: #6b6b5a; margin-top: 14px; margin-bottom: 6px; }
  .none { color: #6b6b5a; font-style: italic; font-size: 0.9em; }
  footer { text-align: center; margin-top: 48px; padding: 20px 0;
            border-top: 1px solid #f0ece0; color: #6b6b5a; font-size: 0.85em; }
`

const notFoundHTMLTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>404 &mdash; dpf engine</title>
<style>` + pageStyle + `</style>
</head>
<body class="center">
<h1>404 &mdash; Not Found</h1>
<p>This is a <code>dpf</code> engine endpoint serving <strong>%s</strong>.</p>
<p>Operator calls are available under <code>%s/&lt;method&gt;</code>.</p>
</body>
</html>`

const landingHTMLTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s &mdash; dpf engine</title>
%s
<style>` + pageStyle + `</style>
</head>
<body class="center">
<h1>%s</h1>
<p>Powered by <code>dpf-go</code> &middot; server <code>%s</code></p>
<p>%d operators registered. Calls go to <code>POST %s/&lt;method&gt;</code>.</p>
<div class="links"><a href="%s">View operators</a></div>
<footer>dpf-go engine</footer>
</body>
</html>`

const describeHTMLTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s Operators &mdash; dpf engine</title>
%s
<style>` + pageStyle + `</style>
</head>
<body>
<div class="center">
  <h1>%s</h1>
  <p>Operator Reference &middot; server <code>%s</code></p>
</div>
%s
<footer>dpf-go engine</footer>
</body>
</html>`

// --- Page builders ---

func buildNotFoundHTML(prefix, serviceName string) []byte {
	return []byte(fmt.Sprintf(notFoundHTMLTemplate,
		html.EscapeString(serviceName),
		html.EscapeString(prefix),
	))
}

func buildLandingHTML(prefix, serviceName, serverID, describePath string, operators int) []byte {
	return []byte(fmt.Sprintf(landingHTMLTemplate,
		html.EscapeString(serviceName), // <title>
		fontImports,
		html.EscapeString(serviceName), // <h1>
		html.EscapeString(serverID),
		operators,
		html.EscapeString(prefix),
		html.EscapeString(describePath),
	))
}

func buildDescribeHTML(s *Server, serviceName string) []byte {
	var cards strings.Builder
	for _, reg := range s.registrations() {
		buildOperatorCard(&cards, reg)
	}
	return []byte(fmt.Sprintf(describeHTMLTemplate,
		html.EscapeString(serviceName), // <title>
		fontImports,
		html.EscapeString(serviceName), // <h1>
		html.EscapeString(s.serverID),
		cards.String(),
	))
}

func buildOperatorCard(w *strings.Builder, reg *Registration) {
	spec := reg.Specification
	w.WriteString(`<div class="card">`)
	fmt.Fprintf(w, `<span class="op-name">%s</span>`, html.EscapeString(reg.Name))
	if reg.DefaultConfig != nil && len(reg.DefaultConfig.Options()) > 0 {
		fmt.Fprintf(w, `<span class="badge">%d config options</span>`, len(reg.DefaultConfig.Options()))
	}
	if spec.Description() != "" {
		fmt.Fprintf(w, `<p>%s</p>`, html.EscapeString(spec.Description()))
	}

	writePinTable(w, "Inputs", spec.InputPins(), spec.InputPin, true)
	writePinTable(w, "Outputs", spec.OutputPins(), spec.OutputPin, false)

	if reg.DefaultConfig != nil && len(reg.DefaultConfig.Options()) > 0 {
		w.WriteString(`<div class="section-label">Default configuration</div>`)
		w.WriteString(`<table><tr><th>Option</th><th>Value</th><th>Description</th></tr>`)
		for _, opt := range reg.DefaultConfig.Options() {
			fmt.Fprintf(w, `<tr><td><code>%s</code></td><td><code>%s</code></td><td>%s</td></tr>`,
				html.EscapeString(opt.Name),
				html.EscapeString(opt.Value),
				html.EscapeString(opt.Document),
			)
		}
		w.WriteString(`</table>`)
	}
	w.WriteString("</div>\n")
}

func writePinTable(w *strings.Builder, label string, pins []int, lookup func(int) (dpf.PinSpecification, bool), inputs bool) {
	fmt.Fprintf(w, `<div class="section-label">%s</div>`, label)
	if len(pins) == 0 {
		w.WriteString(`<p class="none">None</p>`)
		return
	}
	w.WriteString(`<table><tr><th>Pin</th><th>Name</th><th>Types</th>`)
	if inputs {
		w.WriteString(`<th>Optional</th>`)
	}
	w.WriteString(`<th>Description</th></tr>`)
	for _, pin := range pins {
		p, _ := lookup(pin)
		types, _ := json.Marshal(p.TypeNames)
		fmt.Fprintf(w, `<tr><td>%d</td><td><code>%s</code></td><td><code>%s</code></td>`,
			pin, html.EscapeString(p.Name), html.EscapeString(string(types)))
		if inputs {
			fmt.Fprintf(w, `<td>%t</td>`, p.Optional)
		}
		fmt.Fprintf(w, `<td>%s</td></tr>`, html.EscapeString(p.Document))
	}
	w.WriteString(`</table>`)
}

// --- HTTP handlers ---

func (h *HttpServer) handleLandingPage(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(h.landingHTML)
}

func (h *HttpServer) handleDescribePage(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(h.describeHTML)
}

func (h *HttpServer) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write(h.notFoundHTML)
}
