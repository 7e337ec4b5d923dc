// Package render turns terminal frames into HTML fragments for the browser
// and styled text for terminals.
package render

import (
	"html/template"
	"strings"

	"github.com/Zachkp/portfolio/internal/terminal"
)

// ErrorNotice replaces a frame whose screen failed to render
const ErrorNotice = "terminal demo unavailable"

var frameTmpl = template.Must(template.New("frame").Parse(`<div class="terminal-window" data-screen="{{.ScreenID}}">
<div class="terminal-bar"><span class="dot red"></span><span class="dot yellow"></span><span class="dot green"></span></div>
{{- if .Err}}
<div class="terminal-body"><p class="terminal-error">` + ErrorNotice + `</p></div>
{{- else if not .Visible}}
<div class="terminal-body terminal-blank"></div>
{{- else if .IsReward}}
<div class="terminal-body terminal-reward full-bleed"><img src="{{.ImageURL}}" alt="{{if .Caption}}{{.Caption}}{{else}}reward{{end}}">{{if .Caption}}<p class="caption">{{.Caption}}</p>{{end}}</div>
{{- else}}
<div class="terminal-body">
<p class="line prompt"><span class="ps1">{{.Prompt}}</span> {{.Typed}}{{if not .TypingComplete}}<span class="caret">▍</span>{{end}}</p>
{{- range .Lines}}
<p class="line {{.Style}}">{{.Text}}</p>
{{- end}}
</div>
{{- end}}
</div>`))

// HTML renders a frame as the terminal window fragment swapped in by htmx
func HTML(f terminal.Frame) (string, error) {
	var b strings.Builder
	if err := frameTmpl.Execute(&b, f); err != nil {
		return "", err
	}
	return b.String(), nil
}
