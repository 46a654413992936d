package widget

import (
	"fmt"
	"html/template"
	"io"
)

// Theme carries the styling tokens the panel is drawn with.
type Theme struct {
	Gray2        string
	OffWhite     string
	OffWhite2    string
	BorderRadius string
}

var DefaultTheme = Theme{
	Gray2:        "#9585a3",
	OffWhite:     "#faf9fb",
	OffWhite2:    "#e7e1ec",
	BorderRadius: "4px",
}

const panelTemplate = `<div class="deploys" style="height:108px;padding:16px 16px 0;box-sizing:border-box">
{{- if .View.Empty}}
<div class="deploys-empty" style="display:flex;align-items:center;justify-content:center;height:100%;background-color:{{.Theme.OffWhite | css}}">
<a class="btn btn-xsmall" href="{{.View.CallToAction.URL}}">{{.View.CallToAction.Label}}</a>
</div>
{{- else}}
<div class="deploys-heading" style="color:{{.Theme.Gray2 | css}};text-transform:uppercase;font-size:14px">{{.View.Heading}}</div>
<div>
{{- range .View.Rows}}
<div class="deploy" data-key="{{.Key}}" style="display:flex;justify-content:space-between;color:{{$.Theme.Gray2 | css}};font-size:13px;margin-top:8px">
<div style="display:flex;flex:1;min-width:0">
<span class="deploy-environment" style="font-size:11px;text-transform:uppercase;width:80px;flex-shrink:0;overflow:hidden;white-space:nowrap;text-overflow:ellipsis;border:1px solid {{$.Theme.OffWhite2 | css}};margin-right:8px;background-color:{{$.Theme.OffWhite | css}};text-align:center;border-radius:{{$.Theme.BorderRadius | css}}" title="{{.Environment}}">{{.Environment}}</span>
<div style="display:flex"><a href="{{.Link}}">{{.Version}}</a></div>
</div>
<div class="deploy-finished" style="width:80px">{{.Finished}}</div>
</div>
{{- end}}
</div>
{{- end}}
</div>
`

var panel = template.Must(template.New("deploys").Funcs(template.FuncMap{
	"css": func(s string) template.CSS { return template.CSS(s) },
}).Parse(panelTemplate))

// WriteHTML writes the markup for view to w.
func WriteHTML(w io.Writer, view View, theme Theme) error {
	data := struct {
		View  View
		Theme Theme
	}{view, theme}

	if err := panel.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render deploys panel: %w", err)
	}
	return nil
}
