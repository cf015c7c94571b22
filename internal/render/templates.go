package render

// detailTemplates holds one named template per detail layout. Elements that
// can be located after rendering carry data-propname; copyable values carry
// data-copy (and data-copyname when the notice names the value).
const detailTemplates = `
{{define "members"}}<div class="details-header">
  <h2>{{.Name}}</h2>
  <div class="details-meta">
    <div class="meta-badge">{{.Category}}</div>
    <div class="meta-badge">Size: {{.Size}} bytes</div>
    <div class="meta-badge">{{len .Properties}} properties</div>
  </div>
</div>
{{- if .Chain}}
<div class="details-section">
  <div class="section-title">Inheritance Chain</div>
  <div class="inherit-chain">{{range $i, $p := .Chain}}{{if $i}}<span class="arrow">&rarr;</span>{{end}}<div class="inherit-item">{{$p}}</div>{{end}}</div>
</div>
{{- end}}
{{- if .Properties}}
<div class="details-section">
  <div class="section-title">Properties ({{len .Properties}})</div>
  {{- range .Properties}}
  <div class="property-item" data-propname="{{.Name}}" data-propoffset="{{.HexOffset}}">
    <div class="property-header">
      <span class="property-name">{{.Name}}</span>
      <span class="property-type">{{.Type}}</span>
      {{- if .HexOffset}}
      <span class="property-details">Offset: <span class="hex">{{.HexOffset}}</span> | Size: {{.Size}} bytes</span>
      <button class="copy-btn" title="Copy offset" data-copy="{{.Copy}}" data-copyname="{{.Name}}">Copy</button>
      {{- else}}
      <span class="property-details">Size: {{.Size}} bytes</span>
      {{- end}}
    </div>
  </div>
  {{- end}}
</div>
{{- end}}
{{end}}

{{define "enum"}}<div class="details-header">
  <h2>{{.Name}}</h2>
  <div class="details-meta">
    <div class="meta-badge">Enum</div>
    <div class="meta-badge">Type: {{.Type}}</div>
    <div class="meta-badge">{{len .Values}} values</div>
  </div>
</div>
<div class="details-section">
  <div class="section-title">Values</div>
  {{- range .Values}}
  <div class="property-item" data-propname="{{.Name}}">
    <div class="property-header">
      <span class="property-name">{{.Name}}</span>
      <span class="copy-value"><button class="copy-btn" data-copy="{{.Value}}">Copy</button><span class="hex">{{.Value}}</span></span>
    </div>
  </div>
  {{- end}}
</div>
{{end}}

{{define "functions"}}<div class="details-header">
  <h2>{{.Name}}</h2>
  <div class="details-meta">
    <div class="meta-badge">Class Functions</div>
    <div class="meta-badge">{{len .Functions}} functions</div>
  </div>
</div>
{{- range .Functions}}
<div class="details-section" data-propname="{{.Name}}">
  <div class="section-title">{{.Name}}</div>
  <div class="signature">{{.Highlight}}</div>
  {{- if .Params}}
  <div class="property-item">
    <div class="property-name">Parameters ({{len .Params}})</div>
    <div class="params">{{range .Params}}<div class="param">&bull; {{.}}</div>{{end}}</div>
  </div>
  {{- end}}
  {{- if .Address}}
  <div class="property-item">
    <div class="property-header">
      <span class="property-name">Address</span>
      <span class="copy-value"><button class="copy-btn" data-copy="{{.Address}}">Copy</button><span class="hex">{{.Address}}</span></span>
    </div>
  </div>
  {{- end}}
</div>
{{- end}}
{{end}}

{{define "offsets"}}<div class="details-header">
  <h2>{{.Name}}</h2>
  {{- range .Entries}}
  <div class="details-meta" data-propname="{{.Name}}">
    <div class="meta-badge">Offset</div>
    <div class="copy-value"><button class="copy-btn" title="Copy offset" data-copy="{{.Value}}" data-copyname="{{.Name}}">Copy</button><span class="hex">{{.Value}}</span></div>
  </div>
  {{- end}}
</div>
{{end}}
`
