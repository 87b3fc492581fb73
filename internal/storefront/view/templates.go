// Package view renders the storefront screens. Each view resolves the named
// template fragments it needs at construction time — the terminal analogue of
// looking up DOM anchors — subscribes to its model's change events and
// re-renders from the latest payload only.
package view

import (
	"strings"
	"text/template"

	"github.com/nazeru/larek-storefront-go/pkg/logging"
)

// Built-in template fragments, keyed by anchor name.
var builtinTemplates = map[string]string{
	"page": `Веб-ларёк{{if .Locked}} ▓{{end}}  корзина: {{.Count}}`,

	"card-catalog": `{{.Marker}} {{.Index}}. {{.Title}} [{{.Category}}] — {{.Price}}`,

	"card-preview": `{{.Title}}
[{{.Category}}]

{{.Description}}

Цена: {{.Price}}`,

	"basket-item": `{{.Marker}} {{.Index}}. {{.Title}} — {{.Price}}`,

	"basket": `Корзина

{{.Items}}
Итого: {{.Total}}
{{.Action}}`,

	"order": `Оформление заказа

Способ оплаты:
 {{.OnlineMarker}} [←] Онлайн
 {{.DeliveryMarker}} [→] При получении

Адрес доставки: {{.Address}}{{.Cursor}}
{{if .Error}}! {{.Error}}
{{end}}{{.Action}}`,

	"contacts": `Контакты

{{.EmailMarker}} Email:   {{.Email}}{{.EmailCursor}}
{{.PhoneMarker}} Телефон: {{.Phone}}{{.PhoneCursor}}
{{range .Errors}}! {{.}}
{{end}}{{.Action}}`,

	"success": `Заказ оформлен

Номер заказа: {{.ID}}
Списано {{.Total}}

[enter] За новыми покупками`,
}

// Registry resolves named template fragments for the views. A missing or
// unparsable fragment is reported as a structured diagnostic and the lookup
// degrades to nil; views render without that fragment instead of crashing.
type Registry struct {
	templates map[string]*template.Template
	missing   []string
}

func NewRegistry() *Registry {
	return NewRegistryFromSources(builtinTemplates)
}

func NewRegistryFromSources(sources map[string]string) *Registry {
	r := &Registry{templates: map[string]*template.Template{}}
	for name, src := range sources {
		tpl, err := template.New(name).Parse(src)
		if err != nil {
			logging.Log(logging.Fields{
				Component: "view",
				Anchor:    name,
				Status:    "parse_error",
				Message:   err.Error(),
			})
			continue
		}
		r.templates[name] = tpl
	}
	return r
}

// Lookup returns the fragment or nil. Every miss is logged once and recorded
// in Missing.
func (r *Registry) Lookup(name string) *template.Template {
	if tpl, ok := r.templates[name]; ok {
		return tpl
	}
	r.missing = append(r.missing, name)
	logging.Log(logging.Fields{
		Component: "view",
		Anchor:    name,
		Status:    "missing_anchor",
		Message:   "template not found, fragment disabled",
	})
	return nil
}

// Missing lists every anchor that failed to resolve, in lookup order.
func (r *Registry) Missing() []string {
	return append([]string(nil), r.missing...)
}

// renderFragment executes tpl and swallows failures into a log line; a nil
// template renders as the empty string.
func renderFragment(tpl *template.Template, data any) string {
	if tpl == nil {
		return ""
	}
	var b strings.Builder
	if err := tpl.Execute(&b, data); err != nil {
		logging.Log(logging.Fields{
			Component: "view",
			Anchor:    tpl.Name(),
			Status:    "render_error",
			Message:   err.Error(),
		})
		return ""
	}
	return b.String()
}
