package templates

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	htmpl "html/template"
	"reflect"
	"strings"
	"sync"
	texttpl "text/template"
	"time"
)

//go:embed *.tmpl
var FS embed.FS

// Welcome is sent once an account is registered.
const Welcome = "welcome"

// EmailData defines standard fields for email templates.
type EmailData struct {
	Name           string `json:"Name"`
	Email          string `json:"Email"`
	RecipientEmail string `json:"RecipientEmail"`
	Type           string `json:"Type"`
	AppName        string `json:"AppName"`

	IsArtist bool      `json:"IsArtist"`
	Time     string    `json:"Time"`
	TimeAt   time.Time `json:"TimeAt"`
}

// ToMap converts EmailData to a map[string]any for EmailJob.Data
func ToMap(d EmailData) map[string]any {
	b, _ := json.Marshal(d)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}

// defaultFn supports pipe usage: {{ .Value | default "Fallback" }}. Blank strings,
// nil and zero values fall back.
func defaultFn(fallback any, value any) any {
	if s, ok := value.(string); ok {
		if strings.TrimSpace(s) == "" {
			return fallback
		}
		return s
	}
	if rv := reflect.ValueOf(value); !rv.IsValid() || rv.IsZero() {
		return fallback
	}
	return value
}

func baseFuncs() map[string]any {
	return map[string]any{
		"now":     func() time.Time { return time.Now().UTC() },
		"upper":   strings.ToUpper,
		"default": defaultFn,
	}
}

type set struct {
	text *texttpl.Template
	html *htmpl.Template
}

// parsed holds every embedded template, parsed once on first use.
var parsed = sync.OnceValues(func() (set, error) {
	text, err := texttpl.New("").Funcs(texttpl.FuncMap(baseFuncs())).ParseFS(FS, "*.subject.tmpl", "*.text.tmpl")
	if err != nil {
		return set{}, fmt.Errorf("parse text templates: %w", err)
	}
	html, err := htmpl.New("").Funcs(htmpl.FuncMap(baseFuncs())).ParseFS(FS, "*.html.tmpl")
	if err != nil {
		return set{}, fmt.Errorf("parse html templates: %w", err)
	}
	return set{text: text, html: html}, nil
})

func execText(t *texttpl.Template, name string, data any) (string, error) {
	tpl := t.Lookup(name)
	if tpl == nil {
		return "", fmt.Errorf("unknown template %q", name)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("exec %q: %w", name, err)
	}
	return buf.String(), nil
}

func execHTML(t *htmpl.Template, name string, data any) (string, error) {
	tpl := t.Lookup(name)
	if tpl == nil {
		return "", fmt.Errorf("unknown template %q", name)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("exec %q: %w", name, err)
	}
	return buf.String(), nil
}

// Render renders subject, text, and html for the given base name.
// Expects: <name>.subject.tmpl, <name>.text.tmpl, <name>.html.tmpl
func Render(name string, data any) (subject string, text string, html string, err error) {
	s, err := parsed()
	if err != nil {
		return "", "", "", err
	}
	if subject, err = execText(s.text, name+".subject.tmpl", data); err != nil {
		return "", "", "", err
	}
	subject = strings.TrimSpace(subject)
	if text, err = execText(s.text, name+".text.tmpl", data); err != nil {
		return "", "", "", err
	}
	if html, err = execHTML(s.html, name+".html.tmpl", data); err != nil {
		return "", "", "", err
	}
	return subject, text, html, nil
}
