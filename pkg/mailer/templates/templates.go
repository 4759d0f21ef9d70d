package templates

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	htmpl "html/template"
	"io"
	"reflect"
	"strings"
	"sync"
	texttpl "text/template"
	"time"
)

//go:embed *.tmpl
var FS embed.FS

// EmailData defines standard fields for email templates.
type EmailData struct {
	// Basic info
	Name           string `json:"Name"`
	Email          string `json:"Email"`
	RecipientEmail string `json:"RecipientEmail"`
	Type           string `json:"Type"`

	// Company info
	CompanyName    string `json:"CompanyName"`
	CompanyAddress string `json:"CompanyAddress"`
	AppName        string `json:"AppName"`

	// URLs
	LogoURL    string `json:"LogoURL"`
	SupportURL string `json:"SupportURL"`
	PrivacyURL string `json:"PrivacyURL"`

	// Additional data
	IP        string            `json:"IP"`
	Time      string            `json:"Time"`
	TimeAt    time.Time         `json:"TimeAt"`
	UserAgent string            `json:"UserAgent"`
	Changes   map[string]string `json:"Changes"`

	// KYC
	LegalName string `json:"LegalName"`
	KYCStatus string `json:"KYCStatus"`
}

// ToMap converts EmailData to a map[string]any for EmailJob.Data
func ToMap(d EmailData) map[string]any {
	b, _ := json.Marshal(d)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}

// defaultFn supports pipe usage: {{ .Value | default "Fallback" }}
func defaultFn(fallback any, value any) any {
	switch x := value.(type) {
	case string:
		if strings.TrimSpace(x) == "" {
			return fallback
		}
		return x
	case nil:
		return fallback
	default:
		rv := reflect.ValueOf(value)
		if !rv.IsValid() {
			return fallback
		}
		zero := reflect.Zero(rv.Type()).Interface()
		if reflect.DeepEqual(value, zero) {
			return fallback
		}
		return value
	}
}

// ---- FuncMaps ----

func baseFuncs() map[string]any {
	return map[string]any{
		"now":        func() time.Time { return time.Now().UTC() },
		"formatTime": func(t time.Time, layout string) string { return t.Format(layout) },
		"upper":      strings.ToUpper,
		"default":    defaultFn,
	}
}

var (
	htmlFuncMap = htmpl.FuncMap(baseFuncs())
	textFuncMap = texttpl.FuncMap(baseFuncs())
)

// ---- Template names ----

const (
	Welcome           = "welcome"
	LoginNotification = "login_notification"
	ProfileUpdated    = "profile_updated"
	KYCSubmitted      = "kyc_submitted"

	// Universal renders any of the above, switching on EmailData.Type.
	Universal = "universal"
)

// Known reports whether name is one of the notification types this service sends.
func Known(name string) bool {
	switch name {
	case Welcome, LoginNotification, ProfileUpdated, KYCSubmitted:
		return true
	}
	return false
}

// executor is satisfied by both *html/template.Template and *text/template.Template.
type executor interface {
	Execute(w io.Writer, data any) error
}

// parsed caches templates by file name; the embedded FS never changes at runtime.
var parsed sync.Map

func lookup(filename string, isHTML bool) (executor, error) {
	if t, ok := parsed.Load(filename); ok {
		return t.(executor), nil
	}
	var (
		t   executor
		err error
	)
	if isHTML {
		t, err = htmpl.New(filename).Funcs(htmlFuncMap).ParseFS(FS, filename)
	} else {
		t, err = texttpl.New(filename).Funcs(textFuncMap).ParseFS(FS, filename)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", filename, err)
	}
	actual, _ := parsed.LoadOrStore(filename, t)
	return actual.(executor), nil
}

func renderFile(filename string, isHTML bool, data any) (string, error) {
	t, err := lookup(filename, isHTML)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("exec %q: %w", filename, err)
	}
	return buf.String(), nil
}

// Render loads and renders subject, text, and html templates for the given base name.
// Expects: <name>.subject.tmpl, <name>.text.tmpl, <name>.html.tmpl
func Render(name string, data any) (subject string, text string, html string, err error) {
	subject, err = renderFile(name+".subject.tmpl", false, data)
	if err != nil {
		return "", "", "", err
	}
	text, err = renderFile(name+".text.tmpl", false, data)
	if err != nil {
		return "", "", "", err
	}
	html, err = renderFile(name+".html.tmpl", true, data)
	if err != nil {
		return "", "", "", err
	}
	return subject, text, html, nil
}
