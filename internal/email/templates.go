package email

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

// TemplateManager renders the HTML email bodies. The set is parsed once
// and is read-only afterwards.
type TemplateManager struct {
	set *template.Template
}

func NewTemplateManager() (*TemplateManager, error) {
	set, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}
	return &TemplateManager{set: set}, nil
}

// Render executes the template for a message kind ("verify_email" renders
// templates/verify_email.html).
func (tm *TemplateManager) Render(name string, data TemplateData) (string, error) {
	tpl := tm.set.Lookup(name + ".html")
	if tpl == nil {
		return "", fmt.Errorf("email template not found: %s", name)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s email: %w", name, err)
	}
	return buf.String(), nil
}
