package services

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sync"
)

// TemplateService handles rendering of email templates
type TemplateService struct {
	templateCache map[string]*template.Template
	templateDir   string
	templateMutex sync.RWMutex
}

// NewTemplateService creates a new template service
func NewTemplateService() *TemplateService {
	return NewTemplateServiceWithDir("./shared/mail_templates")
}

// NewTemplateServiceWithDir creates a template service reading from an
// explicit directory (used by tests)
func NewTemplateServiceWithDir(dir string) *TemplateService {
	return &TemplateService{
		templateCache: make(map[string]*template.Template),
		templateDir:   dir,
	}
}

// RenderTemplate renders an email template with provided data
func (ts *TemplateService) RenderTemplate(templateID string, data map[string]interface{}) (string, error) {
	// Check if template is in cache
	ts.templateMutex.RLock()
	tmpl, exists := ts.templateCache[templateID]
	ts.templateMutex.RUnlock()

	if !exists {
		// Load template from file
		filename := ts.getTemplateFilename(templateID)
		if filename == "" {
			return "", fmt.Errorf("unknown template: %s", templateID)
		}
		templatePath := filepath.Join(ts.templateDir, filename)

		// Check if file exists
		if _, err := os.Stat(templatePath); os.IsNotExist(err) {
			return "", fmt.Errorf("template file not found: %s", templatePath)
		}

		// Parse template
		var err error
		tmpl, err = template.ParseFiles(templatePath)
		if err != nil {
			return "", fmt.Errorf("failed to parse template %s: %v", templateID, err)
		}

		// Add to cache
		ts.templateMutex.Lock()
		ts.templateCache[templateID] = tmpl
		ts.templateMutex.Unlock()
	}

	// Render template
	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %v", templateID, err)
	}

	return rendered.String(), nil
}

// getTemplateFilename maps template ID to filename
func (ts *TemplateService) getTemplateFilename(templateID string) string {
	switch templateID {
	case "welcome":
		return "welcome.html"
	case "ops_alert":
		return "ops_alert.html"
	default:
		return ""
	}
}
