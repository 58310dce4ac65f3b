package config

import (
	_ "embed"
	"fmt"
	"os"

	"clepsydra-backend/internal/domain"

	"gopkg.in/yaml.v3"
)

//go:embed site.yaml
var defaultSiteYAML []byte

// Site holds the fixed company details quoted in emails and the service
// catalog offered by the contact form.
type Site struct {
	CompanyName    string                   `yaml:"company_name"`
	Tagline        string                   `yaml:"tagline"`
	WebsiteURL     string                   `yaml:"website_url"`
	SupportEmail   string                   `yaml:"support_email"`
	SupportPhone   string                   `yaml:"support_phone"`
	WhatsAppURL    string                   `yaml:"whatsapp_url"`
	ResponseWindow string                   `yaml:"response_window"`
	Timezone       string                   `yaml:"timezone"`
	Services       []domain.ServiceCategory `yaml:"services"`
}

// ServiceValues returns the accepted values of the service field.
func (s *Site) ServiceValues() []string {
	values := make([]string, 0, len(s.Services))
	for _, svc := range s.Services {
		values = append(values, svc.Value)
	}
	return values
}

// LoadSite reads the site file at path, falling back to the embedded
// defaults when path is empty. Fields missing from the file keep their
// default values.
func LoadSite(path string) (*Site, error) {
	var site Site
	if err := yaml.Unmarshal(defaultSiteYAML, &site); err != nil {
		return nil, fmt.Errorf("parse default site config: %w", err)
	}
	if path == "" {
		return &site, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read site config %s: %w", path, err)
	}

	var override Site
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return nil, fmt.Errorf("parse site config %s: %w", path, err)
	}
	site.merge(&override)

	if len(site.Services) == 0 {
		return nil, fmt.Errorf("site config %s: at least one service is required", path)
	}
	return &site, nil
}

func (s *Site) merge(o *Site) {
	setIf := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setIf(&s.CompanyName, o.CompanyName)
	setIf(&s.Tagline, o.Tagline)
	setIf(&s.WebsiteURL, o.WebsiteURL)
	setIf(&s.SupportEmail, o.SupportEmail)
	setIf(&s.SupportPhone, o.SupportPhone)
	setIf(&s.WhatsAppURL, o.WhatsAppURL)
	setIf(&s.ResponseWindow, o.ResponseWindow)
	setIf(&s.Timezone, o.Timezone)
	if len(o.Services) > 0 {
		s.Services = o.Services
	}
}
