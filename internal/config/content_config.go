package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	siteDirEnvVar        = "SITE_DIR"
	contentSourcesEnvVar = "CONTENT_SOURCES_FILE"
)

type ContentConfig interface {
	GetSiteDir() string
	GetContentSourcesFile() string
}

// ContentSources maps a page identifier (the body's data-cms-page) to the
// site-relative path of its JSON bundle.
type ContentSources struct {
	Pages map[string]string `yaml:"pages" validate:"required,min=1,dive,keys,required,endkeys,required,startswith=/"`
}

type Content struct{}

var _ ContentConfig = Content{}

func (Content) GetSiteDir() string {
	return GetEnv(siteDirEnvVar, "./public")
}

// GetContentSourcesFile returns the optional YAML file overriding the default
// page sources. Empty means defaults.
func (Content) GetContentSourcesFile() string {
	return GetEnv(contentSourcesEnvVar, "")
}

func LoadContentSources(path string) (*ContentSources, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content sources file: %w", err)
	}

	var sources ContentSources
	if err := yaml.Unmarshal(data, &sources); err != nil {
		return nil, fmt.Errorf("unmarshal content sources file: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(sources); err != nil {
		return nil, fmt.Errorf("validate content sources file: %w", err)
	}

	return &sources, nil
}
