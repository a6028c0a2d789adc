package domain

import (
	"strings"
	"text/template"

	"go.trai.ch/zerr"
)

const (
	// SinglePackageTagTemplate is the default tag template of a workspace with one package.
	SinglePackageTagTemplate = "v{{ version }}"

	// WorkspaceTagTemplate is the default tag template of a workspace with many packages.
	WorkspaceTagTemplate = "{{ package }}-v{{ version }}"
)

// TagNamer renders the release tag of a package version.
type TagNamer interface {
	GitTag(packageName, version string) string
}

// DefaultTagTemplate returns the tag template used when none is configured.
func DefaultTagTemplate(packageCount int) string {
	if packageCount == 1 {
		return SinglePackageTagTemplate
	}
	return WorkspaceTagTemplate
}

// Project names the release tags of the packages in a workspace.
// Templates use `{{ package }}` and `{{ version }}`.
type Project struct {
	fallback  *template.Template
	templates map[string]*template.Template
}

// NewProject parses the default template and the per-package overrides.
func NewProject(defaultTemplate string, overrides map[string]string) (*Project, error) {
	fallback, err := parseTagTemplate("default", defaultTemplate)
	if err != nil {
		return nil, err
	}

	templates := make(map[string]*template.Template, len(overrides))
	for pkg, text := range overrides {
		t, err := parseTagTemplate(pkg, text)
		if err != nil {
			return nil, zerr.With(err, "package", pkg)
		}
		templates[pkg] = t
	}

	return &Project{fallback: fallback, templates: templates}, nil
}

// GitTag renders the release tag of the given package version.
// A template that fails to render yields an empty tag, which never matches a real tag.
func (p *Project) GitTag(packageName, version string) string {
	t, ok := p.templates[packageName]
	if !ok {
		t = p.fallback
	}

	t, err := t.Clone()
	if err != nil {
		return ""
	}
	t.Funcs(tagFuncs(packageName, version))

	var sb strings.Builder
	if err := t.Execute(&sb, nil); err != nil {
		return ""
	}
	return sb.String()
}

func parseTagTemplate(name, text string) (*template.Template, error) {
	t, err := template.New(name).Option("missingkey=error").Funcs(tagFuncs("", "")).Parse(text)
	if err != nil {
		parseErr := zerr.Wrap(err, ErrInvalidTagTemplate.Error())
		return nil, zerr.With(parseErr, "template", text)
	}
	return t, nil
}

func tagFuncs(packageName, version string) template.FuncMap {
	return template.FuncMap{
		"package": func() string { return packageName },
		"version": func() string { return version },
	}
}
