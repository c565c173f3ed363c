// Package catalog loads the static data compiled into the service: the legal aid
// directory, the document templates and the seed blog posts.
package catalog

import (
	_ "embed"
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/legalbridge/legalbridge-api/models"
)

//go:embed organizations.yaml
var organizationsYAML []byte

//go:embed templates.yaml
var templatesYAML []byte

//go:embed blogs.yaml
var blogsYAML []byte

var placeholderPattern = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// Catalog holds the static data of the service
type Catalog struct {
	Organizations []models.Organization
	Templates     []models.DocumentTemplate
	Blogs         []models.Blog

	orgIndex      map[string]int
	templateIndex map[string]int
}

// Load parses and validates the embedded catalog files
func Load() (*Catalog, error) {
	return Parse(organizationsYAML, templatesYAML, blogsYAML)
}

// MustLoad is Load for program start up
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Parse builds a catalog from raw yaml documents
func Parse(orgs, templates, blogs []byte) (*Catalog, error) {
	c := &Catalog{
		orgIndex:      make(map[string]int),
		templateIndex: make(map[string]int),
	}
	if err := yaml.Unmarshal(orgs, &c.Organizations); err != nil {
		return nil, fmt.Errorf("failed to parse organizations: %w", err)
	}
	if err := yaml.Unmarshal(templates, &c.Templates); err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	if err := yaml.Unmarshal(blogs, &c.Blogs); err != nil {
		return nil, fmt.Errorf("failed to parse blogs: %w", err)
	}

	// contact counts and the revealed set are keyed by name
	for i, o := range c.Organizations {
		if o.Name == "" {
			return nil, fmt.Errorf("organization %d has no name", i)
		}
		if _, dup := c.orgIndex[o.Name]; dup {
			return nil, fmt.Errorf("duplicate organization name %q", o.Name)
		}
		c.orgIndex[o.Name] = i
	}

	for i, t := range c.Templates {
		if _, dup := c.templateIndex[t.Kind]; dup {
			return nil, fmt.Errorf("duplicate template kind %q", t.Kind)
		}
		if missing := UndefinedPlaceholders(t); len(missing) > 0 {
			return nil, fmt.Errorf("template %q has placeholders without fields: %v", t.Kind, missing)
		}
		c.templateIndex[t.Kind] = i
	}
	return c, nil
}

// Organization returns the organisation with the given name
func (c *Catalog) Organization(name string) (models.Organization, bool) {
	i, ok := c.orgIndex[name]
	if !ok {
		return models.Organization{}, false
	}
	return c.Organizations[i], true
}

// Template returns the document template for a kind
func (c *Catalog) Template(kind string) (models.DocumentTemplate, bool) {
	i, ok := c.templateIndex[kind]
	if !ok {
		return models.DocumentTemplate{}, false
	}
	return c.Templates[i], true
}

// UndefinedPlaceholders lists the placeholder tokens of a template body that have
// no matching field definition
func UndefinedPlaceholders(t models.DocumentTemplate) []string {
	defined := make(map[string]bool, len(t.Fields))
	for _, f := range t.Fields {
		defined[f.ID] = true
	}

	var missing []string
	seen := make(map[string]bool)
	for _, m := range placeholderPattern.FindAllStringSubmatch(t.Template, -1) {
		id := m[1]
		if !defined[id] && !seen[id] {
			missing = append(missing, id)
			seen[id] = true
		}
	}
	return missing
}
