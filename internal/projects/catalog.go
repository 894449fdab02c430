// Package projects holds the static project records shown on the page: the
// floating cards, the projects grid and the per-project detail pages.
package projects

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

//go:embed data.yaml
var defaultData []byte

var (
	ErrNotFound       = errors.New("project not found")
	ErrInvalidCatalog = errors.New("invalid project catalog")
)

// Project is one portfolio record.
type Project struct {
	ID               string   `yaml:"id"`
	Title            string   `yaml:"title"`
	Slug             string   `yaml:"slug"`
	Description      string   `yaml:"description"`
	ShortDescription string   `yaml:"short_description"`
	Image            string   `yaml:"image"`
	Featured         bool     `yaml:"featured"`
	TechStack        []string `yaml:"tech_stack"`
	Link             string   `yaml:"link,omitempty"`
	GitHub           string   `yaml:"github,omitempty"`
	Year             int      `yaml:"year"`
}

// Tags returns at most limit tech tags and how many were left out.
func (p Project) Tags(limit int) ([]string, int) {
	if limit < 0 || len(p.TechStack) <= limit {
		return p.TechStack, 0
	}
	return p.TechStack[:limit], len(p.TechStack) - limit
}

// PrimaryLink is the live link if present, else the source link.
func (p Project) PrimaryLink() string {
	if p.Link != "" {
		return p.Link
	}
	return p.GitHub
}

type document struct {
	Projects []Project `yaml:"projects"`
}

// Catalog is an immutable, ordered set of projects with unique slugs.
type Catalog struct {
	projects []Project
	bySlug   map[string]int
	source   string
}

// Default returns the catalog compiled into the binary.
func Default() *Catalog {
	c, err := Parse(defaultData)
	if err != nil {
		panic(fmt.Sprintf("embedded project data: %v", err))
	}
	c.source = "embedded"
	return c
}

// Load reads a catalog from path; an empty path yields the default catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read projects %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse projects %s: %w", path, err)
	}
	c.source = path
	return c, nil
}

// Parse decodes and validates a YAML project document. Records without an id
// get a random one.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return New(doc.Projects)
}

// New validates records and builds a catalog from them.
func New(records []Project) (*Catalog, error) {
	c := &Catalog{
		projects: make([]Project, 0, len(records)),
		bySlug:   make(map[string]int, len(records)),
	}
	ids := make(map[string]bool, len(records))
	for i, p := range records {
		p.Slug = strings.TrimSpace(p.Slug)
		if p.Slug == "" {
			return nil, fmt.Errorf("%w: record %d has no slug", ErrInvalidCatalog, i)
		}
		if p.Title == "" {
			return nil, fmt.Errorf("%w: %s has no title", ErrInvalidCatalog, p.Slug)
		}
		if _, dup := c.bySlug[p.Slug]; dup {
			return nil, fmt.Errorf("%w: duplicate slug %q", ErrInvalidCatalog, p.Slug)
		}
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if ids[p.ID] {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidCatalog, p.ID)
		}
		ids[p.ID] = true
		p.TechStack = append([]string(nil), p.TechStack...)
		c.bySlug[p.Slug] = len(c.projects)
		c.projects = append(c.projects, p)
	}
	return c, nil
}

func (c *Catalog) Len() int { return len(c.projects) }

// Source names where the catalog was read from.
func (c *Catalog) Source() string { return c.source }

func (c *Catalog) All() []Project {
	return append([]Project(nil), c.projects...)
}

// Featured returns the featured records in catalog order.
func (c *Catalog) Featured() []Project {
	var out []Project
	for _, p := range c.projects {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

func (c *Catalog) BySlug(slug string) (Project, error) {
	i, ok := c.bySlug[slug]
	if !ok {
		return Project{}, fmt.Errorf("%w: %q", ErrNotFound, slug)
	}
	return c.projects[i], nil
}
