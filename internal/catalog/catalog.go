// Package catalog serves the curated learning resources and roadmap
// templates bundled with the service.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pathfinder-edu/pathfinder-backend/internal/analysis"
)

//go:embed resources.yaml
var resourcesYAML []byte

//go:embed roadmaps.yaml
var roadmapsYAML []byte

type Course struct {
	Title      string  `yaml:"title" json:"title"`
	Instructor string  `yaml:"instructor" json:"instructor"`
	Rating     float64 `yaml:"rating" json:"rating"`
	Students   string  `yaml:"students" json:"students"`
	URL        string  `yaml:"url" json:"url"`
	Level      string  `yaml:"level" json:"level"`
}

type ResourceGroup struct {
	Domain  string            `yaml:"domain" json:"domain"`
	Keys    []analysis.Domain `yaml:"keys" json:"-"`
	Courses []Course          `yaml:"courses" json:"courses"`
}

type Stages struct {
	Foundation []string `yaml:"foundation" json:"foundation"`
	Core       []string `yaml:"core" json:"core"`
	Advanced   []string `yaml:"advanced" json:"advanced"`
}

type Roadmap struct {
	Career  string            `yaml:"career" json:"career"`
	Domains []analysis.Domain `yaml:"domains" json:"-"`
	Stages  Stages            `yaml:"roadmap" json:"roadmap"`
}

// Catalog is read-only after Load.
type Catalog struct {
	resources []ResourceGroup
	roadmaps  []Roadmap
}

// Load parses the embedded catalog files.
func Load() (*Catalog, error) {
	return Parse(resourcesYAML, roadmapsYAML)
}

// Parse builds a Catalog from resource and roadmap YAML documents.
func Parse(resources, roadmaps []byte) (*Catalog, error) {
	c := &Catalog{}
	if err := yaml.Unmarshal(resources, &c.resources); err != nil {
		return nil, fmt.Errorf("parse resources: %w", err)
	}
	if err := yaml.Unmarshal(roadmaps, &c.roadmaps); err != nil {
		return nil, fmt.Errorf("parse roadmaps: %w", err)
	}

	for _, g := range c.resources {
		for _, k := range g.Keys {
			if !k.Valid() {
				return nil, fmt.Errorf("resource group %q: unknown domain key %q", g.Domain, k)
			}
		}
	}
	for _, r := range c.roadmaps {
		for _, k := range r.Domains {
			if !k.Valid() {
				return nil, fmt.Errorf("roadmap %q: unknown domain key %q", r.Career, k)
			}
		}
	}
	return c, nil
}

// Resources lists course groups. domain matches a group name case-insensitively;
// query matches course titles and instructors. Empty filters match everything,
// and groups left without courses are dropped.
func (c *Catalog) Resources(domain, query string) []ResourceGroup {
	domain = strings.TrimSpace(domain)
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]ResourceGroup, 0, len(c.resources))
	for _, g := range c.resources {
		if domain != "" && !strings.EqualFold(g.Domain, domain) {
			continue
		}
		if query == "" {
			out = append(out, g)
			continue
		}
		var courses []Course
		for _, course := range g.Courses {
			if strings.Contains(strings.ToLower(course.Title), query) ||
				strings.Contains(strings.ToLower(course.Instructor), query) {
				courses = append(courses, course)
			}
		}
		if len(courses) > 0 {
			out = append(out, ResourceGroup{Domain: g.Domain, Keys: g.Keys, Courses: courses})
		}
	}
	return out
}

// Domains returns the resource group names in catalog order.
func (c *Catalog) Domains() []string {
	names := make([]string, 0, len(c.resources))
	for _, g := range c.resources {
		names = append(names, g.Domain)
	}
	return names
}

// ResourcesFor returns the group serving an analysis domain.
func (c *Catalog) ResourcesFor(key analysis.Domain) (ResourceGroup, bool) {
	for _, g := range c.resources {
		for _, k := range g.Keys {
			if k == key {
				return g, true
			}
		}
	}
	return ResourceGroup{}, false
}

// RoadmapFor returns the roadmap template serving an analysis domain.
func (c *Catalog) RoadmapFor(key analysis.Domain) (Roadmap, bool) {
	for _, r := range c.roadmaps {
		for _, k := range r.Domains {
			if k == key {
				return r, true
			}
		}
	}
	return Roadmap{}, false
}
