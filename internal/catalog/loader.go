package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlDocument is the top-level content document. JSON documents parse through
// the same structures. Keywords stay a raw node so the document's key order
// becomes the catalog order.
type yamlDocument struct {
	Keywords yaml.Node            `yaml:"keywords"`
	Worlds   map[string]yamlWorld `yaml:"worlds"`
}

// yamlKeyword is one entry of the keywords mapping.
type yamlKeyword struct {
	Keyword string `yaml:"keyword"`
	Badge   string `yaml:"badge"`
	Status  string `yaml:"status"`
}

// yamlWorld is one entry of the worlds mapping.
type yamlWorld struct {
	Title       string      `yaml:"title"`
	Motto       string      `yaml:"motto"`
	Description string      `yaml:"description"`
	Areas       []string    `yaml:"areas"`
	Guests      []yamlGuest `yaml:"guests"`
}

type yamlGuest struct {
	Name  string `yaml:"name"`
	Role  string `yaml:"role"`
	Room  string `yaml:"room"`
	Image string `yaml:"image"`
}

// Parse decodes and validates a catalog document (YAML or JSON).
//
// Postcondition: Returns a validated Catalog, or an error wrapping ErrLoadFailure.
func Parse(data []byte) (*Catalog, error) {
	var doc yamlDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parsing catalog document: %w", ErrLoadFailure, err)
	}

	if doc.Keywords.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: keywords must be a mapping of world id to keyword entry", ErrLoadFailure)
	}

	content := doc.Keywords.Content
	worlds := make([]*World, 0, len(content)/2)
	seen := make(map[string]bool, len(content)/2)
	for i := 0; i+1 < len(content); i += 2 {
		id := content[i].Value

		var kw yamlKeyword
		if err := content[i+1].Decode(&kw); err != nil {
			return nil, fmt.Errorf("%w: keyword entry %q: %w", ErrLoadFailure, id, err)
		}
		yw, ok := doc.Worlds[id]
		if !ok {
			return nil, fmt.Errorf("%w: keyword entry %q has no world entry", ErrLoadFailure, id)
		}
		seen[id] = true
		worlds = append(worlds, convertYAMLWorld(id, kw, yw))
	}

	for id := range doc.Worlds {
		if !seen[id] {
			return nil, fmt.Errorf("%w: world %q has no keyword entry", ErrLoadFailure, id)
		}
	}

	cat, err := New(worlds)
	if err != nil {
		return nil, fmt.Errorf("%w: validating catalog: %w", ErrLoadFailure, err)
	}
	return cat, nil
}

// LoadFile reads and parses a catalog document from disk.
//
// Postcondition: Returns a validated Catalog, or an error wrapping ErrLoadFailure.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrLoadFailure, path, err)
	}
	return Parse(data)
}

func convertYAMLWorld(id string, kw yamlKeyword, yw yamlWorld) *World {
	w := &World{
		ID:          id,
		Keyword:     kw.Keyword,
		Title:       yw.Title,
		Motto:       yw.Motto,
		Description: strings.TrimSpace(yw.Description),
		Areas:       yw.Areas,
		BadgeRef:    kw.Badge,
		StatusRef:   kw.Status,
	}
	if w.BadgeRef == "" {
		w.BadgeRef = "badge-" + id + "-large"
	}
	if w.StatusRef == "" {
		w.StatusRef = "status-" + id
	}
	for _, g := range yw.Guests {
		w.Guests = append(w.Guests, Guest{
			Name:  g.Name,
			Role:  g.Role,
			Room:  g.Room,
			Image: g.Image,
		})
	}
	return w
}
