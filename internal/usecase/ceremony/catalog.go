// Package ceremony holds the built-in catalog of Scrum ceremonies.
package ceremony

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/johnquangdev/scrum-assistant/internal/domain/entities"
)

//go:embed ceremonies.yaml
var builtin []byte

// Ceremony describes one kind of Scrum meeting
type Ceremony struct {
	Type         entities.MeetingType `yaml:"type" json:"type"`
	Name         string               `yaml:"name" json:"name"`
	Description  string               `yaml:"description" json:"description"`
	Duration     string               `yaml:"duration" json:"duration"`
	Frequency    string               `yaml:"frequency" json:"frequency"`
	Participants string               `yaml:"participants" json:"participants"`
	Agenda       []string             `yaml:"agenda" json:"agenda"`
	Tips         []string             `yaml:"tips" json:"tips"`
}

// Catalog is an ordered, read-only set of ceremonies
type Catalog struct {
	ceremonies []Ceremony
	byType     map[entities.MeetingType]int
}

// Default loads the embedded catalog
func Default() (*Catalog, error) {
	return Load(builtin)
}

// Load parses a YAML list of ceremonies. Every type must be a known
// meeting type and appear once.
func Load(data []byte) (*Catalog, error) {
	var list []Ceremony
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse ceremony catalog: %w", err)
	}

	c := &Catalog{byType: make(map[entities.MeetingType]int, len(list))}
	for _, cer := range list {
		t, err := entities.ParseMeetingType(string(cer.Type))
		if err != nil {
			return nil, fmt.Errorf("ceremony %q: %w", cer.Name, err)
		}
		if _, dup := c.byType[t]; dup {
			return nil, fmt.Errorf("ceremony %q: duplicate type %s", cer.Name, t)
		}
		cer.Type = t
		c.byType[t] = len(c.ceremonies)
		c.ceremonies = append(c.ceremonies, cer)
	}
	return c, nil
}

// All returns every ceremony in catalog order
func (c *Catalog) All() []Ceremony {
	out := make([]Ceremony, len(c.ceremonies))
	for i, cer := range c.ceremonies {
		out[i] = cer.clone()
	}
	return out
}

// Get returns the ceremony for t
func (c *Catalog) Get(t entities.MeetingType) (Ceremony, bool) {
	if c == nil {
		return Ceremony{}, false
	}
	i, ok := c.byType[t]
	if !ok {
		return Ceremony{}, false
	}
	return c.ceremonies[i].clone(), true
}

func (cer Ceremony) clone() Ceremony {
	cer.Agenda = append([]string(nil), cer.Agenda...)
	cer.Tips = append([]string(nil), cer.Tips...)
	return cer
}
