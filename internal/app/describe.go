package app

import (
	"context"

	"github.com/ivargr/snakehelp/internal/combination"
	"gopkg.in/yaml.v3"
)

type schemaDoc struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	FileName    string     `yaml:"file_name,omitempty"`
	FileEnding  string     `yaml:"file_ending,omitempty"`
	Template    string     `yaml:"template"`
	Parameters  []paramDoc `yaml:"parameters"`
	Minimal     []string   `yaml:"minimal_parameters,flow"`
}

type paramDoc struct {
	Name        string     `yaml:"name"`
	Type        string     `yaml:"type"`
	Default     *yaml.Node `yaml:"default,omitempty"`
	Description string     `yaml:"description,omitempty"`
}

// describe dumps the flattened view of a schema: the leaves a path is made
// of, with their declared defaults.
func (a *App) describe(_ context.Context, args []string) error {
	s, err := a.registry.Lookup(args[0])
	if err != nil {
		return err
	}
	tmpl, err := a.codec.Template(s, nil)
	if err != nil {
		return err
	}

	doc := schemaDoc{
		Name:        s.Name(),
		Description: s.Description(),
		FileName:    s.FileName(),
		FileEnding:  s.FileEnding(),
		Template:    tmpl,
		Minimal:     s.MinimalParameters(),
	}
	for _, f := range s.Flatten(false) {
		p := paramDoc{Name: f.Name, Type: f.Type.String(), Description: f.Description}
		if f.HasDefault() {
			p.Default = combination.CellNode(*f.Default)
		}
		doc.Parameters = append(doc.Parameters, p)
	}

	enc := yaml.NewEncoder(a.outW)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
