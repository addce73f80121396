package capabilities

import "gopkg.in/yaml.v3"

// ModelCapabilities is what the chat service needs to know about a model.
type ModelCapabilities struct {
	// Model identifier (set during YAML unmarshaling)
	ID string `yaml:"-" json:"id"`

	DisplayName string `yaml:"display_name" json:"display_name"`
	Description string `yaml:"description" json:"description"`

	// SupportsTools gates the getAll* function-calling loop.
	// Models without it get the data outline inlined into the prompt.
	SupportsTools bool `yaml:"supports_tools" json:"supports_tools"`

	ContextWindow int `yaml:"context_window" json:"context_window"`
	MaxOutput     int `yaml:"max_output" json:"max_output"`
}

// ProviderCapabilities represents all models for a provider
type ProviderCapabilities struct {
	Provider string              `yaml:"provider" json:"provider"`
	Models   []ModelCapabilities `yaml:"-" json:"models"` // Ordered slice, populated by custom unmarshaler
}

// UnmarshalYAML keeps models in file order so the first one listed is the
// provider's preferred model.
func (p *ProviderCapabilities) UnmarshalYAML(node *yaml.Node) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == "provider" {
			p.Provider = node.Content[i+1].Value
			break
		}
	}

	type modelsOnly struct {
		Models map[string]ModelCapabilities `yaml:"models"`
	}
	var m modelsOnly
	if err := node.Decode(&m); err != nil {
		return err
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value != "models" {
			continue
		}
		modelsNode := node.Content[i+1]
		// key, value, key, value...
		for j := 0; j+1 < len(modelsNode.Content); j += 2 {
			modelID := modelsNode.Content[j].Value
			if model, ok := m.Models[modelID]; ok {
				model.ID = modelID
				p.Models = append(p.Models, model)
			}
		}
		break
	}

	return nil
}
