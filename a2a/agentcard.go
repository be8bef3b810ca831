package a2a

// AgentCardPath is the well-known path an agent serves its card on.
const AgentCardPath = "/.well-known/agent-card.json"

// AgentCard describes an agent and what it can do.
type AgentCard struct {
	Name               string            `json:"name"`
	Description        string            `json:"description"`
	URL                string            `json:"url"`
	Version            string            `json:"version"`
	ProtocolVersion    string            `json:"protocolVersion,omitempty"`
	DefaultInputModes  []string          `json:"defaultInputModes"`
	DefaultOutputModes []string          `json:"defaultOutputModes"`
	Capabilities       AgentCapabilities `json:"capabilities"`
	Skills             []AgentSkill      `json:"skills"`
}

// AgentCapabilities lists optional protocol features the agent supports.
type AgentCapabilities struct {
	Streaming  bool             `json:"streaming,omitempty"`
	Extensions []AgentExtension `json:"extensions,omitempty"`
}

// AgentExtension declares a protocol extension the agent understands.
type AgentExtension struct {
	URI         string         `json:"uri"`
	Description string         `json:"description,omitempty"`
	Required    bool           `json:"required,omitempty"`
	Params      map[string]any `json:"params,omitempty"`
}

// AgentSkill describes one capability of the agent.
type AgentSkill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Examples    []string `json:"examples,omitempty"`
}

// SupportsExtension reports whether the card declares the extension uri.
func (c AgentCard) SupportsExtension(uri string) bool {
	for _, ext := range c.Capabilities.Extensions {
		if ext.URI == uri {
			return true
		}
	}
	return false
}
