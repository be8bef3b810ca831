package backend

import (
	"github.com/spetersoncode/genui/a2a"
	"github.com/spetersoncode/genui/a2ui"
)

// Card describes the agent served at url.
func Card(url string) a2a.AgentCard {
	return a2a.AgentCard{
		Name:               "Image Generation Agent",
		Description:        "This agent generates images based on user descriptions.",
		URL:                url,
		Version:            "1.0.0",
		ProtocolVersion:    a2a.ProtocolVersion,
		DefaultInputModes:  []string{"text", "text/plain"},
		DefaultOutputModes: []string{"text", "text/plain"},
		Capabilities: a2a.AgentCapabilities{
			Streaming: true,
			Extensions: []a2a.AgentExtension{{
				URI:         a2ui.ExtensionURI,
				Description: "Renders the generated image with tuning widgets as A2UI surfaces.",
			}},
		},
		Skills: []a2a.AgentSkill{{
			ID:          "generate_images",
			Name:        "Image Generation",
			Description: "Generates images from text descriptions and refines them with interactive controls.",
			Tags:        []string{"image", "generation", "ai"},
			Examples:    []string{"Generate a blue cat", "Create an image of a sunset with size 1024"},
		}},
	}
}
