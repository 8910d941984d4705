package domain

// Tool and argument constraints.
const (
	// ToolSearchVulnerabilities is the name of the only published tool.
	ToolSearchVulnerabilities = "search_vulnerabilities"

	// ArgQuery is the name of the tool's single argument.
	ArgQuery = "query"

	// MinQueryLength is the minimum query length in characters.
	MinQueryLength = 3

	// MaxQueryLength is the maximum query length in characters.
	MaxQueryLength = 1000
)

// ToolDescriptor describes a tool published to the host.
// Descriptors are created once and never mutated.
type ToolDescriptor struct {
	// Name is the tool name the host calls.
	Name string

	// Description tells the host what the tool accepts and returns.
	Description string

	// InputSchema constrains the tool arguments.
	InputSchema InputSchema
}

// InputSchema is the JSON-schema subset needed to describe tool arguments.
type InputSchema struct {
	// Type is always "object".
	Type string

	// Properties maps argument names to their schema.
	Properties map[string]PropertySchema

	// Required lists the argument names that must be present.
	Required []string
}

// PropertySchema describes a single string argument.
type PropertySchema struct {
	Type        string
	Description string

	// MinLength and MaxLength bound the length in characters. Zero means unbounded.
	MinLength int
	MaxLength int
}

// Clone returns a deep copy of the descriptor.
func (d ToolDescriptor) Clone() ToolDescriptor {
	props := make(map[string]PropertySchema, len(d.InputSchema.Properties))
	for name, p := range d.InputSchema.Properties {
		props[name] = p
	}
	required := make([]string, len(d.InputSchema.Required))
	copy(required, d.InputSchema.Required)

	d.InputSchema.Properties = props
	d.InputSchema.Required = required
	return d
}
