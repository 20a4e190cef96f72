package tool

import (
	"context"
	"encoding/json"

	// Packages
	meteo "github.com/abeyrathna-np/meteo"
	schema "github.com/abeyrathna-np/meteo/pkg/schema"
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Tool is an interface for a tool with a name, description and JSON schema
type Tool interface {
	// Return the name of the tool
	Name() string

	// Return the description of the tool
	Description() string

	// Return the JSON schema for the tool input
	Schema() (*jsonschema.Schema, error)

	// Run the tool with the given input as JSON (may be nil)
	Run(ctx context.Context, input json.RawMessage) (any, error)
}

// Toolkit is a collection of tools with unique names. Tools are offered
// to the model in declaration order.
type Toolkit struct {
	tools map[string]Tool
	names []string
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewToolkit creates a new toolkit with the given tools.
// Returns an error if any tool has an invalid or duplicate name.
func NewToolkit(tools ...Tool) (*Toolkit, error) {
	tk := &Toolkit{
		tools: make(map[string]Tool),
	}
	if err := tk.Register(tools...); err != nil {
		return nil, err
	}
	return tk, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Tools returns all tools in the toolkit, in registration order
func (tk *Toolkit) Tools() []Tool {
	result := make([]Tool, 0, len(tk.names))
	for _, name := range tk.names {
		result = append(result, tk.tools[name])
	}
	return result
}

// Count returns the number of registered tools
func (tk *Toolkit) Count() uint {
	return uint(len(tk.names))
}

// Register adds one or more tools to the toolkit.
// Returns an error if any tool has an invalid or duplicate name.
func (tk *Toolkit) Register(tools ...Tool) error {
	for _, t := range tools {
		name := t.Name()
		if !types.IsIdentifier(name) {
			return meteo.ErrBadParameter.Withf("invalid tool name: %q", name)
		}
		if _, exists := tk.tools[name]; exists {
			return meteo.ErrConflict.Withf("duplicate tool name: %q", name)
		}
		tk.tools[name] = t
		tk.names = append(tk.names, name)
	}
	return nil
}

// Lookup returns a tool by name, or nil if not found
func (tk *Toolkit) Lookup(name string) Tool {
	return tk.tools[name]
}

// Definitions returns the registered tools in the wire format the
// chat-completion provider expects for function calling
func (tk *Toolkit) Definitions() ([]schema.ToolDefinition, error) {
	result := make([]schema.ToolDefinition, 0, len(tk.names))
	for _, t := range tk.Tools() {
		params, err := t.Schema()
		if err != nil {
			return nil, meteo.ErrInternalServerError.Withf("schema generation failed for %q: %v", t.Name(), err)
		}
		result = append(result, schema.ToolDefinition{
			Type: schema.ToolTypeFunction,
			Function: schema.FunctionDefinition{
				Name:        t.Name(),
				Description: t.Description(),
				Parameters:  params,
			},
		})
	}
	return result, nil
}

// Run executes a tool by name with the given JSON input.
// Returns ErrNotFound if the tool is not registered, ErrBadParameter if
// the input is not valid JSON or does not match the tool's schema, and
// wraps any fault raised by the handler rather than letting it propagate raw.
func (tk *Toolkit) Run(ctx context.Context, name string, input json.RawMessage) (any, error) {
	// Lookup the tool
	tool := tk.Lookup(name)
	if tool == nil {
		return nil, meteo.ErrNotFound.Withf("tool not found: %q", name)
	}

	// Validate input against the tool schema if provided
	if len(input) > 0 {
		schema, err := tool.Schema()
		if err != nil {
			return nil, meteo.ErrBadParameter.Withf("schema generation failed: %v", err)
		}

		if schema != nil {
			// Unmarshal into a map for validation
			var mapInput map[string]any
			if err := json.Unmarshal(input, &mapInput); err != nil {
				return nil, meteo.ErrBadParameter.Withf("failed to unmarshal JSON input: %v", err)
			}

			// Validate against schema
			resolved, err := schema.Resolve(nil)
			if err != nil {
				return nil, meteo.ErrBadParameter.Withf("schema resolution failed: %v", err)
			}
			if err := resolved.Validate(mapInput); err != nil {
				return nil, meteo.ErrBadParameter.Withf("input validation failed: %v", err)
			}
		}
	}

	// Run the tool with raw JSON
	result, err := tool.Run(ctx, input)
	if err != nil {
		return nil, meteo.ErrToolExecution.Withf("%s: %v", name, err)
	}
	return result, nil
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (tk *Toolkit) String() string {
	return types.Stringify(tk.Tools())
}
