package schema

import (
	"encoding/json"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Message is one entry in the conversation sent to the chat-completion
// provider. Assistant messages may carry tool calls; tool messages carry
// the originating call identifier and the serialized result content.
type Message struct {
	Role       string     `json:"role"` // system, user, assistant, tool
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// ToolCall represents a tool invocation requested by the model
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"` // "function"
	Function FunctionCall `json:"function"`
}

// FunctionCall carries the tool name and its JSON-encoded arguments
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ToolDefinition describes one registered tool in the wire format the
// provider expects for function calling
type ToolDefinition struct {
	Type     string             `json:"type"` // "function"
	Function FunctionDefinition `json:"function"`
}

// FunctionDefinition is the name, description and parameter schema of a tool
type FunctionDefinition struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Parameters  *jsonschema.Schema `json:"parameters,omitempty"`
}

// CompletionRequest represents one chat-completion call. The generation
// knobs are passed through to the provider unchanged.
type CompletionRequest struct {
	Messages    []Message        `json:"messages"`
	Tools       []ToolDefinition `json:"tools,omitempty"`
	ToolChoice  string           `json:"tool_choice,omitempty"`
	Temperature float64          `json:"temperature,omitempty"`
	MaxTokens   uint             `json:"max_tokens,omitempty"`
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Message role constants
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Tool choice constants
const (
	ToolChoiceAuto = "auto"
	ToolChoiceNone = "none"
)

// Tool call type
const (
	ToolTypeFunction = "function"
)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewSystemMessage returns a system message with the given instructions
func NewSystemMessage(text string) Message {
	return Message{Role: RoleSystem, Content: text}
}

// NewUserMessage returns a user message with the given text
func NewUserMessage(text string) Message {
	return Message{Role: RoleUser, Content: text}
}

// NewToolMessage returns a tool message pairing a call identifier with
// its serialized result content
func NewToolMessage(callID, content string) Message {
	return Message{Role: RoleTool, ToolCallID: callID, Content: content}
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Arguments returns the call arguments as raw JSON
func (c ToolCall) Arguments() json.RawMessage {
	return json.RawMessage(c.Function.Arguments)
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (m Message) String() string {
	return types.Stringify(m)
}
