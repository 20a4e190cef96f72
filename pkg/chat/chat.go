/*
chat implements the two-pass tool-calling orchestration loop. A user
message is sent to the chat-completion provider together with the tool
descriptors; any requested tools are invoked and their results fed back
to the provider for a final natural-language reply.
*/
package chat

import (
	"context"
	"encoding/json"
	"fmt"

	// Packages
	schema "github.com/abeyrathna-np/meteo/pkg/schema"
	tool "github.com/abeyrathna-np/meteo/pkg/tool"
	errgroup "golang.org/x/sync/errgroup"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Completer is the chat-completion capability of a provider
type Completer interface {
	Complete(ctx context.Context, request schema.CompletionRequest) (*schema.Message, error)
}

// Chat orchestrates one user message through the tool-calling protocol
type Chat struct {
	completer Completer
	toolkit   *tool.Toolkit
	opt
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a chat orchestrator for the given provider and toolkit
func New(completer Completer, toolkit *tool.Toolkit, opts ...Opt) (*Chat, error) {
	chat := &Chat{
		completer: completer,
		toolkit:   toolkit,
		opt:       defaults(),
	}
	for _, fn := range opts {
		if err := fn(&chat.opt); err != nil {
			return nil, err
		}
	}
	return chat, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Generate answers one user message and returns the final reply text.
// Faults from the provider or from message assembly are converted into
// an apology so that the caller always receives text.
func (c *Chat) Generate(ctx context.Context, message string) string {
	reply, err := c.generate(ctx, message)
	if err != nil {
		return fmt.Sprintf("I'm sorry, I wasn't able to answer that: %v", err)
	}
	return reply
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (c *Chat) generate(ctx context.Context, message string) (string, error) {
	definitions, err := c.toolkit.Definitions()
	if err != nil {
		return "", err
	}

	// First pass: offer the tools and let the model decide
	first, err := c.completer.Complete(ctx, schema.CompletionRequest{
		Messages: []schema.Message{
			schema.NewSystemMessage(c.system),
			schema.NewUserMessage(message),
		},
		Tools:       definitions,
		ToolChoice:  schema.ToolChoiceAuto,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", err
	}
	if len(first.ToolCalls) == 0 {
		return first.Content, nil
	}

	// Invoke the requested tools and pair each result with its call
	results := c.run(ctx, first.ToolCalls)

	// Second pass: the assistant message is echoed verbatim, followed by
	// one tool message per call, in request order. No tools are offered
	// so that the model cannot recurse.
	messages := []schema.Message{
		schema.NewSystemMessage(c.system),
		schema.NewUserMessage(message),
		*first,
	}
	for i, call := range first.ToolCalls {
		messages = append(messages, schema.NewToolMessage(call.ID, results[i]))
	}
	second, err := c.completer.Complete(ctx, schema.CompletionRequest{
		Messages:    messages,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", err
	}
	return second.Content, nil
}

// run invokes the requested tools in parallel and returns one serialized
// result per call, in request order. A tool fault becomes the error text
// for that call rather than aborting the batch.
func (c *Chat) run(ctx context.Context, calls []schema.ToolCall) []string {
	var group errgroup.Group
	results := make([]string, len(calls))
	for i, call := range calls {
		group.Go(func() error {
			result, err := c.toolkit.Run(ctx, call.Function.Name, call.Arguments())
			if err != nil {
				results[i] = err.Error()
			} else if data, err := json.Marshal(result); err == nil {
				results[i] = string(data)
			} else {
				results[i] = fmt.Sprint(result)
			}
			return nil
		})
	}
	group.Wait()
	return results
}
