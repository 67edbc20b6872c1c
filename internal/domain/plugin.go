package domain

import (
	"context"

	"calcmcp/internal/schema"
)

// Plugin is the identity shared by operations and prompts.
type Plugin interface {
	Name() string
	Description() string
}

// Operation is a named, schema-bearing computation published as a tool.
// Execute must never panic past its own boundary and reports every failure
// through the returned envelope.
type Operation interface {
	Plugin
	InputSchema() schema.Schema
	// Validate reports whether in is inside the operation's mathematical
	// domain. It has no side effects.
	Validate(in schema.Input) bool
	Execute(ctx context.Context, in schema.Input) OperationResult
}

// Prompt is a named, schema-bearing template renderer published as a prompt.
type Prompt interface {
	Plugin
	ArgumentsSchema() schema.Schema
	ValidateArguments(args schema.Input) bool
	Generate(ctx context.Context, args schema.Input) PromptResult
}

// OperationFactory builds a fresh operation instance for registration.
type OperationFactory func() Operation

// PromptFactory builds a fresh prompt instance for registration.
type PromptFactory func() Prompt
