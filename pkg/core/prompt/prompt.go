// Package prompt provides a centralized prompt library for LLM interactions.
// Prompts are defined in JSON (or Hjson) files, compiled in as defaults and
// optionally overridden from a directory at runtime.
package prompt

// PromptTemplate represents a reusable prompt with metadata
type PromptTemplate struct {
	ID             string `json:"id"`                   // Unique identifier (e.g., "commentary.deal_review")
	Name           string `json:"name"`                 // Human-readable name
	Category       string `json:"category"`             // Category (commentary, ...)
	Description    string `json:"description"`          // Description of prompt purpose
	SystemPrompt   string `json:"system_prompt"`        // The system prompt content
	UserPromptTmpl string `json:"user_prompt_template"` // Go template for user prompt
	Version        string `json:"version"`              // Version for tracking changes
}

// PromptExecutionContext holds runtime values for prompt execution
type PromptExecutionContext struct {
	Variables map[string]interface{} // Key-value pairs for template substitution
}

// NewContext creates a new execution context
func NewContext() *PromptExecutionContext {
	return &PromptExecutionContext{
		Variables: make(map[string]interface{}),
	}
}

// Set adds a variable to the context
func (c *PromptExecutionContext) Set(key string, value interface{}) *PromptExecutionContext {
	c.Variables[key] = value
	return c
}
