package entity

import "encoding/json"

// ChatCompletionRequestMessage is a single message of the conversation so far.
type ChatCompletionRequestMessage struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	Name       *string    `json:"name,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID *string    `json:"tool_call_id,omitempty"`
}

// Message roles
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ToolCall is a tool invocation generated by the model.
type ToolCall struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Function ToolCallFunction `json:"function"`
}

type ToolCallFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Tool describes a function the model may call.
type Tool struct {
	Type     string       `json:"type"`
	Function ToolFunction `json:"function"`
}

type ToolFunction struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

// ToolChoice controls which (if any) tool is called by the model. On the wire
// it is either a bare mode string ("none", "auto", "required") or an object
// naming a specific tool; Mode and Tool are mutually exclusive.
type ToolChoice struct {
	Mode string
	Tool *ToolChoiceTool
}

type ToolChoiceTool struct {
	Type     string             `json:"type"`
	Function ToolChoiceFunction `json:"function"`
}

type ToolChoiceFunction struct {
	Name string `json:"name"`
}

func (tc ToolChoice) MarshalJSON() ([]byte, error) {
	if tc.Tool != nil {
		return json.Marshal(tc.Tool)
	}
	return json.Marshal(tc.Mode)
}

func (tc *ToolChoice) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		tc.Tool = nil
		return json.Unmarshal(data, &tc.Mode)
	}
	tc.Mode = ""
	tc.Tool = &ToolChoiceTool{}
	return json.Unmarshal(data, tc.Tool)
}

// StreamOptions configures a streaming response. Only meaningful together
// with "stream": true.
type StreamOptions struct {
	IncludeUsage *bool `json:"include_usage,omitempty"`
}

// ChatResponseFormat constrains the format the model must output,
// e.g. {"type":"json_object"}.
type ChatResponseFormat struct {
	Type string `json:"type"`
}

// ChatCompletionRequestSampling selects one of the two mutually exclusive
// sampling strategies. Exactly two implementations exist: Temperature and
// TopP.
type ChatCompletionRequestSampling interface {
	sampling()
}

// Temperature adjusts the randomness of the generated text. Between 0.0
// and 2.0.
type Temperature float64

// TopP limits next-token selection to a subset of tokens with a cumulative
// probability above the threshold P. Between 0.0 and 1.0.
type TopP float64

func (Temperature) sampling() {}
func (TopP) sampling()        {}

// ChatCompletionRequest is a plain chat-completion request as accepted by the
// downstream inference engine.
type ChatCompletionRequest struct {
	Model            *string                        `json:"model,omitempty"`
	Messages         []ChatCompletionRequestMessage `json:"messages"`
	Temperature      *float64                       `json:"temperature,omitempty"`
	TopP             *float64                       `json:"top_p,omitempty"`
	NChoice          *uint64                        `json:"n_choice,omitempty"`
	Stream           *bool                          `json:"stream,omitempty"`
	StreamOptions    *StreamOptions                 `json:"stream_options,omitempty"`
	Stop             []string                       `json:"stop,omitempty"`
	MaxTokens        *uint64                        `json:"max_tokens,omitempty"`
	PresencePenalty  *float64                       `json:"presence_penalty,omitempty"`
	FrequencyPenalty *float64                       `json:"frequency_penalty,omitempty"`
	LogitBias        map[string]float64             `json:"logit_bias,omitempty"`
	User             *string                        `json:"user,omitempty"`

	// Legacy function-call mechanism, superseded by tools.
	Functions    []ToolFunction `json:"functions,omitempty"`
	FunctionCall *string        `json:"function_call,omitempty"`

	ResponseFormat *ChatResponseFormat `json:"response_format,omitempty"`
	ToolChoice     *ToolChoice         `json:"tool_choice,omitempty"`
	Tools          []Tool              `json:"tools,omitempty"`

	// Number of trailing user messages to use for context retrieval.
	ContextWindow *uint64 `json:"context_window,omitempty"`
}

// ChatCompletionsResponse is the non-streaming response of the inference
// engine.
type ChatCompletionsResponse struct {
	ID      string                 `json:"id"`
	Object  string                 `json:"object"`
	Created uint64                 `json:"created"`
	Model   string                 `json:"model"`
	Choices []ChatCompletionChoice `json:"choices"`
	Usage   Usage                  `json:"usage"`
}

type ChatCompletionChoice struct {
	Index        uint64                        `json:"index"`
	Message      ChatCompletionResponseMessage `json:"message"`
	FinishReason string                        `json:"finish_reason"`
}

type ChatCompletionResponseMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Usage struct {
	PromptTokens     uint64 `json:"prompt_tokens"`
	CompletionTokens uint64 `json:"completion_tokens"`
	TotalTokens      uint64 `json:"total_tokens"`
}
