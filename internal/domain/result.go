package domain

// OperationResult is the envelope every operation invocation produces.
// Result is set iff Success; ErrorMessage is set iff not.
type OperationResult struct {
	Success       bool           `json:"success"`
	Result        *float64       `json:"result,omitempty"`
	ErrorMessage  string         `json:"error_message,omitempty"`
	OperationName string         `json:"operation_name"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// PromptResult is the envelope every prompt generation produces.
// Content is empty iff not Success.
type PromptResult struct {
	Success      bool           `json:"success"`
	Content      string         `json:"content"`
	ErrorMessage string         `json:"error_message,omitempty"`
	PromptName   string         `json:"prompt_name"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

func OperationSucceeded(name string, value float64, metadata map[string]any) OperationResult {
	return OperationResult{
		Success:       true,
		Result:        &value,
		OperationName: name,
		Metadata:      metadata,
	}
}

func OperationFailed(name string, err error) OperationResult {
	msg := Message(err)
	if msg == "" {
		msg = "operation failed"
	}
	return OperationResult{
		Success:       false,
		ErrorMessage:  msg,
		OperationName: name,
	}
}

// Value returns the numeric result, or zero for a failed result.
func (r OperationResult) Value() float64 {
	if r.Result == nil {
		return 0
	}
	return *r.Result
}

func PromptSucceeded(name, content string, metadata map[string]any) PromptResult {
	return PromptResult{
		Success:    true,
		Content:    content,
		PromptName: name,
		Metadata:   metadata,
	}
}

func PromptFailed(name string, err error) PromptResult {
	msg := Message(err)
	if msg == "" {
		msg = "prompt generation failed"
	}
	return PromptResult{
		Success:      false,
		ErrorMessage: msg,
		PromptName:   name,
	}
}
