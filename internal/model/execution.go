package model

// SupportedLanguage is a language the execution collaborator can run.
type SupportedLanguage string

const (
	LangJavaScript SupportedLanguage = "javascript"
	LangPython     SupportedLanguage = "python"
)

// ExecuteRequest is the request body for POST /v1/execute
type ExecuteRequest struct {
	Code     string            `json:"code"`
	Language SupportedLanguage `json:"language"`
}

// ExecutionResult is the outcome of one sandboxed run, as reported by
// the execution collaborator. ExecutionTime is in milliseconds.
type ExecutionResult struct {
	Output        string  `json:"output"`
	Error         string  `json:"error,omitempty"`
	ExecutionTime float64 `json:"executionTime,omitempty"`
}
