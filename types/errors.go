/*
Copyright © 2025 The Ticked Authors
*/
package types

import "fmt"

// MCPError carries a machine-readable failure over the MCP boundary.
// Code is a stable SCREAMING_SNAKE identifier clients can branch on; Message
// is for humans; Details holds optional context such as the offending field.
type MCPError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewMCPError builds an MCPError. Details may be nil.
func NewMCPError(code string, message string, details map[string]interface{}) *MCPError {
	return &MCPError{
		Code:    code,
		Message: message,
		Details: details,
	}
}
