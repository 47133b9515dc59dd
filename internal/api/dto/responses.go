// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import "encoding/json"

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}

// ContactsResponse represents the response for finding contacts. Each
// contact is a relaxed Extended JSON document.
type ContactsResponse struct {
	Contacts []json.RawMessage `json:"contacts"`
	Total    int               `json:"total"`
}

// ErrorIDsResponse represents the response for listing flagged contacts.
type ErrorIDsResponse struct {
	IDs []string `json:"ids"`
}

// InsertContactResponse represents the response for inserting a contact.
type InsertContactResponse struct {
	Status string `json:"status"`
}

// BulkWriteResponse represents the response for a bulk write.
type BulkWriteResponse struct {
	Status     string `json:"status"`
	Operations int    `json:"operations"`
}
