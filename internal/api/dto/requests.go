// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import "encoding/json"

// Write operation types accepted by the bulk endpoint.
const (
	OperationInsertOne  = "insertOne"
	OperationUpdateOne  = "updateOne"
	OperationUpdateMany = "updateMany"
	OperationReplaceOne = "replaceOne"
	OperationDeleteOne  = "deleteOne"
	OperationDeleteMany = "deleteMany"
)

// FindContactsRequest represents the query parameters for finding contacts.
type FindContactsRequest struct {
	LastName string `form:"lastName" binding:"required"`
}

// InsertContactRequest represents the query parameters for inserting a contact.
// The request body itself is an Extended JSON document.
type InsertContactRequest struct {
	BypassDocumentValidation *bool `form:"bypassDocumentValidation"`
}

// BulkWriteRequest represents the request body for a bulk write.
type BulkWriteRequest struct {
	Ordered                  *bool            `json:"ordered"`
	BypassDocumentValidation *bool            `json:"bypassDocumentValidation"`
	Operations               []WriteOperation `json:"operations" binding:"required,min=1,dive"`
}

// WriteOperation is one entry of a bulk write. Documents, filters and updates
// are Extended JSON objects.
type WriteOperation struct {
	Type        string          `json:"type" binding:"required,oneof=insertOne updateOne updateMany replaceOne deleteOne deleteMany"`
	Document    json.RawMessage `json:"document,omitempty"`
	Filter      json.RawMessage `json:"filter,omitempty"`
	Update      json.RawMessage `json:"update,omitempty"`
	Replacement json.RawMessage `json:"replacement,omitempty"`
	Upsert      *bool           `json:"upsert,omitempty"`
}
