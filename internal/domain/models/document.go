// Package models contains the domain types stored in the document database.
package models

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Field names used by the contacts collection.
const (
	FieldID        = "_id"
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldErrors    = "errors"
)

// Document is an ordered mapping of field names to values. It is used both
// for query filters and for stored records.
type Document = bson.D

// Identifier is the unique value the store assigns to a Document.
type Identifier = primitive.ObjectID

// NewDocument builds a single-field document, typically an equality filter.
func NewDocument(key string, value interface{}) Document {
	return Document{{Key: key, Value: value}}
}

// Lookup returns the value stored under key and whether it was present.
func Lookup(doc Document, key string) (interface{}, bool) {
	for _, e := range doc {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// IdentifierOf extracts the ObjectID stored in the document's _id field.
func IdentifierOf(doc Document) (Identifier, error) {
	v, ok := Lookup(doc, FieldID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("document has no %s field", FieldID)
	}
	id, ok := v.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("document %s is %T, not an ObjectID", FieldID, v)
	}
	return id, nil
}
