// Package docdb provides the document database type constants.
package docdb

// Type represents the type of document database.
type Type string

const (
	// TypeMongoDB represents a MongoDB database.
	TypeMongoDB Type = "mongodb"
	// TypeCosmosDB represents an Azure Cosmos DB database (MongoDB API).
	TypeCosmosDB Type = "cosmosdb"
	// TypeFerretDB represents a FerretDB proxy speaking the MongoDB wire protocol.
	TypeFerretDB Type = "ferretdb"
)

// Valid reports whether t names a supported database type.
func (t Type) Valid() bool {
	switch t {
	case TypeMongoDB, TypeCosmosDB, TypeFerretDB:
		return true
	default:
		return false
	}
}
