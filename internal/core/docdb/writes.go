package docdb

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// WriteModel is a single instruction within a bulk write.
// Implementations outside this package are allowed; store adapters reject
// the ones they cannot translate with ErrUnsupportedOperation. A nil
// pointer to one of the models below renders as "null".
type WriteModel interface {
	// Kind names the write model, e.g. "InsertOneModel".
	Kind() string
	String() string
}

// InsertOneModel inserts a single document.
type InsertOneModel struct {
	Document interface{}
}

// Kind implements WriteModel.
func (m *InsertOneModel) Kind() string { return "InsertOneModel" }

func (m *InsertOneModel) String() string {
	if m == nil {
		return "null"
	}
	return fmt.Sprintf("InsertOneModel{document=%s}", FormatDocument(m.Document))
}

// UpdateOneModel updates the first document matching Filter.
type UpdateOneModel struct {
	Filter interface{}
	Update interface{}
	Upsert *bool
}

// Kind implements WriteModel.
func (m *UpdateOneModel) Kind() string { return "UpdateOneModel" }

func (m *UpdateOneModel) String() string {
	if m == nil {
		return "null"
	}
	return fmt.Sprintf("UpdateOneModel{filter=%s, update=%s, upsert=%s}",
		FormatDocument(m.Filter), FormatDocument(m.Update), formatBool(m.Upsert))
}

// UpdateManyModel updates every document matching Filter.
type UpdateManyModel struct {
	Filter interface{}
	Update interface{}
	Upsert *bool
}

// Kind implements WriteModel.
func (m *UpdateManyModel) Kind() string { return "UpdateManyModel" }

func (m *UpdateManyModel) String() string {
	if m == nil {
		return "null"
	}
	return fmt.Sprintf("UpdateManyModel{filter=%s, update=%s, upsert=%s}",
		FormatDocument(m.Filter), FormatDocument(m.Update), formatBool(m.Upsert))
}

// ReplaceOneModel replaces the first document matching Filter.
type ReplaceOneModel struct {
	Filter      interface{}
	Replacement interface{}
	Upsert      *bool
}

// Kind implements WriteModel.
func (m *ReplaceOneModel) Kind() string { return "ReplaceOneModel" }

func (m *ReplaceOneModel) String() string {
	if m == nil {
		return "null"
	}
	return fmt.Sprintf("ReplaceOneModel{filter=%s, replacement=%s, upsert=%s}",
		FormatDocument(m.Filter), FormatDocument(m.Replacement), formatBool(m.Upsert))
}

// DeleteOneModel deletes the first document matching Filter.
type DeleteOneModel struct {
	Filter interface{}
}

// Kind implements WriteModel.
func (m *DeleteOneModel) Kind() string { return "DeleteOneModel" }

func (m *DeleteOneModel) String() string {
	if m == nil {
		return "null"
	}
	return fmt.Sprintf("DeleteOneModel{filter=%s}", FormatDocument(m.Filter))
}

// DeleteManyModel deletes every document matching Filter.
type DeleteManyModel struct {
	Filter interface{}
}

// Kind implements WriteModel.
func (m *DeleteManyModel) Kind() string { return "DeleteManyModel" }

func (m *DeleteManyModel) String() string {
	if m == nil {
		return "null"
	}
	return fmt.Sprintf("DeleteManyModel{filter=%s}", FormatDocument(m.Filter))
}

// FormatDocument renders a document as relaxed Extended JSON. Values the bson
// encoder rejects fall back to their Go representation.
func FormatDocument(doc interface{}) string {
	if doc == nil {
		return "null"
	}
	out, err := bson.MarshalExtJSON(doc, false, false)
	if err != nil {
		return fmt.Sprintf("%v", doc)
	}
	return string(out)
}

// FormatWriteModels renders a batch of write models as a bracketed list.
func FormatWriteModels(models []WriteModel) string {
	out := "["
	for i, m := range models {
		if i > 0 {
			out += ", "
		}
		if m == nil {
			out += "null"
			continue
		}
		out += m.String()
	}
	return out + "]"
}
