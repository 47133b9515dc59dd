package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/mongotesting/contacts-service/internal/api/dto"
	"github.com/mongotesting/contacts-service/internal/api/middleware"
	"github.com/mongotesting/contacts-service/internal/core/docdb"
	"github.com/mongotesting/contacts-service/internal/domain/errors"
	"github.com/mongotesting/contacts-service/internal/domain/models"
)

// maxDocumentBytes bounds request bodies; MongoDB rejects larger documents anyway.
const maxDocumentBytes = 16 << 20

// ContactsService is the contacts API consumed by ContactsHandler.
type ContactsService interface {
	FindByLastName(ctx context.Context, lastName string) ([]models.Document, error)
	FindErrors(ctx context.Context) ([]models.Identifier, error)
	InsertOne(ctx context.Context, document models.Document, opts *docdb.InsertOneOptions) error
	BulkWrite(ctx context.Context, requests []docdb.WriteModel, opts *docdb.BulkWriteOptions) error
}

// ContactsHandler handles contact endpoints.
type ContactsHandler struct {
	service ContactsService
}

// NewContactsHandler creates a new ContactsHandler.
func NewContactsHandler(service ContactsService) *ContactsHandler {
	return &ContactsHandler{
		service: service,
	}
}

// FindContacts handles GET /contacts?lastName=
func (h *ContactsHandler) FindContacts(c *gin.Context) {
	var req dto.FindContactsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid query parameters", err.Error()))
		return
	}

	docs, err := h.service.FindByLastName(c.Request.Context(), req.LastName)
	if err != nil {
		middleware.HandleError(c, errors.FromStoreError("find contacts", err))
		return
	}

	contacts := make([]json.RawMessage, 0, len(docs))
	for _, doc := range docs {
		raw, err := bson.MarshalExtJSON(doc, false, false)
		if err != nil {
			middleware.HandleError(c, errors.NewInternalError("failed to encode contact", err))
			return
		}
		contacts = append(contacts, raw)
	}

	c.JSON(http.StatusOK, dto.ContactsResponse{
		Contacts: contacts,
		Total:    len(contacts),
	})
}

// FindErrors handles GET /contacts/errors
func (h *ContactsHandler) FindErrors(c *gin.Context) {
	ids, err := h.service.FindErrors(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, errors.FromStoreError("find flagged contacts", err))
		return
	}

	hexIDs := make([]string, 0, len(ids))
	for _, id := range ids {
		hexIDs = append(hexIDs, id.Hex())
	}

	c.JSON(http.StatusOK, dto.ErrorIDsResponse{IDs: hexIDs})
}

// InsertContact handles POST /contacts. The body is an Extended JSON document.
// Write concern failures are absorbed by the store, so 201 only means the
// request was accepted.
func (h *ContactsHandler) InsertContact(c *gin.Context) {
	var req dto.InsertContactRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid query parameters", err.Error()))
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxDocumentBytes))
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("failed to read request body", err.Error()))
		return
	}

	doc, err := parseDocument(body)
	if err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid contact document", err.Error()))
		return
	}

	opts := &docdb.InsertOneOptions{BypassDocumentValidation: req.BypassDocumentValidation}
	if err := h.service.InsertOne(c.Request.Context(), doc, opts); err != nil {
		middleware.HandleError(c, errors.FromStoreError("insert contact", err))
		return
	}

	c.JSON(http.StatusCreated, dto.InsertContactResponse{Status: "accepted"})
}

// BulkWrite handles POST /contacts/bulk
func (h *ContactsHandler) BulkWrite(c *gin.Context) {
	var req dto.BulkWriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	writeModels, err := toWriteModels(req.Operations)
	if err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid bulk operation", err.Error()))
		return
	}

	opts := &docdb.BulkWriteOptions{
		Ordered:                  req.Ordered,
		BypassDocumentValidation: req.BypassDocumentValidation,
	}
	if err := h.service.BulkWrite(c.Request.Context(), writeModels, opts); err != nil {
		middleware.HandleError(c, errors.FromStoreError("bulk write contacts", err))
		return
	}

	c.JSON(http.StatusOK, dto.BulkWriteResponse{
		Status:     "accepted",
		Operations: len(writeModels),
	})
}

// parseDocument decodes a canonical or relaxed Extended JSON object.
func parseDocument(raw []byte) (models.Document, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("document is empty")
	}
	var doc models.Document
	if err := bson.UnmarshalExtJSON(raw, false, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func toWriteModels(ops []dto.WriteOperation) ([]docdb.WriteModel, error) {
	writeModels := make([]docdb.WriteModel, 0, len(ops))
	for i, op := range ops {
		model, err := toWriteModel(op)
		if err != nil {
			return nil, fmt.Errorf("operations[%d] (%s): %w", i, op.Type, err)
		}
		writeModels = append(writeModels, model)
	}
	return writeModels, nil
}

func toWriteModel(op dto.WriteOperation) (docdb.WriteModel, error) {
	switch op.Type {
	case dto.OperationInsertOne:
		doc, err := requireDocument("document", op.Document)
		if err != nil {
			return nil, err
		}
		return &docdb.InsertOneModel{Document: doc}, nil

	case dto.OperationUpdateOne, dto.OperationUpdateMany:
		filter, err := requireDocument("filter", op.Filter)
		if err != nil {
			return nil, err
		}
		update, err := requireDocument("update", op.Update)
		if err != nil {
			return nil, err
		}
		if op.Type == dto.OperationUpdateOne {
			return &docdb.UpdateOneModel{Filter: filter, Update: update, Upsert: op.Upsert}, nil
		}
		return &docdb.UpdateManyModel{Filter: filter, Update: update, Upsert: op.Upsert}, nil

	case dto.OperationReplaceOne:
		filter, err := requireDocument("filter", op.Filter)
		if err != nil {
			return nil, err
		}
		replacement, err := requireDocument("replacement", op.Replacement)
		if err != nil {
			return nil, err
		}
		return &docdb.ReplaceOneModel{Filter: filter, Replacement: replacement, Upsert: op.Upsert}, nil

	case dto.OperationDeleteOne, dto.OperationDeleteMany:
		filter, err := requireDocument("filter", op.Filter)
		if err != nil {
			return nil, err
		}
		if op.Type == dto.OperationDeleteOne {
			return &docdb.DeleteOneModel{Filter: filter}, nil
		}
		return &docdb.DeleteManyModel{Filter: filter}, nil
	}
	return nil, fmt.Errorf("unknown operation type %q", op.Type)
}

func requireDocument(field string, raw json.RawMessage) (models.Document, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, fmt.Errorf("%s is required", field)
	}
	doc, err := parseDocument(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return doc, nil
}
