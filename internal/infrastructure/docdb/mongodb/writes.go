package mongodb

import (
	"errors"
	"fmt"
	"reflect"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mongotesting/contacts-service/internal/core/docdb"
)

// toMongoWriteModels translates store-agnostic write models into driver models.
func toMongoWriteModels(models []docdb.WriteModel) ([]mongo.WriteModel, error) {
	if len(models) == 0 {
		return nil, docdb.ErrEmptyBatch
	}

	out := make([]mongo.WriteModel, 0, len(models))
	for i, m := range models {
		if isNilModel(m) {
			return nil, fmt.Errorf("%w: nil WriteModel at index %d", docdb.ErrUnsupportedOperation, i)
		}
		switch wm := m.(type) {
		case *docdb.InsertOneModel:
			out = append(out, mongo.NewInsertOneModel().SetDocument(wm.Document))
		case *docdb.UpdateOneModel:
			um := mongo.NewUpdateOneModel().SetFilter(wm.Filter).SetUpdate(wm.Update)
			if wm.Upsert != nil {
				um.SetUpsert(*wm.Upsert)
			}
			out = append(out, um)
		case *docdb.UpdateManyModel:
			um := mongo.NewUpdateManyModel().SetFilter(wm.Filter).SetUpdate(wm.Update)
			if wm.Upsert != nil {
				um.SetUpsert(*wm.Upsert)
			}
			out = append(out, um)
		case *docdb.ReplaceOneModel:
			rm := mongo.NewReplaceOneModel().SetFilter(wm.Filter).SetReplacement(wm.Replacement)
			if wm.Upsert != nil {
				rm.SetUpsert(*wm.Upsert)
			}
			out = append(out, rm)
		case *docdb.DeleteOneModel:
			out = append(out, mongo.NewDeleteOneModel().SetFilter(wm.Filter))
		case *docdb.DeleteManyModel:
			out = append(out, mongo.NewDeleteManyModel().SetFilter(wm.Filter))
		default:
			return nil, fmt.Errorf("%w: WriteModel of type %s is not supported", docdb.ErrUnsupportedOperation, m.Kind())
		}
	}
	return out, nil
}

// isNilModel reports whether m is nil or a nil pointer wrapped in the
// interface.
func isNilModel(m docdb.WriteModel) bool {
	if m == nil {
		return true
	}
	v := reflect.ValueOf(m)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// classifyWriteError tags driver errors that carry a write concern error
// with docdb.ErrWriteConcern. Other errors are returned unchanged.
func classifyWriteError(err error) error {
	var we mongo.WriteException
	if errors.As(err, &we) && we.WriteConcernError != nil {
		return fmt.Errorf("%w: %w", docdb.ErrWriteConcern, err)
	}
	var bwe mongo.BulkWriteException
	if errors.As(err, &bwe) && bwe.WriteConcernError != nil {
		return fmt.Errorf("%w: %w", docdb.ErrWriteConcern, err)
	}
	return err
}
