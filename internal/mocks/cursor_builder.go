package mocks

import (
	"fmt"
	"reflect"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
)

// StubSequence registers one single-use expectation per value, so that
// consecutive calls to the stubbed method observe the values in order.
// A call past the end of the sequence fails the test as an unexpected call.
func StubSequence[T any](stub func(value T) *mock.Call, values ...T) {
	for _, v := range values {
		stub(v).Once()
	}
}

// CursorBuilder stubs a Find call on a MockCollection together with the
// iteration behavior of the cursor it returns.
//
//	mocks.NewCursorBuilder(coll).
//		WithQuery(bson.D{{Key: "lastName", Value: "Bobberson"}}).
//		WithNext(true, false).
//		WithDecode(bob)
type CursorBuilder struct {
	collection *MockCollection
	cursor     *MockCursor
	errCall    *mock.Call
}

// NewCursorBuilder creates a builder for a fresh MockCursor. Close and Err
// are stubbed to succeed.
func NewCursorBuilder(collection *MockCollection) *CursorBuilder {
	cursor := &MockCursor{}
	cursor.On("Close", mock.Anything).Return(nil).Maybe()
	errCall := cursor.On("Err").Return(nil).Maybe()

	return &CursorBuilder{
		collection: collection,
		cursor:     cursor,
		errCall:    errCall,
	}
}

// WithQuery makes Find with the given filter return the builder's cursor.
func (b *CursorBuilder) WithQuery(filter interface{}) *CursorBuilder {
	b.collection.On("Find", mock.Anything, filter, mock.Anything).Return(b.cursor, nil)
	return b
}

// WithNext stubs the sequence of values returned by Next.
func (b *CursorBuilder) WithNext(sequence ...bool) *CursorBuilder {
	StubSequence(func(v bool) *mock.Call {
		return b.cursor.On("Next", mock.Anything).Return(v)
	}, sequence...)
	return b
}

// WithDecode stubs the sequence of documents written by Decode.
func (b *CursorBuilder) WithDecode(documents ...bson.D) *CursorBuilder {
	StubSequence(func(doc bson.D) *mock.Call {
		return b.cursor.On("Decode", mock.Anything).
			Run(func(args mock.Arguments) {
				decodeInto(args.Get(0), doc)
			}).
			Return(nil)
	}, documents...)
	return b
}

// WithDocuments stubs Next and Decode so the cursor yields documents in
// order and is then exhausted.
func (b *CursorBuilder) WithDocuments(documents ...bson.D) *CursorBuilder {
	next := make([]bool, 0, len(documents)+1)
	for range documents {
		next = append(next, true)
	}
	next = append(next, false)

	return b.WithNext(next...).WithDecode(documents...)
}

// UsingAll stubs All to fill the result slice with documents.
func (b *CursorBuilder) UsingAll(documents ...bson.D) *CursorBuilder {
	b.cursor.On("All", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			allInto(args.Get(1), documents)
		}).
		Return(nil)
	return b
}

// WithCursorError makes Err report err once iteration stops.
func (b *CursorBuilder) WithCursorError(err error) *CursorBuilder {
	b.errCall.Unset()
	b.errCall = b.cursor.On("Err").Return(err)
	return b
}

// Cursor returns the cursor being configured.
func (b *CursorBuilder) Cursor() *MockCursor {
	return b.cursor
}

// decodeInto copies doc into target, which must be a non-nil pointer.
// *bson.D targets receive the document as is; other targets go through a
// bson round trip.
func decodeInto(target interface{}, doc bson.D) {
	if d, ok := target.(*bson.D); ok {
		*d = append(bson.D(nil), doc...)
		return
	}
	raw, err := bson.Marshal(doc)
	if err != nil {
		panic(fmt.Sprintf("mocks: marshal stubbed document: %v", err))
	}
	if err := bson.Unmarshal(raw, target); err != nil {
		panic(fmt.Sprintf("mocks: decode stubbed document into %T: %v", target, err))
	}
}

// allInto fills the slice pointed to by target with documents.
func allInto(target interface{}, documents []bson.D) {
	if d, ok := target.(*[]bson.D); ok {
		*d = append([]bson.D(nil), documents...)
		return
	}

	ptr := reflect.ValueOf(target)
	if ptr.Kind() != reflect.Ptr || ptr.Elem().Kind() != reflect.Slice {
		panic(fmt.Sprintf("mocks: All target must be a pointer to a slice, got %T", target))
	}
	slice := reflect.MakeSlice(ptr.Elem().Type(), len(documents), len(documents))
	for i, doc := range documents {
		decodeInto(slice.Index(i).Addr().Interface(), doc)
	}
	ptr.Elem().Set(slice)
}
