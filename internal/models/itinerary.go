package models

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

// Itinerary is the client's free-form trip plan. It travels as raw JSON and
// is stored as a native BSON document or array so it stays queryable.
type Itinerary json.RawMessage

func (i Itinerary) MarshalJSON() ([]byte, error) {
	if len(i) == 0 {
		return []byte("null"), nil
	}
	return i, nil
}

func (i *Itinerary) UnmarshalJSON(data []byte) error {
	*i = append((*i)[:0], data...)
	return nil
}

func (i Itinerary) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if len(i) == 0 {
		return bsontype.Null, nil, nil
	}
	var v any
	if err := json.Unmarshal(i, &v); err != nil {
		return 0, nil, err
	}
	if v == nil {
		return bsontype.Null, nil, nil
	}
	return bson.MarshalValue(v)
}

func (i *Itinerary) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	val := bsoncore.Value{Type: t, Data: data}
	switch t {
	case bsontype.Null, bsontype.Undefined:
		*i = nil
		return nil
	case bsontype.Binary:
		// Older bookings kept the raw JSON bytes.
		if _, raw, ok := val.BinaryOK(); ok {
			*i = append((*i)[:0], raw...)
			return nil
		}
	}

	doc := bsoncore.BuildDocument(nil, bsoncore.AppendValueElement(nil, "v", val))
	dec, err := bson.NewDecoder(bsonrw.NewBSONDocumentReader(doc))
	if err != nil {
		return err
	}
	dec.DefaultDocumentM()
	var w struct {
		V any `bson:"v"`
	}
	if err := dec.Decode(&w); err != nil {
		return err
	}
	raw, err := json.Marshal(w.V)
	if err != nil {
		return err
	}
	*i = raw
	return nil
}
