package mongo

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// objectID parses a hex id. Malformed ids yield notFound: to a caller they
// name a document that cannot exist.
func objectID(id string, notFound error) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, notFound
	}
	return oid, nil
}

// optionalObjectID parses a weak reference. Empty or malformed input maps to nil.
func optionalObjectID(id string) *primitive.ObjectID {
	if id == "" {
		return nil
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	return &oid
}

func hexOrEmpty(oid *primitive.ObjectID) string {
	if oid == nil || oid.IsZero() {
		return ""
	}
	return oid.Hex()
}
