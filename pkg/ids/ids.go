// Package ids generates and parses the identifiers used for every stored record
// and embedded sub-record. Identifiers are 24-character hex ObjectIDs so the same
// values are valid in Firestore document paths and as MongoDB _id fields.
package ids

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"unisell/pkg/errors"
)

// New returns a fresh identifier.
func New() string {
	return primitive.NewObjectID().Hex()
}

// Parse trims s and checks it is a well-formed identifier. field names the input in
// the returned INVALID_ID error.
func Parse(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errors.Validation(field, "You must provide an id to search for")
	}
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return "", errors.InvalidID(field, err)
	}
	return oid.Hex(), nil
}

// ObjectID converts an already validated identifier to its native driver form.
func ObjectID(field, s string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(s))
	if err != nil {
		return primitive.NilObjectID, errors.InvalidID(field, err)
	}
	return oid, nil
}
