package repository

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"unisell/pkg/errors"
)

// getErr maps a Firestore read failure, turning a missing document into NOT_FOUND.
func getErr(resource string, err error) error {
	if status.Code(err) == codes.NotFound {
		return errors.NotFound(resource, err)
	}
	return errors.Persistence("failed to read "+resource, err)
}

// updateErr maps a Firestore write failure. Updating a missing document matched
// nothing and is reported as a persistence error.
func updateErr(what string, err error) error {
	if err == nil {
		return nil
	}
	if status.Code(err) == codes.NotFound {
		return errors.Persistence("could not "+what+": no matching document", err)
	}
	return errors.Persistence("could not "+what, err)
}
