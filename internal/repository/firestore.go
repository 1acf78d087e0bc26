package repository

import (
	"encoding/base64"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	usersCollection        = "users"
	categoriesCollection   = "categories"
	applicationsCollection = "applications"
)

// docID maps a natural key to a valid Firestore document id. Names may
// contain '/' or be "." which Firestore does not accept as ids.
func docID(key string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(key))
}

func isAlreadyExists(err error) bool {
	return status.Code(err) == codes.AlreadyExists
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}
