package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/bjarke-xyz/app-tracker/internal/domain"
)

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUser(client *firestore.Client) domain.UserRepository {
	return &firestoreUserRepository{client: client}
}

type userDoc struct {
	ID           string    `firestore:"id"`
	Username     string    `firestore:"username"`
	PasswordHash string    `firestore:"passwordHash"`
	CreatedAt    time.Time `firestore:"createdAt"`
}

// Create implements domain.UserRepository. The document id is derived from
// the username so Firestore enforces uniqueness.
func (f *firestoreUserRepository) Create(ctx context.Context, user *domain.User) error {
	doc := userDoc{
		ID:           user.ID,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	}
	_, err := f.client.Collection(usersCollection).Doc(docID(user.Username)).Create(ctx, doc)
	if isAlreadyExists(err) {
		return domain.ErrConflict
	}
	return err
}

// GetByUsername implements domain.UserRepository.
func (f *firestoreUserRepository) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	snap, err := f.client.Collection(usersCollection).Doc(docID(username)).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}
	var doc userDoc
	if err := snap.DataTo(&doc); err != nil {
		return domain.User{}, err
	}
	return domain.User{
		ID:           doc.ID,
		Username:     doc.Username,
		PasswordHash: doc.PasswordHash,
		CreatedAt:    doc.CreatedAt,
	}, nil
}
