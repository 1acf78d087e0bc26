package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/bjarke-xyz/app-tracker/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newEmulatorClient connects to the Firestore emulator. Every test gets its
// own project id so collections never overlap.
func newEmulatorClient(t *testing.T) *firestore.Client {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	client, err := firestore.NewClient(context.Background(), "test-"+uuid.NewString()[:8])
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestDocID(t *testing.T) {
	assert.NotContains(t, docID("a/b"), "/")
	assert.NotEqual(t, ".", docID("."))
	assert.Equal(t, docID("Eng"), docID("Eng"))
	assert.NotEqual(t, docID("Eng"), docID("eng"))
}

func TestFirestoreUsers(t *testing.T) {
	ctx := context.Background()
	repo := NewFirestoreUser(newEmulatorClient(t))

	user := domain.User{ID: uuid.NewString(), Username: "alice", PasswordHash: "hash", CreatedAt: time.Now().UTC().Truncate(time.Microsecond)}
	require.NoError(t, repo.Create(ctx, &user))
	assert.ErrorIs(t, repo.Create(ctx, &domain.User{ID: uuid.NewString(), Username: "alice"}), domain.ErrConflict)

	got, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.PasswordHash, got.PasswordHash)

	_, err = repo.GetByUsername(ctx, "bob")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFirestoreCategories(t *testing.T) {
	ctx := context.Background()
	repo := NewFirestoreCategory(newEmulatorClient(t))

	require.NoError(t, repo.Create(ctx, &domain.Category{Name: "Eng/Platform", FrontendID: "f-1"}))
	require.NoError(t, repo.Create(ctx, &domain.Category{Name: "Eng/Platform", FrontendID: "f-2"}))

	got, err := repo.GetByName(ctx, "Eng/Platform")
	require.NoError(t, err)
	assert.Equal(t, "f-1", got.FrontendID)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, repo.Delete(ctx, "Eng/Platform"))
	assert.ErrorIs(t, repo.Delete(ctx, "Eng/Platform"), domain.ErrNotFound)
}

func TestFirestoreApplications(t *testing.T) {
	ctx := context.Background()
	repo := NewFirestoreApp(newEmulatorClient(t))

	require.NoError(t, repo.Create(ctx, &domain.Application{ID: uuid.NewString(), JobTitle: "SWE", OwnerUserID: "alice"}))
	require.NoError(t, repo.Create(ctx, &domain.Application{ID: uuid.NewString(), JobTitle: "PM", OwnerUserID: "bob"}))

	apps, err := repo.GetByUserID(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "SWE", apps[0].JobTitle)
}
