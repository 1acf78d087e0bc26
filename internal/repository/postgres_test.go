package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bjarke-xyz/app-tracker/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockConn(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func TestPostgresUserCreate(t *testing.T) {
	mock := newMockConn(t)
	repo := NewPostgresUser(mock)
	now := time.Now()

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs("u-1", "alice", "hash", now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), &domain.User{ID: "u-1", Username: "alice", PasswordHash: "hash", CreatedAt: now})
	assert.NoError(t, err)
}

func TestPostgresUserCreateDuplicate(t *testing.T) {
	mock := newMockConn(t)
	repo := NewPostgresUser(mock)

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs(pgxmock.AnyArg(), "alice", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &domain.User{ID: "u-2", Username: "alice"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestPostgresUserCreateDBError(t *testing.T) {
	mock := newMockConn(t)
	repo := NewPostgresUser(mock)

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), &domain.User{ID: "u-1", Username: "alice"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrConflict)
}

func TestPostgresUserGetByUsername(t *testing.T) {
	mock := newMockConn(t)
	repo := NewPostgresUser(mock)
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM users WHERE username = \$1`).
		WithArgs("alice").
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "password_hash", "created_at"}).
			AddRow("u-1", "alice", "hash", now))

	user, err := repo.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.User{ID: "u-1", Username: "alice", PasswordHash: "hash", CreatedAt: now}, user)
}

func TestPostgresUserGetByUsernameNotFound(t *testing.T) {
	mock := newMockConn(t)
	repo := NewPostgresUser(mock)

	mock.ExpectQuery(`SELECT \* FROM users WHERE username = \$1`).
		WithArgs("ghost").
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "password_hash", "created_at"}))

	_, err := repo.GetByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostgresCategoryCreateIgnoresConflict(t *testing.T) {
	mock := newMockConn(t)
	repo := NewPostgresCategory(mock)

	mock.ExpectExec(`(?s)INSERT INTO categories .* ON CONFLICT \(name\) DO NOTHING`).
		WithArgs("Eng", "f-1", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	err := repo.Create(context.Background(), &domain.Category{Name: "Eng", FrontendID: "f-1"})
	assert.NoError(t, err)
}

func TestPostgresCategoryGetByNameNotFound(t *testing.T) {
	mock := newMockConn(t)
	repo := NewPostgresCategory(mock)

	mock.ExpectQuery(`SELECT \* FROM categories WHERE name = \$1`).
		WithArgs("Eng").
		WillReturnRows(pgxmock.NewRows([]string{"name", "frontend_id", "created_at"}))

	_, err := repo.GetByName(context.Background(), "Eng")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostgresCategoryList(t *testing.T) {
	mock := newMockConn(t)
	repo := NewPostgresCategory(mock)
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM categories`).
		WillReturnRows(pgxmock.NewRows([]string{"name", "frontend_id", "created_at"}).
			AddRow("Eng", "f-1", now).
			AddRow("Design", "", now))

	categories, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Category{
		{Name: "Eng", FrontendID: "f-1", CreatedAt: now},
		{Name: "Design", CreatedAt: now},
	}, categories)
}

func TestPostgresCategoryDelete(t *testing.T) {
	mock := newMockConn(t)
	repo := NewPostgresCategory(mock)

	mock.ExpectExec(`DELETE FROM categories WHERE name = \$1`).
		WithArgs("Eng").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM categories WHERE name = \$1`).
		WithArgs("Eng").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.NoError(t, repo.Delete(context.Background(), "Eng"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "Eng"), domain.ErrNotFound)
}

func TestPostgresAppCreateAndList(t *testing.T) {
	mock := newMockConn(t)
	repo := NewPostgresApp(mock)
	now := time.Now()
	app := domain.Application{
		ID:              "a-1",
		FrontendID:      "f-1",
		JobTitle:        "SWE",
		CompanyName:     "Acme",
		ApplicationDate: "2024-05-01",
		Status:          "applied",
		CategoryName:    "Eng",
		OwnerUserID:     "u-1",
		CreatedAt:       now,
	}

	mock.ExpectExec(`INSERT INTO applications`).
		WithArgs(app.ID, app.FrontendID, app.JobTitle, app.CompanyName, app.ApplicationDate,
			app.Status, app.CategoryName, app.OwnerUserID, app.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery(`SELECT \* FROM applications WHERE owner_user_id = \$1`).
		WithArgs("u-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "frontend_id", "job_title", "company_name",
			"application_date", "status", "category_name", "owner_user_id", "created_at"}).
			AddRow(app.ID, app.FrontendID, app.JobTitle, app.CompanyName, app.ApplicationDate,
				app.Status, app.CategoryName, app.OwnerUserID, app.CreatedAt))

	require.NoError(t, repo.Create(context.Background(), &app))
	apps, err := repo.GetByUserID(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, []domain.Application{app}, apps)
}
