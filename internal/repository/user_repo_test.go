package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"kisan_unnati/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userCols = []string{"id", "name", "email", "phone", "password_hash", "role", "address", "district", "state", "pincode", "created_at"}

func TestUserRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	user := &model.User{
		Name: "Ramesh", Email: "ramesh@example.com", Phone: "9876543210", PasswordHash: "hash",
		Role: model.RoleFarmer, Location: model.Location{District: "Nashik", State: "Maharashtra"}, CreatedAt: now,
	}

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("Ramesh", "ramesh@example.com", "9876543210", "hash", model.RoleFarmer, "", "Nashik", "Maharashtra", "", now).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(7))

	repo := NewUserRepository(mock)
	require.NoError(t, repo.Create(context.Background(), user))
	assert.Equal(t, 7, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \$1`).
		WithArgs("a@b.com").
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow(1, "X", "a@b.com", "9000000000", "hash", "farmer", "Village Rd", "Pune", "Maharashtra", "411001", now))

	repo := NewUserRepository(mock)
	user, err := repo.FindByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "X", user.Name)
	assert.Equal(t, "Pune", user.Location.District)
	assert.Equal(t, model.RoleFarmer, user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \$1`).
		WithArgs("nobody@b.com").
		WillReturnError(pgx.ErrNoRows)

	repo := NewUserRepository(mock)
	user, err := repo.FindByEmail(context.Background(), "nobody@b.com")
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepository_FindByID_DBError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE id = \$1`).
		WithArgs(3).
		WillReturnError(errors.New("connection reset"))

	repo := NewUserRepository(mock)
	user, err := repo.FindByID(context.Background(), 3)
	assert.Error(t, err)
	assert.Nil(t, user)
	assert.Contains(t, err.Error(), "failed to find user by ID")
}
