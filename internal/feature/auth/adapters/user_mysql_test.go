package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"auth_backend/internal/feature/auth/domain"
	"auth_backend/internal/feature/auth/domain/entity"
)

// setupTestDB prepares an in-memory SQLite database for testing.
// TranslateError matches the production gorm config, so unique-constraint
// violations surface as gorm.ErrDuplicatedKey here as well.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	// Create User table
	err = db.AutoMigrate(&entity.User{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

func newTestUser(username, email string) *entity.User {
	return &entity.User{
		Username: username,
		Email:    email,
		Password: "hashed_password",
	}
}

func TestNewUserMySQL(t *testing.T) {
	db := setupTestDB(t)

	repo := NewUserMySQL(db)

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.db, "database connection is nil")
}

func TestUserMySQL_Create(t *testing.T) {
	t.Run("successful user creation", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)

		user := newTestUser("alice", "alice@example.com")

		err := repo.Create(context.Background(), user)

		assert.NoError(t, err, "failed to create user")
		assert.NotZero(t, user.ID, "ID is not set")
		assert.False(t, user.CreatedAt.IsZero(), "CreatedAt is not set")
		assert.False(t, user.UpdatedAt.IsZero(), "UpdatedAt is not set")
	})

	t.Run("duplicate username error", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)

		require.NoError(t, repo.Create(context.Background(), newTestUser("alice", "alice@example.com")))

		err := repo.Create(context.Background(), newTestUser("alice", "other@example.com"))

		assert.ErrorIs(t, err, domain.ErrUserAlreadyExists, "should map a duplicate username to ErrUserAlreadyExists")
	})

	t.Run("duplicate email error", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)

		require.NoError(t, repo.Create(context.Background(), newTestUser("alice", "alice@example.com")))

		err := repo.Create(context.Background(), newTestUser("bob", "alice@example.com"))

		assert.ErrorIs(t, err, domain.ErrUserAlreadyExists, "should map a duplicate email to ErrUserAlreadyExists")
	})
}

func TestUserMySQL_FindByUsername(t *testing.T) {
	t.Run("find user by username successfully", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)

		expected := newTestUser("alice", "alice@example.com")
		require.NoError(t, repo.Create(context.Background(), expected))

		found, err := repo.FindByUsername(context.Background(), "alice")

		require.NoError(t, err)
		assert.Equal(t, expected.ID, found.ID)
		assert.Equal(t, "alice@example.com", found.Email)
	})

	t.Run("user not found", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)

		_, err := repo.FindByUsername(context.Background(), "nobody")

		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestUserMySQL_FindByEmail(t *testing.T) {
	t.Run("find user by email successfully", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)

		expected := newTestUser("alice", "alice@example.com")
		require.NoError(t, repo.Create(context.Background(), expected))

		found, err := repo.FindByEmail(context.Background(), "alice@example.com")

		require.NoError(t, err)
		assert.Equal(t, expected.ID, found.ID)
		assert.Equal(t, "alice", found.Username)
	})

	t.Run("user not found", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)

		_, err := repo.FindByEmail(context.Background(), "nobody@example.com")

		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestUserMySQL_FindByUsernameOrEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserMySQL(db)

	expected := newTestUser("alice", "alice@example.com")
	require.NoError(t, repo.Create(context.Background(), expected))

	t.Run("matches on username", func(t *testing.T) {
		found, err := repo.FindByUsernameOrEmail(context.Background(), "alice", "other@example.com")

		require.NoError(t, err)
		assert.Equal(t, expected.ID, found.ID)
	})

	t.Run("matches on email", func(t *testing.T) {
		found, err := repo.FindByUsernameOrEmail(context.Background(), "bob", "alice@example.com")

		require.NoError(t, err)
		assert.Equal(t, expected.ID, found.ID)
	})

	t.Run("no match", func(t *testing.T) {
		_, err := repo.FindByUsernameOrEmail(context.Background(), "bob", "bob@example.com")

		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestUserMySQL_FindByEmailAndResetToken(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserMySQL(db)

	token := "signed-reset-token"
	expiry := time.Now().Add(15 * time.Minute)
	user := newTestUser("alice", "alice@example.com")
	user.ResetToken = &token
	user.ResetTokenExpiry = &expiry
	require.NoError(t, repo.Create(context.Background(), user))

	t.Run("exact token match", func(t *testing.T) {
		found, err := repo.FindByEmailAndResetToken(context.Background(), "alice@example.com", token)

		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
	})

	t.Run("wrong token", func(t *testing.T) {
		_, err := repo.FindByEmailAndResetToken(context.Background(), "alice@example.com", "stale-token")

		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("wrong email", func(t *testing.T) {
		_, err := repo.FindByEmailAndResetToken(context.Background(), "bob@example.com", token)

		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestUserMySQL_Save(t *testing.T) {
	t.Run("persists cleared reset token", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)

		token := "signed-reset-token"
		expiry := time.Now().Add(15 * time.Minute)
		user := newTestUser("alice", "alice@example.com")
		user.ResetToken = &token
		user.ResetTokenExpiry = &expiry
		require.NoError(t, repo.Create(context.Background(), user))

		user.Password = "new_hashed_password"
		user.ResetToken = nil
		user.ResetTokenExpiry = nil
		require.NoError(t, repo.Save(context.Background(), user))

		found, err := repo.FindByEmail(context.Background(), "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, "new_hashed_password", found.Password)
		assert.Nil(t, found.ResetToken, "reset token should be cleared")
		assert.Nil(t, found.ResetTokenExpiry, "reset token expiry should be cleared")

		_, err = repo.FindByEmailAndResetToken(context.Background(), "alice@example.com", token)
		assert.ErrorIs(t, err, domain.ErrUserNotFound, "cleared token must no longer match")
	})

	t.Run("persists stored reset token", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)

		user := newTestUser("alice", "alice@example.com")
		require.NoError(t, repo.Create(context.Background(), user))

		token := "signed-reset-token"
		expiry := time.Now().Add(15 * time.Minute)
		user.ResetToken = &token
		user.ResetTokenExpiry = &expiry
		require.NoError(t, repo.Save(context.Background(), user))

		found, err := repo.FindByEmailAndResetToken(context.Background(), "alice@example.com", token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
	})
}

func TestUserMySQL_FindAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserMySQL(db)

	require.NoError(t, repo.Create(context.Background(), newTestUser("alice", "alice@example.com")))
	require.NoError(t, repo.Create(context.Background(), newTestUser("bob", "bob@example.com")))

	users, err := repo.FindAll(context.Background())

	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUserMySQL_FindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserMySQL(db)

	user := newTestUser("alice", "alice@example.com")
	require.NoError(t, repo.Create(context.Background(), user))

	found, err := repo.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", found.Username)

	_, err = repo.FindByID(context.Background(), user.ID+1)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
