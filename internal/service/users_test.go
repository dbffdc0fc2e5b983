package service_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/marinhotg/satshack24/internal/apperr"
	"github.com/marinhotg/satshack24/internal/service"
)

func TestRegister(t *testing.T) {
	db := testDB(t)
	svc := service.NewUsers(db)

	user, err := svc.Register(service.RegisterParams{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "sup3rsecret",
		NodeID:   "node-alice",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)

	// stored hash, never the plaintext
	assert.NotEqual(t, "sup3rsecret", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("sup3rsecret")))

	t.Run("DuplicateEmail", func(t *testing.T) {
		_, err := svc.Register(service.RegisterParams{
			Name:     "Alice Again",
			Email:    "alice@example.com",
			Password: "another1",
			NodeID:   "node-x",
		})
		var conflict *apperr.ConflictError
		require.Error(t, err)
		assert.True(t, errors.As(err, &conflict))
	})

	t.Run("MissingFields", func(t *testing.T) {
		_, err := svc.Register(service.RegisterParams{Email: "bob@example.com"})
		var validation *apperr.ValidationError
		require.Error(t, err)
		assert.True(t, errors.As(err, &validation))
	})
}

// A row landing between the email pre-check and the insert must still
// surface as a conflict; any other insert failure must not.
func TestRegisterInsertFailures(t *testing.T) {
	t.Run("RacedDuplicate", func(t *testing.T) {
		db := testDB(t)
		svc := service.NewUsers(db)

		raced := false
		err := db.Callback().Create().Before("gorm:create").Register("test_raced_insert", func(tx *gorm.DB) {
			if raced {
				return
			}
			raced = true
			db.Exec(`INSERT INTO users (name, email, password_hash, node_id) VALUES ('Eve', 'alice@example.com', 'x', 'node-eve')`)
		})
		require.NoError(t, err)

		_, err = svc.Register(service.RegisterParams{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: "sup3rsecret",
			NodeID:   "node-alice",
		})
		var conflict *apperr.ConflictError
		require.Error(t, err)
		assert.True(t, errors.As(err, &conflict))
	})

	t.Run("OutageIsNotConflict", func(t *testing.T) {
		db := testDB(t)
		svc := service.NewUsers(db)

		dropped := false
		err := db.Callback().Create().Before("gorm:create").Register("test_drop_table", func(tx *gorm.DB) {
			if dropped {
				return
			}
			dropped = true
			db.Exec("DROP TABLE users")
		})
		require.NoError(t, err)

		_, err = svc.Register(service.RegisterParams{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: "sup3rsecret",
			NodeID:   "node-alice",
		})
		require.Error(t, err)
		var conflict *apperr.ConflictError
		assert.False(t, errors.As(err, &conflict))
	})
}

func TestAuthenticate(t *testing.T) {
	db := testDB(t)
	svc := service.NewUsers(db)

	_, err := svc.Register(service.RegisterParams{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "sup3rsecret",
		NodeID:   "node-alice",
	})
	require.NoError(t, err)

	user, err := svc.Authenticate("alice@example.com", "sup3rsecret")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)

	// wrong password and unknown email fail identically
	_, err = svc.Authenticate("alice@example.com", "wrong")
	assert.Error(t, err)
	_, badEmailErr := svc.Authenticate("nobody@example.com", "sup3rsecret")
	assert.Error(t, badEmailErr)
	assert.Equal(t, err.Error(), badEmailErr.Error())
}

func TestEmailExists(t *testing.T) {
	db := testDB(t)
	svc := service.NewUsers(db)

	exists, err := svc.EmailExists("alice@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = svc.Register(service.RegisterParams{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "sup3rsecret",
		NodeID:   "node-alice",
	})
	require.NoError(t, err)

	exists, err = svc.EmailExists("alice@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}
