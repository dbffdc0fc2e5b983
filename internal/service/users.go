package service

import (
	"errors"

	"github.com/marinhotg/satshack24/internal/apperr"
	"github.com/marinhotg/satshack24/internal/domain/users"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Users struct {
	db *gorm.DB
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

type RegisterParams struct {
	Name     string
	Email    string
	Password string
	NodeID   string
}

func (s *Users) Register(params RegisterParams) (*users.User, error) {
	if params.Name == "" || params.Email == "" || params.Password == "" || params.NodeID == "" {
		return nil, apperr.Validation("email, password, name and nodeId are required")
	}

	var count int64
	if err := s.db.Model(&users.User{}).Where("email = ?", params.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.Conflict("Email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := users.User{
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: string(hashed),
		NodeID:       params.NodeID,
	}
	if err := s.db.Create(&user).Error; err != nil {
		// unique index on email still races with the pre-check
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("Email already exists")
		}
		if exists, checkErr := s.EmailExists(params.Email); checkErr == nil && exists {
			return nil, apperr.Conflict("Email already exists")
		}
		return nil, err
	}

	return &user, nil
}

// Authenticate validates an email/password pair. bcrypt comparison is
// constant-time; the same error covers unknown email and bad password.
func (s *Users) Authenticate(email, password string) (*users.User, error) {
	var user users.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Validation("Invalid email or password")
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, apperr.Validation("Invalid email or password")
	}

	return &user, nil
}

func (s *Users) GetByID(id uint) (*users.User, error) {
	var user users.User
	err := s.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Users) EmailExists(email string) (bool, error) {
	var count int64
	err := s.db.Model(&users.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}
