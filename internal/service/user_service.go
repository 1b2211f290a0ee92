package service

import (
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"parkspot/internal/auth"
	"parkspot/internal/db"
	"parkspot/internal/entities"
	apperr "parkspot/internal/errors"
	"parkspot/internal/repository"
)

type UserService struct {
	Users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{Users: users}
}

func validRole(role string) bool {
	switch role {
	case db.RoleVehicleOwner, db.RoleLandowner, db.RoleAdmin:
		return true
	}
	return false
}

func (s *UserService) Register(req entities.RegisterRequest) (*db.User, error) {
	if req.FirstName == "" || req.Username == "" || req.Password == "" {
		return nil, apperr.Validation("First name, username, and password are required")
	}
	if req.Role != "" && !validRole(req.Role) {
		return nil, apperr.Validation("Invalid role. Must be vehicle_owner, landowner, or admin")
	}

	if _, err := s.Users.GetByUsername(req.Username); err == nil {
		return nil, apperr.Validation("Username already taken")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.Internal("Server error during registration")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal("Server error during registration")
	}

	role := req.Role
	if role == "" {
		role = db.RoleVehicleOwner
	}

	user := &db.User{
		ID:               uuid.NewString(),
		FirstName:        req.FirstName,
		Username:         req.Username,
		PasswordHash:     string(hash),
		Role:             role,
		RegistrationType: req.RegistrationType,
		FullName:         req.FullName,
		ContactAddress:   req.ContactAddress,
		PhoneNumber:      req.PhoneNumber,
		Email:            req.Email,
		IDType:           req.IDType,
		IDNumber:         req.IDNumber,
		PhotoURL:         req.PhotoURL,
		IDURL:            req.IDURL,
	}
	if err := s.Users.Create(user); err != nil {
		return nil, apperr.Internal("Server error during registration")
	}
	return user, nil
}

// Login verifies credentials and issues a signed session token.
func (s *UserService) Login(username, password string) (*db.User, string, error) {
	if username == "" || password == "" {
		return nil, "", apperr.Validation("Username and password are required")
	}

	user, err := s.Users.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", apperr.Unauthorized("Wrong username or password")
		}
		return nil, "", apperr.Internal("Server error during login")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperr.Unauthorized("Wrong username or password")
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		return nil, "", apperr.Internal("Server error during login")
	}
	return user, token, nil
}

func (s *UserService) GetUser(id string) (*db.User, error) {
	user, err := s.Users.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal("Server error fetching user")
	}
	return user, nil
}

func (s *UserService) ListUsers() ([]db.User, error) {
	users, err := s.Users.List()
	if err != nil {
		return nil, apperr.Internal("Server error fetching users")
	}
	return users, nil
}

// DeleteUser removes a user. Admin accounts cannot be deleted.
func (s *UserService) DeleteUser(id string) error {
	user, err := s.Users.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("User not found")
		}
		return apperr.Internal("Server error deleting user")
	}
	if user.Role == db.RoleAdmin {
		return apperr.Forbidden("Cannot delete admin users")
	}
	if err := s.Users.Delete(id); err != nil {
		return apperr.Internal("Server error deleting user")
	}
	return nil
}
