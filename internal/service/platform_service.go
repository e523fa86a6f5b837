package service

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"gorm.io/gorm"

	"marketcatalyst/internal/auth"
	"marketcatalyst/internal/model"
	"marketcatalyst/internal/repository"
)

// Messages surfaced to clients through UserResult. Store failures are logged
// server-side and reduced to the generic variants.
const (
	msgMissingRegisterFields = "Username or password are missing."
	msgUserExists            = "User already exists."
	msgRegisterFailed        = "An error occurred while adding the user. Exception logged on server."
	msgMissingAuthFields     = "No Username or Password."
	msgAuthFailed            = "Unable to authenticate user credentials."

	// Defensive branches for store responses that should not occur.
	msgUnknownCountError  = "Unknown error, NTZ9U2H5"
	msgUnknownLookupError = "Unknown error, N43SS834"
)

// PlatformService orchestrates registration and authentication over the user
// store, the password hasher and the token issuer.
type PlatformService interface {
	// Register creates an account. It never returns an error; every failure
	// is folded into the result.
	Register(ctx context.Context, username, password string) *UserResult
	// Authenticate verifies credentials and attaches a bearer token. The
	// error return is non-nil only when token issuance fails after the
	// credentials already checked out.
	Authenticate(ctx context.Context, username, password string) (*UserResult, error)
}

type platformService struct {
	users  repository.UserRepository
	hasher *auth.PasswordHasher
	issuer TokenIssuer
}

// NewPlatformService builds the account service.
func NewPlatformService(users repository.UserRepository, hasher *auth.PasswordHasher, issuer TokenIssuer) PlatformService {
	return &platformService{users: users, hasher: hasher, issuer: issuer}
}

func (s *platformService) Register(ctx context.Context, username, password string) *UserResult {
	if username == "" || password == "" {
		return NewUserResult(nil, msgMissingRegisterFields)
	}

	// Existence check and insert are two statements, not one transaction;
	// concurrent registrations of the same username can race past the check.
	count, err := s.users.CountByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return NewUserResult(nil, msgUnknownCountError)
		}
		log.Printf("register: check user existence: %v", err)
		return NewUserResult(nil, msgRegisterFailed)
	}
	if count > 0 {
		return NewUserResult(nil, msgUserExists)
	}

	user := &model.User{
		Username: username,
		Password: s.hasher.Hash(password),
	}
	if err := s.users.Create(ctx, user); err != nil {
		log.Printf("register: create user: %v", err)
		return NewUserResult(nil, msgRegisterFailed)
	}

	// Hand back the assigned ID but never the digest.
	user.Password = nil
	return NewUserResult(user, "")
}

func (s *platformService) Authenticate(ctx context.Context, username, password string) (*UserResult, error) {
	if username == "" || password == "" {
		return NewUserResult(nil, msgMissingAuthFields), nil
	}

	id, err := s.users.FindIDByCredentials(ctx, username, s.hasher.Hash(password))
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("authenticate: credential lookup: %v", err)
		}
		return NewUserResult(nil, msgAuthFailed), nil
	}
	if id == 0 {
		return NewUserResult(nil, msgUnknownLookupError), nil
	}

	user := &model.User{ID: id, Username: username}
	token, err := s.issuer.Issue(ctx, user)
	if err != nil {
		// Credentials were valid but no token row exists; surfaced raw.
		return nil, err
	}
	user.Token = token
	return NewUserResult(user, ""), nil
}
