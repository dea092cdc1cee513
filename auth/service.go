package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"jaayma/validate"
)

var (
	// ErrInvalidCredentials signals wrong email or password.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	// ErrRoleNotAllowed signals the caller asked for a role it may not create.
	ErrRoleNotAllowed = errors.New("auth: role not allowed")
)

// Service handles account business logic.
type Service struct {
	repo     Repository
	codec    *Codec
	delivery *DeliveryCodec
}

// LoginResult bundles the token and domain user returned after a successful login.
type LoginResult struct {
	Token string
	User  User
}

// NewService creates a new account service.
func NewService(repo Repository, codec *Codec, delivery *DeliveryCodec) *Service {
	return &Service{repo: repo, codec: codec, delivery: delivery}
}

// Register creates a new account for a public role. The payload runs through
// the composite validator first; a *validate.RegistrationError is returned
// unwrapped so callers can surface the per-rule messages.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	input, vErr := validate.CheckRegistration(validate.RegistrationInput{
		Nom:       req.Nom,
		Prenom:    req.Prenom,
		Email:     req.Email,
		Telephone: req.Telephone,
		Password:  req.Password,
	})
	if vErr != nil {
		return nil, vErr
	}

	role := req.Role
	if role == "" {
		role = RoleClient
	}
	switch role {
	case RoleClient, RoleGIE, RoleLivreur:
	case RoleAdmin, RoleSuperAdmin:
		// Back-office accounts only come from CreateAccount.
		return nil, ErrRoleNotAllowed
	default:
		return nil, fmt.Errorf("auth: invalid role %q", role)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash password: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, CreateUserParams{
		Email:        input.Email,
		Telephone:    input.Telephone,
		Nom:          input.Nom,
		Prenom:       input.Prenom,
		PasswordHash: string(passwordHash),
		Role:         role,
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// CreateAccount creates an account with any role, including back-office ones.
// Reserved to super administrators; the guard enforces that, the service only
// validates the payload.
func (s *Service) CreateAccount(ctx context.Context, req RegisterRequest) (*User, error) {
	if !ValidRole(req.Role) {
		return nil, fmt.Errorf("auth: invalid role %q", req.Role)
	}

	input, vErr := validate.CheckRegistration(validate.RegistrationInput{
		Nom:       req.Nom,
		Prenom:    req.Prenom,
		Email:     req.Email,
		Telephone: req.Telephone,
		Password:  req.Password,
	})
	if vErr != nil {
		return nil, vErr
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash password: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, CreateUserParams{
		Email:        input.Email,
		Telephone:    input.Telephone,
		Nom:          input.Nom,
		Prenom:       input.Prenom,
		PasswordHash: string(passwordHash),
		Role:         req.Role,
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Login authenticates an account and returns a signed token.
func (s *Service) Login(ctx context.Context, req LoginRequest) (LoginResult, error) {
	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := s.codec.Issue(Claims{Subject: user.ID, Contact: user.Email, Role: user.Role})
	if err != nil {
		return LoginResult{}, fmt.Errorf("auth: issue token: %w", err)
	}

	return LoginResult{Token: token, User: user}, nil
}

// LoginDelivery authenticates against the delivery token path. Only livreur
// and back-office accounts can obtain a delivery token.
func (s *Service) LoginDelivery(ctx context.Context, req LoginRequest) (LoginResult, error) {
	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}
	if !deliveryRoleAllowed(user.Role) {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := s.delivery.Issue(DeliveryClaims{Subject: user.ID, Contact: user.Email, Role: user.Role})
	if err != nil {
		return LoginResult{}, fmt.Errorf("auth: issue delivery token: %w", err)
	}

	return LoginResult{Token: token, User: user}, nil
}

// GetUserByID retrieves account information by ID.
func (s *Service) GetUserByID(ctx context.Context, userID string) (*User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListLivreurs returns delivery-agent accounts.
func (s *Service) ListLivreurs(ctx context.Context, limit int) ([]User, error) {
	return s.repo.ListByRole(ctx, RoleLivreur, limit)
}
