package service

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrUserAlreadyExists    = errors.New("user with this username or email already exists")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid username or password")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
	ErrPasswordMismatch     = errors.New("current password is incorrect")
)

// RegisterInput carries the registration payload. Weight, height and
// goal are optional profile fields captured at signup.
type RegisterInput struct {
	Username string   `json:"username" binding:"required,min=3"`
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=8"`
	Weight   *float64 `json:"weight,omitempty"`
	Height   *float64 `json:"height,omitempty"`
	Goal     string   `json:"goal,omitempty"`
}

// AuthService handles registration, login and password changes.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (token string, user *domain.User, err error)
	Login(ctx context.Context, username, password string) (token string, user *domain.User, err error)
	UpdatePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error
	GetJWTSecret() string
}

// authService implements the AuthService interface.
type authService struct {
	userRepo      repository.UserRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo repository.UserRepository, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour * 24
	}
	return &authService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Register handles new user registration and logs the user in.
func (s *authService) Register(ctx context.Context, input RegisterInput) (string, *domain.User, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return "", nil, errors.New("username, email, and password are required")
	}

	// Username and email must both be free.
	if _, err := s.userRepo.GetByUsername(ctx, input.Username); err == nil {
		return "", nil, ErrUserAlreadyExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", nil, err
	}
	if _, err := s.userRepo.GetByEmail(ctx, input.Email); err == nil {
		return "", nil, ErrUserAlreadyExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, ErrHashingFailed
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		Weight:       input.Weight,
		Height:       input.Height,
		Goal:         input.Goal,
	}

	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		// Unique index may still reject a concurrent duplicate between the
		// existence checks and the insert.
		return "", nil, err
	}
	user.ID = userID

	token, err := s.generateJWT(user)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	user.PasswordHash = ""
	return token, user, nil
}

// Login authenticates by username (or email) and issues a JWT.
func (s *authService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, errors.New("username and password cannot be empty")
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		// Allow signing in with the email address as well.
		user, err = s.userRepo.GetByEmail(ctx, username)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrAuthenticationFailed
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrAuthenticationFailed
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	user.PasswordHash = ""
	return token, user, nil
}

// UpdatePassword verifies the current password before storing a new hash.
func (s *authService) UpdatePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	if newPassword == "" {
		return errors.New("new password cannot be empty")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrPasswordMismatch
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrHashingFailed
	}
	return s.userRepo.UpdatePassword(ctx, userID, string(hashed))
}

// --- JWT Helper ---

// JWTClaims defines the structure of the JWT payload.
type JWTClaims struct {
	UserID  uint `json:"uid"`
	IsAdmin bool `json:"adm"`
	jwt.RegisteredClaims
}

// generateJWT creates a new JWT token for the given user.
func (s *authService) generateJWT(user *domain.User) (string, error) {
	expirationTime := time.Now().Add(s.jwtExpiration)
	claims := &JWTClaims{
		UserID:  user.ID,
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "fitness-tracker",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}
	return signedToken, nil
}

// GetJWTSecret returns the JWT secret for middleware authentication.
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
