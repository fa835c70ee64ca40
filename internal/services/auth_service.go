package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/config"
	"storefront/internal/events"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// Roles carried by the "role" claim.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// RecoverMessage is returned by the simulated password recovery.
const RecoverMessage = "If the email is registered, recovery instructions have been sent"

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo  repositories.UserRepository
	publisher EventPublisher
	jwtSecret []byte
	adminUser string
	adminPass string
	adminTTL  time.Duration
	userTTL   time.Duration
}

// NewAuthService creates a new AuthService. publisher may be nil.
func NewAuthService(userRepo repositories.UserRepository, cfg config.AuthConfig, publisher EventPublisher) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		publisher: publisher,
		jwtSecret: []byte(cfg.JWTSecret),
		adminUser: cfg.AdminUser,
		adminPass: cfg.AdminPass,
		adminTTL:  cfg.AdminTokenTTL,
		userTTL:   cfg.UserTokenTTL,
	}
}

// NormalizeEmail lower-cases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RegisterUser registers a new user, hashes their password, and saves them to the database.
func (s *AuthService) RegisterUser(ctx context.Context, in models.RegisterInput) (*models.User, error) {
	in.Email = NormalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	if existing, err := s.userRepo.GetByEmail(ctx, in.Email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	} else if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hashedPassword),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// a concurrent registration can still hit the unique index
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	env, err := events.UserEvent(*user)
	publishEvent(s.publisher, env, err)
	return user, nil
}

// LoginUser authenticates a customer and returns a signed token with the
// public view of the user.
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (string, models.PublicUser, error) {
	if err := validateStruct(models.LoginInput{Email: email, Password: password}); err != nil {
		return "", models.PublicUser{}, err
	}

	user, err := s.userRepo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			log.Error().Err(err).Msg("User lookup failed during login")
		}
		return "", models.PublicUser{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", models.PublicUser{}, ErrInvalidCredentials
	}

	token, err := s.sign(jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    RoleUser,
	}, s.userTTL)
	if err != nil {
		return "", models.PublicUser{}, err
	}
	return token, user.Public(), nil
}

// LoginAdmin checks the static admin credentials and issues a short-lived
// admin token.
func (s *AuthService) LoginAdmin(username, password string) (string, error) {
	if s.adminUser == "" || s.adminPass == "" {
		return "", ErrInvalidCredentials
	}
	if err := validateStruct(models.AdminLoginInput{Username: username, Password: password}); err != nil {
		return "", err
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.adminUser)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPass)) == 1
	if !userOK || !passOK {
		return "", ErrInvalidCredentials
	}

	return s.sign(jwt.MapClaims{
		"username": username,
		"role":     RoleAdmin,
	}, s.adminTTL)
}

func (s *AuthService) sign(claims jwt.MapClaims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(ttl).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Debug().Err(err).Msg("Token validation failed")
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	// MapClaims.Valid lets a token without exp through.
	if !claims.VerifyExpiresAt(time.Now().Unix(), true) {
		return nil, fmt.Errorf("%w: missing or expired exp claim", ErrInvalidToken)
	}
	return claims, nil
}

// RecoverPassword simulates a recovery email. It always succeeds: nothing is
// sent and the response does not reveal whether the address is registered.
func (s *AuthService) RecoverPassword(_ context.Context, email string) string {
	in := models.RecoverInput{Email: NormalizeEmail(email)}
	if err := validateStruct(in); err != nil {
		log.Debug().Str("email", in.Email).Msg("Password recovery requested for an invalid email")
		return RecoverMessage
	}
	log.Info().Str("email", in.Email).Msg("Simulated password recovery")
	return RecoverMessage
}
