// Package auth handles user accounts and JWT session tokens.
package auth

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserDisabled       = errors.New("user account is disabled")
	ErrUserNotFound       = errors.New("user not found")
	ErrPasswordRequired   = errors.New("password is required")
	ErrDuplicateUsername  = errors.New("username already exists")
)

// Role is a user's authorization level.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is a catalog account.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Enabled  bool   `json:"enabled"`
}

// Claims are the JWT claims issued to logged-in users.
type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	jwt.RegisteredClaims
}

// Service handles authentication operations.
type Service struct {
	db        *sql.DB
	jwtSecret []byte
}

// NewService creates a new auth service. An empty secret gets a random one,
// which invalidates issued tokens across restarts.
func NewService(db *sql.DB, jwtSecret string) (*Service, error) {
	secret := []byte(jwtSecret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("failed to generate JWT secret: %w", err)
		}
	}

	return &Service{db: db, jwtSecret: secret}, nil
}

// CreateUser creates an account with a bcrypt-hashed password.
func (s *Service) CreateUser(ctx context.Context, username, password string, role Role) (*User, error) {
	if password == "" {
		return nil, ErrPasswordRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `INSERT INTO users (username, password_hash, role)
		VALUES (?, ?, ?)`, username, string(hash), string(role))
	if err != nil {
		return nil, ErrDuplicateUsername
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read insert id: %w", err)
	}

	return &User{ID: id, Username: username, Role: role, Enabled: true}, nil
}

// Authenticate verifies credentials and returns a signed session token.
func (s *Service) Authenticate(ctx context.Context, username, password string) (string, *User, error) {
	var (
		user    User
		hash    string
		role    string
		enabled int64
	)
	err := s.db.QueryRowContext(ctx, `SELECT id, username, password_hash, role, enabled
		FROM users WHERE username = ?`, username).
		Scan(&user.ID, &user.Username, &hash, &role, &enabled)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if enabled == 0 {
		return "", nil, ErrUserDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	user.Role = Role(role)
	user.Enabled = true

	token, err := s.generateToken(&user)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

func (s *Service) generateToken(user *User) (string, error) {
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "showdeck",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken validates a JWT token and returns its claims.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// GenerateAPIKey generates a random key for service-to-service callers.
func GenerateAPIKey() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}
