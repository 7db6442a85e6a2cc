package usecases

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"vita-server/entities"
	"vita-server/repositories"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type AccountUseCase struct {
	Users     repositories.UserRepository
	Profiles  repositories.ProfileRepository
	jwtSecret []byte
}

func NewAccountUseCase(users repositories.UserRepository, profiles repositories.ProfileRepository, jwtSecret string) *AccountUseCase {
	return &AccountUseCase{
		Users:     users,
		Profiles:  profiles,
		jwtSecret: []byte(jwtSecret),
	}
}

// hashPassword creates a SHA-256 hash of the password.
func hashPassword(password string) string {
	hash := sha256.Sum256([]byte(password))
	return hex.EncodeToString(hash[:])
}

// Register creates a user with a hashed password and an empty profile.
func (uc *AccountUseCase) Register(username, password, displayName string) (*entities.User, error) {
	if username == "" || password == "" {
		return nil, errors.New("username and password are required")
	}
	user := &entities.User{
		Username:     username,
		DisplayName:  displayName,
		Role:         entities.RoleUser,
		Provider:     entities.ProviderPassword,
		PasswordHash: hashPassword(password),
	}
	if err := uc.Users.Create(user); err != nil {
		return nil, errors.New("username already taken")
	}
	_ = uc.Profiles.Upsert(&entities.UserProfile{Username: username})
	return user, nil
}

// Login authenticates a password user.
func (uc *AccountUseCase) Login(username, password string) (*entities.User, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := uc.Users.GetByUsername(username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if user.PasswordHash != hashPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// SocialLogin exchanges an already-verified provider identity for a local
// user, creating it on first login. Token verification is delegated to the
// provider widget; the exchange only trusts the forwarded identity fields.
func (uc *AccountUseCase) SocialLogin(provider, externalID, displayName, avatarURL string) (*entities.User, string, error) {
	if provider != entities.ProviderLine && provider != entities.ProviderTelegram {
		return nil, "", errors.New("unsupported login provider")
	}
	if externalID == "" {
		return nil, "", errors.New("provider user id is required")
	}
	username := provider + ":" + externalID
	user, err := uc.Users.GetByUsername(username)
	if err != nil {
		user = &entities.User{
			Username:    username,
			DisplayName: displayName,
			AvatarURL:   avatarURL,
			Role:        entities.RoleUser,
			Provider:    provider,
		}
		if err := uc.Users.Create(user); err != nil {
			return nil, "", err
		}
		_ = uc.Profiles.Upsert(&entities.UserProfile{Username: username})
	}
	token, err := uc.issueToken(user.Username, user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// AdminLogin authenticates an admin user and returns a signed token.
func (uc *AccountUseCase) AdminLogin(username, password string) (string, error) {
	user, err := uc.Login(username, password)
	if err != nil {
		return "", err
	}
	if user.Role != entities.RoleAdmin {
		return "", errors.New("not an admin account")
	}
	return uc.issueToken(user.Username, user.Role)
}

type sessionClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func (uc *AccountUseCase) issueToken(username, role string) (string, error) {
	claims := sessionClaims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(uc.jwtSecret)
}

// VerifyToken parses a session token and returns its username and role.
func (uc *AccountUseCase) VerifyToken(tokenString string) (string, string, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return uc.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", "", errors.New("invalid token")
	}
	return claims.Username, claims.Role, nil
}
