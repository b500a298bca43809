package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/h4ks-com/farmstead/internal/models"
	"github.com/h4ks-com/farmstead/internal/patch"
	"github.com/h4ks-com/farmstead/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const AdminUsername = "admin"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already registered")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrInactiveUser       = errors.New("inactive user")
	ErrInvalidRole        = errors.New("role must be admin or farmer")
	ErrTokenNotFound      = errors.New("token not found")
)

type NewUser struct {
	Username string
	Password string
	Role     string
	IsActive bool
}

type UserPatch struct {
	Username patch.Field[string] `json:"username"`
	Password patch.Field[string] `json:"password"`
	Role     patch.Field[string] `json:"role"`
	IsActive patch.Field[bool]   `json:"is_active"`
}

type IssuedToken struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
}

type AuthService struct {
	userRepo     *repository.UserRepository
	tokenRepo    *repository.TokenRepository
	tokenService *TokenService
	logger       *zap.Logger
	bcryptCost   int
}

func NewAuthService(userRepo *repository.UserRepository, tokenRepo *repository.TokenRepository, tokenService *TokenService, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		tokenService: tokenService,
		logger:       logger,
		bcryptCost:   bcrypt.DefaultCost,
	}
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func VerifyPassword(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}

// Register creates a self-service account. Role and activity are not caller-controlled.
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	return s.CreateUser(ctx, NewUser{
		Username: username,
		Password: password,
		Role:     models.RoleFarmer,
		IsActive: true,
	})
}

// CreateUser is the admin path: role and activity are taken as given.
func (s *AuthService) CreateUser(ctx context.Context, in NewUser) (*models.User, error) {
	if in.Role == "" {
		in.Role = models.RoleFarmer
	}
	if !validRole(in.Role) {
		return nil, ErrInvalidRole
	}

	existing, err := s.userRepo.FindByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hashed, err := s.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:       in.Username,
		HashedPassword: hashed,
		Role:           in.Role,
		IsActive:       in.IsActive,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User created",
		zap.String("username", user.Username),
		zap.String("role", user.Role),
		zap.Uint("user_id", user.ID))
	return user, nil
}

// Login checks the credentials and issues a bearer token recorded in the token ledger.
// Unknown users and wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*IssuedToken, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !VerifyPassword(user.HashedPassword, password) {
		return nil, ErrInvalidCredentials
	}

	tokenString, claims, err := s.tokenService.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	expiresAt := claims.ExpiresAt.Time.UTC()
	err = s.tokenRepo.Create(ctx, &models.APIToken{
		UserID:    user.ID,
		TokenID:   claims.ID,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		return nil, err
	}

	return &IssuedToken{
		AccessToken: tokenString,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
	}, nil
}

// Authenticate resolves a bearer token to an active user.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.tokenService.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	issued, err := s.tokenRepo.FindActive(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if issued == nil {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.FindByUsername(ctx, claims.Username())
	if err != nil {
		return nil, err
	}
	if user == nil || user.ID != issued.UserID {
		return nil, ErrInvalidToken
	}
	if !user.IsActive {
		return nil, ErrInactiveUser
	}

	return user, nil
}

// EnsureAdmin creates the "admin" account with defaultPassword when it does not exist yet.
// It reports whether an account was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, defaultPassword string) (bool, error) {
	existing, err := s.userRepo.FindByUsername(ctx, AdminUsername)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	_, err = s.CreateUser(ctx, NewUser{
		Username: AdminUsername,
		Password: defaultPassword,
		Role:     models.RoleAdmin,
		IsActive: true,
	})
	if err != nil {
		return false, err
	}

	s.logger.Warn("Created default admin account, change its password",
		zap.String("username", AdminUsername))
	return true, nil
}

func (s *AuthService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *AuthService) ListUsers(ctx context.Context, skip, limit int) ([]models.User, error) {
	return s.userRepo.FindAll(ctx, skip, limit)
}

// UpdateUser applies only the fields present in p. A new password is re-hashed.
func (s *AuthService) UpdateUser(ctx context.Context, id uint, p UserPatch) (*models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := patch.Updates{}
	if err := patch.Required(updates, "username", p.Username); err != nil {
		return nil, err
	}
	if err := patch.Required(updates, "role", p.Role); err != nil {
		return nil, err
	}
	if err := patch.Required(updates, "is_active", p.IsActive); err != nil {
		return nil, err
	}
	if p.Role.Set && !validRole(p.Role.Value) {
		return nil, ErrInvalidRole
	}
	if p.Password.Set {
		if p.Password.Null {
			return nil, &patch.NullError{Column: "password"}
		}
		hashed, err := s.HashPassword(p.Password.Value)
		if err != nil {
			return nil, err
		}
		updates["hashed_password"] = hashed
	}
	if p.Username.Set && p.Username.Value != user.Username {
		other, err := s.userRepo.FindByUsername(ctx, p.Username.Value)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, ErrUsernameTaken
		}
	}

	if err := s.userRepo.Patch(ctx, user, updates); err != nil {
		return nil, err
	}
	return s.GetUser(ctx, id)
}

func (s *AuthService) DeleteUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return nil, err
	}
	s.logger.Info("User deleted", zap.String("username", user.Username), zap.Uint("user_id", id))
	return user, nil
}

func (s *AuthService) ListTokens(ctx context.Context, user *models.User) ([]models.APIToken, error) {
	return s.tokenRepo.FindByUserID(ctx, user.ID)
}

func (s *AuthService) RevokeToken(ctx context.Context, user *models.User, tokenID uint) error {
	deleted, err := s.tokenRepo.Delete(ctx, tokenID, user.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTokenNotFound
	}
	return nil
}

func (s *AuthService) PruneExpiredTokens(ctx context.Context) (int64, error) {
	return s.tokenRepo.DeleteExpired(ctx)
}

func validRole(role string) bool {
	return role == models.RoleAdmin || role == models.RoleFarmer
}
