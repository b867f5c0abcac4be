package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"nihongo-server/internal/model"
	"nihongo-server/pkg/apierror"
)

// UserStore is the persistence surface the auth flow needs. Email
// lookup is exact, case-sensitive; Insert must reject a duplicate email
// even when the pre-check raced.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (model.User, error)
	FindByID(ctx context.Context, id string) (model.User, error)
	Insert(ctx context.Context, u model.User) (model.User, error)
	UpdateRole(ctx context.Context, id string, role string) (bool, error)
	List(ctx context.Context) ([]model.User, error)
}

type AuthService struct {
	users      UserStore
	audit      *AuditService
	jwtSecret  []byte
	tokenTTL   time.Duration
	bcryptCost int
}

func NewAuthService(users UserStore, audit *AuditService, jwtSecret string, tokenTTL time.Duration, bcryptCost int) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}

	return &AuthService{
		users:      users,
		audit:      audit,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
	}
}

// TokenTTL exposes the configured session lifetime, mostly for cookies.
func (s *AuthService) TokenTTL() time.Duration {
	return s.tokenTTL
}

func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.PublicUser, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.PhotoURL = strings.TrimSpace(req.PhotoURL)
	req.Role = strings.ToLower(strings.TrimSpace(req.Role))

	if req.Name == "" || req.Email == "" || req.Password == "" {
		return model.PublicUser{}, apierror.New("BAD_REQUEST", "name, email and password are required", "", http.StatusBadRequest)
	}
	if !strings.Contains(req.Email, "@") {
		return model.PublicUser{}, apierror.New("BAD_REQUEST", "email is not valid", "email", http.StatusBadRequest)
	}
	if req.Role == "" {
		req.Role = model.RoleUser
	}
	if !model.ValidRole(req.Role) {
		return model.PublicUser{}, apierror.New("BAD_REQUEST", "invalid role", req.Role, http.StatusBadRequest)
	}

	// Fast path only: the unique index on email is what actually
	// guarantees at most one record per identity under concurrency.
	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return model.PublicUser{}, model.ErrDuplicateEmail
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return model.PublicUser{}, err
	}

	now := time.Now().UTC()
	created, err := s.users.Insert(ctx, model.User{
		Name:         req.Name,
		Email:        req.Email,
		PhotoURL:     req.PhotoURL,
		PasswordHash: hash,
		Role:         req.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return model.PublicUser{}, err
	}

	s.audit.Record(ctx, created.Email, model.AuditActionRegister, created.ID.Hex(), "role="+created.Role)
	return created.Public(), nil
}

func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.LoginResult, error) {
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return model.LoginResult{}, apierror.New("BAD_REQUEST", "email and password are required", "", http.StatusBadRequest)
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return model.LoginResult{}, err
	}

	if !s.checkPassword(req.Password, user.PasswordHash) {
		return model.LoginResult{}, model.ErrInvalidPassword
	}

	token, err := s.issueToken(user)
	if err != nil {
		return model.LoginResult{}, err
	}

	s.audit.Record(ctx, user.Email, model.AuditActionLogin, user.ID.Hex(), "")
	return model.LoginResult{
		Token:     token,
		Role:      user.Role,
		ExpiresIn: int64(s.tokenTTL.Seconds()),
		User:      user.Public(),
	}, nil
}

// VerifyToken checks signature and expiry only; it never consults the
// store. The embedded role can therefore trail a role edit by up to the
// token TTL, which is the accepted cost of stateless verification.
func (s *AuthService) VerifyToken(raw string) (*model.AuthClaims, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, model.ErrInvalidToken
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, model.ErrInvalidToken
	}

	if claims.UserID == "" || claims.Email == "" || !model.ValidRole(claims.Role) {
		return nil, model.ErrInvalidToken
	}

	return &model.AuthClaims{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}, nil
}

func (s *AuthService) UpdateUserRole(ctx context.Context, actor string, userID string, role string) (bool, error) {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		return false, apierror.New("BAD_REQUEST", "role is required", "role", http.StatusBadRequest)
	}
	if !model.ValidRole(role) {
		return false, apierror.New("BAD_REQUEST", "invalid role", role, http.StatusBadRequest)
	}

	changed, err := s.users.UpdateRole(ctx, userID, role)
	if err != nil {
		return false, err
	}

	if changed {
		s.audit.Record(ctx, actor, model.AuditActionRoleChange, userID, "role="+role)
	}
	return changed, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]model.PublicUser, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}

type sessionClaims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (s *AuthService) issueToken(user model.User) (string, error) {
	now := time.Now().UTC()
	claims := sessionClaims{
		UserID: user.ID.Hex(),
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *AuthService) hashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// checkPassword fails closed: a malformed stored hash reads as a
// mismatch, never a panic or an internal error surfaced to the caller.
func (s *AuthService) checkPassword(plaintext string, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
