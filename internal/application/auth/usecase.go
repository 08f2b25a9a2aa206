package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/portal-beneficiarios/internal/application/dto"
	"github.com/jhoicas/portal-beneficiarios/internal/domain"
	"github.com/jhoicas/portal-beneficiarios/internal/domain/entity"
	"github.com/jhoicas/portal-beneficiarios/internal/domain/login"
	"github.com/jhoicas/portal-beneficiarios/internal/domain/repository"
	"github.com/jhoicas/portal-beneficiarios/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// SessionIssuer firma el JWT de la sesión establecida al terminar un flujo.
type SessionIssuer struct {
	cfg JWTConfig
}

// NewSessionIssuer construye el emisor de sesiones.
func NewSessionIssuer(cfg JWTConfig) *SessionIssuer {
	return &SessionIssuer{cfg: cfg}
}

// Issue genera token + expiración para la cuenta.
func (s *SessionIssuer) Issue(acc login.Account) (*dto.SessionDTO, error) {
	token, exp, err := jwt.Issue(s.cfg.Secret, acc.ID, acc.BranchID, acc.Role, s.cfg.Issuer, s.cfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("emitir sesión: %w", err)
	}
	return &dto.SessionDTO{Token: token, ExpiresAt: exp, User: ToAccountDTO(acc)}, nil
}

// AdminAuthenticator valida correo y contraseña del rol admin.
type AdminAuthenticator struct {
	userRepo repository.UserRepository
}

// NewAdminAuthenticator construye el autenticador de administradores.
func NewAdminAuthenticator(userRepo repository.UserRepository) *AdminAuthenticator {
	return &AdminAuthenticator{userRepo: userRepo}
}

// Authenticate verifica email/password con bcrypt. Devuelve ErrUnauthorized si el usuario
// no existe, la contraseña no coincide o la cuenta no es admin; ErrAccountInactive si está desactivada.
func (a *AdminAuthenticator) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := a.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Role != entity.RoleAdmin {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrAccountInactive
	}
	return user, nil
}

// ToAccount convierte un User en la cuenta que guarda el flujo.
func ToAccount(u *entity.User) login.Account {
	return login.Account{
		ID:         u.ID,
		FullName:   u.FullName,
		NationalID: u.NationalID,
		Email:      u.Email,
		Role:       u.Role,
		BranchID:   u.BranchID,
	}
}

// ToAccountDTO salida pública de una cuenta.
func ToAccountDTO(a login.Account) dto.AccountDTO {
	return dto.AccountDTO{
		ID:         a.ID,
		FullName:   a.FullName,
		NationalID: a.NationalID,
		Email:      a.Email,
		Role:       a.Role,
		BranchID:   a.BranchID,
	}
}

func nowUTC() time.Time { return time.Now().UTC() }
