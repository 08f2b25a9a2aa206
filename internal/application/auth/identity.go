package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/portal-beneficiarios/internal/domain"
	"github.com/jhoicas/portal-beneficiarios/internal/domain/entity"
	"github.com/jhoicas/portal-beneficiarios/internal/domain/login"
	"github.com/jhoicas/portal-beneficiarios/internal/domain/repository"
	"github.com/jhoicas/portal-beneficiarios/pkg/logger"
)

// OTPConfig política de los códigos de verificación.
type OTPConfig struct {
	Length      int
	TTL         time.Duration
	MaxAttempts int
	HashCost    int // 0 = bcrypt.DefaultCost
}

// IdentityService resuelve la identidad nacional y verifica el código OTP.
type IdentityService struct {
	users    repository.UserRepository
	sessions repository.OTPSessionRepository
	sender   OTPSender
	cfg      OTPConfig
	log      *logger.Logger
	now      func() time.Time

	// verifyMu serializa las verificaciones para que el conteo de intentos sea atómico.
	verifyMu sync.Mutex
}

// NewIdentityService construye el servicio de identidad.
func NewIdentityService(
	users repository.UserRepository,
	sessions repository.OTPSessionRepository,
	sender OTPSender,
	cfg OTPConfig,
	log *logger.Logger,
) *IdentityService {
	if cfg.HashCost == 0 {
		cfg.HashCost = bcrypt.DefaultCost
	}
	if log == nil {
		log = logger.Nop()
	}
	return &IdentityService{users: users, sessions: sessions, sender: sender, cfg: cfg, log: log, now: nowUTC}
}

// rolesFor devuelve los roles de cuenta que puede usar cada tipo de acceso por OTP.
func rolesFor(r login.Role) ([]string, error) {
	switch r {
	case login.RoleBeneficiary:
		return []string{entity.RoleBeneficiary}, nil
	case login.RoleEmployee:
		return []string{entity.RoleEmployee, entity.RoleBranchManager}, nil
	}
	return nil, domain.ErrInvalidLoginRole
}

// LookupNationalID busca la cuenta, crea una sesión OTP y envía el código.
// Devuelve el ID numérico de la sesión.
func (s *IdentityService) LookupNationalID(ctx context.Context, nationalID string, role login.Role) (int64, error) {
	nationalID = strings.TrimSpace(nationalID)
	if nationalID == "" {
		return 0, domain.ErrInvalidInput
	}
	roles, err := rolesFor(role)
	if err != nil {
		return 0, err
	}
	user, err := s.users.FindByNationalID(ctx, nationalID, roles)
	if err != nil {
		return 0, fmt.Errorf("buscar identidad: %w", err)
	}
	if user == nil {
		return 0, domain.ErrUserNotFound
	}
	if !user.IsActive {
		return 0, domain.ErrAccountInactive
	}

	code, err := GenerateCode(s.cfg.Length)
	if err != nil {
		return 0, fmt.Errorf("generar código: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), s.cfg.HashCost)
	if err != nil {
		return 0, fmt.Errorf("hash del código: %w", err)
	}
	now := s.now()
	sess := &entity.OTPSession{
		NationalID: nationalID,
		UserID:     user.ID,
		Role:       user.Role,
		CodeHash:   string(hash),
		ExpiresAt:  now.Add(s.cfg.TTL),
		CreatedAt:  now,
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return 0, fmt.Errorf("crear sesión otp: %w", err)
	}
	if err := s.sender.SendOTP(ctx, user, code); err != nil {
		return 0, fmt.Errorf("enviar código: %w", err)
	}
	s.log.Info().Int64("session_id", sess.ID).Str("user_id", user.ID).Msg("sesión otp creada")
	return sess.ID, nil
}

// VerifyOTP comprueba el código contra la sesión. Verifica o falla completo en cada llamada.
func (s *IdentityService) VerifyOTP(ctx context.Context, nationalID string, sessionID int64, code string) (*entity.User, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.ErrInvalidInput
	}

	s.verifyMu.Lock()
	defer s.verifyMu.Unlock()

	sess, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("leer sesión otp: %w", err)
	}
	if sess == nil || sess.NationalID != strings.TrimSpace(nationalID) || sess.VerifiedAt != nil {
		return nil, domain.ErrSessionNotFound
	}
	now := s.now()
	if sess.Expired(now) {
		return nil, domain.ErrOTPExpired
	}
	if sess.Attempts >= s.cfg.MaxAttempts {
		return nil, domain.ErrOTPAttempts
	}
	if err := bcrypt.CompareHashAndPassword([]byte(sess.CodeHash), []byte(code)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, fmt.Errorf("comparar código: %w", err)
		}
		attempts, err := s.sessions.IncrementAttempts(ctx, sess.ID)
		if err != nil {
			return nil, fmt.Errorf("registrar intento: %w", err)
		}
		if attempts >= s.cfg.MaxAttempts {
			return nil, domain.ErrOTPAttempts
		}
		return nil, domain.ErrOTPMismatch
	}
	if err := s.sessions.MarkVerified(ctx, sess.ID, now); err != nil {
		return nil, fmt.Errorf("marcar sesión verificada: %w", err)
	}

	user, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("leer usuario: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if !user.IsActive {
		return nil, domain.ErrAccountInactive
	}
	return user, nil
}

// PurgeExpired borra las sesiones OTP vencidas. Lo usa el job de limpieza.
func (s *IdentityService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpired(ctx, s.now())
}
