// Package notify entrega los códigos OTP. LogSender es el canal de desarrollo.
package notify

import (
	"context"

	"github.com/jhoicas/portal-beneficiarios/internal/application/auth"
	"github.com/jhoicas/portal-beneficiarios/internal/domain/entity"
	"github.com/jhoicas/portal-beneficiarios/pkg/logger"
)

var _ auth.OTPSender = (*LogSender)(nil)

// LogSender escribe el código en el log. En producción el código se enmascara.
type LogSender struct {
	log      *logger.Logger
	revealed bool
}

// NewLogSender construye el sender. revealed=true imprime el código completo (solo desarrollo).
func NewLogSender(log *logger.Logger, revealed bool) *LogSender {
	if log == nil {
		log = logger.Nop()
	}
	return &LogSender{log: log.Component("otp"), revealed: revealed}
}

// SendOTP registra el envío.
func (s *LogSender) SendOTP(_ context.Context, user *entity.User, code string) error {
	shown := Mask(code)
	if s.revealed {
		shown = code
	}
	s.log.Info().
		Str("user_id", user.ID).
		Str("phone", Mask(user.Phone)).
		Str("code", shown).
		Msg("código de verificación enviado")
	return nil
}

// Mask deja visibles los dos últimos caracteres.
func Mask(s string) string {
	if len(s) <= 2 {
		return "**"
	}
	b := []byte(s)
	for i := 0; i < len(b)-2; i++ {
		b[i] = '*'
	}
	return string(b)
}
