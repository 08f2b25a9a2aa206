package auth

import (
	"context"
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/jhoicas/portal-beneficiarios/internal/domain/entity"
)

// OTPSender entrega el código al usuario (SMS, correo o log en desarrollo).
type OTPSender interface {
	SendOTP(ctx context.Context, user *entity.User, code string) error
}

// GenerateCode devuelve un código numérico aleatorio de length dígitos.
func GenerateCode(length int) (string, error) {
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + n.Int64()))
	}
	return b.String(), nil
}
