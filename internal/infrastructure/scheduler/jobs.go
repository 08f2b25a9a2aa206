package scheduler

import (
	"context"
	"time"

	"github.com/jhoicas/portal-beneficiarios/pkg/logger"
)

// FlowPurger descarta flujos de login vencidos.
type FlowPurger interface {
	Purge() int
}

// OTPPurger borra sesiones OTP vencidas.
type OTPPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// PurgeFlowsJob tarea de limpieza de flujos.
func PurgeFlowsJob(spec string, flows FlowPurger, log *logger.Logger) Job {
	return Job{
		Name:    "purge_login_flows",
		Spec:    spec,
		Timeout: 30 * time.Second,
		Run: func(context.Context) error {
			if n := flows.Purge(); n > 0 && log != nil {
				log.Info().Int("flows", n).Msg("flujos de login vencidos descartados")
			}
			return nil
		},
	}
}

// PurgeOTPSessionsJob tarea de limpieza de sesiones OTP.
func PurgeOTPSessionsJob(spec string, otp OTPPurger, log *logger.Logger) Job {
	return Job{
		Name:    "purge_otp_sessions",
		Spec:    spec,
		Timeout: time.Minute,
		Run: func(ctx context.Context) error {
			n, err := otp.PurgeExpired(ctx)
			if err != nil {
				return err
			}
			if n > 0 && log != nil {
				log.Info().Int64("sessions", n).Msg("sesiones OTP vencidas borradas")
			}
			return nil
		},
	}
}
