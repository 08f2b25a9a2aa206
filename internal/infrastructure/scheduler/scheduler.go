// Package scheduler corre las tareas periódicas del portal sobre robfig/cron.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/portal-beneficiarios/pkg/logger"
)

// Job tarea periódica. Run recibe un contexto con timeout.
type Job struct {
	Name    string
	Spec    string // expresión cron de 5 campos
	Timeout time.Duration
	Run     func(ctx context.Context) error
}

// Scheduler envuelve un cron con recuperación de pánicos y sin solapamiento por tarea.
type Scheduler struct {
	cron *cron.Cron
	log  *logger.Logger
}

// New construye el scheduler sin arrancarlo.
func New(log *logger.Logger) *Scheduler {
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("scheduler")
	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cronLogger{log}),
			cron.SkipIfStillRunning(cronLogger{log}),
		)),
		log: log,
	}
}

// Add registra la tarea. Devuelve error si la expresión no es válida.
func (s *Scheduler) Add(job Job) error {
	if job.Run == nil {
		return fmt.Errorf("scheduler: tarea %q sin Run", job.Name)
	}
	timeout := job.Timeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	_, err := s.cron.AddFunc(job.Spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		start := time.Now()
		if err := job.Run(ctx); err != nil {
			s.log.Error().Err(err).Str("job", job.Name).Msg("tarea fallida")
			return
		}
		s.log.Debug().Str("job", job.Name).Dur("took", time.Since(start)).Msg("tarea completada")
	})
	if err != nil {
		return fmt.Errorf("scheduler: tarea %q: %w", job.Name, err)
	}
	return nil
}

// Start arranca el cron en segundo plano.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop detiene el cron y espera a que terminen las tareas en curso o a que venza ctx.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Len número de tareas registradas.
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}

// cronLogger adapta pkg/logger a cron.Logger.
type cronLogger struct {
	log *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
