// seed_admin crea el primer administrador del portal. Si ya existe un usuario con ese
// correo no hace nada.
//
// Uso: go run ./cmd/seed_admin <email> <nombre completo>
// La contraseña se lee de SEED_ADMIN_PASSWORD (mínimo 8 caracteres).
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/portal-beneficiarios/internal/application/dto"
	"github.com/jhoicas/portal-beneficiarios/internal/application/usecase"
	"github.com/jhoicas/portal-beneficiarios/internal/domain"
	"github.com/jhoicas/portal-beneficiarios/internal/domain/entity"
	"github.com/jhoicas/portal-beneficiarios/internal/infrastructure/postgres"
	"github.com/jhoicas/portal-beneficiarios/pkg/config"
	"github.com/jhoicas/portal-beneficiarios/pkg/logger"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "uso: seed_admin <email> <nombre completo>")
		os.Exit(2)
	}
	email, name := os.Args[1], os.Args[2]
	password := os.Getenv("SEED_ADMIN_PASSWORD")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, log); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	users := usecase.NewUserUseCase(postgres.NewUserRepository(pool))
	admin, err := users.Create(ctx, dto.UserData{
		FullName: name,
		Email:    email,
		Role:     entity.RoleAdmin,
		Password: password,
	})
	switch {
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		log.Info().Str("email", email).Msg("el administrador ya existe")
	case err != nil:
		log.Fatal().Err(err).Str("email", email).Msg("crear administrador")
	default:
		log.Info().Str("id", admin.ID).Str("email", admin.Email).Msg("administrador creado")
	}
}
