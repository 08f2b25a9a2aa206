package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/portal-beneficiarios/internal/domain"
	"github.com/jhoicas/portal-beneficiarios/internal/domain/entity"
	"github.com/jhoicas/portal-beneficiarios/internal/domain/repository"
)

var _ repository.ServiceRepository = (*ServiceRepo)(nil)

const serviceColumns = `s.id::text, s.name, COALESCE(s.description, ''), COALESCE(s.requirements, ''), COALESCE(s.category, ''),
	s.max_amount, s.duration_days, s.required_documents, s.reapplication_period_months, s.is_one_time_only,
	COALESCE(s.created_by::text, ''), s.is_active, s.created_at, s.updated_at`

// ServiceRepo catálogo de servicios sobre PostgreSQL. required_documents se guarda como JSONB.
type ServiceRepo struct {
	q Querier
}

// NewServiceRepository construye el adaptador de servicios.
func NewServiceRepository(q Querier) *ServiceRepo {
	return &ServiceRepo{q: q}
}

// Create persiste un servicio nuevo.
func (r *ServiceRepo) Create(ctx context.Context, s *entity.Service) error {
	docs, err := marshalDocuments(s.RequiredDocuments)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO services (id, name, description, requirements, category, max_amount, duration_days,
			required_documents, reapplication_period_months, is_one_time_only, created_by, is_active, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8, $9, $10, NULLIF($11, '')::uuid, $12, $13, $14)`
	_, err = r.q.Exec(ctx, query,
		s.ID, s.Name, s.Description, s.Requirements, s.Category, s.MaxAmount, s.DurationDays,
		docs, s.ReapplicationPeriodMonths, s.IsOneTimeOnly, s.CreatedBy, s.IsActive, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert service: %w", err)
	}
	return nil
}

// GetByID obtiene un servicio por ID.
func (r *ServiceRepo) GetByID(ctx context.Context, id string) (*entity.Service, error) {
	var s entity.Service
	err := scanService(r.q.QueryRow(ctx, `SELECT `+serviceColumns+` FROM services s WHERE s.id = $1`, id), &s)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service: %w", err)
	}
	return &s, nil
}

// Update actualiza el servicio. created_by no cambia.
func (r *ServiceRepo) Update(ctx context.Context, s *entity.Service) error {
	docs, err := marshalDocuments(s.RequiredDocuments)
	if err != nil {
		return err
	}
	query := `
		UPDATE services SET name = $2, description = NULLIF($3, ''), requirements = NULLIF($4, ''), category = NULLIF($5, ''),
			max_amount = $6, duration_days = $7, required_documents = $8, reapplication_period_months = $9,
			is_one_time_only = $10, is_active = $11, updated_at = $12
		WHERE id = $1`
	err = execAffected(ctx, r.q, domain.ErrNotFound, query,
		s.ID, s.Name, s.Description, s.Requirements, s.Category, s.MaxAmount, s.DurationDays,
		docs, s.ReapplicationPeriodMonths, s.IsOneTimeOnly, s.IsActive, s.UpdatedAt,
	)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("update service: %w", err)
	}
	return err
}

// SetActive activa o desactiva el servicio.
func (r *ServiceRepo) SetActive(ctx context.Context, id string, active bool) error {
	err := execAffected(ctx, r.q, domain.ErrNotFound,
		`UPDATE services SET is_active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("set service active: %w", err)
	}
	return err
}

// List devuelve los servicios con el nombre de quien los creó y sus solicitudes.
func (r *ServiceRepo) List(ctx context.Context) ([]*entity.ServiceSummary, error) {
	query := `
	SELECT ` + serviceColumns + `,
	    COALESCE(u.full_name, '')                                           AS creator_name,
	    (SELECT COUNT(*) FROM service_requests sr WHERE sr.service_id = s.id) AS requests_count
	FROM services s
	LEFT JOIN users u ON u.id = s.created_by
	ORDER BY s.created_at DESC`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	var list []*entity.ServiceSummary
	for rows.Next() {
		var sum entity.ServiceSummary
		if err := scanService(rows, &sum.Service, &sum.CreatorName, &sum.RequestsCount); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		list = append(list, &sum)
	}
	return list, rows.Err()
}

// CountRequests cuenta las solicitudes del servicio.
func (r *ServiceRepo) CountRequests(ctx context.Context, id string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM service_requests WHERE service_id = $1`, id).Scan(&n); err != nil {
		return 0, fmt.Errorf("count service requests: %w", err)
	}
	return n, nil
}

// Delete elimina el servicio.
func (r *ServiceRepo) Delete(ctx context.Context, id string) error {
	err := execAffected(ctx, r.q, domain.ErrNotFound, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrHasRequests
		}
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete service: %w", err)
	}
	return nil
}

func marshalDocuments(docs []entity.RequiredDocument) ([]byte, error) {
	if docs == nil {
		docs = []entity.RequiredDocument{}
	}
	b, err := json.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("marshal required_documents: %w", err)
	}
	return b, nil
}

// scanService lee las columnas de serviceColumns y, a continuación, las extra indicadas.
func scanService(row rowScanner, s *entity.Service, extra ...any) error {
	var docs []byte
	dest := []any{
		&s.ID, &s.Name, &s.Description, &s.Requirements, &s.Category,
		&s.MaxAmount, &s.DurationDays, &docs, &s.ReapplicationPeriodMonths, &s.IsOneTimeOnly,
		&s.CreatedBy, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return err
	}
	if len(docs) > 0 {
		if err := json.Unmarshal(docs, &s.RequiredDocuments); err != nil {
			return fmt.Errorf("unmarshal required_documents: %w", err)
		}
	}
	return nil
}
