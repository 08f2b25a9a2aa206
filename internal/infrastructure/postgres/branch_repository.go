package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/portal-beneficiarios/internal/domain"
	"github.com/jhoicas/portal-beneficiarios/internal/domain/entity"
	"github.com/jhoicas/portal-beneficiarios/internal/domain/repository"
)

var _ repository.BranchRepository = (*BranchRepo)(nil)

// BranchRepo sedes sobre PostgreSQL.
type BranchRepo struct {
	q Querier
}

// NewBranchRepository construye el adaptador de sedes.
func NewBranchRepository(q Querier) *BranchRepo {
	return &BranchRepo{q: q}
}

// Create persiste una sede nueva.
func (r *BranchRepo) Create(ctx context.Context, b *entity.Branch) error {
	query := `
		INSERT INTO branches (id, name, city, address, phone, manager_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, '')::uuid, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.Name, b.City, b.Address, b.Phone, b.ManagerID, b.IsActive, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert branch: %w", err)
	}
	return nil
}

// GetByID obtiene una sede por ID.
func (r *BranchRepo) GetByID(ctx context.Context, id string) (*entity.Branch, error) {
	query := `
		SELECT id::text, name, city, COALESCE(address, ''), COALESCE(phone, ''), COALESCE(manager_id::text, ''),
			is_active, created_at, updated_at
		FROM branches WHERE id = $1`
	var b entity.Branch
	err := r.q.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Name, &b.City, &b.Address, &b.Phone, &b.ManagerID, &b.IsActive, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get branch: %w", err)
	}
	return &b, nil
}

// Update actualiza los datos de la sede.
func (r *BranchRepo) Update(ctx context.Context, b *entity.Branch) error {
	query := `
		UPDATE branches SET name = $2, city = $3, address = NULLIF($4, ''), phone = NULLIF($5, ''),
			manager_id = NULLIF($6, '')::uuid, is_active = $7, updated_at = $8
		WHERE id = $1`
	err := execAffected(ctx, r.q, domain.ErrNotFound, query,
		b.ID, b.Name, b.City, b.Address, b.Phone, b.ManagerID, b.IsActive, b.UpdatedAt,
	)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("update branch: %w", err)
	}
	return err
}

// SetActive activa o desactiva la sede.
func (r *BranchRepo) SetActive(ctx context.Context, id string, active bool) error {
	err := execAffected(ctx, r.q, domain.ErrNotFound,
		`UPDATE branches SET is_active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("set branch active: %w", err)
	}
	return err
}

// List devuelve las sedes con el nombre del gerente y los contadores de empleados y beneficiarios.
func (r *BranchRepo) List(ctx context.Context) ([]*entity.BranchSummary, error) {
	const query = `
	SELECT
	    b.id::text, b.name, b.city, COALESCE(b.address, ''), COALESCE(b.phone, ''),
	    COALESCE(b.manager_id::text, ''), b.is_active, b.created_at, b.updated_at,
	    COALESCE(m.full_name, '')                                                        AS manager_name,
	    (SELECT COUNT(*) FROM users u WHERE u.branch_id = b.id AND u.role <> 'beneficiary') AS employees_count,
	    (SELECT COUNT(*) FROM members mb WHERE mb.branch_id = b.id)                       AS members_count
	FROM branches b
	LEFT JOIN users m ON m.id = b.manager_id
	ORDER BY b.created_at DESC`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	defer rows.Close()

	var list []*entity.BranchSummary
	for rows.Next() {
		var s entity.BranchSummary
		if err := rows.Scan(
			&s.ID, &s.Name, &s.City, &s.Address, &s.Phone,
			&s.ManagerID, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
			&s.ManagerName, &s.EmployeesCount, &s.MembersCount,
		); err != nil {
			return nil, fmt.Errorf("scan branch: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// CountDependents cuenta el personal y los expedientes ligados a la sede.
func (r *BranchRepo) CountDependents(ctx context.Context, id string) (users, members int, err error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM users   WHERE branch_id = $1 AND role <> 'beneficiary'),
	    (SELECT COUNT(*) FROM members WHERE branch_id = $1)`
	if err := r.q.QueryRow(ctx, query, id).Scan(&users, &members); err != nil {
		return 0, 0, fmt.Errorf("count branch dependents: %w", err)
	}
	return users, members, nil
}

// Delete elimina la sede.
func (r *BranchRepo) Delete(ctx context.Context, id string) error {
	err := execAffected(ctx, r.q, domain.ErrNotFound, `DELETE FROM branches WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrHasDependents
		}
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete branch: %w", err)
	}
	return nil
}
