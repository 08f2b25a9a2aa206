// Package testutil reúne fakes en memoria de los puertos de repositorio para las pruebas.
package testutil

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/portal-beneficiarios/internal/domain"
	"github.com/jhoicas/portal-beneficiarios/internal/domain/entity"
	"github.com/jhoicas/portal-beneficiarios/internal/domain/repository"
)

var (
	_ repository.UserRepository       = (*Users)(nil)
	_ repository.MemberRepository     = (*Members)(nil)
	_ repository.BranchRepository     = (*Branches)(nil)
	_ repository.ServiceRepository    = (*Services)(nil)
	_ repository.OTPSessionRepository = (*OTPSessions)(nil)
	_ repository.StatsRepository      = (*Stats)(nil)
)

// Users fake de UserRepository. Err, si no es nil, lo devuelven todas las operaciones.
type Users struct {
	mu   sync.Mutex
	rows map[string]*entity.User
	Err  error
}

func NewUsers(users ...*entity.User) *Users {
	r := &Users{rows: map[string]*entity.User{}}
	for _, u := range users {
		r.rows[u.ID] = u
	}
	return r
}

func (r *Users) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for _, row := range r.rows {
		if (u.Email != "" && row.Email == u.Email) || (u.NationalID != "" && row.NationalID == u.NationalID) {
			return domain.ErrDuplicate
		}
	}
	cp := *u
	r.rows[u.ID] = &cp
	return nil
}

func (r *Users) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	if u, ok := r.rows[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *Users) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, u := range r.rows {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *Users) FindByNationalID(_ context.Context, nationalID string, roles []string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, u := range r.rows {
		if u.NationalID == nationalID && slices.Contains(roles, u.Role) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *Users) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.rows[u.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *u
	r.rows[u.ID] = &cp
	return nil
}

func (r *Users) SetActive(_ context.Context, id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	u, ok := r.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.IsActive = active
	return nil
}

func (r *Users) List(_ context.Context, f repository.UserFilter) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]*entity.User, 0, len(r.rows))
	for _, u := range r.rows {
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.BranchID != "" && u.BranchID != f.BranchID {
			continue
		}
		cp := *u
		out = append(out, &cp)
	}
	slices.SortFunc(out, func(a, b *entity.User) int { return strings.Compare(a.ID, b.ID) })
	return out, nil
}

func (r *Users) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

// Len número de usuarios guardados.
func (r *Users) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

// Members fake de MemberRepository.
type Members struct {
	mu   sync.Mutex
	rows map[string]*entity.Member // por UserID
	Err  error
}

func NewMembers(members ...*entity.Member) *Members {
	r := &Members{rows: map[string]*entity.Member{}}
	for _, m := range members {
		r.rows[m.UserID] = m
	}
	return r
}

func (r *Members) Create(_ context.Context, m *entity.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	cp := *m
	r.rows[m.UserID] = &cp
	return nil
}

func (r *Members) GetByUserID(_ context.Context, userID string) (*entity.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	if m, ok := r.rows[userID]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, nil
}

func (r *Members) Update(_ context.Context, m *entity.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.rows[m.UserID]; !ok {
		return domain.ErrNotFound
	}
	cp := *m
	r.rows[m.UserID] = &cp
	return nil
}

// Branches fake de BranchRepository. Dependents fija lo que devuelve CountDependents.
type Branches struct {
	mu         sync.Mutex
	rows       map[string]*entity.Branch
	Dependents map[string][2]int
	Err        error
}

func NewBranches(branches ...*entity.Branch) *Branches {
	r := &Branches{rows: map[string]*entity.Branch{}, Dependents: map[string][2]int{}}
	for _, b := range branches {
		r.rows[b.ID] = b
	}
	return r
}

func (r *Branches) Create(_ context.Context, b *entity.Branch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	cp := *b
	r.rows[b.ID] = &cp
	return nil
}

func (r *Branches) GetByID(_ context.Context, id string) (*entity.Branch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	if b, ok := r.rows[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}

func (r *Branches) Update(_ context.Context, b *entity.Branch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.rows[b.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *b
	r.rows[b.ID] = &cp
	return nil
}

func (r *Branches) SetActive(_ context.Context, id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	b, ok := r.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	b.IsActive = active
	return nil
}

func (r *Branches) List(_ context.Context) ([]*entity.BranchSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]*entity.BranchSummary, 0, len(r.rows))
	for _, b := range r.rows {
		d := r.Dependents[b.ID]
		out = append(out, &entity.BranchSummary{Branch: *b, EmployeesCount: d[0], MembersCount: d[1]})
	}
	slices.SortFunc(out, func(a, b *entity.BranchSummary) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

func (r *Branches) CountDependents(_ context.Context, id string) (int, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, 0, r.Err
	}
	d := r.Dependents[id]
	return d[0], d[1], nil
}

func (r *Branches) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

// Services fake de ServiceRepository. Requests fija el número de solicitudes por servicio.
type Services struct {
	mu       sync.Mutex
	rows     map[string]*entity.Service
	Requests map[string]int
	Err      error
}

func NewServices(services ...*entity.Service) *Services {
	r := &Services{rows: map[string]*entity.Service{}, Requests: map[string]int{}}
	for _, s := range services {
		r.rows[s.ID] = s
	}
	return r
}

func (r *Services) Create(_ context.Context, s *entity.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	cp := *s
	r.rows[s.ID] = &cp
	return nil
}

func (r *Services) GetByID(_ context.Context, id string) (*entity.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	if s, ok := r.rows[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (r *Services) Update(_ context.Context, s *entity.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.rows[s.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *s
	r.rows[s.ID] = &cp
	return nil
}

func (r *Services) SetActive(_ context.Context, id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	s, ok := r.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.IsActive = active
	return nil
}

func (r *Services) List(_ context.Context) ([]*entity.ServiceSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]*entity.ServiceSummary, 0, len(r.rows))
	for _, s := range r.rows {
		out = append(out, &entity.ServiceSummary{Service: *s, RequestsCount: r.Requests[s.ID]})
	}
	slices.SortFunc(out, func(a, b *entity.ServiceSummary) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

func (r *Services) CountRequests(_ context.Context, id string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	return r.Requests[id], nil
}

func (r *Services) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

// Exists indica si el servicio sigue guardado.
func (r *Services) Exists(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.rows[id]
	return ok
}

// OTPSessions fake de OTPSessionRepository con IDs secuenciales. NextID fija el próximo ID.
type OTPSessions struct {
	mu     sync.Mutex
	rows   map[int64]*entity.OTPSession
	NextID int64
	Err    error
}

func NewOTPSessions() *OTPSessions {
	return &OTPSessions{rows: map[int64]*entity.OTPSession{}, NextID: 1}
}

func (r *OTPSessions) Create(_ context.Context, s *entity.OTPSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	s.ID = r.NextID
	r.NextID++
	cp := *s
	r.rows[s.ID] = &cp
	return nil
}

func (r *OTPSessions) GetByID(_ context.Context, id int64) (*entity.OTPSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	if s, ok := r.rows[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (r *OTPSessions) IncrementAttempts(_ context.Context, id int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	s, ok := r.rows[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	s.Attempts++
	return s.Attempts, nil
}

func (r *OTPSessions) MarkVerified(_ context.Context, id int64, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	s, ok := r.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.VerifiedAt = &at
	return nil
}

func (r *OTPSessions) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	var n int64
	for id, s := range r.rows {
		if s.Expired(before) {
			delete(r.rows, id)
			n++
		}
	}
	return n, nil
}

// Expire fuerza el vencimiento de una sesión.
func (r *OTPSessions) Expire(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.rows[id]; ok {
		s.ExpiresAt = time.Time{}
	}
}

// Stats fake de StatsRepository con conteos fijos y error opcional por consulta.
type Stats struct {
	Users, Members, Pending, Branches, Services int

	// FailOn nombre de la consulta que falla: users, members, pending, branches, services.
	FailOn string
	Err    error

	mu    sync.Mutex
	calls int
}

func (s *Stats) count(name string, v int) (int, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.FailOn == name {
		return 0, s.Err
	}
	return v, nil
}

func (s *Stats) CountUsers(context.Context) (int, error)   { return s.count("users", s.Users) }
func (s *Stats) CountMembers(context.Context) (int, error) { return s.count("members", s.Members) }
func (s *Stats) CountMembersByStatus(_ context.Context, _ []string) (int, error) {
	return s.count("pending", s.Pending)
}
func (s *Stats) CountActiveBranches(context.Context) (int, error) {
	return s.count("branches", s.Branches)
}
func (s *Stats) CountActiveServices(context.Context) (int, error) {
	return s.count("services", s.Services)
}

// Calls número total de consultas ejecutadas.
func (s *Stats) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// CapturingSender OTPSender que guarda el último código enviado.
type CapturingSender struct {
	mu   sync.Mutex
	Last string
	Err  error
}

func (c *CapturingSender) SendOTP(_ context.Context, _ *entity.User, code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.Last = code
	return nil
}

// Code último código enviado.
func (c *CapturingSender) Code() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Last
}
