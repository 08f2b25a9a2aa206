package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/jhoicas/portal-beneficiarios/internal/application/dto"
	"github.com/jhoicas/portal-beneficiarios/internal/application/usecase"
	"github.com/jhoicas/portal-beneficiarios/internal/domain"
	"github.com/jhoicas/portal-beneficiarios/internal/domain/entity"
	"github.com/jhoicas/portal-beneficiarios/internal/domain/repository"
	"github.com/jhoicas/portal-beneficiarios/internal/testutil"
)

func TestServiceUseCase_DeleteConSolicitudes(t *testing.T) {
	repo := testutil.NewServices(&entity.Service{ID: "svc-1", Name: "إعانة", IsActive: true})
	repo.Requests["svc-1"] = 3
	uc := usecase.NewServiceUseCase(repo)
	ctx := context.Background()

	n, err := uc.CheckHasRequests(ctx, "svc-1")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	err = uc.Delete(ctx, "svc-1")
	require.ErrorIs(t, err, domain.ErrHasRequests)
	var dep *domain.DependentsError
	require.True(t, errors.As(err, &dep))
	assert.Equal(t, 3, dep.Requests)
	assert.True(t, repo.Exists("svc-1"), "no se borra nada")

	repo.Requests["svc-1"] = 0
	require.NoError(t, uc.Delete(ctx, "svc-1"))
	assert.False(t, repo.Exists("svc-1"))

	assert.ErrorIs(t, uc.Delete(ctx, "svc-1"), domain.ErrNotFound)
}

func TestServiceUseCase_CreateUpdateToggle(t *testing.T) {
	repo := testutil.NewServices()
	uc := usecase.NewServiceUseCase(repo)
	ctx := context.Background()

	amount := decimal.RequireFromString("1500.50")
	created, err := uc.Create(ctx, "admin-1", dto.ServiceData{
		Name:              " دعم تعليمي ",
		MaxAmount:         &amount,
		RequiredDocuments: []dto.RequiredDocumentDTO{{Name: "هوية", IsRequired: true}},
	})
	require.NoError(t, err)
	assert.Equal(t, "دعم تعليمي", created.Name)
	assert.True(t, created.IsActive)
	assert.Equal(t, "admin-1", created.CreatedBy)
	require.Len(t, created.RequiredDocuments, 1)

	neg := decimal.NewFromInt(-1)
	_, err = uc.Create(ctx, "admin-1", dto.ServiceData{Name: "x", MaxAmount: &neg})
	var fe *domain.FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "max_amount", fe.Field)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Create(ctx, "admin-1", dto.ServiceData{})
	assert.ErrorIs(t, err, domain.ErrValidation)

	updated, err := uc.Update(ctx, created.ID, dto.ServiceData{Name: "دعم تعليمي ٢", IsOneTimeOnly: true})
	require.NoError(t, err)
	assert.True(t, updated.IsOneTimeOnly)
	assert.Nil(t, updated.MaxAmount)

	toggled, err := uc.ToggleStatus(ctx, created.ID, false)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 0, list[0].RequestsCount)

	_, err = uc.ToggleStatus(ctx, "no-existe", true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBranchUseCase_DeleteConDependientes(t *testing.T) {
	repo := testutil.NewBranches(&entity.Branch{ID: "br-1", Name: "الرياض", City: "الرياض", IsActive: true})
	repo.Dependents["br-1"] = [2]int{2, 5}
	uc := usecase.NewBranchUseCase(repo, testutil.NewUsers())
	ctx := context.Background()

	err := uc.Delete(ctx, "br-1")
	require.ErrorIs(t, err, domain.ErrHasDependents)
	var dep *domain.DependentsError
	require.True(t, errors.As(err, &dep))
	assert.Equal(t, 2, dep.Employees)
	assert.Equal(t, 5, dep.Members)

	repo.Dependents["br-1"] = [2]int{0, 0}
	assert.NoError(t, uc.Delete(ctx, "br-1"))
}

func TestBranchUseCase_ValidaGerente(t *testing.T) {
	users := testutil.NewUsers(
		&entity.User{ID: "mgr", Role: entity.RoleBranchManager},
		&entity.User{ID: "ben", Role: entity.RoleBeneficiary},
	)
	uc := usecase.NewBranchUseCase(testutil.NewBranches(), users)
	ctx := context.Background()

	b, err := uc.Create(ctx, dto.BranchData{Name: "جدة", City: "جدة", ManagerID: "mgr"})
	require.NoError(t, err)
	assert.Equal(t, "mgr", b.ManagerID)

	_, err = uc.Create(ctx, dto.BranchData{Name: "جدة", City: "جدة", ManagerID: "ben"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Create(ctx, dto.BranchData{Name: "جدة"})
	assert.ErrorIs(t, err, domain.ErrValidation, "la ciudad es obligatoria")

	off, err := uc.ToggleStatus(ctx, b.ID, false)
	require.NoError(t, err)
	assert.False(t, off.IsActive)
}

func TestUserUseCase(t *testing.T) {
	repo := testutil.NewUsers(&entity.User{ID: "admin-1", FullName: "مدير", Email: "admin@portal.sa", Role: entity.RoleAdmin, IsActive: true})
	uc := usecase.NewUserUseCase(repo)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.UserData{FullName: "مدير ٢", Email: "admin2@portal.sa", Role: entity.RoleAdmin})
	assert.ErrorIs(t, err, domain.ErrValidation, "admin sin contraseña")

	emp, err := uc.Create(ctx, dto.UserData{FullName: "موظف", Email: "Emp@Portal.sa", NationalID: "1234567890", Role: entity.RoleEmployee, BranchID: "br-1"})
	require.NoError(t, err)
	assert.Equal(t, "emp@portal.sa", emp.Email)
	assert.True(t, emp.IsActive)

	_, err = uc.Create(ctx, dto.UserData{FullName: "آخر", Email: "emp@portal.sa", Role: entity.RoleEmployee})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.Create(ctx, dto.UserData{FullName: "x", Email: "x@portal.sa", Role: "root"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	list, err := uc.List(ctx, repository.UserFilter{Role: entity.RoleEmployee})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, emp.ID, list[0].ID)

	_, err = uc.ToggleStatus(ctx, "admin-1", "admin-1", false)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.ErrorIs(t, uc.Delete(ctx, "admin-1", "admin-1"), domain.ErrConflict)

	off, err := uc.ToggleStatus(ctx, "admin-1", emp.ID, false)
	require.NoError(t, err)
	assert.False(t, off.IsActive)

	require.NoError(t, uc.Delete(ctx, "admin-1", emp.ID))
	assert.ErrorIs(t, uc.Delete(ctx, "admin-1", emp.ID), domain.ErrUserNotFound)
}

func TestProfileUseCase(t *testing.T) {
	birth := time.Date(1990, time.January, 10, 0, 0, 0, 0, time.UTC)
	members := testutil.NewMembers(&entity.Member{
		ID: "m-1", UserID: "ben-1", FullName: "سارة", NationalID: "1098765432",
		BirthDate: &birth, RegistrationStatus: entity.RegistrationApproved,
		EmploymentStatus: "employed", JobTitle: "معلمة", Employer: "وزارة التعليم",
	})
	uc := usecase.NewProfileUseCase(members)
	ctx := context.Background()

	p, err := uc.Get(ctx, "ben-1", language.Arabic)
	require.NoError(t, err)
	require.NotNil(t, p.Age)
	assert.GreaterOrEqual(t, *p.Age, 36)
	assert.Equal(t, "1990-01-10", p.Personal.BirthDate)
	assert.Contains(t, p.BirthDateLabel, "يناير")

	_, err = uc.Get(ctx, "nadie", language.Arabic)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.UpdatePersonal(ctx, "ben-1", dto.PersonalSection{FullName: "سارة", Gender: "otro"}, language.Arabic)
	var fe *domain.FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "gender", fe.Field)

	income := decimal.NewFromInt(3000)
	p, err = uc.UpdateProfessional(ctx, "ben-1", dto.ProfessionalSection{EmploymentStatus: "unemployed", JobTitle: "x", Employer: "y", MonthlyIncome: &income}, language.English)
	require.NoError(t, err)
	assert.Empty(t, p.Professional.JobTitle)
	assert.Empty(t, p.Professional.Employer)
	assert.True(t, income.Equal(*p.Professional.MonthlyIncome))

	_, err = uc.UpdateAddress(ctx, "ben-1", dto.AddressSection{PostalCode: "123"}, language.English)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.UpdateContact(ctx, "ben-1", dto.ContactSection{Phone: "abc"}, language.English)
	assert.ErrorIs(t, err, domain.ErrValidation)

	p, err = uc.UpdateContact(ctx, "ben-1", dto.ContactSection{Phone: "0551234567", Email: "Sara@Mail.com"}, language.English)
	require.NoError(t, err)
	assert.Equal(t, "sara@mail.com", p.Contact.Email)
	assert.Contains(t, p.UpdatedAtLabel, "today")
}
