package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Invex-api/internal/application/dto"
	"github.com/jhoicas/Invex-api/internal/domain"
	"github.com/jhoicas/Invex-api/internal/domain/entity"
	"github.com/jhoicas/Invex-api/internal/domain/repository"
)

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Create crea una empresa; el ID generado es su identificador de contrato.
// El tipo "exporter" se guarda como supplier.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	companyType := entity.NormalizeCompanyType(in.Type)
	if companyType == "" {
		return nil, domain.Validation("type must be supplier or importer")
	}
	name := strings.TrimSpace(in.Name)
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Conflict("company %s already exists", name)
	}
	c := &entity.Company{
		ID:          uuid.New().String(),
		Name:        name,
		Governorate: strings.TrimSpace(in.Governorate),
		City:        strings.TrimSpace(in.City),
		Street:      strings.TrimSpace(in.Street),
		Phone:       strings.TrimSpace(in.Phone),
		Email:       strings.ToLower(strings.TrimSpace(in.Email)),
		Type:        companyType,
		CreatedAt:   time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return ToCompanyResponse(c), nil
}

// List lista empresas; companyType vacío devuelve todas.
func (uc *CompanyUseCase) List(ctx context.Context, companyType string) ([]dto.CompanyResponse, error) {
	filter := ""
	if companyType != "" {
		filter = entity.NormalizeCompanyType(companyType)
		if filter == "" {
			return nil, domain.Validation("unknown company type %q", companyType)
		}
	}
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *ToCompanyResponse(c))
	}
	return out, nil
}

// ToCompanyResponse convierte la entidad al DTO de salida.
func ToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ContractID:  c.ID,
		Name:        c.Name,
		Governorate: c.Governorate,
		City:        c.City,
		Street:      c.Street,
		Phone:       c.Phone,
		Email:       c.Email,
		Type:        c.Type,
		CreatedAt:   c.CreatedAt,
	}
}
