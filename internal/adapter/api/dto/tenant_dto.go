package dto

import (
	"time"

	"github.com/lojazap/lojazap-backend/internal/domain/tenant"
)

// TenantRequest representa a requisição de criação de loja
type TenantRequest struct {
	Name  string `json:"name" binding:"required"`
	Slug  string `json:"slug" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone"`
}

// TenantUpdateRequest representa a requisição de atualização cadastral da loja
type TenantUpdateRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone"`
}

// WheelSegmentRequest representa um segmento da roleta na configuração
type WheelSegmentRequest struct {
	ID         string  `json:"id" binding:"required"`
	Emoji      string  `json:"emoji"`
	Label      string  `json:"label" binding:"required"`
	Color      string  `json:"color"`
	Type       string  `json:"type" binding:"required,oneof=win loss"`
	PrizeKind  string  `json:"prize_kind" binding:"omitempty,oneof=gift_card product"`
	PrizeValue float64 `json:"prize_value"`
}

// RiggingRequest representa a regra de direcionamento da roleta
type RiggingRequest struct {
	Active         bool    `json:"active"`
	MinOrderValue  float64 `json:"min_order_value"`
	ForceSegmentID string  `json:"force_segment_id"`
}

// SettingsRequest representa a requisição de configurações da loja
type SettingsRequest struct {
	FinePercent          float64               `json:"fine_percent"`
	DailyInterestPercent float64               `json:"daily_interest_percent"`
	FiadoMaxInstallments int                   `json:"fiado_max_installments"`
	RouletteMinOrder     float64               `json:"roulette_min_order"`
	WheelSegments        []WheelSegmentRequest `json:"wheel_segments" binding:"required,len=8"`
	Rigging              RiggingRequest        `json:"rigging"`
}

// ToSettings converte a requisição para as configurações do domínio
func (r SettingsRequest) ToSettings() tenant.Settings {
	segments := make([]tenant.WheelSegment, len(r.WheelSegments))
	for i, s := range r.WheelSegments {
		segments[i] = tenant.WheelSegment{
			ID:         s.ID,
			Emoji:      s.Emoji,
			Label:      s.Label,
			Color:      s.Color,
			Type:       tenant.SegmentType(s.Type),
			PrizeKind:  tenant.PrizeKind(s.PrizeKind),
			PrizeValue: s.PrizeValue,
		}
	}

	return tenant.Settings{
		FinePercent:          r.FinePercent,
		DailyInterestPercent: r.DailyInterestPercent,
		FiadoMaxInstallments: r.FiadoMaxInstallments,
		RouletteMinOrder:     r.RouletteMinOrder,
		WheelSegments:        segments,
		Rigging: tenant.Rigging{
			Active:         r.Rigging.Active,
			MinOrderValue:  r.Rigging.MinOrderValue,
			ForceSegmentID: r.Rigging.ForceSegmentID,
		},
	}
}

// TenantResponse representa a resposta de loja
type TenantResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Slug      string          `json:"slug"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone"`
	Status    tenant.Status   `json:"status"`
	Settings  tenant.Settings `json:"settings"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TenantListResponse representa a resposta de lista de lojas
type TenantListResponse struct {
	Items []TenantResponse `json:"items"`
	Total int              `json:"total"`
	Page  int              `json:"page"`
	Size  int              `json:"size"`
}

// ToTenantResponse converte uma loja do domínio para DTO
func ToTenantResponse(t *tenant.Tenant) *TenantResponse {
	return &TenantResponse{
		ID:        t.ID,
		Name:      t.Name,
		Slug:      t.Slug,
		Email:     t.Email,
		Phone:     t.Phone,
		Status:    t.Status,
		Settings:  t.Settings,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// ToTenantListResponse converte uma lista de lojas do domínio para DTO
func ToTenantListResponse(tenants []*tenant.Tenant, total, page, size int) *TenantListResponse {
	items := make([]TenantResponse, len(tenants))
	for i, t := range tenants {
		items[i] = *ToTenantResponse(t)
	}

	return &TenantListResponse{
		Items: items,
		Total: total,
		Page:  page,
		Size:  size,
	}
}
