package tenant

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName      = errors.New("nome não pode ser vazio")
	ErrEmptySlug      = errors.New("slug não pode ser vazio")
	ErrInvalidPercent = errors.New("percentual não pode ser negativo")
	ErrInvalidWheel   = errors.New("a roleta precisa de exatamente 8 segmentos")
	ErrTenantInactive = errors.New("tenant não está ativo")
)

// WheelSegmentCount é o número fixo de segmentos da roleta
const WheelSegmentCount = 8

// Status representa o estado do tenant
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusBlocked  Status = "blocked"
)

// SegmentType define se um segmento da roleta premia ou não
type SegmentType string

const (
	SegmentWin  SegmentType = "win"
	SegmentLoss SegmentType = "loss"
)

// PrizeKind define como um prêmio é entregue ao cliente
type PrizeKind string

const (
	// PrizeKindGiftCard credita o valor no saldo do cliente imediatamente
	PrizeKindGiftCard PrizeKind = "gift_card"
	// PrizeKindProduct entra na fila de prêmios físicos não retirados
	PrizeKindProduct PrizeKind = "product"
)

// WheelSegment representa um segmento da roleta de prêmios
type WheelSegment struct {
	ID        string      `json:"id"`
	Emoji     string      `json:"emoji"`
	Label     string      `json:"label"`
	Color     string      `json:"color"`
	Type      SegmentType `json:"type"`
	PrizeKind PrizeKind   `json:"prize_kind,omitempty"`
	// PrizeValue é o valor creditado quando PrizeKind = gift_card
	PrizeValue float64 `json:"prize_value,omitempty"`
}

// Rigging é a regra de direcionamento da roleta: acima de um valor mínimo
// de pedido, o segmento indicado é escolhido sem sorteio.
type Rigging struct {
	Active         bool    `json:"active"`
	MinOrderValue  float64 `json:"min_order_value"`
	ForceSegmentID string  `json:"force_segment_id"`
}

// Settings agrupa as configurações por tenant usadas pelo checkout e pelo fiado
type Settings struct {
	// FinePercent é a multa fixa aplicada sobre parcelas atrasadas (%)
	FinePercent float64 `json:"fine_percent"`
	// DailyInterestPercent é o juro diário sobre parcelas atrasadas (%)
	DailyInterestPercent float64 `json:"daily_interest_percent"`
	// FiadoMaxInstallments é o número de parcelas geradas em compras no fiado
	FiadoMaxInstallments int `json:"fiado_max_installments"`
	// RouletteMinOrder é o valor mínimo de pedido para girar a roleta
	RouletteMinOrder float64        `json:"roulette_min_order"`
	WheelSegments    []WheelSegment `json:"wheel_segments"`
	Rigging          Rigging        `json:"rigging"`
}

// Tenant representa uma loja no sistema multi-tenant
type Tenant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"` // Chave de roteamento da loja
	Email     string    `json:"email"`
	Phone     string    `json:"phone"` // WhatsApp da loja, destino das notificações
	Status    Status    `json:"status"`
	Settings  Settings  `json:"settings"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultWheelSegments retorna a configuração inicial da roleta de uma loja nova
func DefaultWheelSegments() []WheelSegment {
	return []WheelSegment{
		{ID: "1", Emoji: "🎁", Label: "Brinde surpresa", Color: "#f94144", Type: SegmentWin, PrizeKind: PrizeKindProduct},
		{ID: "2", Emoji: "😢", Label: "Não foi dessa vez", Color: "#f3722c", Type: SegmentLoss},
		{ID: "3", Emoji: "💰", Label: "R$10 de crédito", Color: "#f8961e", Type: SegmentWin, PrizeKind: PrizeKindGiftCard, PrizeValue: 10},
		{ID: "4", Emoji: "😢", Label: "Não foi dessa vez", Color: "#f9c74f", Type: SegmentLoss},
		{ID: "5", Emoji: "🧦", Label: "Par de meias", Color: "#90be6d", Type: SegmentWin, PrizeKind: PrizeKindProduct},
		{ID: "6", Emoji: "😢", Label: "Não foi dessa vez", Color: "#43aa8b", Type: SegmentLoss},
		{ID: "7", Emoji: "💸", Label: "R$5 de crédito", Color: "#4d908e", Type: SegmentWin, PrizeKind: PrizeKindGiftCard, PrizeValue: 5},
		{ID: "8", Emoji: "😢", Label: "Não foi dessa vez", Color: "#577590", Type: SegmentLoss},
	}
}

// DefaultSettings retorna as configurações padrão de uma loja nova
func DefaultSettings() Settings {
	return Settings{
		FinePercent:          2,
		DailyInterestPercent: 0.033,
		FiadoMaxInstallments: 3,
		RouletteMinOrder:     0,
		WheelSegments:        DefaultWheelSegments(),
		Rigging:              Rigging{},
	}
}

// NewTenant cria um novo tenant com as configurações padrão
func NewTenant(name, slug, email, phone string) (*Tenant, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return nil, ErrEmptySlug
	}

	now := time.Now()
	return &Tenant{
		ID:        uuid.New().String(),
		Name:      name,
		Slug:      slug,
		Email:     email,
		Phone:     phone,
		Status:    StatusActive,
		Settings:  DefaultSettings(),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// IsActive verifica se o tenant está ativo
func (t *Tenant) IsActive() bool {
	return t.Status == StatusActive
}

// Activate ativa o tenant
func (t *Tenant) Activate() {
	t.Status = StatusActive
	t.UpdatedAt = time.Now()
}

// Deactivate desativa o tenant
func (t *Tenant) Deactivate() {
	t.Status = StatusInactive
	t.UpdatedAt = time.Now()
}

// Block bloqueia o tenant
func (t *Tenant) Block() {
	t.Status = StatusBlocked
	t.UpdatedAt = time.Now()
}

// UpdateSettings substitui as configurações do tenant após validação
func (t *Tenant) UpdateSettings(s Settings) error {
	if s.FinePercent < 0 || s.DailyInterestPercent < 0 {
		return ErrInvalidPercent
	}
	if s.FiadoMaxInstallments < 1 {
		s.FiadoMaxInstallments = 1
	}
	if len(s.WheelSegments) != WheelSegmentCount {
		return ErrInvalidWheel
	}

	t.Settings = s
	t.UpdatedAt = time.Now()
	return nil
}

// Update atualiza os dados cadastrais do tenant
func (t *Tenant) Update(name, email, phone string) error {
	if name == "" {
		return ErrEmptyName
	}

	t.Name = name
	t.Email = email
	t.Phone = phone
	t.UpdatedAt = time.Now()
	return nil
}
