package order

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyCart            = errors.New("pedido precisa de pelo menos um item")
	ErrNegativeTotal        = errors.New("total do pedido não pode ser negativo")
	ErrInvalidTransition    = errors.New("transição de status inválida")
	ErrOrderNotFound        = errors.New("pedido não encontrado")
	ErrInstallmentNotFound  = errors.New("parcela não encontrada")
	ErrInstallmentPaid      = errors.New("parcela já está quitada")
	ErrInvalidInstallments  = errors.New("número de parcelas inválido")
)

// Status representa o estado do pedido
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// ShippingMethod representa a forma de entrega escolhida no checkout
type ShippingMethod string

const (
	ShippingPickup  ShippingMethod = "pickup"
	ShippingMotoboy ShippingMethod = "motoboy"
	ShippingCarrier ShippingMethod = "carrier"
)

// PaymentMethod representa a forma de pagamento do pedido
type PaymentMethod string

const (
	PaymentCredit   PaymentMethod = "credit"
	PaymentDebit    PaymentMethod = "debit"
	PaymentCash     PaymentMethod = "cash"
	PaymentPix      PaymentMethod = "pix"
	PaymentFiado    PaymentMethod = "fiado"
	PaymentWhatsApp PaymentMethod = "whatsapp"
	PaymentOnPickup PaymentMethod = "on_pickup"
)

// InstallmentStatus representa o estado de uma parcela de fiado
type InstallmentStatus string

const (
	InstallmentPending InstallmentStatus = "pending"
	InstallmentPartial InstallmentStatus = "partial"
	InstallmentPaid    InstallmentStatus = "paid"
)

// CartItem é o retrato de um produto dentro do carrinho ou do pedido.
// Itens de prêmio sempre têm preço zero.
type CartItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	CostPrice float64 `json:"cost_price"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size,omitempty"`
	IsPrize   bool    `json:"is_prize"`
}

// Installment representa uma parcela de um pedido no fiado.
// Value é a fração original do principal e nunca é alterado; o que resta a
// pagar de uma parcela parcial é sempre derivado (totalDue - PaidAmount).
type Installment struct {
	ID                string            `json:"id"`
	Number            int               `json:"number"`
	TotalInstallments int               `json:"total_installments"`
	Value             float64           `json:"value"`
	DueDate           time.Time         `json:"due_date"`
	Status            InstallmentStatus `json:"status"`
	PaidAmount        float64           `json:"paid_amount"`
	PaidDate          *time.Time        `json:"paid_date,omitempty"`
}

// IsOpen informa se a parcela ainda tem saldo devedor
func (i *Installment) IsOpen() bool {
	return i.Status == InstallmentPending || i.Status == InstallmentPartial
}

// Shipping representa a entrega do pedido
type Shipping struct {
	Method ShippingMethod `json:"method"`
	Cost   float64        `json:"cost"`
}

// WonPrize é o resultado da roleta anexado ao pedido
type WonPrize struct {
	SegmentID string `json:"segment_id"`
	Label     string `json:"label"`
	Emoji     string `json:"emoji"`
	IsWin     bool   `json:"is_win"`
}

// Order representa um pedido finalizado de uma loja.
// Invariante: Total = soma(item.Price*Quantity) - DiscountUsed, sempre >= 0.
type Order struct {
	ID           string        `json:"id"`
	TenantID     string        `json:"tenant_id"`
	CustomerID   string        `json:"customer_id,omitempty"` // Vazio em compra de visitante
	Items        []CartItem    `json:"items"`
	Total        float64       `json:"total"`
	TotalCost    float64       `json:"total_cost"`
	DiscountUsed float64       `json:"discount_used"`
	Shipping     Shipping      `json:"shipping"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Status       Status        `json:"status"`
	Notes        string        `json:"notes,omitempty"`
	WonPrize     *WonPrize     `json:"won_prize,omitempty"`
	Installments []Installment `json:"installments,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// NewOrder cria um novo pedido com status pendente
func NewOrder(tenantID, customerID string, items []CartItem, total, totalCost, discountUsed float64, shipping Shipping, payment PaymentMethod, notes string) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	if total < 0 {
		return nil, ErrNegativeTotal
	}

	now := time.Now()
	return &Order{
		ID:            uuid.New().String(),
		TenantID:      tenantID,
		CustomerID:    customerID,
		Items:         items,
		Total:         total,
		TotalCost:     totalCost,
		DiscountUsed:  discountUsed,
		Shipping:      shipping,
		PaymentMethod: payment,
		Status:        StatusPending,
		Notes:         notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// transitions descreve o avanço permitido de status: sempre para frente,
// ou para cancelado; pedido cancelado não ressuscita.
var transitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCompleted, StatusCancelled},
	StatusProcessing: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// ChangeStatus move o pedido para o novo status, se a transição for permitida
func (o *Order) ChangeStatus(next Status) error {
	for _, allowed := range transitions[o.Status] {
		if allowed == next {
			o.Status = next
			o.UpdatedAt = time.Now()
			return nil
		}
	}
	return ErrInvalidTransition
}

// AttachPrize anexa o resultado da roleta ao pedido
func (o *Order) AttachPrize(p WonPrize) {
	o.WonPrize = &p
	o.UpdatedAt = time.Now()
}

// FindInstallment localiza uma parcela do pedido pelo ID
func (o *Order) FindInstallment(installmentID string) (*Installment, error) {
	for i := range o.Installments {
		if o.Installments[i].ID == installmentID {
			return &o.Installments[i], nil
		}
	}
	return nil, ErrInstallmentNotFound
}

// BuildInstallments gera o plano de parcelas do fiado: divisão igual do total
// financiado, com vencimentos mensais sequenciais a partir de um mês adiante.
// A divisão é feita em centavos para que a soma feche exatamente no total.
func BuildInstallments(total float64, count int, start time.Time) ([]Installment, error) {
	if count < 1 {
		return nil, ErrInvalidInstallments
	}
	if total < 0 {
		return nil, ErrNegativeTotal
	}

	totalCents := int64(math.Round(total * 100))
	baseCents := totalCents / int64(count)
	remainderCents := totalCents - baseCents*int64(count)

	installments := make([]Installment, count)
	for i := 0; i < count; i++ {
		cents := baseCents
		if i == count-1 {
			// O resto da divisão fica na última parcela
			cents += remainderCents
		}
		installments[i] = Installment{
			ID:                uuid.New().String(),
			Number:            i + 1,
			TotalInstallments: count,
			Value:             float64(cents) / 100,
			DueDate:           start.AddDate(0, i+1, 0),
			Status:            InstallmentPending,
		}
	}
	return installments, nil
}
