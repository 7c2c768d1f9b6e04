// Package fiado implementa o caderno de fiado: juros e multa por atraso,
// baixa de parcelas (total ou parcial) e o contas a receber do lojista.
package fiado

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/lojazap/lojazap-backend/internal/domain/customer"
	"github.com/lojazap/lojazap-backend/internal/domain/order"
	"github.com/lojazap/lojazap-backend/internal/domain/tenant"
	"github.com/lojazap/lojazap-backend/pkg/keylock"
	"github.com/lojazap/lojazap-backend/pkg/logger"
)

var (
	// ErrInvalidAmount ocorre quando o valor pago é zero ou negativo
	ErrInvalidAmount = errors.New("valor pago deve ser maior que zero")

	// ErrNotFiadoOrder ocorre quando o pedido não foi pago no fiado
	ErrNotFiadoOrder = errors.New("pedido não é de fiado")

	// ErrWrongCustomer ocorre quando o pedido não pertence ao cliente informado
	ErrWrongCustomer = errors.New("pedido não pertence ao cliente informado")
)

// tolerância de centavos em comparações de ponto flutuante
const epsilon = 0.005

// Rates agrupa as taxas de atraso configuradas pelo tenant
type Rates struct {
	FinePercent          float64
	DailyInterestPercent float64
}

// TotalDue calcula o valor devido de uma parcela na data informada.
// Sem atraso devolve o valor original; com atraso aplica multa fixa e juro
// diário simples, ambos sobre o principal da parcela.
func TotalDue(inst order.Installment, today time.Time, rates Rates) float64 {
	daysLate := daysBetween(inst.DueDate, today)
	if daysLate <= 0 {
		return inst.Value
	}

	fine := inst.Value * rates.FinePercent / 100
	interest := inst.Value * (rates.DailyInterestPercent / 100) * float64(daysLate)
	return inst.Value + fine + interest
}

// RemainingDue calcula quanto ainda falta pagar de uma parcela na data
// informada. O valor original da parcela nunca é alterado; o saldo restante
// é sempre derivado do devido menos o já pago.
func RemainingDue(inst order.Installment, today time.Time, rates Rates) float64 {
	remaining := TotalDue(inst, today, rates) - inst.PaidAmount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// daysBetween conta dias completos entre duas datas, normalizadas para meia-noite
func daysBetween(from, to time.Time) int {
	from = midnight(from)
	to = midnight(to)
	return int(to.Sub(from).Hours() / 24)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Ledger é o serviço de fiado. Mutações de parcela são serializadas por
// cliente para evitar baixas concorrentes sobre o mesmo saldo devedor.
type Ledger struct {
	orders    order.Repository
	customers customer.Repository
	tenants   tenant.Repository
	locks     *keylock.KeyedMutex
	logger    logger.Logger
	now       func() time.Time
}

// NewLedger cria um novo serviço de fiado
func NewLedger(orders order.Repository, customers customer.Repository, tenants tenant.Repository, log logger.Logger) *Ledger {
	return &Ledger{
		orders:    orders,
		customers: customers,
		tenants:   tenants,
		locks:     keylock.New(),
		logger:    log,
		now:       time.Now,
	}
}

// WithClock troca a fonte de tempo do serviço (usado em testes)
func (l *Ledger) WithClock(now func() time.Time) *Ledger {
	l.now = now
	return l
}

// PaymentRequest descreve a baixa de uma parcela
type PaymentRequest struct {
	CustomerID    string
	OrderID       string
	InstallmentID string
	Amount        float64
	// NextDueDate é o novo vencimento do restante em pagamento parcial;
	// quando omitido, o padrão é um mês a partir de hoje
	NextDueDate *time.Time
}

// PaymentResult é o resultado da baixa de uma parcela
type PaymentResult struct {
	Installment order.Installment `json:"installment"`
	// Remaining é o saldo restante da parcela após o pagamento
	Remaining float64 `json:"remaining"`
	// CustomerDebt é o débito total do cliente recalculado após o pagamento
	CustomerDebt float64 `json:"customer_debt"`
}

// PayInstallment aplica um pagamento sobre uma parcela do fiado.
// Pagamento igual ou maior que o devido quita a parcela (terminal); pagamento
// menor marca a parcela como parcial e move o vencimento do restante.
func (l *Ledger) PayInstallment(ctx context.Context, tenantID string, req PaymentRequest) (*PaymentResult, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	l.locks.Lock(req.CustomerID)
	defer l.locks.Unlock(req.CustomerID)

	rates, err := l.tenantRates(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	o, err := l.orders.FindByID(ctx, tenantID, req.OrderID)
	if err != nil {
		return nil, err
	}
	if o.PaymentMethod != order.PaymentFiado {
		return nil, ErrNotFiadoOrder
	}
	if o.CustomerID != req.CustomerID {
		return nil, ErrWrongCustomer
	}

	inst, err := o.FindInstallment(req.InstallmentID)
	if err != nil {
		return nil, err
	}
	if !inst.IsOpen() {
		return nil, order.ErrInstallmentPaid
	}

	today := l.now()
	due := RemainingDue(*inst, today, rates)

	if req.Amount >= due-epsilon {
		// Quitação: estado terminal da parcela
		paidAt := today
		inst.PaidAmount += req.Amount
		inst.Status = order.InstallmentPaid
		inst.PaidDate = &paidAt
	} else {
		// Pagamento parcial: o principal não muda, o restante é derivado e
		// volta a correr juros a partir do novo vencimento
		inst.PaidAmount += req.Amount
		inst.Status = order.InstallmentPartial
		if req.NextDueDate != nil {
			inst.DueDate = *req.NextDueDate
		} else {
			inst.DueDate = today.AddDate(0, 1, 0)
		}
	}

	if err := l.orders.Update(ctx, o); err != nil {
		return nil, fmt.Errorf("erro ao atualizar parcelas do pedido: %w", err)
	}

	debt, err := l.debtLocked(ctx, tenantID, req.CustomerID, rates)
	if err != nil {
		return nil, err
	}

	l.logger.Info("pagamento de parcela aplicado",
		"tenant_id", tenantID,
		"order_id", o.ID,
		"installment", inst.Number,
		"amount", req.Amount,
		"status", inst.Status,
	)

	return &PaymentResult{
		Installment:  *inst,
		Remaining:    RemainingDue(*inst, today, rates),
		CustomerDebt: debt,
	}, nil
}

// Debt recalcula o débito total de um cliente: soma do que resta a pagar de
// todas as parcelas em aberto, com juros até hoje. Nunca é cacheado, porque
// o juro corre diariamente.
func (l *Ledger) Debt(ctx context.Context, tenantID, customerID string) (float64, error) {
	rates, err := l.tenantRates(ctx, tenantID)
	if err != nil {
		return 0, err
	}
	return l.debtLocked(ctx, tenantID, customerID, rates)
}

func (l *Ledger) debtLocked(ctx context.Context, tenantID, customerID string, rates Rates) (float64, error) {
	orders, err := l.orders.FindByCustomer(ctx, tenantID, customerID)
	if err != nil {
		return 0, err
	}

	today := l.now()
	debt := 0.0
	for _, o := range orders {
		if o.PaymentMethod != order.PaymentFiado || o.Status == order.StatusCancelled {
			continue
		}
		for _, inst := range o.Installments {
			if inst.IsOpen() {
				debt += RemainingDue(inst, today, rates)
			}
		}
	}
	return debt, nil
}

func (l *Ledger) tenantRates(ctx context.Context, tenantID string) (Rates, error) {
	t, err := l.tenants.FindByID(ctx, tenantID)
	if err != nil {
		return Rates{}, fmt.Errorf("erro ao carregar configurações do tenant: %w", err)
	}
	return Rates{
		FinePercent:          t.Settings.FinePercent,
		DailyInterestPercent: t.Settings.DailyInterestPercent,
	}, nil
}

// Bucket classifica uma parcela em relação a hoje no contas a receber
type Bucket string

const (
	BucketOverdue Bucket = "overdue"
	BucketToday   Bucket = "today"
	BucketWeek    Bucket = "week"
	BucketFuture  Bucket = "future"
)

// Classify determina o bucket de um vencimento em relação à data informada
func Classify(dueDate, today time.Time) Bucket {
	days := daysBetween(today, dueDate)
	switch {
	case days < 0:
		return BucketOverdue
	case days == 0:
		return BucketToday
	case days <= 7:
		return BucketWeek
	default:
		return BucketFuture
	}
}

// Receivable é uma linha do contas a receber do lojista
type Receivable struct {
	OrderID      string            `json:"order_id"`
	CustomerID   string            `json:"customer_id"`
	CustomerName string            `json:"customer_name"`
	Installment  order.Installment `json:"installment"`
	AmountDue    float64           `json:"amount_due"`
	Bucket       Bucket            `json:"bucket"`
}

// Receivables monta o contas a receber do tenant: todas as parcelas em aberto,
// classificadas por bucket e ordenadas por vencimento crescente. O filtro de
// bucket é opcional (vazio retorna tudo).
func (l *Ledger) Receivables(ctx context.Context, tenantID string, bucket Bucket) ([]Receivable, error) {
	rates, err := l.tenantRates(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	orders, err := l.orders.ListWithOpenInstallments(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	today := l.now()
	names := make(map[string]string)
	receivables := make([]Receivable, 0)

	for _, o := range orders {
		if o.Status == order.StatusCancelled {
			continue
		}

		name, ok := names[o.CustomerID]
		if !ok && o.CustomerID != "" {
			c, err := l.customers.FindByID(ctx, tenantID, o.CustomerID)
			if err == nil {
				name = c.Name
			}
			names[o.CustomerID] = name
		}

		for _, inst := range o.Installments {
			if !inst.IsOpen() {
				continue
			}
			b := Classify(inst.DueDate, today)
			if bucket != "" && b != bucket {
				continue
			}
			receivables = append(receivables, Receivable{
				OrderID:      o.ID,
				CustomerID:   o.CustomerID,
				CustomerName: name,
				Installment:  inst,
				AmountDue:    RemainingDue(inst, today, rates),
				Bucket:       b,
			})
		}
	}

	sort.Slice(receivables, func(i, j int) bool {
		return receivables[i].Installment.DueDate.Before(receivables[j].Installment.DueDate)
	})

	return receivables, nil
}
