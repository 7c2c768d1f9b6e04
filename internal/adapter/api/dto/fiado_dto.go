package dto

import (
	"time"

	"github.com/lojazap/lojazap-backend/internal/fiado"
)

// FiadoPaymentRequest representa a requisição de baixa de parcela
type FiadoPaymentRequest struct {
	CustomerID    string     `json:"customer_id" binding:"required"`
	OrderID       string     `json:"order_id" binding:"required"`
	InstallmentID string     `json:"installment_id" binding:"required"`
	Amount        float64    `json:"amount" binding:"required,gt=0"`
	NextDueDate   *time.Time `json:"next_due_date"`
}

// ToPaymentRequest converte a requisição para o domínio do fiado
func (r FiadoPaymentRequest) ToPaymentRequest() fiado.PaymentRequest {
	return fiado.PaymentRequest{
		CustomerID:    r.CustomerID,
		OrderID:       r.OrderID,
		InstallmentID: r.InstallmentID,
		Amount:        r.Amount,
		NextDueDate:   r.NextDueDate,
	}
}

// FiadoPaymentResponse representa o resultado da baixa de uma parcela
type FiadoPaymentResponse struct {
	Installment  InstallmentResponse `json:"installment"`
	Remaining    float64             `json:"remaining"`
	CustomerDebt float64             `json:"customer_debt"`
}

// ToFiadoPaymentResponse converte o resultado do domínio para DTO
func ToFiadoPaymentResponse(r *fiado.PaymentResult) *FiadoPaymentResponse {
	return &FiadoPaymentResponse{
		Installment:  ToInstallmentResponse(r.Installment),
		Remaining:    r.Remaining,
		CustomerDebt: r.CustomerDebt,
	}
}

// ReceivableResponse representa uma linha do contas a receber
type ReceivableResponse struct {
	OrderID      string              `json:"order_id"`
	CustomerID   string              `json:"customer_id"`
	CustomerName string              `json:"customer_name"`
	Installment  InstallmentResponse `json:"installment"`
	AmountDue    float64             `json:"amount_due"`
	Bucket       fiado.Bucket        `json:"bucket"`
}

// ReceivableListResponse representa o contas a receber com o total devido
type ReceivableListResponse struct {
	Items    []ReceivableResponse `json:"items"`
	TotalDue float64              `json:"total_due"`
}

// ToReceivableListResponse converte o contas a receber do domínio para DTO
func ToReceivableListResponse(receivables []fiado.Receivable) *ReceivableListResponse {
	items := make([]ReceivableResponse, len(receivables))
	totalDue := 0.0
	for i, r := range receivables {
		items[i] = ReceivableResponse{
			OrderID:      r.OrderID,
			CustomerID:   r.CustomerID,
			CustomerName: r.CustomerName,
			Installment:  ToInstallmentResponse(r.Installment),
			AmountDue:    r.AmountDue,
			Bucket:       r.Bucket,
		}
		totalDue += r.AmountDue
	}

	return &ReceivableListResponse{
		Items:    items,
		TotalDue: totalDue,
	}
}
