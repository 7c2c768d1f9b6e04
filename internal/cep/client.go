package cep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/lojazap/lojazap-backend/internal/domain/customer"
	"github.com/lojazap/lojazap-backend/internal/validation"
)

const defaultBaseURL = "https://viacep.com.br"

var (
	// ErrInvalidCEP ocorre quando o CEP não tem o formato esperado
	ErrInvalidCEP = errors.New("CEP inválido")
	// ErrCEPNotFound ocorre quando o CEP não existe na base dos Correios
	ErrCEPNotFound = errors.New("CEP não encontrado")
	// ErrLookupUnavailable ocorre quando o serviço de consulta está fora do ar.
	// A falha é recuperável: o checkout segue com preenchimento manual.
	ErrLookupUnavailable = errors.New("serviço de CEP indisponível")
)

// Client consulta endereços por CEP no ViaCEP
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient cria um cliente de consulta de CEP. baseURL vazia usa o ViaCEP
// público.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// viaCEPResponse é o formato de resposta do ViaCEP. CEP inexistente volta
// 200 com "erro": true.
type viaCEPResponse struct {
	CEP          string `json:"cep"`
	Street       string `json:"logradouro"`
	Complement   string `json:"complemento"`
	Neighborhood string `json:"bairro"`
	City         string `json:"localidade"`
	State        string `json:"uf"`
	Erro         bool   `json:"erro"`
}

// Lookup consulta o endereço de um CEP. Número e complemento continuam por
// conta do cliente.
func (c *Client) Lookup(ctx context.Context, code string) (*customer.Address, error) {
	if !validation.IsValidCEP(code) {
		return nil, ErrInvalidCEP
	}
	digits := strings.ReplaceAll(code, "-", "")

	url := fmt.Sprintf("%s/ws/%s/json/", c.baseURL, digits)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar requisição: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookupUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest {
		return nil, ErrInvalidCEP
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrLookupUnavailable, resp.StatusCode)
	}

	var body viaCEPResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: resposta inválida", ErrLookupUnavailable)
	}
	if body.Erro {
		return nil, ErrCEPNotFound
	}

	return &customer.Address{
		CEP:          body.CEP,
		Street:       body.Street,
		Complement:   body.Complement,
		Neighborhood: body.Neighborhood,
		City:         body.City,
		State:        body.State,
	}, nil
}
