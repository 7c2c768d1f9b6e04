package cep

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupOK(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ws/01001000/json/", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"cep": "01001-000",
			"logradouro": "Praça da Sé",
			"complemento": "lado ímpar",
			"bairro": "Sé",
			"localidade": "São Paulo",
			"uf": "SP"
		}`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	// Hífen é aceito e removido antes da consulta
	addr, err := client.Lookup(ctx, "01001-000")
	require.NoError(t, err)

	assert.Equal(t, "Praça da Sé", addr.Street)
	assert.Equal(t, "Sé", addr.Neighborhood)
	assert.Equal(t, "São Paulo", addr.City)
	assert.Equal(t, "SP", addr.State)
	// Número fica em branco para o cliente preencher
	assert.Empty(t, addr.Number)
}

func TestLookupUnknownCEP(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// ViaCEP responde 200 com "erro": true para CEP inexistente
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"erro": true}`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL)

	_, err := client.Lookup(context.Background(), "99999999")
	assert.ErrorIs(t, err, ErrCEPNotFound)
}

func TestLookupRejectsMalformedCEP(t *testing.T) {
	client := NewClient("http://127.0.0.1:1")

	for _, code := range []string{"", "123", "abcdefgh", "01001-00"} {
		_, err := client.Lookup(context.Background(), code)
		assert.ErrorIs(t, err, ErrInvalidCEP, "cep %q", code)
	}
}

func TestLookupServiceDown(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := NewClient(ts.URL)

	_, err := client.Lookup(context.Background(), "01001000")
	assert.ErrorIs(t, err, ErrLookupUnavailable)
}
