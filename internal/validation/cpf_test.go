package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidCPF(t *testing.T) {
	tests := []struct {
		name  string
		cpf   string
		valid bool
	}{
		{name: "cpf válido com máscara", cpf: "529.982.247-25", valid: true},
		{name: "cpf válido sem máscara", cpf: "52998224725", valid: true},
		{name: "dígitos repetidos", cpf: "111.111.111-11", valid: false},
		{name: "um dígito alterado", cpf: "529.982.247-24", valid: false},
		{name: "primeiro verificador alterado", cpf: "529.982.247-15", valid: false},
		{name: "curto demais", cpf: "5299822472", valid: false},
		{name: "vazio", cpf: "", valid: false},
		{name: "letras", cpf: "529.982.24a-25", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidCPF(tt.cpf))
		})
	}
}

func TestIsValidCEP(t *testing.T) {
	tests := []struct {
		name  string
		cep   string
		valid bool
	}{
		{name: "cep com hífen", cep: "01001-000", valid: true},
		{name: "cep sem hífen", cep: "01001000", valid: true},
		{name: "curto", cep: "0100100", valid: false},
		{name: "hífen fora do lugar", cep: "0100-1000", valid: false},
		{name: "letras", cep: "01001-00a", valid: false},
		{name: "vazio", cep: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidCEP(tt.cep))
		})
	}
}
