// Package validation contém validadores de documentos e códigos brasileiros.
package validation

import "strings"

// IsValidCPF valida um CPF pelo algoritmo oficial de dígitos verificadores
// (módulo 11 em duas passadas). Aceita o documento com ou sem máscara.
func IsValidCPF(cpf string) bool {
	digits := onlyDigits(cpf)
	if len(digits) != 11 {
		return false
	}

	// CPFs com todos os dígitos repetidos passam no módulo 11, mas são inválidos
	if strings.Count(digits, string(digits[0])) == 11 {
		return false
	}

	// Primeiro dígito verificador: pesos 10..2 sobre os 9 primeiros dígitos
	if checkDigit(digits[:9], 10) != int(digits[9]-'0') {
		return false
	}

	// Segundo dígito verificador: pesos 11..2 sobre os 10 primeiros dígitos
	if checkDigit(digits[:10], 11) != int(digits[10]-'0') {
		return false
	}

	return true
}

// checkDigit calcula um dígito verificador com peso inicial informado
func checkDigit(digits string, startWeight int) int {
	sum := 0
	for i := 0; i < len(digits); i++ {
		sum += int(digits[i]-'0') * (startWeight - i)
	}

	remainder := sum % 11
	if remainder < 2 {
		return 0
	}
	return 11 - remainder
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
