package validation

// IsValidCEP valida o formato de um CEP (8 dígitos, com ou sem hífen).
// Não verifica se o CEP existe; isso é papel da consulta externa.
func IsValidCEP(cep string) bool {
	digits := onlyDigits(cep)
	if len(digits) != 8 {
		return false
	}

	switch len(cep) {
	case 8:
		return cep == digits
	case 9:
		return cep[5] == '-' && cep[:5]+cep[6:] == digits
	default:
		return false
	}
}
