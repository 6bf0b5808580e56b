package validation

// ValidCPF checks the 11-digit Brazilian citizen ID, including both check
// digits. All-same-digit sequences are rejected as the registry does.
func ValidCPF(cpf string) bool {
	if len(cpf) != 11 {
		return false
	}

	allSame := true
	for i := 0; i < 11; i++ {
		if cpf[i] < '0' || cpf[i] > '9' {
			return false
		}
		if cpf[i] != cpf[0] {
			allSame = false
		}
	}
	if allSame {
		return false
	}

	digit := func(i int) int { return int(cpf[i] - '0') }

	sum := 0
	for i := 0; i < 9; i++ {
		sum += digit(i) * (10 - i)
	}
	check := (sum * 10) % 11 % 10
	if check != digit(9) {
		return false
	}

	sum = 0
	for i := 0; i < 10; i++ {
		sum += digit(i) * (11 - i)
	}
	check = (sum * 10) % 11 % 10
	return check == digit(10)
}
