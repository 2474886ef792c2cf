package admin

const (
	DefaultPassword   = "admin123"
	MinPasswordLength = 6
)

type Strength int

const (
	StrengthVeryWeak Strength = iota + 1
	StrengthWeak
	StrengthMedium
	StrengthStrong
	StrengthVeryStrong
)

func (s Strength) String() string {
	switch s {
	case StrengthWeak:
		return "Weak"
	case StrengthMedium:
		return "Medium"
	case StrengthStrong:
		return "Strong"
	case StrengthVeryStrong:
		return "Very Strong"
	default:
		return "Very Weak"
	}
}

// PasswordScore gives one point each for length >= 8, an upper case letter,
// a lower case letter, a digit and any other character.
func PasswordScore(password string) int {
	var upper, lower, digit, other bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			other = true
		}
	}

	score := 0
	if len([]rune(password)) >= 8 {
		score++
	}
	for _, ok := range []bool{upper, lower, digit, other} {
		if ok {
			score++
		}
	}
	return score
}

func PasswordStrength(password string) Strength {
	score := PasswordScore(password)
	if score <= 1 {
		return StrengthVeryWeak
	}
	return Strength(score)
}
