package cryptox

import "unicode"

// Password policy violation messages. These are user-facing and stable, so
// clients can match on them if they want to.
const (
	ViolationEmpty       = "password must not be empty"
	ViolationTooShort    = "password must be at least 6 characters"
	ViolationNoUppercase = "password must contain at least 1 uppercase letter"
	ViolationNoLowercase = "password must contain at least 1 lowercase letter"
)

// MinPasswordLength is the structural minimum accepted at registration.
const MinPasswordLength = 6

// passwordRule checks one structural property of a candidate password and
// returns a violation message, or "" if the rule is satisfied.
type passwordRule func(candidate string) string

// passwordRules are all evaluated independently. There is deliberately no
// short-circuit: a UI should be able to show every violation at once.
var passwordRules = []passwordRule{
	func(c string) string {
		if c == "" {
			return ViolationEmpty
		}
		return ""
	},
	func(c string) string {
		if len([]rune(c)) < MinPasswordLength {
			return ViolationTooShort
		}
		return ""
	},
	func(c string) string {
		for _, r := range c {
			if unicode.IsUpper(r) {
				return ""
			}
		}
		return ViolationNoUppercase
	},
	func(c string) string {
		for _, r := range c {
			if unicode.IsLower(r) {
				return ""
			}
		}
		return ViolationNoLowercase
	},
}

// ValidatePassword evaluates every policy rule against the candidate and
// returns the full list of violations. An empty slice means the password is
// acceptable. This runs at registration time only; login verifies against
// the stored hash and never re-applies the policy.
func ValidatePassword(candidate string) []string {
	var violations []string
	for _, rule := range passwordRules {
		if msg := rule(candidate); msg != "" {
			violations = append(violations, msg)
		}
	}
	return violations
}
