package booking

import (
	"strings"

	"github.com/wlong0711/sporthall/internal/model"
)

const maxParticipants = 6

// validateParticipants enforces the party rules: 1 to 6 people, each
// with a non-blank name and a syntactically plausible email.
func validateParticipants(ps []model.Participant) *Reject {
	if len(ps) == 0 || len(ps) > maxParticipants {
		return validation("Participants must be between 1 and 6 people")
	}
	for _, p := range ps {
		if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.Email) == "" {
			return validation("All participants must have name and email")
		}
		if !validEmail(p.Email) {
			return validation("Participant email is invalid")
		}
	}
	return nil
}

// validEmail checks the minimal shape local@domain with a non-empty
// local part and a dotted domain.  Full RFC validation is deliberately
// out of scope; delivery failures are the mail provider's problem.
func validEmail(s string) bool {
	s = strings.TrimSpace(s)
	at := strings.LastIndex(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}
	local, domain := s[:at], s[at+1:]
	if strings.ContainsAny(local, " \t") || strings.ContainsAny(domain, " \t") {
		return false
	}
	dot := strings.LastIndex(domain, ".")
	return dot > 0 && dot < len(domain)-1
}
