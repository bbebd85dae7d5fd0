package booking

// Kind classifies a rejection so handlers can map it onto an HTTP
// status without matching message strings.
type Kind int

const (
	// KindValidation covers missing or malformed input.
	KindValidation Kind = iota + 1
	// KindPolicy covers well-formed requests refused by booking rules
	// (weekend, past date, expired slot, closed slot, conflicts).
	KindPolicy
	// KindNotFound covers references to unknown courts or bookings.
	KindNotFound
	// KindForbidden covers cancellation by a non-owner non-admin.
	KindForbidden
	// KindConflict covers a lost check-then-insert race surfaced by the
	// store's uniqueness constraint.
	KindConflict
)

// Reject is a refused booking operation.  Message is the user-facing
// text; the first failing check in the decision chain determines it.
type Reject struct {
	Kind    Kind
	Message string
}

func (r *Reject) Error() string { return r.Message }

func validation(msg string) *Reject { return &Reject{Kind: KindValidation, Message: msg} }
func policy(msg string) *Reject     { return &Reject{Kind: KindPolicy, Message: msg} }
func notFound(msg string) *Reject   { return &Reject{Kind: KindNotFound, Message: msg} }
func forbidden(msg string) *Reject  { return &Reject{Kind: KindForbidden, Message: msg} }
func conflict(msg string) *Reject   { return &Reject{Kind: KindConflict, Message: msg} }
