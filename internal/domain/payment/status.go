package payment

import "strings"

// ===============================
// Gateway transaction status
// ===============================

// Status is the payment state as reported by the gateway or set by a manual
// override. The gateway owns the vocabulary; unknown strings are carried
// through as-is instead of being rejected or silently normalized away.
type Status string

const (
	StatusPending    Status = "pending"
	StatusSettlement Status = "settlement"
	StatusCapture    Status = "capture"
	StatusDeny       Status = "deny"
	StatusCancel     Status = "cancel"
	StatusExpire     Status = "expire"
	StatusFailure    Status = "failure"
	StatusRefund     Status = "refund"
)

var known = map[Status]struct{}{
	StatusPending:    {},
	StatusSettlement: {},
	StatusCapture:    {},
	StatusDeny:       {},
	StatusCancel:     {},
	StatusExpire:     {},
	StatusFailure:    {},
	StatusRefund:     {},
}

// Normalize lowercases recognized states and reports whether the value is
// one of the known gateway states. Unrecognized values pass through
// untouched so a new gateway state never breaks persistence.
func Normalize(raw string) (Status, bool) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := known[s]; ok {
		return s, true
	}
	return Status(strings.TrimSpace(raw)), false
}

// Settled reports whether the gateway considers the transaction paid.
func Settled(s Status) bool {
	return s == StatusSettlement
}
