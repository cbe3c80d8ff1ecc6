package payment

import (
	"context"
	"fmt"

	domain "github.com/cukurin/booking-api/internal/domain/payment"
	"github.com/cukurin/booking-api/internal/gateway"
	"github.com/cukurin/booking-api/internal/httperr"
)

type StatusResult struct {
	Receipt *gateway.TransactionStatus
	Status  domain.Status
	Settled bool
}

// CheckStatus asks the gateway for the live state of a transaction. It is a
// read-only probe: the persisted payment row is deliberately not refreshed
// here, so the stored status only moves via the manual update endpoint.
type CheckStatus struct {
	gw gateway.Gateway
}

func NewCheckStatus(gw gateway.Gateway) *CheckStatus {
	return &CheckStatus{gw: gw}
}

func (uc *CheckStatus) Execute(
	ctx context.Context,
	transactionID string,
) (*StatusResult, error) {

	if transactionID == "" {
		return nil, httperr.ErrBusiness("transaction_id_required")
	}

	receipt, err := uc.gw.CheckTransaction(transactionID)
	if err != nil {
		return nil, fmt.Errorf("gateway status lookup failed: %w", err)
	}

	status, _ := domain.Normalize(receipt.TransactionStatus)

	return &StatusResult{
		Receipt: receipt,
		Status:  status,
		Settled: domain.Settled(status),
	}, nil
}
