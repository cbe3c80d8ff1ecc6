package gateway

import (
	"strings"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"

	"github.com/cukurin/booking-api/internal/config"
)

// qris is not yet a named snap constant in the SDK.
var snapPaymentTypeQris = snap.SnapPaymentType("qris")

type Midtrans struct {
	snap snap.Client
	core coreapi.Client
}

func NewMidtrans(cfg *config.Config) *Midtrans {
	env := midtrans.Sandbox
	if cfg.MidtransProduction {
		env = midtrans.Production
	}

	g := &Midtrans{}
	g.snap.New(cfg.MidtransServerKey, env)
	g.core.New(cfg.MidtransServerKey, env)
	return g
}

func (g *Midtrans) CreateSnapTransaction(req ChargeRequest) (*ChargeResult, error) {
	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.OrderID,
			GrossAmt: req.GrossAmount,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    req.ItemID,
				Name:  req.ItemName,
				Price: req.GrossAmount,
				Qty:   1,
			},
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.CustomerName,
			Email: req.CustomerEmail,
			Phone: req.CustomerPhone,
		},
	}

	if req.PaymentMethod == MethodQris {
		snapReq.EnabledPayments = []snap.SnapPaymentType{snapPaymentTypeQris}
	} else {
		snapReq.EnabledPayments = []snap.SnapPaymentType{snap.PaymentTypeBankTransfer}
	}

	res, mErr := g.snap.CreateTransaction(snapReq)
	if mErr != nil {
		return nil, mErr
	}

	return &ChargeResult{
		Token:       res.Token,
		RedirectURL: res.RedirectURL,
	}, nil
}

func (g *Midtrans) Charge(req ChargeRequest) (*ChargeResult, error) {
	chargeReq := &coreapi.ChargeReq{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.OrderID,
			GrossAmt: req.GrossAmount,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    req.ItemID,
				Name:  req.ItemName,
				Price: req.GrossAmount,
				Qty:   1,
			},
		},
		CustomerDetails: &midtrans.CustomerDetails{
			FName: req.CustomerName,
			Email: req.CustomerEmail,
			Phone: req.CustomerPhone,
		},
	}

	if req.PaymentMethod == MethodQris {
		chargeReq.PaymentType = coreapi.PaymentTypeQris
	} else {
		chargeReq.PaymentType = coreapi.PaymentTypeBankTransfer
		chargeReq.BankTransfer = &coreapi.BankTransferDetails{
			Bank: midtrans.Bank(strings.ToLower(req.BankName)),
		}
	}

	res, mErr := g.core.ChargeTransaction(chargeReq)
	if mErr != nil {
		return nil, mErr
	}

	result := &ChargeResult{
		Token:       res.TransactionID,
		RedirectURL: res.RedirectURL,
	}

	// QRIS charges carry their checkout link as an action instead.
	if result.RedirectURL == "" {
		for _, action := range res.Actions {
			if action.Name == "generate-qr-code" {
				result.RedirectURL = action.URL
				break
			}
		}
	}

	return result, nil
}

func (g *Midtrans) CheckTransaction(transactionID string) (*TransactionStatus, error) {
	res, mErr := g.core.CheckTransaction(transactionID)
	if mErr != nil {
		return nil, mErr
	}

	return &TransactionStatus{
		TransactionID:     res.TransactionID,
		OrderID:           res.OrderID,
		GrossAmount:       res.GrossAmount,
		PaymentType:       res.PaymentType,
		TransactionTime:   res.TransactionTime,
		TransactionStatus: res.TransactionStatus,
		StatusMessage:     res.StatusMessage,
	}, nil
}
