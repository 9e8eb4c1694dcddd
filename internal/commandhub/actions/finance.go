package actions

import (
	"context"
	"net/http"
	"strings"

	"github.com/autopeer-io/commandhub/internal/commandhub/core/model"
	"github.com/autopeer-io/commandhub/internal/commandhub/core/registry"
)

func (h *handlers) financeDefinitions() []registry.Definition {
	return []registry.Definition{
		{
			Action: model.CommandAction{
				ID:                   TriggerPayout,
				Title:                "Trigger Payout",
				Description:          "Send a manual payout to a vendor or user",
				Category:             model.CategoryFinance,
				Keywords:             []string{"payout", "payment", "vendor", "trigger"},
				Impact:               model.ImpactHigh,
				RequiresConfirmation: true,
				Fields: []model.Field{
					{Name: "amount", Label: "Amount", Type: model.FieldNumber, Placeholder: "100.00", Required: true},
					{Name: "recipient", Label: "Recipient ID", Type: model.FieldText, Placeholder: "user-123", Required: true},
					{Name: "description", Label: "Description", Type: model.FieldTextarea, Placeholder: "Reason for payout"},
				},
				SuccessMessage: "Payout triggered successfully!",
				FailureMessage: "Failed to trigger payout",
			},
			Handler: h.triggerPayout,
		},
		{
			Action: model.CommandAction{
				ID:                   FreezeTransactions,
				Title:                "Freeze Transactions",
				Description:          "Halt all payment processing",
				Category:             model.CategoryFinance,
				Keywords:             []string{"freeze", "transactions", "halt", "stop"},
				Impact:               model.ImpactCritical,
				RequiresConfirmation: true,
				SuccessMessage:       "All transactions have been frozen!",
				FailureMessage:       "Failed to freeze transactions. Please try again.",
			},
			Handler: h.freezeTransactions,
		},
		{
			Action: model.CommandAction{
				ID:          GenerateInvoice,
				Title:       "Generate Invoice",
				Description: "Create an invoice for a customer",
				Category:    model.CategoryFinance,
				Keywords:    []string{"invoice", "generate", "billing", "client"},
				Impact:      model.ImpactMedium,
				Fields: []model.Field{
					{Name: "customerId", Label: "Customer ID", Type: model.FieldText, Placeholder: "customer-123", Required: true},
					{Name: "amount", Label: "Amount", Type: model.FieldNumber, Placeholder: "1000.00", Required: true},
					{Name: "description", Label: "Description", Type: model.FieldTextarea, Placeholder: "Invoice description"},
				},
				SuccessMessage: "Invoice generated successfully!",
				FailureMessage: "Failed to generate invoice",
			},
			Handler: h.generateInvoice,
		},
	}
}

func (h *handlers) triggerPayout(ctx context.Context, data model.FormData) (*model.Outcome, error) {
	amt, err := amount(data, "amount")
	if err != nil {
		return nil, err
	}
	payload := map[string]any{
		"type":        "payout",
		"amount":      amt,
		"recipient":   strings.TrimSpace(data.Get("recipient")),
		"description": orDefault(data.Get("description"), "Manual payout triggered from command bar"),
	}
	var payment entity
	if err := h.call(ctx, http.MethodPost, "/api/finance/payments", payload, &payment); err != nil {
		return nil, err
	}
	return &model.Outcome{Data: payment}, nil
}

func (h *handlers) freezeTransactions(ctx context.Context, _ model.FormData) (*model.Outcome, error) {
	if err := h.call(ctx, http.MethodPost, "/api/finance/transactions/freeze", map[string]bool{"frozen": true}, nil); err != nil {
		return nil, err
	}
	return &model.Outcome{}, nil
}

func (h *handlers) generateInvoice(ctx context.Context, data model.FormData) (*model.Outcome, error) {
	amt, err := amount(data, "amount")
	if err != nil {
		return nil, err
	}
	payload := map[string]any{
		"customerId":  strings.TrimSpace(data.Get("customerId")),
		"amount":      amt,
		"description": orDefault(data.Get("description"), "Invoice generated from command bar"),
	}
	var invoice entity
	if err := h.call(ctx, http.MethodPost, "/api/finance/invoices", payload, &invoice); err != nil {
		return nil, err
	}
	return &model.Outcome{Data: invoice}, nil
}
