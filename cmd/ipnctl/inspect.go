package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Tanmoy095/LogiSynapse/ipn-service/internal/ipn"
)

// notificationView is the YAML shape printed by inspect.
type notificationView struct {
	Kind          string            `yaml:"kind"`
	Type          string            `yaml:"txn_type"`
	Status        string            `yaml:"status"`
	Complete      bool              `yaml:"complete"`
	Test          bool              `yaml:"test"`
	TransactionID string            `yaml:"txn_id,omitempty"`
	Account       string            `yaml:"account,omitempty"`
	Gross         string            `yaml:"gross"`
	Fee           string            `yaml:"fee"`
	Currency      string            `yaml:"currency,omitempty"`
	CurrencyError string            `yaml:"currency_error,omitempty"`
	Payments      []subpaymentView  `yaml:"payments,omitempty"`
	Params        map[string]string `yaml:"params,omitempty"`
}

type subpaymentView struct {
	MasspayTxnID string `yaml:"masspay_txn_id"`
	UniqueID     string `yaml:"unique_id,omitempty"`
	Status       string `yaml:"status"`
	Gross        string `yaml:"gross"`
	Fee          string `yaml:"fee"`
	Currency     string `yaml:"currency"`
	Receiver     string `yaml:"receiver,omitempty"`
}

func inspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Parse a raw IPN body and print it as YAML (no network)",
		Long: `Parse a raw IPN body read from file (or stdin) and print:
- the notification kind and totals
- each MassPay sub-payment
- optionally every decoded field`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readBody(cmd, args)
			if err != nil {
				return err
			}
			withParams, _ := cmd.Flags().GetBool("params")

			view, err := inspect(strings.TrimRight(raw, "\r\n"), withParams)
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(view)
			if err != nil {
				return fmt.Errorf("encode yaml: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().BoolP("params", "p", false, "Include every decoded field")

	return cmd
}

// inspect parses raw without a validator; nothing here talks to PayPal.
func inspect(raw string, withParams bool) (*notificationView, error) {
	n, err := ipn.Parse(raw, nil)
	if err != nil {
		return nil, err
	}

	view := &notificationView{
		Type:     n.Type(),
		Status:   n.Status(),
		Complete: n.Complete(),
		Test:     n.Test(),
	}
	if withParams {
		view.Params = n.Params().Map()
	}

	switch v := n.(type) {
	case *ipn.Notification:
		view.Kind = "single"
		view.TransactionID = v.TransactionID()
		view.Account = v.Account()
		view.Gross = v.Amount().Decimal().StringFixed(2)
		view.Fee = ipn.Money{Cents: v.FeeCents()}.Decimal().StringFixed(2)
		view.Currency = v.Currency()
	case *ipn.MasspayNotification:
		view.Kind = "masspay"
		view.Account = v.Account()
		view.Gross = v.Gross().StringFixed(2)
		view.Fee = v.Fee().StringFixed(2)
		view.Currency = v.Currency()
		if err := v.CheckCurrency(); err != nil {
			view.CurrencyError = err.Error()
		}
		for _, p := range v.Payments() {
			view.Payments = append(view.Payments, subpaymentView{
				MasspayTxnID: p.MasspayTransactionID(),
				UniqueID:     p.UniqueID(),
				Status:       p.Status(),
				Gross:        p.Amount().Decimal().StringFixed(2),
				Fee:          ipn.Money{Cents: p.FeeCents()}.Decimal().StringFixed(2),
				Currency:     p.Currency(),
				Receiver:     p.Params().Get("receiver_email"),
			})
		}
	}
	return view, nil
}
