package main

import (
	"bytes"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

const masspayBody = "txn_type=masspay&payment_status=Processed&payer_email=payouts%40example.com" +
	"&masspay_txn_id_1=4LX12345AB&mc_gross_1=4.58&mc_fee_1=0.09&mc_currency_1=USD&status_1=Completed&unique_id_1=uniq1&receiver_email_1=a%40example.com" +
	"&masspay_txn_id_2=5MY67890CD&mc_gross_2=0.06&mc_fee_2=0.01&mc_currency_2=USD&status_2=Completed&unique_id_2=uniq2&receiver_email_2=b%40example.com" +
	"&verify_sign=AbC123"

func TestInspectMasspay(t *testing.T) {
	view, err := inspect(masspayBody, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Kind != "masspay" || view.Gross != "4.64" || view.Fee != "0.10" || view.Currency != "USD" {
		t.Errorf("unexpected totals %+v", view)
	}
	if len(view.Payments) != 2 {
		t.Fatalf("expected 2 payments, got %d", len(view.Payments))
	}
	if view.Payments[0].MasspayTxnID != "4LX12345AB" || view.Payments[1].UniqueID != "uniq2" {
		t.Errorf("unexpected payments %+v", view.Payments)
	}
	if view.Payments[0].Receiver != "a@example.com" || view.Payments[0].Gross != "4.58" {
		t.Errorf("unexpected first payment %+v", view.Payments[0])
	}
	if view.Params != nil {
		t.Error("params should be omitted without --params")
	}
}

func TestInspectSingle(t *testing.T) {
	view, err := inspect("txn_type=web_accept&txn_id=6G996328CK404320L&payment_status=Completed&mc_gross=15.05&mc_fee=0.74&mc_currency=EUR&business=shop%40example.com", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Kind != "single" || !view.Complete || view.Gross != "15.05" || view.Fee != "0.74" {
		t.Errorf("unexpected view %+v", view)
	}
	if view.Account != "shop@example.com" || view.Params["txn_id"] != "6G996328CK404320L" {
		t.Errorf("unexpected account or params %+v", view)
	}
}

func TestInspectCommandPrintsYAML(t *testing.T) {
	cmd := inspectCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(masspayBody + "\n"))
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	var decoded notificationView
	if err := yaml.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not yaml: %v\n%s", err, out.String())
	}
	if decoded.Kind != "masspay" || len(decoded.Payments) != 2 {
		t.Errorf("unexpected decoded output %+v", decoded)
	}
}
