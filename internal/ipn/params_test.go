// internal/ipn/params_test.go
package ipn

import (
	"reflect"
	"testing"
)

func TestParseParams(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantKeys []string
		want     map[string]string
	}{
		{
			name:     "Empty body",
			raw:      "",
			wantKeys: []string{},
			want:     map[string]string{},
		},
		{
			name:     "Percent and plus decoding",
			raw:      "payer_email=tobi%40snowdevil.ca&item_name=Store+Purchase",
			wantKeys: []string{"payer_email", "item_name"},
			want:     map[string]string{"payer_email": "tobi@snowdevil.ca", "item_name": "Store Purchase"},
		},
		{
			name:     "Last value wins, first position kept",
			raw:      "a=1&b=2&a=3",
			wantKeys: []string{"a", "b"},
			want:     map[string]string{"a": "3", "b": "2"},
		},
		{
			name:     "Key case preserved",
			raw:      "Txn_Type=masspay&txn_type=web_accept",
			wantKeys: []string{"Txn_Type", "txn_type"},
			want:     map[string]string{"Txn_Type": "masspay", "txn_type": "web_accept"},
		},
		{
			name:     "Missing value and stray separators",
			raw:      "&custom&item_number=&&x=1",
			wantKeys: []string{"custom", "item_number", "x"},
			want:     map[string]string{"custom": "", "item_number": "", "x": "1"},
		},
		{
			name:     "Malformed escape kept",
			raw:      "memo=100%25+off%zz&name=a%2",
			wantKeys: []string{"memo", "name"},
			want:     map[string]string{"memo": "100% off%zz", "name": "a%2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ParseParams(tt.raw)
			if got := p.Keys(); !reflect.DeepEqual(got, tt.wantKeys) {
				t.Errorf("keys: expected %v, got %v", tt.wantKeys, got)
			}
			if got := p.Map(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("values: expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestParamsEncodeRoundTrip(t *testing.T) {
	p := ParseParams("payer_business_name=Steven+Luscher%27s+Test+Store&payer_email=paypal%40example.com")
	again := ParseParams(p.Encode())

	if !reflect.DeepEqual(again.Keys(), p.Keys()) {
		t.Fatalf("key order changed: %v vs %v", again.Keys(), p.Keys())
	}
	if got := again.Get("payer_business_name"); got != "Steven Luscher's Test Store" {
		t.Errorf("expected decoded business name, got %q", got)
	}
}

func TestParamsLookup(t *testing.T) {
	p := ParseParams("custom=")
	if v, ok := p.Lookup("custom"); !ok || v != "" {
		t.Errorf("expected present empty custom, got %q %v", v, ok)
	}
	if p.Has("invoice") {
		t.Error("invoice should be absent")
	}
}
