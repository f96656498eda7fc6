// internal/ipn/fakes_test.go
package ipn

import (
	"context"
	"sync"
)

// fakePoster records every validation request and answers with a fixed response.
type fakePoster struct {
	mu       sync.Mutex
	response string
	err      error

	calls   int
	url     string
	body    string
	headers map[string]string
}

func (f *fakePoster) Post(ctx context.Context, url string, body string, headers map[string]string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.url, f.body, f.headers = url, body, headers
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakePoster) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

const testEndpoint = "https://ipnpb.sandbox.paypal.com/cgi-bin/webscr"

func newTestValidator(response string) (*Validator, *fakePoster) {
	p := &fakePoster{response: response}
	return NewValidator(testEndpoint, p), p
}

const singleRawData = "mc_gross=500.00&address_status=confirmed&payer_id=EVMXCLDZJV77Q&tax=0.00&address_street=164+Waverley+Street&payment_date=15%3A23%3A54+Apr+15%2C+2005+PDT&payment_status=Completed&address_zip=K2P0V6&first_name=Tobias&mc_fee=15.05&address_country_code=CA&address_name=Tobias+Luetke&notify_version=1.7&custom=&payer_status=unverified&business=tobi%40leetsoft.com&address_country=Canada&address_city=Ottawa&quantity=1&payer_email=tobi%40snowdevil.ca&verify_sign=AEt48rmhLYtkZ9VzOGAtwL7rTGxUAoLNsuf7UewmX7UGvcyC3wfUmzJP&txn_id=6G996328CK404320L&payment_type=instant&last_name=Luetke&address_state=Ontario&receiver_email=tobi%40leetsoft.com&payment_fee=&receiver_id=UQ8PDYXJZQD9Y&txn_type=web_accept&item_name=Store+Purchase&mc_currency=CAD&item_number=&test_ipn=1&payment_gross=&shipping=0.00"

const masspayRawData = "payer_id=T9KDFTA2QPJJA&payment_date=11%3A28%3A59+Nov+29%2C+2008+PST&payment_gross_1=4.58&payment_gross_2=0.06&payment_status=Completed&receiver_email_1=recipient1%40example.org&receiver_email_2=recipient2%40example.org&charset=windows-1252&mc_currency_1=CAD&masspay_txn_id_1=3MH4473235032411N&mc_currency_2=CAD&masspay_txn_id_2=95713062MK310713Y&first_name=Steven&unique_id_1=uniq1&notify_version=2.6&unique_id_2=uniq2&payer_status=verified&verify_sign=AzdfFzye40fcCzdVqzDsKwQ1s7lkAehzbs3i81m2cH2fRNXqW5f-w1w6&payer_email=paypal%40example.com&payer_business_name=Steven+Luscher%27s+Test+Store&last_name=Luscher&status_1=Completed&status_2=Completed&txn_type=masspay&mc_gross_1=4.58&mc_gross_2=0.06&payment_fee_1=0.09&residence_country=US&payment_fee_2=0.01&test_ipn=1&mc_fee_1=0.09&mc_fee_2=0.01"
