// internal/ipn/notification_test.go
package ipn

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"sync"
	"testing"
	"time"
)

func TestNotificationAccessors(t *testing.T) {
	n, err := NewNotification(singleRawData, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	checks := []struct {
		name string
		got  string
		want string
	}{
		{"status", n.Status(), "Completed"},
		{"transaction id", n.TransactionID(), "6G996328CK404320L"},
		{"type", n.Type(), "web_accept"},
		{"gross", n.Gross(), "500.00"},
		{"fee", n.Fee(), "15.05"},
		{"currency", n.Currency(), "CAD"},
		{"account", n.Account(), "tobi@leetsoft.com"},
		{"item id", n.ItemID(), ""},
		{"invoice", n.Invoice(), ""},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s: expected %q, got %q", c.name, c.want, c.got)
		}
	}
	if !n.Complete() {
		t.Error("expected complete notification")
	}
	if !n.Test() {
		t.Error("expected test notification")
	}
	if got := n.FeeCents(); got != 1505 {
		t.Errorf("expected fee cents 1505, got %d", got)
	}
	if got := n.Amount(); got != (Money{Cents: 50000, Currency: "CAD"}) {
		t.Errorf("expected 50000 CAD, got %+v", got)
	}
}

func TestNotificationReceivedAt(t *testing.T) {
	n, err := NewNotification(singleRawData, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	at, err := n.ReceivedAt()
	if err != nil {
		t.Fatalf("payment_date did not parse: %v", err)
	}
	want := time.Date(2005, time.April, 15, 22, 23, 54, 0, time.UTC)
	if !at.Equal(want) {
		t.Errorf("expected %v, got %v", want, at.UTC())
	}
}

func TestNotificationReceivedAtZones(t *testing.T) {
	tests := []struct {
		date string
		want time.Time
	}{
		{"15:23:54 Apr 15, 2005 PDT", time.Date(2005, time.April, 15, 22, 23, 54, 0, time.UTC)},
		{"10:00:00 Jan 2, 2024 PST", time.Date(2024, time.January, 2, 18, 0, 0, 0, time.UTC)},
		{"23:30:00 Dec 31, 2023 PST", time.Date(2024, time.January, 1, 7, 30, 0, 0, time.UTC)},
		{"08:15:00 Jul 04, 2024 UTC", time.Date(2024, time.July, 4, 8, 15, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			n, _ := NewNotification("payment_date="+url.QueryEscape(tt.date), nil)
			at, err := n.ReceivedAt()
			if err != nil {
				t.Fatalf("payment_date did not parse: %v", err)
			}
			if !at.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, at.UTC())
			}
		})
	}

	n, _ := NewNotification("payment_date=yesterday", nil)
	if _, err := n.ReceivedAt(); err == nil {
		t.Error("expected an error for an unparsable payment_date")
	}
}

func TestNotificationStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"payment_status=Completed", "Completed"},
		{"payment_status=Pending", "Pending"},
		{"payment_status=Failed", "Failed"},
		{"status=Unclaimed&payment_status=Completed", "Unclaimed"},
		{"", ""},
	}
	for _, tt := range tests {
		n, err := NewNotification(tt.raw, nil)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tt.raw, err)
		}
		if got := n.Status(); got != tt.want {
			t.Errorf("%q: expected status %q, got %q", tt.raw, tt.want, got)
		}
	}
}

func TestNotificationItemIDFallback(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"item_number=1", "1"},
		{"custom=1", "1"},
		{"item_number=7&custom=1", "7"},
		{"item_number=&custom=2", "2"},
	}
	for _, tt := range tests {
		n, _ := NewNotification(tt.raw, nil)
		if got := n.ItemID(); got != tt.want {
			t.Errorf("%q: expected item id %q, got %q", tt.raw, tt.want, got)
		}
	}

	n, _ := NewNotification("receiver_email=r%40example.org", nil)
	if got := n.Account(); got != "r@example.org" {
		t.Errorf("expected receiver_email fallback, got %q", got)
	}
}

func TestNotificationRejectsMasspay(t *testing.T) {
	for _, raw := range []string{masspayRawData, "txn_type=MassPay"} {
		_, err := NewNotification(raw, nil)
		if !errors.Is(err, ErrTypeMismatch) {
			t.Fatalf("expected ErrTypeMismatch, got %v", err)
		}
		var tm *TypeMismatchError
		if !errors.As(err, &tm) || tm.UseType != masspayVariant {
			t.Errorf("expected mismatch pointing at %s, got %v", masspayVariant, err)
		}
	}
}

func TestAcknowledgeResponses(t *testing.T) {
	tests := []struct {
		name      string
		response  string
		postErr   error
		want      bool
		wantErr   error
		wantState Acknowledgement
	}{
		{name: "Verified", response: "VERIFIED", want: true, wantState: Verified},
		{name: "Invalid", response: "INVALID", want: false, wantState: Invalid},
		{name: "Garbage response", response: "FAIL", wantErr: ErrMalformedUpstreamResponse, wantState: Unverified},
		{name: "Trailing newline is not tolerated", response: "VERIFIED\n", wantErr: ErrMalformedUpstreamResponse, wantState: Unverified},
		{name: "Transport failure", postErr: errors.New("connection reset"), wantErr: ErrTransportFailure, wantState: Unverified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			poster := &fakePoster{response: tt.response, err: tt.postErr}
			n, err := NewNotification(singleRawData, NewValidator(testEndpoint, poster))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			got, err := n.Acknowledge(context.Background())
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			} else if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
			if s := n.Acknowledgement(); s != tt.wantState {
				t.Errorf("expected state %v, got %v", tt.wantState, s)
			}
		})
	}
}

func TestAcknowledgeSendsRawBody(t *testing.T) {
	v, poster := newTestValidator("VERIFIED")
	n, _ := NewNotification(singleRawData, v)

	if ok, err := n.Acknowledge(context.Background()); err != nil || !ok {
		t.Fatalf("expected verified, got %v %v", ok, err)
	}
	if poster.url != testEndpoint+"?cmd=_notify-validate" {
		t.Errorf("unexpected url %q", poster.url)
	}
	if poster.body != singleRawData {
		t.Error("body was not posted unmodified")
	}
	if poster.headers["Content-Length"] != strconv.Itoa(len(singleRawData)) {
		t.Errorf("unexpected Content-Length %q", poster.headers["Content-Length"])
	}
	if poster.headers["User-Agent"] != UserAgent {
		t.Errorf("unexpected User-Agent %q", poster.headers["User-Agent"])
	}
}

func TestAcknowledgeIsCached(t *testing.T) {
	v, poster := newTestValidator("INVALID")
	n, _ := NewNotification(singleRawData, v)

	for i := 0; i < 3; i++ {
		ok, err := n.Acknowledge(context.Background())
		if err != nil || ok {
			t.Fatalf("call %d: expected invalid, got %v %v", i, ok, err)
		}
	}
	if poster.Calls() != 1 {
		t.Errorf("expected 1 round-trip, got %d", poster.Calls())
	}
}

func TestAcknowledgeErrorIsNotCached(t *testing.T) {
	poster := &fakePoster{err: errors.New("timeout")}
	n, _ := NewNotification(singleRawData, NewValidator(testEndpoint, poster))

	if _, err := n.Acknowledge(context.Background()); !errors.Is(err, ErrTransportFailure) {
		t.Fatalf("expected transport failure, got %v", err)
	}

	poster.mu.Lock()
	poster.err, poster.response = nil, "VERIFIED"
	poster.mu.Unlock()

	ok, err := n.Acknowledge(context.Background())
	if err != nil || !ok {
		t.Fatalf("expected verified on retry, got %v %v", ok, err)
	}
	if poster.Calls() != 2 {
		t.Errorf("expected 2 round-trips, got %d", poster.Calls())
	}
}

func TestAcknowledgeConcurrentCallersShareOneRoundTrip(t *testing.T) {
	v, poster := newTestValidator("VERIFIED")
	n, _ := NewNotification(singleRawData, v)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, err := n.Acknowledge(context.Background()); err != nil || !ok {
				t.Errorf("expected verified, got %v %v", ok, err)
			}
		}()
	}
	wg.Wait()

	if poster.Calls() != 1 {
		t.Errorf("expected 1 round-trip, got %d", poster.Calls())
	}
}

func TestAcknowledgeWithoutValidator(t *testing.T) {
	n, _ := NewNotification(singleRawData, nil)
	if _, err := n.Acknowledge(context.Background()); !errors.Is(err, ErrNoValidator) {
		t.Errorf("expected ErrNoValidator, got %v", err)
	}
}

func TestEmptyNotificationStillAcknowledges(t *testing.T) {
	v, poster := newTestValidator("INVALID")
	n, err := Parse("", v)
	if err != nil {
		t.Fatalf("empty body should parse, got %v", err)
	}
	if _, ok := n.(*Notification); !ok {
		t.Fatalf("expected *Notification, got %T", n)
	}
	if n.Params().Len() != 0 {
		t.Errorf("expected no params, got %d", n.Params().Len())
	}

	ok, err := n.Acknowledge(context.Background())
	if err != nil || ok {
		t.Fatalf("expected invalid, got %v %v", ok, err)
	}
	if poster.Calls() != 1 || poster.headers["Content-Length"] != "0" {
		t.Errorf("expected one empty round-trip, got %d calls, length %q", poster.Calls(), poster.headers["Content-Length"])
	}
}

func TestValidatorURLWithQuery(t *testing.T) {
	v := NewValidator("https://example.test/ipn?env=sandbox", nil)
	if got := v.URL(); got != "https://example.test/ipn?env=sandbox&cmd=_notify-validate" {
		t.Errorf("unexpected url %q", got)
	}
}
