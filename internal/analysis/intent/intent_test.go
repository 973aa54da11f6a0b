package intent

import "testing"

func TestDetect(t *testing.T) {
	cases := []struct {
		message string
		want    string
	}{
		{"I want my money back", RefundRequest},
		{"Please cancel my order", Cancellation},
		{"My food is really late", DeliveryDelay},
		{"Where is my order?", OrderTracking},
		{"I was charged twice", PaymentIssue},
		{"Can you help me with something?", GeneralHelp},
		{"What restaurants do you have?", GeneralInquiry},
		{"", GeneralInquiry},
	}

	for _, tc := range cases {
		if got := Detect(tc.message); got != tc.want {
			t.Errorf("Detect(%q) = %q, want %q", tc.message, got, tc.want)
		}
	}
}

func TestDetectEarlierRuleWins(t *testing.T) {
	// Both refund and delay patterns match; refund is evaluated first.
	if got := Detect("I want a refund, my delivery was late"); got != RefundRequest {
		t.Fatalf("expected %q, got %q", RefundRequest, got)
	}
}

func TestDetectIsCaseInsensitive(t *testing.T) {
	if got := Detect("REFUND NOW"); got != RefundRequest {
		t.Fatalf("expected %q, got %q", RefundRequest, got)
	}
}
