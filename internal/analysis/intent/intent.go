package intent

import "strings"

// Coarse intent labels recognized by the classifier.
const (
	RefundRequest  = "refund_request"
	Cancellation   = "cancellation"
	DeliveryDelay  = "delivery_delay"
	OrderTracking  = "order_tracking"
	PaymentIssue   = "payment_issue"
	GeneralHelp    = "general_help"
	GeneralInquiry = "general_inquiry"
)

// rule maps trigger substrings to a label. Any pattern hit classifies the
// message.
type rule struct {
	patterns []string
	label    string
}

// rules is evaluated in order with first match winning. The order is part of
// the classifier's contract: "I want a refund, delivery was late" must come
// out as refund_request, not delivery_delay. Do not reorder.
var rules = []rule{
	{patterns: []string{"refund", "money back", "return"}, label: RefundRequest},
	{patterns: []string{"cancel", "stop", "abort"}, label: Cancellation},
	{patterns: []string{"late", "delay", "slow"}, label: DeliveryDelay},
	{patterns: []string{"track", "where", "status"}, label: OrderTracking},
	{patterns: []string{"payment", "billing", "charge"}, label: PaymentIssue},
	{patterns: []string{"help", "support", "assist"}, label: GeneralHelp},
}

// Detect maps a message to one coarse intent label via case-insensitive
// substring tests against the ordered rule list.
func Detect(message string) string {
	lowered := strings.ToLower(message)
	for _, r := range rules {
		for _, p := range r.patterns {
			if strings.Contains(lowered, p) {
				return r.label
			}
		}
	}
	return GeneralInquiry
}
