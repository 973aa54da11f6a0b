package faq

// Seed provides the default support knowledge base for the food-delivery
// domain. Answer text is returned verbatim inside the prompt context block,
// so keep it customer-facing.
func Seed() []Entry {
	return []Entry{
		{
			ID:       "delivery-delay-1",
			Category: "delivery",
			Question: "My order is late, what should I do?",
			Answer:   "I understand your frustration with the delayed order. Let me help you track it and provide a solution. You can get a refund or free delivery credit for future orders.",
			Keywords: []string{"late", "delay", "slow", "delayed", "taking long"},
			Intent:   "delivery_delay",
		},
		{
			ID:       "refund-policy-1",
			Category: "refund",
			Question: "How do I get a refund for my order?",
			Answer:   "You can request a refund within 24 hours of order placement. Refunds are processed within 3-5 business days. For immediate assistance, I can initiate the refund process for you right now.",
			Keywords: []string{"refund", "money back", "return", "reimburse", "compensation"},
			Intent:   "refund_request",
		},
		{
			ID:       "order-tracking-1",
			Category: "tracking",
			Question: "How can I track my order?",
			Answer:   "You can track your order in real-time through our app or website. I can also provide you with the current status and estimated delivery time right now.",
			Keywords: []string{"track", "where", "status", "location", "progress"},
			Intent:   "order_tracking",
		},
		{
			ID:       "cancel-order-1",
			Category: "cancellation",
			Question: "Can I cancel my order?",
			Answer:   "Yes, you can cancel your order within 5 minutes of placing it. After that, cancellation depends on the restaurant preparation status. I can help you cancel it right now if it's still possible.",
			Keywords: []string{"cancel", "stop", "abort", "remove"},
			Intent:   "cancellation",
		},
		{
			ID:       "payment-issue-1",
			Category: "payment",
			Question: "My payment failed, what should I do?",
			Answer:   "Don't worry! Payment failures can happen due to network issues or bank problems. You can try again with the same payment method or use a different one. Your order is still reserved for 10 minutes.",
			Keywords: []string{"payment", "failed", "transaction", "billing", "charge"},
			Intent:   "payment_issue",
		},
		{
			ID:       "restaurant-closed-1",
			Category: "restaurant",
			Question: "The restaurant is showing as closed, but I want to order",
			Answer:   "I understand your disappointment. Restaurants have specific operating hours and may close early due to high demand or other reasons. I can suggest similar restaurants that are currently open and accepting orders.",
			Keywords: []string{"closed", "not available", "unavailable", "shut"},
			Intent:   "restaurant_availability",
		},
		{
			ID:       "delivery-address-1",
			Category: "delivery",
			Question: "Can I change my delivery address?",
			Answer:   "You can change your delivery address within 5 minutes of placing the order, provided the new address is within our delivery zone. After that, changes may not be possible as the restaurant starts preparing your order.",
			Keywords: []string{"address", "location", "change", "update", "modify"},
			Intent:   "address_change",
		},
	}
}
