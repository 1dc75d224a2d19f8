package specialist

import (
	"context"
	"fmt"
	"strings"
)

// Recommendation is the structured output of the rewards rule engine.
type Recommendation struct {
	Category    string
	TLDR        string
	HowToEarn   string
	WhatToAvoid string
	Notes       string
}

// RecommendationSpecialist answers rewards-eligibility questions from a
// deterministic rule table. No retrieval, no model call: the same query
// always produces the same answer.
type RecommendationSpecialist struct{}

func NewRecommendationSpecialist() *RecommendationSpecialist {
	return &RecommendationSpecialist{}
}

func (s *RecommendationSpecialist) Answer(ctx context.Context, query string) (string, error) {
	reco := Recommend(query)

	var b strings.Builder
	fmt.Fprintf(&b, "Category: %s\n", reco.Category)
	fmt.Fprintf(&b, "TL;DR: %s\n", reco.TLDR)
	fmt.Fprintf(&b, "How to earn: %s\n", reco.HowToEarn)
	fmt.Fprintf(&b, "What to avoid: %s", reco.WhatToAvoid)
	if reco.Notes != "" {
		fmt.Fprintf(&b, "\nNotes: %s", reco.Notes)
	}

	return b.String(), nil
}

func matchesAny(query string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(query, keyword) {
			return true
		}
	}
	return false
}

// Recommend maps a query to a reward category rule.
func Recommend(query string) Recommendation {
	q := strings.ToLower(query)

	switch {
	case matchesAny(q, "flight", "airfare", "airline"):
		return Recommendation{
			Category:    "Airfare",
			TLDR:        "Book directly with the airline or via the card travel portal (not as part of a vacation package).",
			HowToEarn:   "Pay a scheduled passenger flight directly to the airline or through the card travel portal.",
			WhatToAvoid: "Vacation packages or bookings where the airline does not charge your card directly.",
			Notes:       "Some third parties may still qualify if the airline ultimately charges your card.",
		}
	case matchesAny(q, "hotel", "stay", "resort"):
		return Recommendation{
			Category:    "Hotels",
			TLDR:        "Book directly with the hotel; no vacation packages.",
			HowToEarn:   "Prepay or pay at check-in/check-out directly with the hotel.",
			WhatToAvoid: "Vacation packages, third-party bookings, timeshares, banquets, or event charges.",
		}
	case matchesAny(q, "car rental", "rental car", "avis", "hertz", "sixt", "enterprise", "alamo", "budget", "thrifty", "national", "payless", "dollar"):
		return Recommendation{
			Category:    "Select Car Rentals",
			TLDR:        "Rent directly from listed rental companies.",
			HowToEarn:   "Book directly with eligible rental companies, even internationally.",
			WhatToAvoid: "Vacation packages or indirect bookings that are not charged by the rental company.",
		}
	case matchesAny(q, "office supply", "staples", "office depot"):
		return Recommendation{
			Category:    "U.S. Office Supply Stores",
			TLDR:        "Buy directly at U.S. office supply stores.",
			HowToEarn:   "Pay directly at qualifying office supply stores for business-related supplies.",
			WhatToAvoid: "Office supplies purchased at pharmacies, superstores, or warehouse clubs.",
		}
	case matchesAny(q, "shipping", "courier", "ups", "fedex", "usps"):
		return Recommendation{
			Category:    "U.S. Shipping",
			TLDR:        "Use U.S.-based shipping providers (UPS, FedEx, USPS) whether domestic or international.",
			HowToEarn:   "Pay a U.S.-based courier or freight shipper for shipping.",
			WhatToAvoid: "Non-U.S. based shippers or mixed purchases not coded as shipping.",
		}
	case matchesAny(q, "restaurant", "dining", "fast food"):
		return Recommendation{
			Category:    "U.S. Restaurants",
			TLDR:        "Earn at U.S. restaurants (including fast food) if coded as restaurants.",
			HowToEarn:   "Dine at U.S.-based restaurants coded with a restaurant merchant category.",
			WhatToAvoid: "Restaurants inside hotels/casinos or venues not coded as restaurants; U.S.-owned restaurants abroad.",
		}
	case matchesAny(q, "online retail", "ecommerce", "e-commerce", "webshop", "online store", "internet purchase", "online purchase"):
		return Recommendation{
			Category:    "U.S. Online Retail Purchases",
			TLDR:        "Buy online from U.S. retail merchants that sell physical goods directly.",
			HowToEarn:   "Pay on a U.S. retailer's website or app where the transaction is classified as an internet purchase.",
			WhatToAvoid: "Restaurants, supermarkets, gas stations, BNPL programs, phone/mail orders, or service-only merchants.",
		}
	}

	return Recommendation{
		Category:    "Unknown / Needs Clarification",
		TLDR:        "Tell me if it's airfare, hotel, car rental, office supplies, shipping, online retail, or restaurants.",
		HowToEarn:   "Please clarify the purchase type so I can map it to the right reward category.",
		WhatToAvoid: "Assuming a category without correct merchant classification.",
	}
}
