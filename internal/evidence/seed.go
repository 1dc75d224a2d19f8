package evidence

import (
	"context"

	"github.com/rs/zerolog"
)

// SeedPolicyDocuments are the built-in policy snippets used when the corpus
// database is empty or unreachable, so retrieval always has something to
// ground against.
func SeedPolicyDocuments() []Document {
	return []Document{
		{
			ID: "credit_risk_policy",
			Content: "CREDIT & RISK POLICY\n" +
				"Credit applications are evaluated based on U.S. credit bureau reports, " +
				"income verification, payment history, and internal risk assessments. " +
				"Most credit decisions are automated using advanced data models, but final approval " +
				"is subject to regulatory compliance and internal underwriting policies.",
			Source: "Card Issuer U.S. Policy",
		},
		{
			ID: "third_party_risk_management",
			Content: "THIRD PARTY RISK MANAGEMENT:\n" +
				"The issuer partners with select third-party service providers to enhance " +
				"customer experience and operational efficiency. All third parties are required to " +
				"adhere to U.S. federal regulations, issuer data privacy standards, and ongoing risk assessments.",
			Source: "Card Issuer U.S. Policy",
		},
	}
}

// SeedFAQDocuments are the built-in FAQ passages, paired with
// SeedPolicyDocuments.
func SeedFAQDocuments() []Document {
	return []Document{
		{
			ID: "faq_credit_decision",
			Content: "Q: How are credit decisions made?\n" +
				"A: Credit decisions rely on credit bureau data, verified income, and payment " +
				"history. Most decisions are automated and reviewed for regulatory compliance.",
			Source: "Card Issuer U.S. FAQ",
		},
		{
			ID: "faq_third_party_data",
			Content: "Q: Do third-party partners see my data?\n" +
				"A: Partners only receive the data needed for the service they provide and must " +
				"meet the issuer's privacy standards and U.S. federal regulations.",
			Source: "Card Issuer U.S. FAQ",
		},
	}
}

// SeedStore ingests built-in snippets, skipping any whose embedding fails.
func SeedStore(ctx context.Context, store *Store, docs []Document, logger zerolog.Logger) {
	for _, doc := range docs {
		if err := store.Ingest(ctx, doc); err != nil {
			logger.Error().Err(err).Str("doc_id", doc.ID).Msg("Failed to embed seed document")
		}
	}
	logger.Info().Str("store", store.Name()).Int("documents", store.Len()).Msg("Seeded evidence store")
}
