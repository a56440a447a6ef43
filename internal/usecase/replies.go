package usecase

import (
	"fmt"

	"sms_invoicer/internal/domain/entities"
)

const (
	replyParseRejected = "Sorry, I couldn't understand that message. Please try again with a format like:\n\n" +
		"\"Invoice John Smith - faucet $25, labor $100\"\n\nor\n\n" +
		"\"Quote for Jane Doe - deck repair labor $300 materials $200\""
	replyTryAgainLater = "Sorry, an error occurred. Please try again later."
	replyResendRequest = "Sorry, I lost track of your previous request. Please send it again."
	replyRetryRequest  = "Sorry, an error occurred while creating that document. Please send the request again."
)

func replyMissingClientName(docType entities.DocumentType) string {
	return fmt.Sprintf("Please provide the client name for this %s.\n\nExample: \"John Smith\"", docType)
}

func replyOnboarding(onboardingURL string) string {
	return "Welcome to SMS Invoice! 📱\n\nTo get started, please complete your business profile:\n" +
		onboardingURL +
		"\n\nOnce set up, you can create invoices and quotes by texting this number."
}

func replyAskPhone(clientName string) string {
	return fmt.Sprintf("New client \"%s\" detected!\n\nPlease provide their phone number:", clientName)
}

func replyAskAddress(clientName string) string {
	return fmt.Sprintf("Great! Now please provide %s's address:", clientName)
}

// replyDocumentCreated confirms a new document. The payment line is only
// present when a link was generated.
func replyDocumentCreated(doc entities.Document, viewURL string) string {
	msg := fmt.Sprintf("✅ %s %s created for %s!\n\nTotal: %s\n\nView: %s",
		doc.Type.Title(), doc.Number, doc.ClientName, FormatCents(doc.TotalAmountCents), viewURL)
	if doc.PaymentLink != "" {
		msg += "\n\nPayment: " + doc.PaymentLink
	}
	return msg
}

// promptForPhase repeats the question of the phase the conversation is in.
func promptForPhase(c entities.ConversationState) string {
	if c.Phase == entities.ConversationPhaseAwaitingClientAddress {
		return replyAskAddress(c.ClientName)
	}
	return replyAskPhone(c.ClientName)
}

// FormatCents renders cents as dollars, e.g. 24100 -> "$241.00".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
