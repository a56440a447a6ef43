package usecase

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	inboundMessagesCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sms_invoicer",
			Name:      "inbound_messages_total",
			Help:      "Inbound SMS by outcome.",
		},
		[]string{"outcome"}, // document_created, conversation_started, conversation_turn, parse_rejected, ...
	)

	documentsCreatedCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sms_invoicer",
			Name:      "documents_created_total",
			Help:      "Invoices and quotes created.",
		},
		[]string{"type"},
	)

	documentArtifactFailuresCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sms_invoicer",
			Name:      "document_artifact_failures_total",
			Help:      "PDF or payment link generation failures.",
		},
		[]string{"artifact"},
	)

	conversationTransitionsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sms_invoicer",
			Name:      "conversation_transitions_total",
			Help:      "Conversation phase transitions by target phase.",
		},
		[]string{"phase"},
	)

	conversationRaceRetriesCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "sms_invoicer",
			Name:      "conversation_race_retries_total",
			Help:      "Turns retried after losing a compare-and-swap on the conversation phase.",
		},
	)

	turnDurationHist = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sms_invoicer",
			Name:      "turn_duration_seconds",
			Help:      "Duration of one inbound SMS turn.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)
)
