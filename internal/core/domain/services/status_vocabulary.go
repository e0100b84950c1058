package services

import (
	"slices"
	"sort"
	"strings"

	"waterdelivery/internal/core/domain/model/order"
)

// External status tokens understood by the available-orders feed.
const (
	TokenOrderPlaced     = "ORDER_PLACED"
	TokenInQueue         = "IN_QUEUE"
	TokenCourierAccepted = "COURIER_ACCEPTED"
	TokenCourierOnTheWay = "COURIER_ON_THE_WAY"
	TokenCourierArrived  = "COURIER_ARRIVED"
	TokenDelivered       = "DELIVERED"
	TokenCancelled       = "CANCELLED"
)

// AvailabilityFilter is the storage-level filter a status token resolves to.
type AvailabilityFilter struct {
	Stages         []order.Stage
	UnassignedOnly bool
}

// StatusVocabulary maps client-facing status tokens onto sets of internal stages.
//
// The table is fixed at construction; adding a token means adding a row, nothing in
// the dispatch logic changes.
type StatusVocabulary struct {
	table map[string][]order.Stage
}

// NewStatusVocabulary returns the vocabulary used by mobile and CRM clients.
func NewStatusVocabulary() StatusVocabulary {
	return StatusVocabulary{
		table: map[string][]order.Stage{
			TokenOrderPlaced:     order.QueueSet(),
			TokenInQueue:         order.QueueSet(),
			TokenCourierAccepted: {order.Confirmed},
			TokenCourierOnTheWay: {order.Delivering, order.PickedUp, order.Confirmed},
			TokenCourierArrived:  {order.Delivering},
			TokenDelivered:       {order.Delivered},
			TokenCancelled:       {order.Cancelled},
		},
	}
}

// Resolve translates token into a filter.
//
// Rules:
//   - empty token: the dispatch queue, i.e. queue-set stages without a driver
//   - known token: its stage set, case-insensitive
//   - unknown token: used literally as a single stage, which may match nothing
func (v StatusVocabulary) Resolve(token string) AvailabilityFilter {
	token = strings.TrimSpace(token)
	if token == "" {
		return AvailabilityFilter{Stages: order.QueueSet(), UnassignedOnly: true}
	}

	if stages, ok := v.table[strings.ToUpper(token)]; ok {
		return AvailabilityFilter{Stages: slices.Clone(stages)}
	}

	return AvailabilityFilter{Stages: []order.Stage{order.Stage(token)}}
}

// Tokens lists the known tokens in alphabetical order.
func (v StatusVocabulary) Tokens() []string {
	tokens := make([]string, 0, len(v.table))
	for token := range v.table {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	return tokens
}
