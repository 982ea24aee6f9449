package store

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/genieai/rag-eval-agent/internal/models"
)

// DefaultBusinessContext is used when a user has no stored business
// profile. Matches the assistant's onboarding default.
var DefaultBusinessContext = BusinessContext{
	RoleOrBackground:    "Aspiring entrepreneur",
	AnnualRevenue:       "Pre-revenue",
	PrimaryBusinessGoal: "Launch New Product",
	BusinessStage:       "Ideation",
	TargetMarket:        "B2B",
	PrimaryAspiration:   "Develop an innovative product/service",
}

type BusinessContext struct {
	RoleOrBackground    string `bson:"roleOrBackground"`
	AnnualRevenue       string `bson:"annualRevenue"`
	PrimaryBusinessGoal string `bson:"primaryBusinessGoal"`
	BusinessStage       string `bson:"businessStage"`
	TargetMarket        string `bson:"targetMarket"`
	PrimaryAspiration   string `bson:"primaryAspiration"`
}

// Render formats the context the way the judge prompts expect it.
func (b BusinessContext) Render() string {
	var sb strings.Builder
	sb.WriteString("Role Or Background: " + b.RoleOrBackground + "\n")
	sb.WriteString("Annual Revenue: " + b.AnnualRevenue + "\n")
	sb.WriteString("Primary Business Goal: " + b.PrimaryBusinessGoal + "\n")
	sb.WriteString("Business Stage: " + b.BusinessStage + "\n")
	sb.WriteString("Target Market: " + b.TargetMarket + "\n")
	sb.WriteString("Primary Aspiration: " + b.PrimaryAspiration)
	return sb.String()
}

// FindBusinessContext looks up a user's stored business profile, checking
// the chat-document root first and the messages as a fallback. A missing
// profile is not an error; callers fall back to the default.
func (s *TurnSelector) FindBusinessContext(ctx context.Context, userID string, guestMode bool) (BusinessContext, bool) {
	collection := s.db.Collection(historyCollection(guestMode))

	var root struct {
		BusinessContext *BusinessContext `bson:"businessContext"`
	}
	err := collection.FindOne(ctx,
		bson.M{"userId": userID, "businessContext": bson.M{"$exists": true}},
	).Decode(&root)
	if err == nil && root.BusinessContext != nil {
		return *root.BusinessContext, true
	}
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("business context lookup failed")
		return BusinessContext{}, false
	}

	var nested struct {
		Messages []struct {
			BusinessContext *BusinessContext `bson:"businessContext"`
		} `bson:"messages"`
	}
	err = collection.FindOne(ctx,
		bson.M{"userId": userID, "messages.businessContext": bson.M{"$exists": true}},
	).Decode(&nested)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("business context lookup failed")
		}
		return BusinessContext{}, false
	}

	for _, msg := range nested.Messages {
		if msg.BusinessContext != nil {
			return *msg.BusinessContext, true
		}
	}
	return BusinessContext{}, false
}

// attachBusinessContexts resolves and renders the business context for
// each turn, caching lookups per user within one selector invocation.
func (s *TurnSelector) attachBusinessContexts(ctx context.Context, turns []models.Turn, guestMode bool) {
	cache := make(map[string]string)

	for i := range turns {
		rendered, ok := cache[turns[i].UserID]
		if !ok {
			bc, found := s.FindBusinessContext(ctx, turns[i].UserID, guestMode)
			if !found {
				bc = DefaultBusinessContext
			}
			rendered = bc.Render()
			cache[turns[i].UserID] = rendered
		}
		turns[i].BusinessContext = rendered
	}
}
