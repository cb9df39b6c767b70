package ports

import (
	"context"

	"go.trai.ch/waypoint/internal/core/domain"
)

// QuestSource fetches the documents that make up a quest context.
//
//go:generate mockgen -source=quest_source.go -destination=mocks/mock_quest_source.go -package=mocks
type QuestSource interface {
	// Progress returns the player's progress on the quest.
	// It returns nil, nil when the quest has not been started.
	Progress(ctx context.Context, id domain.QuestID) (*domain.ProgressData, error)

	// Definition returns the static quest definition.
	Definition(ctx context.Context, id domain.QuestID) (*domain.DefinitionData, error)
}
