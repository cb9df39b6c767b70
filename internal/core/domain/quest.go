package domain

import (
	"strings"
	"time"
)

// QuestID identifies a quest.
type QuestID string

// String returns the id as a string.
func (id QuestID) String() string {
	return string(id)
}

// ValidateQuestID rejects ids that cannot be used as a lookup key on disk.
func ValidateQuestID(id QuestID) error {
	s := string(id)
	if s == "" || s == "." || s == ".." || strings.ContainsAny(s, `/\`) {
		return ErrInvalidQuestID
	}
	return nil
}

// ProgressData is the player's progress on a quest.
type ProgressData struct {
	Step      int       `yaml:"step"`
	Completed []string  `yaml:"completed"`
	UpdatedAt time.Time `yaml:"updatedAt"`
}

// DefinitionData is the static description of a quest.
type DefinitionData struct {
	Title string   `yaml:"title"`
	Zone  ZoneKey  `yaml:"zone"`
	Steps []string `yaml:"steps"`
}

// ContextPayload is what a fetch produces for one quest.
type ContextPayload struct {
	Progress   *ProgressData
	Definition *DefinitionData
}

// QuestContext is a cached ContextPayload stamped with its fetch time.
type QuestContext struct {
	Progress    *ProgressData
	Definition  *DefinitionData
	LastFetched time.Time
}
