// Package questfs reads quest documents from a directory tree:
//
//	<dir>/<quest id>/definition.yaml
//	<dir>/<quest id>/progress.yaml
package questfs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path"

	"go.trai.ch/waypoint/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	// DefinitionFile holds the static quest definition.
	DefinitionFile = "definition.yaml"
	// ProgressFile holds the player's progress. It is absent for quests not started.
	ProgressFile = "progress.yaml"
)

// Source implements ports.QuestSource on an fs.FS.
type Source struct {
	fsys fs.FS
}

// NewSource creates a Source rooted at dir.
func NewSource(dir string) *Source {
	return NewSourceFS(os.DirFS(dir))
}

// NewSourceFS creates a Source on fsys.
func NewSourceFS(fsys fs.FS) *Source {
	return &Source{fsys: fsys}
}

// Progress returns nil, nil when the quest has no progress document.
func (s *Source) Progress(ctx context.Context, id domain.QuestID) (*domain.ProgressData, error) {
	var p domain.ProgressData
	found, err := s.read(ctx, id, ProgressFile, &p)
	if err != nil || !found {
		return nil, err
	}
	return &p, nil
}

// Definition returns domain.ErrQuestNotFound when the quest has no definition.
func (s *Source) Definition(ctx context.Context, id domain.QuestID) (*domain.DefinitionData, error) {
	var d domain.DefinitionData
	found, err := s.read(ctx, id, DefinitionFile, &d)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, zerr.With(domain.ErrQuestNotFound, "quest", id.String())
	}
	return &d, nil
}

func (s *Source) read(ctx context.Context, id domain.QuestID, file string, target any) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := domain.ValidateQuestID(id); err != nil {
		return false, zerr.With(err, "quest", id.String())
	}

	name := path.Join(id.String(), file)
	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, domain.ErrQuestReadFailed.Error()), "file", name)
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrQuestParseFailed.Error()), "file", name)
	}
	return true, nil
}
