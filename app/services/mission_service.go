package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"icando-go/app/models"
	"icando-go/app/store"
)

var (
	// ErrNotFound is returned for an unknown mission id.
	ErrNotFound = errors.New("mission not found")
	// ErrRootMission is returned when an operation cannot apply to the root.
	ErrRootMission = errors.New("operation not allowed on the root mission")
	// ErrEmptyTitle is returned when a mission would be left without a title.
	ErrEmptyTitle = errors.New("mission title is required")
)

// MissionUpdate carries the fields to change; nil fields are left alone.
type MissionUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
	Expanded    *bool   `json:"expanded"`
}

// MissionService owns the current mission tree. Every change builds a new
// root, saves it and only then replaces the held one.
type MissionService struct {
	mu    sync.RWMutex
	root  *models.Mission
	store store.Store
	log   *logrus.Logger
}

// NewMissionService creates a service holding an empty tree.
func NewMissionService(st store.Store, logger *logrus.Logger) *MissionService {
	if logger == nil {
		logger = logrus.New()
	}
	return &MissionService{
		root:  models.NewRootMission(),
		store: st,
		log:   logger,
	}
}

// Load replaces the held tree with the saved one, if any.
func (s *MissionService) Load(ctx context.Context) error {
	root, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load missions: %w", err)
	}
	if root == nil {
		s.log.Debug("no saved missions, starting with an empty tree")
		return nil
	}

	s.mu.Lock()
	s.root = root
	s.mu.Unlock()
	s.log.WithField("missions", len(root.Children)).Debug("loaded missions")
	return nil
}

// Root returns the current root. The returned tree must not be modified.
func (s *MissionService) Root() *models.Mission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.root
}

// Tree returns the current tree in portable form.
func (s *MissionService) Tree() *models.Portable {
	return models.ToPortable(s.Root())
}

// GetMission returns the subtree rooted at id.
func (s *MissionService) GetMission(id string) (*models.Portable, error) {
	m := models.Find(s.Root(), id)
	if m == nil {
		return nil, fmt.Errorf("get %s: %w", id, ErrNotFound)
	}
	return models.ToPortable(m), nil
}

// Keys returns the completed and expanded mission ids.
func (s *MissionService) Keys() models.Keys {
	return models.CollectKeys(s.Root())
}

// AddMission appends a new mission below parentID, or below the root when
// parentID is empty.
func (s *MissionService) AddMission(ctx context.Context, parentID, title, description string) (*models.Mission, error) {
	if title == "" {
		return nil, fmt.Errorf("add mission: %w", ErrEmptyTitle)
	}
	mission := models.NewMission(title)
	mission.Description = description

	err := s.apply(ctx, "add", mission.ID, func(root *models.Mission) (*models.Mission, error) {
		parent := root
		if parentID != "" {
			parent = models.Find(root, parentID)
		}
		if parent == nil {
			return nil, fmt.Errorf("add below %s: %w", parentID, ErrNotFound)
		}
		return models.Rebuild(root, models.Append(parent, mission))
	})
	if err != nil {
		return nil, err
	}
	return mission, nil
}

// UpdateMission edits the fields of one mission.
func (s *MissionService) UpdateMission(ctx context.Context, id string, upd MissionUpdate) (*models.Mission, error) {
	if upd.Title != nil && *upd.Title == "" {
		return nil, fmt.Errorf("update %s: %w", id, ErrEmptyTitle)
	}

	var edited *models.Mission
	err := s.apply(ctx, "update", id, func(root *models.Mission) (*models.Mission, error) {
		current := models.Find(root, id)
		if current == nil {
			return nil, fmt.Errorf("update %s: %w", id, ErrNotFound)
		}
		edited = models.Clone(current)
		if upd.Title != nil {
			edited.Title = *upd.Title
		}
		if upd.Description != nil {
			edited.Description = *upd.Description
		}
		if upd.Completed != nil {
			edited.Completed = *upd.Completed
		}
		if upd.Expanded != nil {
			edited.Expanded = *upd.Expanded
		}
		return models.Rebuild(root, edited)
	})
	if err != nil {
		return nil, err
	}
	return edited, nil
}

// DeleteMission removes a mission and its subtree.
func (s *MissionService) DeleteMission(ctx context.Context, id string) error {
	return s.apply(ctx, "delete", id, func(root *models.Mission) (*models.Mission, error) {
		current := models.Find(root, id)
		if current == nil {
			return nil, fmt.Errorf("delete %s: %w", id, ErrNotFound)
		}
		if current.IsRoot() {
			return nil, fmt.Errorf("delete %s: %w", id, ErrRootMission)
		}
		return models.Rebuild(root, models.Delete(current.Parent(), current))
	})
}

// MoveMission drops the mission dragID before, into or after targetID.
func (s *MissionService) MoveMission(ctx context.Context, dragID, targetID string, pos models.Position) error {
	return s.apply(ctx, "move", dragID, func(root *models.Mission) (*models.Mission, error) {
		drag := models.Find(root, dragID)
		if drag == nil {
			return nil, fmt.Errorf("move %s: %w", dragID, ErrNotFound)
		}
		if drag.IsRoot() {
			return nil, fmt.Errorf("move %s: %w", dragID, ErrRootMission)
		}
		target := models.Find(root, targetID)
		if target == nil {
			return nil, fmt.Errorf("move %s %s %s: %w", dragID, pos, targetID, ErrNotFound)
		}
		return models.Reorder(root, drag, target, pos)
	})
}

// Export returns the current tree as portable JSON.
func (s *MissionService) Export() ([]byte, error) {
	return models.EncodeJSON(s.Root())
}

// Import replaces the whole tree with a portable JSON document.
func (s *MissionService) Import(ctx context.Context, data []byte) error {
	imported, err := models.DecodeJSON(data)
	if err != nil {
		return fmt.Errorf("import missions: %w", err)
	}
	return s.apply(ctx, "import", imported.ID, func(*models.Mission) (*models.Mission, error) {
		return imported, nil
	})
}

// apply runs edit against the held root and swaps in the result once it is saved.
// On any failure the held root stays as it was and its back-references, which a
// discarded edit may have pointed at new missions, are recomputed.
func (s *MissionService) apply(ctx context.Context, op, id string, edit func(root *models.Mission) (*models.Mission, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger := s.log.WithFields(logrus.Fields{"op": op, "id": id})

	next, err := edit(s.root)
	if err != nil {
		models.Relink(s.root)
		logger.WithError(err).Debug("mission edit rejected")
		return err
	}
	if err := s.store.Save(ctx, next); err != nil {
		models.Relink(s.root)
		logger.WithError(err).Warn("failed to save missions")
		return fmt.Errorf("save missions: %w", err)
	}
	s.root = next
	logger.Debug("missions updated")
	return nil
}
