package assets

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/DaniilChichenkov/abik/internal/models"
)

// Reconcile diffs the live category ids of one kind against the directories
// under that kind's root. Directories missing for live categories are
// recreated; directories with no matching category are logged and left in
// place, so a bad database read can never wipe real images.
func (m *Manager) Reconcile(kind models.CategoryKind, ids []uuid.UUID) error {
	root := m.Root(kind)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("failed to create asset root %s: %w", root, err)
	}

	live := make(map[string]bool, len(ids))
	for _, id := range ids {
		live[id.String()] = true
		if err := m.EnsureCategoryDir(kind, id.String()); err != nil {
			return fmt.Errorf("failed to restore directory for category %s: %w", id, err)
		}
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("failed to list asset root %s: %w", root, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if !live[entry.Name()] {
			logrus.WithFields(logrus.Fields{
				"kind":      kind,
				"directory": entry.Name(),
			}).Warn("Orphaned asset directory has no matching category")
		}
	}

	return nil
}
