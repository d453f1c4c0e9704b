package logging

import "github.com/ahmetcoskunkizilkaya/assessment-backend/internal/models"

// snapshot returns a copy of the records buffered for the next flush.
func (h *PGHandler) snapshot() []models.SystemLog {
	root := h.root()
	root.mu.Lock()
	defer root.mu.Unlock()
	out := make([]models.SystemLog, len(root.buffer))
	copy(out, root.buffer)
	return out
}
