package service

import (
	"time"

	"github.com/portfolio/backend/internal/model"
)

const recentWindow = 7 * 24 * time.Hour

// ComputeStats counts messages for the admin dashboard. ThisWeek includes
// messages submitted strictly after now minus seven days; messages whose
// timestamp is still pending are not counted there.
func ComputeStats(msgs []*model.Message, now time.Time) model.Stats {
	weekAgo := now.Add(-recentWindow)
	stats := model.Stats{Total: len(msgs)}
	for _, m := range msgs {
		switch m.Status {
		case model.StatusUnread:
			stats.Unread++
		case model.StatusRead:
			stats.Read++
		}
		if m.SubmittedAt != nil && m.SubmittedAt.After(weekAgo) {
			stats.ThisWeek++
		}
	}
	return stats
}
