package projection

import "github.com/adrift-app/adrift/internal/domain"

// UserStats is one user's lifetime counters, recomputed from scratch on
// every query. This recomputation is the ground truth the write-path
// incremental counter is audited against.
type UserStats struct {
	Created  int `json:"created"`
	Found    int `json:"found"`
	Retossed int `json:"retossed"`
}

// ComputeStats attributes every event in the snapshot to its acting user
// and accumulates the target user's created/found/retossed counters.
//
// A cast_away counts as created only when it is both the globally first
// cast-away for the bottle and the first one authored by this user; every
// other cast-away by the user is a retoss. Global chronology wins: only the
// very first cast-away of a bottle, system-wide, is ever a creation. Every
// found event by the user counts as found, with no distinction between
// marking found and replying.
func ComputeStats(events []domain.BottleEvent, username string) UserStats {
	var stats UserStats
	if username == "" {
		return stats
	}

	for _, bottleEvents := range groupEventsByBottle(sortedEventsAscending(events)) {
		castIndex := 0
		userCastSeen := false
		for _, e := range bottleEvents {
			switch e.EventType {
			case domain.EventTypeCastAway:
				mine := e.TosserName != nil && *e.TosserName == username
				if mine {
					if castIndex == 0 && !userCastSeen {
						stats.Created++
					} else {
						stats.Retossed++
					}
					userCastSeen = true
				}
				castIndex++
			case domain.EventTypeFound:
				if e.FinderName != nil && *e.FinderName == username {
					stats.Found++
				}
			}
		}
	}

	return stats
}
