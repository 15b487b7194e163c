package domain

// DashboardStats aggregates a tenant's headline numbers for the
// dashboard view. Computed by the store, cached with a longer TTL than
// ordinary reads.
type DashboardStats struct {
	Players        int `json:"players"`
	OpenRequests   int `json:"openRequests"`
	UpcomingTrials int `json:"upcomingTrials"`
	EventsThisWeek int `json:"eventsThisWeek"`
}
