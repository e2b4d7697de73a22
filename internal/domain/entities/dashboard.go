package entities

// TopIssue is an issue type ranked by how often it was flagged in the
// selected range
type TopIssue struct {
	Type   IssueType `json:"type"`
	Count  int       `json:"count"`
	Impact Severity  `json:"impact"`
}

// WeeklyTrend carries per-week series aligned by index, labels formatted
// M/D
type WeeklyTrend struct {
	Labels       []string  `json:"labels"`
	MeetingHours []float64 `json:"meeting_hours"`
	HoursSaved   []float64 `json:"hours_saved"`
	Costs        []float64 `json:"costs,omitempty"`
	Flagged      []int     `json:"meetings_flagged,omitempty"`
}

// DashboardMetrics aggregates a user's meeting load, cost, and efficiency
// over a time range
type DashboardMetrics struct {
	TotalMeetings          int         `json:"total_meetings"`
	TotalHours             float64     `json:"total_hours"`
	TotalCost              float64     `json:"total_cost"`
	HoursSaved             float64     `json:"hours_saved"`
	MoneySaved             float64     `json:"money_saved"`
	EfficiencyScore        int         `json:"efficiency_score"`
	AverageMeetingDuration float64     `json:"average_meeting_duration"`
	AverageAttendees       float64     `json:"average_attendees"`
	MeetingsWithAgenda     int         `json:"meetings_with_agenda"`
	MeetingUtilization     float64     `json:"meeting_utilization"`
	FocusTimeCreated       float64     `json:"focus_time_created"`
	TopIssues              []TopIssue  `json:"top_issues"`
	WeeklyTrend            WeeklyTrend `json:"weekly_trend"`
	MeetingsByDay          [7]float64  `json:"meetings_by_day"`
}
