package presenter

import (
	"encoding/json"

	meetingDTO "github.com/meetwiselabs/meetwise/internal/adapter/dto/meeting"
	"github.com/meetwiselabs/meetwise/internal/domain/entities"
	"github.com/meetwiselabs/meetwise/internal/usecase/meeting"
)

// ToFlagResponse converts a MeetingFlag entity to FlagResponse DTO
func ToFlagResponse(f *entities.MeetingFlag) *meetingDTO.FlagResponse {
	if f == nil {
		return nil
	}

	var suggestions []string
	if f.Suggestions != nil {
		json.Unmarshal(f.Suggestions, &suggestions)
	}

	return &meetingDTO.FlagResponse{
		ID:               f.ID,
		MeetingID:        f.MeetingID,
		IssueType:        string(f.IssueType),
		Description:      f.Description,
		Severity:         string(f.Severity),
		Suggestions:      suggestions,
		EstimatedSavings: f.EstimatedSavings,
		IsResolved:       f.IsResolved,
		ResolvedAt:       f.ResolvedAt,
		AutoDetected:     f.AutoDetected,
		CreatedAt:        f.CreatedAt,
	}
}

// ToMeetingResponse converts a Meeting entity to MeetingResponse DTO
func ToMeetingResponse(m *entities.Meeting) *meetingDTO.MeetingResponse {
	if m == nil {
		return nil
	}

	attendees := make([]meetingDTO.AttendeeResponse, 0, len(m.Attendees))
	for _, a := range m.Attendees {
		attendees = append(attendees, meetingDTO.AttendeeResponse{
			Email:    a.Email,
			Name:     a.Name,
			Status:   a.ResponseStatus,
			Optional: a.IsOptional,
		})
	}

	flags := make([]meetingDTO.FlagResponse, 0, len(m.Flags))
	for i := range m.Flags {
		flags = append(flags, *ToFlagResponse(&m.Flags[i]))
	}

	return &meetingDTO.MeetingResponse{
		ID:              m.ID,
		ExternalID:      m.ExternalID,
		Title:           m.Title,
		Description:     m.Description,
		StartTime:       m.StartTime,
		EndTime:         m.EndTime,
		DurationMinutes: m.DurationMinutes(),
		IsRecurring:     m.IsRecurring,
		Organizer:       m.Organizer,
		HasAgenda:       m.HasAgenda,
		Status:          string(m.Status),
		InviteeCount:    m.InviteeCount,
		AttendeeCount:   m.AttendeeCount,
		Attendees:       attendees,
		Flags:           flags,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// ToMeetingResponses converts a slice of meetings
func ToMeetingResponses(meetings []*entities.Meeting) []*meetingDTO.MeetingResponse {
	out := make([]*meetingDTO.MeetingResponse, 0, len(meetings))
	for _, m := range meetings {
		out = append(out, ToMeetingResponse(m))
	}
	return out
}

// ToAnalysisResponse converts a quick-analysis result
func ToAnalysisResponse(result *meeting.AnalysisResult) *meetingDTO.AnalysisResponse {
	if result == nil {
		return nil
	}
	return &meetingDTO.AnalysisResponse{
		FlaggedCount:    result.FlaggedCount,
		FlaggedMeetings: ToMeetingResponses(result.FlaggedMeetings),
	}
}
