package presenter

import (
	"encoding/json"

	assistantDTO "github.com/meetwiselabs/meetwise/internal/adapter/dto/assistant"
	"github.com/meetwiselabs/meetwise/internal/domain/entities"
)

// ToSummaryResponse converts a Summary entity to SummaryResponse DTO
func ToSummaryResponse(s *entities.Summary) *assistantDTO.SummaryResponse {
	if s == nil {
		return nil
	}

	var items []entities.ActionItem
	if s.ActionItems != nil {
		json.Unmarshal(s.ActionItems, &items)
	}

	actionItems := make([]assistantDTO.ActionItemResponse, 0, len(items))
	for _, item := range items {
		actionItems = append(actionItems, assistantDTO.ActionItemResponse{
			Assignee: item.Assignee,
			Task:     item.Task,
			DueDate:  item.DueDate,
		})
	}

	return &assistantDTO.SummaryResponse{
		ID:          s.ID,
		MeetingID:   s.MeetingID,
		Summary:     s.SummaryText,
		ActionItems: actionItems,
		CreatedAt:   s.CreatedAt,
	}
}

// ToSummaryResponses converts a slice of summaries
func ToSummaryResponses(summaries []*entities.Summary) []*assistantDTO.SummaryResponse {
	out := make([]*assistantDTO.SummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, ToSummaryResponse(s))
	}
	return out
}
