package mapper

import (
	"strings"
	"time"

	"group-scheduler/core/constants"
	"group-scheduler/modules/event/dto"
	"group-scheduler/modules/event/entity"

	"github.com/google/uuid"
)

// ToEventEntity builds a new event from a validated request.
func ToEventEntity(req *dto.EventRequest, groupID, creatorID uuid.UUID) *entity.Event {
	event := &entity.Event{
		GroupID:   groupID,
		CreatorID: creatorID,
	}
	ApplyEventRequest(event, req)
	return event
}

// ApplyEventRequest overwrites the mutable fields of event. Group, creator and
// sign-ups are left alone.
func ApplyEventRequest(event *entity.Event, req *dto.EventRequest) {
	event.Name = strings.TrimSpace(req.Name)
	event.Date, _ = time.Parse(constants.DateLayout, req.Date)
	event.Times = []string{}
	if req.Times != nil {
		event.Times = append(event.Times, (*req.Times)...)
	}
	event.DurationMinutes = req.DurationMinutes
	event.Location = strings.TrimSpace(req.Location)
	event.ImageURL = req.ImageURL
	event.Type = strings.TrimSpace(req.Type)
	event.IsTimeChangePoll = req.IsTimeChangePoll
}

func ToEventResponse(event *entity.Event) *dto.EventResponse {
	times := []string{}
	times = append(times, event.Times...)
	signedUp := event.SignedUpUserIDs
	if signedUp == nil {
		signedUp = []uuid.UUID{}
	}

	return &dto.EventResponse{
		ID:               event.ID,
		GroupID:          event.GroupID,
		CreatorID:        event.CreatorID,
		Name:             event.Name,
		Date:             event.Date.Format(constants.DateLayout),
		Times:            times,
		DurationMinutes:  event.DurationMinutes,
		Location:         event.Location,
		ImageURL:         event.ImageURL,
		Type:             event.Type,
		IsTimeChangePoll: event.IsTimeChangePoll,
		SignedUpUserIDs:  signedUp,
		CreatedAt:        event.CreatedAt,
		UpdatedAt:        event.UpdatedAt,
	}
}

func ToEventResponses(events []entity.Event) []dto.EventResponse {
	out := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		out = append(out, *ToEventResponse(&events[i]))
	}
	return out
}
