package cache

import (
	"context"
	"errors"

	"group-scheduler/core/cache"
	"group-scheduler/core/constants"
	"group-scheduler/modules/event/dto"

	"github.com/google/uuid"
)

// EventCacheInterface holds the live event list of each group under a single
// key per group. Entries have no expiry and are dropped by Invalidate.
type EventCacheInterface interface {
	GetGroupEvents(ctx context.Context, groupID uuid.UUID) ([]dto.EventResponse, bool, error)
	SetGroupEvents(ctx context.Context, groupID uuid.UUID, events []dto.EventResponse) error
	Invalidate(ctx context.Context, groupID uuid.UUID) error
}

type EventCache struct {
	cache cache.Cache
}

func NewEventCache(c cache.Cache) *EventCache {
	return &EventCache{cache: c}
}

func groupKey(groupID uuid.UUID) string {
	return constants.RedisKeyEventsByGroup + groupID.String()
}

func (c *EventCache) GetGroupEvents(ctx context.Context, groupID uuid.UUID) ([]dto.EventResponse, bool, error) {
	var events []dto.EventResponse
	err := c.cache.GetJSON(ctx, groupKey(groupID), &events)
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if events == nil {
		events = []dto.EventResponse{}
	}
	return events, true, nil
}

func (c *EventCache) SetGroupEvents(ctx context.Context, groupID uuid.UUID, events []dto.EventResponse) error {
	if events == nil {
		events = []dto.EventResponse{}
	}
	return c.cache.SetJSON(ctx, groupKey(groupID), events, 0)
}

func (c *EventCache) Invalidate(ctx context.Context, groupID uuid.UUID) error {
	return c.cache.Del(ctx, groupKey(groupID))
}
