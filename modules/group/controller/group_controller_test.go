package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"group-scheduler/core/constants"
	"group-scheduler/core/errors"
	"group-scheduler/core/params"
	"group-scheduler/core/utils"
	calendardto "group-scheduler/modules/calendar/dto"
	"group-scheduler/modules/group/dto"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGroupService struct {
	group     *dto.GroupResponse
	createdBy uuid.UUID
	leaveErr  *errors.AppError
}

func (s *stubGroupService) CreateGroup(_ context.Context, req *dto.CreateGroupRequest, creatorID uuid.UUID) (*dto.GroupResponse, *errors.AppError) {
	s.createdBy = creatorID
	return &dto.GroupResponse{ID: uuid.New(), Name: req.Name, CreatorID: creatorID, MemberIDs: []uuid.UUID{creatorID}}, nil
}

func (s *stubGroupService) UpdateGroup(context.Context, uuid.UUID, *dto.UpdateGroupRequest, uuid.UUID) (*dto.GroupResponse, *errors.AppError) {
	return s.group, nil
}

func (s *stubGroupService) GetGroupByID(_ context.Context, id uuid.UUID) (*dto.GroupResponse, *errors.AppError) {
	if s.group == nil || s.group.ID != id {
		return nil, errors.NewAppError(errors.ErrNotFound, "group not found", nil)
	}
	return s.group, nil
}

func (s *stubGroupService) GetGroupBySlug(context.Context, string) (*dto.GroupResponse, *errors.AppError) {
	return s.group, nil
}

func (s *stubGroupService) GetGroups(context.Context, params.QueryParams) (*dto.PaginatedGroupResponse, *errors.AppError) {
	return &dto.PaginatedGroupResponse{}, nil
}

func (s *stubGroupService) GetMembers(context.Context, uuid.UUID) ([]dto.MemberResponse, *errors.AppError) {
	return nil, nil
}

func (s *stubGroupService) Join(context.Context, uuid.UUID, uuid.UUID) *errors.AppError { return nil }

func (s *stubGroupService) Leave(context.Context, uuid.UUID, uuid.UUID) *errors.AppError {
	return s.leaveErr
}

func (s *stubGroupService) Expel(context.Context, uuid.UUID, uuid.UUID, uuid.UUID) *errors.AppError {
	return nil
}

func (s *stubGroupService) IsMember(context.Context, uuid.UUID, uuid.UUID) (bool, *errors.AppError) {
	return true, nil
}

func (s *stubGroupService) GetCreatorID(context.Context, uuid.UUID) (uuid.UUID, *errors.AppError) {
	return s.group.CreatorID, nil
}

func (s *stubGroupService) GetMemberIDs(context.Context, uuid.UUID) ([]uuid.UUID, *errors.AppError) {
	return s.group.MemberIDs, nil
}

func (s *stubGroupService) UserExists(context.Context, uuid.UUID) (bool, *errors.AppError) {
	return true, nil
}

type stubAggregator struct{}

func (stubAggregator) AggregateForGroup(context.Context, uuid.UUID) (*calendardto.CalendarResponse, *errors.AppError) {
	return &calendardto.CalendarResponse{
		RecurringBlocks: []calendardto.RecurringBlockDto{{Weekday: "MONDAY", StartTime: "09:00", EndTime: "10:00"}},
	}, nil
}

func (stubAggregator) ExportGroupICS(context.Context, uuid.UUID) ([]byte, *errors.AppError) {
	return []byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"), nil
}

func newRequestContext(method, body string, caller uuid.UUID) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	if caller != uuid.Nil {
		c.Set(constants.ContextTokenData, &utils.TokenClaims{UserID: caller})
	}
	return c, rec
}

func TestCreateGroupRequiresCreator(t *testing.T) {
	ctrl := NewGroupController(&stubGroupService{}, stubAggregator{})
	c, rec := newRequestContext(http.MethodPost, `{"name":"Hikers","description":"weekend trips"}`, uuid.Nil)

	require.NoError(t, ctrl.CreateGroup(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateGroupPrefersTokenIdentity(t *testing.T) {
	caller := uuid.New()
	other := uuid.New()
	svc := &stubGroupService{}
	ctrl := NewGroupController(svc, stubAggregator{})
	c, rec := newRequestContext(http.MethodPost, `{"name":"Hikers","description":"weekend trips","creator_id":"`+other.String()+`"}`, caller)

	require.NoError(t, ctrl.CreateGroup(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, caller, svc.createdBy)
}

func TestCreateGroupFallsBackToBodyCreator(t *testing.T) {
	creator := uuid.New()
	svc := &stubGroupService{}
	ctrl := NewGroupController(svc, stubAggregator{})
	c, rec := newRequestContext(http.MethodPost, `{"name":"Hikers","description":"weekend trips","creator_id":"`+creator.String()+`"}`, uuid.Nil)

	require.NoError(t, ctrl.CreateGroup(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, creator, svc.createdBy)
}

func TestCreateGroupValidation(t *testing.T) {
	ctrl := NewGroupController(&stubGroupService{}, stubAggregator{})
	c, rec := newRequestContext(http.MethodPost, `{"name":"","description":""}`, uuid.New())

	require.NoError(t, ctrl.CreateGroup(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"name"`)
}

func TestGetGroupByIDIncludesAggregatedCalendar(t *testing.T) {
	group := &dto.GroupResponse{ID: uuid.New(), Name: "Hikers"}
	ctrl := NewGroupController(&stubGroupService{group: group}, stubAggregator{})
	c, rec := newRequestContext(http.MethodGet, "", uuid.Nil)
	c.SetParamNames("id")
	c.SetParamValues(group.ID.String())

	require.NoError(t, ctrl.GetGroupByID(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data dto.GroupDetailResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, group.ID, body.Data.ID)
	require.NotNil(t, body.Data.Calendar)
	assert.Nil(t, body.Data.Calendar.ID)
	assert.Len(t, body.Data.Calendar.RecurringBlocks, 1)
}

func TestLeaveAsCreatorIsForbidden(t *testing.T) {
	group := &dto.GroupResponse{ID: uuid.New()}
	svc := &stubGroupService{group: group, leaveErr: errors.NewAppError(errors.ErrCreatorCannotLeave, "creator cannot leave the group", nil)}
	ctrl := NewGroupController(svc, stubAggregator{})
	c, rec := newRequestContext(http.MethodPost, "", uuid.New())
	c.SetParamNames("id")
	c.SetParamValues(group.ID.String())

	require.NoError(t, ctrl.Leave(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), string(errors.ErrCreatorCannotLeave))
}

func TestExportCalendarContentType(t *testing.T) {
	ctrl := NewGroupController(&stubGroupService{}, stubAggregator{})
	c, rec := newRequestContext(http.MethodGet, "", uuid.Nil)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	require.NoError(t, ctrl.ExportCalendar(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), "text/calendar"))
	assert.Contains(t, rec.Body.String(), "BEGIN:VCALENDAR")
}
