package service

import (
	"context"

	"platformone/internal/model"
	"platformone/internal/repository"
	apperrors "platformone/pkg/app_errors"

	"github.com/google/uuid"
)

// EventService backs the staff-facing event CRUD API. Unlike the assistant
// flow, Create never mints a staff account; it fails when none exists.
type EventService interface {
	List(ctx context.Context) ([]*model.EventWithRoleCounts, error)
	// GetByID loads the event with its questions (filtered to viewerRole when
	// set) and the user ids holding bookings.
	GetByID(ctx context.Context, id uuid.UUID, viewerRole *model.Role) (*model.EventDetail, error)
	Create(ctx context.Context, params model.CreateEventParams) (*model.EventDetail, error)
	Replace(ctx context.Context, id uuid.UUID, params model.ReplaceEventParams) (*model.EventDetail, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Attendees(ctx context.Context, eventID uuid.UUID) ([]*model.Attendee, error)
}

type EventServiceImpl struct {
	events    repository.EventRepository
	users     repository.UserRepository
	bookings  repository.BookingRepository
	questions repository.QuestionRepository
}

func NewEventService(
	events repository.EventRepository,
	users repository.UserRepository,
	bookings repository.BookingRepository,
	questions repository.QuestionRepository,
) EventService {
	return &EventServiceImpl{
		events:    events,
		users:     users,
		bookings:  bookings,
		questions: questions,
	}
}

func (s *EventServiceImpl) List(ctx context.Context) ([]*model.EventWithRoleCounts, error) {
	return s.events.ListWithBookingRoles(ctx)
}

func (s *EventServiceImpl) GetByID(ctx context.Context, id uuid.UUID, viewerRole *model.Role) (*model.EventDetail, error) {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	questions, err := s.questions.ListByEventID(ctx, id, viewerRole)
	if err != nil {
		return nil, err
	}

	bookings, err := s.bookings.ListByEventIDWithUsers(ctx, id)
	if err != nil {
		return nil, err
	}

	refs := make([]model.BookingUserRef, 0, len(bookings))
	for _, b := range bookings {
		refs = append(refs, model.BookingUserRef{UserID: b.UserID})
	}

	return &model.EventDetail{
		Event:     *event,
		Questions: questions,
		Bookings:  refs,
	}, nil
}

func (s *EventServiceImpl) Create(ctx context.Context, params model.CreateEventParams) (*model.EventDetail, error) {
	staff, err := s.users.FindFirstByRole(ctx, model.RoleStaff)
	if err != nil {
		if err == apperrors.ErrUserNotFound {
			return nil, apperrors.ErrNoStaffUser
		}
		return nil, err
	}

	event := &model.Event{
		ID:                  uuid.New(),
		Name:                params.Name,
		Start:               params.Start,
		End:                 params.End,
		Location:            params.Location,
		MinTier:             params.MinTier,
		ParticipantCapacity: params.ParticipantCapacity,
		VolunteerCapacity:   params.VolunteerCapacity,
		CreatedByID:         staff.ID,
	}

	created, err := s.events.Create(ctx, event)
	if err != nil {
		return nil, err
	}

	questions := make([]*model.Question, 0)
	if len(params.Questions) > 0 {
		questions, err = s.questions.CreateMany(ctx, created.ID, params.Questions)
		if err != nil {
			return nil, err
		}
	}

	return &model.EventDetail{
		Event:     *created,
		Questions: questions,
		Bookings:  make([]model.BookingUserRef, 0),
	}, nil
}

func (s *EventServiceImpl) Replace(ctx context.Context, id uuid.UUID, params model.ReplaceEventParams) (*model.EventDetail, error) {
	updateParams := model.UpdateEventParams{
		Name:                &params.Name,
		Location:            &params.Location,
		MinTier:             &params.MinTier,
		ParticipantCapacity: &params.ParticipantCapacity,
		VolunteerCapacity:   &params.VolunteerCapacity,
		Start:               &params.Start,
		End:                 &params.End,
	}

	updated, err := s.events.Update(ctx, id, updateParams)
	if err != nil {
		return nil, err
	}

	var questions []*model.Question
	if params.Questions != nil {
		questions, err = s.questions.ReplaceForEvent(ctx, id, *params.Questions)
	} else {
		questions, err = s.questions.ListByEventID(ctx, id, nil)
	}
	if err != nil {
		return nil, err
	}

	bookings, err := s.bookings.ListByEventIDWithUsers(ctx, id)
	if err != nil {
		return nil, err
	}
	refs := make([]model.BookingUserRef, 0, len(bookings))
	for _, b := range bookings {
		refs = append(refs, model.BookingUserRef{UserID: b.UserID})
	}

	return &model.EventDetail{
		Event:     *updated,
		Questions: questions,
		Bookings:  refs,
	}, nil
}

func (s *EventServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return s.events.Delete(ctx, id)
}

func (s *EventServiceImpl) Attendees(ctx context.Context, eventID uuid.UUID) ([]*model.Attendee, error) {
	// 404 for unknown events rather than an empty list
	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		return nil, err
	}

	bookings, err := s.bookings.ListByEventIDWithUsers(ctx, eventID)
	if err != nil {
		return nil, err
	}

	attendees := make([]*model.Attendee, 0, len(bookings))
	for _, b := range bookings {
		if b.User == nil {
			continue
		}
		attendees = append(attendees, &model.Attendee{
			ID:     b.ID,
			UserID: b.UserID,
			Name:   b.User.Name,
			Email:  b.User.Email,
			Role:   b.RoleAtBooking,
			Tier:   b.User.Tier,
		})
	}
	return attendees, nil
}
