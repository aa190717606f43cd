package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"platformone/internal/assistant"
	"platformone/internal/model"
	"platformone/internal/repository"
	apperrors "platformone/pkg/app_errors"
	"platformone/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Broad "who's coming" phrasing forces both attendance lists on top of the
// plan's flags. When the message exclusively names one role through the
// narrower participants/attendees vs volunteers wording, the plan's flags
// stand untouched.
var (
	comingPhraseRe = regexp.MustCompile(`(?i)who('?s|\s+is)\s+(coming|attending|joining|showing\s+up)`)
	participantsRe = regexp.MustCompile(`(?i)\bparticipants?\b|\battendees?\b`)
	volunteersRe   = regexp.MustCompile(`(?i)\bvolunteers?\b`)
)

const (
	candidateLimit = 5
	listLimit      = 50

	defaultLocation            = "TBD"
	defaultMinTier             = model.TierBronze
	defaultParticipantCapacity = 25
	defaultVolunteerCapacity   = 5
)

// AssistantService runs the natural-language event pipeline: request a plan,
// normalize it, resolve the target event and dispatch the action. Stateless
// per call.
type AssistantService interface {
	HandleMessage(ctx context.Context, message, timezone string) (*model.AssistantResponse, error)
}

type AssistantServiceImpl struct {
	planner assistant.Planner
	events  repository.EventRepository
	users   repository.UserRepository
}

func NewAssistantService(planner assistant.Planner, events repository.EventRepository, users repository.UserRepository) AssistantService {
	return &AssistantServiceImpl{
		planner: planner,
		events:  events,
		users:   users,
	}
}

func (s *AssistantServiceImpl) HandleMessage(ctx context.Context, message, timezone string) (*model.AssistantResponse, error) {
	// the planner prompt states the timezone literally, so it must never be blank
	if strings.TrimSpace(timezone) == "" {
		timezone = "UTC"
	}
	loc := resolveLocation(timezone)

	plan, err := s.planner.RequestPlan(ctx, message, timezone, time.Now())
	if err != nil {
		return nil, err
	}

	switch plan.Action {
	case model.ActionList:
		return s.handleList(ctx, plan, loc)
	case model.ActionGet, model.ActionUpdate, model.ActionDelete:
		target, clarification, err := s.resolveTarget(ctx, plan, loc)
		if err != nil {
			return nil, err
		}
		if clarification != nil {
			return clarification, nil
		}
		switch plan.Action {
		case model.ActionGet:
			return s.handleGet(ctx, plan, target, message)
		case model.ActionDelete:
			return s.handleDelete(ctx, target)
		default:
			return s.handleUpdate(ctx, plan, target, loc)
		}
	case model.ActionCreate:
		return s.handleCreate(ctx, plan, loc)
	default:
		return &model.AssistantResponse{
			Action:             model.ActionUnknown,
			NeedsClarification: true,
			AssistantMessage:   "I'm not sure what you want. Try: create, edit, delete, list events, or show event details.",
		}, nil
	}
}

// resolveLocation falls back to UTC for empty or unknown timezone names.
func resolveLocation(timezone string) *time.Location {
	if strings.TrimSpace(timezone) == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		logger.WithComponent("assistant").Warn("unknown timezone, using UTC", zap.String("timezone", timezone))
		return time.UTC
	}
	return loc
}

func (s *AssistantServiceImpl) handleList(ctx context.Context, plan *model.AssistantPlan, loc *time.Location) (*model.AssistantResponse, error) {
	filter := model.EventFilter{
		Keyword: assistant.EnsureString(plan.Query),
		Limit:   listLimit,
	}

	if plan.Range != nil {
		if start := assistant.EnsureDate(plan.Range.StartDate); start != nil {
			if from, err := assistant.StartOfDay(*start, loc); err == nil {
				filter.From = &from
			}
		}
		if end := assistant.EnsureDate(plan.Range.EndDate); end != nil {
			if to, err := assistant.EndOfDay(*end, loc); err == nil {
				filter.To = &to
			}
		}
	}

	events, err := s.events.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	message := "No events found."
	if len(events) > 0 {
		message = fmt.Sprintf("Here are %d events.", len(events))
	}

	return &model.AssistantResponse{
		Action:           model.ActionList,
		Events:           events,
		AssistantMessage: message,
	}, nil
}

// resolveTarget turns the plan's explicit eventId or free-text query into a
// concrete event id. Zero matches and multiple matches both come back as
// clarification responses; a single match is adopted silently.
func (s *AssistantServiceImpl) resolveTarget(ctx context.Context, plan *model.AssistantPlan, loc *time.Location) (*uuid.UUID, *model.AssistantResponse, error) {
	if plan.EventID != nil {
		if id, err := uuid.Parse(strings.TrimSpace(*plan.EventID)); err == nil {
			return &id, nil, nil
		}
	}

	query := assistant.EnsureString(plan.Query)
	if query == nil {
		return nil, s.missingTargetResponse(plan.Action), nil
	}

	var dateHint *string
	if plan.Event != nil {
		dateHint = assistant.EnsureDate(plan.Event.StartDate)
	}

	candidates, err := s.findCandidates(ctx, *query, dateHint, loc)
	if err != nil {
		return nil, nil, err
	}

	if len(candidates) == 0 {
		return nil, &model.AssistantResponse{
			Action:             plan.Action,
			NeedsClarification: true,
			AssistantMessage:   fmt.Sprintf("I couldn't find an event matching %q. Try \"list events\" or include the exact title/date.", *query),
		}, nil
	}

	if len(candidates) > 1 {
		lines := make([]string, 0, len(candidates))
		for _, c := range candidates {
			lines = append(lines, fmt.Sprintf("- %s: %s", c.ID, c.Name))
		}
		return nil, &model.AssistantResponse{
			Action:             plan.Action,
			NeedsClarification: true,
			Candidates:         candidates,
			AssistantMessage:   "I found multiple matches. Reply with the eventId you mean:\n" + strings.Join(lines, "\n"),
		}, nil
	}

	return &candidates[0].ID, nil, nil
}

// findCandidates matches the query against event names and locations,
// optionally pinned to a single calendar day, capped at five in start order.
func (s *AssistantServiceImpl) findCandidates(ctx context.Context, query string, day *string, loc *time.Location) ([]*model.EventSummary, error) {
	filter := model.EventFilter{
		Keyword: &query,
		Limit:   candidateLimit,
	}

	if day != nil {
		if from, err := assistant.StartOfDay(*day, loc); err == nil {
			filter.From = &from
		}
		if to, err := assistant.EndOfDay(*day, loc); err == nil {
			filter.To = &to
		}
	}

	return s.events.Search(ctx, filter)
}

func (s *AssistantServiceImpl) missingTargetResponse(action model.AssistantAction) *model.AssistantResponse {
	var message string
	switch action {
	case model.ActionDelete:
		message = "Which event should I delete? Provide an eventId or include title + date."
	case model.ActionUpdate:
		message = "Which event should I edit? Provide an eventId or include title + date."
	default:
		message = "Which event? Provide an eventId or describe it more specifically (title + date)."
	}
	return &model.AssistantResponse{
		Action:             action,
		NeedsClarification: true,
		AssistantMessage:   message,
	}
}

func (s *AssistantServiceImpl) handleGet(ctx context.Context, plan *model.AssistantPlan, target *uuid.UUID, message string) (*model.AssistantResponse, error) {
	includeParticipants := plan.IncludeParticipants != nil && *plan.IncludeParticipants
	includeVolunteers := plan.IncludeVolunteers != nil && *plan.IncludeVolunteers

	if comingPhraseRe.MatchString(message) {
		mentionsParticipants := participantsRe.MatchString(message)
		mentionsVolunteers := volunteersRe.MatchString(message)
		participantsOnly := mentionsParticipants && !mentionsVolunteers
		volunteersOnly := mentionsVolunteers && !mentionsParticipants
		if !participantsOnly && !volunteersOnly {
			includeParticipants = true
			includeVolunteers = true
		}
	}

	if !includeParticipants && !includeVolunteers {
		event, err := s.events.FindByID(ctx, *target)
		if err != nil {
			return nil, err
		}
		return &model.AssistantResponse{
			Action:           model.ActionGet,
			Event:            &model.EventWithPeople{Event: *event},
			AssistantMessage: "Here are the event details.",
		}, nil
	}

	event, err := s.events.FindByIDWithPeople(ctx, *target)
	if err != nil {
		return nil, err
	}

	return &model.AssistantResponse{
		Action:           model.ActionGet,
		Event:            event,
		AssistantMessage: assistant.FormatPeople(event, includeParticipants, includeVolunteers),
	}, nil
}

func (s *AssistantServiceImpl) handleDelete(ctx context.Context, target *uuid.UUID) (*model.AssistantResponse, error) {
	if err := s.events.Delete(ctx, *target); err != nil {
		return nil, err
	}

	id := target.String()
	return &model.AssistantResponse{
		Action:           model.ActionDelete,
		Deleted:          true,
		EventID:          &id,
		AssistantMessage: "Deleted the event. Refresh the browser to see the updated calendar.",
	}, nil
}

func (s *AssistantServiceImpl) handleCreate(ctx context.Context, plan *model.AssistantPlan, loc *time.Location) (*model.AssistantResponse, error) {
	if plan.Event == nil {
		return &model.AssistantResponse{
			Action:             model.ActionCreate,
			NeedsClarification: true,
			AssistantMessage:   "Please include the event title, start/end date and time, and optionally location.",
		}, nil
	}

	normalized := assistant.NormalizeEvent(plan.Event)
	missing := assistant.MissingForCreate(normalized)
	if len(missing) > 0 {
		return &model.AssistantResponse{
			Action:             model.ActionCreate,
			NeedsClarification: true,
			MissingFields:      missing,
			Details:            &normalized,
			AssistantMessage:   fmt.Sprintf("I can create the event once I have: %s.", strings.Join(missing, ", ")),
		}, nil
	}

	start, end, clarification := buildEventWindow(model.ActionCreate, normalized, loc)
	if clarification != nil {
		return clarification, nil
	}

	staff, err := s.resolveStaffCreator(ctx)
	if err != nil {
		return nil, err
	}

	event := &model.Event{
		ID:                  uuid.New(),
		Name:                *normalized.Title,
		Start:               start,
		End:                 end,
		Location:            defaultLocation,
		MinTier:             defaultMinTier,
		ParticipantCapacity: defaultParticipantCapacity,
		VolunteerCapacity:   defaultVolunteerCapacity,
		CreatedByID:         staff.ID,
	}
	if normalized.Location != nil {
		event.Location = *normalized.Location
	}
	if normalized.MinTier != nil {
		event.MinTier = *normalized.MinTier
	}
	if normalized.ParticipantCapacity != nil {
		event.ParticipantCapacity = *normalized.ParticipantCapacity
	}
	if normalized.VolunteerCapacity != nil {
		event.VolunteerCapacity = *normalized.VolunteerCapacity
	}

	created, err := s.events.Create(ctx, event)
	if err != nil {
		return nil, err
	}

	return &model.AssistantResponse{
		Action:           model.ActionCreate,
		Created:          true,
		Event:            &model.EventWithPeople{Event: *created},
		Details:          &normalized,
		AssistantMessage: fmt.Sprintf("Created %q.", created.Name),
	}, nil
}

// resolveStaffCreator reuses any existing staff account and mints one when the
// database has none. Stand-in for a real authenticated staff identity.
func (s *AssistantServiceImpl) resolveStaffCreator(ctx context.Context) (*model.User, error) {
	staff, err := s.users.FindFirstByRole(ctx, model.RoleStaff)
	if err == nil {
		return staff, nil
	}
	if err != apperrors.ErrUserNotFound {
		return nil, err
	}

	minted := &model.User{
		ID:    uuid.New(),
		Name:  "Staff Admin",
		Email: fmt.Sprintf("staff-%d@platformone.local", time.Now().UnixMilli()),
		Role:  model.RoleStaff,
		Tier:  model.TierBronze,
	}
	return s.users.Create(ctx, minted)
}

func (s *AssistantServiceImpl) handleUpdate(ctx context.Context, plan *model.AssistantPlan, target *uuid.UUID, loc *time.Location) (*model.AssistantResponse, error) {
	if plan.Event == nil {
		return &model.AssistantResponse{
			Action:             model.ActionUpdate,
			NeedsClarification: true,
			AssistantMessage:   "Tell me what you want to change (time/date/location/capacity/tier).",
		}, nil
	}

	normalized := assistant.NormalizeEvent(plan.Event)

	params := model.UpdateEventParams{
		Name:                normalized.Title,
		Location:            normalized.Location,
		MinTier:             normalized.MinTier,
		ParticipantCapacity: normalized.ParticipantCapacity,
		VolunteerCapacity:   normalized.VolunteerCapacity,
	}

	touchedTime := normalized.StartDate != nil || normalized.StartTime != nil ||
		normalized.EndDate != nil || normalized.EndTime != nil

	if touchedTime {
		// partial reschedules are ambiguous: all four fields or none
		missing := []string{}
		if normalized.StartDate == nil {
			missing = append(missing, "startDate")
		}
		if normalized.StartTime == nil {
			missing = append(missing, "startTime")
		}
		if normalized.EndDate == nil {
			missing = append(missing, "endDate")
		}
		if normalized.EndTime == nil {
			missing = append(missing, "endTime")
		}
		if len(missing) > 0 {
			return &model.AssistantResponse{
				Action:             model.ActionUpdate,
				NeedsClarification: true,
				MissingFields:      missing,
				Details:            &normalized,
				AssistantMessage:   fmt.Sprintf("To update date/time, I still need: %s.", strings.Join(missing, ", ")),
			}, nil
		}

		start, end, clarification := buildEventWindow(model.ActionUpdate, normalized, loc)
		if clarification != nil {
			return clarification, nil
		}
		params.Start = &start
		params.End = &end
	}

	if params.IsEmpty() {
		return &model.AssistantResponse{
			Action:             model.ActionUpdate,
			NeedsClarification: true,
			AssistantMessage:   "I couldn't find anything to update. Tell me what field to change.",
		}, nil
	}

	updated, err := s.events.Update(ctx, *target, params)
	if err != nil {
		return nil, err
	}

	return &model.AssistantResponse{
		Action:           model.ActionUpdate,
		Updated:          true,
		Event:            &model.EventWithPeople{Event: *updated},
		AssistantMessage: fmt.Sprintf("Updated %q.", updated.Name),
	}, nil
}

// buildEventWindow combines the four temporal fields into start/end instants in
// the caller's location. Invalid combinations and non-positive windows come
// back as clarification responses, never as hard failures.
func buildEventWindow(action model.AssistantAction, n model.NormalizedEvent, loc *time.Location) (time.Time, time.Time, *model.AssistantResponse) {
	start, startErr := assistant.BuildLocalDate(*n.StartDate, *n.StartTime, loc)
	end, endErr := assistant.BuildLocalDate(*n.EndDate, *n.EndTime, loc)

	if startErr != nil || endErr != nil {
		return time.Time{}, time.Time{}, &model.AssistantResponse{
			Action:             action,
			NeedsClarification: true,
			AssistantMessage:   "The date/time format looks invalid.",
		}
	}

	if !end.After(start) {
		return time.Time{}, time.Time{}, &model.AssistantResponse{
			Action:             action,
			NeedsClarification: true,
			AssistantMessage:   "End time must be after the start time.",
		}
	}

	return start, end, nil
}
