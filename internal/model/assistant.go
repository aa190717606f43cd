package model

// AssistantAction is the intent decoded from a natural-language staff request.
type AssistantAction string

const (
	ActionCreate  AssistantAction = "create"
	ActionUpdate  AssistantAction = "update"
	ActionDelete  AssistantAction = "delete"
	ActionGet     AssistantAction = "get"
	ActionList    AssistantAction = "list"
	ActionUnknown AssistantAction = "unknown"
)

func (a AssistantAction) IsValid() bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDelete, ActionGet, ActionList, ActionUnknown:
		return true
	}
	return false
}

// ExtractedEvent is the event description as the language model returned it.
// Every field is nullable and untrusted; capacities may arrive as numbers or
// strings. It must pass through assistant.NormalizeEvent before any use.
type ExtractedEvent struct {
	Title               *string `json:"title"`
	StartDate           *string `json:"startDate"`
	StartTime           *string `json:"startTime"`
	EndDate             *string `json:"endDate"`
	EndTime             *string `json:"endTime"`
	Location            *string `json:"location"`
	ParticipantCapacity any     `json:"participantCapacity"`
	VolunteerCapacity   any     `json:"volunteerCapacity"`
	MinTier             *string `json:"minTier"`
}

// NormalizedEvent holds the validated, canonical form of an ExtractedEvent.
// Each field is either usable as-is or nil; nothing partially valid survives.
type NormalizedEvent struct {
	Title               *string `json:"title"`
	StartDate           *string `json:"startDate"`
	StartTime           *string `json:"startTime"`
	EndDate             *string `json:"endDate"`
	EndTime             *string `json:"endTime"`
	Location            *string `json:"location"`
	ParticipantCapacity *int    `json:"participantCapacity"`
	VolunteerCapacity   *int    `json:"volunteerCapacity"`
	MinTier             *Tier   `json:"minTier"`
}

type DateRange struct {
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
}

// AssistantPlan is the structured intent decoded from the model's JSON reply.
// Action is always present; everything else is advisory and re-validated downstream.
type AssistantPlan struct {
	Action              AssistantAction `json:"action"`
	EventID             *string         `json:"eventId"`
	Query               *string         `json:"query"`
	Event               *ExtractedEvent `json:"event"`
	IncludeParticipants *bool           `json:"includeParticipants"`
	IncludeVolunteers   *bool           `json:"includeVolunteers"`
	Range               *DateRange      `json:"range"`
}

// AssistantResponse is the uniform envelope returned by every dispatcher branch.
// NeedsClarification marks branches that performed no mutation and are asking the
// caller for more input.
type AssistantResponse struct {
	Action             AssistantAction  `json:"action"`
	NeedsClarification bool             `json:"needsClarification,omitempty"`
	AssistantMessage   string           `json:"assistantMessage"`
	Event              *EventWithPeople `json:"event,omitempty"`
	Events             []*EventSummary  `json:"events,omitempty"`
	Candidates         []*EventSummary  `json:"candidates,omitempty"`
	MissingFields      []string         `json:"missingFields,omitempty"`
	Details            *NormalizedEvent `json:"details,omitempty"`
	Created            bool             `json:"created,omitempty"`
	Updated            bool             `json:"updated,omitempty"`
	Deleted            bool             `json:"deleted,omitempty"`
	EventID            *string          `json:"eventId,omitempty"`
}
