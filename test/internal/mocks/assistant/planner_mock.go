package assistant

import (
	"context"
	"time"

	"platformone/internal/model"

	"github.com/stretchr/testify/mock"
)

type PlannerMock struct {
	mock.Mock
}

func NewPlannerMock() *PlannerMock {
	return &PlannerMock{}
}

func (m *PlannerMock) RequestPlan(ctx context.Context, message, timezone string, reference time.Time) (*model.AssistantPlan, error) {
	args := m.Called(ctx, message, timezone, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AssistantPlan), args.Error(1)
}
