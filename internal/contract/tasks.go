package contract

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/hellaspet/backend-insurance/internal/rating"
)

// TaskRegenerate is the asynq task type for contract document regeneration.
const TaskRegenerate = "contract:regenerate"

// QueueContracts is the asynq queue carrying document work.
const QueueContracts = "contracts"

// RegeneratePayload identifies the application and pet slot to regenerate.
type RegeneratePayload struct {
	ApplicationID uuid.UUID      `json:"applicationId"`
	Slot          rating.PetSlot `json:"slot"`
}

// NewRegenerateTask builds the asynq task for one application slot.
func NewRegenerateTask(appID uuid.UUID, slot rating.PetSlot) (*asynq.Task, error) {
	if slot == "" {
		slot = rating.SlotPrimary
	}
	payload, err := json.Marshal(RegeneratePayload{ApplicationID: appID, Slot: slot})
	if err != nil {
		return nil, fmt.Errorf("contract: marshal regenerate payload: %w", err)
	}
	return asynq.NewTask(TaskRegenerate, payload, asynq.Queue(QueueContracts), asynq.MaxRetry(5)), nil
}

// Enqueuer bridges the application service to asynq.
type Enqueuer struct {
	Client *asynq.Client
}

// EnqueueRegenerate schedules a regeneration task for the slot.
func (e Enqueuer) EnqueueRegenerate(ctx context.Context, appID uuid.UUID, slot rating.PetSlot) error {
	if e.Client == nil {
		return fmt.Errorf("contract: asynq client not configured")
	}
	task, err := NewRegenerateTask(appID, slot)
	if err != nil {
		return err
	}
	if _, err := e.Client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("contract: enqueue regenerate: %w", err)
	}
	return nil
}
