package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskRescoreProspect = "scoring.rescore"

const TaskAdjustWeights = "scoring.adjust_weights"

type RescoreProspectPayload struct {
	ProspectID string `json:"prospectId"`
	UserID     string `json:"userId"`
	Version    int    `json:"version"`
	Reason     string `json:"reason,omitempty"` // "signal_captured", "outcome_recorded", "manual"
}

type AdjustWeightsPayload struct {
	ProspectID string `json:"prospectId"`
	UserID     string `json:"userId"`
	Outcome    string `json:"outcome"`
}

func NewRescoreProspectTask(payload RescoreProspectPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskRescoreProspect, data), nil
}

func ParseRescoreProspectPayload(task *asynq.Task) (RescoreProspectPayload, error) {
	var payload RescoreProspectPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return RescoreProspectPayload{}, err
	}
	return payload, nil
}

func NewAdjustWeightsTask(payload AdjustWeightsPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAdjustWeights, data), nil
}

func ParseAdjustWeightsPayload(task *asynq.Task) (AdjustWeightsPayload, error) {
	var payload AdjustWeightsPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return AdjustWeightsPayload{}, err
	}
	return payload, nil
}
