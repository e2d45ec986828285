package worker

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const TypeImportTick = "import:tick"

type ImportTickPayload struct {
	SessionCode string `json:"session_code"`
	Generation  uint64 `json:"generation"`
}

func NewImportTickTask(code string, generation uint64) (*asynq.Task, error) {
	payload, err := json.Marshal(ImportTickPayload{SessionCode: code, Generation: generation})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tick payload: %w", err)
	}
	return asynq.NewTask(TypeImportTick, payload), nil
}

func parseImportTickPayload(task *asynq.Task) (ImportTickPayload, error) {
	var payload ImportTickPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return payload, fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	if payload.SessionCode == "" {
		return payload, fmt.Errorf("tick payload has no session code")
	}
	return payload, nil
}
