package worker

import (
	"github.com/hibiken/asynq"
)

func RegisterHandlers(mux *asynq.ServeMux, tickHandler *ImportTickHandler) {
	mux.HandleFunc(TypeImportTick, tickHandler.Handle)
}
