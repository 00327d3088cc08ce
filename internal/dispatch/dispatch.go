package dispatch

import (
	"context"
	"errors"
	"fmt"

	"tbo-go/internal/tbo"
)

// UnknownActionMessage is the envelope error for an unrecognized action.
const UnknownActionMessage = "Unknown action"

// Response is the envelope returned for every request.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func Success(data any) Response {
	return Response{Success: true, Data: data}
}

func Failure(err error) Response {
	if errors.Is(err, ErrUnknownAction) {
		return Response{Error: UnknownActionMessage}
	}
	return Response{Error: err.Error()}
}

// Dispatcher runs requests against a Store.
type Dispatcher struct {
	store  Store
	logger tbo.Logger
}

func NewDispatcher(store Store, logger tbo.Logger) *Dispatcher {
	return &Dispatcher{store: store, logger: logger}
}

// Dispatch runs req and returns its envelope. Store failures and panics both
// become {success:false}.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("dispatch panic", "action", req.Action(), "panic", r)
			resp = Failure(fmt.Errorf("internal error handling %s: %v", req.Action(), r))
		}
	}()

	data, err := req.run(ctx, d.store)
	if err != nil {
		d.logger.Warn("action failed", "action", req.Action(), "kind", kindName(err), "error", err)
		return Failure(err)
	}

	d.logger.Debug("action handled", "action", req.Action())
	return Success(data)
}

// Handle decodes a wire message and dispatches it.
func (d *Dispatcher) Handle(ctx context.Context, raw []byte) Response {
	req, err := Decode(raw)
	if err != nil {
		d.logger.Warn("rejected message", "error", err)
		return Failure(err)
	}
	return d.Dispatch(ctx, req)
}

func kindName(err error) string {
	if k := tbo.KindOf(err); k != nil {
		return k.Error()
	}
	return "unknown"
}
