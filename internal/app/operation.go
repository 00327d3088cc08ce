package app

// Operation statuses recorded in the operations table.
const (
	StatusRunning = "running"
	StatusSuccess = "success"
	StatusError   = "error"
)

// CommandOperation tracks the CLI command being run. It lives in memory with
// ID=0 until a store-replacing command persists it, so read-only commands
// leave no history.
type CommandOperation struct {
	ID         int64
	Operation  string
	Parameters string
	Status     string
}

func NewCommandOperation(operation, parameters string) *CommandOperation {
	return &CommandOperation{
		Operation:  operation,
		Parameters: parameters,
		Status:     StatusSuccess,
	}
}

// Persisted returns true if this operation has been saved to the database.
func (op *CommandOperation) Persisted() bool {
	return op.ID != 0
}

// Fail marks the operation failed when err is non-nil and returns err unchanged.
func (op *CommandOperation) Fail(err error) error {
	if err != nil {
		op.Status = StatusError
	}
	return err
}
