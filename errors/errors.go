package errors

import "fmt"

var (
	ErrInvalidName        = fmt.Errorf("participant name is missing or empty")
	ErrNameTaken          = fmt.Errorf("participant name already taken")
	ErrUnknownParticipant = fmt.Errorf("unknown participant")
	ErrUnknownSender      = fmt.Errorf("sender is not a registered participant")
	ErrInvalidMessage     = fmt.Errorf("invalid message payload")
	ErrInvalidID          = fmt.Errorf("malformed message id")
	ErrMessageNotFound    = fmt.Errorf("message not found")
	ErrNotOwner           = fmt.Errorf("caller is not the message sender")
	ErrWorkerPanic        = fmt.Errorf("worker panic")
	ErrEmptyWords         = fmt.Errorf("no words have been found")
)
