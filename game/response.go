package game

// Response wraps the outcome of a game operation.
type Response[T any] struct {
	Success bool   `json:"success"`
	Result  T      `json:"result,omitempty"`
	Error   string `json:"error,omitempty"`
}

func succeeded[T any](result T) Response[T] {
	return Response[T]{Success: true, Result: result}
}

func failed[T any](err error) Response[T] {
	return Response[T]{Error: err.Error()}
}
