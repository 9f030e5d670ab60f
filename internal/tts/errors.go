package tts

import "errors"

var (
	// ErrInvalidArgument is returned when the request text is missing or blank.
	ErrInvalidArgument = errors.New("text is required")
	// ErrMisconfigured is returned when no AWS credentials are configured.
	ErrMisconfigured = errors.New("AWS credentials not configured")
	// ErrEmptyAudio is returned when the provider answered without an audio stream.
	ErrEmptyAudio = errors.New("no audio stream")
)

// ProviderError wraps any failure raised while calling the provider or
// draining its audio.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string {
	return e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
