package wirepack

import (
	"errors"
	"fmt"
)

// Stage identifies the pipeline step that failed.
type Stage uint8

const (
	StageSerialization   Stage = 0x1 // StageSerialization is value to bytes.
	StageCompression     Stage = 0x2 // StageCompression is bytes to compressed bytes.
	StageTextEncoding    Stage = 0x3 // StageTextEncoding is compressed bytes to text.
	StageTextDecoding    Stage = 0x4 // StageTextDecoding is text to compressed bytes.
	StageDecompression   Stage = 0x5 // StageDecompression is compressed bytes to bytes, including checksum verification.
	StageDeserialization Stage = 0x6 // StageDeserialization is bytes to value.
)

func (s Stage) String() string {
	switch s {
	case StageSerialization:
		return "serialization"
	case StageCompression:
		return "compression"
	case StageTextEncoding:
		return "text encoding"
	case StageTextDecoding:
		return "text decoding"
	case StageDecompression:
		return "decompression"
	case StageDeserialization:
		return "deserialization"
	default:
		return "Unknown"
	}
}

// PipelineError wraps a failure with the stage it occurred in.
//
// The wrapped error matches the sentinels in package errs, so callers can
// use errors.Is on a PipelineError directly.
type PipelineError struct {
	Stage Stage
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// StageOf returns the stage recorded in err, if err wraps a *PipelineError.
func StageOf(err error) (Stage, bool) {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Stage, true
	}

	return 0, false
}

func stageError(stage Stage, err error) error {
	return &PipelineError{Stage: stage, Err: err}
}
