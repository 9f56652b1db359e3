package models

import "io"

// TrainingStatus is one decoded training status record: the status code
// plus an optional descriptive string.
//
// Described in section 4.10: Training Status.
type TrainingStatus struct {
	Code TrainingStatusCode

	// Text is the UTF-8 status string, present when HasText is true.
	Text    string
	HasText bool
}

// DecodeTrainingStatus parses a training status read or notification:
// a flags byte, the status code, and the rest of the buffer as a UTF-8
// string when the string-present flag is set.
func DecodeTrainingStatus(data []byte) (TrainingStatus, error) {
	if len(data) < 2 {
		return TrainingStatus{}, io.ErrUnexpectedEOF
	}

	status := TrainingStatus{Code: TrainingStatusCode(data[1])}
	if data[0]&trainingFlagStringPresent != 0 && len(data) > 2 {
		status.Text = string(data[2:])
		status.HasText = true
	}
	return status, nil
}
