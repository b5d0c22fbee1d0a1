package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const TypeTranscodeVideo = "video:transcode"

// TranscodeVideoPayload is the queue message handed from ingestion to a
// worker. InputPath is the object key of the original inside the shared
// bucket, so any worker host can read it.
type TranscodeVideoPayload struct {
	VideoID   string `json:"video_id" validate:"required,uuid"`
	InputPath string `json:"input_path" validate:"required"`
}

// NewTranscodeVideoTask creates an Asynq task for transcoding a video.
func NewTranscodeVideoTask(videoID, inputPath string) (*asynq.Task, error) {
	p := TranscodeVideoPayload{VideoID: videoID, InputPath: inputPath}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("could not marshal transcode-video payload: %w", err)
	}
	return asynq.NewTask(TypeTranscodeVideo, data), nil
}

// ParseTranscodeVideoPayload parses the task payload to TranscodeVideoPayload.
func ParseTranscodeVideoPayload(t *asynq.Task) (TranscodeVideoPayload, error) {
	var p TranscodeVideoPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return TranscodeVideoPayload{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	return p, nil
}
