package views

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/logdeck/internal/ingest"
)

func TestUpload_EmptyPathIsRejected(t *testing.T) {
	var s UploadState
	assert.False(t, s.Begin("  "))
	panel := RenderUpload(s)
	assert.Nil(t, panel.Result)
	assert.Equal(t, UploadIdleLabel, panel.ButtonLabel)
	assert.False(t, panel.ButtonDisabled)
}

func TestUpload_BusyThenResult(t *testing.T) {
	var s UploadState
	require.True(t, s.Begin("app.log"))

	panel := RenderUpload(s)
	assert.True(t, panel.ButtonDisabled)
	assert.Equal(t, "Uploading...", panel.ButtonLabel)
	require.NotNil(t, panel.Result)
	assert.Equal(t, "Processing...", panel.Result.Text)

	s.Finish(ingest.UploadResult{Raw: json.RawMessage(`{"records":2}`)}, nil)
	panel = RenderUpload(s)
	assert.False(t, panel.ButtonDisabled)
	assert.Equal(t, "Start Upload", panel.ButtonLabel)
	assert.Equal(t, "{\n  \"records\": 2\n}", panel.Result.Text)
}

func TestUpload_ErrorRestoresButton(t *testing.T) {
	var s UploadState
	s.Begin("app.log")
	s.Finish(ingest.UploadResult{}, errors.New("Uploaded file is empty"))

	panel := RenderUpload(s)
	assert.False(t, panel.ButtonDisabled)
	require.NotNil(t, panel.Result)
	assert.Equal(t, "Error: Uploaded file is empty", panel.Result.Text)
	assert.Equal(t, ToneDanger, panel.Result.Tone)
}
