package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nikhilbhutani/speechproxy/internal/tts"
)

// Synthesizer is the speech core the handler delegates to.
type Synthesizer interface {
	Synthesize(ctx context.Context, req tts.SynthesisRequest) (*tts.SynthesisResult, error)
}

type SpeechHandler struct {
	synth Synthesizer
}

func NewSpeechHandler(synth Synthesizer) *SpeechHandler {
	return &SpeechHandler{synth: synth}
}

// speechBody mirrors the JSON request. Fields are untyped so that wrongly
// typed values can be told apart from absent ones.
type speechBody struct {
	Text         any `json:"text"`
	LanguageCode any `json:"languageCode"`
	VoiceName    any `json:"voiceName"`
	SpeakingRate any `json:"speakingRate"`
	Pitch        any `json:"pitch"`
	AudioFormat  any `json:"audioFormat"`
}

func (b speechBody) request() (tts.SynthesisRequest, bool) {
	text, ok := b.Text.(string)
	if !ok {
		return tts.SynthesisRequest{}, false
	}
	return tts.SynthesisRequest{
		Text:         text,
		LanguageCode: stringOrEmpty(b.LanguageCode),
		VoiceName:    stringOrEmpty(b.VoiceName),
		SpeakingRate: numberOrNil(b.SpeakingRate),
		Pitch:        numberOrNil(b.Pitch),
		AudioFormat:  stringOrEmpty(b.AudioFormat),
	}, true
}

func stringOrEmpty(v any) string {
	s, _ := v.(string)
	return s
}

func numberOrNil(v any) *float64 {
	if f, ok := v.(float64); ok {
		return &f
	}
	return nil
}

// Synthesize converts text to speech and returns it as base64 JSON.
func (h *SpeechHandler) Synthesize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Use POST")
		return
	}

	var body speechBody
	err := json.NewDecoder(r.Body).Decode(&body)
	req, ok := body.request()
	if err != nil || !ok {
		status, msg := errorResponse(tts.ErrInvalidArgument)
		writeError(w, status, msg)
		return
	}

	result, err := h.synth.Synthesize(r.Context(), req)
	if err != nil {
		status, msg := errorResponse(err)
		writeError(w, status, msg)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func errorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, tts.ErrInvalidArgument):
		return http.StatusBadRequest, "text is required"
	case errors.Is(err, tts.ErrMisconfigured):
		return http.StatusInternalServerError, "AWS credentials not configured"
	case errors.Is(err, tts.ErrEmptyAudio):
		return http.StatusInternalServerError, "No audio stream"
	}
	// ProviderError reports the cause's message unchanged.
	return http.StatusInternalServerError, "Polly failed: " + err.Error()
}

type voicesResponse struct {
	Default   string            `json:"default"`
	Languages map[string]string `json:"languages"`
}

// Voices lists the default voice per language.
func (h *SpeechHandler) Voices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, voicesResponse{
		Default:   tts.DefaultVoice,
		Languages: tts.VoiceTable(),
	})
}
