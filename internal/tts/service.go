package tts

import (
	"context"
	"encoding/base64"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// Synthesizer turns a SynthesisRequest into base64 audio. It holds no
// per-request state and is safe for concurrent use.
type Synthesizer struct {
	cfg         PollyConfig
	newProvider ProviderFactory
	log         *slog.Logger
}

// NewSynthesizer creates a Synthesizer. A nil factory means Polly.
func NewSynthesizer(cfg PollyConfig, newProvider ProviderFactory, log *slog.Logger) *Synthesizer {
	if newProvider == nil {
		newProvider = func(c PollyConfig) Provider { return NewPollyProvider(c) }
	}
	if log == nil {
		log = slog.Default()
	}
	return &Synthesizer{cfg: cfg, newProvider: newProvider, log: log}
}

// Synthesize validates req, calls the provider once and encodes the audio.
func (s *Synthesizer) Synthesize(ctx context.Context, req SynthesisRequest) (*SynthesisResult, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, ErrInvalidArgument
	}
	if !s.cfg.HasCredentials() {
		return nil, ErrMisconfigured
	}

	in := BuildSpeechInput(req)
	log := s.log.With(
		"synthesis_id", uuid.NewString(),
		"voice", in.VoiceID,
		"format", in.OutputFormat,
		"text_type", in.TextType,
	)

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	out, err := s.newProvider(s.cfg).SynthesizeSpeech(ctx, in)
	if err != nil {
		log.Error("polly synthesis failed", "error", err)
		return nil, &ProviderError{Err: err}
	}
	if out == nil || out.Audio == nil {
		log.Warn("polly returned no audio stream")
		return nil, ErrEmptyAudio
	}

	audio, err := out.Audio.Drain(ctx)
	if err != nil {
		log.Error("draining audio failed", "error", err)
		return nil, &ProviderError{Err: err}
	}

	log.Info("speech synthesized", "bytes", len(audio), "characters", out.RequestCharacters)

	return &SynthesisResult{
		Base64:      base64.StdEncoding.EncodeToString(audio),
		ContentType: in.OutputFormat.ContentType(),
	}, nil
}
