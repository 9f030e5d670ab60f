package tts

import (
	"context"
	"time"
)

// SynthesisRequest holds the caller's text-to-speech parameters.
// SpeakingRate and Pitch are nil when absent or not numeric.
type SynthesisRequest struct {
	Text         string
	LanguageCode string
	VoiceName    string
	SpeakingRate *float64
	Pitch        *float64
	AudioFormat  string
}

// SynthesisResult holds the base64 audio and its content type.
type SynthesisResult struct {
	Base64      string `json:"base64"`
	ContentType string `json:"contentType"`
}

// OutputFormat is one of the three audio encodings the service returns.
type OutputFormat string

const (
	FormatMP3       OutputFormat = "mp3"
	FormatOggVorbis OutputFormat = "ogg_vorbis"
	FormatPCM       OutputFormat = "pcm"
)

// ContentType returns the MIME type sent back to clients for the format.
func (f OutputFormat) ContentType() string {
	switch f {
	case FormatOggVorbis:
		return "audio/ogg"
	case FormatPCM:
		return "audio/wav"
	default:
		return "audio/mpeg"
	}
}

// TextType says whether the provider receives plain text or SSML.
type TextType string

const (
	TextTypeText TextType = "text"
	TextTypeSSML TextType = "ssml"
)

// Engine is the provider voice engine tier.
type Engine string

const EngineStandard Engine = "standard"

// SpeechInput is the request handed to a Provider.
type SpeechInput struct {
	Text         string
	VoiceID      string
	LanguageCode string // empty means let the provider decide
	OutputFormat OutputFormat
	Engine       Engine
	TextType     TextType
}

// SpeechOutput is what a Provider returns. Audio is nil when the provider
// sent no stream at all.
type SpeechOutput struct {
	Audio             ByteSource
	ContentType       string
	RequestCharacters int
}

// Provider is the interface for speech synthesis backends.
type Provider interface {
	SynthesizeSpeech(ctx context.Context, in *SpeechInput) (*SpeechOutput, error)
}

// PollyConfig holds region, credentials and the call timeout for Polly.
type PollyConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	Timeout         time.Duration
}

func (c PollyConfig) HasCredentials() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != ""
}

// ProviderFactory builds a provider for a single synthesis call.
type ProviderFactory func(cfg PollyConfig) Provider
