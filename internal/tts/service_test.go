package tts_test

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikhilbhutani/speechproxy/internal/tts"
)

var testCfg = tts.PollyConfig{
	Region:          "eu-central-1",
	AccessKeyID:     "AKIDEXAMPLE",
	SecretAccessKey: "secret",
	Timeout:         time.Second,
}

type fakeProvider struct {
	out   *tts.SpeechOutput
	err   error
	calls int
	got   *tts.SpeechInput
}

func (f *fakeProvider) SynthesizeSpeech(_ context.Context, in *tts.SpeechInput) (*tts.SpeechOutput, error) {
	f.calls++
	f.got = in
	return f.out, f.err
}

func newSynth(cfg tts.PollyConfig, p *fakeProvider) *tts.Synthesizer {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return tts.NewSynthesizer(cfg, func(tts.PollyConfig) tts.Provider { return p }, log)
}

func TestSynthesizeSuccess(t *testing.T) {
	t.Parallel()

	audio := []byte("mp3-bytes")
	p := &fakeProvider{out: &tts.SpeechOutput{Audio: tts.Buffer(audio)}}

	res, err := newSynth(testCfg, p).Synthesize(context.Background(), tts.SynthesisRequest{
		Text:         "Hello",
		LanguageCode: "de",
	})
	require.NoError(t, err)

	assert.Equal(t, base64.StdEncoding.EncodeToString(audio), res.Base64)
	assert.Equal(t, "audio/mpeg", res.ContentType)
	assert.Equal(t, "Marlene", p.got.VoiceID)
	assert.Equal(t, tts.TextTypeText, p.got.TextType)
	assert.Equal(t, tts.EngineStandard, p.got.Engine)
}

func TestSynthesizeChunkedStream(t *testing.T) {
	t.Parallel()

	r := &chunkReader{chunks: [][]byte{[]byte("Og"), []byte("gS-pa"), []byte("ge")}}
	p := &fakeProvider{out: &tts.SpeechOutput{Audio: tts.NewStream(r)}}

	res, err := newSynth(testCfg, p).Synthesize(context.Background(), tts.SynthesisRequest{
		Text:        "Hallo",
		AudioFormat: "OGG",
	})
	require.NoError(t, err)

	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("OggS-page")), res.Base64)
	assert.Equal(t, "audio/ogg", res.ContentType)
}

func TestSynthesizeInvalidText(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"", "   ", "\n\t"} {
		p := &fakeProvider{}
		_, err := newSynth(testCfg, p).Synthesize(context.Background(), tts.SynthesisRequest{Text: text})
		require.ErrorIs(t, err, tts.ErrInvalidArgument)
		assert.Zero(t, p.calls)
	}
}

func TestSynthesizeMissingCredentials(t *testing.T) {
	t.Parallel()

	for _, cfg := range []tts.PollyConfig{
		{Region: "eu-central-1", SecretAccessKey: "secret"},
		{Region: "eu-central-1", AccessKeyID: "AKIDEXAMPLE"},
	} {
		built := false
		synth := tts.NewSynthesizer(cfg, func(tts.PollyConfig) tts.Provider {
			built = true
			return &fakeProvider{}
		}, nil)

		_, err := synth.Synthesize(context.Background(), tts.SynthesisRequest{Text: "Hello"})
		require.ErrorIs(t, err, tts.ErrMisconfigured)
		assert.False(t, built)
	}
}

func TestSynthesizeNoAudio(t *testing.T) {
	t.Parallel()

	for _, out := range []*tts.SpeechOutput{nil, {ContentType: "audio/mpeg"}} {
		_, err := newSynth(testCfg, &fakeProvider{out: out}).
			Synthesize(context.Background(), tts.SynthesisRequest{Text: "Hello"})
		require.ErrorIs(t, err, tts.ErrEmptyAudio)
	}
}

func TestSynthesizeProviderFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("ValidationException: Invalid voice")
	_, err := newSynth(testCfg, &fakeProvider{err: boom}).
		Synthesize(context.Background(), tts.SynthesisRequest{Text: "Hello", VoiceName: "Nobody"})

	var pe *tts.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, boom.Error(), pe.Error())
	require.ErrorIs(t, err, boom)
}

func TestSynthesizeDrainFailure(t *testing.T) {
	t.Parallel()

	r := &chunkReader{chunks: [][]byte{[]byte("a")}, err: errors.New("stream reset")}
	_, err := newSynth(testCfg, &fakeProvider{out: &tts.SpeechOutput{Audio: tts.NewStream(r)}}).
		Synthesize(context.Background(), tts.SynthesisRequest{Text: "Hello"})

	var pe *tts.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, pe.Error(), "stream reset")
}

type blockingProvider struct{}

func (blockingProvider) SynthesizeSpeech(ctx context.Context, _ *tts.SpeechInput) (*tts.SpeechOutput, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

// stallingReader hands out one byte per Read and sleeps before each.
type stallingReader struct {
	delay time.Duration
}

func (s stallingReader) Read(p []byte) (int, error) {
	time.Sleep(s.delay)
	p[0] = 'x'
	return 1, nil
}

func TestSynthesizeProviderTimeout(t *testing.T) {
	t.Parallel()

	cfg := testCfg
	cfg.Timeout = 10 * time.Millisecond
	synth := tts.NewSynthesizer(cfg, func(tts.PollyConfig) tts.Provider { return blockingProvider{} },
		slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := synth.Synthesize(context.Background(), tts.SynthesisRequest{Text: "Hello"})

	var pe *tts.ProviderError
	require.ErrorAs(t, err, &pe)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSynthesizeStalledStreamTimeout(t *testing.T) {
	t.Parallel()

	cfg := testCfg
	cfg.Timeout = 10 * time.Millisecond
	p := &fakeProvider{out: &tts.SpeechOutput{Audio: tts.NewStream(stallingReader{delay: 5 * time.Millisecond})}}

	_, err := newSynth(cfg, p).Synthesize(context.Background(), tts.SynthesisRequest{Text: "Hello"})

	var pe *tts.ProviderError
	require.ErrorAs(t, err, &pe)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
