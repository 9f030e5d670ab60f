package tts

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/polly/types"
)

// SpeechSynthesizerAPI is the part of the Polly client used here.
type SpeechSynthesizerAPI interface {
	SynthesizeSpeech(ctx context.Context, params *polly.SynthesizeSpeechInput, optFns ...func(*polly.Options)) (*polly.SynthesizeSpeechOutput, error)
}

// PollyProvider synthesizes speech with Amazon Polly.
type PollyProvider struct {
	client SpeechSynthesizerAPI
}

// NewPollyProvider creates a Polly client with static credentials taken
// from cfg.
func NewPollyProvider(cfg PollyConfig) *PollyProvider {
	client := polly.New(polly.Options{
		Region:      cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken),
	})
	return &PollyProvider{client: client}
}

// NewPollyProviderWithClient wraps an existing client, e.g. a fake in tests.
func NewPollyProviderWithClient(client SpeechSynthesizerAPI) *PollyProvider {
	return &PollyProvider{client: client}
}

// SynthesizeSpeech sends in to Polly and wraps the returned audio stream.
func (p *PollyProvider) SynthesizeSpeech(ctx context.Context, in *SpeechInput) (*SpeechOutput, error) {
	params := &polly.SynthesizeSpeechInput{
		Text:         aws.String(in.Text),
		VoiceId:      types.VoiceId(in.VoiceID),
		OutputFormat: types.OutputFormat(in.OutputFormat),
		Engine:       types.Engine(in.Engine),
		TextType:     types.TextType(in.TextType),
	}
	if in.LanguageCode != "" {
		params.LanguageCode = types.LanguageCode(in.LanguageCode)
	}

	resp, err := p.client.SynthesizeSpeech(ctx, params)
	if err != nil {
		return nil, err
	}

	out := &SpeechOutput{
		ContentType:       aws.ToString(resp.ContentType),
		RequestCharacters: int(resp.RequestCharacters),
	}
	if resp.AudioStream != nil {
		out.Audio = NewStream(resp.AudioStream)
	}
	return out, nil
}
