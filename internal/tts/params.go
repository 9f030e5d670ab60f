package tts

import (
	"fmt"
	"maps"
	"math"
	"strconv"
	"strings"
)

// DefaultVoice is used when no voice is given and the language has no entry
// in the voice table.
const DefaultVoice = "Joanna"

// defaultVoices maps a language's primary subtag to its standard-engine voice.
var defaultVoices = map[string]string{
	"de": "Marlene",
	"en": "Joanna",
	"es": "Lucia",
	"fr": "Celine",
	"it": "Carla",
	"ja": "Mizuki",
	"ko": "Seoyeon",
	"tr": "Filiz",
	"zh": "Zhiyu",
}

// ResolveVoice returns voiceName when set, otherwise the default voice for
// languageCode.
func ResolveVoice(voiceName, languageCode string) string {
	if voiceName != "" {
		return voiceName
	}

	if v, ok := defaultVoices[primarySubtag(languageCode)]; ok {
		return v
	}
	return DefaultVoice
}

// VoiceTable returns a copy of the default voice per language.
func VoiceTable() map[string]string {
	return maps.Clone(defaultVoices)
}

func primarySubtag(languageCode string) string {
	code := strings.ToLower(strings.TrimSpace(languageCode))
	if i := strings.IndexAny(code, "-_"); i >= 0 {
		code = code[:i]
	}
	return code
}

// ResolveOutputFormat maps the requested audio format onto a supported one.
// Unknown values fall back to mp3.
func ResolveOutputFormat(audioFormat string) OutputFormat {
	switch strings.ToLower(audioFormat) {
	case "ogg":
		return FormatOggVorbis
	case "pcm":
		return FormatPCM
	default:
		return FormatMP3
	}
}

// ProsodyMarkup wraps text in an SSML prosody envelope when a rate or pitch
// is given. Rate is a multiplier (1.0 = 100%), pitch a percentage offset.
func ProsodyMarkup(text string, rate, pitch *float64) (string, TextType) {
	if rate == nil && pitch == nil {
		return text, TextTypeText
	}

	r := "100"
	if rate != nil {
		r = formatRounded(*rate * 100)
	}
	p := "0"
	if pitch != nil {
		p = formatRounded(*pitch)
	}

	return fmt.Sprintf(`<speak><prosody rate="%s%%" pitch="%s%%">%s</prosody></speak>`, r, p, text), TextTypeSSML
}

// roundHalfUp rounds to the nearest integer with .5 going toward positive
// infinity, so -2.5 becomes -2 and 0.49999999999999994 stays 0.
func roundHalfUp(v float64) float64 {
	r := math.Round(v)
	if v-r == 0.5 {
		// math.Round took a negative tie away from zero.
		r++
	}
	if r == 0 {
		return 0 // drop negative zero
	}
	return r
}

// formatRounded prints the rounded value without an integer conversion, so
// values beyond the int64 range keep their sign and magnitude.
func formatRounded(v float64) string {
	return strconv.FormatFloat(roundHalfUp(v), 'f', -1, 64)
}

// BuildSpeechInput derives the provider request from a validated request.
func BuildSpeechInput(req SynthesisRequest) *SpeechInput {
	text, textType := ProsodyMarkup(req.Text, req.SpeakingRate, req.Pitch)

	return &SpeechInput{
		Text:         text,
		VoiceID:      ResolveVoice(req.VoiceName, req.LanguageCode),
		LanguageCode: req.LanguageCode,
		OutputFormat: ResolveOutputFormat(req.AudioFormat),
		Engine:       EngineStandard,
		TextType:     textType,
	}
}
