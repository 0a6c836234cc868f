package conversation

import "github.com/hearthlabs/clawbridge/core"

// Fixed spoken-friendly sentences, one per fault category. These are read
// aloud by the host's TTS, so they stay short, natural and free of
// formatting or technical vocabulary.
const (
	// SpeakTimeout is spoken when the gateway missed the deadline.
	SpeakTimeout = "I'm taking too long to think, try again."
	// SpeakUnreachable is spoken for any network-layer failure.
	SpeakUnreachable = "I can't reach my brain right now."
	// SpeakAuth is spoken when the gateway rejected the credential.
	SpeakAuth = "I'm having trouble authenticating. Check my settings."
	// SpeakRemoteError is spoken for non-2xx gateway responses.
	SpeakRemoteError = "Something went wrong on my end."
	// SpeakConfused is spoken when the reply was unparseable or empty.
	SpeakConfused = "I got confused, can you repeat that?"
	// SpeakNoInput is spoken for an empty utterance. Hosts should not send
	// empty input, but the bridge must answer something rather than crash.
	SpeakNoInput = "I didn't catch that."
)

// Speak maps a fault kind to its fixed sentence. Every kind maps somewhere;
// unrecognized kinds read as unreachable, the safest generic answer.
func Speak(kind core.FaultKind) string {
	switch kind {
	case core.FaultTimeout:
		return SpeakTimeout
	case core.FaultConnectionRefused, core.FaultDNSFailure, core.FaultTLSFailure:
		return SpeakUnreachable
	case core.FaultAuthFailure:
		return SpeakAuth
	case core.FaultRemoteError:
		return SpeakRemoteError
	case core.FaultMalformedResponse:
		return SpeakConfused
	case core.FaultInvalidInput:
		return SpeakNoInput
	default:
		return SpeakUnreachable
	}
}
