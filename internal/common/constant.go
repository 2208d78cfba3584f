package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// DefaultTranscriptionLanguage is used when a transcription request does not
// name a language.
const DefaultTranscriptionLanguage = "fr"
