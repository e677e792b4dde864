package constant

// SearchTokensSessionKey is the default session key for the serialized
// token list. Store operations receiving an empty key fall back to it.
const SearchTokensSessionKey = "search_tokens"

// SessionCookieName carries the server-side session id.
const SessionCookieName = "search_session_id"

// SearchPerformedTopic is the in-process topic for executed searches;
// the consumer turns each message into a search history row.
const SearchPerformedTopic = "SEARCH_PERFORMED"

// SearchPerformedEventType is the external (NATS) event code.
const SearchPerformedEventType = "SEARCH_PERFORMED"
