// Package youtrack implements the driven.Tracker port against the
// YouTrack REST API.
//
// Every call is made on behalf of a chat user and carries that user's
// OAuth access token as a bearer header. Transient failures (network
// errors, 5xx) are retried with exponential backoff; a proactive rate
// limiter keeps the bot inside the tracker's request budget.
package youtrack
