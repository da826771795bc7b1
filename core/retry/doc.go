// Package retry implements the bounded retry-with-backoff loop used against
// the rate-limiting remote service. Operations signal transience by wrapping
// their error with Mark; everything else is terminal on the first attempt.
package retry
