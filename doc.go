/*
Package retry re-invokes failing operations, with an optional exponentially
increasing delay between attempts.

It is built around a single generic executor, `Do`, which calls an operation
until it succeeds or a configured attempt budget runs out, then propagates the
final failure exactly as the operation raised it. Failures can be labelled
with a `Kind` to control which of them deserve another attempt, and the
caller's context cancels any wait between attempts.

An HTTP client built on the executor, `HTTPClient`, is included for the common
case of retrying requests against flaky servers.
*/
package retry
