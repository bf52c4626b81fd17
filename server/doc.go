// Package server serves rendered templates over HTTP.
//
// Requests are matched against an ordered list of [Route]s. A route pattern
// is a URL path in which each <name> placeholder matches one path segment,
// for example "/posts/<id>". The first matching route wins; unmatched paths
// receive a 404 page.
//
// The matched route's template file is read from the template root on every
// request and rendered with [lang.Render] against a per-request context:
//
//	<base context>    values decoded from the configured context files
//	params.<name>     the placeholder values captured from the path
//	request.method    the HTTP method
//	request.path      the URL path
//	request.query     the first value of each query parameter
//
// Placeholders may also appear in the template name, so one route can serve
// a family of pages:
//
//	/docs/<page>=docs/<page>.md
//
// Templates with a ".md" extension are converted to HTML after rendering.
// Responses are gzip-compressed when enabled, and context files are reloaded
// when they change if watching is enabled.
package server
