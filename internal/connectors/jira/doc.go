// Package jira implements the driven.IssueTracker port against the Jira
// Cloud REST API (version 3).
//
// # Endpoints
//
//   - GET  /rest/api/3/field: field directory
//   - POST /rest/api/3/search/jql: cursor-paged issue search
//   - GET  /rest/api/3/project/search: offset-paged project listing
//   - GET  /rest/api/3/issue/{key}: single issue
//   - GET  /rest/api/3/issue/{key}/transitions: available transitions
//   - POST /rest/api/3/issue/{key}/transitions: apply a transition
//   - POST /rest/api/3/issue: create an issue
//   - POST /rest/api/3/issue/{key}/comment: add a comment
//
// # Authentication
//
// Two methods are supported:
//
//   - basic: account e-mail and API token created at
//     id.atlassian.com/manage-profile/security/api-tokens.
//
//   - bearer: a personal access token, as used by Jira Data Center.
//
// # Errors
//
// Transport failures are returned as *domain.NetworkError. Non-2xx
// responses are returned as *domain.UpstreamError carrying the status code
// and response body; a 429 response is returned as *RateLimitError instead.
// Requests are never retried.
package jira
