// Package connectors holds the driven adapters that talk to issue trackers.
// Each subpackage implements driven.IssueTracker for one tracker API.
package connectors
