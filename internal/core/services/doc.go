// Package services implements the driving port interfaces.
// Services contain the core logic (field resolution, result paging and
// issue presentation) and orchestrate calls to driven ports.
package services
