// Package domain defines the core business entities of the planner: tasks,
// the plans that group them by calendar date, and the users who own them.
// Entities validate themselves; persistence and transport live elsewhere.
package domain
