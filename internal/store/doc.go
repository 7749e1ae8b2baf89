// Package store declares the persistence contracts of the planner: users,
// dated plans and their ordered tasks, plus the sentinel errors and the
// transaction helper the service layer relies on. internal/platform/postgres
// holds the implementation.
package store
