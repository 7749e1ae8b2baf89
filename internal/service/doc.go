// Package service implements the application use cases on top of the store
// interfaces and the task generator.
//
// PlanService owns dated plans: saving, reading, editing, ordering and
// generating tasks from a paragraph. UserService registers and authenticates
// plan owners. Multi-statement writes go through a PlanTxRunner so they
// commit or roll back together.
package service
