// Package models defines the core domain types for the assistant bot.
//
// Entities (User, Task, FoodEntry, Habit, HabitLog, Note) are exclusively
// owned by their UserID; there is no sharing or cross-user visibility
// anywhere in the data model. Event and Response are the transport-neutral
// inbound/outbound shapes, and WorkflowID tags the multi-step conversation
// flows.
//
// Design principles:
//
//  1. Entities are flat structs with no behavior; all logic lives in the
//     workflow, engine, and storage packages.
//  2. Calendar dates are YYYY-MM-DD strings to match the persisted layout;
//     parsing to time.Time happens at the edges.
//  3. Enumerations (priority, status, frequency, workflow id) are typed
//     string constants so illegal values are visible at a glance.
package models
