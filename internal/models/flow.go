package models

// WorkflowID names one multi-step conversation flow. The set is closed: a
// session can only ever point at one of these. The type lives here rather
// than in the workflow package so the session store can reference it without
// a circular import.
type WorkflowID string

const (
	WorkflowAddTask      WorkflowID = "add_task"
	WorkflowCompleteTask WorkflowID = "complete_task"
	WorkflowDeleteTask   WorkflowID = "delete_task"
	WorkflowLogMeal      WorkflowID = "log_meal"
	WorkflowAddHabit     WorkflowID = "add_habit"
	WorkflowAddNote      WorkflowID = "add_note"
	WorkflowViewNote     WorkflowID = "view_note"
)
