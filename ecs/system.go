package ecs

// System represents a behavior that operates on entities with specific components.
// Systems declare Query and Singleton fields; the Scheduler initializes them on
// registration and refreshes every Query right before the system executes.
type System interface {
	Execute(frame *UpdateFrame)
}

// executor is implemented by Query fields.
type executor interface {
	Execute()
}
