package ecs

// System is one step of a frame. Query and Singleton fields of a system are
// bound to the storage when the system is registered with a Scheduler;
// other fields are the system's own state and persist between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// UpdateFrame is passed to every system of one Scheduler.Once call.
type UpdateFrame struct {
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}
