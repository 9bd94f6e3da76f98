package framework

import (
	"context"
	"time"
)

// Named is an abstraction for things with a name.
type Named interface {
	Name() string
}

// Runnable defines a generic interface for background runners.
type Runnable interface {
	Run(context.Context) error
}

// Message is a unit of work posted to the loop by an event source,
// e.g. a received bus frame or a debounced input edge.
type Message interface{}

// Controller defines the logic executed on every loop iteration.
// One iteration corresponds to one system tick.
type Controller interface {
	Control(ControlContext) error
}

// ControlContext provides the context of the current iteration.
type ControlContext interface {
	// Context retrieves context.Context.
	Context() context.Context
	// Time gets the time this iteration started.
	Time() time.Time
	// PriorityLevel gets the current priority level.
	PriorityLevel() int
	// Messages retrieves all messages collected when this
	// iteration starts.
	Messages() MessageStore

	LoopControl
}

// PriorityLevels is the total levels of priorities.
const PriorityLevels int = 8

// Predefined priority levels. Controllers at a lower numeric level run
// first within an iteration, mirroring static interrupt priorities:
// the tick level observes inputs before protocol work runs, and the
// drain level runs only after everything else settled.
const (
	PrLvTop  int = 0
	PrLvTick int = 1
	PrLvBus  int = 4
	PrLvIdle int = PriorityLevels - 1

	// PrLvDrain is the alias of the priority level for deferred
	// output, such as flushing buffered console lines.
	PrLvDrain = PrLvIdle
)

// LoopControl exposes access to the controlling loop.
type LoopControl interface {
	// PostMessage enqueues the message for the next iteration.
	PostMessage(Message)
	// TriggerNext schedules the next iteration to be executed
	// immediately, without waiting for the tick interval.
	TriggerNext()
}

// MessageStore provides read/write access to pending messages.
type MessageStore interface {
	// ProcessMessages uses a processor to examine all messages.
	ProcessMessages(MessageProcessor)
	// AddMessages appends messages for the next processing cycle.
	AddMessages(msgs ...Message)
}

// MessageProcessor is used by MessageStore to process messages.
type MessageProcessor interface {
	ProcessMessage(MessageProcessingContext)
}

// ProcessMessageFunc is the func form of MessageProcessor.
type ProcessMessageFunc func(MessageProcessingContext)

// ProcessMessage implements MessageProcessor.
func (f ProcessMessageFunc) ProcessMessage(mc MessageProcessingContext) {
	f(mc)
}

// MessageProcessingContext provides context for the current message.
type MessageProcessingContext interface {
	// CurrentMessage gets the message being processed.
	CurrentMessage() Message
	// MessageTaken indicates the message has been consumed and
	// should be removed from the store.
	MessageTaken()
}

// ControlFunc defines the func form of Controller.
type ControlFunc func(ControlContext) error

// Control implements Controller.
func (f ControlFunc) Control(cc ControlContext) error {
	return f(cc)
}
