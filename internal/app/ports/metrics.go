package ports

import "tilequest/internal/domain/event"

type CommandMetrics interface {
	RecordAccepted(kind event.Kind, emitted int)
	RecordRejected(kind event.Kind)
	RecordFailure()
}
