package eventbus

import (
	"io"
	"testing"
	"time"

	"tilequest/internal/domain/event"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestNotify_DeliversInSubscriptionOrder(t *testing.T) {
	bus := New(quietLogger())
	var order []string
	bus.Subscribe(func(event.Event) { order = append(order, "first") })
	bus.Subscribe(func(event.Event) { order = append(order, "second") })
	bus.Subscribe(func(event.Event) { order = append(order, "third") })

	bus.Notify(event.StartGame(time.Unix(1, 0)))

	want := []string{"first", "second", "third"}
	if len(order) != len(want) {
		t.Fatalf("delivery count mismatch: got=%v want=%v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("delivery[%d] mismatch: got=%q want=%q", i, order[i], want[i])
		}
	}
}

func TestNotify_TwoObserversSeeSameSequence(t *testing.T) {
	bus := New(quietLogger())
	var a, b []event.Kind
	bus.Subscribe(func(e event.Event) { a = append(a, e.Kind) })
	bus.Subscribe(func(e event.Event) { b = append(b, e.Kind) })

	kinds := []event.Kind{event.KindEndTurnButtonClicked, event.KindEndTurn, event.KindStartGame}
	for _, k := range kinds {
		bus.Notify(event.New(k, time.Unix(1, 0)))
	}

	if len(a) != len(kinds) || len(b) != len(kinds) {
		t.Fatalf("observer lengths mismatch: a=%v b=%v", a, b)
	}
	for i := range kinds {
		if a[i] != kinds[i] || b[i] != kinds[i] {
			t.Fatalf("event[%d] mismatch: a=%s b=%s want=%s", i, a[i], b[i], kinds[i])
		}
	}
}

func TestNotify_PanickingSubscriberDoesNotStopOthers(t *testing.T) {
	logger, hook := test.NewNullLogger()
	bus := New(logger)
	delivered := 0
	bus.Subscribe(func(event.Event) { panic("render failed") })
	bus.Subscribe(func(event.Event) { delivered++ })

	bus.Notify(event.StartGame(time.Unix(1, 0)))

	if delivered != 1 {
		t.Fatalf("expected second subscriber to run once, got %d", delivered)
	}
	if len(hook.AllEntries()) != 1 {
		t.Fatalf("expected one logged panic, got %d", len(hook.AllEntries()))
	}
	if got := hook.LastEntry().Level; got != logrus.ErrorLevel {
		t.Fatalf("log level mismatch: got=%s want=%s", got, logrus.ErrorLevel)
	}
}

func TestUnsubscribe_IsIdempotent(t *testing.T) {
	bus := New(quietLogger())
	count := 0
	keep := bus.Subscribe(func(event.Event) { count++ })
	drop := bus.Subscribe(func(event.Event) { t.Fatalf("unsubscribed handler invoked") })

	bus.Unsubscribe(drop)
	bus.Unsubscribe(drop)
	bus.Unsubscribe(Subscription(9999))

	bus.Notify(event.StartGame(time.Unix(1, 0)))
	if count != 1 {
		t.Fatalf("expected remaining subscriber to run once, got %d", count)
	}
	if bus.Len() != 1 {
		t.Fatalf("expected one subscriber left, got %d", bus.Len())
	}
	bus.Unsubscribe(keep)
	if bus.Len() != 0 {
		t.Fatalf("expected no subscribers, got %d", bus.Len())
	}
}

func TestSubscribe_SameHandlerTwiceDeliversTwice(t *testing.T) {
	bus := New(quietLogger())
	count := 0
	h := func(event.Event) { count++ }
	bus.Subscribe(h)
	bus.Subscribe(h)

	bus.Notify(event.StartGame(time.Unix(1, 0)))
	if count != 2 {
		t.Fatalf("expected two deliveries, got %d", count)
	}
}

func TestNotify_HandlerMayUnsubscribeItself(t *testing.T) {
	bus := New(quietLogger())
	calls := 0
	var self Subscription
	self = bus.Subscribe(func(event.Event) {
		calls++
		bus.Unsubscribe(self)
	})
	after := 0
	bus.Subscribe(func(event.Event) { after++ })

	bus.Notify(event.StartGame(time.Unix(1, 0)))
	bus.Notify(event.StartGame(time.Unix(2, 0)))

	if calls != 1 {
		t.Fatalf("expected self-removing handler to run once, got %d", calls)
	}
	if after != 2 {
		t.Fatalf("expected second handler to run twice, got %d", after)
	}
}

func TestClose_DropsSubscribers(t *testing.T) {
	bus := New(quietLogger())
	bus.Subscribe(func(event.Event) { t.Fatalf("handler invoked after close") })
	bus.Close()
	bus.Subscribe(func(event.Event) { t.Fatalf("handler registered after close invoked") })

	bus.Notify(event.StartGame(time.Unix(1, 0)))
	if bus.Len() != 0 {
		t.Fatalf("expected no subscribers after close, got %d", bus.Len())
	}
}
