package game

import "testing"

func TestObserverNotifiesInSubscriptionOrder(t *testing.T) {
	value := 1
	observer := NewObserver(func() int { return value })

	var calls []string
	observer.Subscribe(func(v int) { calls = append(calls, "first") })
	unsubscribeSecond := observer.Subscribe(func(v int) { calls = append(calls, "second") })
	observer.Subscribe(func(v int) {
		calls = append(calls, "third")
		if v != value {
			t.Errorf("got %d, want %d", v, value)
		}
	})

	value = 42
	observer.Notify()

	want := []string{"first", "second", "third"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", calls, want)
		}
	}

	calls = nil
	unsubscribeSecond()
	unsubscribeSecond()
	observer.Notify()

	if len(calls) != 2 || calls[0] != "first" || calls[1] != "third" {
		t.Errorf("after unsubscribe calls = %v, want [first third]", calls)
	}
	if observer.Len() != 2 {
		t.Errorf("Len() = %d, want 2", observer.Len())
	}
}

func TestObserverUnsubscribeDuringNotify(t *testing.T) {
	observer := NewObserver(func() string { return "tick" })

	count := 0
	var unsubscribe func()
	unsubscribe = observer.Subscribe(func(string) {
		count++
		unsubscribe()
	})

	observer.Notify()
	observer.Notify()

	if count != 1 {
		t.Errorf("subscriber called %d times, want 1", count)
	}
}
