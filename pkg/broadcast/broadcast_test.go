package broadcast

import "testing"

func TestPublishWithoutSubscribers(t *testing.T) {
	var s Stream[int]

	if s.HasSubscribers() {
		t.Error("zero-value stream should have no subscribers")
	}
	if n := s.Publish(1); n != 0 {
		t.Errorf("Publish() = %d deliveries, want 0", n)
	}
}

func TestSubscribeAndPublish(t *testing.T) {
	var s Stream[string]

	var got []string
	s.Subscribe(func(v string) { got = append(got, v) })
	s.Subscribe(func(v string) { got = append(got, v) })

	if !s.HasSubscribers() {
		t.Fatal("expected subscribers")
	}
	if n := s.Publish("a"); n != 2 {
		t.Errorf("Publish() = %d deliveries, want 2", n)
	}
	if len(got) != 2 {
		t.Errorf("len(got) = %d, want 2", len(got))
	}
}

func TestCancelTearsDownAtZero(t *testing.T) {
	var s Stream[int]

	sub1 := s.Subscribe(func(int) {})
	sub2 := s.Subscribe(func(int) {})

	sub1.Cancel()
	if !s.HasSubscribers() {
		t.Fatal("one subscriber should remain")
	}
	sub2.Cancel()
	if s.HasSubscribers() {
		t.Fatal("expected teardown after last cancel")
	}

	// Cancel is idempotent.
	sub1.Cancel()
	sub2.Cancel()
}

func TestFreshStreamAfterTeardown(t *testing.T) {
	var s Stream[int]

	count := 0
	sub := s.Subscribe(func(int) { count++ })
	s.Publish(1)
	sub.Cancel()

	// Events fired while nobody listens are lost.
	s.Publish(2)

	s.Subscribe(func(int) { count++ })
	s.Publish(3)

	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestSubscriberMayCancelDuringPublish(t *testing.T) {
	var s Stream[int]

	var sub *Subscription
	calls := 0
	sub = s.Subscribe(func(int) {
		calls++
		sub.Cancel()
	})

	s.Publish(1)
	s.Publish(2)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if s.HasSubscribers() {
		t.Error("expected teardown")
	}
}
