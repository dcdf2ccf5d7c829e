package event

import "testing"

func TestFeedPublishOrder(t *testing.T) {
	var f Feed[int]
	var got []int

	f.Subscribe(func(v int) { got = append(got, v*10) })
	f.Subscribe(func(v int) { got = append(got, v*100) })

	f.Publish(2)
	if len(got) != 2 || got[0] != 20 || got[1] != 200 {
		t.Errorf("got %v", got)
	}
}

func TestFeedCancel(t *testing.T) {
	var f Feed[string]
	calls := 0
	cancel := f.Subscribe(func(string) { calls++ })

	f.Publish("a")
	cancel()
	f.Publish("b")

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if f.Len() != 0 {
		t.Errorf("len = %d, want 0", f.Len())
	}
}

func TestFeedPublishNoSubscribers(t *testing.T) {
	var f Feed[struct{}]
	f.Publish(struct{}{}) // must not panic
}
