package universe

import (
	"reflect"
	"testing"
)

func TestStreamReplayAndOrder(t *testing.T) {
	s := NewStream[int]()
	early := newRecorder[int]()
	s.Subscribe(early.record)
	if len(early.all()) != 0 {
		t.Fatal("empty stream replayed a value")
	}

	s.Publish(1)
	s.Publish(2)
	late := newRecorder[int]()
	s.Subscribe(late.record)
	s.Publish(3)

	if got := early.all(); !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Errorf("early observer got %v", got)
	}
	if got := late.all(); !reflect.DeepEqual(got, []int{2, 3}) {
		t.Errorf("late observer got %v", got)
	}
	if v, ok := s.Value(); !ok || v != 3 {
		t.Errorf("Value() = %v, %v", v, ok)
	}
}

func TestStreamUnsubscribe(t *testing.T) {
	s := NewStreamWithValue("a")
	r := newRecorder[string]()
	unsubscribe := s.Subscribe(r.record)
	s.Publish("b")
	unsubscribe()
	unsubscribe()
	s.Publish("c")
	if got := r.all(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("got %v", got)
	}
}

func TestStreamReset(t *testing.T) {
	s := NewStreamWithValue(7)
	s.Reset()
	r := newRecorder[int]()
	s.Subscribe(r.record)
	if len(r.all()) != 0 {
		t.Fatalf("reset stream replayed %v", r.all())
	}
	if _, ok := s.Value(); ok {
		t.Fatal("reset stream still has a value")
	}
	s.Publish(8)
	if got := r.all(); !reflect.DeepEqual(got, []int{8}) {
		t.Fatalf("got %v", got)
	}
}
