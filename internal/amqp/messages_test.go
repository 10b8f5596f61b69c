package amqp

import "testing"

func TestMutationMessageRoundTrip(t *testing.T) {
	msg := NewMutationMessage(OpEntrySaved, "e1")
	if msg.Timestamp.IsZero() {
		t.Fatalf("expected timestamp to be set")
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := MutationMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Op != OpEntrySaved || got.ID != "e1" {
		t.Fatalf("unexpected message %+v", got)
	}
}

func TestMutationMessageFromJSONInvalid(t *testing.T) {
	if _, err := MutationMessageFromJSON([]byte("not json")); err == nil {
		t.Fatalf("expected error")
	}
}
