package protocol

import (
	"reflect"
	"testing"
)

// FuzzPhoenixRoundtrip fuzzes the Phoenix tuple decoder and checks that
// anything it accepts survives an encode/decode roundtrip.
func FuzzPhoenixRoundtrip(f *testing.F) {
	f.Add([]byte(`[null,"1","lv:abc","phx_join",{}]`))
	f.Add([]byte(`["1","2","lv:abc","pointermove",{"x":10,"y":20.5}]`))
	f.Add([]byte(`["jr","ref","lv:abc","navigate",{"cta":"primary"}]`))
	f.Add([]byte(`[null,null,"t","e",null]`))
	f.Add([]byte(`["","","","",{}]`))
	f.Add([]byte(`[1,2,3,4,5]`))
	f.Add([]byte(`[]`))
	f.Add([]byte(`{"topic":"t"}`))
	f.Add([]byte(`{malformed`))
	f.Add([]byte(``))

	codec := NewPhoenixCodec()

	f.Fuzz(func(t *testing.T, data []byte) {
		msg, err := codec.Decode(data)
		if err != nil {
			return
		}

		out, err := codec.Encode(msg)
		if err != nil {
			return
		}

		msg2, err := codec.Decode(out)
		if err != nil {
			t.Fatalf("failed to decode encoded message: %v", err)
		}
		if !messagesEqual(msg, msg2) {
			t.Errorf("roundtrip mismatch: %+v != %+v", msg, msg2)
		}
	})
}

// FuzzJSONDecode checks the JSON decoder never panics and always
// classifies what it accepts.
func FuzzJSONDecode(f *testing.F) {
	f.Add([]byte(`{"ref":"1","topic":"lv:abc","event":"scroll","payload":{"top":-10}}`))
	f.Add([]byte(`{"event":"heartbeat"}`))
	f.Add([]byte(`{}`))
	f.Add([]byte(`null`))
	f.Add([]byte(`{"ref": 123}`))

	codec := NewJSONCodec()

	f.Fuzz(func(t *testing.T, data []byte) {
		msg, err := codec.Decode(data)
		if err != nil {
			return
		}
		if msg.Type != TypeOf(msg.Event) {
			t.Errorf("type %s does not match event %q", msg.Type, msg.Event)
		}
	})
}

func messagesEqual(a, b *Message) bool {
	if a.Ref != b.Ref || a.JoinRef != b.JoinRef || a.Topic != b.Topic || a.Event != b.Event || a.Type != b.Type {
		return false
	}
	if len(a.Payload) != len(b.Payload) {
		return false
	}
	for k, v := range a.Payload {
		if !reflect.DeepEqual(v, b.Payload[k]) {
			return false
		}
	}
	return true
}
