package bridge

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"io"
	"testing"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	env, err := NewEnvelope(TypeAck, AckMessage{Status: "ok", Detail: "enrolled"})
	if err != nil {
		t.Fatalf("NewEnvelope: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteEnvelope(&buf, env); err != nil {
		t.Fatalf("WriteEnvelope: %v", err)
	}

	got, err := ReadEnvelope(&buf)
	if err != nil {
		t.Fatalf("ReadEnvelope: %v", err)
	}
	if got.Type != TypeAck {
		t.Errorf("type = %q, want %q", got.Type, TypeAck)
	}

	var ack AckMessage
	if err := json.Unmarshal(got.Data, &ack); err != nil {
		t.Fatalf("unmarshal ack: %v", err)
	}
	if ack.Status != "ok" || ack.Detail != "enrolled" {
		t.Errorf("ack = %+v, payload did not survive the trip", ack)
	}
}

func TestReadEnvelopeLengthGuards(t *testing.T) {
	cases := []struct {
		name   string
		length uint32
	}{
		{"zero length", 0},
		{"oversized frame", maxFrame + 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := binary.Write(&buf, binary.LittleEndian, tc.length); err != nil {
				t.Fatalf("write prefix: %v", err)
			}
			if _, err := ReadEnvelope(&buf); err == nil {
				t.Error("ReadEnvelope accepted a bad length")
			}
		})
	}
}

func TestReadEnvelopeTruncatedPayload(t *testing.T) {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, uint32(50)); err != nil {
		t.Fatalf("write prefix: %v", err)
	}
	buf.WriteString("short")

	_, err := ReadEnvelope(&buf)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("err = %v, want an unexpected EOF", err)
	}
}

func TestReadEnvelopeRejectsBadJSON(t *testing.T) {
	payload := []byte("not an envelope")
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, uint32(len(payload))); err != nil {
		t.Fatalf("write prefix: %v", err)
	}
	buf.Write(payload)

	if _, err := ReadEnvelope(&buf); err == nil {
		t.Error("ReadEnvelope accepted garbage")
	}
}

func TestNewEnvelopeRejectsUnmarshalableData(t *testing.T) {
	if _, err := NewEnvelope(TypeNotice, make(chan int)); err == nil {
		t.Error("NewEnvelope marshaled a channel")
	}
}
