package utils

import (
	"errors"
	"testing"
)

func TestDecodeDataURI(t *testing.T) {
	data, contentType, err := DecodeDataURI("data:image/png;base64,aGVsbG8=")
	if err != nil {
		t.Fatalf("DecodeDataURI returned error: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("expected payload %q, got %q", "hello", string(data))
	}
	if contentType != "image/png" {
		t.Fatalf("expected content type image/png, got %q", contentType)
	}
}

func TestDecodeDataURI_Invalid(t *testing.T) {
	cases := []string{
		"",
		"aGVsbG8=",
		"data:image/png;base64",
		"data:;base64,aGVsbG8=",
		"data:image/png,aGVsbG8=",
		"data:image/png;base64,not%%%base64",
	}
	for _, uri := range cases {
		if _, _, err := DecodeDataURI(uri); !errors.Is(err, ErrInvalidDataURI) {
			t.Fatalf("uri %q: expected ErrInvalidDataURI, got %v", uri, err)
		}
	}
}
