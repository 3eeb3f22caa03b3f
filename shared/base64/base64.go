package base64

import (
	b64 "encoding/base64"
	"errors"
	"strings"
)

const payloadMarker = ";base64,"

func GetContentType(file string) string {
	start := len("data:")
	end := strings.Index(file, payloadMarker)

	if end == -1 || end < start {
		return ""
	}

	return file[start:end]
}

// Decode strips the data URI prefix and decodes the payload.
func Decode(file string) ([]byte, error) {
	idx := strings.Index(file, payloadMarker)
	if idx == -1 {
		return nil, errors.New("not a base64 data URI")
	}

	data, err := b64.StdEncoding.DecodeString(file[idx+len(payloadMarker):])
	if err != nil {
		return nil, errors.New("malformed base64 payload")
	}

	return data, nil
}
