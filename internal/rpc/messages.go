package rpc

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"
)

var ErrMalformedMessage = errors.New("malformed message")

// NewEvent builds a TrackEvent request. data values must be representable
// by structpb (strings, numbers, bools, nil, []any and map[string]any).
func NewEvent(name string, data map[string]any) (*structpb.Struct, error) {
	if data == nil {
		data = map[string]any{}
	}
	d, err := structpb.NewStruct(data)
	if err != nil {
		return nil, fmt.Errorf("event data: %w", err)
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"event": structpb.NewStringValue(name),
		"data":  structpb.NewStructValue(d),
	}}, nil
}

// ParseEvent extracts the event name and data of a TrackEvent request.
func ParseEvent(s *structpb.Struct) (string, map[string]any, error) {
	name := s.GetFields()["event"].GetStringValue()
	if name == "" {
		return "", nil, fmt.Errorf("%w: event is required", ErrMalformedMessage)
	}
	data := s.GetFields()["data"].GetStructValue().AsMap()
	return name, data, nil
}

// NewUploadTarget builds a BackupUploadURL response.
func NewUploadTarget(key, url string) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"key": structpb.NewStringValue(key),
		"url": structpb.NewStringValue(url),
	}}
}

// ParseUploadTarget reads key and url from a BackupUploadURL response.
func ParseUploadTarget(s *structpb.Struct) (key, url string, err error) {
	key = s.GetFields()["key"].GetStringValue()
	url = s.GetFields()["url"].GetStringValue()
	if key == "" || url == "" {
		return "", "", fmt.Errorf("%w: key and url are required", ErrMalformedMessage)
	}
	return key, url, nil
}
