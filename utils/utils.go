package utils

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/kevin-chtw/tw_mjlog/mahjong"
	"github.com/topfreegames/pitaya/v3/pkg/logger"
	"google.golang.org/protobuf/encoding/protodelim"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/anypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	FormatJSONL = "jsonl"
	FormatPB    = "pb"
)

func TypeUrl(src proto.Message) string {
	any, err := anypb.New(src)
	if err != nil {
		logger.Log.Error(err)
		return ""
	}

	return any.GetTypeUrl()
}

// EventStruct converts an event to a Struct holding the same fields as its
// JSON form.
func EventStruct(ev mahjong.Event) (*structpb.Struct, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}
	s := &structpb.Struct{}
	if err := protojson.Unmarshal(data, s); err != nil {
		return nil, err
	}
	return s, nil
}

func EventsList(events []mahjong.Event) (*structpb.ListValue, error) {
	list := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(events))}
	for _, ev := range events {
		s, err := EventStruct(ev)
		if err != nil {
			return nil, err
		}
		list.Values = append(list.Values, structpb.NewStructValue(s))
	}
	return list, nil
}

// WriteEvents writes one JSON object per line, or length-delimited Struct
// messages for the pb format.
func WriteEvents(w io.Writer, events []mahjong.Event, format string) error {
	switch format {
	case FormatJSONL, "":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		for _, ev := range events {
			if err := enc.Encode(ev); err != nil {
				return err
			}
		}
		return nil
	case FormatPB:
		opts := protodelim.MarshalOptions{MarshalOptions: proto.MarshalOptions{Deterministic: true}}
		for _, ev := range events {
			s, err := EventStruct(ev)
			if err != nil {
				return err
			}
			if _, err := opts.MarshalTo(w, s); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unknown output format %q", format)
}
