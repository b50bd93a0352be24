package format

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Struct carries documents as a protobuf google.protobuf.Struct message, for
// peers that speak protobuf. All numbers come back as float64.
type Struct struct{}

var _ Format = Struct{}

func (Struct) ID() byte     { return IDStruct }
func (Struct) Name() string { return "structpb" }

func (Struct) Marshal(doc map[string]any) ([]byte, error) {
	s, err := structpb.NewStruct(doc)
	if err != nil {
		return nil, err
	}
	return proto.Marshal(s)
}

func (Struct) Unmarshal(b []byte) (map[string]any, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return s.AsMap(), nil
}
