// Package pb holds the wire representation of sessions and frames. The same
// messages are written to recordings as length delimited protobuf and served
// to spectators as JSON.
package pb

import (
	proto "github.com/gogo/protobuf/proto"
)

// Point is a board cell.
type Point struct {
	X int32 `protobuf:"varint,1,opt,name=X,proto3" json:"x"`
	Y int32 `protobuf:"varint,2,opt,name=Y,proto3" json:"y"`
}

func (m *Point) Reset()         { *m = Point{} }
func (m *Point) String() string { return proto.CompactTextString(m) }
func (*Point) ProtoMessage()    {}

// Session describes a single run of the game, which can span restarts.
type Session struct {
	ID      string `protobuf:"bytes,1,opt,name=ID,proto3" json:"id"`
	Width   int32  `protobuf:"varint,2,opt,name=Width,proto3" json:"width"`
	Height  int32  `protobuf:"varint,3,opt,name=Height,proto3" json:"height"`
	Status  string `protobuf:"bytes,4,opt,name=Status,proto3" json:"status"`
	Started int64  `protobuf:"varint,5,opt,name=Started,proto3" json:"started"`
}

func (m *Session) Reset()         { *m = Session{} }
func (m *Session) String() string { return proto.CompactTextString(m) }
func (*Session) ProtoMessage()    {}

// Frame is the state of the board after a tick.
type Frame struct {
	Turn         int64    `protobuf:"varint,1,opt,name=Turn,proto3" json:"turn"`
	Width        int32    `protobuf:"varint,2,opt,name=Width,proto3" json:"width"`
	Height       int32    `protobuf:"varint,3,opt,name=Height,proto3" json:"height"`
	Snake        []*Point `protobuf:"bytes,4,rep,name=Snake" json:"snake"`
	Food         *Point   `protobuf:"bytes,5,opt,name=Food" json:"food"`
	Score        int32    `protobuf:"varint,6,opt,name=Score,proto3" json:"score"`
	Status       string   `protobuf:"bytes,7,opt,name=Status,proto3" json:"status"`
	ShowControls bool     `protobuf:"varint,8,opt,name=ShowControls,proto3" json:"showControls"`
	// Seq is the position of the frame among every frame pushed for its
	// session. Stores assign it and keep counting after old frames are
	// dropped.
	Seq int64 `protobuf:"varint,9,opt,name=Seq,proto3" json:"seq"`
}

func (m *Frame) Reset()         { *m = Frame{} }
func (m *Frame) String() string { return proto.CompactTextString(m) }
func (*Frame) ProtoMessage()    {}

// StatusResponse is returned by the status endpoint.
type StatusResponse struct {
	Session   *Session `protobuf:"bytes,1,opt,name=Session" json:"session"`
	LastFrame *Frame   `protobuf:"bytes,2,opt,name=LastFrame" json:"lastFrame"`
}

func (m *StatusResponse) Reset()         { *m = StatusResponse{} }
func (m *StatusResponse) String() string { return proto.CompactTextString(m) }
func (*StatusResponse) ProtoMessage()    {}

// ListFramesResponse is returned by the frames endpoint.
type ListFramesResponse struct {
	Frames []*Frame `protobuf:"bytes,1,rep,name=Frames" json:"frames"`
	Count  int32    `protobuf:"varint,2,opt,name=Count,proto3" json:"count"`
}

func (m *ListFramesResponse) Reset()         { *m = ListFramesResponse{} }
func (m *ListFramesResponse) String() string { return proto.CompactTextString(m) }
func (*ListFramesResponse) ProtoMessage()    {}
