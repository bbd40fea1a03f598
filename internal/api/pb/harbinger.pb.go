// Code generated by protoc-gen-go. DO NOT EDIT.
// versions:
// 	protoc-gen-go v1.36.11
// 	protoc        (unknown)
// source: harbinger.proto

package pb

import (
	protoreflect "google.golang.org/protobuf/reflect/protoreflect"
	protoimpl "google.golang.org/protobuf/runtime/protoimpl"
	reflect "reflect"
	sync "sync"
	unsafe "unsafe"
)

const (
	// Verify that this generated code is sufficiently up-to-date.
	_ = protoimpl.EnforceVersion(20 - protoimpl.MinVersion)
	// Verify that runtime/protoimpl is sufficiently up-to-date.
	_ = protoimpl.EnforceVersion(protoimpl.MaxVersion - 20)
)

type StreamDecisionsRequest struct {
	state protoimpl.MessageState `protogen:"open.v1"`
	// When true, only cycles that produced an order attempt are sent.
	TradesOnly    bool `protobuf:"varint,1,opt,name=trades_only,json=tradesOnly,proto3" json:"trades_only,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *StreamDecisionsRequest) Reset() {
	*x = StreamDecisionsRequest{}
	mi := &file_harbinger_proto_msgTypes[0]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *StreamDecisionsRequest) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*StreamDecisionsRequest) ProtoMessage() {}

func (x *StreamDecisionsRequest) ProtoReflect() protoreflect.Message {
	mi := &file_harbinger_proto_msgTypes[0]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use StreamDecisionsRequest.ProtoReflect.Descriptor instead.
func (*StreamDecisionsRequest) Descriptor() ([]byte, []int) {
	return file_harbinger_proto_rawDescGZIP(), []int{0}
}

func (x *StreamDecisionsRequest) GetTradesOnly() bool {
	if x != nil {
		return x.TradesOnly
	}
	return false
}

type OrderEvent struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Instrument    string                 `protobuf:"bytes,1,opt,name=instrument,proto3" json:"instrument,omitempty"`
	Side          string                 `protobuf:"bytes,2,opt,name=side,proto3" json:"side,omitempty"`
	Units         int64                  `protobuf:"varint,3,opt,name=units,proto3" json:"units,omitempty"`
	EntryPrice    float64                `protobuf:"fixed64,4,opt,name=entry_price,json=entryPrice,proto3" json:"entry_price,omitempty"`
	TakeProfit    float64                `protobuf:"fixed64,5,opt,name=take_profit,json=takeProfit,proto3" json:"take_profit,omitempty"`
	StopLoss      float64                `protobuf:"fixed64,6,opt,name=stop_loss,json=stopLoss,proto3" json:"stop_loss,omitempty"`
	OrderId       string                 `protobuf:"bytes,7,opt,name=order_id,json=orderId,proto3" json:"order_id,omitempty"`
	FillPrice     float64                `protobuf:"fixed64,8,opt,name=fill_price,json=fillPrice,proto3" json:"fill_price,omitempty"`
	Status        string                 `protobuf:"bytes,9,opt,name=status,proto3" json:"status,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *OrderEvent) Reset() {
	*x = OrderEvent{}
	mi := &file_harbinger_proto_msgTypes[1]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *OrderEvent) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*OrderEvent) ProtoMessage() {}

func (x *OrderEvent) ProtoReflect() protoreflect.Message {
	mi := &file_harbinger_proto_msgTypes[1]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use OrderEvent.ProtoReflect.Descriptor instead.
func (*OrderEvent) Descriptor() ([]byte, []int) {
	return file_harbinger_proto_rawDescGZIP(), []int{1}
}

func (x *OrderEvent) GetInstrument() string {
	if x != nil {
		return x.Instrument
	}
	return ""
}

func (x *OrderEvent) GetSide() string {
	if x != nil {
		return x.Side
	}
	return ""
}

func (x *OrderEvent) GetUnits() int64 {
	if x != nil {
		return x.Units
	}
	return 0
}

func (x *OrderEvent) GetEntryPrice() float64 {
	if x != nil {
		return x.EntryPrice
	}
	return 0
}

func (x *OrderEvent) GetTakeProfit() float64 {
	if x != nil {
		return x.TakeProfit
	}
	return 0
}

func (x *OrderEvent) GetStopLoss() float64 {
	if x != nil {
		return x.StopLoss
	}
	return 0
}

func (x *OrderEvent) GetOrderId() string {
	if x != nil {
		return x.OrderId
	}
	return ""
}

func (x *OrderEvent) GetFillPrice() float64 {
	if x != nil {
		return x.FillPrice
	}
	return 0
}

func (x *OrderEvent) GetStatus() string {
	if x != nil {
		return x.Status
	}
	return ""
}

type DecisionEvent struct {
	state protoimpl.MessageState `protogen:"open.v1"`
	// Cycle timestamp as Unix milliseconds UTC.
	TimestampMs int64   `protobuf:"varint,1,opt,name=timestamp_ms,json=timestampMs,proto3" json:"timestamp_ms,omitempty"`
	Headline    string  `protobuf:"bytes,2,opt,name=headline,proto3" json:"headline,omitempty"`
	Sentiment   float64 `protobuf:"fixed64,3,opt,name=sentiment,proto3" json:"sentiment,omitempty"`
	Spread      float64 `protobuf:"fixed64,4,opt,name=spread,proto3" json:"spread,omitempty"`
	Admitted    bool    `protobuf:"varint,5,opt,name=admitted,proto3" json:"admitted,omitempty"`
	Reason      string  `protobuf:"bytes,6,opt,name=reason,proto3" json:"reason,omitempty"`
	Note        string  `protobuf:"bytes,7,opt,name=note,proto3" json:"note,omitempty"`
	Error       string  `protobuf:"bytes,8,opt,name=error,proto3" json:"error,omitempty"`
	// Present only when the cycle attempted an order.
	Order         *OrderEvent `protobuf:"bytes,9,opt,name=order,proto3" json:"order,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *DecisionEvent) Reset() {
	*x = DecisionEvent{}
	mi := &file_harbinger_proto_msgTypes[2]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *DecisionEvent) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*DecisionEvent) ProtoMessage() {}

func (x *DecisionEvent) ProtoReflect() protoreflect.Message {
	mi := &file_harbinger_proto_msgTypes[2]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use DecisionEvent.ProtoReflect.Descriptor instead.
func (*DecisionEvent) Descriptor() ([]byte, []int) {
	return file_harbinger_proto_rawDescGZIP(), []int{2}
}

func (x *DecisionEvent) GetTimestampMs() int64 {
	if x != nil {
		return x.TimestampMs
	}
	return 0
}

func (x *DecisionEvent) GetHeadline() string {
	if x != nil {
		return x.Headline
	}
	return ""
}

func (x *DecisionEvent) GetSentiment() float64 {
	if x != nil {
		return x.Sentiment
	}
	return 0
}

func (x *DecisionEvent) GetSpread() float64 {
	if x != nil {
		return x.Spread
	}
	return 0
}

func (x *DecisionEvent) GetAdmitted() bool {
	if x != nil {
		return x.Admitted
	}
	return false
}

func (x *DecisionEvent) GetReason() string {
	if x != nil {
		return x.Reason
	}
	return ""
}

func (x *DecisionEvent) GetNote() string {
	if x != nil {
		return x.Note
	}
	return ""
}

func (x *DecisionEvent) GetError() string {
	if x != nil {
		return x.Error
	}
	return ""
}

func (x *DecisionEvent) GetOrder() *OrderEvent {
	if x != nil {
		return x.Order
	}
	return nil
}

var File_harbinger_proto protoreflect.FileDescriptor

const file_harbinger_proto_rawDesc = "" +
	"\n" +
	"\x0fharbinger.proto\x12\fharbinger.v1\"9\n" +
	"\x16StreamDecisionsRequest\x12\x1f\n" +
	"\vtrades_only\x18\x01 \x01(\bR\n" +
	"tradesOnly\"\x87\x02\n" +
	"\n" +
	"OrderEvent\x12\x1e\n" +
	"\n" +
	"instrument\x18\x01 \x01(\tR\n" +
	"instrument\x12\x12\n" +
	"\x04side\x18\x02 \x01(\tR\x04side\x12\x14\n" +
	"\x05units\x18\x03 \x01(\x03R\x05units\x12\x1f\n" +
	"\ventry_price\x18\x04 \x01(\x01R\n" +
	"entryPrice\x12\x1f\n" +
	"\vtake_profit\x18\x05 \x01(\x01R\n" +
	"takeProfit\x12\x1b\n" +
	"\tstop_loss\x18\x06 \x01(\x01R\bstopLoss\x12\x19\n" +
	"\border_id\x18\a \x01(\tR\aorderId\x12\x1d\n" +
	"\n" +
	"fill_price\x18\b \x01(\x01R\tfillPrice\x12\x16\n" +
	"\x06status\x18\t \x01(\tR\x06status\"\x92\x02\n" +
	"\rDecisionEvent\x12!\n" +
	"\ftimestamp_ms\x18\x01 \x01(\x03R\vtimestampMs\x12\x1a\n" +
	"\bheadline\x18\x02 \x01(\tR\bheadline\x12\x1c\n" +
	"\tsentiment\x18\x03 \x01(\x01R\tsentiment\x12\x16\n" +
	"\x06spread\x18\x04 \x01(\x01R\x06spread\x12\x1a\n" +
	"\badmitted\x18\x05 \x01(\bR\badmitted\x12\x16\n" +
	"\x06reason\x18\x06 \x01(\tR\x06reason\x12\x12\n" +
	"\x04note\x18\a \x01(\tR\x04note\x12\x14\n" +
	"\x05error\x18\b \x01(\tR\x05error\x12.\n" +
	"\x05order\x18\t \x01(\v2\x18.harbinger.v1.OrderEventR\x05order2f\n" +
	"\fDecisionFeed\x12V\n" +
	"\x0fStreamDecisions\x12$.harbinger.v1.StreamDecisionsRequest\x1a\x1b.harbinger.v1.DecisionEvent0\x01B\x1eZ\x1charbinger/internal/api/pb;pbb\x06proto3"

var (
	file_harbinger_proto_rawDescOnce sync.Once
	file_harbinger_proto_rawDescData []byte
)

func file_harbinger_proto_rawDescGZIP() []byte {
	file_harbinger_proto_rawDescOnce.Do(func() {
		file_harbinger_proto_rawDescData = protoimpl.X.CompressGZIP(unsafe.Slice(unsafe.StringData(file_harbinger_proto_rawDesc), len(file_harbinger_proto_rawDesc)))
	})
	return file_harbinger_proto_rawDescData
}

var file_harbinger_proto_msgTypes = make([]protoimpl.MessageInfo, 3)
var file_harbinger_proto_goTypes = []any{
	(*StreamDecisionsRequest)(nil), // 0: harbinger.v1.StreamDecisionsRequest
	(*OrderEvent)(nil),             // 1: harbinger.v1.OrderEvent
	(*DecisionEvent)(nil),          // 2: harbinger.v1.DecisionEvent
}
var file_harbinger_proto_depIdxs = []int32{
	1, // 0: harbinger.v1.DecisionEvent.order:type_name -> harbinger.v1.OrderEvent
	0, // 1: harbinger.v1.DecisionFeed.StreamDecisions:input_type -> harbinger.v1.StreamDecisionsRequest
	2, // 2: harbinger.v1.DecisionFeed.StreamDecisions:output_type -> harbinger.v1.DecisionEvent
	2, // [2:3] is the sub-list for method output_type
	1, // [1:2] is the sub-list for method input_type
	1, // [1:1] is the sub-list for extension type_name
	1, // [1:1] is the sub-list for extension extendee
	0, // [0:1] is the sub-list for field type_name
}

func init() { file_harbinger_proto_init() }
func file_harbinger_proto_init() {
	if File_harbinger_proto != nil {
		return
	}
	type x struct{}
	out := protoimpl.TypeBuilder{
		File: protoimpl.DescBuilder{
			GoPackagePath: reflect.TypeOf(x{}).PkgPath(),
			RawDescriptor: unsafe.Slice(unsafe.StringData(file_harbinger_proto_rawDesc), len(file_harbinger_proto_rawDesc)),
			NumEnums:      0,
			NumMessages:   3,
			NumExtensions: 0,
			NumServices:   1,
		},
		GoTypes:           file_harbinger_proto_goTypes,
		DependencyIndexes: file_harbinger_proto_depIdxs,
		MessageInfos:      file_harbinger_proto_msgTypes,
	}.Build()
	File_harbinger_proto = out.File
	file_harbinger_proto_goTypes = nil
	file_harbinger_proto_depIdxs = nil
}
