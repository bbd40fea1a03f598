package live

import (
	"log/slog"

	"google.golang.org/grpc"

	pb "harbinger/internal/api/pb"
	"harbinger/internal/domain"
)

// Server implements the DecisionFeed gRPC service over a Feed.
type Server struct {
	pb.UnimplementedDecisionFeedServer
	feed *Feed
	log  *slog.Logger
}

// NewServer creates a gRPC server backed by the given feed.
func NewServer(feed *Feed, log *slog.Logger) *Server {
	return &Server{feed: feed, log: log}
}

// RegisterGRPC registers the server on the given gRPC server instance.
func (s *Server) RegisterGRPC(gs *grpc.Server) {
	pb.RegisterDecisionFeedServer(gs, s)
}

// StreamDecisions sends the retained summaries, then streams new decisions
// as each cycle completes. The stream ends when the client disconnects.
func (s *Server) StreamDecisions(req *pb.StreamDecisionsRequest, stream grpc.ServerStreamingServer[pb.DecisionEvent]) error {
	tradesOnly := req.GetTradesOnly()

	for _, sum := range s.feed.Recent() {
		if tradesOnly && sum.Order == nil {
			continue
		}
		if err := stream.Send(summaryToProto(sum)); err != nil {
			return err
		}
	}

	subID, ch := s.feed.Subscribe(256)
	defer s.feed.Unsubscribe(subID)

	s.log.Info("grpc client subscribed", "subID", subID, "tradesOnly", tradesOnly)

	ctx := stream.Context()
	for {
		select {
		case <-ctx.Done():
			s.log.Info("grpc client disconnected", "subID", subID)
			return nil
		case sum, ok := <-ch:
			if !ok {
				return nil
			}
			if tradesOnly && sum.Order == nil {
				continue
			}
			if err := stream.Send(summaryToProto(sum)); err != nil {
				return err
			}
		}
	}
}

func summaryToProto(sum domain.DecisionSummary) *pb.DecisionEvent {
	evt := &pb.DecisionEvent{
		TimestampMs: sum.Timestamp.UnixMilli(),
		Headline:    sum.Headline,
		Sentiment:   sum.Sentiment,
		Spread:      sum.Spread,
		Admitted:    sum.Admitted,
		Reason:      string(sum.Reason),
		Note:        sum.Note,
		Error:       sum.Error,
	}
	if sum.Order != nil {
		evt.Order = &pb.OrderEvent{
			Instrument: sum.Order.Instrument,
			Side:       string(sum.Order.Side),
			Units:      int64(sum.Order.Units),
			EntryPrice: sum.Order.EntryPrice,
			TakeProfit: sum.Order.TakeProfit,
			StopLoss:   sum.Order.StopLoss,
			OrderId:    sum.Order.OrderID,
			FillPrice:  sum.Order.FillPrice,
			Status:     string(sum.Order.Status),
		}
	}
	return evt
}
