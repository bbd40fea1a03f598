package live

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	pb "harbinger/internal/api/pb"
	"harbinger/internal/domain"
)

// Client connects to a DecisionFeed gRPC server and mirrors its events into a
// local feed.
type Client struct {
	addr string
	feed *Feed
	log  *slog.Logger
}

// NewClient creates a client targeting the given gRPC address.
func NewClient(addr string, feed *Feed, log *slog.Logger) *Client {
	return &Client{addr: addr, feed: feed, log: log}
}

// Sync connects to the server and streams decision events into the local
// feed. It blocks until ctx is cancelled or the stream ends.
func (c *Client) Sync(ctx context.Context) error {
	conn, err := grpc.NewClient(c.addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", c.addr, err)
	}
	defer conn.Close()

	client := pb.NewDecisionFeedClient(conn)
	stream, err := client.StreamDecisions(ctx, &pb.StreamDecisionsRequest{})
	if err != nil {
		return fmt.Errorf("starting stream: %w", err)
	}

	c.log.Info("connected to decision stream", "addr", c.addr)

	for {
		evt, err := stream.Recv()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("receiving decision: %w", err)
		}
		c.feed.Publish(protoToSummary(evt))
	}
}

func protoToSummary(evt *pb.DecisionEvent) domain.DecisionSummary {
	sum := domain.DecisionSummary{
		Timestamp: time.UnixMilli(evt.TimestampMs).UTC(),
		Headline:  evt.Headline,
		Sentiment: evt.Sentiment,
		Spread:    evt.Spread,
		Admitted:  evt.Admitted,
		Reason:    domain.RejectReason(evt.Reason),
		Note:      evt.Note,
		Error:     evt.Error,
	}
	if evt.Order != nil {
		sum.Order = &domain.OrderRecord{
			Instrument: evt.Order.Instrument,
			Side:       domain.Side(evt.Order.Side),
			Units:      int(evt.Order.Units),
			EntryPrice: evt.Order.EntryPrice,
			TakeProfit: evt.Order.TakeProfit,
			StopLoss:   evt.Order.StopLoss,
			OrderID:    evt.Order.OrderId,
			FillPrice:  evt.Order.FillPrice,
			Status:     domain.OrderStatus(evt.Order.Status),
		}
	}
	return sum
}
