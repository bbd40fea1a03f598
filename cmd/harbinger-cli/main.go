// harbinger-cli is the operator's command-line client for the trader's
// dashboard API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"harbinger/internal/dashboard"
	"harbinger/pkg/harbinger"
)

const version = "0.1.0"

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: harbinger-cli <command> [options]\n\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  version          Print the CLI version\n")
		fmt.Fprintf(os.Stderr, "  status           Show engine status\n")
		fmt.Fprintf(os.Stderr, "  trades           List recent trades\n")
		fmt.Fprintf(os.Stderr, "  articles [date]  List scored headlines (today or an archive date)\n")
		fmt.Fprintf(os.Stderr, "  decisions        List recent decision cycles\n")
		fmt.Fprintf(os.Stderr, "  enable           Enable trading\n")
		fmt.Fprintf(os.Stderr, "  disable          Disable trading\n")
		fmt.Fprintf(os.Stderr, "  reset-loss       Reset the daily loss window\n")
		fmt.Fprintf(os.Stderr, "\nThe API address comes from HARBINGER_ADDR (default http://localhost:8090).\n")
	}

	if len(os.Args) < 2 {
		flag.Usage()
		os.Exit(1)
	}

	addr := "http://localhost:8090"
	if a := os.Getenv("HARBINGER_ADDR"); a != "" {
		addr = a
	}
	client := harbinger.NewClient(addr)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "version":
		fmt.Printf("harbinger-cli %s\n", version)
	case "status":
		err = printStatus(ctx, client)
	case "trades":
		err = printTrades(ctx, client)
	case "articles":
		date := ""
		if len(os.Args) > 2 {
			date = os.Args[2]
		}
		err = printArticles(ctx, client, date)
	case "decisions":
		err = printDecisions(ctx, client)
	case "enable":
		err = client.SetEnabled(ctx, true)
		if err == nil {
			fmt.Println("trading enabled")
		}
	case "disable":
		err = client.SetEnabled(ctx, false)
		if err == nil {
			fmt.Println("trading disabled")
		}
	case "reset-loss":
		err = client.ResetDailyLoss(ctx)
		if err == nil {
			fmt.Println("daily loss window reset")
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		flag.Usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printStatus(ctx context.Context, client *harbinger.Client) error {
	s, err := client.GetStatus(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("light:       %s\n", s.Light)
	fmt.Printf("enabled:     %v\n", s.Enabled)
	fmt.Printf("dry run:     %v\n", s.DryRun)
	fmt.Printf("instrument:  %s\n", s.Instrument)
	if s.LastBeat != "" {
		fmt.Printf("last beat:   %s\n", s.LastBeat)
	}
	if s.LastTradeAt != "" {
		fmt.Printf("last trade:  %s\n", s.LastTradeAt)
	}
	fmt.Printf("daily loss:  %s\n", dashboard.FormatUSD(s.DailyLossUSD))
	return nil
}

func printTrades(ctx context.Context, client *harbinger.Client) error {
	trades, err := client.GetTrades(ctx, "", 20)
	if err != nil {
		return err
	}
	if len(trades) == 0 {
		fmt.Println("no trades")
		return nil
	}
	for _, t := range trades {
		fmt.Printf("%-20s  %-4s %10s  @%-9s  tp %-9s sl %-9s  %-9s %s\n",
			t.Time, t.Side, dashboard.FormatInt(t.Units),
			dashboard.FormatPrice(t.Instrument, t.EntryPrice),
			dashboard.FormatPrice(t.Instrument, t.TakeProfit),
			dashboard.FormatPrice(t.Instrument, t.StopLoss),
			t.Status, t.Headline)
	}
	return nil
}

func printArticles(ctx context.Context, client *harbinger.Client, date string) error {
	var (
		articles []harbinger.Article
		err      error
	)
	if date == "" {
		articles, err = client.GetArticles(ctx, 20)
	} else {
		articles, err = client.GetArticlesByDate(ctx, date)
	}
	if err != nil {
		return err
	}
	if len(articles) == 0 {
		fmt.Println("no articles")
		return nil
	}
	for _, a := range articles {
		fmt.Printf("%-20s  %s  %-13s %s\n",
			a.Time, dashboard.FormatSentiment(a.Sentiment), a.Source, a.Headline)
	}
	return nil
}

func printDecisions(ctx context.Context, client *harbinger.Client) error {
	decisions, err := client.GetDecisions(ctx)
	if err != nil {
		return err
	}
	if len(decisions) == 0 {
		fmt.Println("no decisions yet")
		return nil
	}
	for _, d := range decisions {
		fmt.Print(formatDecision(d))
	}
	return nil
}

func formatDecision(d harbinger.Decision) string {
	outcome := d.Reason
	switch {
	case d.Error != "":
		outcome = "FAULT: " + d.Error
	case d.Admitted && d.Order != nil:
		outcome = fmt.Sprintf("%s %s %s", d.Order.Status, d.Order.Side,
			dashboard.FormatInt(d.Order.Units))
	case d.Note != "":
		outcome = d.Note
	}
	line := fmt.Sprintf("%-20s  %s  %s", d.Time, dashboard.FormatSentiment(d.Sentiment), outcome)
	if d.Headline != "" {
		line += "  | " + d.Headline
	}
	return line + "\n"
}
