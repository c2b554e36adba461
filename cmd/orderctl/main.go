package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"job_order/internal/logger"
	"job_order/internal/orderform"
	"job_order/internal/services"
	"job_order/pkg/orderclient"
)

const usage = `usage: orderctl [-api URL] <command> [args]

commands:
  list                 latest orders
  get <orderNo>        one order as the entry grid shows it
  resave <orderNo>     load, validate and save an order again
  products [search]
  customers [search]`

func main() {
	api := flag.String("api", envOr("ORDER_API_URL", "http://localhost:8080"), "order API base URL")
	timeout := flag.Duration("timeout", 30*time.Second, "request timeout")
	flag.Usage = func() { fmt.Fprintln(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client := orderclient.NewClient(*api)
	if err := run(ctx, client, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, client *orderclient.Client, args []string) error {
	arg := func(i int) string {
		if len(args) > i {
			return args[i]
		}
		return ""
	}

	switch args[0] {
	case "list":
		orders, err := client.FetchAllOrders(ctx)
		if err != nil {
			return err
		}
		return printJSON(orders)
	case "products":
		products, err := client.FetchProducts(ctx, arg(1))
		if err != nil {
			return err
		}
		return printJSON(products)
	case "customers":
		customers, err := client.FetchCustomers(ctx, arg(1))
		if err != nil {
			return err
		}
		return printJSON(customers)
	case "get", "resave":
		if arg(1) == "" {
			return fmt.Errorf("%s needs an order number", args[0])
		}
		return openOrder(ctx, client, arg(1), args[0] == "resave")
	}
	return fmt.Errorf("unknown command %q", args[0])
}

// openOrder runs an entry session against the remote store.
func openOrder(ctx context.Context, client *orderclient.Client, orderNo string, resave bool) error {
	log, err := logger.NewZapLogger("warn")
	if err != nil {
		return err
	}
	defer log.Sync()

	entry := services.NewEntryService(client, orderform.AdminFields{}, log)
	s := entry.NewSession()
	if err := entry.Open(ctx, s, orderNo); err != nil {
		if orderclient.IsNotFound(err) {
			return fmt.Errorf("order %s does not exist", orderNo)
		}
		return err
	}

	if !resave {
		pieces, weight := s.Form.Totals()
		fmt.Printf("Order %s  %s  PO %s  %s\n", s.Form.Header.OrderNo, s.Form.Header.CustomerName, s.Form.Header.PONumber, s.Form.Header.Measurement)
		for _, r := range s.Form.Rows {
			if r.Product == "" {
				continue
			}
			fmt.Printf("%3d  %-30s  %8s x %-8s  g%-4s  pcs %-8s  req %s\n", r.Sno, r.Product, r.Width, r.Length, r.Gauge, r.Pieces, r.ReqWgt)
		}
		fmt.Printf("Total pieces %s, total weight %s\n", orderform.FormatPieces(pieces), weight)
		return nil
	}

	res, err := entry.Save(ctx, s)
	if err != nil {
		return err
	}
	fmt.Println(res.Message)
	return nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
