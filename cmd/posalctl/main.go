package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/posalpro/backend/internal/bridge"
)

// posalctl is a small operator CLI that talks to a running backend
// through the bridge layer. Reads go through the shared request cache,
// so repeated lookups inside one invocation never hit the API twice.

func main() {
	var (
		addr    string
		token   string
		timeout time.Duration
	)

	flag.StringVar(&addr, "addr", envOr("POSALPRO_ADDR", "http://localhost:8080/api/v1"), "Backend API base URL, including the /api/v1 prefix")
	flag.StringVar(&token, "token", os.Getenv("POSALPRO_TOKEN"), "Bearer token (or POSALPRO_TOKEN)")
	flag.DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	flag.Parse()

	args := flag.Args()
	if len(args) < 2 {
		printUsage()
		os.Exit(1)
	}

	client := bridge.NewHTTPClient(addr,
		bridge.WithToken(token),
		bridge.WithTimeout(timeout),
	)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resource, command := args[0], args[1]
	rest := args[2:]

	var err error
	switch resource {
	case "proposals":
		err = runProposals(ctx, client, command, rest)
	case "customers":
		err = runCustomers(ctx, client, command, rest)
	case "products":
		err = runProducts(ctx, client, command, rest)
	case "dashboard":
		err = runDashboard(ctx, client, command, rest)
	default:
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runProposals(ctx context.Context, client bridge.Client, command string, args []string) error {
	b := bridge.NewProposalBridge(client)

	switch command {
	case "list":
		fs := flag.NewFlagSet("proposals list", flag.ExitOnError)
		status := fs.String("status", "", "Filter by status")
		customer := fs.String("customer", "", "Filter by customer ID")
		search := fs.String("search", "", "Search in titles")
		page := fs.Int("page", 1, "Page number")
		pageSize := fs.Int("page-size", 20, "Page size")
		if err := fs.Parse(args); err != nil {
			return err
		}
		return render(b.List(ctx, bridge.ListProposalsQuery{
			Status:   *status,
			Customer: *customer,
			Search:   *search,
			Page:     *page,
			PageSize: *pageSize,
		}))

	case "get":
		id, err := requireArg(args, "proposal ID")
		if err != nil {
			return err
		}
		return render(b.Get(ctx, id))

	case "versions":
		id, err := requireArg(args, "proposal ID")
		if err != nil {
			return err
		}
		return render(b.Versions(ctx, id))

	case "diff":
		if len(args) < 3 {
			return fmt.Errorf("usage: posalctl proposals diff <id> <from> <to>")
		}
		from, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid from version %q", args[1])
		}
		to, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid to version %q", args[2])
		}
		return render(b.Diff(ctx, args[0], from, to))

	default:
		return fmt.Errorf("unknown proposals command %q", command)
	}
}

func runCustomers(ctx context.Context, client bridge.Client, command string, args []string) error {
	b := bridge.NewCustomerBridge(client)

	switch command {
	case "list":
		fs := flag.NewFlagSet("customers list", flag.ExitOnError)
		tier := fs.String("tier", "", "Filter by tier")
		status := fs.String("status", "", "Filter by status")
		search := fs.String("search", "", "Search in names")
		page := fs.Int("page", 1, "Page number")
		pageSize := fs.Int("page-size", 20, "Page size")
		if err := fs.Parse(args); err != nil {
			return err
		}
		return render(b.List(ctx, bridge.ListCustomersQuery{
			Tier:     *tier,
			Status:   *status,
			Search:   *search,
			Page:     *page,
			PageSize: *pageSize,
		}))

	case "get":
		id, err := requireArg(args, "customer ID")
		if err != nil {
			return err
		}
		return render(b.Get(ctx, id))

	default:
		return fmt.Errorf("unknown customers command %q", command)
	}
}

func runProducts(ctx context.Context, client bridge.Client, command string, args []string) error {
	b := bridge.NewProductBridge(client)

	switch command {
	case "list":
		fs := flag.NewFlagSet("products list", flag.ExitOnError)
		category := fs.String("category", "", "Filter by category")
		active := fs.String("active", "", "Filter by active state (true/false)")
		search := fs.String("search", "", "Search in names")
		page := fs.Int("page", 1, "Page number")
		pageSize := fs.Int("page-size", 20, "Page size")
		if err := fs.Parse(args); err != nil {
			return err
		}
		query := bridge.ListProductsQuery{
			Category: *category,
			Search:   *search,
			Page:     *page,
			PageSize: *pageSize,
		}
		if *active != "" {
			v, err := strconv.ParseBool(*active)
			if err != nil {
				return fmt.Errorf("invalid active value %q", *active)
			}
			query.Active = &v
		}
		return render(b.List(ctx, query))

	case "get":
		id, err := requireArg(args, "product ID")
		if err != nil {
			return err
		}
		return render(b.Get(ctx, id))

	default:
		return fmt.Errorf("unknown products command %q", command)
	}
}

func runDashboard(ctx context.Context, client bridge.Client, command string, args []string) error {
	b := bridge.NewDashboardBridge(client)

	switch command {
	case "stats":
		return render(b.Stats(ctx))

	case "activity":
		fs := flag.NewFlagSet("dashboard activity", flag.ExitOnError)
		limit := fs.Int("limit", 20, "Number of entries")
		if err := fs.Parse(args); err != nil {
			return err
		}
		return render(b.RecentActivity(ctx, *limit))

	default:
		return fmt.Errorf("unknown dashboard command %q", command)
	}
}

// render prints the envelope data as indented JSON, or returns the
// bridge error for a failed result.
func render[T any](result bridge.Result[T]) error {
	if !result.Success {
		return result.Error
	}
	out, err := json.MarshalIndent(result.Data, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func requireArg(args []string, name string) (string, error) {
	if len(args) < 1 || args[0] == "" {
		return "", fmt.Errorf("%s required", name)
	}
	return args[0], nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func printUsage() {
	fmt.Println(`posalctl - PosalPro operator CLI

Usage:
  posalctl [flags] <resource> <command> [arguments]

Resources and commands:
  proposals list [-status S] [-customer ID] [-search Q] [-page N] [-page-size N]
  proposals get <id>
  proposals versions <id>
  proposals diff <id> <from> <to>
  customers list [-tier T] [-status S] [-search Q] [-page N] [-page-size N]
  customers get <id>
  products list [-category C] [-active true|false] [-search Q] [-page N] [-page-size N]
  products get <id>
  dashboard stats
  dashboard activity [-limit N]

Flags:
  -addr string       Backend API base URL including the /api/v1 prefix
                     (default: POSALPRO_ADDR or http://localhost:8080/api/v1)
  -token string      Bearer token (default: POSALPRO_TOKEN)
  -timeout duration  Request timeout (default: 10s)`)
}
