package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/kevin07696/mpi-client/internal/config"
	"github.com/kevin07696/mpi-client/pkg/encoding"
	pkgerrors "github.com/kevin07696/mpi-client/pkg/errors"
	"github.com/kevin07696/mpi-client/pkg/logging"
	"github.com/kevin07696/mpi-client/pkg/mpi"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	var (
		action      = flag.String("action", "", "Action to perform: authorize, status, capture")
		orderID     = flag.String("order", "", "Order id (generated when empty)")
		amount      = flag.String("amount", "", "Amount, e.g. 10.00")
		description = flag.String("description", "", "Transaction description")
		brand       = flag.String("brand", "", "Card brand")
		name        = flag.String("name", "", "Customer name")
		email       = flag.String("email", "", "Customer email")
		country     = flag.String("country", "", "Customer country code")
		language    = flag.String("language", "", "Customer language")
		ip          = flag.String("ip", "", "Customer IP address")
		redirectURL = flag.String("redirect-url", "", "URL the customer returns to")
		id          = flag.String("id", "", "Transaction id for status and capture")
	)
	flag.Parse()

	if *action == "" {
		fmt.Println("Usage: mpi -action=<action> [options]")
		fmt.Println("Actions:")
		fmt.Println("  authorize - Start a payment and print the redirect URL")
		fmt.Println("  status    - Query a transaction (-id)")
		fmt.Println("  capture   - Capture an authorized transaction (-id)")
		os.Exit(1)
	}

	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	zapLogger, err := logging.NewFromLevel(cfg.Logger.Level, cfg.Logger.Development)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	ctx := context.Background()

	if err := resolveSecrets(ctx, cfg, zapLogger); err != nil {
		zapLogger.Fatal("Failed to resolve MPI secrets", zap.Error(err))
	}

	client, err := mpi.NewClientWithDefaults(cfg.MPI.ClientConfig(), logging.NewZapLogger(zapLogger))
	if err != nil {
		zapLogger.Fatal("Failed to create MPI client", zap.Error(err))
	}

	merchant := mpi.Merchant{RedirectURL: *redirectURL}

	switch *action {
	case "authorize":
		txAmount, err := parseAmount(*amount)
		if err != nil {
			log.Fatal(err)
		}
		if *orderID == "" {
			*orderID = uuid.NewString()
		}
		url, err := client.AuthorizePayment(ctx, merchant,
			mpi.Customer{Name: *name, Email: *email, Country: *country, Language: *language, IP: *ip},
			mpi.Transaction{Brand: *brand, OrderID: *orderID, Amount: txAmount, Description: *description},
		)
		if err != nil {
			fail(err)
		}
		fmt.Printf("Order:    %s\n", *orderID)
		fmt.Printf("Redirect: %s\n", url)

	case "status", "capture":
		if *id == "" {
			log.Fatal("-id is required for ", *action)
		}
		txAmount, err := parseAmount(*amount)
		if err != nil {
			log.Fatal(err)
		}
		transaction := mpi.Transaction{Amount: txAmount}.ToMap()

		var resp *mpi.Response
		if *action == "status" {
			resp, err = client.Status(ctx, *id, merchant.ToMap(), transaction)
		} else {
			resp, err = client.Capture(ctx, *id, merchant.ToMap(), transaction)
		}
		if err != nil {
			fail(err)
		}
		printFields(resp.Fields, "")

	default:
		fmt.Printf("Unknown action: %s\n", *action)
		os.Exit(1)
	}
}

func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}

func printFields(m *encoding.Map, indent string) {
	for _, key := range m.Keys() {
		v, _ := m.Get(key)
		if v.IsMap() {
			fmt.Printf("%s%s:\n", indent, key)
			printFields(v.Map(), indent+"  ")
			continue
		}
		fmt.Printf("%s%s: %s\n", indent, key, v.Text())
	}
}

func fail(err error) {
	var fault *pkgerrors.APIFault
	if errors.As(err, &fault) {
		fmt.Fprintf(os.Stderr, "Gateway rejected the request: %s\n", fault.Error())
		os.Exit(2)
	}
	fmt.Fprintf(os.Stderr, "Request failed: %v\n", err)
	os.Exit(1)
}
