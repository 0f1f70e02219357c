// Package client provides test commands for the progression gRPC services
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/KirkDiggler/rpg-progression/internal/handlers/wire"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
)

// ClientCmd is the root command for all client test commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Test client commands for the progression API",
	Long:  `Client commands exercise a running server with real gRPC requests and print the JSON responses.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	// Character views
	ClientCmd.AddCommand(getCharacterCmd)
	ClientCmd.AddCommand(getBenefitsCmd)
	ClientCmd.AddCommand(listFeatsCmd)
	ClientCmd.AddCommand(setLevel1ChoiceCmd)

	// Level-up wizard
	ClientCmd.AddCommand(levelUpCmd)

	// Dice
	ClientCmd.AddCommand(rollDiceCmd)
	ClientCmd.AddCommand(getRollSessionCmd)
	ClientCmd.AddCommand(clearRollSessionCmd)
}

// createConnection creates a gRPC connection to the server
func createConnection() (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	return conn, nil
}

// call invokes one method and prints the response
func call(service, method string, req, resp any) error {
	conn, err := createConnection()
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }() // nolint:errcheck // safe to ignore in cleanup

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := wire.Invoke(ctx, conn, wire.FullMethod(service, method), req, resp); err != nil {
		return fmt.Errorf("%s failed: %w", method, err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
