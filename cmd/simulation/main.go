package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/alimahmoud/usdt-orders/internal/builder"
	"github.com/alimahmoud/usdt-orders/internal/order"
	"github.com/alimahmoud/usdt-orders/pkg/response"
)

const serverAddress = "http://localhost:8080"

// init configures the logger for the simulation with pretty printing and timestamp
func init() {
	// Configure pretty logging
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()
}

// main walks the order form end to end against a running server: one buy
// order and one sell order, logging every transition. The server must have a
// working delivery credential for the submissions to succeed.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := checkQuote(ctx); err != nil {
		log.Fatal().Err(err).Msg("Quote check failed")
	}

	if err := runBuyScenario(ctx); err != nil {
		log.Fatal().Err(err).Msg("Buy scenario failed")
	}

	if err := runSellScenario(ctx); err != nil {
		log.Fatal().Err(err).Msg("Sell scenario failed")
	}

	log.Info().Msg("Simulation completed successfully")
}

// checkQuote asks the server for a fee breakdown and logs it.
func checkQuote(ctx context.Context) error {
	url := fmt.Sprintf("%s/api/v1/quote?side=buy&amount=200&network=trc20", serverAddress)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("quote failed with status: %d", resp.StatusCode)
	}

	var result response.Response
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}

	log.Info().Interface("quote", result.Data).Msg("Quote for buying 200 USDT over trc20")
	return nil
}

// runBuyScenario walks a buy order through all five steps.
func runBuyScenario(ctx context.Context) error {
	logger := log.With().Str("scenario", "buy").Logger()

	b := builder.New(builder.NewClient(serverAddress + "/api/v1/orders"))

	b.SetIdentity(order.Identity{
		Name:            "Ali Mahmoud",
		Phone:           "0999123456",
		City:            "Damascus",
		TransactionType: order.DirectionBuy,
	})
	if err := b.Next(); err != nil {
		return err
	}
	logger.Info().Str("step", b.Step().String()).Msg("Identity accepted")

	b.SetBuyOrder(order.BuyOrder{
		Amount:        decimal.NewFromInt(200),
		Network:       order.NetworkTRC20,
		Address:       "TD2LoErPRkVPBxDk72ZErtiyi6agirZQjX",
		PaymentMethod: "syriatelcash",
		Note:          "simulation order",
	})
	if err := b.Next(); err != nil {
		return err
	}
	logger.Info().Str("step", b.Step().String()).Msg("Buy details accepted")

	// Take one step back and forward again to exercise navigation.
	if err := b.Back(); err != nil {
		return err
	}
	if err := b.Next(); err != nil {
		return err
	}

	if err := b.Next(); err != nil {
		return err
	}
	logger.Info().Str("step", b.Step().String()).Msg("Order reviewed")

	if err := b.Submit(ctx); err != nil {
		logger.Error().Str("user_error", b.SubmitError()).Err(err).Msg("Submission failed")
		return err
	}
	logger.Info().Str("step", b.Step().String()).Msg("Order submitted")

	return b.Reset()
}

// runSellScenario walks a sell order through all five steps.
func runSellScenario(ctx context.Context) error {
	logger := log.With().Str("scenario", "sell").Logger()

	b := builder.New(builder.NewClient(serverAddress + "/api/v1/orders"))

	b.SetIdentity(order.Identity{
		Name:            "Ali Mahmoud",
		Phone:           "0999123456",
		City:            "Latakia",
		TransactionType: order.DirectionSell,
	})
	if err := b.Next(); err != nil {
		return err
	}
	logger.Info().Str("step", b.Step().String()).Msg("Identity accepted")

	b.SetSellOrder(order.SellOrder{
		Amount:          decimal.NewFromInt(50),
		Network:         order.NetworkBEP20,
		ReceivingMethod: "shamcash",
		AccountDetails:  "5991161126028260",
	})
	if err := b.Next(); err != nil {
		return err
	}
	logger.Info().Str("step", b.Step().String()).Msg("Sell details accepted")

	if err := b.Next(); err != nil {
		return err
	}
	logger.Info().Str("step", b.Step().String()).Msg("Order reviewed")

	if err := b.Submit(ctx); err != nil {
		logger.Error().Str("user_error", b.SubmitError()).Err(err).Msg("Submission failed")
		return err
	}
	logger.Info().Str("step", b.Step().String()).Msg("Order submitted")

	return b.Reset()
}
