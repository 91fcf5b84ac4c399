package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/MrKriegler/go-autoquote/internal/core"
	"github.com/MrKriegler/go-autoquote/internal/platform/config"
	"github.com/MrKriegler/go-autoquote/internal/platform/logging"
	"github.com/MrKriegler/go-autoquote/internal/store/dynamo"
	"github.com/MrKriegler/go-autoquote/internal/store/mongo"
)

func main() {
	cfg := config.MustLoad()
	log := logging.New(cfg.Env)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	policies, err := buildPolicyRepo(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize storage", "err", err)
		os.Exit(1)
	}

	svc := core.NewQuoteService(policies, log)

	log.Info("seeding demo quotes", "db_type", cfg.DBType)
	seedQuotes(ctx, svc)
	log.Info("done seeding")
}

func buildPolicyRepo(ctx context.Context, cfg *config.Config, log *slog.Logger) (core.PolicyRepo, error) {
	switch cfg.DBType {
	case "mongo":
		client, err := mongo.NewClient(cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to mongo: %w", err)
		}
		if err := mongo.EnsureIndexes(ctx, client.DB); err != nil {
			return nil, fmt.Errorf("ensure mongo indexes: %w", err)
		}
		return mongo.NewPolicyRepo(client.DB, 5*time.Second), nil

	case "dynamodb":
		client, err := dynamo.NewClient(ctx, dynamo.Config{
			Region:          cfg.AWSRegion,
			Endpoint:        cfg.DynamoDBEndpoint,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		})
		if err != nil {
			return nil, fmt.Errorf("connect to dynamodb: %w", err)
		}
		if err := dynamo.EnsureTables(ctx, client.DB, log); err != nil {
			return nil, fmt.Errorf("ensure dynamodb tables: %w", err)
		}
		return dynamo.NewPolicyRepo(client.DB), nil

	default:
		return nil, fmt.Errorf("unsupported DB_TYPE %q (want dynamodb or mongo)", cfg.DBType)
	}
}

func seedQuotes(ctx context.Context, svc core.QuoteService) {
	inputs := []core.QuoteInput{
		{
			// Complete quote, lands in quoted and is ready to bind.
			Driver: core.Driver{
				FirstName:     "Maria",
				LastName:      "Santos",
				Email:         "maria.santos@example.com",
				DateOfBirth:   "1987-04-12",
				LicenseNumber: "S1234567",
			},
			Vehicles: []core.Vehicle{
				{Year: 2022, Make: "Toyota", Model: "RAV4", VIN: "JTMB6RFV5ND523118"},
			},
			Address: core.Address{
				Street: "14 Harbor Lane", City: "Portland", State: "OR", Zip: "97202",
			},
			Coverages: &core.CoverageSelection{
				BodilyInjury:   "100/300",
				PropertyDamage: 50000,
				Collision:      &core.DeductibleOption{Deductible: 500},
				Comprehensive:  &core.DeductibleOption{Deductible: 500},
			},
		},
		{
			// Two vehicles and an additional driver, full coverage menu.
			Driver: core.Driver{
				FirstName:     "James",
				LastName:      "Okafor",
				Email:         "james.okafor@example.com",
				DateOfBirth:   "1975-11-30",
				LicenseNumber: "O7654321",
			},
			AdditionalDrivers: []core.Driver{
				{
					FirstName:     "Adaeze",
					LastName:      "Okafor",
					Email:         "adaeze.okafor@example.com",
					DateOfBirth:   "1979-02-07",
					LicenseNumber: "O7654322",
				},
			},
			Vehicles: []core.Vehicle{
				{Year: 2020, Make: "Honda", Model: "Accord", VIN: "1HGCV1F34LA012345"},
				{Year: 2016, Make: "Subaru", Model: "Outback", VIN: "4S4BSANC6G3201987"},
			},
			Address: core.Address{
				Street: "902 Willow Court", City: "Austin", State: "TX", Zip: "78704",
			},
			Coverages: &core.CoverageSelection{
				BodilyInjury:       "250/500",
				PropertyDamage:     100000,
				Collision:          &core.DeductibleOption{Deductible: 1000},
				Comprehensive:      &core.DeductibleOption{Deductible: 1000},
				UninsuredMotorist:  true,
				RoadsideAssistance: true,
				RentalReimbursement: &core.RentalOption{
					DailyLimit: 50,
				},
			},
		},
		{
			// Driver only, stays incomplete until vehicles and coverage arrive.
			Driver: core.Driver{
				FirstName:     "Priya",
				LastName:      "Raman",
				Email:         "priya.raman@example.com",
				DateOfBirth:   "2002-08-19",
				LicenseNumber: "R2468013",
			},
			Address: core.Address{
				Street: "77 Birch Street", City: "Columbus", State: "OH", Zip: "43215",
			},
		},
	}

	for _, in := range inputs {
		p, err := svc.Create(ctx, in)
		if err != nil {
			fmt.Printf("failed to seed quote for %s: %v\n", in.Driver.Email, err)
			continue
		}
		fmt.Printf("seeded: %s (%s) total=%d\n", p.Reference, p.Status, p.Snapshot.Premium.Total)
	}
}
