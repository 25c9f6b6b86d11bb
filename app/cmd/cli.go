package cmd

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/freshacres/go-farmstore/app/configs"
	"github.com/freshacres/go-farmstore/app/db/seeders"
	"github.com/freshacres/go-farmstore/app/models/migrations"
	"github.com/freshacres/go-farmstore/app/repositories"
	"github.com/freshacres/go-farmstore/app/services"
)

func RunCli() {
	cmd := &cli.Command{
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection()
					if err != nil {
						return err
					}
					if err := migrations.AutoMigrate(db); err != nil {
						return err
					}
					log.Println("✅ Migration complete")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Seed the database with sample farms, products and users",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection()
					if err != nil {
						return err
					}
					if err := seeders.DBSeed(db); err != nil {
						return err
					}
					log.Println("✅ Seeding complete")
					return nil
				},
			},
			{
				Name:  "generate-keys",
				Usage: "Generate new session authentication and encryption keys for .env",
				Action: func(ctx context.Context, c *cli.Command) error {
					if err := configs.GenerateAndPrintSessionKeys(); err != nil {
						return err
					}
					log.Println("✅ Key generation complete. Please copy the keys to your .env file.")
					return nil
				},
			},
			{
				Name:  "notify-discounts",
				Usage: "Email subscribed customers about currently active discounts",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection()
					if err != nil {
						return err
					}

					env := configs.LoadENV
					mailer := services.NewMailer(services.MailConfig{
						Host:     env.EmailHost,
						Port:     env.EmailPort,
						Username: env.EmailUsername,
						Password: env.EmailPassword,
						From:     env.EmailFrom,
					})
					notifier := services.NewDiscountNotifier(
						repositories.NewProductRepository(db),
						repositories.NewUserRepository(db),
						mailer,
					)

					sent, err := notifier.Broadcast(ctx)
					if err != nil {
						return err
					}
					log.Printf("✅ Sent %d discount emails", sent)
					return nil
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
