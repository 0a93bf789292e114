package lib

import (
	"context"
	"ctoc/src/config"
	"log"
	"path"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

func NewFirebaseAuth(ctx context.Context, cfg *config.Config) (*auth.Client, error) {
	opt := option.WithCredentialsFile(path.Join(cfg.SecretsDir, "admin-sdk-credentials.json"))
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		log.Printf("error initializing app: %s\n", err.Error())
		return nil, err
	}
	client, err := app.Auth(ctx)
	if err != nil {
		log.Printf("error initializing Firebase Auth: %s\n", err.Error())
		return nil, err
	}
	return client, nil
}
