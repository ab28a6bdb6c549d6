package fbapp

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// ServiceAccountEnvVar holds the base64 encoded service account json.
const ServiceAccountEnvVar = "FIREBASE_SERVICE_ACCOUNT_JSON"

var ErrNoCredentials = errors.New("no firebase credentials configured")

// CredentialsOption resolves the service account, preferring the base64
// encoded env var over the credentials file.
func CredentialsOption(encodedCreds, credentialsFile string) (option.ClientOption, error) {
	if encodedCreds != "" {
		decoded, err := base64.StdEncoding.DecodeString(encodedCreds)
		if err != nil {
			return nil, fmt.Errorf("decode base64 firebase credentials from %s: %w", ServiceAccountEnvVar, err)
		}
		log.Debugf("firebase: credentials from %s", ServiceAccountEnvVar)
		return option.WithCredentialsJSON(decoded), nil
	}

	if credentialsFile == "" {
		return nil, ErrNoCredentials
	}
	if _, err := os.Stat(credentialsFile); err != nil {
		return nil, fmt.Errorf("firebase credentials file [%s]: %w", credentialsFile, err)
	}
	log.Debugf("firebase: credentials from file %s", credentialsFile)
	return option.WithCredentialsFile(credentialsFile), nil
}

// NewApp initializes the firebase app used for firestore and cloud messaging.
func NewApp(ctx context.Context, credentialsFile string) (*firebase.App, error) {
	credsOpt, err := CredentialsOption(os.Getenv(ServiceAccountEnvVar), credentialsFile)
	if err != nil {
		return nil, err
	}

	app, err := firebase.NewApp(ctx, nil, credsOpt)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}
	return app, nil
}
