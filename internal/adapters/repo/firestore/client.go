// Package firestore stores credit ledgers and saved drafts in Cloud Firestore
// under users/{uid}/credits/balance, users/{uid}/creditHistory and
// users/{uid}/drafts.
package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bnema/fanthom/internal/domain"
)

const (
	usersCollection   = "users"
	creditsCollection = "credits"
	balanceDoc        = "balance"
	historyCollection = "creditHistory"
	draftsCollection  = "drafts"
)

var errEmptyUserID = fmt.Errorf("empty user id: %w", domain.ErrInvalidUserID)

// NewClient opens a Firestore client through the Firebase Admin SDK. An empty
// credentialsFile falls back to application default credentials.
func NewClient(ctx context.Context, projectID, credentialsFile string) (*firestore.Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	var conf *firebase.Config
	if projectID != "" {
		conf = &firebase.Config{ProjectID: projectID}
	}

	app, err := firebase.NewApp(ctx, conf, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("open firestore client: %w", err)
	}

	return client, nil
}

func userDoc(client *firestore.Client, userID domain.UserID) (*firestore.DocumentRef, error) {
	if userID == "" {
		return nil, errEmptyUserID
	}
	return client.Collection(usersCollection).Doc(string(userID)), nil
}

func isNotFound(err error) bool {
	return err != nil && status.Code(err) == codes.NotFound
}
