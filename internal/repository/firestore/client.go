// Package firestore stores the organizer under users/{uid}/folders/{f}/lists/{l}/items/{i},
// the same document layout the web client reads. Billing documents follow
// the payments extension: products/{p}/prices/{id} and
// customers/{uid}/{checkout_sessions,subscriptions}.
package firestore

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// Collection names
const (
	usersCollection            = "users"
	foldersCollection          = "folders"
	listsCollection            = "lists"
	itemsCollection            = "items"
	productsCollection         = "products"
	pricesCollection           = "prices"
	customersCollection        = "customers"
	checkoutSessionsCollection = "checkout_sessions"
	subscriptionsCollection    = "subscriptions"
)

// NewApp initializes the firebase app. An empty credsFile falls back to
// application default credentials.
func NewApp(ctx context.Context, projectID, credsFile string) (*firebase.App, error) {
	var opts []option.ClientOption
	if credsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credsFile))
	}

	var conf *firebase.Config
	if projectID != "" {
		conf = &firebase.Config{ProjectID: projectID}
	}

	app, err := firebase.NewApp(ctx, conf, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	return app, nil
}

// NewClient opens the firestore client for app
func NewClient(ctx context.Context, app *firebase.App, logger *slog.Logger) (*firestore.Client, error) {
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firestore: %w", err)
	}
	logger.Info("firestore initialized")
	return client, nil
}

// Store bundles the client for the repositories in this package
type Store struct {
	client *firestore.Client
	logger *slog.Logger
}

// NewStore wraps an open client
func NewStore(client *firestore.Client, logger *slog.Logger) *Store {
	return &Store{client: client, logger: logger}
}

func (s *Store) folders(userID string) *firestore.CollectionRef {
	return s.client.Collection(usersCollection).Doc(userID).Collection(foldersCollection)
}

func (s *Store) lists(userID, folderID string) *firestore.CollectionRef {
	return s.folders(userID).Doc(folderID).Collection(listsCollection)
}

func (s *Store) items(userID, folderID, listID string) *firestore.CollectionRef {
	return s.lists(userID, folderID).Doc(listID).Collection(itemsCollection)
}

func (s *Store) customer(userID string) *firestore.DocumentRef {
	return s.client.Collection(customersCollection).Doc(userID)
}

// Ping reads at most one product document to check the connection
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.client.Collection(productsCollection).Limit(1).Documents(ctx).Next()
	if err != nil && !done(err) {
		return fmt.Errorf("ping firestore: %w", err)
	}
	return nil
}

// Close closes the underlying client
func (s *Store) Close() error {
	return s.client.Close()
}
