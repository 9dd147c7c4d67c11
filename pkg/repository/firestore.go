package repository

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/misemon/pkg/domain/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	// DefaultFirestoreCollection is the collection holding one document per key
	DefaultFirestoreCollection = "misemon_kv"

	fieldKey = "Key"

	// upper bound of a prefix range query
	prefixRangeEnd = "\uf8ff"
)

type kvDocument struct {
	Key       string    `firestore:"Key"`
	Value     []byte    `firestore:"Value"`
	UpdatedAt time.Time `firestore:"UpdatedAt"`
}

// Firestore implements KVStore with Firestore
type Firestore struct {
	client     *firestore.Client
	collection string
}

// NewFirestore creates a new Firestore store
func NewFirestore(ctx context.Context, projectID, databaseID, collection string) (*Firestore, error) {
	logger := ctxlog.From(ctx)
	if collection == "" {
		collection = DefaultFirestoreCollection
	}

	// Create client with database ID
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client")
	}

	// Fail fast on an invalid project or missing permission
	_, err = client.Collection(collection).Limit(1).Documents(ctx).Next()
	if err != nil && err != iterator.Done {
		if status.Code(err) == codes.PermissionDenied || status.Code(err) == codes.Unauthenticated {
			_ = client.Close()
			return nil, goerr.Wrap(err, "failed to connect to firestore project",
				goerr.V("firestore error code", status.Code(err).String()),
			)
		}
		logger.Debug("Firestore connection test returned error (may be empty collection)",
			"error", err,
			"errorCode", status.Code(err).String(),
		)
	}

	logger.Info("Firestore store initialized successfully",
		"projectID", projectID,
		"databaseID", databaseID,
		"collection", collection,
	)

	return &Firestore{
		client:     client,
		collection: collection,
	}, nil
}

// Document IDs may not contain a slash
func docID(key string) string {
	return strings.ReplaceAll(key, "/", "%2F")
}

// Get retrieves the value of key
func (f *Firestore) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, goerr.New("key is empty")
	}

	doc, err := f.client.Collection(f.collection).Doc(docID(key)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrKeyNotFound, "firestore get", goerr.V("key", key))
		}
		return nil, goerr.Wrap(err, "failed to get document from firestore", goerr.V("key", key))
	}

	var kv kvDocument
	if err := doc.DataTo(&kv); err != nil {
		return nil, goerr.Wrap(err, "failed to decode document", goerr.V("key", key))
	}
	return kv.Value, nil
}

// Set saves value for key
func (f *Firestore) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return goerr.New("key is empty")
	}

	kv := kvDocument{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	if _, err := f.client.Collection(f.collection).Doc(docID(key)).Set(ctx, kv); err != nil {
		if status.Code(err) == codes.ResourceExhausted {
			return goerr.Wrap(model.ErrQuotaExceeded, "firestore set",
				goerr.V("key", key),
				goerr.V("cause", err.Error()),
			)
		}
		return goerr.Wrap(err, "failed to save document to firestore", goerr.V("key", key))
	}
	return nil
}

// Delete removes key
func (f *Firestore) Delete(ctx context.Context, key string) error {
	if _, err := f.client.Collection(f.collection).Doc(docID(key)).Delete(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil
		}
		return goerr.Wrap(err, "failed to delete document from firestore", goerr.V("key", key))
	}
	return nil
}

// Keys lists keys with the prefix in ascending order
func (f *Firestore) Keys(ctx context.Context, prefix string) ([]string, error) {
	query := f.client.Collection(f.collection).Query
	if prefix != "" {
		query = query.
			Where(fieldKey, ">=", prefix).
			Where(fieldKey, "<", prefix+prefixRangeEnd)
	}
	iter := query.OrderBy(fieldKey, firestore.Asc).Documents(ctx)
	defer iter.Stop()

	keys := make([]string, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate documents", goerr.V("prefix", prefix))
		}

		var kv kvDocument
		if err := doc.DataTo(&kv); err != nil {
			ctxlog.From(ctx).Warn("skip undecodable document", "id", doc.Ref.ID, "error", err)
			continue
		}
		keys = append(keys, kv.Key)
	}
	return keys, nil
}

// Close closes the Firestore client
func (f *Firestore) Close() error {
	return f.client.Close()
}
