package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dnfmate/character-lookup/internal/core/domain"
)

const collectionRegistrations = "registrations"

// RegistrationRepository implements ports.RegistrationRepository using MongoDB.
type RegistrationRepository struct {
	col *mongo.Collection
}

func NewRegistrationRepository(db *mongo.Database) *RegistrationRepository {
	return &RegistrationRepository{col: db.Collection(collectionRegistrations)}
}

type mongoRegistration struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	UserID        string             `bson:"user_id"`
	ServerID      string             `bson:"server_id"`
	CharacterID   string             `bson:"character_id"`
	CharacterName string             `bson:"character_name"`
	AdventureName string             `bson:"adventure_name"`
	CreatedAt     time.Time          `bson:"created_at"`
}

// Create inserts a registration. A second registration of the same
// character by the same user returns domain.ErrRegistrationExists.
func (r *RegistrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoRegistration{
		UserID:        reg.UserID,
		ServerID:      reg.ServerID,
		CharacterID:   reg.CharacterID,
		CharacterName: reg.CharacterName,
		AdventureName: reg.AdventureName,
		CreatedAt:     reg.CreatedAt.UTC(),
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrRegistrationExists
		}
		return fmt.Errorf("insert registration: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		reg.ID = oid.Hex()
	}
	return nil
}

// ListByUser returns the user's registrations oldest first.
func (r *RegistrationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoRegistration
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode registrations: %w", err)
	}

	out := make([]*domain.Registration, 0, len(docs))
	for _, d := range docs {
		out = append(out, &domain.Registration{
			ID:     d.ID.Hex(),
			UserID: d.UserID,
			RegisteredCharacterRef: domain.RegisteredCharacterRef{
				ServerID:      d.ServerID,
				CharacterID:   d.CharacterID,
				CharacterName: d.CharacterName,
				AdventureName: d.AdventureName,
			},
			CreatedAt: d.CreatedAt,
		})
	}
	return out, nil
}

func (r *RegistrationRepository) Delete(ctx context.Context, userID, serverID, characterID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, registrationFilter(userID, serverID, characterID))
	if err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrRegistrationNotFound
	}
	return nil
}

// UpdateCharacterInfo backfills display fields. Blank values leave the
// stored ones untouched.
func (r *RegistrationRepository) UpdateCharacterInfo(ctx context.Context, userID, serverID, characterID, characterName, adventureName string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{}
	if characterName != "" {
		set["character_name"] = characterName
	}
	if adventureName != "" {
		set["adventure_name"] = adventureName
	}
	if len(set) == 0 {
		return nil
	}

	res, err := r.col.UpdateOne(ctx, registrationFilter(userID, serverID, characterID), bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update registration: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrRegistrationNotFound
	}
	return nil
}

// EnsureIndexes creates the per-user uniqueness index.
func (r *RegistrationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "server_id", Value: 1}, {Key: "character_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func registrationFilter(userID, serverID, characterID string) bson.M {
	return bson.M{"user_id": userID, "server_id": serverID, "character_id": characterID}
}
