package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/orgboard/orgboard-api/internal/core/domain"
)

const usersCollection = "users"

// UserRepository is the server-backed credential store: one document per
// identity, unique index on the normalized email.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

// EnsureIndexes creates the unique email index backing the duplicate-email
// invariant. Call once at startup.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

type mongoUser struct {
	ID           string      `bson:"_id"`
	Name         string      `bson:"name"`
	Email        string      `bson:"email"`
	Role         domain.Role `bson:"role"`
	PasswordHash string      `bson:"password_hash"`
	CreatedAt    int64       `bson:"created_at"`
}

func toDoc(u *domain.User) mongoUser {
	return mongoUser{
		ID:           u.ID,
		Name:         u.Name,
		Email:        domain.NormalizeEmail(u.Email),
		Role:         u.Role,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt.Unix(),
	}
}

func (m mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		Role:         m.Role,
		PasswordHash: m.PasswordHash,
		CreatedAt:    unixToTime(m.CreatedAt),
	}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": domain.NormalizeEmail(email)})
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, storeErr("find user", err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) Insert(ctx context.Context, user *domain.User) error {
	if _, err := r.coll.InsertOne(ctx, toDoc(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateEmail
		}
		return storeErr("insert user", err)
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": user.ID}, toDoc(user))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateEmail
		}
		return storeErr("update user", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Seed inserts baseline identities, skipping any whose normalized email is
// already present so locally registered users always win.
func (r *UserRepository) Seed(ctx context.Context, users []*domain.User) error {
	for _, u := range users {
		err := r.Insert(ctx, u)
		if err == nil || errors.Is(err, domain.ErrDuplicateEmail) {
			continue
		}
		return fmt.Errorf("seed user %s: %w", domain.NormalizeEmail(u.Email), err)
	}
	return nil
}

// storeErr maps driver deadline failures onto the domain timeout kind so the
// API layer can surface them distinctly.
func storeErr(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, domain.ErrTimeout)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
