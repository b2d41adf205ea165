package riderRepo

import (
	"context"
	"fmt"
	"time"

	"hirewheels/database"
	"hirewheels/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRiderRepo implements RiderRepository using MongoDB.
type MongoRiderRepo struct {
	coll     *mongo.Collection
	txnsColl *mongo.Collection
}

// NewMongoRiderRepo creates a new instance of RiderRepository using MongoDB.
func NewMongoRiderRepo() RiderRepository {
	db := database.MongoClient.Database("hirewheels")
	repo := &MongoRiderRepo{
		coll:     db.Collection("riders"),
		txnsColl: db.Collection("walletTransactions"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoRiderRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "phoneNumber", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "referralCode", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a rider by its unique ID.
func (r *MongoRiderRepo) GetByID(id string) (*models.Rider, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var rider models.Rider
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&rider); err != nil {
		return nil, fmt.Errorf("failed to fetch rider with id %s: %w", id, err)
	}
	return &rider, nil
}

// GetByPhone retrieves a rider by phone number.
func (r *MongoRiderRepo) GetByPhone(phone string) (*models.Rider, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var rider models.Rider
	if err := r.coll.FindOne(ctx, bson.M{"phoneNumber": phone}).Decode(&rider); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch rider with phone %s: %w", phone, err)
	}
	return &rider, nil
}

// Create inserts a new rider document.
func (r *MongoRiderRepo) Create(rider *models.Rider) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	rider.CreatedAt = now
	rider.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, rider); err != nil {
		return fmt.Errorf("failed to create rider: %w", err)
	}
	return nil
}

// Update modifies an existing rider document.
func (r *MongoRiderRepo) Update(rider *models.Rider) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	rider.UpdatedAt = time.Now()
	filter := bson.M{"id": rider.ID}
	update := bson.M{"$set": rider}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update rider with id %s: %w", rider.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("rider with id %s not found", rider.ID)
	}
	return nil
}

// Delete removes a rider document by its ID.
func (r *MongoRiderRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete rider with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("rider with id %s not found", id)
	}
	return nil
}

// AdjustWalletBalance atomically adjusts the rider's wallet balance. Debits
// that would take the balance below zero are refused.
func (r *MongoRiderRepo) AdjustWalletBalance(id string, delta float64) (float64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	if delta < 0 {
		filter["walletBalance"] = bson.M{"$gte": -delta}
	}
	update := bson.M{
		"$inc": bson.M{"walletBalance": delta},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var rider models.Rider
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&rider); err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, fmt.Errorf("insufficient wallet balance")
		}
		return 0, fmt.Errorf("failed to adjust wallet for rider %s: %w", id, err)
	}
	return rider.WalletBalance, nil
}

// AdjustReferralBalance atomically adjusts the rider's referral balance.
func (r *MongoRiderRepo) AdjustReferralBalance(id string, delta float64) (float64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	if delta < 0 {
		filter["referralBalance"] = bson.M{"$gte": -delta}
	}
	update := bson.M{
		"$inc": bson.M{"referralBalance": delta},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var rider models.Rider
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&rider); err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, fmt.Errorf("insufficient referral balance")
		}
		return 0, fmt.Errorf("failed to adjust referral balance for rider %s: %w", id, err)
	}
	return rider.ReferralBalance, nil
}

// RecordWalletTransaction appends a wallet ledger entry.
func (r *MongoRiderRepo) RecordWalletTransaction(txn *models.WalletTransaction) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	txn.CreatedAt = time.Now()
	if _, err := r.txnsColl.InsertOne(ctx, txn); err != nil {
		return fmt.Errorf("failed to record wallet transaction: %w", err)
	}
	return nil
}
