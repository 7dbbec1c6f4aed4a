// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureReferralEvents(ctx, db); err != nil {
		problems = append(problems, "referral_events: "+err.Error())
	}
	if err := ensureConversations(ctx, db); err != nil {
		problems = append(problems, "conversations: "+err.Error())
	}
	if err := ensureMessages(ctx, db); err != nil {
		problems = append(problems, "messages: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func sameBoolPtr(a, b *bool) bool {
	av := false
	bv := false
	if a != nil {
		av = *a
	}
	if b != nil {
		bv = *b
	}
	return av == bv
}

func isDuplicateKeyErr(err error) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	return false
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	// Load the existing indexes once per collection.
	existing := map[string]existingIndex{} // key signature -> index
	cur, err := coll.Indexes().List(ctx)
	if err == nil {
		defer cur.Close(ctx)
		for cur.Next(ctx) {
			var idx existingIndex
			if err := cur.Decode(&idx); err != nil {
				zap.L().Warn("failed to decode existing index",
					zap.String("collection", coll.Name()),
					zap.Error(err))
				continue
			}
			existing[keySig(idx.Key)] = idx
		}
	}

	var errs []string
	for _, m := range models {
		var desiredName string
		var desiredUnique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				desiredName = *m.Options.Name
			}
			desiredUnique = m.Options.Unique
		}
		desiredSig := keySig(m.Keys.(bson.D))
		start := time.Now()

		if ex, ok := existing[desiredSig]; ok && sameBoolPtr(desiredUnique, ex.Unique) {
			zap.L().Info("reusing existing index",
				zap.String("collection", coll.Name()),
				zap.String("name", ex.Name),
				zap.String("keys", desiredSig))
			continue
		} else if ok {
			// Options mismatch (e.g. upgrading to unique). Drop & recreate.
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), desiredName, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if isDuplicateKeyErr(err) && desiredUnique != nil && *desiredUnique {
				errs = append(errs, fmt.Sprintf("%s(%s): cannot create unique index (duplicates present)", coll.Name(), desiredName))
			} else {
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
			}
			continue
		}
		zap.L().Info("index created",
			zap.String("collection", coll.Name()),
			zap.String("name", desiredName),
			zap.String("keys", desiredSig),
			zap.Bool("unique", desiredUnique != nil && *desiredUnique),
			zap.String("took", time.Since(start).String()))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Per-collection index sets                                                  */
/* -------------------------------------------------------------------------- */

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("users")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// 1) Email must be unique across all accounts.
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_email"),
		},

		// 2) Referral links are unique but only marketers carry one, so the
		//    index is sparse to skip the (vast) majority of documents.
		{
			Keys:    bson.D{{Key: "referral_link", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true).SetName("uniq_users_referral_link"),
		},

		// 3) Geospatial matching runs $geoNear over this key.
		{
			Keys:    bson.D{{Key: "location_coord", Value: "2dsphere"}},
			Options: options.Index().SetName("geo_users_location_coord"),
		},

		// 4) The matcher's post-geo filter: complete-profile city builders,
		//    optionally restricted to an unexpired subscription.
		{
			Keys: bson.D{
				{Key: "account_type", Value: 1},
				{Key: "profile_updated", Value: 1},
				{Key: "sub_expiry_date", Value: 1},
			},
			Options: options.Index().SetName("idx_users_type_profile_expiry"),
		},

		// 5) Directory listings sorted by folded name; _id tie-break matches
		//    the compound sort the list queries issue.
		{
			Keys: bson.D{
				{Key: "full_name_ci", Value: 1},
				{Key: "_id", Value: 1},
			},
			Options: options.Index().SetName("idx_users_fullnameci_id"),
		},

		// 6) Default listing order (newest first).
		{
			Keys: bson.D{
				{Key: "created_at", Value: -1},
				{Key: "_id", Value: -1},
			},
			Options: options.Index().SetName("idx_users_createdat_id"),
		},
	})
}

func ensureReferralEvents(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("referral_events")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Idempotency guard: replays of the same signup event are rejected
		// here before the marketer's counter is touched.
		{
			Keys:    bson.D{{Key: "event_key", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_referral_events_key"),
		},
		{
			Keys:    bson.D{{Key: "referrer_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_referral_events_referrer"),
		},
	})
}

func ensureConversations(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("conversations")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// One conversation per participant pair; the pair is stored in
		// canonical order so (A,B) and (B,A) collide here.
		{
			Keys: bson.D{
				{Key: "entity_one", Value: 1},
				{Key: "entity_two", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("uniq_conversations_pair"),
		},
		// Inbox listings for either side of the pair, most recent first.
		{
			Keys:    bson.D{{Key: "entity_one", Value: 1}, {Key: "last_activity_at", Value: -1}},
			Options: options.Index().SetName("idx_conversations_one_activity"),
		},
		{
			Keys:    bson.D{{Key: "entity_two", Value: 1}, {Key: "last_activity_at", Value: -1}},
			Options: options.Index().SetName("idx_conversations_two_activity"),
		},
	})
}

func ensureMessages(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("messages")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "conversation_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("idx_messages_conversation_createdat"),
		},
	})
}
