package userstore_test

import (
	"errors"
	"testing"
	"time"

	userstore "github.com/dalemusser/cityfix/internal/app/store/users"
	"github.com/dalemusser/cityfix/internal/app/system/apperr"
	"github.com/dalemusser/cityfix/internal/testutil"
)

// Test coordinates around Lagos. Victoria Island is the origin; Ikeja is
// ~15 km away and Ibadan ~120 km.
const (
	viLat, viLng         = 6.4281, 3.4219
	ikejaLat, ikejaLng   = 6.6018, 3.3515
	ibadanLat, ibadanLng = 7.3775, 3.9470
)

func TestStore_GeoMatch_OrdersByDistance(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db, userstore.Config{})
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateProvider(ctx, "Far", "far@example.com", "Plumber", ibadanLat, ibadanLng, nil)
	fixtures.CreateProvider(ctx, "Near", "near@example.com", "Plumber", viLat, viLng, nil)
	fixtures.CreateProvider(ctx, "Mid", "mid@example.com", "Plumber", ikejaLat, ikejaLng, nil)

	rows, hasMore, err := store.GeoMatch(ctx, userstore.GeoQuery{
		Spec: specFor(t, nil),
		Lat:  viLat,
		Lng:  viLng,
	})
	if err != nil {
		t.Fatalf("GeoMatch failed: %v", err)
	}
	if hasMore {
		t.Error("expected HasMore=false")
	}
	if len(rows) != 3 {
		t.Fatalf("rows: got %d, want 3", len(rows))
	}

	want := []string{"Near", "Mid", "Far"}
	for i, name := range want {
		if rows[i].FirstName != name {
			t.Errorf("position %d: got %q, want %q", i, rows[i].FirstName, name)
		}
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].Distance < rows[i-1].Distance {
			t.Errorf("distance not ascending at %d: %v < %v", i, rows[i].Distance, rows[i-1].Distance)
		}
	}
}

func TestStore_GeoMatch_EqualDistanceUsesRequestedSort(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db, userstore.Config{})
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// Same coordinates, so distance alone cannot order them.
	fixtures.CreateProvider(ctx, "Alpha", "alpha@example.com", "Plumber", viLat, viLng, nil)
	fixtures.CreateProvider(ctx, "Zulu", "zulu@example.com", "Plumber", viLat, viLng, nil)

	rows, _, err := store.GeoMatch(ctx, userstore.GeoQuery{
		Spec: specFor(t, map[string]string{"sort": "-full_name_ci"}),
		Lat:  viLat,
		Lng:  viLng,
	})
	if err != nil {
		t.Fatalf("GeoMatch failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows: got %d, want 2", len(rows))
	}
	if rows[0].FirstName != "Zulu" || rows[1].FirstName != "Alpha" {
		t.Errorf("descending tie-break: got %q then %q, want Zulu then Alpha",
			rows[0].FirstName, rows[1].FirstName)
	}

	rows, _, err = store.GeoMatch(ctx, userstore.GeoQuery{
		Spec: specFor(t, map[string]string{"sort": "full_name_ci"}),
		Lat:  viLat,
		Lng:  viLng,
	})
	if err != nil {
		t.Fatalf("GeoMatch failed: %v", err)
	}
	if rows[0].FirstName != "Alpha" || rows[1].FirstName != "Zulu" {
		t.Errorf("ascending tie-break: got %q then %q, want Alpha then Zulu",
			rows[0].FirstName, rows[1].FirstName)
	}
}

func TestStore_GeoMatch_ExcludesIncompleteAndConsumers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db, userstore.Config{})
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateProvider(ctx, "Pro", "pro@example.com", "Plumber", viLat, viLng, nil)
	// A consumer account never matches, even with coordinates on file.
	fixtures.CreateUser(ctx, "Shopper", "shopper@example.com")

	rows, _, err := store.GeoMatch(ctx, userstore.GeoQuery{
		Spec: specFor(t, nil),
		Lat:  viLat,
		Lng:  viLng,
	})
	if err != nil {
		t.Fatalf("GeoMatch failed: %v", err)
	}
	if len(rows) != 1 || rows[0].FirstName != "Pro" {
		t.Errorf("rows: got %+v, want only the provider", rows)
	}
}

func TestStore_GeoMatch_BoostRequiresActiveSubscription(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db, userstore.Config{})
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	future := time.Now().Add(30 * 24 * time.Hour)
	past := time.Now().Add(-time.Hour)
	fixtures.CreateProvider(ctx, "Paid", "paid@example.com", "Plumber", viLat, viLng, &future)
	fixtures.CreateProvider(ctx, "Lapsed", "lapsed@example.com", "Plumber", ikejaLat, ikejaLng, &past)
	fixtures.CreateProvider(ctx, "Free", "free@example.com", "Plumber", ikejaLat, ikejaLng, nil)

	rows, _, err := store.GeoMatch(ctx, userstore.GeoQuery{
		Spec:  specFor(t, nil),
		Lat:   viLat,
		Lng:   viLng,
		Boost: true,
	})
	if err != nil {
		t.Fatalf("GeoMatch failed: %v", err)
	}
	if len(rows) != 1 || rows[0].FirstName != "Paid" {
		t.Errorf("boost rows: got %+v, want only the subscribed provider", rows)
	}
}

func TestStore_GeoMatch_FilterNarrows(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db, userstore.Config{})
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateProvider(ctx, "Pipes", "pipes@example.com", "Plumber", viLat, viLng, nil)
	fixtures.CreateProvider(ctx, "Wires", "wires@example.com", "Electrician", viLat, viLng, nil)

	rows, _, err := store.GeoMatch(ctx, userstore.GeoQuery{
		Spec: specFor(t, map[string]string{"profession": "electrician"}),
		Lat:  viLat,
		Lng:  viLng,
	})
	if err != nil {
		t.Fatalf("GeoMatch failed: %v", err)
	}
	if len(rows) != 1 || rows[0].FirstName != "Wires" {
		t.Errorf("rows: got %+v, want only the electrician", rows)
	}
}

func TestStore_GeoMatch_NoMatch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db, userstore.Config{})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, _, err := store.GeoMatch(ctx, userstore.GeoQuery{
		Spec: specFor(t, nil),
		Lat:  viLat,
		Lng:  viLng,
	})
	if !errors.Is(err, apperr.ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
}

func TestStore_GeoMatch_RejectsBadOrigin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db, userstore.Config{})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, _, err := store.GeoMatch(ctx, userstore.GeoQuery{
		Spec: specFor(t, nil),
		Lat:  91,
		Lng:  0,
	})
	if !apperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestStore_GeoMatch_DistanceCeiling(t *testing.T) {
	db := testutil.SetupTestDB(t)
	// A 50 km ceiling keeps Ibadan out.
	store := userstore.New(db, userstore.Config{MaxDistanceMeters: 50_000})
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateProvider(ctx, "Near", "near@example.com", "Plumber", viLat, viLng, nil)
	fixtures.CreateProvider(ctx, "Far", "far@example.com", "Plumber", ibadanLat, ibadanLng, nil)

	rows, _, err := store.GeoMatch(ctx, userstore.GeoQuery{
		Spec: specFor(t, nil),
		Lat:  viLat,
		Lng:  viLng,
	})
	if err != nil {
		t.Fatalf("GeoMatch failed: %v", err)
	}
	if len(rows) != 1 || rows[0].FirstName != "Near" {
		t.Errorf("rows: got %+v, want only the in-range provider", rows)
	}
}
