package database

import (
	"errors"
	"testing"
)

func TestCreateWatchlist_Success(t *testing.T) {
	db := setupTestDB(t)

	id, err := db.Watchlists.Create("Friday Night", "movies for the weekend")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if id == 0 {
		t.Error("expected non-zero id")
	}
}

func TestCreateWatchlist_DuplicateName(t *testing.T) {
	db := setupTestDB(t)

	if _, err := db.Watchlists.Create("Favorites", ""); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	_, err := db.Watchlists.Create("Favorites", "different description")
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}

	lists, err := db.Watchlists.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(lists) != 1 {
		t.Errorf("expected 1 watchlist after duplicate create, got %d", len(lists))
	}
}

func TestListWatchlists_IncludesMovieCounts(t *testing.T) {
	db := setupTestDB(t)

	listID, err := db.Watchlists.Create("Counted", "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := db.Watchlists.Create("Empty", ""); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	movieID, err := db.Movies.Upsert(foundRecord("The Matrix", "1999"))
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if err := db.Watchlists.AddMovie(listID, movieID); err != nil {
		t.Fatalf("AddMovie failed: %v", err)
	}

	lists, err := db.Watchlists.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(lists) != 2 {
		t.Fatalf("expected 2 watchlists, got %d", len(lists))
	}
	// newest-created-first
	if lists[0].Name != "Empty" || lists[0].MovieCount != 0 {
		t.Errorf("expected Empty with count 0 first, got %q count %d", lists[0].Name, lists[0].MovieCount)
	}
	if lists[1].Name != "Counted" || lists[1].MovieCount != 1 {
		t.Errorf("expected Counted with count 1, got %q count %d", lists[1].Name, lists[1].MovieCount)
	}
}

func TestAddMovie_DuplicateMembership(t *testing.T) {
	db := setupTestDB(t)

	listID, err := db.Watchlists.Create("Dupes", "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	movieID, err := db.Movies.Upsert(foundRecord("The Matrix", "1999"))
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	if err := db.Watchlists.AddMovie(listID, movieID); err != nil {
		t.Fatalf("first AddMovie failed: %v", err)
	}
	err = db.Watchlists.AddMovie(listID, movieID)
	if !errors.Is(err, ErrDuplicateMovie) {
		t.Fatalf("expected ErrDuplicateMovie, got %v", err)
	}

	movies, err := db.Watchlists.Movies(listID)
	if err != nil {
		t.Fatalf("Movies failed: %v", err)
	}
	if len(movies) != 1 {
		t.Errorf("expected membership count to stay 1, got %d", len(movies))
	}
}

func TestAddMovie_UnknownIDs(t *testing.T) {
	db := setupTestDB(t)

	listID, err := db.Watchlists.Create("Real", "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := db.Watchlists.AddMovie(listID, 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown movie, got %v", err)
	}
	movieID, err := db.Movies.Upsert(foundRecord("The Matrix", "1999"))
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if err := db.Watchlists.AddMovie(9999, movieID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown watchlist, got %v", err)
	}
}

func TestWatchlistMovies_MostRecentlyAddedFirst(t *testing.T) {
	db := setupTestDB(t)

	listID, err := db.Watchlists.Create("Ordered", "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	for _, title := range []string{"First", "Second", "Third"} {
		movieID, err := db.Movies.Upsert(foundRecord(title, "2020"))
		if err != nil {
			t.Fatalf("Upsert %q failed: %v", title, err)
		}
		if err := db.Watchlists.AddMovie(listID, movieID); err != nil {
			t.Fatalf("AddMovie %q failed: %v", title, err)
		}
	}

	movies, err := db.Watchlists.Movies(listID)
	if err != nil {
		t.Fatalf("Movies failed: %v", err)
	}
	if len(movies) != 3 {
		t.Fatalf("expected 3 movies, got %d", len(movies))
	}
	if movies[0].Title != "Third" || movies[2].Title != "First" {
		t.Errorf("expected most-recently-added first, got %q ... %q", movies[0].Title, movies[2].Title)
	}
}

func TestDeleteWatchlist_CascadesMemberships(t *testing.T) {
	db := setupTestDB(t)

	listID, err := db.Watchlists.Create("Doomed", "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	for _, title := range []string{"A", "B", "C"} {
		movieID, err := db.Movies.Upsert(foundRecord(title, "2020"))
		if err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
		if err := db.Watchlists.AddMovie(listID, movieID); err != nil {
			t.Fatalf("AddMovie failed: %v", err)
		}
	}

	deleted, err := db.Watchlists.Delete(listID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !deleted {
		t.Fatal("expected Delete to report the watchlist existed")
	}

	lists, err := db.Watchlists.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(lists) != 0 {
		t.Errorf("expected no watchlists after delete, got %d", len(lists))
	}

	// membership rows are gone too
	var count int
	err = db.Connection().QueryRow(`SELECT COUNT(*) FROM watchlist_items WHERE watchlist_id = ?`, listID).Scan(&count)
	if err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 membership rows after delete, got %d", count)
	}
}

func TestDeleteWatchlist_Missing(t *testing.T) {
	db := setupTestDB(t)

	deleted, err := db.Watchlists.Delete(4242)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if deleted {
		t.Error("expected Delete to report missing watchlist")
	}
}
