package handlers_test

import (
	"net/http"
	"testing"

	"github.com/cukurin/booking-api/internal/models"
)

func seedReview(t *testing.T, barberID uint, rating int, comment string, username *string) models.Review {
	t.Helper()

	review := models.Review{
		BarberID: barberID,
		Rating:   rating,
		Comment:  comment,
		Username: username,
	}
	if err := testDB.Create(&review).Error; err != nil {
		t.Fatalf("failed to seed review: %v", err)
	}
	return review
}

func TestAddAndGetReview(t *testing.T) {
	freshDB(t)
	r := newRouter(nil)

	barber := seedBarber(t, "Mas Agus", 1.0, 2.0)
	seedUser(t, "budi", "budi@example.com", "secret123", "user")

	w := jsonRequest(t, r, http.MethodPost, "/api/reviews/add", map[string]any{
		"barberId": barber.ID,
		"rating":   5,
		"comment":  "Great haircut",
		"username": "budi",
	})
	assertStatus(t, w, http.StatusCreated)

	var review models.Review
	if err := testDB.Where("barber_id = ?", barber.ID).First(&review).Error; err != nil {
		t.Fatalf("review not persisted: %v", err)
	}

	w = jsonRequest(t, r, http.MethodGet, "/api/reviews/review/"+itoa(review.ID), nil)
	assertStatus(t, w, http.StatusOK)

	body := parseResponse(t, w)
	if body["barberName"] != "Mas Agus" {
		t.Fatalf("expected joined barber name, got %v", body["barberName"])
	}
	if body["userName"] != "budi" {
		t.Fatalf("expected joined reviewer name, got %v", body["userName"])
	}
}

func TestBulkUpdateByBarberOverwritesAll(t *testing.T) {
	freshDB(t)
	r := newRouter(nil)

	barberA := seedBarber(t, "Mas Agus", 1.0, 2.0)
	barberB := seedBarber(t, "Mas Budi", 3.0, 4.0)

	seedReview(t, barberA.ID, 5, "first", nil)
	seedReview(t, barberA.ID, 4, "second", nil)
	untouched := seedReview(t, barberB.ID, 1, "other barber", nil)

	w := jsonRequest(t, r, http.MethodPut, "/api/reviews/"+itoa(barberA.ID), map[string]any{
		"rating":   3,
		"comment":  "revised",
		"username": "budi",
	})
	assertStatus(t, w, http.StatusOK)

	var rows []models.Review
	testDB.Where("barber_id = ?", barberA.ID).Find(&rows)
	if len(rows) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(rows))
	}
	for _, row := range rows {
		if row.Rating != 3 || row.Comment != "revised" ||
			row.Username == nil || *row.Username != "budi" {
			t.Fatalf("review not overwritten: %+v", row)
		}
	}

	var other models.Review
	testDB.First(&other, untouched.ID)
	if other.Comment != "other barber" {
		t.Fatal("reviews of other barbers must not change")
	}
}

func TestBulkUpdateUnknownBarber(t *testing.T) {
	freshDB(t)
	r := newRouter(nil)

	w := jsonRequest(t, r, http.MethodPut, "/api/reviews/99999", map[string]any{
		"rating":  3,
		"comment": "revised",
	})
	assertStatus(t, w, http.StatusNotFound)
}

func TestListReviewsByBarber(t *testing.T) {
	freshDB(t)
	r := newRouter(nil)

	barber := seedBarber(t, "Mas Agus", 1.0, 2.0)
	seedReview(t, barber.ID, 5, "first", nil)

	w := jsonRequest(t, r, http.MethodGet, "/api/reviews/"+itoa(barber.ID), nil)
	assertStatus(t, w, http.StatusOK)

	var rows []map[string]any
	mustUnmarshal(t, w.Body.Bytes(), &rows)
	if len(rows) != 1 {
		t.Fatalf("expected 1 review, got %d", len(rows))
	}

	// A barber without reviews answers 404, not an empty list.
	other := seedBarber(t, "Mas Budi", 3.0, 4.0)
	w = jsonRequest(t, r, http.MethodGet, "/api/reviews/"+itoa(other.ID), nil)
	assertStatus(t, w, http.StatusNotFound)
}

func TestDeleteReview(t *testing.T) {
	freshDB(t)
	r := newRouter(nil)

	barber := seedBarber(t, "Mas Agus", 1.0, 2.0)
	review := seedReview(t, barber.ID, 5, "first", nil)

	w := jsonRequest(t, r, http.MethodDelete, "/api/reviews/"+itoa(review.ID), nil)
	assertStatus(t, w, http.StatusOK)

	w = jsonRequest(t, r, http.MethodDelete, "/api/reviews/"+itoa(review.ID), nil)
	assertStatus(t, w, http.StatusNotFound)
}
