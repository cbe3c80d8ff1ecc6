package handlers_test

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cukurin/booking-api/internal/models"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestAddBarberMultipart(t *testing.T) {
	freshDB(t)
	r := newRouter(nil)

	fields := map[string]string{
		"name":           "Mas Agus",
		"services":       "haircut, shave",
		"paket":          "premium",
		"price":          "75000",
		"latitude":       "-6.2",
		"longitude":      "106.8",
		"no_telp":        "0811223344",
		"bank_name":      "BCA",
		"account_number": "1234567890",
		"payment_method": "tf",
	}
	files := []filePart{
		{field: "profileImage", filename: "profile.png", contentType: "image/png", content: pngBytes},
		{field: "galleryImages", filename: "one.jpg", contentType: "image/jpeg", content: pngBytes},
		{field: "galleryImages", filename: "two.png", contentType: "image/png", content: pngBytes},
	}

	w := multipartRequest(t, r, http.MethodPost, "/api/barbers/add", fields, files)
	assertStatus(t, w, http.StatusCreated)

	var barber models.Barber
	if err := testDB.Preload("GalleryImages").Where("name = ?", "Mas Agus").First(&barber).Error; err != nil {
		t.Fatalf("barber not persisted: %v", err)
	}

	if !strings.HasPrefix(barber.ProfileImage, "/uploads/profile/") {
		t.Fatalf("unexpected profile image path %q", barber.ProfileImage)
	}
	if len(barber.GalleryImages) != 2 {
		t.Fatalf("expected 2 gallery images, got %d", len(barber.GalleryImages))
	}
	if barber.Latitude == nil || *barber.Latitude != -6.2 {
		t.Fatalf("latitude not stored: %v", barber.Latitude)
	}

	// The file must actually exist under the upload dir.
	rel := strings.TrimPrefix(barber.ProfileImage, "/uploads/")
	if _, err := os.Stat(filepath.Join(testCfg.UploadDir, filepath.FromSlash(rel))); err != nil {
		t.Fatalf("profile image not on disk: %v", err)
	}
}

func TestAddBarberMissingFields(t *testing.T) {
	freshDB(t)
	r := newRouter(nil)

	w := multipartRequest(t, r, http.MethodPost, "/api/barbers/add", map[string]string{
		"name": "Incomplete",
	}, nil)
	assertStatus(t, w, http.StatusBadRequest)

	body := parseResponse(t, w)
	if body["error_code"] != "missing_required_fields" {
		t.Fatalf("expected missing_required_fields, got %v", body["error_code"])
	}
}

func TestAddBarberRejectsUnsupportedImage(t *testing.T) {
	freshDB(t)
	r := newRouter(nil)

	fields := map[string]string{
		"name":     "Mas Agus",
		"services": "haircut",
		"paket":    "basic",
		"price":    "50000",
	}
	files := []filePart{
		{field: "profileImage", filename: "profile.gif", contentType: "image/gif", content: pngBytes},
	}

	w := multipartRequest(t, r, http.MethodPost, "/api/barbers/add", fields, files)
	assertStatus(t, w, http.StatusBadRequest)

	body := parseResponse(t, w)
	if body["error_code"] != "unsupported_file_type" {
		t.Fatalf("expected unsupported_file_type, got %v", body["error_code"])
	}

	var count int64
	testDB.Model(&models.Barber{}).Count(&count)
	if count != 0 {
		t.Fatalf("rejected upload must not create a barber, got %d rows", count)
	}
}

func TestAddBarberTooManyGalleryImages(t *testing.T) {
	freshDB(t)
	r := newRouter(nil)

	fields := map[string]string{
		"name":     "Mas Agus",
		"services": "haircut",
		"paket":    "basic",
		"price":    "50000",
	}
	var files []filePart
	for i := 0; i < 6; i++ {
		files = append(files, filePart{
			field: "galleryImages", filename: "g.png", contentType: "image/png", content: pngBytes,
		})
	}

	w := multipartRequest(t, r, http.MethodPost, "/api/barbers/add", fields, files)
	assertStatus(t, w, http.StatusBadRequest)

	body := parseResponse(t, w)
	if body["error_code"] != "too_many_gallery_images" {
		t.Fatalf("expected too_many_gallery_images, got %v", body["error_code"])
	}
}

func TestAddBarberInvalidPaymentMethod(t *testing.T) {
	freshDB(t)
	r := newRouter(nil)

	w := multipartRequest(t, r, http.MethodPost, "/api/barbers/add", map[string]string{
		"name":           "Mas Agus",
		"services":       "haircut",
		"paket":          "basic",
		"price":          "50000",
		"payment_method": "cash",
	}, nil)
	assertStatus(t, w, http.StatusBadRequest)
}

func TestUpdateBarberReplacesOptionalFields(t *testing.T) {
	freshDB(t)
	r := newRouter(nil)

	barber := seedBarber(t, "Mas Agus", -6.2, 106.8)

	// Full-replace semantics: bank_name is omitted, so it is wiped.
	w := jsonRequest(t, r, http.MethodPut, "/api/barbers/update/"+itoa(barber.ID), map[string]any{
		"name":     "Mas Agus Baru",
		"services": "haircut",
		"paket":    "basic",
		"price":    60000,
	})
	assertStatus(t, w, http.StatusOK)

	var updated models.Barber
	testDB.First(&updated, barber.ID)
	if updated.Name != "Mas Agus Baru" || updated.Price != 60000 {
		t.Fatalf("update not applied: %+v", updated)
	}
	if updated.BankName != "" {
		t.Fatalf("omitted bank_name must be cleared, got %q", updated.BankName)
	}
	if updated.Latitude == nil || *updated.Latitude != -6.2 {
		t.Fatal("coordinates keep their value when not supplied")
	}
}

func TestDeleteBarberCascades(t *testing.T) {
	freshDB(t)
	r := newRouter(nil)

	barber := seedBarber(t, "Mas Agus", -6.2, 106.8)
	other := seedBarber(t, "Mas Budi", -7.0, 110.0)

	seedBooking(t, barber, "budi@example.com")
	seedBooking(t, other, "sari@example.com")
	testDB.Create(&models.GalleryImage{BarberID: barber.ID, ImageURL: "/uploads/gallery/x.png"})

	w := jsonRequest(t, r, http.MethodDelete, "/api/barbers/"+itoa(barber.ID), nil)
	assertStatus(t, w, http.StatusOK)

	var barberCount, bookingCount, galleryCount int64
	testDB.Model(&models.Barber{}).Where("id = ?", barber.ID).Count(&barberCount)
	testDB.Model(&models.Booking{}).Where("barber_id = ?", barber.ID).Count(&bookingCount)
	testDB.Model(&models.GalleryImage{}).Where("barber_id = ?", barber.ID).Count(&galleryCount)
	if barberCount != 0 || bookingCount != 0 || galleryCount != 0 {
		t.Fatalf("cascade incomplete: barber=%d bookings=%d gallery=%d",
			barberCount, bookingCount, galleryCount)
	}

	// The other barber's data is untouched.
	var otherBookings int64
	testDB.Model(&models.Booking{}).Where("barber_id = ?", other.ID).Count(&otherBookings)
	if otherBookings != 1 {
		t.Fatalf("unrelated bookings must survive, got %d", otherBookings)
	}
}

func TestGetBarberNotFound(t *testing.T) {
	freshDB(t)
	r := newRouter(nil)

	w := jsonRequest(t, r, http.MethodGet, "/api/barbers/99999", nil)
	assertStatus(t, w, http.StatusNotFound)
}

func TestListBarbersIncludesGallery(t *testing.T) {
	freshDB(t)
	r := newRouter(nil)

	barber := seedBarber(t, "Mas Agus", -6.2, 106.8)
	testDB.Create(&models.GalleryImage{BarberID: barber.ID, ImageURL: "/uploads/gallery/x.png"})

	w := jsonRequest(t, r, http.MethodGet, "/api/barbers/"+itoa(barber.ID), nil)
	assertStatus(t, w, http.StatusOK)

	body := parseResponse(t, w)
	gallery, _ := body["gallery_images"].([]any)
	if len(gallery) != 1 {
		t.Fatalf("expected gallery in response, got %v", body["gallery_images"])
	}
}
