package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"bijoux-backend/models"

	"github.com/google/uuid"
)

func TestGetProductsEmpty(t *testing.T) {
	db := freshDB()
	router := setupProductRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/products", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	result := parseResponseArray(w)
	if len(result) != 0 {
		t.Errorf("expected empty listing, got %d products", len(result))
	}
}

func TestGetProductsResolvesGemstonesAndMaterials(t *testing.T) {
	db := freshDB()
	router := setupProductRouter(db)

	cat := seedCategory(db, "Rings", nil)
	gem := seedGemstone(db, "Diamond", "Colorless", 1.2)
	mat := seedMaterial(db, "Platinum", "950")
	prod := seedProduct(db, "Solitaire Ring", cat.ID, 2450, true)
	setGemstones(db, &prod, gem.ID)
	setMaterials(db, &prod, mat.ID)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/products", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	result := parseResponseArray(w)
	if len(result) != 1 {
		t.Fatalf("expected 1 product, got %d", len(result))
	}

	detail := result[0].(map[string]interface{})
	gemstones, ok := detail["gemstones"].([]interface{})
	if !ok || len(gemstones) != 1 {
		t.Fatalf("expected 1 resolved gemstone, got %v", detail["gemstones"])
	}
	gemMap := gemstones[0].(map[string]interface{})
	if gemMap["name"] != "Diamond" {
		t.Errorf("expected gemstone 'Diamond', got %v", gemMap["name"])
	}

	materials, ok := detail["materials"].([]interface{})
	if !ok || len(materials) != 1 {
		t.Fatalf("expected 1 resolved material, got %v", detail["materials"])
	}
	matMap := materials[0].(map[string]interface{})
	if matMap["name"] != "Platinum" {
		t.Errorf("expected material 'Platinum', got %v", matMap["name"])
	}
}

func TestGetProductsEmptyIDListsStayEmptyArrays(t *testing.T) {
	db := freshDB()
	router := setupProductRouter(db)

	cat := seedCategory(db, "Rings", nil)
	seedProduct(db, "Plain Band", cat.ID, 180, false)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/products", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	result := parseResponseArray(w)
	detail := result[0].(map[string]interface{})

	gemstones, ok := detail["gemstones"].([]interface{})
	if !ok {
		t.Fatalf("expected gemstones to be an empty array, got %v", detail["gemstones"])
	}
	if len(gemstones) != 0 {
		t.Errorf("expected 0 gemstones, got %d", len(gemstones))
	}
	materials, ok := detail["materials"].([]interface{})
	if !ok {
		t.Fatalf("expected materials to be an empty array, got %v", detail["materials"])
	}
	if len(materials) != 0 {
		t.Errorf("expected 0 materials, got %d", len(materials))
	}
}

// Ids pointing at deleted gemstones are silently dropped rather than failing
// the listing.
func TestGetProductsDanglingGemstoneIDsIgnored(t *testing.T) {
	db := freshDB()
	router := setupProductRouter(db)

	cat := seedCategory(db, "Rings", nil)
	gem := seedGemstone(db, "Ruby", "Red", 0.8)
	prod := seedProduct(db, "Ruby Ring", cat.ID, 760, false)
	setGemstones(db, &prod, gem.ID, uuid.New())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/products", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	result := parseResponseArray(w)
	detail := result[0].(map[string]interface{})
	gemstones := detail["gemstones"].([]interface{})
	if len(gemstones) != 1 {
		t.Errorf("expected 1 resolved gemstone (dangling id dropped), got %d", len(gemstones))
	}
}

func TestGetProductsFilterByCategory(t *testing.T) {
	db := freshDB()
	router := setupProductRouter(db)

	rings := seedCategory(db, "Rings", nil)
	necklaces := seedCategory(db, "Necklaces", nil)
	seedProduct(db, "Gold Ring", rings.ID, 500, false)
	seedProduct(db, "Silver Ring", rings.ID, 150, false)
	seedProduct(db, "Pearl Necklace", necklaces.ID, 640, false)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", fmt.Sprintf("/api/products?categoryId=%s", rings.ID), nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	result := parseResponseArray(w)
	if len(result) != 2 {
		t.Errorf("expected 2 ring products, got %d", len(result))
	}
}

func TestGetProductsUnparseableCategoryIDReturnsEmpty(t *testing.T) {
	db := freshDB()
	router := setupProductRouter(db)

	cat := seedCategory(db, "Rings", nil)
	seedProduct(db, "Gold Ring", cat.ID, 500, false)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/products?categoryId=not-a-uuid", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	result := parseResponseArray(w)
	if len(result) != 0 {
		t.Errorf("expected empty listing for unmatchable category, got %d", len(result))
	}
}

// Only the literal string "true" selects featured rows; anything else matches
// the non-featured set.
func TestGetProductsFeaturedLiteral(t *testing.T) {
	db := freshDB()
	router := setupProductRouter(db)

	cat := seedCategory(db, "Rings", nil)
	seedProduct(db, "Featured Ring", cat.ID, 500, true)
	seedProduct(db, "Plain Ring", cat.ID, 150, false)

	cases := []struct {
		query string
		want  string
	}{
		{"featured=true", "Featured Ring"},
		{"featured=TRUE", "Featured Ring"},
		{"featured=1", "Plain Ring"},
		{"featured=yes", "Plain Ring"},
		{"featured=false", "Plain Ring"},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, jsonRequest("GET", "/api/products?"+tc.query, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected status 200, got %d: %s", tc.query, w.Code, w.Body.String())
		}
		result := parseResponseArray(w)
		if len(result) != 1 {
			t.Fatalf("%s: expected 1 product, got %d", tc.query, len(result))
		}
		detail := result[0].(map[string]interface{})
		if detail["name"] != tc.want {
			t.Errorf("%s: expected %q, got %v", tc.query, tc.want, detail["name"])
		}
	}
}

// Price bounds are inclusive and apply to the base price, even when a lower
// discount price is present.
func TestGetProductsPriceRange(t *testing.T) {
	db := freshDB()
	router := setupProductRouter(db)

	cat := seedCategory(db, "Rings", nil)
	seedProduct(db, "Cheap Ring", cat.ID, 99.99, false)
	onMin := seedProduct(db, "On Min Ring", cat.ID, 100, false)
	seedProduct(db, "Mid Ring", cat.ID, 350, false)
	seedProduct(db, "On Max Ring", cat.ID, 500, false)
	seedProduct(db, "Expensive Ring", cat.ID, 500.01, false)

	// A discount below the range must not pull the product out of it
	db.Model(&onMin).Update("discount_price", 80.0)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/products?minPrice=100&maxPrice=500", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	result := parseResponseArray(w)
	if len(result) != 3 {
		t.Fatalf("expected 3 products in [100, 500], got %d", len(result))
	}
	for _, raw := range result {
		detail := raw.(map[string]interface{})
		price := detail["price"].(float64)
		if price < 100 || price > 500 {
			t.Errorf("product %v with price %v outside range", detail["name"], price)
		}
	}
}

func TestGetProductsFeaturedWithinPriceRange(t *testing.T) {
	db := freshDB()
	router := setupProductRouter(db)

	cat := seedCategory(db, "Rings", nil)
	seedProduct(db, "Featured In Range", cat.ID, 300, true)
	seedProduct(db, "Featured Too Cheap", cat.ID, 50, true)
	seedProduct(db, "Plain In Range", cat.ID, 300, false)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/products?featured=true&minPrice=100&maxPrice=500", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	result := parseResponseArray(w)
	if len(result) != 1 {
		t.Fatalf("expected 1 product, got %d", len(result))
	}
	detail := result[0].(map[string]interface{})
	if detail["name"] != "Featured In Range" {
		t.Errorf("expected 'Featured In Range', got %v", detail["name"])
	}
}

func TestGetProductsInvalidPriceBounds(t *testing.T) {
	db := freshDB()
	router := setupProductRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/products?minPrice=abc", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	resp := parseResponse(w)
	if resp["error"] != "Invalid minPrice" {
		t.Errorf("expected 'Invalid minPrice', got %v", resp["error"])
	}

	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, jsonRequest("GET", "/api/products?maxPrice=costly", nil))
	if w2.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w2.Code, w2.Body.String())
	}
	resp2 := parseResponse(w2)
	if resp2["error"] != "Invalid maxPrice" {
		t.Errorf("expected 'Invalid maxPrice', got %v", resp2["error"])
	}
}

func TestGetProductsFilterBySlug(t *testing.T) {
	db := freshDB()
	router := setupProductRouter(db)

	cat := seedCategory(db, "Rings", nil)
	prod := seedProduct(db, "Slugged Ring", cat.ID, 500, false)
	seedProduct(db, "Other Ring", cat.ID, 150, false)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/products?slug="+prod.Slug, nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	result := parseResponseArray(w)
	if len(result) != 1 {
		t.Fatalf("expected 1 product, got %d", len(result))
	}
	detail := result[0].(map[string]interface{})
	if detail["name"] != "Slugged Ring" {
		t.Errorf("expected 'Slugged Ring', got %v", detail["name"])
	}
}

func TestGetProductsLimit(t *testing.T) {
	db := freshDB()
	router := setupProductRouter(db)

	cat := seedCategory(db, "Rings", nil)
	for i := 0; i < 5; i++ {
		seedProduct(db, fmt.Sprintf("Ring %d", i), cat.ID, 100+float64(i), false)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/products?limit=3", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	result := parseResponseArray(w)
	if len(result) != 3 {
		t.Errorf("expected 3 products, got %d", len(result))
	}

	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, jsonRequest("GET", "/api/products?limit=zero", nil))
	if w2.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w2.Code, w2.Body.String())
	}
	resp := parseResponse(w2)
	if resp["error"] != "Invalid limit" {
		t.Errorf("expected 'Invalid limit', got %v", resp["error"])
	}
}

func TestGetProductsPrimaryImageSelection(t *testing.T) {
	db := freshDB()
	router := setupProductRouter(db)

	cat := seedCategory(db, "Necklaces", nil)
	prod := seedProduct(db, "Pendant", cat.ID, 420, false)
	seedImage(db, prod.ID, "https://cdn.example.com/side.jpg", false, 1)
	seedImage(db, prod.ID, "https://cdn.example.com/main.jpg", true, 0)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/products", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	result := parseResponseArray(w)
	detail := result[0].(map[string]interface{})
	image, ok := detail["primaryImage"].(map[string]interface{})
	if !ok {
		t.Fatal("expected primaryImage to be set")
	}
	if image["url"] != "https://cdn.example.com/main.jpg" {
		t.Errorf("expected primary image URL, got %v", image["url"])
	}
}

// No primary flag means no image at all; the first secondary image is not a
// fallback.
func TestGetProductsNoPrimaryImageIsNull(t *testing.T) {
	db := freshDB()
	router := setupProductRouter(db)

	cat := seedCategory(db, "Necklaces", nil)
	prod := seedProduct(db, "Unphotographed Pendant", cat.ID, 420, false)
	seedImage(db, prod.ID, "https://cdn.example.com/side.jpg", false, 0)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/products", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	result := parseResponseArray(w)
	detail := result[0].(map[string]interface{})
	if detail["primaryImage"] != nil {
		t.Errorf("expected null primaryImage, got %v", detail["primaryImage"])
	}
}

func TestGetProductByID(t *testing.T) {
	db := freshDB()
	router := setupProductRouter(db)

	cat := seedCategory(db, "Rings", nil)
	gem := seedGemstone(db, "Emerald", "Green", 0.9)
	prod := seedProduct(db, "Emerald Ring", cat.ID, 980, false)
	setGemstones(db, &prod, gem.ID)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/products/"+prod.ID.String(), nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	detail := parseResponse(w)
	if detail["name"] != "Emerald Ring" {
		t.Errorf("expected 'Emerald Ring', got %v", detail["name"])
	}
	gemstones, ok := detail["gemstones"].([]interface{})
	if !ok || len(gemstones) != 1 {
		t.Errorf("expected 1 resolved gemstone, got %v", detail["gemstones"])
	}
}

func TestGetProductNotFound(t *testing.T) {
	db := freshDB()
	router := setupProductRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/products/"+uuid.New().String(), nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
	resp := parseResponse(w)
	if resp["error"] != "Product not found" {
		t.Errorf("expected 'Product not found', got %v", resp["error"])
	}

	// Unparseable ids cannot reference any product either
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, jsonRequest("GET", "/api/products/not-a-uuid", nil))
	if w2.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w2.Code, w2.Body.String())
	}
}

func TestGetProductImagesSorted(t *testing.T) {
	db := freshDB()
	router := setupProductRouter(db)

	cat := seedCategory(db, "Necklaces", nil)
	prod := seedProduct(db, "Gallery Pendant", cat.ID, 420, false)
	seedImage(db, prod.ID, "https://cdn.example.com/third.jpg", false, 2)
	seedImage(db, prod.ID, "https://cdn.example.com/first.jpg", true, 0)
	seedImage(db, prod.ID, "https://cdn.example.com/second.jpg", false, 1)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", fmt.Sprintf("/api/products/%s/images", prod.ID), nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	result := parseResponseArray(w)
	if len(result) != 3 {
		t.Fatalf("expected 3 images, got %d", len(result))
	}
	want := []string{
		"https://cdn.example.com/first.jpg",
		"https://cdn.example.com/second.jpg",
		"https://cdn.example.com/third.jpg",
	}
	for i, raw := range result {
		img := raw.(map[string]interface{})
		if img["url"] != want[i] {
			t.Errorf("position %d: expected %s, got %v", i, want[i], img["url"])
		}
	}
}

func TestGetProductImagesEmpty(t *testing.T) {
	db := freshDB()
	router := setupProductRouter(db)

	cat := seedCategory(db, "Necklaces", nil)
	prod := seedProduct(db, "Bare Pendant", cat.ID, 420, false)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", fmt.Sprintf("/api/products/%s/images", prod.ID), nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	result := parseResponseArray(w)
	if len(result) != 0 {
		t.Errorf("expected 0 images, got %d", len(result))
	}
}

func TestGetProductInventoryExisting(t *testing.T) {
	db := freshDB()
	router := setupProductRouter(db)

	cat := seedCategory(db, "Rings", nil)
	prod := seedProduct(db, "Stocked Ring", cat.ID, 500, false)
	seedInventory(db, prod.ID, 25, 5)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", fmt.Sprintf("/api/products/%s/inventory", prod.ID), nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := parseResponse(w)
	if qty := resp["quantity"].(float64); int(qty) != 25 {
		t.Errorf("expected quantity 25, got %v", resp["quantity"])
	}
	if thr := resp["lowStockThreshold"].(float64); int(thr) != 5 {
		t.Errorf("expected lowStockThreshold 5, got %v", resp["lowStockThreshold"])
	}
}

// Products with no inventory row get the synthesized default instead of 404.
func TestGetProductInventoryDefault(t *testing.T) {
	db := freshDB()
	router := setupProductRouter(db)

	cat := seedCategory(db, "Rings", nil)
	prod := seedProduct(db, "Untracked Ring", cat.ID, 500, false)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", fmt.Sprintf("/api/products/%s/inventory", prod.ID), nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := parseResponse(w)
	if qty := resp["quantity"].(float64); int(qty) != models.DefaultInventoryQuantity {
		t.Errorf("expected default quantity %d, got %v", models.DefaultInventoryQuantity, resp["quantity"])
	}
	if thr := resp["lowStockThreshold"].(float64); int(thr) != models.DefaultLowStockThreshold {
		t.Errorf("expected default threshold %d, got %v", models.DefaultLowStockThreshold, resp["lowStockThreshold"])
	}
	if resp["productId"] != prod.ID.String() {
		t.Errorf("expected productId %s, got %v", prod.ID, resp["productId"])
	}
}

// A malformed id-list document is a data-integrity failure, not something to
// paper over with an empty result.
func TestGetProductMalformedIDListFails(t *testing.T) {
	db := freshDB()
	router := setupProductRouter(db)

	cat := seedCategory(db, "Rings", nil)
	prod := seedProduct(db, "Corrupt Ring", cat.ID, 500, false)
	db.Model(&prod).Update("gemstone_ids", `{"not":"an array"}`)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/products/"+prod.ID.String(), nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", w.Code, w.Body.String())
	}
}
